package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"sgccwidget/pkg/models"
)

// DefaultEndpoint is the billing API serving the full multi-account
// payload.
const DefaultEndpoint = "http://api.wsgw-rewrite.com/electricity/bill/all"

// Client fetches the multi-account billing payload over HTTP.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient creates a client against endpoint, or the default endpoint when
// empty.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

// FetchAll requests the full payload with the monthly, 31-day, step and
// bill sub-sections enabled. A null body counts as a failure so callers
// never cache an empty snapshot over a good one.
func (c *Client) FetchAll(ctx context.Context) ([]models.AccountRecord, error) {
	params := url.Values{}
	params.Set("monthElecQuantity", "1")
	params.Set("dayElecQuantity31", "1")
	params.Set("stepElecQuantity", "1")
	params.Set("eleBill", "1")

	reqURL := fmt.Sprintf("%s?%s", c.endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting billing data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var records []models.AccountRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding billing data: %w", err)
	}
	if records == nil {
		return nil, fmt.Errorf("upstream returned an empty payload")
	}

	return records, nil
}
