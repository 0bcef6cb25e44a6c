package publisher

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"sgccwidget/internal/config"
	"sgccwidget/pkg/models"
)

// Publisher pushes the selected account's display summary to Home
// Assistant and/or an MQTT broker.
type Publisher struct {
	client      mqtt.Client
	topicPrefix string
	haConfig    config.HAConfig
}

// New creates a new publisher (supports both MQTT and the HA HTTP API)
func New(mqttCfg config.MQTTConfig, haCfg config.HAConfig) (*Publisher, error) {
	if haCfg.Enabled {
		if haCfg.URL == "" {
			return nil, fmt.Errorf("Home Assistant URL is required when enabled")
		}
		if haCfg.Token == "" {
			return nil, fmt.Errorf("Home Assistant token is required when enabled")
		}
		if haCfg.EntityID == "" {
			return nil, fmt.Errorf("Home Assistant entity_id is required when enabled")
		}
	}

	var client mqtt.Client
	var topicPrefix string

	if mqttCfg.Enabled {
		if mqttCfg.Broker == "" {
			return nil, fmt.Errorf("MQTT broker address is required when enabled")
		}

		topicPrefix = mqttCfg.TopicPrefix
		if topicPrefix == "" {
			topicPrefix = "sgcc"
		}

		opts := mqtt.NewClientOptions()
		opts.AddBroker(fmt.Sprintf("tcp://%s", mqttCfg.Broker))
		// Unique client id so parallel invocations don't kick each other
		// off the broker.
		opts.SetClientID(fmt.Sprintf("sgccwidget-%s", uuid.NewString()[:8]))
		opts.SetAutoReconnect(true)
		opts.SetConnectRetry(true)
		opts.SetConnectTimeout(10 * time.Second)

		if mqttCfg.Username != "" {
			opts.SetUsername(mqttCfg.Username)
		}
		if mqttCfg.Password != "" {
			opts.SetPassword(mqttCfg.Password)
		}

		client = mqtt.NewClient(opts)
		if token := client.Connect(); token.Wait() && token.Error() != nil {
			return nil, fmt.Errorf("connecting to MQTT broker: %w", token.Error())
		}
	}

	return &Publisher{
		client:      client,
		topicPrefix: topicPrefix,
		haConfig:    haCfg,
	}, nil
}

// PublishMQTT publishes the summary as retained JSON so subscribers see the
// latest snapshot immediately on connect.
func (p *Publisher) PublishMQTT(summary models.DisplaySummary) error {
	if p.client == nil {
		return fmt.Errorf("MQTT publishing is not enabled in config")
	}

	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}

	topic := fmt.Sprintf("%s/summary", p.topicPrefix)
	if token := p.client.Publish(topic, 0, true, payload); token.Wait() && token.Error() != nil {
		return fmt.Errorf("publishing to %s: %w", topic, token.Error())
	}

	return nil
}

// HAPayload matches the Home Assistant state API call data
type HAPayload struct {
	State      string       `json:"state"`
	Attributes HAAttributes `json:"attributes"`
}

// HAAttributes carries the non-state summary fields
type HAAttributes struct {
	HasArrear      bool    `json:"has_arrear"`
	LastBill       string  `json:"last_bill"`
	LastUsage      string  `json:"last_usage"`
	YearBill       string  `json:"year_bill"`
	YearUsage      string  `json:"year_usage"`
	TotalYearPq    float64 `json:"total_year_pq"`
	LastUpdateTime string  `json:"last_update_time"`
}

// PublishHA sends the summary to Home Assistant via the HTTP state API,
// with the account balance as the entity state.
func (p *Publisher) PublishHA(summary models.DisplaySummary) error {
	if !p.haConfig.Enabled {
		return fmt.Errorf("Home Assistant publishing is not enabled in config")
	}

	apiURL := fmt.Sprintf("%s/api/states/%s", p.haConfig.URL, p.haConfig.EntityID)

	payload := HAPayload{
		State: summary.Balance,
		Attributes: HAAttributes{
			HasArrear:      summary.HasArrear,
			LastBill:       summary.LastBill,
			LastUsage:      summary.LastUsage,
			YearBill:       summary.YearBill,
			YearUsage:      summary.YearUsage,
			TotalYearPq:    summary.TotalYearPq,
			LastUpdateTime: time.UnixMilli(summary.LastUpdateTime).Format(time.RFC3339),
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	req, err := http.NewRequest("POST", apiURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+p.haConfig.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("HTTP error: status %d, response: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

// Close disconnects from the MQTT broker
func (p *Publisher) Close() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}
