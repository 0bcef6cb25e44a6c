package main

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var fetchForce bool

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the account payload from the billing API",
	Long: `Runs one fetch cycle against the billing API. A cached payload younger
than 4 hours is reused without a network call; --force bypasses the
freshness check. On network failure the previous payload is kept, however
stale.`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().BoolVar(&fetchForce, "force", false, "Bypass the cache freshness check")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	kv, err := openStore()
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer kv.Close()

	result := newFetcher(cfg, kv).Fetch(context.Background(), fetchForce)

	fetchedAt := time.UnixMilli(result.Timestamp)
	fmt.Printf("✓ %d account(s), data from %s (%s)\n",
		len(result.Data),
		fetchedAt.Format("2006-01-02 15:04:05"),
		humanize.Time(fetchedAt))
	if len(result.Data) == 0 {
		fmt.Println("No account data available (network failed and no cache yet?)")
	}
	return nil
}
