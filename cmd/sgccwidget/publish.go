package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"sgccwidget/internal/publisher"
	"sgccwidget/internal/summary"
	"sgccwidget/internal/upstream"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish the display summary to MQTT and/or Home Assistant",
	Long: `Runs one fetch cycle and pushes the selected account's display summary
to whichever publishing targets are enabled in config.yaml.`,
	Args: cobra.NoArgs,
	RunE: runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if !cfg.MQTT.Enabled && !cfg.HomeAssistant.Enabled {
		return fmt.Errorf("no publishing target enabled in config (mqtt or home_assistant)")
	}

	kv, err := openStore()
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer kv.Close()

	st := loadSettings(kv)
	result := newFetcher(cfg, kv).Fetch(context.Background(), false)
	account := upstream.SelectAccount(result, st)
	sum := summary.Extract(account.AccountRecord, account.LastUpdateTime)

	pub, err := publisher.New(cfg.MQTT, cfg.HomeAssistant)
	if err != nil {
		return fmt.Errorf("creating publisher: %w", err)
	}
	defer pub.Close()

	if cfg.MQTT.Enabled {
		if err := pub.PublishMQTT(sum); err != nil {
			return fmt.Errorf("publishing to MQTT: %w", err)
		}
		fmt.Println("✓ Published summary to MQTT")
	}

	if cfg.HomeAssistant.Enabled {
		if err := pub.PublishHA(sum); err != nil {
			return fmt.Errorf("publishing to Home Assistant: %w", err)
		}
		fmt.Println("✓ Published summary to Home Assistant")
	}

	return nil
}
