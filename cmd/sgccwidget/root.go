package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"sgccwidget/internal/cache"
	"sgccwidget/internal/config"
	"sgccwidget/internal/settings"
	"sgccwidget/internal/store"
	"sgccwidget/internal/upstream"
)

var (
	cfgFile string
	dbPath  string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "sgccwidget",
	Short: "Fetch and render State Grid electricity usage and billing data",
	Long: `sgccwidget is a CLI around the data pipeline of a home-screen electricity
widget. It fetches the account payload from the billing API with a 4-hour
cache, classifies usage into progressive tariff tiers, and derives chart
series and a display summary.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		slog.SetDefault(slog.New(handler))
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file (default is ./data.db)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// getConfigPath returns the config file path
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultConfigPath()
}

// getDBPath returns the database file path (local directory)
func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	return "data.db"
}

// loadConfig loads the configuration file
func loadConfig() (*config.Config, error) {
	return config.Load(getConfigPath())
}

// openStore opens the key/value store backing settings and the payload
// cache.
func openStore() (*store.SQLite, error) {
	return store.Open(getDBPath())
}

// newFetcher wires the fetch pipeline over an open store.
func newFetcher(cfg *config.Config, kv store.KV) *upstream.Fetcher {
	client := upstream.NewClient(cfg.Endpoint, cfg.GetTimeout())
	return upstream.New(client, cache.New(kv, nil), nil)
}

// loadSettings reads the widget settings from the store.
func loadSettings(kv store.KV) settings.Settings {
	return settings.New(kv, nil).Get()
}
