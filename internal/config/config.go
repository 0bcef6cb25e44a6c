package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration. User-facing widget settings
// live in the key/value store instead (see internal/settings); this file
// covers the machine-level knobs: where the upstream API is, where the
// database lives, and where summaries get published.
type Config struct {
	Endpoint       string     `yaml:"endpoint,omitempty"`        // Upstream billing API URL (fallback: built-in default)
	TimeoutSeconds int        `yaml:"timeout_seconds,omitempty"` // HTTP request timeout (fallback: 30)
	MQTT           MQTTConfig `yaml:"mqtt,omitempty"`
	HomeAssistant  HAConfig   `yaml:"home_assistant,omitempty"`
}

// MQTTConfig holds MQTT broker configuration for summary publishing
type MQTTConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Broker      string `yaml:"broker"`                 // e.g., "mqtt.local:1883"
	TopicPrefix string `yaml:"topic_prefix,omitempty"` // e.g., "sgcc"
	Username    string `yaml:"username,omitempty"`
	Password    string `yaml:"password,omitempty"`
}

// HAConfig holds Home Assistant HTTP API configuration
type HAConfig struct {
	Enabled  bool   `yaml:"enabled"`
	URL      string `yaml:"url"`       // e.g., "http://yourdomain.local:8123"
	Token    string `yaml:"token"`     // Long-lived access token
	EntityID string `yaml:"entity_id"` // e.g., "sensor.sgcc_balance"
}

// Load reads the config file and applies environment overrides. A missing
// file yields an empty config, not an error.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := &Config{}
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnv()
	return &cfg, nil
}

// Save writes the config to file
func Save(configPath string, cfg *Config) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// DefaultConfigPath returns the default config file path (local directory)
func DefaultConfigPath() string {
	return "config.yaml"
}

// applyEnv layers broker credentials from the environment (and a local .env
// file when present) over the file values, so secrets can stay out of
// config.yaml.
func (c *Config) applyEnv() {
	_ = godotenv.Load()

	if v := os.Getenv("SGCC_ENDPOINT"); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv("SGCC_MQTT_USERNAME"); v != "" {
		c.MQTT.Username = v
	}
	if v := os.Getenv("SGCC_MQTT_PASSWORD"); v != "" {
		c.MQTT.Password = v
	}
	if v := os.Getenv("SGCC_HA_TOKEN"); v != "" {
		c.HomeAssistant.Token = v
	}
}

// GetTimeout returns the HTTP request timeout with a default of 30 seconds
func (c *Config) GetTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
