package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FeedConfig holds the connection settings for the upstream task event feed.
type FeedConfig struct {
	NATSURL string `yaml:"nats_url"`
	Subject string `yaml:"subject"`
}

// InsightsConfig holds the settings of the aggregation core.
type InsightsConfig struct {
	EventBufferSize int `yaml:"event_buffer_size"`
}

// APIConfig holds the settings of the HTTP read API.
type APIConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// AlerterRule defines a single threshold check against the current snapshot.
// Metric is one of: failure_count, median_duration_ms, redirect_count,
// total_bytes.
type AlerterRule struct {
	Name      string  `yaml:"name"`
	Metric    string  `yaml:"metric"`
	Operator  string  `yaml:"operator"`
	Threshold float64 `yaml:"threshold"`
}

// AlerterConfig holds the configuration for the threshold alerter.
type AlerterConfig struct {
	Enabled       bool          `yaml:"enabled"`
	CheckInterval string        `yaml:"check_interval"`
	Rules         []AlerterRule `yaml:"rules"`
}

// SMTPConfig holds the settings for the email notifier.
type SMTPConfig struct {
	Host     string   `yaml:"host"`
	Port     int      `yaml:"port"`
	Username string   `yaml:"username"`
	Password string   `yaml:"password"`
	From     string   `yaml:"from"`
	To       []string `yaml:"to"`
}

// Config is the top-level configuration struct for the entire application.
type Config struct {
	Feed     FeedConfig     `yaml:"feed"`
	Insights InsightsConfig `yaml:"insights"`
	API      APIConfig      `yaml:"api"`
	Alerter  AlerterConfig  `yaml:"alerter"`
	SMTP     SMTPConfig     `yaml:"smtp"`
}

// LoadConfig reads the configuration from a YAML file and returns a Config struct.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	return &cfg, nil
}
