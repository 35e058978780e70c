package config

import "fmt"

// MetricsConfig enables the Prometheus scrape endpoint for long batches.
type MetricsConfig struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusPort    string `json:"prometheus_port"`
}

// SetDefaults applies sane defaults.
func (c *MetricsConfig) SetDefaults() {
	if c.PrometheusPort == "" {
		c.PrometheusPort = ":9090"
	}
}

// Validate checks mandatory fields.
func (c MetricsConfig) Validate() error {
	if c.PrometheusEnabled && c.PrometheusPort == "" {
		return fmt.Errorf("prometheus_port is required when prometheus is enabled")
	}
	return nil
}
