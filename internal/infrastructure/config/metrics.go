package config

// MetricsConfig holds Prometheus metrics configuration
type MetricsConfig struct {
	// Enable the /metrics endpoint and job collectors
	Enabled bool `mapstructure:"enabled"`
}
