package config

// ServerConfig holds the HTTP job surface configuration
type ServerConfig struct {
	// Listen address (host:port)
	Address string `mapstructure:"address" validate:"required"`

	// Job submission rate limit
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig holds token-bucket settings for job submission
type RateLimitConfig struct {
	// Sustained submissions per second; 0 disables the limiter
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"min=0"`

	// Burst capacity
	Burst int `mapstructure:"burst" validate:"min=0"`
}
