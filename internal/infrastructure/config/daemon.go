package config

import "time"

// DaemonConfig holds daemon process configuration
type DaemonConfig struct {
	// PID file location
	PIDFile string `mapstructure:"pid_file"`

	// Maximum number of concurrently active solve jobs; 0 disables the cap
	MaxActiveJobs int `mapstructure:"max_active_jobs" validate:"min=0"`

	// Graceful shutdown timeout
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`
}
