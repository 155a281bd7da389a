package config

// SolverConfig tunes solver selection and parallel execution
type SolverConfig struct {
	// Largest chest count still solved with the exact chain DP
	ExactThreshold int `mapstructure:"exact_threshold" validate:"min=1"`

	// Worker pool size for parallel layer fills and candidate scans;
	// 0 means number of available processing units
	Workers int `mapstructure:"workers" validate:"min=0"`
}
