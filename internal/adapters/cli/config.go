package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/chesthunt-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage ChestHunt configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (CH_* prefix)
2. Config file (config.yaml)
3. Default values

Examples:
  chesthunt config show`,
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig("")
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			fmt.Println("ChestHunt Configuration")
			fmt.Println("=======================")

			fmt.Println("Database:")
			fmt.Printf("  Type:             %s\n", cfg.Database.Type)
			if cfg.Database.Type == "sqlite" {
				fmt.Printf("  Path:             %s\n", cfg.Database.Path)
			} else if cfg.Database.URL != "" {
				fmt.Printf("  URL:              %s\n", maskPassword(cfg.Database.URL))
			} else {
				fmt.Printf("  Host:             %s\n", cfg.Database.Host)
				fmt.Printf("  Port:             %d\n", cfg.Database.Port)
				fmt.Printf("  Database:         %s\n", cfg.Database.Name)
				fmt.Printf("  User:             %s\n", cfg.Database.User)
			}
			fmt.Printf("  Max Connections:  %d\n", cfg.Database.Pool.MaxOpen)

			fmt.Println("\nServer:")
			fmt.Printf("  Address:          %s\n", cfg.Server.Address)
			fmt.Printf("  Submit Rate:      %.1f req/s (burst: %d)\n",
				cfg.Server.RateLimit.RequestsPerSecond, cfg.Server.RateLimit.Burst)

			fmt.Println("\nSolver:")
			fmt.Printf("  Exact Threshold:  %d chests\n", cfg.Solver.ExactThreshold)
			if cfg.Solver.Workers > 0 {
				fmt.Printf("  Workers:          %d\n", cfg.Solver.Workers)
			} else {
				fmt.Printf("  Workers:          (number of CPUs)\n")
			}

			fmt.Println("\nDaemon:")
			fmt.Printf("  PID File:         %s\n", cfg.Daemon.PIDFile)
			fmt.Printf("  Max Active Jobs:  %d\n", cfg.Daemon.MaxActiveJobs)
			fmt.Printf("  Shutdown Timeout: %s\n", cfg.Daemon.ShutdownTimeout)

			fmt.Println("\nLogging:")
			fmt.Printf("  Level:            %s\n", cfg.Logging.Level)
			fmt.Printf("  Format:           %s\n", cfg.Logging.Format)
			fmt.Printf("  Output:           %s\n", cfg.Logging.Output)

			fmt.Println("\nMetrics:")
			fmt.Printf("  Enabled:          %t\n", cfg.Metrics.Enabled)

			return nil
		},
	}
}

// maskPassword masks the password in a connection URL for display
func maskPassword(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.User == nil {
		return raw
	}
	if _, has := parsed.User.Password(); has {
		parsed.User = url.UserPassword(parsed.User.Username(), "****")
	}
	return parsed.String()
}
