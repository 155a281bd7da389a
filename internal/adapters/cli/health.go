package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// NewHealthCommand creates the daemon health check command
func NewHealthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check whether the daemon is responsive",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := NewDaemonClient(serverURL)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			health, err := client.HealthCheck(ctx)
			if err != nil {
				return fmt.Errorf("daemon unreachable at %s: %w", serverURL, err)
			}

			fmt.Printf("Status:      %s\n", health.Status)
			fmt.Printf("Version:     %s\n", health.Version)
			fmt.Printf("Active jobs: %d\n", health.ActiveJobs)
			return nil
		},
	}
}
