package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// NewCancelCommand creates the cancel command
func NewCancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <job-id>",
		Short: "Cancel a pending or in-progress solve job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := NewDaemonClient(serverURL)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			cancelled, err := client.CancelJob(ctx, args[0])
			if err != nil {
				return err
			}

			if cancelled {
				fmt.Printf("Job %s cancelled\n", args[0])
			} else {
				fmt.Printf("Job %s was not cancelled (unknown or already finished)\n", args[0])
			}
			return nil
		},
	}
}
