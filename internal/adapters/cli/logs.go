package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// NewLogsCommand creates the command that prints a job's progress log
func NewLogsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logs <job-id>",
		Short: "Show the progress log of a solve job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := NewDaemonClient(serverURL)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			logs, err := client.GetJobLogs(ctx, args[0])
			if err != nil {
				return err
			}

			if len(logs) == 0 {
				fmt.Println("No log entries")
				return nil
			}

			for _, entry := range logs {
				fmt.Printf("%s [%s] %s\n",
					entry.Timestamp.Format(time.RFC3339), entry.Level, entry.Message)
			}
			return nil
		},
	}
}
