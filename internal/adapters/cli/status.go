package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// NewStatusCommand creates the status command
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status <job-id>",
		Short: "Show the status of a solve job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := NewDaemonClient(serverURL)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			job, err := client.GetJob(ctx, args[0])
			if err != nil {
				return err
			}

			printJob(job)
			return nil
		},
	}
}

// printJob renders a job to stdout
func printJob(job *Job) {
	fmt.Printf("Job:     %s\n", job.JobID)
	fmt.Printf("Status:  %s\n", job.Status)
	fmt.Printf("Solver:  %s\n", job.Solver)
	fmt.Printf("Created: %s\n", job.CreatedAt.Format(time.RFC3339))

	switch job.Status {
	case "COMPLETED":
		fmt.Printf("Min fuel: %.6f\n", *job.MinFuel)
		fmt.Println("Path:")
		for _, step := range job.Path {
			fmt.Printf("  chest %2d at (%d,%d)  fuel %.4f  total %.4f\n",
				step.ChestNumber, step.Position.Row, step.Position.Col,
				step.FuelUsed, step.CumulativeFuel)
		}
	case "FAILED":
		fmt.Printf("Error: %s\n", job.Error)
	case "CANCELLED":
		fmt.Printf("Cancel reason: %s\n", job.CancelReason)
	}
}
