package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// NewSolveCommand creates the solve command
func NewSolveCommand() *cobra.Command {
	var (
		filePath     string
		wait         bool
		pollInterval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Submit a treasure-hunt problem for solving",
		Long: `Submit a grid problem to the daemon. The problem file is JSON:

  {"n": 3, "m": 3, "p": 3, "grid": [[3,2,2],[2,2,2],[2,2,1]]}

Use "-" as the file path to read from stdin. With --wait the command polls
until the job reaches a terminal status and prints the resulting path.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readProblemFile(filePath)
			if err != nil {
				return err
			}

			client := NewDaemonClient(serverURL)
			ctx := context.Background()

			jobID, err := client.Solve(ctx, req)
			if err != nil {
				return fmt.Errorf("failed to submit problem: %w", err)
			}

			fmt.Printf("Job submitted: %s\n", jobID)

			if !wait {
				return nil
			}

			for {
				time.Sleep(pollInterval)

				job, err := client.GetJob(ctx, jobID)
				if err != nil {
					return fmt.Errorf("failed to poll job: %w", err)
				}

				if verbose {
					fmt.Printf("  status: %s\n", job.Status)
				}

				if job.IsTerminal() {
					printJob(job)
					return nil
				}
			}
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Problem JSON file (use - for stdin)")
	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "Poll until the job finishes")
	cmd.Flags().DurationVar(&pollInterval, "poll-interval", 500*time.Millisecond, "Polling interval with --wait")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// readProblemFile loads the problem payload from a file or stdin
func readProblemFile(path string) (*SolveRequest, error) {
	var data []byte
	var err error

	if path == "-" {
		data, err = os.ReadFile("/dev/stdin")
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read problem file: %w", err)
	}

	var req SolveRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("invalid problem file: %w", err)
	}
	return &req, nil
}
