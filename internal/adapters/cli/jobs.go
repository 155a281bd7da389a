package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

// NewJobsCommand creates the jobs listing command
func NewJobsCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "List recent solve jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := NewDaemonClient(serverURL)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			jobs, err := client.ListJobs(ctx, limit)
			if err != nil {
				return err
			}

			if len(jobs) == 0 {
				fmt.Println("No jobs found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "JOB ID\tSTATUS\tSOLVER\tMIN FUEL\tCREATED")
			for _, job := range jobs {
				minFuel := "-"
				if job.MinFuel != nil {
					minFuel = fmt.Sprintf("%.4f", *job.MinFuel)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					job.JobID, job.Status, job.Solver, minFuel,
					job.CreatedAt.Format(time.RFC3339))
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of jobs to list")

	return cmd
}
