package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	serverURL string
	verbose   bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chesthunt",
		Short: "ChestHunt CLI - Interact with the chesthunt daemon",
		Long: `ChestHunt CLI submits treasure-hunt routing problems to the daemon
and tracks their solve jobs.

Examples:
  chesthunt solve --file grid.json
  chesthunt solve --file grid.json --wait
  chesthunt status <job-id>
  chesthunt cancel <job-id>
  chesthunt jobs --limit 20
  chesthunt logs <job-id>
  chesthunt health`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", getDefaultServerURL(),
		"Base URL of the chesthunt daemon")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	rootCmd.AddCommand(NewSolveCommand())
	rootCmd.AddCommand(NewStatusCommand())
	rootCmd.AddCommand(NewCancelCommand())
	rootCmd.AddCommand(NewJobsCommand())
	rootCmd.AddCommand(NewLogsCommand())
	rootCmd.AddCommand(NewHealthCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// getDefaultServerURL returns the default daemon base URL
func getDefaultServerURL() string {
	if url := os.Getenv("CHESTHUNT_SERVER"); url != "" {
		return url
	}
	return "http://localhost:8080"
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
