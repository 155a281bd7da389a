package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	httpAdapter "github.com/andrescamacho/chesthunt-go/internal/adapters/http"
	"github.com/andrescamacho/chesthunt-go/internal/adapters/metrics"
	"github.com/andrescamacho/chesthunt-go/internal/adapters/persistence"
	"github.com/andrescamacho/chesthunt-go/internal/application/common"
	"github.com/andrescamacho/chesthunt-go/internal/application/jobs"
	"github.com/andrescamacho/chesthunt-go/internal/application/jobs/commands"
	"github.com/andrescamacho/chesthunt-go/internal/application/jobs/queries"
	"github.com/andrescamacho/chesthunt-go/internal/domain/solver"
	"github.com/andrescamacho/chesthunt-go/internal/infrastructure/config"
	"github.com/andrescamacho/chesthunt-go/internal/infrastructure/database"
	"github.com/andrescamacho/chesthunt-go/internal/infrastructure/pidfile"
)

func main() {
	forceFlag := flag.Bool("force", false, "Kill any existing daemon and start a new one")
	configPath := flag.String("config", "", "Path to config file (default: search standard paths)")
	flag.Parse()

	fmt.Printf("ChestHunt Daemon v%s\n", httpAdapter.Version)
	fmt.Println("========================")

	fmt.Println("Loading configuration...")
	cfg := config.MustLoadConfig(*configPath)

	// Acquire PID file lock to prevent multiple instances
	fmt.Printf("Acquiring PID file lock: %s\n", cfg.Daemon.PIDFile)
	pf := pidfile.New(cfg.Daemon.PIDFile)

	if err := pf.Acquire(); err != nil {
		if *forceFlag {
			fmt.Println("Force mode enabled - attempting to kill existing daemon...")
			if killErr := pf.KillExisting(); killErr != nil {
				log.Fatalf("Failed to kill existing daemon: %v", killErr)
			}
			if err := pf.Acquire(); err != nil {
				log.Fatalf("Failed to acquire PID file lock after killing existing daemon: %v", err)
			}
		} else {
			log.Fatalf("Failed to acquire PID file lock: %v\nUse --force to kill the existing daemon", err)
		}
	}

	defer func() {
		if err := pf.Release(); err != nil {
			log.Printf("Warning: failed to release PID file: %v", err)
		}
	}()
	fmt.Println("PID file lock acquired")

	if err := run(cfg); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config) error {
	// 1. Setup database connection
	fmt.Printf("Connecting to %s database...\n", cfg.Database.Type)

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	fmt.Println("Database connected")

	// 2. Initialize repositories
	jobRepo := persistence.NewJobRepository(db)
	jobLogRepo := persistence.NewJobLogRepository(db)

	// 3. Initialize metrics (optional)
	var registry *prometheus.Registry
	var recorder jobs.MetricsRecorder
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		recorder = metrics.NewJobCollector(registry)
		fmt.Println("Metrics collector registered")
	}

	// 4. Initialize the job manager
	solverOpts := solver.Options{
		ExactThreshold: cfg.Solver.ExactThreshold,
		Workers:        cfg.Solver.Workers,
	}
	manager := jobs.NewManager(
		jobRepo, jobLogRepo, recorder, solverOpts,
		cfg.Daemon.MaxActiveJobs, nil, // nil = use RealClock in production
	)
	fmt.Println("Job manager initialized")

	// 5. Initialize mediator (CQRS dispatcher) and register handlers
	med := common.NewMediator()

	if err := common.RegisterHandler[*commands.StartSolveCommand](med, commands.NewStartSolveHandler(manager)); err != nil {
		return fmt.Errorf("failed to register StartSolve handler: %w", err)
	}
	if err := common.RegisterHandler[*commands.CancelJobCommand](med, commands.NewCancelJobHandler(manager)); err != nil {
		return fmt.Errorf("failed to register CancelJob handler: %w", err)
	}
	if err := common.RegisterHandler[*queries.GetJobStatusQuery](med, queries.NewGetJobStatusHandler(manager)); err != nil {
		return fmt.Errorf("failed to register GetJobStatus handler: %w", err)
	}
	if err := common.RegisterHandler[*queries.ListJobsQuery](med, queries.NewListJobsHandler(manager)); err != nil {
		return fmt.Errorf("failed to register ListJobs handler: %w", err)
	}
	if err := common.RegisterHandler[*queries.GetJobLogsQuery](med, queries.NewGetJobLogsHandler(manager)); err != nil {
		return fmt.Errorf("failed to register GetJobLogs handler: %w", err)
	}

	// 6. Start the HTTP server
	server := httpAdapter.NewServer(med, manager, httpAdapter.Options{
		Addr:                cfg.Server.Address,
		SubmitRatePerSecond: cfg.Server.RateLimit.RequestsPerSecond,
		SubmitBurst:         cfg.Server.RateLimit.Burst,
		Registry:            registry,
	})

	serverErr := make(chan error, 1)
	go func() {
		fmt.Println("\n✓ Daemon is ready to accept connections")
		fmt.Println("Press Ctrl+C to stop")
		serverErr <- server.Start()
	}()

	// 7. Block until shutdown is requested or the server fails
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		fmt.Printf("\nReceived %s, shutting down...\n", sig)
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("daemon server error: %w", err)
		}
		return nil
	}

	// Cancel all running jobs and wait for their runners to finish
	manager.Shutdown("daemon shutdown")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Daemon.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	fmt.Println("Daemon stopped")
	return nil
}
