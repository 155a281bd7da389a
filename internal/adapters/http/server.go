// Package http exposes the daemon's job surface over HTTP: job
// submission, status polling, cancellation, job listing, per-job logs,
// health, and Prometheus metrics.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andrescamacho/chesthunt-go/internal/application/common"
	"github.com/andrescamacho/chesthunt-go/internal/application/jobs"
)

// Version reported by the health endpoint
const Version = "0.1.0"

// Options configures the HTTP server
type Options struct {
	// Addr is the listen address (host:port)
	Addr string

	// SubmitRatePerSecond throttles POST /api/solve; zero disables the limiter
	SubmitRatePerSecond float64
	SubmitBurst         int

	// Registry serves GET /metrics when non-nil
	Registry *prometheus.Registry
}

// Server is the gin HTTP adapter over the mediator
type Server struct {
	engine   *gin.Engine
	server   *http.Server
	mediator common.Mediator
	manager  *jobs.Manager
}

// NewServer creates the HTTP server and registers all routes
func NewServer(mediator common.Mediator, manager *jobs.Manager, opts Options) *Server {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine:   engine,
		mediator: mediator,
		manager:  manager,
		server: &http.Server{
			Addr:    opts.Addr,
			Handler: engine,
		},
	}

	api := engine.Group("/api")
	{
		solve := api.Group("")
		if opts.SubmitRatePerSecond > 0 {
			solve.Use(submissionLimiter(opts.SubmitRatePerSecond, opts.SubmitBurst))
		}
		solve.POST("/solve", s.handleSolve)

		api.GET("/jobs", s.handleListJobs)
		api.GET("/jobs/:id", s.handleGetJob)
		api.POST("/jobs/:id/cancel", s.handleCancelJob)
		api.GET("/jobs/:id/logs", s.handleGetJobLogs)
		api.GET("/health", s.handleHealth)
	}

	if opts.Registry != nil {
		engine.GET("/metrics", gin.WrapH(
			promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))
	}

	return s
}

// Engine exposes the underlying gin engine (used by tests)
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Start begins serving requests and blocks until the server is shut down
func (s *Server) Start() error {
	fmt.Printf("Daemon HTTP server listening on %s\n", s.server.Addr)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
