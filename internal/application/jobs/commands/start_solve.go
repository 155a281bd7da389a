package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/chesthunt-go/internal/application/common"
	"github.com/andrescamacho/chesthunt-go/internal/application/jobs"
	"github.com/andrescamacho/chesthunt-go/internal/domain/grid"
)

// StartSolveCommand requests an asynchronous solve of a problem instance
type StartSolveCommand struct {
	Problem *grid.ProblemInstance
}

// StartSolveResponse carries the identity of the scheduled job
type StartSolveResponse struct {
	JobID string
}

// StartSolveHandler validates and schedules solve jobs
type StartSolveHandler struct {
	manager *jobs.Manager
}

// NewStartSolveHandler creates the handler
func NewStartSolveHandler(manager *jobs.Manager) *StartSolveHandler {
	return &StartSolveHandler{manager: manager}
}

// Handle starts a solve job and returns its identity without waiting for
// the solver
func (h *StartSolveHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*StartSolveCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type for StartSolveHandler")
	}

	jobID, err := h.manager.StartSolve(ctx, cmd.Problem)
	if err != nil {
		return nil, err
	}

	return &StartSolveResponse{JobID: jobID}, nil
}
