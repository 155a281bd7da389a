package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/chesthunt-go/internal/application/common"
	"github.com/andrescamacho/chesthunt-go/internal/application/jobs"
)

// GetJobStatusQuery asks for the current status (and result, if completed)
// of one job
type GetJobStatusQuery struct {
	JobID string
}

// GetJobStatusHandler answers status polls without blocking on solver
// progress
type GetJobStatusHandler struct {
	manager *jobs.Manager
}

// NewGetJobStatusHandler creates the handler
func NewGetJobStatusHandler(manager *jobs.Manager) *GetJobStatusHandler {
	return &GetJobStatusHandler{manager: manager}
}

// Handle returns the job's read model or a JobNotFoundError
func (h *GetJobStatusHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetJobStatusQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type for GetJobStatusHandler")
	}

	return h.manager.GetStatus(ctx, query.JobID)
}
