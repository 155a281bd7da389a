package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/chesthunt-go/internal/application/common"
	"github.com/andrescamacho/chesthunt-go/internal/application/jobs"
)

// GetJobLogsQuery asks for the persisted progress lines of one job
type GetJobLogsQuery struct {
	JobID string
}

// GetJobLogsHandler retrieves per-job solver progress logs
type GetJobLogsHandler struct {
	manager *jobs.Manager
}

// NewGetJobLogsHandler creates the handler
func NewGetJobLogsHandler(manager *jobs.Manager) *GetJobLogsHandler {
	return &GetJobLogsHandler{manager: manager}
}

// Handle returns the job's log entries in insertion order
func (h *GetJobLogsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetJobLogsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type for GetJobLogsHandler")
	}

	return h.manager.Logs(ctx, query.JobID)
}
