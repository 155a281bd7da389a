package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/chesthunt-go/internal/application/common"
	"github.com/andrescamacho/chesthunt-go/internal/application/jobs"
)

// DefaultListLimit bounds job listings when the caller gives no limit
const DefaultListLimit = 50

// ListJobsQuery asks for the most recent jobs, newest first
type ListJobsQuery struct {
	Limit int
}

// ListJobsHandler lists recent jobs from persistence
type ListJobsHandler struct {
	manager *jobs.Manager
}

// NewListJobsHandler creates the handler
func NewListJobsHandler(manager *jobs.Manager) *ListJobsHandler {
	return &ListJobsHandler{manager: manager}
}

// Handle returns up to Limit job read models
func (h *ListJobsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*ListJobsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type for ListJobsHandler")
	}

	limit := query.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	return h.manager.List(ctx, limit)
}
