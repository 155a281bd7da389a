package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/chesthunt-go/internal/application/common"
	"github.com/andrescamacho/chesthunt-go/internal/application/jobs"
)

// DefaultCancelReason is recorded when the caller gives no reason
const DefaultCancelReason = "cancelled by request"

// CancelJobCommand requests cooperative cancellation of a job
type CancelJobCommand struct {
	JobID  string
	Reason string
}

// CancelJobResponse reports whether the job was actually cancelled
type CancelJobResponse struct {
	Cancelled bool
}

// CancelJobHandler cancels pending or in-progress jobs
type CancelJobHandler struct {
	manager *jobs.Manager
}

// NewCancelJobHandler creates the handler
func NewCancelJobHandler(manager *jobs.Manager) *CancelJobHandler {
	return &CancelJobHandler{manager: manager}
}

// Handle triggers the cancellation signal; unknown and already-terminal
// jobs report Cancelled=false
func (h *CancelJobHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*CancelJobCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type for CancelJobHandler")
	}

	reason := cmd.Reason
	if reason == "" {
		reason = DefaultCancelReason
	}

	return &CancelJobResponse{
		Cancelled: h.manager.Cancel(ctx, cmd.JobID, reason),
	}, nil
}
