package http

import (
	"time"

	"github.com/andrescamacho/chesthunt-go/internal/application/jobs"
	"github.com/andrescamacho/chesthunt-go/internal/domain/job"
	"github.com/andrescamacho/chesthunt-go/internal/domain/solver"
)

// solveRequest is the job submission payload
type solveRequest struct {
	N    int     `json:"n" binding:"required"`
	M    int     `json:"m" binding:"required"`
	P    int     `json:"p" binding:"required"`
	Grid [][]int `json:"grid" binding:"required"`
}

// solveResponse carries the identity of the scheduled job
type solveResponse struct {
	JobID string `json:"job_id"`
}

// jobResponse is the polling read model. MinFuel and Path are present
// only for completed jobs.
type jobResponse struct {
	JobID        string            `json:"job_id"`
	Status       string            `json:"status"`
	Solver       string            `json:"solver"`
	MinFuel      *float64          `json:"min_fuel,omitempty"`
	Path         []solver.PathStep `json:"path,omitempty"`
	Error        string            `json:"error,omitempty"`
	CancelReason string            `json:"cancel_reason,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	StartedAt    *time.Time        `json:"started_at,omitempty"`
	CompletedAt  *time.Time        `json:"completed_at,omitempty"`
}

// cancelResponse reports the outcome of a cancel request
type cancelResponse struct {
	Cancelled bool `json:"cancelled"`
}

// jobLogResponse is one persisted progress line
type jobLogResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
}

// healthResponse is the daemon health payload
type healthResponse struct {
	Status     string `json:"status"`
	Version    string `json:"version"`
	ActiveJobs int    `json:"active_jobs"`
}

// errorResponse is the uniform error payload
type errorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

func jobResponseFromView(view *jobs.JobView) jobResponse {
	resp := jobResponse{
		JobID:        view.JobID,
		Status:       string(view.Status),
		Solver:       string(view.Solver),
		Error:        view.ErrorMessage,
		CancelReason: view.CancelReason,
		CreatedAt:    view.CreatedAt,
		StartedAt:    view.StartedAt,
		CompletedAt:  view.CompletedAt,
	}
	if view.Status == job.StatusCompleted && view.Result != nil {
		minFuel := view.Result.MinFuel
		resp.MinFuel = &minFuel
		resp.Path = view.Result.Path
	}
	return resp
}

func jobLogResponses(entries []*job.LogEntry) []jobLogResponse {
	responses := make([]jobLogResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, jobLogResponse{
			Timestamp: entry.Timestamp,
			Level:     entry.Level,
			Message:   entry.Message,
		})
	}
	return responses
}
