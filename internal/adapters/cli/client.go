package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DaemonClient talks to the chesthunt daemon's HTTP job surface
type DaemonClient struct {
	baseURL string
	client  *http.Client
}

// NewDaemonClient creates a client for the given daemon base URL
func NewDaemonClient(baseURL string) *DaemonClient {
	return &DaemonClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// SolveRequest is the job submission payload
type SolveRequest struct {
	N    int     `json:"n"`
	M    int     `json:"m"`
	P    int     `json:"p"`
	Grid [][]int `json:"grid"`
}

// PathStep mirrors one step of a computed route
type PathStep struct {
	ChestNumber    int `json:"chest_number"`
	Position       struct {
		Row int `json:"row"`
		Col int `json:"col"`
	} `json:"position"`
	FuelUsed       float64 `json:"fuel_used"`
	CumulativeFuel float64 `json:"cumulative_fuel"`
}

// Job mirrors the daemon's job read model
type Job struct {
	JobID        string     `json:"job_id"`
	Status       string     `json:"status"`
	Solver       string     `json:"solver"`
	MinFuel      *float64   `json:"min_fuel,omitempty"`
	Path         []PathStep `json:"path,omitempty"`
	Error        string     `json:"error,omitempty"`
	CancelReason string     `json:"cancel_reason,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// JobLog mirrors one persisted progress line
type JobLog struct {
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
}

// Health mirrors the daemon health payload
type Health struct {
	Status     string `json:"status"`
	Version    string `json:"version"`
	ActiveJobs int    `json:"active_jobs"`
}

// IsTerminal reports whether the job reached a final status
func (j *Job) IsTerminal() bool {
	switch j.Status {
	case "COMPLETED", "FAILED", "CANCELLED":
		return true
	}
	return false
}

// Solve submits a problem and returns the scheduled job ID
func (c *DaemonClient) Solve(ctx context.Context, req *SolveRequest) (string, error) {
	var resp struct {
		JobID string `json:"job_id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/solve", req, &resp); err != nil {
		return "", err
	}
	return resp.JobID, nil
}

// GetJob polls one job's status
func (c *DaemonClient) GetJob(ctx context.Context, jobID string) (*Job, error) {
	var job Job
	if err := c.do(ctx, http.MethodGet, "/api/jobs/"+jobID, nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// CancelJob requests cancellation; true if the job was still active
func (c *DaemonClient) CancelJob(ctx context.Context, jobID string) (bool, error) {
	var resp struct {
		Cancelled bool `json:"cancelled"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/jobs/"+jobID+"/cancel", nil, &resp); err != nil {
		return false, err
	}
	return resp.Cancelled, nil
}

// ListJobs retrieves recent jobs, newest first
func (c *DaemonClient) ListJobs(ctx context.Context, limit int) ([]Job, error) {
	var resp struct {
		Jobs []Job `json:"jobs"`
	}
	path := fmt.Sprintf("/api/jobs?limit=%d", limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Jobs, nil
}

// GetJobLogs retrieves a job's progress lines
func (c *DaemonClient) GetJobLogs(ctx context.Context, jobID string) ([]JobLog, error) {
	var resp struct {
		Logs []JobLog `json:"logs"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/jobs/"+jobID+"/logs", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Logs, nil
}

// HealthCheck verifies the daemon is responsive
func (c *DaemonClient) HealthCheck(ctx context.Context) (*Health, error) {
	var health Health
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// do executes one JSON request/response round trip
func (c *DaemonClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return fmt.Errorf("daemon returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("daemon returned %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
