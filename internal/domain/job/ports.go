package job

import (
	"context"
	"time"
)

// Record is the persistence-facing snapshot of a job: identity, original
// problem dimensions, serialized path, minimum fuel, status, and
// timestamps. Storage and retrieval are the repository's concern, not
// computation.
type Record struct {
	ID           string
	N            int
	M            int
	P            int
	GridJSON     string
	Solver       string
	Status       Status
	MinFuel      *float64
	PathJSON     string
	ErrorMessage string
	CancelReason string
	CreatedAt    time.Time
	StartedAt    *time.Time
	CompletedAt  *time.Time
}

// Repository defines persistence operations for solve jobs
type Repository interface {
	// Add inserts a newly created job record
	Add(ctx context.Context, record *Record) error

	// UpdateStatus updates the lifecycle fields of a job record,
	// including result or error information once terminal
	UpdateStatus(ctx context.Context, record *Record) error

	// Get retrieves a single job record by ID; nil if unknown
	Get(ctx context.Context, jobID string) (*Record, error)

	// List retrieves the most recent job records, newest first
	List(ctx context.Context, limit int) ([]*Record, error)
}

// LogEntry is one progress line emitted while a job solves
type LogEntry struct {
	JobID     string
	Timestamp time.Time
	Level     string
	Message   string
}

// LogRepository defines persistence operations for per-job progress logs
type LogRepository interface {
	// Append stores a log entry for a job
	Append(ctx context.Context, entry *LogEntry) error

	// FindByJob retrieves all log entries of a job in insertion order
	FindByJob(ctx context.Context, jobID string) ([]*LogEntry, error)
}
