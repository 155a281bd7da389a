package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/chesthunt-go/internal/domain/job"
)

// JobLogRepositoryGORM implements job.LogRepository using GORM
type JobLogRepositoryGORM struct {
	db *gorm.DB
}

// NewJobLogRepository creates a new GORM-based job log repository
func NewJobLogRepository(db *gorm.DB) *JobLogRepositoryGORM {
	return &JobLogRepositoryGORM{db: db}
}

// Append stores a log entry for a job
func (r *JobLogRepositoryGORM) Append(ctx context.Context, entry *job.LogEntry) error {
	model := &JobLogModel{
		JobID:     entry.JobID,
		Timestamp: entry.Timestamp,
		Level:     entry.Level,
		Message:   entry.Message,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to insert job log: %w", err)
	}

	return nil
}

// FindByJob retrieves all log entries of a job in insertion order
func (r *JobLogRepositoryGORM) FindByJob(ctx context.Context, jobID string) ([]*job.LogEntry, error) {
	var models []JobLogModel

	result := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("id ASC").
		Find(&models)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to list job logs: %w", result.Error)
	}

	entries := make([]*job.LogEntry, 0, len(models))
	for _, model := range models {
		entries = append(entries, &job.LogEntry{
			JobID:     model.JobID,
			Timestamp: model.Timestamp,
			Level:     model.Level,
			Message:   model.Message,
		})
	}

	return entries, nil
}
