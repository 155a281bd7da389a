package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/chesthunt-go/internal/domain/job"
)

// JobRepositoryGORM implements job.Repository using GORM
type JobRepositoryGORM struct {
	db *gorm.DB
}

// NewJobRepository creates a new GORM-based job repository
func NewJobRepository(db *gorm.DB) *JobRepositoryGORM {
	return &JobRepositoryGORM{db: db}
}

// Add creates a new job record in the database
func (r *JobRepositoryGORM) Add(ctx context.Context, record *job.Record) error {
	model := modelFromRecord(record)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to insert job: %w", err)
	}

	return nil
}

// UpdateStatus updates lifecycle and result fields of a job record
func (r *JobRepositoryGORM) UpdateStatus(ctx context.Context, record *job.Record) error {
	updates := map[string]interface{}{
		"status":        string(record.Status),
		"min_fuel":      record.MinFuel,
		"path":          record.PathJSON,
		"error_message": record.ErrorMessage,
		"cancel_reason": record.CancelReason,
		"started_at":    record.StartedAt,
		"completed_at":  record.CompletedAt,
	}

	result := r.db.WithContext(ctx).
		Model(&JobModel{}).
		Where("id = ?", record.ID).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update job status: %w", result.Error)
	}

	return nil
}

// Get retrieves a single job record by ID; returns nil if unknown
func (r *JobRepositoryGORM) Get(ctx context.Context, jobID string) (*job.Record, error) {
	var model JobModel

	result := r.db.WithContext(ctx).
		Where("id = ?", jobID).
		First(&model)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", result.Error)
	}

	return recordFromModel(&model), nil
}

// List retrieves the most recent job records, newest first
func (r *JobRepositoryGORM) List(ctx context.Context, limit int) ([]*job.Record, error) {
	var models []JobModel

	result := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&models)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", result.Error)
	}

	records := make([]*job.Record, 0, len(models))
	for i := range models {
		records = append(records, recordFromModel(&models[i]))
	}

	return records, nil
}

func modelFromRecord(record *job.Record) *JobModel {
	return &JobModel{
		ID:           record.ID,
		N:            record.N,
		M:            record.M,
		P:            record.P,
		Grid:         record.GridJSON,
		Solver:       record.Solver,
		Status:       string(record.Status),
		MinFuel:      record.MinFuel,
		Path:         record.PathJSON,
		ErrorMessage: record.ErrorMessage,
		CancelReason: record.CancelReason,
		CreatedAt:    record.CreatedAt,
		StartedAt:    record.StartedAt,
		CompletedAt:  record.CompletedAt,
	}
}

func recordFromModel(model *JobModel) *job.Record {
	return &job.Record{
		ID:           model.ID,
		N:            model.N,
		M:            model.M,
		P:            model.P,
		GridJSON:     model.Grid,
		Solver:       model.Solver,
		Status:       job.Status(model.Status),
		MinFuel:      model.MinFuel,
		PathJSON:     model.Path,
		ErrorMessage: model.ErrorMessage,
		CancelReason: model.CancelReason,
		CreatedAt:    model.CreatedAt,
		StartedAt:    model.StartedAt,
		CompletedAt:  model.CompletedAt,
	}
}
