package jobs

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/andrescamacho/chesthunt-go/internal/domain/job"
	"github.com/andrescamacho/chesthunt-go/internal/domain/solver"
)

// JobView is the polling caller's read model of a job. Result fields are
// populated only for COMPLETED jobs.
type JobView struct {
	JobID        string
	Status       job.Status
	Solver       solver.Kind
	Result       *solver.Result
	ErrorMessage string
	CancelReason string
	CreatedAt    time.Time
	StartedAt    *time.Time
	CompletedAt  *time.Time
}

// viewFromJob snapshots a live job entity
func viewFromJob(entity *job.SolveJob) *JobView {
	view := &JobView{
		JobID:        entity.ID(),
		Status:       entity.Status(),
		Solver:       entity.SolverKind(),
		CancelReason: entity.CancelReason(),
		CreatedAt:    entity.CreatedAt(),
		StartedAt:    entity.StartedAt(),
		CompletedAt:  entity.CompletedAt(),
	}
	if entity.Status() == job.StatusCompleted {
		view.Result = entity.Result()
	}
	if err := entity.LastError(); err != nil {
		view.ErrorMessage = err.Error()
	}
	return view
}

// ViewFromRecord rebuilds a read model from a persisted job record
func ViewFromRecord(record *job.Record) (*JobView, error) {
	view := &JobView{
		JobID:        record.ID,
		Status:       record.Status,
		Solver:       solver.Kind(record.Solver),
		ErrorMessage: record.ErrorMessage,
		CancelReason: record.CancelReason,
		CreatedAt:    record.CreatedAt,
		StartedAt:    record.StartedAt,
		CompletedAt:  record.CompletedAt,
	}

	if record.Status == job.StatusCompleted && record.MinFuel != nil {
		var path []solver.PathStep
		if record.PathJSON != "" {
			if err := json.Unmarshal([]byte(record.PathJSON), &path); err != nil {
				return nil, fmt.Errorf("failed to deserialize job path: %w", err)
			}
		}
		view.Result = &solver.Result{
			MinFuel: *record.MinFuel,
			Path:    path,
			Solver:  solver.Kind(record.Solver),
		}
	}

	return view, nil
}

// recordFromJob serializes a job entity for the persistence collaborator
func recordFromJob(entity *job.SolveJob) (*job.Record, error) {
	problem := entity.Problem()

	gridJSON, err := json.Marshal(problem.Grid)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize problem grid: %w", err)
	}

	record := &job.Record{
		ID:           entity.ID(),
		N:            problem.N,
		M:            problem.M,
		P:            problem.P,
		GridJSON:     string(gridJSON),
		Solver:       string(entity.SolverKind()),
		Status:       entity.Status(),
		CancelReason: entity.CancelReason(),
		CreatedAt:    entity.CreatedAt(),
		StartedAt:    entity.StartedAt(),
		CompletedAt:  entity.CompletedAt(),
	}

	if lastErr := entity.LastError(); lastErr != nil {
		record.ErrorMessage = lastErr.Error()
	}

	if result := entity.Result(); result != nil && entity.Status() == job.StatusCompleted {
		pathJSON, err := json.Marshal(result.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize job path: %w", err)
		}
		minFuel := result.MinFuel
		record.MinFuel = &minFuel
		record.PathJSON = string(pathJSON)
	}

	return record, nil
}
