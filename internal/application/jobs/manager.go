package jobs

import (
	"context"
	"fmt"
	"sync"

	"github.com/andrescamacho/chesthunt-go/internal/domain/grid"
	"github.com/andrescamacho/chesthunt-go/internal/domain/job"
	"github.com/andrescamacho/chesthunt-go/internal/domain/shared"
	"github.com/andrescamacho/chesthunt-go/internal/domain/solver"
	"github.com/andrescamacho/chesthunt-go/pkg/utils"
)

// MetricsRecorder receives job lifecycle events for observability.
// Implemented by the prometheus metrics adapter; nil disables recording.
type MetricsRecorder interface {
	RecordJobStarted(solverKind string)
	RecordJobTerminal(solverKind string, status job.Status, durationSeconds float64)
	SetActiveJobs(count int)
}

// Manager is the job lifecycle manager: it owns the table of live runners,
// validates problems before any job exists, and is the only
// synchronization point between submitting callers and background workers.
type Manager struct {
	repo      job.Repository
	logRepo   job.LogRepository
	validator *grid.Validator
	recorder  MetricsRecorder
	opts      solver.Options
	clock     shared.Clock
	maxActive int

	runners map[string]*JobRunner
	mu      sync.RWMutex
}

// ErrTooManyActiveJobs is returned when the daemon's concurrent job cap is hit
type ErrTooManyActiveJobs struct {
	Limit int
}

func (e *ErrTooManyActiveJobs) Error() string {
	return fmt.Sprintf("too many active jobs (limit %d)", e.Limit)
}

// NewManager creates a job manager. maxActive <= 0 disables the cap;
// a nil clock selects the real clock.
func NewManager(
	repo job.Repository,
	logRepo job.LogRepository,
	recorder MetricsRecorder,
	opts solver.Options,
	maxActive int,
	clock shared.Clock,
) *Manager {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Manager{
		repo:      repo,
		logRepo:   logRepo,
		validator: grid.NewValidator(),
		recorder:  recorder,
		opts:      opts,
		clock:     clock,
		maxActive: maxActive,
		runners:   make(map[string]*JobRunner),
	}
}

// StartSolve validates the problem, persists a PENDING job, and schedules
// background execution. Returns the job identity immediately; validation
// errors are the only failures surfaced synchronously, and no job is
// created for them.
func (m *Manager) StartSolve(ctx context.Context, problem *grid.ProblemInstance) (string, error) {
	if err := m.validator.ValidateProblem(problem); err != nil {
		return "", err
	}

	if m.maxActive > 0 && m.ActiveCount() >= m.maxActive {
		return "", &ErrTooManyActiveJobs{Limit: m.maxActive}
	}

	kind := solver.Select(problem.P, m.opts).Name()
	jobID := utils.GenerateJobID("solve", problem.P)
	jobEntity := job.NewSolveJob(jobID, problem, kind, m.clock)

	runner := NewJobRunner(jobEntity, m.repo, m.logRepo, m.recorder, m.opts)

	if m.repo != nil {
		record, err := recordFromJob(jobEntity)
		if err != nil {
			return "", err
		}
		if err := m.repo.Add(ctx, record); err != nil {
			return "", fmt.Errorf("failed to persist job: %w", err)
		}
	}

	m.mu.Lock()
	m.runners[jobID] = runner
	m.mu.Unlock()

	if err := runner.Start(); err != nil {
		// A cancel request can land between registration and start; the
		// CANCELLED status stands and there is nothing to run.
		if _, raced := err.(*shared.InvalidTransitionError); !raced {
			return "", err
		}
	}

	if m.recorder != nil {
		m.recorder.RecordJobStarted(string(kind))
		m.recorder.SetActiveJobs(m.ActiveCount())
	}

	return jobID, nil
}

// GetStatus returns the current status of a job plus, when completed, the
// computed result. Live jobs are answered from the runner table; finished
// jobs evicted from memory fall back to persistence. Non-blocking.
func (m *Manager) GetStatus(ctx context.Context, jobID string) (*JobView, error) {
	m.mu.RLock()
	runner, ok := m.runners[jobID]
	m.mu.RUnlock()

	if ok {
		return runner.Snapshot(), nil
	}

	if m.repo != nil {
		record, err := m.repo.Get(ctx, jobID)
		if err != nil {
			return nil, err
		}
		if record != nil {
			return ViewFromRecord(record)
		}
	}

	return nil, shared.NewJobNotFoundError(jobID)
}

// Cancel requests cooperative cancellation of a job. Returns true only if
// the job was PENDING or IN_PROGRESS; false for unknown or already
// terminal jobs.
func (m *Manager) Cancel(ctx context.Context, jobID, reason string) bool {
	m.mu.RLock()
	runner, ok := m.runners[jobID]
	m.mu.RUnlock()

	if !ok {
		return false
	}

	cancelled := runner.Cancel(reason)
	if cancelled && m.recorder != nil {
		m.recorder.SetActiveJobs(m.ActiveCount())
	}
	return cancelled
}

// List returns the most recent jobs from persistence, newest first
func (m *Manager) List(ctx context.Context, limit int) ([]*JobView, error) {
	if m.repo == nil {
		return nil, nil
	}

	records, err := m.repo.List(ctx, limit)
	if err != nil {
		return nil, err
	}

	views := make([]*JobView, 0, len(records))
	for _, record := range records {
		// Prefer the live snapshot while the runner is still in memory
		m.mu.RLock()
		runner, live := m.runners[record.ID]
		m.mu.RUnlock()

		if live {
			views = append(views, runner.Snapshot())
			continue
		}

		view, err := ViewFromRecord(record)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// Logs returns the persisted progress lines of a job in insertion order
func (m *Manager) Logs(ctx context.Context, jobID string) ([]*job.LogEntry, error) {
	if m.logRepo == nil {
		return nil, nil
	}

	m.mu.RLock()
	_, live := m.runners[jobID]
	m.mu.RUnlock()

	if !live && m.repo != nil {
		record, err := m.repo.Get(ctx, jobID)
		if err != nil {
			return nil, err
		}
		if record == nil {
			return nil, shared.NewJobNotFoundError(jobID)
		}
	}

	return m.logRepo.FindByJob(ctx, jobID)
}

// ActiveCount returns how many jobs are currently PENDING or IN_PROGRESS
func (m *Manager) ActiveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, runner := range m.runners {
		if !runner.IsFinished() {
			count++
		}
	}
	return count
}

// Shutdown cancels every active job with the given reason and waits for
// their background goroutines to exit
func (m *Manager) Shutdown(reason string) {
	m.mu.RLock()
	runners := make([]*JobRunner, 0, len(m.runners))
	for _, runner := range m.runners {
		runners = append(runners, runner)
	}
	m.mu.RUnlock()

	for _, runner := range runners {
		runner.Cancel(reason)
	}
	for _, runner := range runners {
		<-runner.Done()
	}

	if m.recorder != nil {
		m.recorder.SetActiveJobs(0)
	}
}
