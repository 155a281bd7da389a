package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/andrescamacho/chesthunt-go/internal/domain/grid"
	"github.com/andrescamacho/chesthunt-go/internal/domain/job"
	"github.com/andrescamacho/chesthunt-go/internal/domain/solver"
)

// persistTimeout bounds the detached status writes performed by the runner
const persistTimeout = 5 * time.Second

// JobRunner executes one solve job in a background goroutine. It owns the
// job entity after submission: every read or transition goes through the
// runner's lock, which serializes the cancel request against the solver's
// completion commit.
type JobRunner struct {
	jobEntity *job.SolveJob
	repo      job.Repository
	logRepo   job.LogRepository
	recorder  MetricsRecorder
	opts      solver.Options

	ctx        context.Context
	cancelFunc context.CancelFunc
	done       chan struct{}
	started    bool
	mu         sync.RWMutex
}

// NewJobRunner creates a runner for a pending job
func NewJobRunner(
	jobEntity *job.SolveJob,
	repo job.Repository,
	logRepo job.LogRepository,
	recorder MetricsRecorder,
	opts solver.Options,
) *JobRunner {
	ctx, cancel := context.WithCancel(context.Background())

	return &JobRunner{
		jobEntity:  jobEntity,
		repo:       repo,
		logRepo:    logRepo,
		recorder:   recorder,
		opts:       opts,
		ctx:        ctx,
		cancelFunc: cancel,
		done:       make(chan struct{}),
	}
}

// Snapshot returns the current read model of the job
func (r *JobRunner) Snapshot() *JobView {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return viewFromJob(r.jobEntity)
}

// JobID returns the identity of the job being run
func (r *JobRunner) JobID() string {
	return r.jobEntity.ID()
}

// IsFinished reports whether the job reached a terminal status
func (r *JobRunner) IsFinished() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.jobEntity.IsFinished()
}

// Done is closed once the background execution has exited
func (r *JobRunner) Done() <-chan struct{} {
	return r.done
}

// Start transitions the job to IN_PROGRESS and launches the solve in the
// background. Never blocks on solver completion.
func (r *JobRunner) Start() error {
	r.mu.Lock()
	if err := r.jobEntity.Start(); err != nil {
		r.mu.Unlock()
		return err
	}
	r.started = true
	r.mu.Unlock()

	r.log("INFO", fmt.Sprintf("job started with solver %s", r.jobEntity.SolverKind()))
	r.persistStatus()

	go r.execute()

	return nil
}

// Cancel triggers the cooperative cancellation signal and atomically marks
// the job CANCELLED. Returns true only if the job was still PENDING or
// IN_PROGRESS; terminal jobs are an idempotent no-op.
func (r *JobRunner) Cancel(reason string) bool {
	r.mu.Lock()
	if err := r.jobEntity.Cancel(reason); err != nil {
		r.mu.Unlock()
		return false
	}
	started := r.started
	r.mu.Unlock()

	r.cancelFunc()
	if !started {
		// Cancelled straight from PENDING: execute() will never run, so
		// the runner is finished here.
		close(r.done)
	}
	r.log("INFO", fmt.Sprintf("job cancelled: %s", reason))
	r.persistStatus()
	r.recordTerminal()
	return true
}

// execute runs the end-to-end solve outside the caller's request path.
// Computation failures are caught here and recorded as FAILED; they must
// never crash the worker pool or leak to the caller of start.
func (r *JobRunner) execute() {
	defer close(r.done)

	defer func() {
		if recovered := recover(); recovered != nil {
			r.fail(fmt.Errorf("solver panic: %v", recovered))
		}
	}()

	groups, err := grid.IndexChests(r.jobEntity.Problem())
	if err != nil {
		r.fail(err)
		return
	}
	r.log("INFO", fmt.Sprintf("indexed %d chest groups (largest %d candidates)",
		len(groups), groups.MaxGroupSize()))

	selected := solver.Select(r.jobEntity.Problem().P, r.opts)
	result, err := selected.Solve(r.ctx, groups)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// Cancel() already transitioned and persisted the entity; the
			// solver observed the signal at the next layer/step boundary.
			r.log("INFO", "solver aborted after cancellation signal")
			return
		}
		r.fail(err)
		return
	}

	r.mu.Lock()
	commitErr := r.jobEntity.Complete(result)
	r.mu.Unlock()

	if commitErr != nil {
		// Lost the race against a cancel request; the CANCELLED status
		// stands and the result is discarded.
		r.log("INFO", "discarding result computed after cancellation")
		return
	}

	r.log("INFO", fmt.Sprintf("solve completed: min fuel %.6f over %d steps",
		result.MinFuel, len(result.Path)))
	r.persistStatus()
	r.recordTerminal()
}

// fail transitions to FAILED and persists the error message
func (r *JobRunner) fail(cause error) {
	r.mu.Lock()
	transitionErr := r.jobEntity.Fail(cause)
	r.mu.Unlock()

	if transitionErr != nil {
		return
	}

	r.log("ERROR", fmt.Sprintf("solve failed: %v", cause))
	r.persistStatus()
	r.recordTerminal()
}

// persistStatus writes the current job state through the repository.
// Persistence problems are logged, never propagated into the lifecycle.
func (r *JobRunner) persistStatus() {
	if r.repo == nil {
		return
	}

	r.mu.RLock()
	record, err := recordFromJob(r.jobEntity)
	r.mu.RUnlock()
	if err != nil {
		r.log("ERROR", fmt.Sprintf("failed to serialize job state: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := r.repo.UpdateStatus(ctx, record); err != nil {
		r.log("ERROR", fmt.Sprintf("failed to persist %s status: %v", record.Status, err))
	}
}

// recordTerminal reports the terminal outcome to the metrics recorder
func (r *JobRunner) recordTerminal() {
	if r.recorder == nil {
		return
	}

	r.mu.RLock()
	status := r.jobEntity.Status()
	kind := r.jobEntity.SolverKind()
	seconds := r.jobEntity.RuntimeDuration().Seconds()
	r.mu.RUnlock()

	r.recorder.RecordJobTerminal(string(kind), status, seconds)
}

// log stores a progress line for the job
func (r *JobRunner) log(level, message string) {
	if r.logRepo == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	entry := &job.LogEntry{
		JobID:     r.jobEntity.ID(),
		Timestamp: time.Now().UTC(),
		Level:     level,
		Message:   message,
	}
	_ = r.logRepo.Append(ctx, entry)
}
