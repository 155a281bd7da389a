package job

import (
	"fmt"
	"time"

	"github.com/andrescamacho/chesthunt-go/internal/domain/grid"
	"github.com/andrescamacho/chesthunt-go/internal/domain/shared"
	"github.com/andrescamacho/chesthunt-go/internal/domain/solver"
)

// Status represents the lifecycle state of a solve job
type Status string

const (
	// StatusPending indicates the job is queued but not started
	StatusPending Status = "PENDING"

	// StatusInProgress indicates the solver is actively running
	StatusInProgress Status = "IN_PROGRESS"

	// StatusCompleted indicates the solver finished and a result is stored
	StatusCompleted Status = "COMPLETED"

	// StatusFailed indicates the solver encountered an error
	StatusFailed Status = "FAILED"

	// StatusCancelled indicates the job was cancelled by request
	StatusCancelled Status = "CANCELLED"
)

// SolveJob is one tracked asynchronous solve request. The entity itself is
// not goroutine safe; the runner owning it serializes access.
//
// Lifecycle integration:
// - Uses LifecycleStateMachine for state management and timestamps
// - The result is only ever stored by a successful Complete transition,
//   so a cancelled job's result is never populated
type SolveJob struct {
	id         string
	problem    *grid.ProblemInstance
	solverKind solver.Kind

	lifecycle *shared.LifecycleStateMachine

	result       *solver.Result
	cancelReason string
}

// NewSolveJob creates a job in PENDING state for the given problem.
// If clock is nil, uses RealClock (production behavior)
func NewSolveJob(id string, problem *grid.ProblemInstance, solverKind solver.Kind, clock shared.Clock) *SolveJob {
	return &SolveJob{
		id:         id,
		problem:    problem,
		solverKind: solverKind,
		lifecycle:  shared.NewLifecycleStateMachine(clock),
	}
}

func (j *SolveJob) ID() string                     { return j.id }
func (j *SolveJob) Problem() *grid.ProblemInstance { return j.problem }
func (j *SolveJob) SolverKind() solver.Kind        { return j.solverKind }
func (j *SolveJob) Result() *solver.Result         { return j.result }
func (j *SolveJob) CancelReason() string           { return j.cancelReason }

// Lifecycle timestamp accessors (delegate to lifecycle machine)

func (j *SolveJob) CreatedAt() time.Time    { return j.lifecycle.CreatedAt() }
func (j *SolveJob) StartedAt() *time.Time   { return j.lifecycle.StartedAt() }
func (j *SolveJob) CompletedAt() *time.Time { return j.lifecycle.CompletedAt() }
func (j *SolveJob) LastError() error        { return j.lifecycle.LastError() }

// Status returns the current job status
func (j *SolveJob) Status() Status {
	switch j.lifecycle.Status() {
	case shared.LifecycleStatusPending:
		return StatusPending
	case shared.LifecycleStatusInProgress:
		return StatusInProgress
	case shared.LifecycleStatusCompleted:
		return StatusCompleted
	case shared.LifecycleStatusFailed:
		return StatusFailed
	case shared.LifecycleStatusCancelled:
		return StatusCancelled
	default:
		return StatusPending
	}
}

// Start transitions the job to IN_PROGRESS
func (j *SolveJob) Start() error {
	return j.lifecycle.Start()
}

// Complete commits a result and transitions to COMPLETED. The transition
// fails unless the job is still IN_PROGRESS, so a job cancelled while the
// solver was mid-flight keeps its CANCELLED status and never gains a
// result (optimistic check-then-set).
func (j *SolveJob) Complete(result *solver.Result) error {
	if err := j.lifecycle.Complete(); err != nil {
		return err
	}
	j.result = result
	return nil
}

// Fail transitions the job to FAILED, recording the error
func (j *SolveJob) Fail(err error) error {
	return j.lifecycle.Fail(err)
}

// Cancel transitions the job to CANCELLED, recording the reason.
// Allowed from PENDING and IN_PROGRESS only.
func (j *SolveJob) Cancel(reason string) error {
	if err := j.lifecycle.Cancel(); err != nil {
		return err
	}
	j.cancelReason = reason
	return nil
}

// IsFinished returns true if the job reached a terminal status
func (j *SolveJob) IsFinished() bool {
	return j.lifecycle.IsFinished()
}

// RuntimeDuration reports how long the solver has been/was running
func (j *SolveJob) RuntimeDuration() time.Duration {
	return j.lifecycle.RuntimeDuration()
}

// String provides human-readable representation
func (j *SolveJob) String() string {
	return fmt.Sprintf("SolveJob[%s, solver=%s, status=%s, p=%d]",
		j.id, j.solverKind, j.Status(), j.problem.P)
}
