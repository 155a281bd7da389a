package shared

import (
	"fmt"
	"time"
)

// LifecycleStatus represents the state of an entity in its lifecycle
type LifecycleStatus string

const (
	// LifecycleStatusPending indicates the entity is queued but not started
	LifecycleStatusPending LifecycleStatus = "PENDING"

	// LifecycleStatusInProgress indicates the entity is actively executing
	LifecycleStatusInProgress LifecycleStatus = "IN_PROGRESS"

	// LifecycleStatusCompleted indicates the entity finished successfully
	LifecycleStatusCompleted LifecycleStatus = "COMPLETED"

	// LifecycleStatusFailed indicates the entity encountered an error
	LifecycleStatusFailed LifecycleStatus = "FAILED"

	// LifecycleStatusCancelled indicates the entity was cancelled by request
	LifecycleStatusCancelled LifecycleStatus = "CANCELLED"
)

// LifecycleStateMachine manages the common lifecycle state transitions for
// entities that follow the PENDING → IN_PROGRESS → COMPLETED/FAILED/CANCELLED
// pattern. CANCELLED is also reachable directly from PENDING.
//
// Invariants:
// - Terminal states (COMPLETED, FAILED, CANCELLED) are never left
// - Timestamps are automatically managed
// - Clock is injected for testability
type LifecycleStateMachine struct {
	status      LifecycleStatus
	createdAt   time.Time
	updatedAt   time.Time
	startedAt   *time.Time
	completedAt *time.Time
	lastError   error
	clock       Clock
}

// NewLifecycleStateMachine creates a new lifecycle state machine in PENDING state
func NewLifecycleStateMachine(clock Clock) *LifecycleStateMachine {
	if clock == nil {
		clock = NewRealClock()
	}

	now := clock.Now()
	return &LifecycleStateMachine{
		status:    LifecycleStatusPending,
		createdAt: now,
		updatedAt: now,
		clock:     clock,
	}
}

// Status returns the current lifecycle status
func (sm *LifecycleStateMachine) Status() LifecycleStatus {
	return sm.status
}

// CreatedAt returns when the entity was created
func (sm *LifecycleStateMachine) CreatedAt() time.Time {
	return sm.createdAt
}

// UpdatedAt returns when the entity was last updated
func (sm *LifecycleStateMachine) UpdatedAt() time.Time {
	return sm.updatedAt
}

// StartedAt returns when the entity started execution (nil if not started)
func (sm *LifecycleStateMachine) StartedAt() *time.Time {
	return sm.startedAt
}

// CompletedAt returns when the entity reached a terminal state (nil if still active)
func (sm *LifecycleStateMachine) CompletedAt() *time.Time {
	return sm.completedAt
}

// LastError returns the last error encountered (nil if no error)
func (sm *LifecycleStateMachine) LastError() error {
	return sm.lastError
}

// Start transitions from PENDING to IN_PROGRESS state
func (sm *LifecycleStateMachine) Start() error {
	if sm.status != LifecycleStatusPending {
		return NewInvalidTransitionError(fmt.Sprintf("cannot start from %s state", sm.status))
	}

	now := sm.clock.Now()
	sm.status = LifecycleStatusInProgress
	sm.startedAt = &now
	sm.updatedAt = now
	return nil
}

// Complete transitions from IN_PROGRESS to COMPLETED state.
// The IN_PROGRESS precondition is the optimistic check that keeps a job
// already cancelled by an external request from being overwritten.
func (sm *LifecycleStateMachine) Complete() error {
	if sm.status != LifecycleStatusInProgress {
		return NewInvalidTransitionError(fmt.Sprintf("cannot complete from %s state", sm.status))
	}

	now := sm.clock.Now()
	sm.status = LifecycleStatusCompleted
	sm.completedAt = &now
	sm.updatedAt = now
	return nil
}

// Fail transitions from PENDING or IN_PROGRESS to FAILED state with an error
func (sm *LifecycleStateMachine) Fail(err error) error {
	if sm.IsFinished() {
		return NewInvalidTransitionError(fmt.Sprintf("cannot fail from %s state", sm.status))
	}

	now := sm.clock.Now()
	sm.status = LifecycleStatusFailed
	sm.lastError = err
	sm.completedAt = &now
	sm.updatedAt = now
	return nil
}

// Cancel transitions from PENDING or IN_PROGRESS to CANCELLED state
func (sm *LifecycleStateMachine) Cancel() error {
	if sm.IsFinished() {
		return NewInvalidTransitionError(fmt.Sprintf("cannot cancel from %s state", sm.status))
	}

	now := sm.clock.Now()
	sm.status = LifecycleStatusCancelled
	sm.completedAt = &now
	sm.updatedAt = now
	return nil
}

// IsInProgress returns true if the entity is currently executing
func (sm *LifecycleStateMachine) IsInProgress() bool {
	return sm.status == LifecycleStatusInProgress
}

// IsPending returns true if the entity hasn't started yet
func (sm *LifecycleStateMachine) IsPending() bool {
	return sm.status == LifecycleStatusPending
}

// IsFinished returns true if the entity has completed, failed, or been cancelled
func (sm *LifecycleStateMachine) IsFinished() bool {
	return sm.status == LifecycleStatusCompleted ||
		sm.status == LifecycleStatusFailed ||
		sm.status == LifecycleStatusCancelled
}

// RuntimeDuration calculates how long the entity has been/was running.
// Returns 0 if not started yet
func (sm *LifecycleStateMachine) RuntimeDuration() time.Duration {
	if sm.startedAt == nil {
		return 0
	}

	endTime := sm.clock.Now()
	if sm.completedAt != nil {
		endTime = *sm.completedAt
	}

	return endTime.Sub(*sm.startedAt)
}
