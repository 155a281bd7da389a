package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Validation errors
//
// Raised before any solver runs; the only error class that surfaces
// synchronously to the caller submitting a problem.

type ValidationError struct {
	*DomainError
	Fields []string
}

func NewValidationError(message string, fields ...string) *ValidationError {
	return &ValidationError{
		DomainError: &DomainError{Message: message},
		Fields:      fields,
	}
}

// IsValidationError reports whether err is a problem validation error
func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

// MissingChestError indicates a chest number in 1..p with no candidate cell
type MissingChestError struct {
	*ValidationError
	ChestNumber int
}

func NewMissingChestError(chestNumber int) *MissingChestError {
	return &MissingChestError{
		ValidationError: NewValidationError(
			fmt.Sprintf("chest %d has no candidate position in the grid", chestNumber)),
		ChestNumber: chestNumber,
	}
}

// Job errors

type JobNotFoundError struct {
	*DomainError
	JobID string
}

func NewJobNotFoundError(jobID string) *JobNotFoundError {
	return &JobNotFoundError{
		DomainError: &DomainError{Message: fmt.Sprintf("job not found: %s", jobID)},
		JobID:       jobID,
	}
}

// InvalidTransitionError indicates a lifecycle transition not allowed from
// the job's current status
type InvalidTransitionError struct {
	*DomainError
}

func NewInvalidTransitionError(message string) *InvalidTransitionError {
	return &InvalidTransitionError{DomainError: &DomainError{Message: message}}
}
