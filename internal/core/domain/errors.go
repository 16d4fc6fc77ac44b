package domain

import (
	"errors"
	"fmt"
)

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrDependencyCycle    = errors.New("dependency cycle")
	ErrSelfDependency     = errors.New("task cannot depend on itself")
	ErrUnknownDependency  = errors.New("unknown dependency task")
	ErrDependencyBlocked  = errors.New("task blocked by incomplete dependencies")
	ErrInvalidTaskPayload = errors.New("invalid task payload")
)

// ValidationError carries the offending field so the HTTP edge can report
// field-level detail. It wraps one of the sentinel errors above.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidationError(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Err: err}
}

// DependencyBlockedError reports a completion attempt gated by unmet
// dependencies. BlockingIDs lists the dependency ids that are not completed,
// dangling references included.
type DependencyBlockedError struct {
	TaskID      uint64
	BlockingIDs []uint64
}

func (e *DependencyBlockedError) Error() string {
	return fmt.Sprintf("task %d blocked by dependencies %v", e.TaskID, e.BlockingIDs)
}

func (e *DependencyBlockedError) Unwrap() error {
	return ErrDependencyBlocked
}
