package job

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidJob is returned for structurally invalid job files.
	ErrInvalidJob = errors.New("invalid job")
	// ErrUnknownOperation is returned for operation kinds the runner does not know.
	ErrUnknownOperation = errors.New("unknown operation")
)

// StepError locates a failure within a job's operation list.
type StepError struct {
	Index int
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("operation %d: %v", e.Index, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
