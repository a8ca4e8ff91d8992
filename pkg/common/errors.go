package common

import (
	"errors"
	"fmt"
)

// ErrNilOperation is returned when a sequence contains a nil operation.
var ErrNilOperation = errors.New("nil operation")

// ExpansionError reports a placeholder that resolved to an unusable type.
type ExpansionError struct {
	Want string
	Got  any
}

func (e *ExpansionError) Error() string {
	return fmt.Sprintf("expanded value: expected %s, got %T", e.Want, e.Got)
}
