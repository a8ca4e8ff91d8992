package httpclient

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
)

// ErrUnexpectedStatus is matched by every *StatusError.
var ErrUnexpectedStatus = errors.New("unexpected status")

// StatusError is returned when the upstream answers outside the accepted
// status set.
type StatusError struct {
	StatusCode int
	Body       any
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: HTTP %d %s", ErrUnexpectedStatus, e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

// IsSuccess reports whether code is in codes, or in DefaultSuccessCodes
// when codes is empty.
func IsSuccess(code int, codes ...int) bool {
	if len(codes) == 0 {
		codes = DefaultSuccessCodes
	}
	return slices.Contains(codes, code)
}

// StatusCode extracts the status from err when it is a *StatusError.
func StatusCode(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode, true
	}
	return 0, false
}
