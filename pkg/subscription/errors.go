package subscription

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("subscription not found")
	ErrDuplicateName = errors.New("subscription name already exists")
)

// ValidationError reports malformed input. It is always detected before any
// subscription row is written.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
