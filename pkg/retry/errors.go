package retry

import (
	"fmt"
)

// ExhaustedError is returned when a retryable error persists after the
// retry ceiling is reached.
type ExhaustedError struct {
	Retries int
	Err     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("gave up after %d retries: %v", e.Retries, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}
