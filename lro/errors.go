package lro

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidConfiguration is returned before any fetch when PollOptions are unusable.
	ErrInvalidConfiguration = errors.New("invalid poll configuration")
	// ErrTimeout matches any *TimeoutError with errors.Is.
	ErrTimeout = errors.New("operation wait timed out")
)

func newConfigurationError(message string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(message, args...))
}

// TimeoutError is returned when the deadline elapses before a terminal status is observed.
type TimeoutError struct {
	ID       string
	Elapsed  time.Duration
	Deadline time.Duration
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("operation %q did not reach a terminal state within %s (elapsed %s)", e.ID, e.Deadline, e.Elapsed)
}

// Is makes errors.Is(err, ErrTimeout) true.
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// FetchError wraps the error returned by a FetchFunc. The poller does not retry.
type FetchError struct {
	ID string
	// Attempt is the 1-based fetch attempt that failed.
	Attempt int
	Err     error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("fetch attempt %d failed: %v", e.Attempt, e.Err)
	}
	return fmt.Sprintf("fetching operation %q (attempt %d): %v", e.ID, e.Attempt, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// CanceledError is returned when the caller's context is done before a terminal status is observed.
type CanceledError struct {
	ID string
	// Err is the context's error.
	Err error
}

// Error implements the error interface.
func (e *CanceledError) Error() string {
	return fmt.Sprintf("waiting for operation %q canceled: %v", e.ID, e.Err)
}

func (e *CanceledError) Unwrap() error {
	return e.Err
}

var errNilOperation = errors.New("fetch returned no operation")
