package lro

import (
	"context"
	"encoding/json"
	"strings"
)

// Status represents the variable states of a remotely tracked operation.
//
// The set is open: services may report values not listed here, and those are treated as non-terminal.
type Status string

const (
	// "pending" status. Indicates an operation was accepted but has not started.
	StatusPending Status = "pending"
	// "in-progress" status. Indicates an operation is started and not yet completed.
	StatusInProgress Status = "in-progress"
	// "completed" status. Indicates an operation completed successfully.
	StatusCompleted Status = "completed"
	// "failed" status. Indicates an operation completed as failed.
	StatusFailed Status = "failed"
	// "canceled" status. Indicates an operation was stopped before completing.
	StatusCanceled Status = "canceled"
)

// Normalize lower cases s and trims surrounding whitespace.
func Normalize(s string) Status {
	return Status(strings.ToLower(strings.TrimSpace(s)))
}

// Failure carries the detail a service reports for an operation that completed as failed.
type Failure struct {
	// A simple text message.
	Message string `json:"message"`
	// Additional JSON serializable structured data.
	Details json.RawMessage `json:"details,omitempty"`
}

// Operation is a snapshot of a long-running operation as observed through a single fetch.
type Operation[T any] struct {
	// ID of the operation, opaque to the poller.
	ID string `json:"id"`
	// Status of the operation at the time it was fetched.
	Status Status `json:"status"`
	// Result is the domain payload the fetch returned.
	Result T `json:"result"`
	// Failure is set by fetchers when Status is StatusFailed and the service reported a reason.
	Failure *Failure `json:"failure,omitempty"`
}

// Succeeded reports whether the operation reached StatusCompleted.
func (o *Operation[T]) Succeeded() bool {
	return o.Status == StatusCompleted
}

// A FetchFunc returns the current state of one operation.
//
// It must be safe to call repeatedly. The poller never calls it concurrently with itself.
type FetchFunc[T any] func(ctx context.Context) (*Operation[T], error)
