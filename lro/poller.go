package lro

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultDeadline is the wait budget used by the CLI when none is given.
	DefaultDeadline = 300 * time.Second
	// DefaultInterval is the time between status checks used by the CLI when none is given.
	DefaultInterval = 2 * time.Second
)

// DefaultTerminalStatuses are the statuses that stop polling when PollOptions.TerminalStatuses is empty.
var DefaultTerminalStatuses = []Status{StatusCompleted, StatusFailed}

// CancelableTerminalStatuses also stop on StatusCanceled, for operations the service can stop on its own.
var CancelableTerminalStatuses = []Status{StatusCompleted, StatusFailed, StatusCanceled}

// PollOptions are options for PollUntilTerminal.
type PollOptions struct {
	// OperationID names the operation in errors and logs until a fetch reports one.
	OperationID string
	// Deadline is the maximum time to wait before giving up. Must be positive.
	Deadline time.Duration
	// Interval is the time between status checks. Must be positive.
	Interval time.Duration
	// TerminalStatuses stop the loop when observed.
	// Defaults to DefaultTerminalStatuses.
	TerminalStatuses []Status
	// Clock used for elapsed time accounting and sleeping.
	// Defaults to SystemClock.
	Clock Clock
	// Logger receives a debug entry per fetch.
	// Defaults to a no-op logger.
	Logger *zap.Logger
	// OnPoll, if set, is called after every successful fetch.
	OnPoll func(attempt int, id string, status Status)
}

// DefaultPollOptions returns options with DefaultDeadline and DefaultInterval set.
func DefaultPollOptions() PollOptions {
	return PollOptions{Deadline: DefaultDeadline, Interval: DefaultInterval}
}

// IsTerminal reports whether status stops polling under these options.
func (o PollOptions) IsTerminal(status Status) bool {
	terminal := o.TerminalStatuses
	if len(terminal) == 0 {
		terminal = DefaultTerminalStatuses
	}
	for _, s := range terminal {
		if s == status {
			return true
		}
	}
	return false
}

func (o PollOptions) validate() error {
	if o.Deadline <= 0 {
		return newConfigurationError("deadline must be positive, got %s", o.Deadline)
	}
	if o.Interval <= 0 {
		return newConfigurationError("interval must be positive, got %s", o.Interval)
	}
	return nil
}

// PollUntilTerminal calls fetch until it reports a terminal status, the deadline elapses or ctx is done.
//
// A terminal operation is returned without error even when its status is StatusFailed; callers inspect the status to
// distinguish success from a failure reported by the service. Errors returned are one of:
//   - ErrInvalidConfiguration (wrapped) if the options are unusable. fetch is not called.
//   - *FetchError if a single fetch fails. There is no retry, see RetryFetch.
//   - *TimeoutError if the deadline elapses first.
//   - *CanceledError if ctx is done first.
//
// Fetches are sequential. The poller sleeps for Interval between fetches, capped to the remaining budget, and does not
// sleep after observing a terminal status.
func PollUntilTerminal[T any](ctx context.Context, fetch FetchFunc[T], options PollOptions) (*Operation[T], error) {
	if fetch == nil {
		return nil, newConfigurationError("fetch function is nil")
	}
	if err := options.validate(); err != nil {
		return nil, err
	}
	if options.Clock == nil {
		options.Clock = SystemClock
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}

	id := options.OperationID
	start := options.Clock.Now()
	elapsed := func() time.Duration { return options.Clock.Now().Sub(start) }
	timeout := func() error {
		return &TimeoutError{ID: id, Elapsed: elapsed(), Deadline: options.Deadline}
	}

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, &CanceledError{ID: id, Err: err}
		}

		op, err := fetch(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, &CanceledError{ID: id, Err: ctxErr}
			}
			return nil, &FetchError{ID: id, Attempt: attempt, Err: err}
		}
		if op == nil {
			return nil, &FetchError{ID: id, Attempt: attempt, Err: errNilOperation}
		}
		if op.ID != "" {
			id = op.ID
		}

		options.Logger.Debug("polled operation",
			zap.String("id", id),
			zap.String("status", string(op.Status)),
			zap.Int("attempt", attempt),
			zap.Duration("elapsed", elapsed()))
		if options.OnPoll != nil {
			options.OnPoll(attempt, id, op.Status)
		}

		if options.IsTerminal(op.Status) {
			return op, nil
		}

		remaining := options.Deadline - elapsed()
		if remaining <= 0 {
			return nil, timeout()
		}
		wait := options.Interval
		if remaining < wait {
			wait = remaining
		}
		if err := options.Clock.Sleep(ctx, wait); err != nil {
			return nil, &CanceledError{ID: id, Err: err}
		}
		if elapsed() >= options.Deadline {
			return nil, timeout()
		}
	}
}
