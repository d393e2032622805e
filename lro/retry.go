package lro

import (
	"context"
	"time"

	"github.com/jpillora/backoff"
)

// RetryOptions are options for RetryFetch.
type RetryOptions struct {
	// MaxAttempts bounds the number of calls per fetch, including the first.
	// Defaults to 3.
	MaxAttempts int
	// Min is the first backoff duration.
	// Defaults to 200ms.
	Min time.Duration
	// Max caps the backoff duration.
	// Defaults to 5s.
	Max time.Duration
	// Factor multiplies the backoff after each failed call.
	// Defaults to 2.
	Factor float64
	// Jitter randomizes each backoff duration.
	Jitter bool
	// Retryable decides which errors are retried. Defaults to retrying every error.
	Retryable func(error) bool
	// Clock used for sleeping between attempts.
	// Defaults to SystemClock.
	Clock Clock
}

// RetryFetch wraps fetch so that failed calls are retried with exponential backoff before an error is surfaced.
//
// Pass the result to PollUntilTerminal when the underlying transport is flaky. Each poll gets a fresh backoff.
func RetryFetch[T any](fetch FetchFunc[T], options RetryOptions) FetchFunc[T] {
	if options.MaxAttempts <= 0 {
		options.MaxAttempts = 3
	}
	if options.Min <= 0 {
		options.Min = 200 * time.Millisecond
	}
	if options.Max <= 0 {
		options.Max = 5 * time.Second
	}
	if options.Factor <= 0 {
		options.Factor = 2
	}
	if options.Retryable == nil {
		options.Retryable = func(error) bool { return true }
	}
	if options.Clock == nil {
		options.Clock = SystemClock
	}

	return func(ctx context.Context) (*Operation[T], error) {
		b := &backoff.Backoff{
			Min:    options.Min,
			Max:    options.Max,
			Factor: options.Factor,
			Jitter: options.Jitter,
		}
		for {
			op, err := fetch(ctx)
			if err == nil {
				return op, nil
			}
			if int(b.Attempt())+1 >= options.MaxAttempts || !options.Retryable(err) {
				return nil, err
			}
			if sleepErr := options.Clock.Sleep(ctx, b.Duration()); sleepErr != nil {
				return nil, err
			}
		}
	}
}
