package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/redis-developer/redisctl-go/lro"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// waitOptions are the flags shared by every wait command.
type waitOptions struct {
	maxWaitSeconds int
	interval       time.Duration
}

func (o *waitOptions) addCLIFlags(fs *pflag.FlagSet, settings Settings) {
	fs.IntVar(&o.maxWaitSeconds, "max-wait-seconds", int(settings.WaitTimeout/time.Second), "Maximum time to wait before giving up")
	fs.DurationVar(&o.interval, "wait-interval", settings.WaitInterval, "Time between status checks")
}

func (o *waitOptions) pollOptions(kind string, logger *zap.SugaredLogger) lro.PollOptions {
	return lro.PollOptions{
		Deadline: time.Duration(o.maxWaitSeconds) * time.Second,
		Interval: o.interval,
		Logger:   logger.Desugar(),
		OnPoll: func(attempt int, id string, status lro.Status) {
			logger.Infof("%s %s: %s (check %d)", kind, id, status, attempt)
		},
	}
}

// waitCommand runs a typed wait and renders its outcome.
func waitCommand[T any](
	ctx context.Context,
	out io.Writer,
	format string,
	kind string,
	id string,
	wait func(ctx context.Context, id string, options lro.PollOptions) (*lro.Operation[T], error),
	options lro.PollOptions,
) error {
	op, err := wait(ctx, id, options)
	if err != nil {
		return describeWaitError(kind, id, err)
	}
	if err := printOutput(out, format, op.Result); err != nil {
		return err
	}
	if op.Status != lro.StatusCompleted {
		return &operationNotCompletedError{Kind: kind, ID: id, Status: op.Status, Failure: op.Failure}
	}
	return nil
}

// operationNotCompletedError reports an operation that reached a terminal state other than completed.
type operationNotCompletedError struct {
	Kind    string
	ID      string
	Status  lro.Status
	Failure *lro.Failure
}

func (e *operationNotCompletedError) Error() string {
	if e.Failure != nil && e.Failure.Message != "" {
		return fmt.Sprintf("%s %s %s: %s", e.Kind, e.ID, e.Status, e.Failure.Message)
	}
	return fmt.Sprintf("%s %s %s", e.Kind, e.ID, e.Status)
}

// describeWaitError turns poller errors into messages a user can act on.
func describeWaitError(kind string, id string, err error) error {
	var timeoutErr *lro.TimeoutError
	var canceledErr *lro.CanceledError
	var fetchErr *lro.FetchError
	switch {
	case errors.As(err, &timeoutErr):
		return fmt.Errorf("timed out waiting for %s %s after %s; re-run with a larger --max-wait-seconds: %w",
			kind, id, timeoutErr.Deadline, err)
	case errors.As(err, &canceledErr):
		return fmt.Errorf("stopped waiting for %s %s: %w", kind, id, err)
	case errors.As(err, &fetchErr):
		return fmt.Errorf("checking status of %s %s: %w", kind, id, fetchErr.Err)
	case errors.Is(err, lro.ErrInvalidConfiguration):
		return fmt.Errorf("%w (check --max-wait-seconds and --wait-interval)", err)
	}
	return err
}
