package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis-developer/redisctl-go/lro"
	"github.com/stretchr/testify/require"
)

func TestDescribeWaitError(t *testing.T) {
	cause := errors.New("connection refused")

	timeout := describeWaitError("task", "t1", &lro.TimeoutError{ID: "t1", Elapsed: 5 * time.Second, Deadline: 5 * time.Second})
	require.ErrorIs(t, timeout, lro.ErrTimeout)
	require.Contains(t, timeout.Error(), "timed out waiting for task t1 after 5s")

	canceled := describeWaitError("task", "t1", &lro.CanceledError{ID: "t1", Err: context.Canceled})
	require.ErrorIs(t, canceled, context.Canceled)
	require.Contains(t, canceled.Error(), "stopped waiting for task t1")

	fetch := describeWaitError("migration", "m-1", &lro.FetchError{ID: "m-1", Attempt: 2, Err: cause})
	require.EqualError(t, fetch, "checking status of migration m-1: connection refused")

	other := errors.New("boom")
	require.Equal(t, other, describeWaitError("task", "t1", other))
}

func TestWaitCommand_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	wait := func(ctx context.Context, id string, options lro.PollOptions) (*lro.Operation[string], error) {
		return nil, &lro.CanceledError{ID: id, Err: ctx.Err()}
	}

	err := waitCommand(ctx, nil, outputJSON, "action", "a-1", wait, lro.PollOptions{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestOperationNotCompletedError(t *testing.T) {
	err := &operationNotCompletedError{Kind: "crdb task", ID: "c-1", Status: lro.StatusFailed, Failure: &lro.Failure{Message: "peer unreachable"}}
	require.EqualError(t, err, "crdb task c-1 failed: peer unreachable")

	err = &operationNotCompletedError{Kind: "debug info", ID: "d-1", Status: lro.StatusCanceled}
	require.EqualError(t, err, "debug info d-1 canceled")
}
