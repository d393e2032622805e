package lro_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis-developer/redisctl-go/lro"
)

func ExamplePollUntilTerminal() {
	ctx := context.Background()
	polls := 0
	fetch := func(ctx context.Context) (*lro.Operation[string], error) {
		polls++
		if polls < 3 {
			return &lro.Operation[string]{ID: "task-123", Status: lro.StatusInProgress}, nil
		}
		return &lro.Operation[string]{ID: "task-123", Status: lro.StatusCompleted, Result: "db-42"}, nil
	}

	op, err := lro.PollUntilTerminal(ctx, fetch, lro.PollOptions{
		Deadline: time.Second,
		Interval: time.Millisecond,
	})
	var timeoutErr *lro.TimeoutError
	if errors.As(err, &timeoutErr) {
		fmt.Println("gave up on", timeoutErr.ID)
		return
	} else if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(op.Status, op.Result)
	// Output: completed db-42
}
