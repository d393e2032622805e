package rediscloud

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/redis-developer/redisctl-go/lro"
	"go.uber.org/zap"
)

// ProcessorResponse is the outcome attached to a task once processing finishes.
type ProcessorResponse struct {
	ResourceID           *int            `json:"resourceId,omitempty"`
	AdditionalResourceID *int            `json:"additionalResourceId,omitempty"`
	Resource             json.RawMessage `json:"resource,omitempty"`
	Error                json.RawMessage `json:"error,omitempty"`
	AdditionalInfo       string          `json:"additionalInfo,omitempty"`
}

// ErrorMessage returns the failure reason the service reported, which is either a string or an object.
func (r *ProcessorResponse) ErrorMessage() string {
	if r == nil || len(r.Error) == 0 || string(r.Error) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(r.Error, &s); err == nil {
		return s
	}
	var obj struct {
		Type        string `json:"type"`
		Status      string `json:"status"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(r.Error, &obj); err == nil && obj.Description != "" {
		return obj.Description
	} else if err == nil && obj.Type != "" {
		return obj.Type
	}
	return string(r.Error)
}

// TaskStateUpdate is the state of an asynchronous Redis Cloud task.
type TaskStateUpdate struct {
	TaskID      string             `json:"taskId"`
	CommandType string             `json:"commandType,omitempty"`
	Status      string             `json:"status"`
	Description string             `json:"description,omitempty"`
	Timestamp   string             `json:"timestamp,omitempty"`
	Response    *ProcessorResponse `json:"response,omitempty"`
	Links       []map[string]any   `json:"links,omitempty"`
}

// UnmarshalJSON reads the task status from "state" when "status" is absent.
func (t *TaskStateUpdate) UnmarshalJSON(b []byte) error {
	type plain TaskStateUpdate
	var v struct {
		plain
		State string `json:"state"`
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*t = TaskStateUpdate(v.plain)
	if t.Status == "" {
		t.Status = v.State
	}
	return nil
}

// TaskStatus maps a Redis Cloud task status onto the poller's statuses. Unrecognized values are returned normalized
// and are non-terminal.
func TaskStatus(raw string) lro.Status {
	switch s := lro.Normalize(raw); s {
	case "received", "initialized", "pending", "queued":
		return lro.StatusPending
	case "processing-in-progress", "processing", "in_progress", "in-progress", "running":
		return lro.StatusInProgress
	case "processing-completed", "completed", "complete", "succeeded", "success":
		return lro.StatusCompleted
	case "processing-error", "failed", "error":
		return lro.StatusFailed
	case "cancelled", "canceled", "aborted":
		return lro.StatusCanceled
	default:
		return s
	}
}

// Operation converts the task into a poller snapshot.
func (t *TaskStateUpdate) Operation() *lro.Operation[*TaskStateUpdate] {
	op := &lro.Operation[*TaskStateUpdate]{
		ID:     t.TaskID,
		Status: TaskStatus(t.Status),
		Result: t,
	}
	if op.Status == lro.StatusFailed {
		msg := t.Response.ErrorMessage()
		if msg == "" {
			msg = t.Description
		}
		op.Failure = &lro.Failure{Message: msg}
		if t.Response != nil {
			op.Failure.Details = t.Response.Error
		}
	}
	return op
}

// GetTask gets details and status of a single task.
//
// GET /tasks/{taskId}
func (c *Client) GetTask(ctx context.Context, taskID string) (*TaskStateUpdate, error) {
	var task TaskStateUpdate
	if err := c.rest.Get(ctx, "/tasks/"+url.PathEscape(taskID), &task); err != nil {
		return nil, err
	}
	if task.TaskID == "" {
		task.TaskID = taskID
	}
	return &task, nil
}

// ListTasks gets all currently running tasks for the account.
//
// GET /tasks
func (c *Client) ListTasks(ctx context.Context) ([]TaskStateUpdate, error) {
	var tasks []TaskStateUpdate
	if err := c.rest.Get(ctx, "/tasks", &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// TaskFetcher returns a fetch function for the poller bound to one task.
//
// When Options.Retry is set, retryable API errors are retried inside the fetch.
func (c *Client) TaskFetcher(taskID string) lro.FetchFunc[*TaskStateUpdate] {
	fetch := func(ctx context.Context) (*lro.Operation[*TaskStateUpdate], error) {
		task, err := c.GetTask(ctx, taskID)
		if err != nil {
			return nil, err
		}
		return task.Operation(), nil
	}
	if c.Options.Retry != nil {
		return lro.RetryFetch(fetch, *c.Options.Retry)
	}
	return fetch
}

// WaitForTask polls a task until it completes, fails or is canceled.
//
// Deadline and Interval must be positive; use lro.DefaultPollOptions for the usual values. A task that the service
// reports as failed or canceled is returned without error, see lro.PollUntilTerminal.
func (c *Client) WaitForTask(ctx context.Context, taskID string, options lro.PollOptions) (*lro.Operation[*TaskStateUpdate], error) {
	if taskID == "" {
		return nil, ErrEmptyTaskID
	}
	if len(options.TerminalStatuses) == 0 {
		options.TerminalStatuses = lro.CancelableTerminalStatuses
	}
	if options.OperationID == "" {
		options.OperationID = taskID
	}
	if options.Logger == nil {
		options.Logger = c.logger
	}
	c.logger.Info("waiting for task", zap.String("taskId", taskID), zap.Duration("deadline", options.Deadline), zap.Duration("interval", options.Interval))
	return lro.PollUntilTerminal(ctx, c.TaskFetcher(taskID), options)
}
