package redisenterprise

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/redis-developer/redisctl-go/lro"
)

// CrdbTask tracks a change to an Active-Active (CRDB) database across its participating clusters.
type CrdbTask struct {
	TaskID    string   `json:"task_id"`
	CrdbGUID  string   `json:"crdb_guid,omitempty"`
	TaskType  string   `json:"task_type,omitempty"`
	Status    string   `json:"status"`
	Progress  *float64 `json:"progress,omitempty"`
	StartTime string   `json:"start_time,omitempty"`
	EndTime   string   `json:"end_time,omitempty"`
	Error     string   `json:"error,omitempty"`
}

func (t *CrdbTask) operationID() string    { return t.TaskID }
func (t *CrdbTask) rawStatus() string      { return t.Status }
func (t *CrdbTask) failureMessage() string { return t.Error }

// CreateCrdbTaskRequest starts a task against a CRDB.
type CreateCrdbTaskRequest struct {
	CrdbGUID string          `json:"crdb_guid"`
	TaskType string          `json:"task_type"`
	Params   json.RawMessage `json:"params,omitempty"`
}

// ListCrdbTasks lists all CRDB tasks.
//
// GET /v1/crdb_tasks
func (c *Client) ListCrdbTasks(ctx context.Context) ([]CrdbTask, error) {
	var tasks []CrdbTask
	if err := c.rest.Get(ctx, "/v1/crdb_tasks", &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListCrdbTasksByCrdb lists the tasks of one CRDB.
//
// GET /v1/crdbs/{guid}/tasks
func (c *Client) ListCrdbTasksByCrdb(ctx context.Context, crdbGUID string) ([]CrdbTask, error) {
	var tasks []CrdbTask
	if err := c.rest.Get(ctx, "/v1/crdbs/"+url.PathEscape(crdbGUID)+"/tasks", &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetCrdbTask gets the status of one CRDB task.
//
// GET /v1/crdb_tasks/{id}
func (c *Client) GetCrdbTask(ctx context.Context, taskID string) (*CrdbTask, error) {
	var task CrdbTask
	if err := c.rest.Get(ctx, "/v1/crdb_tasks/"+url.PathEscape(taskID), &task); err != nil {
		return nil, err
	}
	if task.TaskID == "" {
		task.TaskID = taskID
	}
	return &task, nil
}

// CreateCrdbTask starts a CRDB task.
//
// POST /v1/crdb_tasks
func (c *Client) CreateCrdbTask(ctx context.Context, request CreateCrdbTaskRequest) (*CrdbTask, error) {
	var task CrdbTask
	if err := c.rest.Post(ctx, "/v1/crdb_tasks", request, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CancelCrdbTask requests cancelation of a CRDB task.
//
// DELETE /v1/crdb_tasks/{id}
func (c *Client) CancelCrdbTask(ctx context.Context, taskID string) error {
	return c.rest.Delete(ctx, "/v1/crdb_tasks/"+url.PathEscape(taskID))
}

// CrdbTaskFetcher returns a fetch function for the poller bound to one CRDB task.
func (c *Client) CrdbTaskFetcher(taskID string) lro.FetchFunc[*CrdbTask] {
	return newFetcher(c, func(ctx context.Context) (*CrdbTask, error) {
		return c.GetCrdbTask(ctx, taskID)
	})
}

// WaitForCrdbTask polls a CRDB task until it completes or fails.
func (c *Client) WaitForCrdbTask(ctx context.Context, taskID string, options lro.PollOptions) (*lro.Operation[*CrdbTask], error) {
	return wait(ctx, c, "crdb task", taskID, c.CrdbTaskFetcher(taskID), options)
}
