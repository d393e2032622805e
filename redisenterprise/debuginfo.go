package redisenterprise

import (
	"context"
	"net/url"

	"github.com/redis-developer/redisctl-go/lro"
)

type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DebugInfoRequest selects what a debug info collection includes.
type DebugInfoRequest struct {
	NodeUIDs       []int      `json:"node_uids,omitempty"`
	BdbUIDs        []int      `json:"bdb_uids,omitempty"`
	IncludeLogs    *bool      `json:"include_logs,omitempty"`
	IncludeMetrics *bool      `json:"include_metrics,omitempty"`
	IncludeConfigs *bool      `json:"include_configs,omitempty"`
	TimeRange      *TimeRange `json:"time_range,omitempty"`
}

// DebugInfoStatus is the state of a debug info collection task.
type DebugInfoStatus struct {
	TaskID      string   `json:"task_id"`
	Status      string   `json:"status"`
	Progress    *float64 `json:"progress,omitempty"`
	DownloadURL string   `json:"download_url,omitempty"`
	Error       string   `json:"error,omitempty"`
}

func (s *DebugInfoStatus) operationID() string    { return s.TaskID }
func (s *DebugInfoStatus) rawStatus() string      { return s.Status }
func (s *DebugInfoStatus) failureMessage() string { return s.Error }

// CreateDebugInfo starts collecting a debug info package.
//
// POST /v1/debuginfo
func (c *Client) CreateDebugInfo(ctx context.Context, request DebugInfoRequest) (*DebugInfoStatus, error) {
	var status DebugInfoStatus
	if err := c.rest.Post(ctx, "/v1/debuginfo", request, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// GetDebugInfo gets the status of a debug info collection.
//
// GET /v1/debuginfo/{id}
func (c *Client) GetDebugInfo(ctx context.Context, taskID string) (*DebugInfoStatus, error) {
	var status DebugInfoStatus
	if err := c.rest.Get(ctx, "/v1/debuginfo/"+url.PathEscape(taskID), &status); err != nil {
		return nil, err
	}
	if status.TaskID == "" {
		status.TaskID = taskID
	}
	return &status, nil
}

// ListDebugInfo lists debug info collections.
//
// GET /v1/debuginfo
func (c *Client) ListDebugInfo(ctx context.Context) ([]DebugInfoStatus, error) {
	var statuses []DebugInfoStatus
	if err := c.rest.Get(ctx, "/v1/debuginfo", &statuses); err != nil {
		return nil, err
	}
	return statuses, nil
}

// CancelDebugInfo cancels a debug info collection.
//
// DELETE /v1/debuginfo/{id}
func (c *Client) CancelDebugInfo(ctx context.Context, taskID string) error {
	return c.rest.Delete(ctx, "/v1/debuginfo/"+url.PathEscape(taskID))
}

// DebugInfoFetcher returns a fetch function for the poller bound to one debug info collection.
func (c *Client) DebugInfoFetcher(taskID string) lro.FetchFunc[*DebugInfoStatus] {
	return newFetcher(c, func(ctx context.Context) (*DebugInfoStatus, error) {
		return c.GetDebugInfo(ctx, taskID)
	})
}

// WaitForDebugInfo polls a debug info collection until it completes, fails or is canceled.
func (c *Client) WaitForDebugInfo(ctx context.Context, taskID string, options lro.PollOptions) (*lro.Operation[*DebugInfoStatus], error) {
	if len(options.TerminalStatuses) == 0 {
		options.TerminalStatuses = lro.CancelableTerminalStatuses
	}
	return wait(ctx, c, "debug info", taskID, c.DebugInfoFetcher(taskID), options)
}
