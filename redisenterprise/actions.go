package redisenterprise

import (
	"context"
	"fmt"
	"net/url"

	"github.com/redis-developer/redisctl-go/lro"
)

// Action is a long running cluster action, such as a database upgrade or a node maintenance operation.
type Action struct {
	ActionUID   string   `json:"action_uid"`
	Name        string   `json:"name,omitempty"`
	Status      string   `json:"status"`
	Progress    *float64 `json:"progress,omitempty"`
	StartTime   string   `json:"start_time,omitempty"`
	EndTime     string   `json:"end_time,omitempty"`
	Description string   `json:"description,omitempty"`
	Error       string   `json:"error,omitempty"`
	NodeUID     string   `json:"node_uid,omitempty"`
	ObjectName  string   `json:"object_name,omitempty"`
}

func (a *Action) operationID() string    { return a.ActionUID }
func (a *Action) rawStatus() string      { return a.Status }
func (a *Action) failureMessage() string { return a.Error }

// ListActions lists all running and recently completed actions.
//
// GET /v1/actions
func (c *Client) ListActions(ctx context.Context) ([]Action, error) {
	var actions []Action
	if err := c.rest.Get(ctx, "/v1/actions", &actions); err != nil {
		return nil, err
	}
	return actions, nil
}

// ListDatabaseActions lists the actions of one database.
//
// GET /v1/actions/bdb/{uid}
func (c *Client) ListDatabaseActions(ctx context.Context, bdbUID int) ([]Action, error) {
	var actions []Action
	if err := c.rest.Get(ctx, fmt.Sprintf("/v1/actions/bdb/%d", bdbUID), &actions); err != nil {
		return nil, err
	}
	return actions, nil
}

// GetAction gets the status of one action.
//
// GET /v1/actions/{uid}
func (c *Client) GetAction(ctx context.Context, actionUID string) (*Action, error) {
	var action Action
	if err := c.rest.Get(ctx, "/v1/actions/"+url.PathEscape(actionUID), &action); err != nil {
		return nil, err
	}
	if action.ActionUID == "" {
		action.ActionUID = actionUID
	}
	return &action, nil
}

// CancelAction requests cancelation of a running action.
//
// DELETE /v1/actions/{uid}
func (c *Client) CancelAction(ctx context.Context, actionUID string) error {
	return c.rest.Delete(ctx, "/v1/actions/"+url.PathEscape(actionUID))
}

// ActionFetcher returns a fetch function for the poller bound to one action.
func (c *Client) ActionFetcher(actionUID string) lro.FetchFunc[*Action] {
	return newFetcher(c, func(ctx context.Context) (*Action, error) {
		return c.GetAction(ctx, actionUID)
	})
}

// WaitForAction polls an action until it completes or fails.
func (c *Client) WaitForAction(ctx context.Context, actionUID string, options lro.PollOptions) (*lro.Operation[*Action], error) {
	return wait(ctx, c, "action", actionUID, c.ActionFetcher(actionUID), options)
}
