package redisenterprise

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis-developer/redisctl-go/lro"
	"github.com/redis-developer/redisctl-go/restapi"
	"github.com/stretchr/testify/require"
)

const testTimeout = time.Second * 5

// fakeCluster replays scripted JSON bodies per request path.
type fakeCluster struct {
	mu        sync.Mutex
	responses map[string][]string
	calls     map[string]int
}

func (f *fakeCluster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, pass, ok := r.BasicAuth()
	if !ok || user != "admin@redis.local" || pass != "secret" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	key := r.Method + " " + r.URL.Path
	f.mu.Lock()
	defer f.mu.Unlock()
	script, ok := f.responses[key]
	if !ok {
		w.Header().Set(restapi.HeaderContentType, restapi.ContentTypeJSON)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error_code":"not_found","description":"object not found"}`))
		return
	}
	i := f.calls[key]
	f.calls[key]++
	if i >= len(script) {
		i = len(script) - 1
	}
	if script[i] == "" {
		w.WriteHeader(http.StatusOK)
		return
	}
	w.Header().Set(restapi.HeaderContentType, restapi.ContentTypeJSON)
	_, _ = w.Write([]byte(script[i]))
}

func (f *fakeCluster) Calls(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func setup(t *testing.T, responses map[string][]string) (ctx context.Context, client *Client, fake *fakeCluster) {
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	t.Cleanup(cancel)

	fake = &fakeCluster{responses: responses, calls: map[string]int{}}
	router := mux.NewRouter()
	router.PathPrefix("/v1/").Handler(fake)
	server := httptest.NewTLSServer(router)
	t.Cleanup(server.Close)

	client, err := NewClient(Options{
		BaseURL:  server.URL,
		Username: "admin@redis.local",
		Password: "secret",
		Insecure: true,
	})
	require.NoError(t, err)
	return ctx, client, fake
}

var fastPoll = lro.PollOptions{Deadline: time.Second, Interval: time.Millisecond}

func TestNewClient(t *testing.T) {
	_, err := NewClient(Options{Username: "admin"})
	require.ErrorIs(t, err, ErrMissingCredentials)

	client, err := NewClient(Options{Username: "admin", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, DefaultBaseURL, client.Options.BaseURL)
	require.NotNil(t, client.Options.HTTPClient)
}

func TestStatus(t *testing.T) {
	cases := map[string]lro.Status{
		"queued":      lro.StatusPending,
		"running":     lro.StatusInProgress,
		"in_progress": lro.StatusInProgress,
		"completed":   lro.StatusCompleted,
		"Done":        lro.StatusCompleted,
		"failed":      lro.StatusFailed,
		"aborted":     lro.StatusCanceled,
		"cancelled":   lro.StatusCanceled,
		"node_joined": lro.Status("node_joined"),
	}
	for raw, expected := range cases {
		require.Equal(t, expected, Status(raw), raw)
	}
}

func TestWaitForAction(t *testing.T) {
	ctx, client, fake := setup(t, map[string][]string{
		"GET /v1/actions/a-1": {
			`{"action_uid":"a-1","name":"upgrade_bdb","status":"queued"}`,
			`{"action_uid":"a-1","name":"upgrade_bdb","status":"running","progress":50}`,
			`{"action_uid":"a-1","name":"upgrade_bdb","status":"completed","progress":100}`,
		},
	})

	op, err := client.WaitForAction(ctx, "a-1", fastPoll)
	require.NoError(t, err)
	require.True(t, op.Succeeded())
	require.Equal(t, "upgrade_bdb", op.Result.Name)
	require.Equal(t, 100.0, *op.Result.Progress)
	require.Equal(t, 3, fake.Calls("GET /v1/actions/a-1"))
}

func TestWaitForAction_Failed(t *testing.T) {
	ctx, client, _ := setup(t, map[string][]string{
		"GET /v1/actions/a-2": {`{"action_uid":"a-2","status":"failed","error":"node unreachable"}`},
	})

	op, err := client.WaitForAction(ctx, "a-2", fastPoll)
	require.NoError(t, err)
	require.Equal(t, lro.StatusFailed, op.Status)
	require.Equal(t, "node unreachable", op.Failure.Message)
}

func TestWaitForAction_NotFound(t *testing.T) {
	ctx, client, _ := setup(t, nil)

	_, err := client.WaitForAction(ctx, "missing", fastPoll)
	var fetchErr *lro.FetchError
	require.ErrorAs(t, err, &fetchErr)
	require.True(t, restapi.IsNotFound(err))
	require.Contains(t, err.Error(), "object not found")
}

func TestWaitForAction_EmptyID(t *testing.T) {
	ctx, client, _ := setup(t, nil)
	_, err := client.WaitForAction(ctx, "", fastPoll)
	require.ErrorIs(t, err, ErrEmptyID)
}

func TestWait_ZeroOptionsRejected(t *testing.T) {
	ctx, client, fake := setup(t, map[string][]string{
		"GET /v1/actions/a-1":    {`{"action_uid":"a-1","status":"completed"}`},
		"GET /v1/migrations/m-1": {`{"migration_id":"m-1","status":"completed"}`},
	})

	_, err := client.WaitForAction(ctx, "a-1", lro.PollOptions{Interval: time.Millisecond})
	require.ErrorIs(t, err, lro.ErrInvalidConfiguration)
	_, err = client.WaitForMigration(ctx, "m-1", lro.PollOptions{Deadline: time.Second})
	require.ErrorIs(t, err, lro.ErrInvalidConfiguration)

	require.Equal(t, 0, fake.Calls("GET /v1/actions/a-1"))
	require.Equal(t, 0, fake.Calls("GET /v1/migrations/m-1"))
}

func TestWaitForCrdbTask(t *testing.T) {
	ctx, client, _ := setup(t, map[string][]string{
		"GET /v1/crdb_tasks/t-1": {
			`{"task_id":"t-1","crdb_guid":"g-1","task_type":"add_participant","status":"started"}`,
			`{"task_id":"t-1","crdb_guid":"g-1","task_type":"add_participant","status":"finished"}`,
		},
	})

	op, err := client.WaitForCrdbTask(ctx, "t-1", fastPoll)
	require.NoError(t, err)
	require.True(t, op.Succeeded())
	require.Equal(t, "g-1", op.Result.CrdbGUID)
}

func TestCrdbTaskEndpoints(t *testing.T) {
	ctx, client, fake := setup(t, map[string][]string{
		"GET /v1/crdb_tasks":        {`[{"task_id":"t-1","status":"started"}]`},
		"GET /v1/crdbs/g-1/tasks":   {`[{"task_id":"t-1","status":"started"},{"task_id":"t-2","status":"queued"}]`},
		"POST /v1/crdb_tasks":       {`{"task_id":"t-3","crdb_guid":"g-1","task_type":"flush","status":"queued"}`},
		"DELETE /v1/crdb_tasks/t-3": {""},
		"GET /v1/actions":           {`[{"action_uid":"a-1","status":"running"}]`},
		"GET /v1/actions/bdb/5":     {`[]`},
		"DELETE /v1/actions/a-1":    {""},
		"GET /v1/migrations":        {`[{"migration_id":"m-1","status":"running"}]`},
		"GET /v1/debuginfo":         {`[{"task_id":"d-1","status":"completed"}]`},
		"DELETE /v1/debuginfo/d-1":  {""},
		"POST /v1/debuginfo":        {`{"task_id":"d-2","status":"queued"}`},
	})

	tasks, err := client.ListCrdbTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	tasks, err = client.ListCrdbTasksByCrdb(ctx, "g-1")
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	task, err := client.CreateCrdbTask(ctx, CreateCrdbTaskRequest{CrdbGUID: "g-1", TaskType: "flush"})
	require.NoError(t, err)
	require.Equal(t, "t-3", task.TaskID)
	require.NoError(t, client.CancelCrdbTask(ctx, "t-3"))

	actions, err := client.ListActions(ctx)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	actions, err = client.ListDatabaseActions(ctx, 5)
	require.NoError(t, err)
	require.Empty(t, actions)
	require.NoError(t, client.CancelAction(ctx, "a-1"))

	migrations, err := client.ListMigrations(ctx)
	require.NoError(t, err)
	require.Equal(t, "m-1", migrations[0].MigrationID)

	infos, err := client.ListDebugInfo(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	require.NoError(t, client.CancelDebugInfo(ctx, "d-1"))

	includeLogs := true
	info, err := client.CreateDebugInfo(ctx, DebugInfoRequest{IncludeLogs: &includeLogs})
	require.NoError(t, err)
	require.Equal(t, "d-2", info.TaskID)

	require.Equal(t, 1, fake.Calls("DELETE /v1/crdb_tasks/t-3"))
}

func TestWaitForDebugInfo(t *testing.T) {
	ctx, client, _ := setup(t, map[string][]string{
		"GET /v1/debuginfo/d-1": {
			`{"task_id":"d-1","status":"running","progress":10}`,
			`{"task_id":"d-1","status":"completed","download_url":"/v1/debuginfo/d-1/download"}`,
		},
	})

	op, err := client.WaitForDebugInfo(ctx, "d-1", fastPoll)
	require.NoError(t, err)
	require.True(t, op.Succeeded())
	require.Equal(t, "/v1/debuginfo/d-1/download", op.Result.DownloadURL)
}

func TestWaitForMigration_CanceledIsTerminal(t *testing.T) {
	ctx, client, fake := setup(t, map[string][]string{
		"GET /v1/migrations/m-1": {
			`{"migration_id":"m-1","status":"running","source":{"endpoint_type":"redis","host":"src","port":6379},"target":{"endpoint_type":"bdb","bdb_uid":3}}`,
			`{"migration_id":"m-1","status":"cancelled"}`,
		},
	})

	op, err := client.WaitForMigration(ctx, "m-1", fastPoll)
	require.NoError(t, err)
	require.Equal(t, lro.StatusCanceled, op.Status)
	require.Equal(t, 2, fake.Calls("GET /v1/migrations/m-1"))
}

func TestWaitForMigration_OverrideTerminalStatuses(t *testing.T) {
	ctx, client, _ := setup(t, map[string][]string{
		"GET /v1/migrations/m-1": {`{"migration_id":"m-1","status":"cancelled"}`},
	})

	options := fastPoll
	options.Deadline = 20 * time.Millisecond
	options.TerminalStatuses = lro.DefaultTerminalStatuses
	_, err := client.WaitForMigration(ctx, "m-1", options)
	require.ErrorIs(t, err, lro.ErrTimeout)
}

func TestWaitForAction_Retry(t *testing.T) {
	ctx, client, fake := setup(t, map[string][]string{
		"GET /v1/actions/a-1": {`{"action_uid":"a-1","status":"completed"}`},
	})
	client.Options.Retry = &lro.RetryOptions{Min: time.Millisecond, Retryable: restapi.IsRetryable}

	op, err := client.WaitForAction(ctx, "a-1", fastPoll)
	require.NoError(t, err)
	require.True(t, op.Succeeded())
	require.Equal(t, 1, fake.Calls("GET /v1/actions/a-1"))
}
