package redisenterprise

import (
	"context"
	"net/url"

	"github.com/redis-developer/redisctl-go/lro"
)

type MigrationEndpoint struct {
	EndpointType string `json:"endpoint_type"`
	Host         string `json:"host,omitempty"`
	Port         int    `json:"port,omitempty"`
	BdbUID       *int   `json:"bdb_uid,omitempty"`
}

// Migration is a data migration between databases.
type Migration struct {
	MigrationID string            `json:"migration_id"`
	Source      MigrationEndpoint `json:"source"`
	Target      MigrationEndpoint `json:"target"`
	Status      string            `json:"status"`
	Progress    *float64          `json:"progress,omitempty"`
	StartTime   string            `json:"start_time,omitempty"`
	EndTime     string            `json:"end_time,omitempty"`
	Error       string            `json:"error,omitempty"`
}

func (m *Migration) operationID() string    { return m.MigrationID }
func (m *Migration) rawStatus() string      { return m.Status }
func (m *Migration) failureMessage() string { return m.Error }

// GetMigration gets the status of a migration.
//
// GET /v1/migrations/{id}
func (c *Client) GetMigration(ctx context.Context, migrationID string) (*Migration, error) {
	var migration Migration
	if err := c.rest.Get(ctx, "/v1/migrations/"+url.PathEscape(migrationID), &migration); err != nil {
		return nil, err
	}
	if migration.MigrationID == "" {
		migration.MigrationID = migrationID
	}
	return &migration, nil
}

// ListMigrations lists migrations.
//
// GET /v1/migrations
func (c *Client) ListMigrations(ctx context.Context) ([]Migration, error) {
	var migrations []Migration
	if err := c.rest.Get(ctx, "/v1/migrations", &migrations); err != nil {
		return nil, err
	}
	return migrations, nil
}

// MigrationFetcher returns a fetch function for the poller bound to one migration.
func (c *Client) MigrationFetcher(migrationID string) lro.FetchFunc[*Migration] {
	return newFetcher(c, func(ctx context.Context) (*Migration, error) {
		return c.GetMigration(ctx, migrationID)
	})
}

// WaitForMigration polls a migration until it completes, fails or is canceled.
//
// A canceled migration stops the wait unless options.TerminalStatuses overrides the terminal set.
func (c *Client) WaitForMigration(ctx context.Context, migrationID string, options lro.PollOptions) (*lro.Operation[*Migration], error) {
	if len(options.TerminalStatuses) == 0 {
		options.TerminalStatuses = lro.CancelableTerminalStatuses
	}
	return wait(ctx, c, "migration", migrationID, c.MigrationFetcher(migrationID), options)
}
