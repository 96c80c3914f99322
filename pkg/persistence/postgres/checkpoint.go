// Package postgres contains the postgres table definitions for the heartbeat
package postgres // import "github.com/juicetools/juicebox-heartbeat/pkg/persistence/postgres"

import (
	"fmt"
)

// CreateCheckpointTableQuery returns the query to create the checkpoint table
func CreateCheckpointTableQuery() string {
	return CreateCheckpointTableQueryString("heartbeat_cron")
}

// CreateCheckpointTableQueryString returns the query to create this table
// NOTE: one row per event category, keyed by the category name
func CreateCheckpointTableQueryString(tableName string) string {
	queryString := fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s(
            category TEXT PRIMARY KEY,
            timestamp BIGINT NOT NULL
        );
    `, tableName)
	return queryString
}

// CheckpointData contains the checkpoint information for one event category
// that is persisted in the checkpoint DB table.
type CheckpointData struct {
	Category  string `db:"category"`
	Timestamp int64  `db:"timestamp"`
}

// NewCheckpoint creates a CheckpointData model for DB from category and timestamp
func NewCheckpoint(category string, timestamp int64) *CheckpointData {
	return &CheckpointData{Category: category, Timestamp: timestamp}
}
