// Package persistence contains components to persist the heartbeat checkpoints
package persistence // import "github.com/juicetools/juicebox-heartbeat/pkg/persistence"

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	// driver for postgresql
	_ "github.com/lib/pq"

	"github.com/juicetools/juicebox-heartbeat/pkg/model"
	"github.com/juicetools/juicebox-heartbeat/pkg/persistence/postgres"
	"github.com/juicetools/juicebox-heartbeat/pkg/utils"
)

const (
	checkpointTableName = "heartbeat_cron"
)

// NewPostgresPersister creates a new postgres persister
func NewPostgresPersister(host string, port int, user string, password string,
	dbname string) (*PostgresPersister, error) {
	pgPersister := &PostgresPersister{}
	psqlInfo := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)
	db, err := sqlx.Connect("postgres", psqlInfo)
	if err != nil {
		return pgPersister, errors.Wrap(err, "Error connecting to sqlx")
	}
	pgPersister.db = db
	return pgPersister, nil
}

// PostgresPersister holds the DB connection and persistence
type PostgresPersister struct {
	db *sqlx.DB
}

// CreateTables creates the checkpoint table if it doesn't exist
func (p *PostgresPersister) CreateTables() error {
	_, err := p.db.Exec(postgres.CreateCheckpointTableQuery())
	if err != nil {
		return errors.Wrap(err, "Error creating heartbeat_cron table in postgres")
	}
	return nil
}

// Close closes the underlying DB connection
func (p *PostgresPersister) Close() error {
	return p.db.Close()
}

// Checkpoints returns the persisted checkpoint for every category.
// Categories with no persisted row default to the current time.
func (p *PostgresPersister) Checkpoints() (model.Checkpoints, error) {
	return p.checkpointsFromTable(checkpointTableName)
}

// SaveCheckpoints fully overwrites the persisted checkpoints with cps
func (p *PostgresPersister) SaveCheckpoints(cps model.Checkpoints) error {
	return p.saveCheckpointsToTable(cps, checkpointTableName)
}

func (p *PostgresPersister) checkpointsFromTable(tableName string) (model.Checkpoints, error) {
	queryString := fmt.Sprintf("SELECT category, timestamp FROM %s", tableName) // nolint: gosec
	rows := []postgres.CheckpointData{}
	err := p.db.Select(&rows, queryString)
	if err != nil {
		return nil, errors.Wrap(err, "Error retrieving checkpoints from table")
	}

	cps := model.NewCheckpoints(utils.CurrentEpochSecsInInt64())
	for _, row := range rows {
		for _, category := range model.Categories() {
			if category.String() == row.Category {
				cps[category] = row.Timestamp
			}
		}
	}
	return cps, nil
}

func (p *PostgresPersister) saveCheckpointsToTable(cps model.Checkpoints, tableName string) error {
	queryString := fmt.Sprintf( // nolint: gosec
		`INSERT INTO %s(category, timestamp) VALUES(:category, :timestamp)
         ON CONFLICT(category) DO UPDATE SET timestamp = EXCLUDED.timestamp`,
		tableName,
	)
	tx, err := p.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "Error starting checkpoint tx")
	}
	for _, category := range model.Categories() {
		checkpoint := postgres.NewCheckpoint(category.String(), cps[category])
		_, err = tx.NamedExec(queryString, checkpoint)
		if err != nil {
			_ = tx.Rollback() // nolint: gosec
			return errors.Wrapf(err, "Error saving checkpoint for %v", category)
		}
	}
	err = tx.Commit()
	if err != nil {
		return errors.Wrap(err, "Error committing checkpoint tx")
	}
	return nil
}
