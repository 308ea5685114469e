package store

import (
	"database/sql"
	"fmt"
)

// SetupSchema creates the tables used by the store. It is idempotent and safe
// to call on an already initialised database.
func SetupSchema(db *sql.DB) error {
	const (
		schemaModels = `
CREATE TABLE IF NOT EXISTS namegen_models (
    model_id INTEGER PRIMARY KEY,
    model_uuid TEXT NOT NULL,
    model_name TEXT NOT NULL UNIQUE,
    engine TEXT NOT NULL,
    dataset_length INTEGER NOT NULL DEFAULT 0,
    payload BLOB NOT NULL,
    created_at INTEGER NOT NULL
);
`
		indexEngine = `CREATE INDEX IF NOT EXISTS namegen_models_engine ON namegen_models (engine);`
	)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.Exec(schemaModels); err != nil {
		return fmt.Errorf("could not create schema: %w", err)
	}
	if _, err = tx.Exec(indexEngine); err != nil {
		return fmt.Errorf("could not create engine index: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}
