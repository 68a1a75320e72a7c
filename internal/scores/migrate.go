package scores

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is the latest schema version supported by the migrator.
const SchemaVersion = 1

// Migrate ensures the score tables exist and are upgraded to SchemaVersion.
func Migrate(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("migrate: db is nil")
	}

	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (version INTEGER PRIMARY KEY);`)
	if err != nil {
		return fmt.Errorf("migrate: create schema_migrations: %w", err)
	}

	var current int
	err = db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations;`).Scan(&current)
	if err != nil {
		return fmt.Errorf("migrate: read current version: %w", err)
	}
	if current >= SchemaVersion {
		return nil
	}

	transaction, err := db.Begin()
	if err != nil {
		return fmt.Errorf("migrate: begin transaction: %w", err)
	}
	defer func() {
		_ = transaction.Rollback()
	}()

	_, err = transaction.Exec(`
		CREATE TABLE IF NOT EXISTS scores (
			id TEXT PRIMARY KEY,
			pet_name TEXT NOT NULL,
			score INTEGER NOT NULL,
			round INTEGER NOT NULL,
			played_at TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("migrate: create scores table: %w", err)
	}

	_, err = transaction.Exec(`CREATE INDEX IF NOT EXISTS idx_scores_score_played_at ON scores(score DESC, played_at);`)
	if err != nil {
		return fmt.Errorf("migrate: create idx_scores_score_played_at: %w", err)
	}

	_, err = transaction.Exec(`INSERT INTO schema_migrations(version) VALUES (?);`, SchemaVersion)
	if err != nil {
		return fmt.Errorf("migrate: record schema version: %w", err)
	}

	if err := transaction.Commit(); err != nil {
		return fmt.Errorf("migrate: commit transaction: %w", err)
	}
	return nil
}
