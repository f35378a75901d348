package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a
// fatal error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS classification_history (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					plastic_type TEXT NOT NULL,
					confidence REAL NOT NULL,
					image_name TEXT,
					timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS facilities (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT NOT NULL,
					latitude REAL NOT NULL,
					longitude REAL NOT NULL,
					address TEXT NOT NULL,
					accepts_pet BOOLEAN DEFAULT 1,
					accepts_hdpe BOOLEAN DEFAULT 1,
					accepts_other BOOLEAN DEFAULT 0,
					phone TEXT,
					hours TEXT,
					website TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Add feedback table linking history entries to user corrections",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS feedback (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					classification_id INTEGER,
					correct_prediction BOOLEAN,
					actual_type TEXT,
					comments TEXT,
					timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (classification_id) REFERENCES classification_history(id)
				)
			`)
			return err
		},
	},
	{
		Version:     3,
		Description: "Add indexes for history and feedback lookups",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE INDEX IF NOT EXISTS idx_history_timestamp ON classification_history(timestamp)`,
				`CREATE INDEX IF NOT EXISTS idx_history_type ON classification_history(plastic_type)`,
				`CREATE INDEX IF NOT EXISTS idx_feedback_classification_id ON feedback(classification_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query '%s': %w", query, err)
				}
			}
			return nil
		},
	},
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return persistenceErr("get schema version", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return persistenceErr("begin transaction", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return persistenceErr(fmt.Sprintf("apply migration %d", migration.Version), upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return persistenceErr("update schema version", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return persistenceErr(fmt.Sprintf("commit migration %d", migration.Version), commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return persistenceErr("verify final schema version", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return persistenceErr("migrate",
			fmt.Errorf("schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion))
	}

	return nil
}
