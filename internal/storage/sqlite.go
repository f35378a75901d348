// Package storage provides the data persistence layer for the plasticnet
// application.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/smartsort-ai/plasticnet/internal/common"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStorage implements the service.Storage interface using SQLite.
//
// The connection pool is capped at a single connection, so all writes are
// serialized by database/sql itself; there is no shared raw connection
// handle to guard.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, common.E(common.KindPersistence, "failed to create database directory", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, common.E(common.KindPersistence, "failed to open database", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, common.E(common.KindPersistence, "failed to ping database", err)
	}

	return &SQLiteStorage{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func persistenceErr(op string, err error) error {
	return common.E(common.KindPersistence, fmt.Sprintf("failed to %s", op), err)
}
