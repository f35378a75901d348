package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/smartsort-ai/plasticnet/internal/model"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

func TestNewSQLiteStorageEmptyPath(t *testing.T) {
	if _, err := NewSQLiteStorage(""); err == nil {
		t.Fatal("expected error for empty database path")
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("second migrate failed: %v", err)
	}

	var version int
	if err := store.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		t.Fatalf("failed to read schema version: %v", err)
	}
	if version != ExpectedSchemaVersion {
		t.Errorf("schema version = %d, want %d", version, ExpectedSchemaVersion)
	}
}

func TestEnsureSeedFacilities(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	if err := store.EnsureSeedFacilities(ctx); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	stats, err := store.GetStatistics(ctx)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TotalFacilities != 3 {
		t.Errorf("expected 3 seeded facilities, got %d", stats.TotalFacilities)
	}

	// Seeding again must be a no-op.
	if err := store.EnsureSeedFacilities(ctx); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}
	stats, err = store.GetStatistics(ctx)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TotalFacilities != 3 {
		t.Errorf("expected seed to be idempotent, got %d facilities", stats.TotalFacilities)
	}
}

func TestSeedFacilitySkippedWhenNotEmpty(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	_, err := store.RegisterFacility(ctx, &model.Facility{
		Name:       "Existing Center",
		Latitude:   1,
		Longitude:  1,
		Address:    "Somewhere",
		AcceptsPET: true,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := store.EnsureSeedFacilities(ctx); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	stats, err := store.GetStatistics(ctx)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TotalFacilities != 1 {
		t.Errorf("seed should not run on a non-empty table, got %d facilities", stats.TotalFacilities)
	}
}
