package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/smartsort-ai/plasticnet/internal/classifier"
	"github.com/smartsort-ai/plasticnet/internal/config"
	"github.com/smartsort-ai/plasticnet/internal/storage"
	"github.com/spf13/viper"
)

// initStorage opens the database, runs migrations, and seeds the sample
// facilities on first initialization.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		var err error
		dbPath, err = config.DefaultDatabasePath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve database path: %w", err)
		}
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := store.EnsureSeedFacilities(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to seed facilities: %w", err)
	}

	return store, nil
}

// initClassifier builds the inference engine and loads the model under the
// configured timeout.
func initClassifier(ctx context.Context) (*classifier.Classifier, error) {
	modelPath := viper.GetString("model.path")
	if modelPath == "" {
		var err error
		modelPath, err = config.DefaultModelPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve model path: %w", err)
		}
	}
	modelPath = config.ExpandPath(modelPath)

	engine, err := classifier.New(classifier.Config{ModelPath: modelPath}, slog.Default())
	if err != nil {
		return nil, err
	}

	timeout := viper.GetDuration("model.load_timeout")
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	loadCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := engine.Load(loadCtx); err != nil {
		return nil, err
	}
	return engine, nil
}

// newClassifierForStatus builds the engine and attempts a load purely to
// report its health state; a failed load is part of the answer, not an
// error.
func newClassifierForStatus() (*classifier.Classifier, error) {
	modelPath := viper.GetString("model.path")
	if modelPath == "" {
		var err error
		modelPath, err = config.DefaultModelPath()
		if err != nil {
			return nil, err
		}
	}
	modelPath = config.ExpandPath(modelPath)

	engine, err := classifier.New(classifier.Config{ModelPath: modelPath}, slog.Default())
	if err != nil {
		return nil, err
	}

	loadCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = engine.Load(loadCtx)

	return engine, nil
}
