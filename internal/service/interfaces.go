// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/smartsort-ai/plasticnet/internal/model"
)

// Storage defines the contract for the persistence layer.
type Storage interface {
	// Facility operations
	RegisterFacility(ctx context.Context, facility *model.Facility) (int64, error)
	GetNearbyFacilities(ctx context.Context, latitude, longitude float64, plasticType *model.PlasticType, radiusKM float64) ([]model.FacilityMatch, error)

	// Classification history operations
	AppendClassification(ctx context.Context, plasticType model.PlasticType, confidence float64, imageName string) (int64, error)
	GetHistory(ctx context.Context, limit, offset int) ([]model.HistoryEntry, error)
	DeleteHistoryEntry(ctx context.Context, id int64) (bool, error)

	// Feedback operations
	SaveFeedback(ctx context.Context, feedback *model.Feedback) (int64, error)

	// Aggregates
	GetStatistics(ctx context.Context) (*model.Statistics, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// Classifier defines the contract the engine depends on for inference.
// Predict returns either a complete prediction or a tagged failure; it
// never panics across this boundary.
type Classifier interface {
	Load(ctx context.Context) error
	Predict(imageData []byte) (*model.Prediction, error)
	PredictFile(path string) (*model.Prediction, error)
}

// RetryOptions configures retry behavior for caller-side retry policies.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
