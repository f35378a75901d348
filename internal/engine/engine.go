// Package engine orchestrates classification requests: inference first,
// then the facility lookup keyed by the predicted type.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/smartsort-ai/plasticnet/internal/model"
	"github.com/smartsort-ai/plasticnet/internal/service"
)

// Engine ties the classifier and the facility repository together.
// Persisting the outcome to the classification history is deliberately
// left to the caller, performed after a successful prediction.
type Engine struct {
	storage    service.Storage
	classifier service.Classifier
	radiusKM   float64
}

// Config holds configuration options for the engine.
type Config struct {
	DefaultRadiusKM float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{DefaultRadiusKM: 10.0}
}

// New creates an engine with the given dependencies.
func New(storage service.Storage, classifier service.Classifier, cfg Config) *Engine {
	if cfg.DefaultRadiusKM <= 0 {
		cfg.DefaultRadiusKM = DefaultConfig().DefaultRadiusKM
	}
	return &Engine{
		storage:    storage,
		classifier: classifier,
		radiusKM:   cfg.DefaultRadiusKM,
	}
}

// Request is one classification request. Latitude and Longitude are both
// required to trigger the facility lookup; RadiusKM falls back to the
// engine default when non-positive.
type Request struct {
	Latitude  *float64
	Longitude *float64
	ImageName string
	Image     []byte
	RadiusKM  float64
}

// Result is a completed classification with optional nearby facilities.
type Result struct {
	Timestamp  time.Time
	Prediction *model.Prediction
	Facilities []model.FacilityMatch
	Tier       model.ConfidenceTier
}

// Classify runs inference on the request image and, when a location is
// supplied, queries facilities accepting the predicted type within the
// radius. A failed prediction returns a tagged error and no facility
// query is made.
func (e *Engine) Classify(ctx context.Context, req Request) (*Result, error) {
	prediction, err := e.classifier.Predict(req.Image)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Prediction: prediction,
		Tier:       model.TierForConfidence(prediction.Confidence),
		Timestamp:  time.Now(),
	}

	if req.Latitude != nil && req.Longitude != nil {
		radius := req.RadiusKM
		if radius <= 0 {
			radius = e.radiusKM
		}

		predictedType := prediction.Type
		facilities, err := e.storage.GetNearbyFacilities(ctx, *req.Latitude, *req.Longitude, &predictedType, radius)
		if err != nil {
			return nil, err
		}
		result.Facilities = facilities

		slog.Debug("facility lookup complete",
			"plastic_type", predictedType,
			"radius_km", radius,
			"matches", len(facilities))
	}

	return result, nil
}
