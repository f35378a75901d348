// Package classifier implements the image inference engine: it loads a
// trained weight artifact, normalizes input images, and produces plastic
// type predictions with per-class probabilities.
package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/smartsort-ai/plasticnet/internal/common"
	"github.com/smartsort-ai/plasticnet/internal/model"
)

// State describes where the engine is in its lifecycle.
type State string

// Engine states. Loaded is permanent for the process lifetime; LoadFailed
// is sticky until a successful explicit Load.
const (
	StateUninitialized State = "uninitialized"
	StateLoaded        State = "loaded"
	StateLoadFailed    State = "load_failed"
)

// Config holds configuration for the classifier.
type Config struct {
	ModelPath string
}

// Classifier wraps the trained model. The loaded weights are immutable and
// safely shared across concurrent Predict calls; only the lifecycle state
// is guarded.
type Classifier struct {
	logger    *slog.Logger
	art       *artifact
	loadErr   error
	modelPath string
	state     State
	mu        sync.RWMutex
}

// New creates a classifier in the Uninitialized state. Call Load to bring
// it up explicitly; Predict will also attempt one implicit load.
func New(cfg Config, logger *slog.Logger) (*Classifier, error) {
	if cfg.ModelPath == "" {
		return nil, fmt.Errorf("%w: model path", common.ErrMissingConfig)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{
		modelPath: cfg.ModelPath,
		state:     StateUninitialized,
		logger:    logger,
	}, nil
}

// Load reads and validates the weight artifact. On success the engine is
// Loaded for the remainder of the process; on failure it is LoadFailed
// and subsequent predictions report model_unavailable until a Load
// succeeds. Load honors ctx cancellation between the disk read and
// validation, so callers can bound it with a timeout.
func (c *Classifier) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateLoaded {
		return nil
	}

	if err := ctx.Err(); err != nil {
		return common.E(common.KindModelUnavailable, "model load canceled", err)
	}

	art, err := loadArtifact(c.modelPath)
	if err != nil {
		c.state = StateLoadFailed
		c.loadErr = err
		c.logger.Error("model load failed", "path", c.modelPath, "error", err)
		return common.E(common.KindModelUnavailable, "failed to load model", err)
	}

	if err := ctx.Err(); err != nil {
		return common.E(common.KindModelUnavailable, "model load canceled", err)
	}

	c.art = art
	c.state = StateLoaded
	c.loadErr = nil
	c.logger.Info("model loaded",
		"path", c.modelPath,
		"name", art.Name,
		"version", art.Version,
		"input_size", art.InputSize)
	return nil
}

// State returns the engine's lifecycle state for health reporting.
func (c *Classifier) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Predict classifies raw image bytes. It returns either a complete
// prediction or a tagged failure (decode_error, model_unavailable,
// internal_error); no fault escapes this boundary and there are no
// partial results.
func (c *Classifier) Predict(imageData []byte) (*model.Prediction, error) {
	art, err := c.artifactForPredict()
	if err != nil {
		return nil, err
	}

	features, err := preprocess(imageData, art.InputSize, art.GridSize)
	if err != nil {
		return nil, common.E(common.KindDecode, "unreadable image data", err)
	}

	probs := art.forward(features)
	types := model.AllTypes()
	if len(probs) != len(types) {
		return nil, common.Ef(common.KindInternal, "model produced %d outputs for %d classes", len(probs), len(types))
	}

	// First max wins so exact ties resolve in canonical order.
	top := 0
	for i, p := range probs {
		if p > probs[top] {
			top = i
		}
	}

	distribution := make(map[model.PlasticType]float64, len(types))
	for i, t := range types {
		distribution[t] = probs[i]
	}

	material, ok := model.MaterialFor(types[top])
	if !ok {
		return nil, common.Ef(common.KindInternal, "no material data for type %q", types[top])
	}

	return &model.Prediction{
		Type:          types[top],
		Confidence:    probs[top],
		Probabilities: distribution,
		Material:      material,
	}, nil
}

// PredictFile classifies an image read from disk.
func (c *Classifier) PredictFile(path string) (*model.Prediction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, common.E(common.KindDecode, "unreadable image file", err)
	}
	return c.Predict(data)
}

// artifactForPredict returns the loaded artifact, attempting an implicit
// load from the Uninitialized state. A prior failed load is reported
// without touching the disk again.
func (c *Classifier) artifactForPredict() (*artifact, error) {
	c.mu.RLock()
	state, art, loadErr := c.state, c.art, c.loadErr
	c.mu.RUnlock()

	switch state {
	case StateLoaded:
		return art, nil
	case StateLoadFailed:
		return nil, common.E(common.KindModelUnavailable, "model not loaded", loadErr)
	}

	if err := c.Load(context.Background()); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.art, nil
}
