package classifier

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/smartsort-ai/plasticnet/internal/model"
)

// artifact is the exported weight file for the classification head: a
// stack of dense layers applied to the pooled feature grid of a
// normalized image. It is read once at load and immutable afterwards.
type artifact struct {
	Name      string  `json:"name"`
	Version   string  `json:"version"`
	Classes   []string `json:"classes"`
	Layers    []layer `json:"layers"`
	InputSize int     `json:"input_size"`
	GridSize  int     `json:"grid_size"`
}

// layer is one dense layer. Weights are row-major: Weights[o][i] connects
// input i to output o.
type layer struct {
	Activation string      `json:"activation"`
	Bias       []float64   `json:"bias"`
	Weights    [][]float64 `json:"weights"`
}

const (
	activationReLU    = "relu"
	activationLinear  = "linear"
	activationSoftmax = "softmax"

	defaultInputSize = 224
	defaultGridSize  = 8
)

// loadArtifact reads and validates a weight artifact from disk.
func loadArtifact(path string) (*artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}

	var art artifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("failed to parse model artifact: %w", err)
	}

	if art.InputSize <= 0 {
		art.InputSize = defaultInputSize
	}
	if art.GridSize <= 0 {
		art.GridSize = defaultGridSize
	}

	if err := art.validate(); err != nil {
		return nil, err
	}
	return &art, nil
}

// validate checks that the artifact's classes match the known plastic
// types in canonical order and that the layer dimensions chain correctly
// from the feature vector to one output per class.
func (a *artifact) validate() error {
	known := model.AllTypes()
	if len(a.Classes) != len(known) {
		return fmt.Errorf("model artifact declares %d classes, expected %d", len(a.Classes), len(known))
	}
	for i, class := range a.Classes {
		if model.PlasticType(class) != known[i] {
			return fmt.Errorf("model artifact class %d is %q, expected %q", i, class, known[i])
		}
	}

	if len(a.Layers) == 0 {
		return fmt.Errorf("model artifact has no layers")
	}

	inputs := a.featureCount()
	for i, l := range a.Layers {
		if len(l.Weights) == 0 {
			return fmt.Errorf("layer %d has no weights", i)
		}
		if len(l.Bias) != len(l.Weights) {
			return fmt.Errorf("layer %d bias length %d does not match %d outputs", i, len(l.Bias), len(l.Weights))
		}
		for o, row := range l.Weights {
			if len(row) != inputs {
				return fmt.Errorf("layer %d output %d expects %d inputs, got %d", i, o, inputs, len(row))
			}
		}
		switch l.Activation {
		case activationReLU, activationLinear, activationSoftmax:
		default:
			return fmt.Errorf("layer %d has unknown activation %q", i, l.Activation)
		}
		inputs = len(l.Weights)
	}

	if inputs != len(known) {
		return fmt.Errorf("final layer produces %d outputs, expected %d", inputs, len(known))
	}
	if final := a.Layers[len(a.Layers)-1].Activation; final != activationSoftmax {
		return fmt.Errorf("final layer activation is %q, expected %q", final, activationSoftmax)
	}
	return nil
}

// featureCount is the length of the pooled feature vector: one value per
// channel per grid cell.
func (a *artifact) featureCount() int {
	return a.GridSize * a.GridSize * 3
}

// forward runs the dense stack over a feature vector and returns the
// class probability distribution.
func (a *artifact) forward(features []float64) []float64 {
	values := features
	for _, l := range a.Layers {
		out := make([]float64, len(l.Weights))
		for o, row := range l.Weights {
			sum := l.Bias[o]
			for i, w := range row {
				sum += w * values[i]
			}
			out[o] = sum
		}
		switch l.Activation {
		case activationReLU:
			for i, v := range out {
				if v < 0 {
					out[i] = 0
				}
			}
		case activationSoftmax:
			softmax(out)
		}
		values = out
	}
	return values
}

// softmax normalizes logits in place, shifted by the max for numerical
// stability.
func softmax(logits []float64) {
	maxLogit := logits[0]
	for _, v := range logits[1:] {
		if v > maxLogit {
			maxLogit = v
		}
	}

	var sum float64
	for i, v := range logits {
		logits[i] = math.Exp(v - maxLogit)
		sum += logits[i]
	}
	for i := range logits {
		logits[i] /= sum
	}
}
