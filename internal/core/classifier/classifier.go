// Package classifier scores feature vectors with a binary logistic-regression model.
//
// Class 0 is computer generated, class 1 is original. The model artifact is JSON:
//
//	{"coef": [...], "intercept": -0.31, "n_features": 5011, "classes": ["CG", "OR"]}
package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
)

// Decision labels returned to clients
const (
	PredictionOriginal = "Original"
	PredictionComputer = "Computer generated"

	// Threshold on P(original) at or above which a review counts as original
	Threshold = 0.5
)

// ErrDimension is returned when a vector does not match the model width
var ErrDimension = errors.New("classifier: feature width mismatch")

// Artifact is the serialized model
type Artifact struct {
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
	NFeatures int       `json:"n_features"`
	Classes   []string  `json:"classes,omitempty"`
}

// Model is immutable and safe for concurrent use
type Model struct {
	coef      []float64
	intercept float64
}

// Load reads a JSON artifact from path
func Load(path string) (*Model, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("classifier: read artifact: %w", err)
	}
	var a Artifact
	if err := json.Unmarshal(b, &a); err != nil {
		return nil, fmt.Errorf("classifier: decode artifact: %w", err)
	}
	return New(a)
}

// New validates a and builds a Model
func New(a Artifact) (*Model, error) {
	if len(a.Coef) == 0 {
		return nil, fmt.Errorf("classifier: empty coefficient vector")
	}
	if a.NFeatures != 0 && a.NFeatures != len(a.Coef) {
		return nil, fmt.Errorf("classifier: n_features %d but %d coefficients", a.NFeatures, len(a.Coef))
	}
	if len(a.Classes) != 0 && len(a.Classes) != 2 {
		return nil, fmt.Errorf("classifier: expected 2 classes, got %d", len(a.Classes))
	}
	for i, c := range a.Coef {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, fmt.Errorf("classifier: coefficient %d is not finite", i)
		}
	}
	return &Model{coef: a.Coef, intercept: a.Intercept}, nil
}

// NFeatures is the expected input width
func (m *Model) NFeatures() int { return len(m.coef) }

// PredictProba returns [P(computer generated), P(original)]
func (m *Model) PredictProba(x []float64) ([]float64, error) {
	if len(x) != len(m.coef) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDimension, len(x), len(m.coef))
	}
	z := m.intercept
	for i, w := range m.coef {
		z += w * x[i]
	}
	if math.IsNaN(z) {
		return nil, fmt.Errorf("classifier: non-finite score")
	}
	p := sigmoid(z)
	return []float64{1 - p, p}, nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

// Decision is the interpreted probability vector
type Decision struct {
	Prediction    string
	Original      bool
	Confidence    float64
	Probabilities []float64
}

// Decide applies the threshold to a two class probability vector
func Decide(probs []float64) (Decision, error) {
	if len(probs) != 2 {
		return Decision{}, fmt.Errorf("classifier: expected 2 probabilities, got %d", len(probs))
	}
	d := Decision{
		Original:      probs[1] >= Threshold,
		Confidence:    math.Max(probs[0], probs[1]),
		Probabilities: probs,
	}
	d.Prediction = PredictionComputer
	if d.Original {
		d.Prediction = PredictionOriginal
	}
	return d, nil
}
