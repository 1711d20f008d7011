// Package model scores patient feature rows with a fixed pretrained risk
// model. Training is out of scope; models arrive as coefficient files.
package model

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/radprep/radprep/frame"
)

// Scorer produces one risk score (event probability) per row of a frame.
type Scorer interface {
	Predict(f *frame.Frame) ([]float64, error)
}

// Logistic is a logistic-regression risk model. Features are resolved by
// column name at predict time, so reordering or permuting frame rows flows
// through without re-mapping coefficients.
type Logistic struct {
	Features  []string  `json:"features"`
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
}

var _ Scorer = (*Logistic)(nil)

// Load reads a logistic model from its JSON coefficient file.
func Load(r io.Reader) (*Logistic, error) {
	var m Logistic
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	if len(m.Features) == 0 {
		return nil, fmt.Errorf("model has no features")
	}
	if len(m.Features) != len(m.Coef) {
		return nil, fmt.Errorf("model has %d features but %d coefficients", len(m.Features), len(m.Coef))
	}
	return &m, nil
}

// LoadFile reads a logistic model from a file path.
func LoadFile(path string) (*Logistic, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Predict returns the event probability for each row:
// sigmoid(intercept + sum coef_i * feature_i).
func (m *Logistic) Predict(f *frame.Frame) ([]float64, error) {
	cols := make([]int, len(m.Features))
	for i, name := range m.Features {
		j, err := f.ColumnIndex(name)
		if err != nil {
			return nil, fmt.Errorf("model feature %q: %w", name, err)
		}
		cols[i] = j
	}

	scores := make([]float64, f.NumRows())
	for i, row := range f.Data {
		z := m.Intercept
		for k, j := range cols {
			z += m.Coef[k] * row[j]
		}
		scores[i] = sigmoid(z)
	}
	return scores, nil
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
