// Package perm measures feature importance by permutation: shuffle one
// feature column, rescore with the fixed model, and compare the concordance
// index against the unshuffled baseline.
package perm

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/radprep/radprep/cindex"
	"github.com/radprep/radprep/frame"
	"github.com/radprep/radprep/model"
)

// Result is the importance of one feature over a set of permutation runs.
type Result struct {
	Feature  string    `json:"feature"`
	Baseline float64   `json:"baseline"`
	Scores   []float64 `json:"scores"`

	// Mean is the mean concordance index over the shuffled runs.
	Mean float64 `json:"mean"`

	// Importance is |Baseline - Mean|.
	Importance float64 `json:"importance"`
}

// Runner evaluates permutation importance for a fixed scoring model.
type Runner struct {
	Model model.Scorer

	// Reps is the number of shuffles per feature.
	Reps int

	// Rand drives the shuffles; left nil, a time-seeded source is used.
	Rand *rand.Rand

	// Progress, if set, is called after every completed repetition.
	Progress func()
}

// Baseline returns the concordance index of the model on unshuffled data.
func (r *Runner) Baseline(f *frame.Frame, outcomes []int) (float64, error) {
	scores, err := r.Model.Predict(f)
	if err != nil {
		return 0, err
	}
	return cindex.Score(outcomes, scores)
}

// Importance shuffles the named feature Reps times and reports the absolute
// difference between the baseline concordance index and the mean of the
// shuffled ones.
func (r *Runner) Importance(f *frame.Frame, outcomes []int, feature string) (Result, error) {
	baseline, err := r.Baseline(f, outcomes)
	if err != nil {
		return Result{}, err
	}
	return r.importance(f, outcomes, feature, baseline)
}

func (r *Runner) importance(f *frame.Frame, outcomes []int, feature string, baseline float64) (Result, error) {
	if r.Reps < 1 {
		return Result{}, fmt.Errorf("repetitions must be at least 1, got %d", r.Reps)
	}
	if _, err := f.ColumnIndex(feature); err != nil {
		return Result{}, err
	}

	rng := r.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	res := Result{
		Feature:  feature,
		Baseline: baseline,
		Scores:   make([]float64, 0, r.Reps),
	}

	sum := 0.0
	for i := 0; i < r.Reps; i++ {
		shuffled := f.Clone()
		if err := shuffled.Shuffle(feature, rng); err != nil {
			return Result{}, err
		}

		scores, err := r.Model.Predict(shuffled)
		if err != nil {
			return Result{}, err
		}
		c, err := cindex.Score(outcomes, scores)
		if err != nil {
			return Result{}, fmt.Errorf("repetition %d of %s: %w", i+1, feature, err)
		}

		res.Scores = append(res.Scores, c)
		sum += c
		if r.Progress != nil {
			r.Progress()
		}
	}

	res.Mean = sum / float64(r.Reps)
	res.Importance = res.Baseline - res.Mean
	if res.Importance < 0 {
		res.Importance = -res.Importance
	}
	return res, nil
}

// All computes the importance of every feature column, sorted by importance
// descending. The baseline is computed once and shared.
func (r *Runner) All(f *frame.Frame, outcomes []int) ([]Result, error) {
	baseline, err := r.Baseline(f, outcomes)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(f.Columns))
	for _, feature := range f.Columns {
		res, err := r.importance(f, outcomes, feature, baseline)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Importance > results[b].Importance
	})
	return results, nil
}
