package perm

import (
	"math"
	"math/rand"
	"testing"

	"github.com/radprep/radprep/frame"
	"github.com/radprep/radprep/model"
)

// testData builds a frame where Age separates outcomes perfectly and Noise
// carries no signal, scored by a model that reads both.
func testData() (*frame.Frame, []int, model.Scorer) {
	f := &frame.Frame{
		Index:   []string{"p1", "p2", "p3", "p4", "p5", "p6"},
		Columns: []string{"Age", "Noise"},
		Data: [][]float64{
			{-1.5, 0.3},
			{-1.0, -0.2},
			{-0.5, 0.8},
			{0.5, -0.9},
			{1.0, 0.1},
			{1.5, 0.4},
		},
	}
	outcomes := []int{0, 0, 0, 1, 1, 1}
	m := &model.Logistic{
		Features:  []string{"Age", "Noise"},
		Coef:      []float64{3.0, 0.01},
		Intercept: 0,
	}
	return f, outcomes, m
}

func TestBaseline(t *testing.T) {
	f, outcomes, m := testData()
	r := &Runner{Model: m, Reps: 1, Rand: rand.New(rand.NewSource(1))}
	baseline, err := r.Baseline(f, outcomes)
	if err != nil {
		t.Fatalf("Baseline: %v", err)
	}
	if baseline != 1.0 {
		t.Fatalf("baseline c-index: got %g want 1.0", baseline)
	}
}

func TestImportanceSignalBeatsNoise(t *testing.T) {
	f, outcomes, m := testData()
	r := &Runner{Model: m, Reps: 20, Rand: rand.New(rand.NewSource(7))}

	age, err := r.Importance(f, outcomes, "Age")
	if err != nil {
		t.Fatalf("Importance(Age): %v", err)
	}
	noise, err := r.Importance(f, outcomes, "Noise")
	if err != nil {
		t.Fatalf("Importance(Noise): %v", err)
	}

	if age.Importance <= noise.Importance {
		t.Fatalf("expected Age (%g) to outrank Noise (%g)", age.Importance, noise.Importance)
	}
	if noise.Importance > 0.05 {
		t.Errorf("noise importance suspiciously high: %g", noise.Importance)
	}
	if len(age.Scores) != 20 {
		t.Errorf("expected 20 repetition scores, got %d", len(age.Scores))
	}
}

func TestImportanceIsMeanDelta(t *testing.T) {
	f, outcomes, m := testData()
	r := &Runner{Model: m, Reps: 5, Rand: rand.New(rand.NewSource(3))}

	res, err := r.Importance(f, outcomes, "Age")
	if err != nil {
		t.Fatalf("Importance: %v", err)
	}

	sum := 0.0
	for _, s := range res.Scores {
		sum += s
	}
	mean := sum / float64(len(res.Scores))
	if math.Abs(res.Mean-mean) > 1e-12 {
		t.Errorf("mean: got %g want %g", res.Mean, mean)
	}
	if math.Abs(res.Importance-math.Abs(res.Baseline-mean)) > 1e-12 {
		t.Errorf("importance: got %g want %g", res.Importance, math.Abs(res.Baseline-mean))
	}
}

func TestImportanceDeterministicUnderSeed(t *testing.T) {
	f, outcomes, m := testData()

	run := func() Result {
		r := &Runner{Model: m, Reps: 10, Rand: rand.New(rand.NewSource(99))}
		res, err := r.Importance(f, outcomes, "Age")
		if err != nil {
			t.Fatalf("Importance: %v", err)
		}
		return res
	}

	a, b := run(), run()
	if a.Importance != b.Importance {
		t.Fatalf("same seed, different importance: %g vs %g", a.Importance, b.Importance)
	}
}

func TestImportanceLeavesFrameIntact(t *testing.T) {
	f, outcomes, m := testData()
	before := f.Clone()

	r := &Runner{Model: m, Reps: 10, Rand: rand.New(rand.NewSource(5))}
	if _, err := r.Importance(f, outcomes, "Age"); err != nil {
		t.Fatalf("Importance: %v", err)
	}

	for i := range f.Data {
		for j := range f.Data[i] {
			if f.Data[i][j] != before.Data[i][j] {
				t.Fatalf("input frame mutated at [%d][%d]", i, j)
			}
		}
	}
}

func TestAll(t *testing.T) {
	f, outcomes, m := testData()

	calls := 0
	r := &Runner{
		Model:    m,
		Reps:     10,
		Rand:     rand.New(rand.NewSource(11)),
		Progress: func() { calls++ },
	}

	results, err := r.All(f, outcomes)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Feature != "Age" {
		t.Errorf("expected Age ranked first, got %s", results[0].Feature)
	}
	if calls != 20 {
		t.Errorf("expected 20 progress calls, got %d", calls)
	}
}

func TestImportanceNilRand(t *testing.T) {
	f, outcomes, m := testData()
	r := &Runner{Model: m, Reps: 3}

	res, err := r.Importance(f, outcomes, "Age")
	if err != nil {
		t.Fatalf("Importance without Rand: %v", err)
	}
	if len(res.Scores) != 3 {
		t.Fatalf("expected 3 repetition scores, got %d", len(res.Scores))
	}
}

func TestImportanceUnknownFeature(t *testing.T) {
	f, outcomes, m := testData()
	r := &Runner{Model: m, Reps: 3, Rand: rand.New(rand.NewSource(1))}
	if _, err := r.Importance(f, outcomes, "Weight"); err == nil {
		t.Fatal("expected error for unknown feature")
	}
}

func TestImportanceRejectsZeroReps(t *testing.T) {
	f, outcomes, m := testData()
	r := &Runner{Model: m, Rand: rand.New(rand.NewSource(1))}
	if _, err := r.Importance(f, outcomes, "Age"); err == nil {
		t.Fatal("expected error for zero repetitions")
	}
}
