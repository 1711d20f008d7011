package cindex

import (
	"errors"
	"math"
	"testing"
)

func TestScorePerfect(t *testing.T) {
	outcomes := []int{0, 0, 1, 1}
	scores := []float64{0.1, 0.2, 0.8, 0.9}
	got, err := Score(outcomes, scores)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if got != 1.0 {
		t.Fatalf("perfect ranking: got %g want 1.0", got)
	}
}

func TestScoreInverted(t *testing.T) {
	outcomes := []int{0, 0, 1, 1}
	scores := []float64{0.9, 0.8, 0.2, 0.1}
	got, err := Score(outcomes, scores)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if got != 0.0 {
		t.Fatalf("inverted ranking: got %g want 0.0", got)
	}
}

func TestScoreTies(t *testing.T) {
	// Two permissible pairs, both tied: (0.5+0.5)/2 = 0.5.
	outcomes := []int{0, 1, 1}
	scores := []float64{0.4, 0.4, 0.4}
	got, err := Score(outcomes, scores)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if got != 0.5 {
		t.Fatalf("all ties: got %g want 0.5", got)
	}
}

func TestScoreMixed(t *testing.T) {
	// Permissible pairs:
	// (0,2): 0.3 vs 0.7, worse scored higher -> concordant
	// (0,3): 0.3 vs 0.3, tie
	// (1,2): 0.8 vs 0.7, worse scored lower -> discordant
	// (1,3): 0.8 vs 0.3, worse scored lower -> discordant
	// cindex = (1 + 0.5) / 4 = 0.375
	outcomes := []int{0, 0, 1, 1}
	scores := []float64{0.3, 0.8, 0.7, 0.3}
	got, err := Score(outcomes, scores)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if math.Abs(got-0.375) > 1e-12 {
		t.Fatalf("mixed ranking: got %g want 0.375", got)
	}
}

func TestScoreNoPermissiblePairs(t *testing.T) {
	_, err := Score([]int{1, 1, 1}, []float64{0.1, 0.2, 0.3})
	if !errors.Is(err, ErrNoPermissiblePairs) {
		t.Fatalf("expected ErrNoPermissiblePairs, got %v", err)
	}
}

func TestScoreLengthMismatch(t *testing.T) {
	if _, err := Score([]int{0, 1}, []float64{0.5}); err == nil {
		t.Fatal("expected error for length mismatch")
	}
}
