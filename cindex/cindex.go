// Package cindex computes the concordance index of a risk score against
// binary outcomes:
//
//	cindex = (concordant + 0.5 * ties) / permissible
//
// A permissible pair has different outcomes; it is concordant when the
// member with the higher risk score also has the worse outcome, and a tie
// when both members share the same score.
package cindex

import (
	"errors"
	"fmt"
)

var ErrNoPermissiblePairs = errors.New("no permissible pairs: all outcomes are equal")

// Score returns the concordance index of scores against outcomes. Outcomes
// are binary, with 1 the worse (event) outcome.
func Score(outcomes []int, scores []float64) (float64, error) {
	if len(outcomes) != len(scores) {
		return 0, fmt.Errorf("got %d outcomes but %d scores", len(outcomes), len(scores))
	}

	var permissible, ties int
	var concordant float64
	for i := 0; i < len(outcomes); i++ {
		for j := i + 1; j < len(outcomes); j++ {
			if outcomes[i] == outcomes[j] {
				continue
			}
			permissible++

			if scores[i] == scores[j] {
				ties++
				continue
			}

			// worse outcome is 1
			worse := i
			if outcomes[j] > outcomes[i] {
				worse = j
			}
			better := i + j - worse
			if scores[worse] > scores[better] {
				concordant++
			}
		}
	}

	if permissible == 0 {
		return 0, ErrNoPermissiblePairs
	}
	return (concordant + 0.5*float64(ties)) / float64(permissible), nil
}
