// SPDX-License-Identifier: MIT

package fuzzy

import (
	"fmt"
	"math"
)

// Centroid defuzzifies a sampled membership curve:
//
//	output = Σ ys[i]·mu[i] / Σ mu[i]
//
// summed in index order. An all-zero curve returns ErrUnderdetermined.
func Centroid(ys, mu []float64) (float64, error) {
	if len(ys) != len(mu) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrShapeMismatch, len(ys), len(mu))
	}
	var num, den float64
	for i, m := range mu {
		num += ys[i] * m
		den += m
	}
	if den == 0 {
		return 0, ErrUnderdetermined
	}

	return num / den, nil
}

// clipInto raises agg[i] to min(strength, shape(ys[i])) wherever that is larger.
// This is Mamdani clipping followed by max-aggregation, fused in one pass.
func clipInto(agg, ys []float64, shape Triangle, strength float64) {
	for i, y := range ys {
		v := math.Min(strength, shape.Eval(y))
		if v > agg[i] {
			agg[i] = v
		}
	}
}
