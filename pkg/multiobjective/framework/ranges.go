package framework

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// PayoffRanges returns, per objective, the smallest and largest value seen
// across the payoff rows.
func PayoffRanges(payoff mat.Matrix) (min, max []float64) {
	_, m := payoff.Dims()
	min = make([]float64, m)
	max = make([]float64, m)
	for k := 0; k < m; k++ {
		col := mat.Col(nil, k, payoff)
		min[k] = floats.Min(col)
		max[k] = floats.Max(col)
	}
	return min, max
}

// CheckRanges computes the payoff ranges and fails with a
// DegenerateObjectiveRangeError on the first objective whose range is empty
// or not finite.
func CheckRanges(payoff *mat.Dense) (min, max []float64, err error) {
	min, max = PayoffRanges(payoff)
	for k := range min {
		if r := max[k] - min[k]; !(r > 0) || math.IsInf(r, 0) {
			return nil, nil, &DegenerateObjectiveRangeError{
				Objective: k,
				Min:       min[k],
				Max:       max[k],
				Payoff:    mat.DenseCopyOf(payoff),
			}
		}
	}
	return min, max, nil
}
