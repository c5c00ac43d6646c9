package analysis

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/mihai-snyk/pareto/pkg/multiobjective/framework"
)

// ConflictMatrix returns the Pearson correlation between every pair of
// objectives across the frontier points. Strongly negative entries mark
// objectives in conflict. A constant column yields NaN entries, which are
// returned as they are. Fewer than two points give nil.
func ConflictMatrix(points []framework.ObjectiveSpacePoint) *mat.SymDense {
	if len(points) < 2 {
		return nil
	}
	m := len(points[0])
	cols := make([][]float64, m)
	for k := range cols {
		cols[k] = make([]float64, len(points))
		for i, p := range points {
			cols[k][i] = p[k]
		}
	}

	conflict := mat.NewSymDense(m, nil)
	for i := 0; i < m; i++ {
		for j := i; j < m; j++ {
			conflict.SetSym(i, j, stat.Correlation(cols[i], cols[j], nil))
		}
	}
	return conflict
}

// Conflicting lists the objective pairs whose correlation is at or below
// threshold, e.g. -0.5.
func Conflicting(conflict *mat.SymDense, threshold float64) [][2]int {
	if conflict == nil {
		return nil
	}
	var pairs [][2]int
	n := conflict.SymmetricDim()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if conflict.At(i, j) <= threshold {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}
