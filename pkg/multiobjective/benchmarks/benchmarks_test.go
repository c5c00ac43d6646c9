package benchmarks

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/mihai-snyk/pareto/pkg/multiobjective/algorithms"
	"github.com/mihai-snyk/pareto/pkg/multiobjective/framework"
	"github.com/mihai-snyk/pareto/pkg/multiobjective/provider/linear"
)

func setup(t *testing.T, b Benchmark) (*linear.Provider, framework.Directions, *mat.Dense) {
	t.Helper()
	provider, err := linear.New(b.Problem())
	require.NoError(t, err)
	dirs, err := b.Problem().Directions()
	require.NoError(t, err)
	payoff, _, err := algorithms.BuildPayoffTable(context.Background(), provider, dirs, algorithms.PayoffOptions{Parallelism: 2})
	require.NoError(t, err)
	return provider, dirs, payoff
}

func TestBiobjectiveEpsilonConstraint(t *testing.T) {
	b := &Biobjective{}
	provider, dirs, payoff := setup(t, b)
	assert.True(t, mat.EqualApprox(mat.NewDense(2, 2, []float64{1, 9, 8, 2}), payoff, 1e-8), "payoff:\n%s", framework.FormatMatrix(payoff))

	out, err := algorithms.EpsilonConstraint(context.Background(), provider, dirs, payoff, algorithms.EpsilonConstraintOptions{Intervals: 7})
	require.NoError(t, err)
	assert.Empty(t, out.Failures)

	frontier := framework.Revise(out.Candidates, dirs)
	// both sweeps visit the eight integer points of the front, possibly off
	// by rounding
	assert.GreaterOrEqual(t, frontier.Len(), 8)
	assert.LessOrEqual(t, frontier.Len(), 16)
	for _, p := range frontier.Points {
		assert.InDelta(t, 10, p[0]+p[1], 1e-8)
		assert.GreaterOrEqual(t, p[0], 1-1e-8)
		assert.LessOrEqual(t, p[0], 8+1e-8)
	}
}

func TestSimplex3WeightedSum(t *testing.T) {
	b := &Simplex3{}
	provider, dirs, payoff := setup(t, b)
	assert.True(t, mat.EqualApprox(mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}), payoff, 1e-8))

	out, err := algorithms.WeightedSum(context.Background(), provider, dirs, payoff, algorithms.WeightedSumOptions{
		Intervals: 20,
		Source:    rand.NewPCG(1, 2),
	})
	require.NoError(t, err)
	require.Len(t, out.Candidates, 21)
	for _, c := range out.Candidates {
		assert.InDelta(t, 1, c.Objectives[0]+c.Objectives[1]+c.Objectives[2], 1e-8)
	}
	// a linear aggregate is optimized at a vertex of the simplex
	frontier := framework.Revise(out.Candidates, dirs)
	assert.LessOrEqual(t, frontier.Len(), 3)
}

func TestTrueParetoFront(t *testing.T) {
	front := (&Biobjective{}).TrueParetoFront(8)
	require.Len(t, front, 8)
	assert.Equal(t, framework.ObjectiveSpacePoint{1, 9}, front[0])
	assert.Equal(t, framework.ObjectiveSpacePoint{8, 2}, front[7])

	simplex := (&Simplex3{}).TrueParetoFront(10)
	assert.Len(t, simplex, 10)
	for _, p := range simplex {
		assert.InDelta(t, 1, p[0]+p[1]+p[2], 1e-12)
		assert.GreaterOrEqual(t, p[2], -1e-12)
	}
	dirs := framework.Directions{framework.Maximize, framework.Maximize, framework.Maximize}
	assert.Len(t, framework.NonDominated(simplex, dirs), len(simplex))
}

func TestGet(t *testing.T) {
	assert.Equal(t, []string{BiobjectiveName, Simplex3Name}, Names())
	b, err := Get(Simplex3Name)
	require.NoError(t, err)
	assert.Equal(t, Simplex3Name, b.Name())
	_, err = Get("zdt1")
	assert.Error(t, err)
}
