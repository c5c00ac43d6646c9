package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mihai-snyk/pareto/pkg/multiobjective/framework"
	"github.com/mihai-snyk/pareto/pkg/multiobjective/framework/fake"
	"github.com/mihai-snyk/pareto/pkg/multiobjective/metrics"
)

func TestCachedMemoizesIdenticalConfigs(t *testing.T) {
	segment := fake.NewSegment(framework.ObjectiveSpacePoint{1, 9}, framework.ObjectiveSpacePoint{8, 2})
	cached := NewCached(segment, 0)
	dirs := framework.Directions{framework.Minimize, framework.Minimize}
	base := framework.NewSolveConfig(0, dirs, framework.SolverOptions{Name: "segment"}, true)
	hitsBefore := testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("hit"))

	first, err := cached.Solve(context.Background(), base)
	require.NoError(t, err)
	second, err := cached.Solve(context.Background(), base)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, segment.Calls(), 1)
	assert.Equal(t, hitsBefore+1, testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("hit")))

	// a hit hands out a copy
	second.Objectives[0] = 100
	second.Variables["t"][0] = 100
	third, err := cached.Solve(context.Background(), base)
	require.NoError(t, err)
	assert.Equal(t, 1.0, third.Objectives[0])
	assert.Equal(t, 0.0, third.Variables["t"][0])

	bounded := base.WithBounds(framework.EpsilonBound{Objective: 1, Sense: framework.AtMost, Value: 5.5})
	_, err = cached.Solve(context.Background(), bounded)
	require.NoError(t, err)
	assert.Len(t, segment.Calls(), 2)
	assert.Equal(t, 2, cached.Len())
	assert.Equal(t, "segment", cached.Name())
}

func TestCachedDoesNotKeepErrors(t *testing.T) {
	fail := true
	scripted := &fake.Scripted{SolveFunc: func(context.Context, framework.SolveConfig) (*framework.SolveResult, error) {
		if fail {
			return nil, errors.New("transient")
		}
		return &framework.SolveResult{Objectives: framework.ObjectiveSpacePoint{1, 2}, Healthy: true}, nil
	}}
	cached := NewCached(scripted, 0)
	cfg := framework.NewSolveConfig(1, framework.Directions{framework.Minimize, framework.Maximize}, framework.SolverOptions{}, false)

	_, err := cached.Solve(context.Background(), cfg)
	require.Error(t, err)
	fail = false
	res, err := cached.Solve(context.Background(), cfg)
	require.NoError(t, err)
	assert.True(t, res.Healthy)
	assert.Len(t, scripted.Calls(), 2)
}
