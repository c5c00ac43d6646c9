package algorithms

import (
	"context"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"k8s.io/klog/v2"

	"github.com/mihai-snyk/pareto/pkg/multiobjective/framework"
)

const WeightedSumName = "nwsm"

// WeightedSumOptions configures the normalized weighted-sum sampler.
type WeightedSumOptions struct {
	// Intervals is G; G+1 weight vectors are sampled.
	Intervals int
	// Weights, when set, replaces sampling with exactly one solve.
	Weights  []float64
	Sampling WeightSampling
	// Source drives the sampler. A nil source is seeded at random.
	Source        rand.Source
	Solver        framework.SolverOptions
	SaveVariables bool
	Parallelism   int
}

// WeightedSum minimizes the normalized weighted sum of all objectives, once
// per weight vector, and records the raw objective vector of every healthy
// solve tagged with its weights.
func WeightedSum(ctx context.Context, provider framework.ModelProvider, dirs framework.Directions, payoff *mat.Dense, opts WeightedSumOptions) (*Outcome, error) {
	logger := klog.FromContext(ctx)

	min, max, err := framework.CheckRanges(payoff)
	if err != nil {
		return nil, err
	}

	var weights [][]float64
	if opts.Weights != nil {
		weights = [][]float64{append([]float64(nil), opts.Weights...)}
	} else {
		intervals := opts.Intervals
		if intervals < 1 {
			intervals = DefaultIntervals
		}
		src := opts.Source
		if src == nil {
			src = rand.NewPCG(rand.Uint64(), rand.Uint64())
		}
		sampler, err := NewWeightSampler(opts.Sampling, len(dirs), src)
		if err != nil {
			return nil, err
		}
		weights = make([][]float64, intervals+1)
		// sampling stays sequential so a seeded run is reproducible
		for i := range weights {
			weights[i] = sampler.Sample()
		}
	}

	// a solve optimizing the aggregate has no single target objective
	base := framework.NewSolveConfig(-1, dirs, opts.Solver, opts.SaveVariables)
	iters := make([]iteration, len(weights))
	for i, w := range weights {
		iters[i] = iteration{
			cfg: base.WithAggregate(framework.AggregateObjective{
				Weights: w,
				Min:     min,
				Max:     max,
			}),
			keysAndValues: []interface{}{"sample", i, "weights", w},
			weights:       w,
		}
	}

	logger.V(2).Info("Running normalized weighted-sum sampling", "sampling", opts.Sampling, "fixedWeights", opts.Weights != nil, "solves", len(iters))
	candidates, failures, err := runIterations(ctx, provider, iters, workerCount(opts.Parallelism), framework.OriginWeightedSum)
	if err != nil {
		return nil, err
	}
	for i := range candidates {
		c := &candidates[i]
		agg := framework.AggregateObjective{Weights: c.Weights, Min: min, Max: max}
		v := agg.Value(c.Objectives, dirs)
		c.Scalarized = &v
		logger.V(5).Info("Scalarized sample", "weights", c.Weights, "objectives", c.Objectives, "value", v)
	}
	return &Outcome{Candidates: candidates, Attempted: len(iters), Failures: failures}, nil
}
