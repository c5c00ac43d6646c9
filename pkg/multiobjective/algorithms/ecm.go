package algorithms

import (
	"context"

	"gonum.org/v1/gonum/mat"
	"k8s.io/klog/v2"

	"github.com/mihai-snyk/pareto/pkg/multiobjective/framework"
)

const (
	EpsilonConstraintName = "ecm"
	DefaultIntervals      = 10
)

// EpsilonConstraintOptions configures the epsilon-constraint enumerator.
type EpsilonConstraintOptions struct {
	// Intervals is the number of grid intervals G; steps run from 0 to G.
	Intervals int
	// ImportantObjective, when set, is the only objective that gets
	// optimized. Otherwise every objective takes a turn.
	ImportantObjective *int
	Solver             framework.SolverOptions
	SaveVariables      bool
	Parallelism        int
}

// Outcome is the raw result of one scalarization strategy.
type Outcome struct {
	Candidates []framework.Candidate
	Attempted  int
	// Failures holds one error per skipped iteration.
	Failures []error
}

// EpsilonBound returns the bound put on objective j at grid step g of G.
// Step 0 sits at the worst payoff value of j, which no payoff row violates,
// and step G pins j to its best payoff value.
func EpsilonBound(j int, dir framework.Direction, min, max float64, g, intervals int) framework.EpsilonBound {
	worst, best, sense := max, min, framework.AtMost
	if dir == framework.Maximize {
		worst, best, sense = min, max, framework.AtLeast
	}
	value := worst + float64(g)/float64(intervals)*(best-worst)
	if g == intervals {
		// avoid rounding away from the payoff optimum
		value = best
	}
	return framework.EpsilonBound{Objective: j, Sense: sense, Value: value}
}

// EpsilonConstraint optimizes each target objective while sweeping epsilon
// bounds on all the other objectives across the payoff ranges. Infeasible
// bound combinations are expected and skipped.
func EpsilonConstraint(ctx context.Context, provider framework.ModelProvider, dirs framework.Directions, payoff *mat.Dense, opts EpsilonConstraintOptions) (*Outcome, error) {
	logger := klog.FromContext(ctx)

	min, max, err := framework.CheckRanges(payoff)
	if err != nil {
		return nil, err
	}

	intervals := opts.Intervals
	if intervals < 1 {
		intervals = DefaultIntervals
	}

	targets := make([]int, 0, len(dirs))
	if opts.ImportantObjective != nil {
		targets = append(targets, *opts.ImportantObjective)
	} else {
		for k := range dirs {
			targets = append(targets, k)
		}
	}

	iters := make([]iteration, 0, len(targets)*(intervals+1))
	for _, k := range targets {
		base := framework.NewSolveConfig(k, dirs, opts.Solver, opts.SaveVariables)
		for g := 0; g <= intervals; g++ {
			bounds := make([]framework.EpsilonBound, 0, len(dirs)-1)
			for j, d := range dirs {
				if j == k {
					continue
				}
				bounds = append(bounds, EpsilonBound(j, d, min[j], max[j], g, intervals))
			}
			iters = append(iters, iteration{
				cfg:           base.WithBounds(bounds...),
				keysAndValues: []interface{}{"target", k, "step", g},
			})
		}
	}

	logger.V(2).Info("Running epsilon-constraint enumeration", "targets", targets, "intervals", intervals, "solves", len(iters))
	candidates, failures, err := runIterations(ctx, provider, iters, workerCount(opts.Parallelism), framework.OriginEpsilonConstraint)
	if err != nil {
		return nil, err
	}
	return &Outcome{Candidates: candidates, Attempted: len(iters), Failures: failures}, nil
}
