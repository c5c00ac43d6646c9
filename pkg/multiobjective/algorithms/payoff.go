package algorithms

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
	"k8s.io/klog/v2"

	"github.com/mihai-snyk/pareto/pkg/multiobjective/framework"
)

// PayoffOptions configures BuildPayoffTable.
type PayoffOptions struct {
	Solver        framework.SolverOptions
	SaveVariables bool
	Parallelism   int
}

// BuildPayoffTable optimizes every objective on its own. Row m of the
// returned M×M matrix holds all objective values at the optimum of objective
// m; the matching candidate (row m, its variables) is returned alongside so
// the caller can seed the frontier with it.
//
// A row that cannot be solved aborts the table with a
// *framework.PayoffInfeasibleError naming the lowest failing objective.
func BuildPayoffTable(ctx context.Context, provider framework.ModelProvider, dirs framework.Directions, opts PayoffOptions) (*mat.Dense, []framework.Candidate, error) {
	logger := klog.FromContext(ctx)
	m := len(dirs)
	rows := make([]*framework.SolveResult, m)
	errs := make([]error, m)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(opts.Parallelism))
	for obj := 0; obj < m; obj++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			cfg := framework.NewSolveConfig(obj, dirs, opts.Solver, opts.SaveVariables)
			res, err := solve(gctx, provider, cfg, framework.OriginPayoff)
			if err != nil {
				// failures caused by another row cancelling gctx are not attributed
				if gctx.Err() == nil {
					errs[obj] = err
				}
				return err
			}
			rows[obj] = res
			logger.V(4).Info("Solved payoff row", "objective", obj, "direction", dirs[obj], "values", res.Objectives)
			return nil
		})
	}
	waitErr := g.Wait()

	payoff := mat.NewDense(m, m, nil)
	for obj, res := range rows {
		if res != nil {
			payoff.SetRow(obj, res.Objectives)
		}
	}

	if waitErr != nil {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		for obj, err := range errs {
			if err == nil {
				continue
			}
			perr := &framework.PayoffInfeasibleError{Objective: obj, Payoff: payoff}
			if !errors.Is(err, errUnhealthy) {
				perr.Err = err
			}
			return nil, nil, perr
		}
		return nil, nil, waitErr
	}

	candidates := make([]framework.Candidate, m)
	for obj, res := range rows {
		candidates[obj] = framework.Candidate{
			Objectives: res.Objectives,
			Variables:  res.Variables,
			Origin:     framework.OriginPayoff,
		}
	}
	logger.V(2).Info("Built payoff table", "objectives", m)
	return payoff, candidates, nil
}
