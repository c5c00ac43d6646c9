package algorithms

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"k8s.io/client-go/util/workqueue"
	"k8s.io/klog/v2"

	"github.com/mihai-snyk/pareto/pkg/multiobjective/framework"
	"github.com/mihai-snyk/pareto/pkg/multiobjective/metrics"
)

var errUnhealthy = errors.New("backend reported an unhealthy solve")

// solve runs one backend call and turns an unhealthy result into an error.
// The phase is only used for metrics.
func solve(ctx context.Context, provider framework.ModelProvider, cfg framework.SolveConfig, phase framework.Origin) (*framework.SolveResult, error) {
	start := time.Now()
	res, err := provider.Solve(ctx, cfg)
	metrics.SolveDuration.WithLabelValues(string(phase)).Observe(time.Since(start).Seconds())

	switch {
	case err != nil:
		metrics.SolvesTotal.WithLabelValues(string(phase), metrics.OutcomeError).Inc()
		return nil, err
	case res == nil || !res.Healthy:
		metrics.SolvesTotal.WithLabelValues(string(phase), metrics.OutcomeUnhealthy).Inc()
		return nil, errUnhealthy
	case len(res.Objectives) != len(cfg.Directions):
		metrics.SolvesTotal.WithLabelValues(string(phase), metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("backend %s returned %d objective values, want %d", provider.Name(), len(res.Objectives), len(cfg.Directions))
	case !finite(res.Objectives):
		metrics.SolvesTotal.WithLabelValues(string(phase), metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("backend %s returned non-finite objective values %v", provider.Name(), res.Objectives)
	}
	metrics.SolvesTotal.WithLabelValues(string(phase), metrics.OutcomeHealthy).Inc()
	return res, nil
}

// iteration is one independent scalarized solve.
type iteration struct {
	cfg framework.SolveConfig
	// describes the iteration in logs, e.g. "target", 0, "step", 3
	keysAndValues []interface{}
	weights       []float64
}

// runIterations solves every iteration on up to workers goroutines. Each
// result lands in the slot of its iteration, so the returned candidates are
// in generation order whatever the scheduling was. Failed iterations are
// skipped and reported in the returned failures.
func runIterations(ctx context.Context, provider framework.ModelProvider, iters []iteration, workers int, phase framework.Origin) ([]framework.Candidate, []error, error) {
	logger := klog.FromContext(ctx)

	slots := make([]*framework.Candidate, len(iters))
	errs := make([]error, len(iters))
	workqueue.ParallelizeUntil(ctx, workers, len(iters), func(i int) {
		it := iters[i]
		res, err := solve(ctx, provider, it.cfg, phase)
		if err != nil {
			errs[i] = err
			logger.V(4).Info("Skipping failed solve", append(it.keysAndValues, "err", err)...)
			return
		}
		slots[i] = &framework.Candidate{
			Objectives: res.Objectives,
			Variables:  res.Variables,
			Weights:    it.weights,
			Origin:     phase,
		}
		logger.V(5).Info("Solved", append(it.keysAndValues, "objectives", res.Objectives)...)
	})
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	candidates := make([]framework.Candidate, 0, len(iters))
	var failures []error
	for i, c := range slots {
		if c != nil {
			candidates = append(candidates, *c)
			continue
		}
		if errs[i] != nil {
			failures = append(failures, fmt.Errorf("iteration %d: %w", i, errs[i]))
		}
	}
	return candidates, failures, nil
}

func finite(z framework.ObjectiveSpacePoint) bool {
	for _, v := range z {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func workerCount(parallelism int) int {
	if parallelism < 1 {
		return 1
	}
	return parallelism
}
