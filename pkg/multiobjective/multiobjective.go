// Package multiobjective computes the Pareto frontier of a multi-objective
// model by driving a single-objective backend through a payoff table and a
// scalarization strategy.
package multiobjective

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/klog/v2"

	"github.com/mihai-snyk/pareto/apis/config/v1alpha1"
	"github.com/mihai-snyk/pareto/pkg/multiobjective/algorithms"
	"github.com/mihai-snyk/pareto/pkg/multiobjective/analysis"
	"github.com/mihai-snyk/pareto/pkg/multiobjective/framework"
	"github.com/mihai-snyk/pareto/pkg/multiobjective/metrics"
	"github.com/mihai-snyk/pareto/pkg/multiobjective/provider"
)

const (
	Name = "MultiObjective"

	resultSucceeded = "succeeded"
	resultFailed    = "failed"

	// ConflictThreshold is the correlation at or below which two objectives
	// are reported as conflicting.
	ConflictThreshold = -0.5
)

// MultiObjective runs one configured frontier computation against a backend.
type MultiObjective struct {
	args     *v1alpha1.MultiObjectiveArgs
	dirs     framework.Directions
	provider framework.ModelProvider
}

// Result is everything a run produced.
type Result struct {
	RunID    string
	Strategy v1alpha1.ScalarizationStrategy
	// Directions is the direction of every objective.
	Directions framework.Directions
	// Payoff is the M×M payoff table; Min and Max are its column ranges.
	Payoff   *mat.Dense
	Min, Max []float64
	// Candidates holds the payoff seeds, when enabled, followed by the
	// healthy scalarization solves in generation order.
	Candidates []framework.Candidate
	// Ranks holds the non-dominated front of every candidate; the frontier
	// is drawn from rank 0.
	Ranks []int
	// Frontier.Indices point into Candidates.
	Frontier framework.Frontier
	// Conflict is nil when the frontier has fewer than two points.
	Conflict *mat.SymDense
	// Conflicting lists the objective pairs correlated at or below
	// ConflictThreshold.
	Conflicting [][2]int
	// Crowding holds the crowding distance of every frontier point.
	Crowding []float64
	// Attempted is the number of scalarization solves issued; Skipped of
	// them found no solution.
	Attempted int
	Skipped   int
	Failures  []error

	StartTime      time.Time
	CompletionTime time.Time
}

// New validates and defaults a copy of args. The backend is wrapped in a
// cache when args.CacheSolves is set.
func New(ctx context.Context, args *v1alpha1.MultiObjectiveArgs, backend framework.ModelProvider) (*MultiObjective, error) {
	logger := klog.FromContext(ctx)
	logger.V(5).Info("creating instance of MultiObjective", "backend", backend.Name())

	if args == nil {
		return nil, fmt.Errorf("want args of type MultiObjectiveArgs, got nil")
	}
	a := args.DeepCopy()
	v1alpha1.SetDefaults_MultiObjectiveArgs(a)
	if errs := v1alpha1.ValidateMultiObjectiveArgs(a); len(errs) > 0 {
		return nil, fmt.Errorf("invalid MultiObjectiveArgs: %w", errs.ToAggregate())
	}
	logger.V(5).Info("MultiObjective configured", "args", a)

	dirs := make(framework.Directions, len(a.Directions))
	for i, d := range a.Directions {
		// validated above
		dirs[i], _ = framework.ParseDirection(d)
	}

	if a.CacheSolves {
		backend = provider.NewCached(backend, 0)
	}
	return &MultiObjective{args: a, dirs: dirs, provider: backend}, nil
}

func (m *MultiObjective) Name() string {
	return Name
}

// Directions returns the parsed objective directions.
func (m *MultiObjective) Directions() framework.Directions {
	return m.dirs.Clone()
}

// Run builds the payoff table, scalarizes with the configured strategy,
// revises the candidates into the Pareto frontier and analyzes conflicts.
// Skipped scalarization solves are reported in the result, not as errors.
// A failed run still returns a result carrying its RunID and times, next to
// the error.
func (m *MultiObjective) Run(ctx context.Context) (*Result, error) {
	res := &Result{
		RunID:      uuid.NewString(),
		Strategy:   m.args.Strategy,
		Directions: m.dirs.Clone(),
		StartTime:  time.Now(),
	}
	logger := klog.FromContext(ctx).WithValues("runID", res.RunID, "strategy", res.Strategy)
	ctx = klog.NewContext(ctx, logger)

	err := m.run(ctx, res)
	res.CompletionTime = time.Now()
	if err != nil {
		metrics.RunsTotal.WithLabelValues(string(m.args.Strategy), resultFailed).Inc()
		logger.Error(err, "Pareto frontier run failed")
		return &Result{
			RunID:          res.RunID,
			Strategy:       res.Strategy,
			Directions:     res.Directions,
			StartTime:      res.StartTime,
			CompletionTime: res.CompletionTime,
		}, err
	}
	metrics.RunsTotal.WithLabelValues(string(m.args.Strategy), resultSucceeded).Inc()
	metrics.FrontierSize.Set(float64(res.Frontier.Len()))
	logger.V(2).Info("Pareto frontier computed",
		"candidates", len(res.Candidates), "frontier", res.Frontier.Len(),
		"skipped", res.Skipped, "duration", res.CompletionTime.Sub(res.StartTime))
	return res, nil
}

func (m *MultiObjective) run(ctx context.Context, res *Result) error {
	logger := klog.FromContext(ctx)
	a := m.args
	solver := solverOptions(a.Solver)

	switch a.Strategy {
	case v1alpha1.StrategyEpsilonConstraint, v1alpha1.StrategyWeightedSum:
	default:
		return fmt.Errorf("strategy %q: %w", a.Strategy, framework.ErrUnsupportedScalarizationMode)
	}

	logger.V(2).Info("Building payoff table", "objectives", len(m.dirs))
	payoff, seeds, err := algorithms.BuildPayoffTable(ctx, m.provider, m.dirs, algorithms.PayoffOptions{
		Solver:        solver,
		SaveVariables: a.SaveVariables,
		Parallelism:   a.Parallelism,
	})
	if err != nil {
		return err
	}
	res.Payoff = payoff
	res.Min, res.Max = framework.PayoffRanges(payoff)
	logger.V(4).Info("Payoff table built", "payoff", framework.FormatMatrix(payoff))

	var out *algorithms.Outcome
	switch a.Strategy {
	case v1alpha1.StrategyEpsilonConstraint:
		out, err = algorithms.EpsilonConstraint(ctx, m.provider, m.dirs, payoff, algorithms.EpsilonConstraintOptions{
			Intervals:          a.Intervals,
			ImportantObjective: a.ImportantObjective,
			Solver:             solver,
			SaveVariables:      a.SaveVariables,
			Parallelism:        a.Parallelism,
		})
	case v1alpha1.StrategyWeightedSum:
		var src rand.Source
		if a.Seed != nil {
			src = rand.NewPCG(*a.Seed, *a.Seed)
		}
		out, err = algorithms.WeightedSum(ctx, m.provider, m.dirs, payoff, algorithms.WeightedSumOptions{
			Intervals:     a.Intervals,
			Weights:       a.Weights,
			Sampling:      weightSampling(a.WeightSampling),
			Source:        src,
			Solver:        solver,
			SaveVariables: a.SaveVariables,
			Parallelism:   a.Parallelism,
		})
	}
	if err != nil {
		return err
	}

	if *a.SeedFrontierWithPayoff {
		res.Candidates = append(res.Candidates, seeds...)
	}
	res.Candidates = append(res.Candidates, out.Candidates...)
	res.Attempted = out.Attempted
	res.Skipped = len(out.Failures)
	res.Failures = out.Failures
	logSkipped(logger, out.Failures)

	points := make([]framework.ObjectiveSpacePoint, len(res.Candidates))
	for i, c := range res.Candidates {
		points[i] = c.Objectives
	}
	res.Ranks = framework.Ranks(points, m.dirs)
	res.Frontier = framework.Revise(res.Candidates, m.dirs)
	res.Conflict = analysis.ConflictMatrix(res.Frontier.Points)
	res.Conflicting = analysis.Conflicting(res.Conflict, ConflictThreshold)
	if len(res.Conflicting) > 0 {
		logger.V(4).Info("Conflicting objectives", "pairs", res.Conflicting)
	}
	res.Crowding = analysis.CrowdingDistance(res.Frontier.Points)
	return nil
}

// Solve is New followed by Run.
func Solve(ctx context.Context, backend framework.ModelProvider, args *v1alpha1.MultiObjectiveArgs) (*Result, error) {
	m, err := New(ctx, args, backend)
	if err != nil {
		return nil, err
	}
	return m.Run(ctx)
}

func logSkipped(logger logr.Logger, failures []error) {
	if len(failures) == 0 {
		return
	}
	logger.V(4).Info("Skipped scalarization solves", "count", len(failures), "causes", utilerrors.NewAggregate(failures).Error())
}

func solverOptions(s v1alpha1.SolverArgs) framework.SolverOptions {
	return framework.SolverOptions{
		Name:         s.Name,
		TimeLimit:    s.TimeLimit.Duration,
		AbsoluteGap:  s.AbsoluteGap,
		RelativeGap:  s.RelativeGap,
		Threads:      s.Threads,
		Verbose:      s.Verbose,
		LogToConsole: s.LogToConsole,
	}
}

func weightSampling(s v1alpha1.WeightSampling) algorithms.WeightSampling {
	if s == v1alpha1.WeightSamplingUniform {
		return algorithms.Uniform
	}
	return algorithms.Dirichlet
}
