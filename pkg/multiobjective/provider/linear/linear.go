// Package linear is a ModelProvider for multi-objective linear programs,
// backed by the simplex implementation in gonum.
package linear

import (
	"context"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
	"k8s.io/klog/v2"

	"github.com/mihai-snyk/pareto/pkg/multiobjective/framework"
)

const (
	Name = "linear"

	// SolutionKey holds the whole solution vector in a variable snapshot.
	// Named variables are stored under their own names next to it.
	SolutionKey = "x"

	// DefaultTolerance is used when SolverOptions.AbsoluteGap is not set.
	DefaultTolerance = 1e-10
)

// Provider solves one scalarized subproblem of a Problem per call.
type Provider struct {
	problem *Problem
}

var _ framework.ModelProvider = &Provider{}

// New validates the problem and returns a provider for it. The problem must
// not be modified afterwards.
func New(p *Problem) (*Provider, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Provider{problem: p}, nil
}

func (p *Provider) Name() string {
	return Name
}

// Problem returns the problem being solved.
func (p *Provider) Problem() *Problem {
	return p.problem
}

// Solve builds the inequality form
//
//	minimize c·x  s.t.  G x <= h,  A x = b,  x free
//
// from the problem and cfg, converts it to standard form and runs the simplex
// method. An infeasible or unbounded model is reported as unhealthy, other
// simplex failures as errors.
func (p *Provider) Solve(ctx context.Context, cfg framework.SolveConfig) (*framework.SolveResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger := klog.FromContext(ctx)
	prob := p.problem
	n := len(prob.Variables)
	if len(cfg.Directions) != len(prob.Objectives) {
		return nil, fmt.Errorf("got %d directions for %d objectives", len(cfg.Directions), len(prob.Objectives))
	}

	cost, err := p.cost(cfg)
	if err != nil {
		return nil, err
	}

	var gRows, aRows [][]float64
	var h, b []float64
	addLE := func(row []float64, rhs float64) {
		gRows = append(gRows, row)
		h = append(h, rhs)
	}
	addGE := func(row []float64, rhs float64) {
		neg := make([]float64, len(row))
		floats.ScaleTo(neg, -1, row)
		addLE(neg, -rhs)
	}

	for _, c := range prob.Constraints {
		switch {
		case c.Lower != nil && c.Upper != nil && *c.Lower == *c.Upper:
			aRows = append(aRows, c.Coefficients)
			b = append(b, *c.Upper)
		default:
			if c.Upper != nil {
				addLE(c.Coefficients, *c.Upper)
			}
			if c.Lower != nil {
				addGE(c.Coefficients, *c.Lower)
			}
		}
	}
	for j, v := range prob.Variables {
		unit := make([]float64, n)
		unit[j] = 1
		if lower := v.lower(); lower != nil {
			addGE(unit, *lower)
		}
		if v.Upper != nil {
			addLE(unit, *v.Upper)
		}
	}
	for _, bound := range cfg.Bounds {
		if bound.Objective < 0 || bound.Objective >= len(prob.Objectives) {
			return nil, fmt.Errorf("epsilon bound on objective %d out of range", bound.Objective)
		}
		row := prob.Objectives[bound.Objective].Coefficients
		if bound.Sense == framework.AtLeast {
			addGE(row, bound.Value)
		} else {
			addLE(row, bound.Value)
		}
	}

	// Convert panics on a typed nil matrix, so absent blocks stay untyped.
	var g, a mat.Matrix
	if len(gRows) > 0 {
		g = denseOf(gRows, n)
	}
	if len(aRows) > 0 {
		a = denseOf(aRows, n)
	}

	tol := DefaultTolerance
	if cfg.Solver.AbsoluteGap > 0 {
		tol = cfg.Solver.AbsoluteGap
	}

	x, err := simplex(cost, g, h, a, b, n, tol)
	switch {
	case errors.Is(err, lp.ErrInfeasible), errors.Is(err, lp.ErrUnbounded):
		if cfg.Solver.Verbose {
			logger.Info("Model has no optimum", "problem", prob.Name, "objective", cfg.Objective, "reason", err)
		}
		return &framework.SolveResult{Healthy: false}, nil
	case err != nil:
		return nil, fmt.Errorf("simplex on %q: %w", prob.Name, err)
	}

	z := make(framework.ObjectiveSpacePoint, len(prob.Objectives))
	for k, o := range prob.Objectives {
		z[k] = floats.Dot(o.Coefficients, x)
	}
	if cfg.Solver.Verbose {
		logger.Info("Model solved", "problem", prob.Name, "objective", cfg.Objective, "objectives", z)
	}

	res := &framework.SolveResult{Objectives: z, Healthy: true}
	if cfg.SaveVariables {
		res.Variables = framework.VariableSnapshot{SolutionKey: x}
		for j, v := range prob.Variables {
			if v.Name != "" && v.Name != SolutionKey {
				res.Variables[v.Name] = []float64{x[j]}
			}
		}
	}
	return res, nil
}

// cost returns the minimization cost row for cfg.
func (p *Provider) cost(cfg framework.SolveConfig) ([]float64, error) {
	prob := p.problem
	cost := make([]float64, len(prob.Variables))
	if cfg.Aggregate != nil {
		if len(cfg.Aggregate.Weights) != len(prob.Objectives) {
			return nil, fmt.Errorf("got %d weights for %d objectives", len(cfg.Aggregate.Weights), len(prob.Objectives))
		}
		// The constant offset does not move the optimum.
		coef, _ := cfg.Aggregate.Affine(cfg.Directions)
		for k, o := range prob.Objectives {
			floats.AddScaled(cost, coef[k], o.Coefficients)
		}
		return cost, nil
	}
	if cfg.Objective < 0 || cfg.Objective >= len(prob.Objectives) {
		return nil, fmt.Errorf("objective %d out of range", cfg.Objective)
	}
	floats.AddScaled(cost, cfg.Directions[cfg.Objective].Sign(), prob.Objectives[cfg.Objective].Coefficients)
	return cost, nil
}

// simplex solves the inequality form over free variables and returns x.
func simplex(c []float64, g mat.Matrix, h []float64, a mat.Matrix, b []float64, n int, tol float64) (x []float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("simplex panicked: %v", r)
		}
	}()
	cNew, aNew, bNew := lp.Convert(c, g, h, a, b)
	_, optX, err := lp.Simplex(cNew, aNew, bNew, tol, nil)
	if err != nil {
		return nil, err
	}
	// Convert splits every variable into a positive and a negative part.
	x = make([]float64, n)
	floats.SubTo(x, optX[:n], optX[n:2*n])
	return x, nil
}

func denseOf(rows [][]float64, n int) *mat.Dense {
	m := mat.NewDense(len(rows), n, nil)
	for i, row := range rows {
		m.SetRow(i, row)
	}
	return m
}
