// Package fake provides in-memory ModelProviders for tests.
package fake

import (
	"context"
	"math"
	"sync"

	"github.com/mihai-snyk/pareto/pkg/multiobjective/framework"
)

const tol = 1e-9

// Recorder keeps every configuration a provider was asked to solve.
type Recorder struct {
	mu    sync.Mutex
	calls []framework.SolveConfig
}

func (r *Recorder) record(cfg framework.SolveConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, cfg)
}

// Calls returns a copy of the recorded configurations in call order.
func (r *Recorder) Calls() []framework.SolveConfig {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]framework.SolveConfig(nil), r.calls...)
}

// Scripted answers every solve with a user supplied function.
type Scripted struct {
	Recorder
	SolveFunc func(ctx context.Context, cfg framework.SolveConfig) (*framework.SolveResult, error)
}

func (s *Scripted) Name() string {
	return "scripted"
}

func (s *Scripted) Solve(ctx context.Context, cfg framework.SolveConfig) (*framework.SolveResult, error) {
	s.record(cfg)
	return s.SolveFunc(ctx, cfg)
}

// Segment is a problem whose feasible objective space is the segment from
// A to B. It answers single-objective, bounded and aggregate solves exactly,
// which makes the frontier of every strategy predictable.
type Segment struct {
	Recorder
	A, B framework.ObjectiveSpacePoint
}

func NewSegment(a, b framework.ObjectiveSpacePoint) *Segment {
	return &Segment{A: a, B: b}
}

func (s *Segment) Name() string {
	return "segment"
}

func (s *Segment) Solve(ctx context.Context, cfg framework.SolveConfig) (*framework.SolveResult, error) {
	s.record(cfg)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lo, hi := 0.0, 1.0
	for _, b := range cfg.Bounds {
		a, d := s.A[b.Objective], s.B[b.Objective]-s.A[b.Objective]
		// z(t) = a + t*d
		if math.Abs(d) < tol {
			if !b.Satisfied(a, tol) {
				return &framework.SolveResult{Healthy: false}, nil
			}
			continue
		}
		t := (b.Value - a) / d
		upper := (b.Sense == framework.AtMost) == (d > 0)
		if upper {
			hi = math.Min(hi, t)
		} else {
			lo = math.Max(lo, t)
		}
	}
	if lo > hi+tol {
		return &framework.SolveResult{Healthy: false}, nil
	}

	// slope of the minimized expression along t
	slope := 0.0
	if cfg.Aggregate != nil {
		coef, _ := cfg.Aggregate.Affine(cfg.Directions)
		for k, c := range coef {
			slope += c * (s.B[k] - s.A[k])
		}
	} else {
		k := cfg.Objective
		slope = cfg.Directions[k].Sign() * (s.B[k] - s.A[k])
	}
	t := lo
	if slope < 0 {
		t = hi
	}

	z := make(framework.ObjectiveSpacePoint, len(s.A))
	for k := range z {
		z[k] = s.A[k] + t*(s.B[k]-s.A[k])
	}
	res := &framework.SolveResult{Objectives: z, Healthy: true}
	if cfg.SaveVariables {
		res.Variables = framework.VariableSnapshot{"t": {t}}
	}
	return res, nil
}
