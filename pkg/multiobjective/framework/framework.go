package framework

import (
	"context"
	"time"
)

// ModelProvider describes the contract a solver backend needs to implement.
// A backend builds one single-objective model from the given configuration,
// solves it and reports the resulting objective vector. Any vendor SDK is
// hidden behind this one capability.
type ModelProvider interface {
	Name() string
	Solve(ctx context.Context, cfg SolveConfig) (*SolveResult, error)
}

// SolveResult is what a backend returns for one solve.
type SolveResult struct {
	// Objectives holds the value of every objective at the solution,
	// including the ones that were not optimized.
	Objectives ObjectiveSpacePoint
	// Variables is nil unless SolveConfig.SaveVariables was set.
	Variables VariableSnapshot
	Healthy   bool
}

// SolverOptions are passed through to the backend untouched. Verbose and
// LogToConsole have no effect on results.
type SolverOptions struct {
	Name         string
	TimeLimit    time.Duration
	AbsoluteGap  float64
	RelativeGap  float64
	Threads      int
	Verbose      bool
	LogToConsole bool
}

// BoundSense tells whether an epsilon bound is a floor or a ceiling.
type BoundSense string

const (
	AtLeast BoundSense = ">="
	AtMost  BoundSense = "<="
)

// EpsilonBound constrains the value of one objective expression.
type EpsilonBound struct {
	Objective int
	Sense     BoundSense
	Value     float64
}

// Satisfied reports whether z meets the bound within tol.
func (b EpsilonBound) Satisfied(z, tol float64) bool {
	if b.Sense == AtLeast {
		return z >= b.Value-tol
	}
	return z <= b.Value+tol
}

// AggregateObjective is the normalized weighted-sum objective. It is always
// minimized, regardless of the individual objective directions.
type AggregateObjective struct {
	Weights []float64
	Min     []float64
	Max     []float64
}

// SolveConfig is the immutable input of one solve. Use the With* helpers to
// derive a new configuration; they never alias the receiver's slices.
type SolveConfig struct {
	// Objective is the index of the objective to optimize. It is ignored
	// when Aggregate is set.
	Objective     int
	Directions    Directions
	Bounds        []EpsilonBound
	Aggregate     *AggregateObjective
	Solver        SolverOptions
	SaveVariables bool
}

// NewSolveConfig returns the configuration optimizing objective alone.
func NewSolveConfig(objective int, dirs Directions, solver SolverOptions, saveVariables bool) SolveConfig {
	return SolveConfig{
		Objective:     objective,
		Directions:    dirs.Clone(),
		Solver:        solver,
		SaveVariables: saveVariables,
	}
}

func (c SolveConfig) clone() SolveConfig {
	out := c
	out.Directions = c.Directions.Clone()
	out.Bounds = append([]EpsilonBound(nil), c.Bounds...)
	if c.Aggregate != nil {
		out.Aggregate = &AggregateObjective{
			Weights: append([]float64(nil), c.Aggregate.Weights...),
			Min:     append([]float64(nil), c.Aggregate.Min...),
			Max:     append([]float64(nil), c.Aggregate.Max...),
		}
	}
	return out
}

// WithBounds returns a copy of c with the given epsilon bounds appended.
func (c SolveConfig) WithBounds(bounds ...EpsilonBound) SolveConfig {
	out := c.clone()
	out.Bounds = append(out.Bounds, bounds...)
	return out
}

// WithAggregate returns a copy of c optimizing the given aggregate objective.
func (c SolveConfig) WithAggregate(agg AggregateObjective) SolveConfig {
	out := c.clone()
	out.Aggregate = &AggregateObjective{
		Weights: append([]float64(nil), agg.Weights...),
		Min:     append([]float64(nil), agg.Min...),
		Max:     append([]float64(nil), agg.Max...),
	}
	return out
}
