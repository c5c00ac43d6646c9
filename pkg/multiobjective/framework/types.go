package framework

import (
	"fmt"
	"strings"
)

// Direction is the optimization sense of a single objective.
type Direction string

const (
	Minimize Direction = "minimize"
	Maximize Direction = "maximize"
)

// Sign maps the direction onto a uniform "smaller is better" scale:
// maximize -> -1, minimize -> +1.
func (d Direction) Sign() float64 {
	if d == Maximize {
		return -1
	}
	return 1
}

func (d Direction) Valid() bool {
	return d == Minimize || d == Maximize
}

// ParseDirection accepts the long names as well as the "min"/"max" shorthands.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "min", "minimize":
		return Minimize, nil
	case "max", "maximize":
		return Maximize, nil
	}
	return "", fmt.Errorf("unknown direction %q", s)
}

// Directions holds one Direction per objective and is fixed for a whole run.
type Directions []Direction

// Signs returns the sign vector used by the domination rule.
func (ds Directions) Signs() []float64 {
	s := make([]float64, len(ds))
	for i, d := range ds {
		s[i] = d.Sign()
	}
	return s
}

func (ds Directions) Clone() Directions {
	return append(Directions(nil), ds...)
}

// ObjectiveSpacePoint represents an N-dimensional point in the objective space.
// As an example, for a problem with 2 objective functions f1 and f2, a point
// in the objective space could be [f1(x'), f2(x')], for the input of x'.
type ObjectiveSpacePoint []float64

// VariableSnapshot maps a decision variable name to its solved values.
type VariableSnapshot map[string][]float64

func (vs VariableSnapshot) Clone() VariableSnapshot {
	if vs == nil {
		return nil
	}
	out := make(VariableSnapshot, len(vs))
	for k, v := range vs {
		out[k] = append([]float64(nil), v...)
	}
	return out
}

// Origin records which phase of a run produced a candidate.
type Origin string

const (
	OriginPayoff            Origin = "payoff"
	OriginEpsilonConstraint Origin = "ecm"
	OriginWeightedSum       Origin = "nwsm"
)

// Candidate is one objective vector produced during a run, in generation order.
type Candidate struct {
	Objectives ObjectiveSpacePoint
	// Variables is only set when the run saves variables.
	Variables VariableSnapshot
	// Weights is the weight vector used by the weighted-sum sampler.
	Weights []float64
	// Scalarized is the normalized weighted sum at Objectives, set by the
	// weighted-sum sampler.
	Scalarized *float64
	Origin     Origin
}

// Frontier is the revised, non-dominated and duplicate-free subset of a
// candidate set. All slices are aligned by position.
type Frontier struct {
	Points    []ObjectiveSpacePoint
	Variables []VariableSnapshot
	Weights   [][]float64
	// Indices are the positions of the surviving points in the candidate set.
	Indices []int
}

func (f *Frontier) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Points)
}
