// Package benchmarks holds multi-objective linear programs with a known
// Pareto front, used to check the scalarization strategies end to end.
package benchmarks

import (
	"fmt"
	"sort"

	"k8s.io/utils/ptr"

	"github.com/mihai-snyk/pareto/pkg/multiobjective/framework"
	"github.com/mihai-snyk/pareto/pkg/multiobjective/provider/linear"
)

// Benchmark is a problem whose true Pareto front is known in closed form.
type Benchmark interface {
	Name() string
	Problem() *linear.Problem
	// TrueParetoFront samples numPoints points of the true front.
	TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint
}

var registry = map[string]func() Benchmark{
	BiobjectiveName: func() Benchmark { return &Biobjective{} },
	Simplex3Name:    func() Benchmark { return &Simplex3{} },
}

// Get returns the benchmark registered under name.
func Get(name string) (Benchmark, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown benchmark %q, known: %v", name, Names())
	}
	return f(), nil
}

// Names lists the registered benchmarks in order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

const BiobjectiveName = "biobjective"

// Biobjective minimizes x1 and x2 subject to x1 + x2 >= 10, x1 <= 8 and
// x2 <= 9.
// The front is the segment from (1, 9) to (8, 2).
type Biobjective struct{}

func (b *Biobjective) Name() string {
	return BiobjectiveName
}

func (b *Biobjective) Problem() *linear.Problem {
	return &linear.Problem{
		Name: BiobjectiveName,
		Variables: []linear.Variable{
			{Name: "x1", Upper: ptr.To(8.0)},
			{Name: "x2", Upper: ptr.To(9.0)},
		},
		Objectives: []linear.Objective{
			{Name: "f1", Direction: string(framework.Minimize), Coefficients: []float64{1, 0}},
			{Name: "f2", Direction: string(framework.Minimize), Coefficients: []float64{0, 1}},
		},
		Constraints: []linear.Constraint{
			{Name: "demand", Coefficients: []float64{1, 1}, Lower: ptr.To(10.0)},
		},
	}
}

func (b *Biobjective) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	if numPoints < 2 {
		numPoints = 2
	}
	points := make([]framework.ObjectiveSpacePoint, numPoints)
	for i := range numPoints {
		x := 1 + 7*float64(i)/float64(numPoints-1)
		points[i] = framework.ObjectiveSpacePoint{x, 10 - x}
	}
	return points
}

const Simplex3Name = "simplex3"

// Simplex3 maximizes x1, x2 and x3 subject to x1 + x2 + x3 <= 1. Every
// point of the unit simplex is Pareto optimal and the payoff table is the
// identity.
type Simplex3 struct{}

func (s *Simplex3) Name() string {
	return Simplex3Name
}

func (s *Simplex3) Problem() *linear.Problem {
	p := &linear.Problem{
		Name: Simplex3Name,
		Constraints: []linear.Constraint{
			{Name: "budget", Coefficients: []float64{1, 1, 1}, Upper: ptr.To(1.0)},
		},
	}
	for k := range 3 {
		coef := make([]float64, 3)
		coef[k] = 1
		p.Variables = append(p.Variables, linear.Variable{Name: fmt.Sprintf("x%d", k+1)})
		p.Objectives = append(p.Objectives, linear.Objective{
			Name:         fmt.Sprintf("f%d", k+1),
			Direction:    string(framework.Maximize),
			Coefficients: coef,
		})
	}
	return p
}

// TrueParetoFront samples the face x1 + x2 + x3 = 1 on a regular grid with
// at least numPoints points.
func (s *Simplex3) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	steps := 1
	for (steps+1)*(steps+2)/2 < numPoints {
		steps++
	}
	var points []framework.ObjectiveSpacePoint
	for i := 0; i <= steps; i++ {
		for j := 0; i+j <= steps; j++ {
			a := float64(i) / float64(steps)
			b := float64(j) / float64(steps)
			points = append(points, framework.ObjectiveSpacePoint{a, b, 1 - a - b})
		}
	}
	return points
}
