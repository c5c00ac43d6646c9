package algorithms

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/mat"
	"k8s.io/utils/ptr"

	"github.com/mihai-snyk/pareto/pkg/multiobjective/framework"
	"github.com/mihai-snyk/pareto/pkg/multiobjective/framework/fake"
)

var minMin = framework.Directions{framework.Minimize, framework.Minimize}

func TestEpsilonBoundGridEnds(t *testing.T) {
	// objective j has payoff range [2, 9]
	tests := []struct {
		name string
		dir  framework.Direction
		g    int
		want framework.EpsilonBound
	}{
		{"minimize lenient", framework.Minimize, 0, framework.EpsilonBound{Objective: 1, Sense: framework.AtMost, Value: 9}},
		{"minimize tight", framework.Minimize, 10, framework.EpsilonBound{Objective: 1, Sense: framework.AtMost, Value: 2}},
		{"minimize middle", framework.Minimize, 5, framework.EpsilonBound{Objective: 1, Sense: framework.AtMost, Value: 5.5}},
		{"maximize lenient", framework.Maximize, 0, framework.EpsilonBound{Objective: 1, Sense: framework.AtLeast, Value: 2}},
		{"maximize tight", framework.Maximize, 10, framework.EpsilonBound{Objective: 1, Sense: framework.AtLeast, Value: 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EpsilonBound(1, tt.dir, 2, 9, tt.g, 10)
			if got != tt.want {
				t.Errorf("EpsilonBound() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEpsilonBoundTightEndIsExact(t *testing.T) {
	min, max := 0.1, 0.7
	for _, dir := range []framework.Direction{framework.Minimize, framework.Maximize} {
		b := EpsilonBound(0, dir, min, max, 10, 10)
		best := min
		if dir == framework.Maximize {
			best = max
		}
		if b.Value != best {
			t.Errorf("%s: tight bound %v, want exactly %v", dir, b.Value, best)
		}
	}
}

func TestEpsilonConstraintImportantObjective(t *testing.T) {
	provider := fake.NewSegment(framework.ObjectiveSpacePoint{1, 9}, framework.ObjectiveSpacePoint{8, 2})
	payoff := mat.NewDense(2, 2, []float64{1, 9, 8, 2})

	out, err := EpsilonConstraint(context.Background(), provider, minMin, payoff, EpsilonConstraintOptions{
		Intervals:          2,
		ImportantObjective: ptr.To(0),
	})
	if err != nil {
		t.Fatalf("EpsilonConstraint() error = %v", err)
	}

	calls := provider.Calls()
	if len(calls) != 3 || out.Attempted != 3 {
		t.Fatalf("expected exactly 3 solves, got %d calls and %d attempted", len(calls), out.Attempted)
	}
	var bounds []float64
	for _, c := range calls {
		if c.Objective != 0 {
			t.Errorf("expected objective 0 to be optimized, got %d", c.Objective)
		}
		if len(c.Bounds) != 1 || c.Bounds[0].Objective != 1 || c.Bounds[0].Sense != framework.AtMost {
			t.Fatalf("unexpected bounds %+v", c.Bounds)
		}
		bounds = append(bounds, c.Bounds[0].Value)
	}
	if diff := cmp.Diff([]float64{9, 5.5, 2}, bounds); diff != "" {
		t.Errorf("unexpected upper bounds (-want +got):\n%s", diff)
	}

	want := []framework.ObjectiveSpacePoint{{1, 9}, {4.5, 5.5}, {8, 2}}
	var got []framework.ObjectiveSpacePoint
	for _, c := range out.Candidates {
		got = append(got, c.Objectives)
		if c.Origin != framework.OriginEpsilonConstraint {
			t.Errorf("unexpected origin %q", c.Origin)
		}
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected candidates (-want +got):\n%s", diff)
	}
}

func TestEpsilonConstraintSweepsEveryObjective(t *testing.T) {
	provider := fake.NewSegment(framework.ObjectiveSpacePoint{1, 9}, framework.ObjectiveSpacePoint{8, 2})
	payoff := mat.NewDense(2, 2, []float64{1, 9, 8, 2})

	out, err := EpsilonConstraint(context.Background(), provider, minMin, payoff, EpsilonConstraintOptions{Intervals: 4, SaveVariables: true})
	if err != nil {
		t.Fatalf("EpsilonConstraint() error = %v", err)
	}
	if out.Attempted != 10 || len(out.Candidates) != 10 {
		t.Fatalf("expected 10 healthy solves, got %d of %d", len(out.Candidates), out.Attempted)
	}
	for i, c := range out.Candidates {
		wantTarget := i / 5
		if got := provider.Calls()[i].Objective; got != wantTarget {
			t.Errorf("solve %d optimized objective %d, want %d", i, got, wantTarget)
		}
		if c.Variables == nil {
			t.Errorf("candidate %d has no variable snapshot", i)
		}
	}
}

func TestEpsilonConstraintSkipsInfeasibleSteps(t *testing.T) {
	// only the lenient half of the grid is feasible
	provider := &fake.Scripted{SolveFunc: func(_ context.Context, cfg framework.SolveConfig) (*framework.SolveResult, error) {
		if cfg.Bounds[0].Value < 5 {
			return &framework.SolveResult{Healthy: false}, nil
		}
		if cfg.Bounds[0].Value < 6 {
			return nil, errors.New("solver crashed")
		}
		return &framework.SolveResult{Objectives: framework.ObjectiveSpacePoint{10 - cfg.Bounds[0].Value, cfg.Bounds[0].Value}, Healthy: true}, nil
	}}
	payoff := mat.NewDense(2, 2, []float64{1, 9, 8, 2})

	out, err := EpsilonConstraint(context.Background(), provider, minMin, payoff, EpsilonConstraintOptions{Intervals: 2, ImportantObjective: ptr.To(0)})
	if err != nil {
		t.Fatalf("EpsilonConstraint() error = %v", err)
	}
	if len(out.Candidates) != 1 || len(out.Failures) != 2 {
		t.Fatalf("expected 1 candidate and 2 skipped steps, got %d and %d", len(out.Candidates), len(out.Failures))
	}
}

func TestScalarizationRejectsDegenerateRange(t *testing.T) {
	payoff := mat.NewDense(2, 2, []float64{5, 1, 5, 3})

	tests := []struct {
		name string
		run  func(framework.ModelProvider) error
	}{
		{"ecm", func(p framework.ModelProvider) error {
			_, err := EpsilonConstraint(context.Background(), p, minMin, payoff, EpsilonConstraintOptions{})
			return err
		}},
		{"nwsm", func(p framework.ModelProvider) error {
			_, err := WeightedSum(context.Background(), p, minMin, payoff, WeightedSumOptions{})
			return err
		}},
		{"nwsm fixed weights", func(p framework.ModelProvider) error {
			_, err := WeightedSum(context.Background(), p, minMin, payoff, WeightedSumOptions{Weights: []float64{0.5, 0.5}})
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fake.Scripted{SolveFunc: func(context.Context, framework.SolveConfig) (*framework.SolveResult, error) {
				return &framework.SolveResult{Objectives: framework.ObjectiveSpacePoint{5, 2}, Healthy: true}, nil
			}}
			err := tt.run(provider)
			var degenerate *framework.DegenerateObjectiveRangeError
			if !errors.As(err, &degenerate) {
				t.Fatalf("expected DegenerateObjectiveRangeError, got %v", err)
			}
			if degenerate.Objective != 0 {
				t.Errorf("expected objective 0 to be reported, got %d", degenerate.Objective)
			}
			if n := len(provider.Calls()); n != 0 {
				t.Errorf("expected no solve before the range check, got %d", n)
			}
		})
	}
}
