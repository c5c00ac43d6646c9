package linear

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/mihai-snyk/pareto/pkg/multiobjective/framework"
)

// Problem is a multi-objective linear program:
//
//	optimize   c_k · x            for every objective k
//	subject to Lower <= a_i · x <= Upper   for every constraint i
//	           Lower <= x_j <= Upper       for every variable j
//
// A nil bound is infinite, except for variable lower bounds which default
// to 0 unless the variable is Free.
type Problem struct {
	Name        string       `json:"name"`
	Variables   []Variable   `json:"variables"`
	Objectives  []Objective  `json:"objectives"`
	Constraints []Constraint `json:"constraints,omitempty"`
}

type Variable struct {
	Name  string   `json:"name"`
	Lower *float64 `json:"lower,omitempty"`
	Upper *float64 `json:"upper,omitempty"`
	Free  bool     `json:"free,omitempty"`
}

type Objective struct {
	Name         string    `json:"name"`
	Direction    string    `json:"direction"`
	Coefficients []float64 `json:"coefficients"`
}

type Constraint struct {
	Name         string    `json:"name,omitempty"`
	Coefficients []float64 `json:"coefficients"`
	Lower        *float64  `json:"lower,omitempty"`
	Upper        *float64  `json:"upper,omitempty"`
}

// LoadProblem reads a YAML (or JSON) problem file and validates it.
func LoadProblem(path string) (*Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading problem %s: %w", path, err)
	}
	p := &Problem{}
	if err := yaml.UnmarshalStrict(data, p); err != nil {
		return nil, fmt.Errorf("decoding problem %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("problem %s: %w", path, err)
	}
	return p, nil
}

// Directions returns the direction of every objective.
func (p *Problem) Directions() (framework.Directions, error) {
	dirs := make(framework.Directions, len(p.Objectives))
	for k, o := range p.Objectives {
		d, err := framework.ParseDirection(o.Direction)
		if err != nil {
			return nil, fmt.Errorf("objective %d (%s): %w", k, o.Name, err)
		}
		dirs[k] = d
	}
	return dirs, nil
}

// ObjectiveNames returns the objective names, falling back to f1, f2, ...
func (p *Problem) ObjectiveNames() []string {
	names := make([]string, len(p.Objectives))
	for k, o := range p.Objectives {
		names[k] = o.Name
		if names[k] == "" {
			names[k] = fmt.Sprintf("f%d", k+1)
		}
	}
	return names
}

// Validate checks the shapes and rejects the rows and columns the simplex
// method cannot handle.
func (p *Problem) Validate() error {
	n := len(p.Variables)
	if n == 0 {
		return fmt.Errorf("no variables")
	}
	if len(p.Objectives) == 0 {
		return fmt.Errorf("no objectives")
	}
	if _, err := p.Directions(); err != nil {
		return err
	}

	used := make([]bool, n)
	for k, o := range p.Objectives {
		if len(o.Coefficients) != n {
			return fmt.Errorf("objective %d has %d coefficients, want %d", k, len(o.Coefficients), n)
		}
		if allZero(o.Coefficients) {
			return fmt.Errorf("objective %d has only zero coefficients", k)
		}
	}
	for i, c := range p.Constraints {
		if len(c.Coefficients) != n {
			return fmt.Errorf("constraint %d has %d coefficients, want %d", i, len(c.Coefficients), n)
		}
		if allZero(c.Coefficients) {
			return fmt.Errorf("constraint %d has only zero coefficients", i)
		}
		if c.Lower == nil && c.Upper == nil {
			return fmt.Errorf("constraint %d has no bound", i)
		}
		if c.Lower != nil && c.Upper != nil && *c.Lower > *c.Upper {
			return fmt.Errorf("constraint %d has lower bound %g above upper bound %g", i, *c.Lower, *c.Upper)
		}
		for j, v := range c.Coefficients {
			if v != 0 {
				used[j] = true
			}
		}
	}
	for j, v := range p.Variables {
		if v.Name == SolutionKey {
			return fmt.Errorf("variable %d: name %q is reserved", j, SolutionKey)
		}
		if v.Free && v.Lower != nil {
			return fmt.Errorf("variable %d (%s) is free but has a lower bound", j, v.Name)
		}
		lower := v.lower()
		if lower != nil && v.Upper != nil && *lower > *v.Upper {
			return fmt.Errorf("variable %d (%s) has lower bound %g above upper bound %g", j, v.Name, *lower, *v.Upper)
		}
		if !used[j] && lower == nil && v.Upper == nil {
			return fmt.Errorf("variable %d (%s) is unbounded and appears in no constraint", j, v.Name)
		}
	}
	return nil
}

func (v Variable) lower() *float64 {
	if v.Free {
		return nil
	}
	if v.Lower == nil {
		zero := 0.0
		return &zero
	}
	return v.Lower
}

func allZero(xs []float64) bool {
	for _, x := range xs {
		if x != 0 {
			return false
		}
	}
	return true
}
