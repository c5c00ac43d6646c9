package framework

import (
	"errors"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// ErrUnsupportedScalarizationMode is returned when the strategy tag is
// neither "ecm" nor "nwsm".
var ErrUnsupportedScalarizationMode = errors.New("unsupported scalarization mode")

// PayoffInfeasibleError aborts a run: the single-objective optimization of
// Objective, needed to build the payoff table, found no solution.
type PayoffInfeasibleError struct {
	Objective int
	// Payoff holds the rows built so far; rows not yet solved are zero.
	Payoff *mat.Dense
	Err    error
}

func (e *PayoffInfeasibleError) Error() string {
	msg := fmt.Sprintf("payoff table: optimizing objective %d alone found no solution", e.Objective)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Payoff != nil {
		msg += "; partial payoff:\n" + FormatMatrix(e.Payoff)
	}
	return msg
}

func (e *PayoffInfeasibleError) Unwrap() error {
	return e.Err
}

// DegenerateObjectiveRangeError means an objective has the same value in
// every payoff row, so it does not conflict with the others and there is
// nothing to sweep.
type DegenerateObjectiveRangeError struct {
	Objective int
	Min, Max  float64
	Payoff    *mat.Dense
}

func (e *DegenerateObjectiveRangeError) Error() string {
	msg := fmt.Sprintf("objective %d has a degenerate payoff range [%g, %g]; it does not conflict with the other objectives",
		e.Objective, e.Min, e.Max)
	if e.Payoff != nil {
		msg += "; payoff:\n" + FormatMatrix(e.Payoff)
	}
	return msg
}

// FormatMatrix renders m one row per line.
func FormatMatrix(m mat.Matrix) string {
	r, c := m.Dims()
	var b strings.Builder
	for i := 0; i < r; i++ {
		b.WriteString("  [")
		for j := 0; j < c; j++ {
			if j > 0 {
				b.WriteString(" ")
			}
			fmt.Fprintf(&b, "%g", m.At(i, j))
		}
		b.WriteString("]")
		if i < r-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// PayoffOf returns the payoff table carried by a fatal run error, if any.
func PayoffOf(err error) *mat.Dense {
	var infeasible *PayoffInfeasibleError
	if errors.As(err, &infeasible) {
		return infeasible.Payoff
	}
	var degenerate *DegenerateObjectiveRangeError
	if errors.As(err, &degenerate) {
		return degenerate.Payoff
	}
	return nil
}
