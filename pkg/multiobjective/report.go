package multiobjective

import (
	"math"

	"gonum.org/v1/gonum/mat"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/yaml"

	paretov1alpha1 "github.com/mihai-snyk/pareto/apis/pareto/v1alpha1"
	"github.com/mihai-snyk/pareto/pkg/multiobjective/framework"
)

// DocumentSpec builds the spec part of a result document. names may be
// shorter than the number of objectives; missing names are left empty.
func (m *MultiObjective) DocumentSpec(problem string, names []string) paretov1alpha1.ParetoFrontierSpec {
	spec := paretov1alpha1.ParetoFrontierSpec{
		Problem:   problem,
		Solver:    m.args.Solver.Name,
		Strategy:  string(m.args.Strategy),
		Intervals: m.args.Intervals,
	}
	for k, d := range m.dirs {
		o := paretov1alpha1.ObjectiveSpec{Direction: string(d)}
		if k < len(names) {
			o.Name = names[k]
		}
		spec.Objectives = append(spec.Objectives, o)
	}
	return spec
}

// Document renders a successful run.
func (r *Result) Document(spec paretov1alpha1.ParetoFrontierSpec) *paretov1alpha1.ParetoFrontier {
	doc := newDocument(r.RunID, spec)
	st := &doc.Status
	st.Phase = paretov1alpha1.ParetoFrontierSucceeded
	st.Payoff = rows(r.Payoff)
	for k := range r.Min {
		st.Ranges = append(st.Ranges, paretov1alpha1.ObjectiveRange{Min: r.Min[k], Max: r.Max[k]})
	}
	for n, idx := range r.Frontier.Indices {
		var crowding *float64
		if n < len(r.Crowding) && !math.IsInf(r.Crowding[n], 0) {
			c := r.Crowding[n]
			crowding = &c
		}
		var scalarized *float64
		if v := r.Candidates[idx].Scalarized; v != nil {
			s := *v
			scalarized = &s
		}
		st.Points = append(st.Points, paretov1alpha1.FrontierPoint{
			Index:      idx,
			Crowding:   crowding,
			Scalarized: scalarized,
			Origin:     string(r.Candidates[idx].Origin),
			Objectives: append([]float64(nil), r.Frontier.Points[n]...),
			Weights:    append([]float64(nil), r.Frontier.Weights[n]...),
			Variables:  r.Frontier.Variables[n].Clone(),
		})
	}
	st.FrontierSize = r.Frontier.Len()
	st.Candidates = len(r.Candidates)
	st.CandidateRanks = append([]int(nil), r.Ranks...)
	st.Skipped = r.Skipped
	if r.Conflict != nil {
		st.Conflict = correlations(r.Conflict)
	}
	for _, pair := range r.Conflicting {
		st.ConflictingObjectives = append(st.ConflictingObjectives, paretov1alpha1.ObjectivePair{
			First:       pair[0],
			Second:      pair[1],
			Correlation: r.Conflict.At(pair[0], pair[1]),
		})
	}
	start, done := metav1.NewTime(r.StartTime), metav1.NewTime(r.CompletionTime)
	st.StartTime, st.CompletionTime = &start, &done
	return doc
}

// FailedDocument renders a run that aborted with err. The payoff table is
// kept when the error carries one.
func FailedDocument(runID string, spec paretov1alpha1.ParetoFrontierSpec, err error) *paretov1alpha1.ParetoFrontier {
	doc := newDocument(runID, spec)
	doc.Status.Phase = paretov1alpha1.ParetoFrontierFailed
	doc.Status.Message = err.Error()
	if payoff := framework.PayoffOf(err); payoff != nil {
		doc.Status.Payoff = rows(payoff)
	}
	return doc
}

// MarshalDocument encodes a result document as YAML.
func MarshalDocument(doc *paretov1alpha1.ParetoFrontier) ([]byte, error) {
	return yaml.Marshal(doc)
}

func newDocument(runID string, spec paretov1alpha1.ParetoFrontierSpec) *paretov1alpha1.ParetoFrontier {
	return &paretov1alpha1.ParetoFrontier{
		TypeMeta: metav1.TypeMeta{
			APIVersion: paretov1alpha1.GroupName + "/" + paretov1alpha1.Version,
			Kind:       paretov1alpha1.Kind,
		},
		ObjectMeta: metav1.ObjectMeta{Name: runID},
		Spec:       spec,
	}
}

func rows(m mat.Matrix) [][]float64 {
	r, c := m.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = make([]float64, c)
		for j := range out[i] {
			out[i][j] = m.At(i, j)
		}
	}
	return out
}

func correlations(m mat.Matrix) [][]*float64 {
	out := make([][]*float64, 0)
	for _, row := range rows(m) {
		entries := make([]*float64, len(row))
		for j, v := range row {
			if !math.IsNaN(v) {
				entries[j] = &row[j]
			}
		}
		out = append(out, entries)
	}
	return out
}
