/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	GroupName = "pareto.io"
	Version   = "v1alpha1"
	Kind      = "ParetoFrontier"
)

// ParetoFrontier is the outcome of one frontier run, in a form that can be
// written to disk and read back.
// +kubebuilder:object:root=true
// +kubebuilder:printcolumn:name="Phase",JSONPath=".status.phase",type=string,description="Whether the run produced a frontier"
// +kubebuilder:printcolumn:name="Points",JSONPath=".status.frontierSize",type=integer,description="Number of frontier points"
type ParetoFrontier struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   ParetoFrontierSpec   `json:"spec,omitempty"`
	Status ParetoFrontierStatus `json:"status,omitempty"`
}

// ParetoFrontierSpec records what was asked for.
type ParetoFrontierSpec struct {
	// Problem names the model that was solved.
	Problem string `json:"problem"`

	// Solver is the backend name.
	Solver string `json:"solver"`

	// Strategy is "ecm" or "nwsm".
	Strategy string `json:"strategy"`

	// Objectives lists every objective with its direction.
	Objectives []ObjectiveSpec `json:"objectives"`

	// Intervals is the grid or sample size the run used.
	Intervals int `json:"intervals"`
}

type ObjectiveSpec struct {
	Name      string `json:"name"`
	Direction string `json:"direction"`
}

// ParetoFrontierStatus records what was found.
type ParetoFrontierStatus struct {
	// +kubebuilder:validation:Enum=Succeeded;Failed
	Phase ParetoFrontierPhase `json:"phase,omitempty"`

	// Message explains a failed run.
	Message string `json:"message,omitempty"`

	// Payoff holds one row per objective: all objective values at the
	// optimum of that objective alone.
	Payoff [][]float64 `json:"payoff,omitempty"`

	// Ranges holds the payoff column range of every objective.
	Ranges []ObjectiveRange `json:"ranges,omitempty"`

	// Points are the non-dominated, deduplicated solutions.
	Points []FrontierPoint `json:"points,omitempty"`

	FrontierSize int `json:"frontierSize"`

	// Candidates is the number of healthy solves before revision.
	Candidates int `json:"candidates"`

	// CandidateRanks holds the non-dominated front of every candidate, in
	// candidate order. Frontier points come from front 0.
	CandidateRanks []int `json:"candidateRanks,omitempty"`

	// Skipped is the number of scalarization solves that found no solution.
	Skipped int `json:"skipped"`

	// Conflict is the correlation matrix between objectives across the
	// frontier. Absent with fewer than two points; entries of an objective
	// that is constant on the frontier are null.
	Conflict [][]*float64 `json:"conflict,omitempty"`

	// ConflictingObjectives lists the objective pairs whose correlation is
	// strongly negative.
	ConflictingObjectives []ObjectivePair `json:"conflictingObjectives,omitempty"`

	StartTime      *metav1.Time `json:"startTime,omitempty"`
	CompletionTime *metav1.Time `json:"completionTime,omitempty"`
}

// ParetoFrontierPhase represents the phase of a frontier run
type ParetoFrontierPhase string

const (
	// ParetoFrontierSucceeded indicates the frontier was computed
	ParetoFrontierSucceeded ParetoFrontierPhase = "Succeeded"

	// ParetoFrontierFailed indicates the run aborted
	ParetoFrontierFailed ParetoFrontierPhase = "Failed"
)

// FrontierPoint is a single Pareto-optimal solution.
type FrontierPoint struct {
	// Index is the position of the candidate before revision.
	Index int `json:"index"`

	// Origin is "payoff", "ecm" or "nwsm".
	Origin string `json:"origin"`

	// Objectives holds the raw objective values, in objective order.
	Objectives []float64 `json:"objectives"`

	// Crowding is the crowding distance of the point on the frontier; null
	// for boundary points, whose distance is infinite.
	Crowding *float64 `json:"crowding"`

	// Weights is set for points found by the weighted-sum strategy.
	Weights []float64 `json:"weights,omitempty"`

	// Scalarized is the normalized weighted sum the point was found with.
	Scalarized *float64 `json:"scalarized,omitempty"`

	// Variables is set when the run saved variable snapshots.
	Variables map[string][]float64 `json:"variables,omitempty"`
}

type ObjectiveRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ObjectivePair names two objectives by position.
type ObjectivePair struct {
	First       int     `json:"first"`
	Second      int     `json:"second"`
	Correlation float64 `json:"correlation"`
}
