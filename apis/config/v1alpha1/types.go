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
	GroupName = "config.pareto.io"
	Version   = "v1alpha1"
	Kind      = "MultiObjectiveArgs"
)

// ScalarizationStrategy selects how the multi-objective problem is turned
// into a sequence of single-objective solves.
type ScalarizationStrategy string

const (
	// StrategyEpsilonConstraint optimizes one objective while sweeping
	// bounds on all the others.
	StrategyEpsilonConstraint ScalarizationStrategy = "ecm"
	// StrategyWeightedSum minimizes a normalized weighted sum of all objectives.
	StrategyWeightedSum ScalarizationStrategy = "nwsm"
)

// WeightSampling selects the distribution of random weight vectors.
type WeightSampling string

const (
	// WeightSamplingDirichlet draws from a symmetric Dirichlet(1,...,1).
	WeightSamplingDirichlet WeightSampling = "Dirichlet"
	// WeightSamplingUniform draws i.i.d. uniforms and normalizes them.
	WeightSamplingUniform WeightSampling = "Uniform"
)

// MultiObjectiveArgs holds arguments used to configure one Pareto frontier run.
// +kubebuilder:object:root=true
type MultiObjectiveArgs struct {
	metav1.TypeMeta `json:",inline"`

	// Directions holds "minimize" or "maximize" for every objective.
	Directions []string `json:"directions"`

	// Strategy is either "ecm" or "nwsm".
	Strategy ScalarizationStrategy `json:"strategy"`

	// Intervals is the number of grid intervals for "ecm" and the number of
	// random samples minus one for "nwsm". Defaults to 10.
	Intervals int `json:"intervals,omitempty"`

	// ImportantObjective, when set, makes "ecm" optimize only this objective
	// instead of taking every objective in turn.
	ImportantObjective *int `json:"importantObjective,omitempty"`

	// Weights, when set, makes "nwsm" solve exactly once with these weights.
	Weights []float64 `json:"weights,omitempty"`

	// WeightSampling defaults to Dirichlet.
	WeightSampling WeightSampling `json:"weightSampling,omitempty"`

	// Seed makes the weight sampling reproducible.
	Seed *uint64 `json:"seed,omitempty"`

	// SaveVariables keeps a variable snapshot for every frontier point.
	SaveVariables bool `json:"saveVariables,omitempty"`

	// SeedFrontierWithPayoff adds the payoff table rows to the candidate
	// set. Defaults to true.
	SeedFrontierWithPayoff *bool `json:"seedFrontierWithPayoff,omitempty"`

	// Parallelism is the number of solves allowed to run at the same time.
	// Defaults to 1.
	Parallelism int `json:"parallelism,omitempty"`

	// CacheSolves memoizes identical solve configurations within a run.
	CacheSolves bool `json:"cacheSolves,omitempty"`

	Solver SolverArgs `json:"solver,omitempty"`
}

// SolverArgs are handed to the backend as-is.
type SolverArgs struct {
	Name         string          `json:"name,omitempty"`
	TimeLimit    metav1.Duration `json:"timeLimit,omitempty"`
	AbsoluteGap  float64         `json:"absoluteGap,omitempty"`
	RelativeGap  float64         `json:"relativeGap,omitempty"`
	Threads      int             `json:"threads,omitempty"`
	Verbose      bool            `json:"verbose,omitempty"`
	LogToConsole bool            `json:"logToConsole,omitempty"`
}
