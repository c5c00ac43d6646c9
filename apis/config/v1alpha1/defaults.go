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
	"fmt"
	"os"

	"k8s.io/utils/ptr"
	"sigs.k8s.io/yaml"
)

var (
	DefaultIntervals      = 10
	DefaultParallelism    = 1
	DefaultWeightSampling = WeightSamplingDirichlet
	DefaultSolverName     = "linear"
)

// SetDefaults_MultiObjectiveArgs sets the default parameters for a run.
func SetDefaults_MultiObjectiveArgs(obj *MultiObjectiveArgs) {
	if obj.APIVersion == "" {
		obj.APIVersion = GroupName + "/" + Version
	}
	if obj.Kind == "" {
		obj.Kind = Kind
	}
	if obj.Intervals == 0 {
		obj.Intervals = DefaultIntervals
	}
	if obj.WeightSampling == "" {
		obj.WeightSampling = DefaultWeightSampling
	}
	if obj.SeedFrontierWithPayoff == nil {
		obj.SeedFrontierWithPayoff = ptr.To(true)
	}
	if obj.Parallelism == 0 {
		obj.Parallelism = DefaultParallelism
	}
	if obj.Solver.Name == "" {
		obj.Solver.Name = DefaultSolverName
	}
}

// LoadArgs reads a YAML (or JSON) file into defaulted MultiObjectiveArgs.
// Validation is left to the caller.
func LoadArgs(path string) (*MultiObjectiveArgs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading args %s: %w", path, err)
	}
	args := &MultiObjectiveArgs{}
	if err := yaml.UnmarshalStrict(data, args); err != nil {
		return nil, fmt.Errorf("decoding args %s: %w", path, err)
	}
	SetDefaults_MultiObjectiveArgs(args)
	return args, nil
}
