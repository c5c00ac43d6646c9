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
	"math"

	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/mihai-snyk/pareto/pkg/multiobjective/framework"
)

const weightSumTolerance = 1e-9

// ValidateMultiObjectiveArgs validates defaulted args. The strategy tag is
// not checked here: an unknown tag is reported by the run itself as
// framework.ErrUnsupportedScalarizationMode.
func ValidateMultiObjectiveArgs(args *MultiObjectiveArgs) field.ErrorList {
	var allErrs field.ErrorList

	dirsPath := field.NewPath("directions")
	if len(args.Directions) < 2 {
		allErrs = append(allErrs, field.Invalid(dirsPath, args.Directions, "at least two objectives are required"))
	}
	for i, d := range args.Directions {
		if _, err := framework.ParseDirection(d); err != nil {
			allErrs = append(allErrs, field.NotSupported(dirsPath.Index(i), d, []string{string(framework.Minimize), string(framework.Maximize)}))
		}
	}

	if args.Intervals < 1 {
		allErrs = append(allErrs, field.Invalid(field.NewPath("intervals"), args.Intervals, "must be at least 1"))
	}

	if args.ImportantObjective != nil {
		p := field.NewPath("importantObjective")
		if *args.ImportantObjective < 0 || *args.ImportantObjective >= len(args.Directions) {
			allErrs = append(allErrs, field.Invalid(p, *args.ImportantObjective, "must index one of the objectives"))
		}
	}

	if args.Weights != nil {
		allErrs = append(allErrs, validateWeights(args.Weights, len(args.Directions), field.NewPath("weights"))...)
	}

	switch args.WeightSampling {
	case WeightSamplingDirichlet, WeightSamplingUniform:
	default:
		allErrs = append(allErrs, field.NotSupported(field.NewPath("weightSampling"), args.WeightSampling,
			[]string{string(WeightSamplingDirichlet), string(WeightSamplingUniform)}))
	}

	if args.Parallelism < 1 {
		allErrs = append(allErrs, field.Invalid(field.NewPath("parallelism"), args.Parallelism, "must be at least 1"))
	}

	solverPath := field.NewPath("solver")
	if args.Solver.TimeLimit.Duration < 0 {
		allErrs = append(allErrs, field.Invalid(solverPath.Child("timeLimit"), args.Solver.TimeLimit.Duration.String(), "must not be negative"))
	}
	if args.Solver.AbsoluteGap < 0 {
		allErrs = append(allErrs, field.Invalid(solverPath.Child("absoluteGap"), args.Solver.AbsoluteGap, "must not be negative"))
	}
	if args.Solver.RelativeGap < 0 {
		allErrs = append(allErrs, field.Invalid(solverPath.Child("relativeGap"), args.Solver.RelativeGap, "must not be negative"))
	}
	if args.Solver.Threads < 0 {
		allErrs = append(allErrs, field.Invalid(solverPath.Child("threads"), args.Solver.Threads, "must not be negative"))
	}

	return allErrs
}

func validateWeights(weights []float64, m int, p *field.Path) field.ErrorList {
	var allErrs field.ErrorList
	if len(weights) != m {
		allErrs = append(allErrs, field.Invalid(p, weights, "must hold one weight per objective"))
	}
	sum := 0.0
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) {
			allErrs = append(allErrs, field.Invalid(p.Index(i), w, "must be non-negative"))
		}
		sum += w
	}
	if math.Abs(sum-1) > weightSumTolerance {
		allErrs = append(allErrs, field.Invalid(p, weights, "must sum to 1"))
	}
	return allErrs
}
