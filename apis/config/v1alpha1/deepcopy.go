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

// DeepCopyInto copies the receiver into out. in must be non-nil.
func (in *MultiObjectiveArgs) DeepCopyInto(out *MultiObjectiveArgs) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	if in.Directions != nil {
		out.Directions = make([]string, len(in.Directions))
		copy(out.Directions, in.Directions)
	}
	if in.ImportantObjective != nil {
		v := *in.ImportantObjective
		out.ImportantObjective = &v
	}
	if in.Weights != nil {
		out.Weights = make([]float64, len(in.Weights))
		copy(out.Weights, in.Weights)
	}
	if in.Seed != nil {
		v := *in.Seed
		out.Seed = &v
	}
	if in.SeedFrontierWithPayoff != nil {
		v := *in.SeedFrontierWithPayoff
		out.SeedFrontierWithPayoff = &v
	}
	out.Solver = in.Solver
}

// DeepCopy returns a new MultiObjectiveArgs with no memory shared with the receiver.
func (in *MultiObjectiveArgs) DeepCopy() *MultiObjectiveArgs {
	if in == nil {
		return nil
	}
	out := new(MultiObjectiveArgs)
	in.DeepCopyInto(out)
	return out
}
