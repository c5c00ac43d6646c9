package framework

import (
	"encoding/binary"
	"math"
	"sort"
)

// Dominates checks if point a dominates point b under the sign vector s
// (see Directions.Signs): s*a <= s*b everywhere and s*a < s*b somewhere.
func Dominates(a, b ObjectiveSpacePoint, s []float64) bool {
	better := false
	for i := 0; i < len(a); i++ {
		av, bv := s[i]*a[i], s[i]*b[i]
		if av > bv {
			return false
		}
		if av < bv {
			better = true
		}
	}
	return better
}

// NonDominated returns the positions of the points that no other point
// dominates, in ascending order. Every unordered pair is visited once and
// checked in both directions.
func NonDominated(points []ObjectiveSpacePoint, dirs Directions) []int {
	s := dirs.Signs()
	dominated := make([]bool, len(points))
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			if Dominates(points[i], points[j], s) {
				dominated[j] = true
			} else if Dominates(points[j], points[i], s) {
				dominated[i] = true
			}
		}
	}

	out := make([]int, 0, len(points))
	for i := range points {
		if !dominated[i] {
			out = append(out, i)
		}
	}
	return out
}

// Unique drops every index whose point equals the point of an earlier index
// in idx. The first occurrence of each duplicate group is kept.
func Unique(points []ObjectiveSpacePoint, idx []int) []int {
	seen := make(map[string]struct{}, len(idx))
	out := make([]int, 0, len(idx))
	for _, i := range idx {
		k := pointKey(points[i])
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, i)
	}
	return out
}

func pointKey(p ObjectiveSpacePoint) string {
	buf := make([]byte, 8*len(p))
	for i, v := range p {
		if v == 0 {
			// -0 and +0 compare equal
			v = 0
		}
		binary.LittleEndian.PutUint64(buf[8*i:], math.Float64bits(v))
	}
	return string(buf)
}

// Revise filters the candidates down to the Pareto frontier: non-dominated,
// without duplicate points, ordered by ascending candidate position. Variable
// snapshots and weights follow their points.
func Revise(candidates []Candidate, dirs Directions) Frontier {
	points := make([]ObjectiveSpacePoint, len(candidates))
	for i, c := range candidates {
		points[i] = c.Objectives
	}
	keep := Unique(points, NonDominated(points, dirs))

	f := Frontier{
		Points:    make([]ObjectiveSpacePoint, len(keep)),
		Variables: make([]VariableSnapshot, len(keep)),
		Weights:   make([][]float64, len(keep)),
		Indices:   keep,
	}
	for n, i := range keep {
		f.Points[n] = candidates[i].Objectives
		f.Variables[n] = candidates[i].Variables
		f.Weights[n] = candidates[i].Weights
	}
	return f
}

// NonDominatedSort ranks the points into successive fronts. Fronts hold
// positions into points; front 0 is the non-dominated set.
func NonDominatedSort(points []ObjectiveSpacePoint, dirs Directions) [][]int {
	s := dirs.Signs()
	var fronts [][]int
	dominated := make(map[int][]int)
	domCount := make([]int, len(points))

	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			if Dominates(points[i], points[j], s) {
				dominated[i] = append(dominated[i], j)
				domCount[j]++
			} else if Dominates(points[j], points[i], s) {
				dominated[j] = append(dominated[j], i)
				domCount[i]++
			}
		}
	}

	current := []int{}
	for i := range points {
		if domCount[i] == 0 {
			current = append(current, i)
		}
	}

	for len(current) > 0 {
		fronts = append(fronts, current)
		next := []int{}
		for _, idx := range current {
			for _, d := range dominated[idx] {
				domCount[d]--
				if domCount[d] == 0 {
					next = append(next, d)
				}
			}
		}
		sort.Ints(next)
		current = next
	}
	return fronts
}

// Ranks returns the front of every point as numbered by NonDominatedSort.
func Ranks(points []ObjectiveSpacePoint, dirs Directions) []int {
	ranks := make([]int, len(points))
	for rank, front := range NonDominatedSort(points, dirs) {
		for _, i := range front {
			ranks[i] = rank
		}
	}
	return ranks
}
