package analysis

import (
	"math"
	"sort"

	"github.com/mihai-snyk/pareto/pkg/multiobjective/framework"
)

// CrowdingDistance measures how isolated every frontier point is: the sum,
// over objectives, of the normalized gap between its two neighbours. The
// extreme points of any objective get +Inf, as does every point of a
// frontier with two points or fewer. Larger values mark sparser regions.
func CrowdingDistance(points []framework.ObjectiveSpacePoint) []float64 {
	distance := make([]float64, len(points))
	if len(points) <= 2 {
		for i := range distance {
			distance[i] = math.Inf(1)
		}
		return distance
	}

	order := make([]int, len(points))
	for m := range points[0] {
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return points[order[a]][m] < points[order[b]][m]
		})

		first, last := order[0], order[len(order)-1]
		distance[first] = math.Inf(1)
		distance[last] = math.Inf(1)

		objectiveRange := points[last][m] - points[first][m]
		if objectiveRange == 0 {
			continue
		}
		for i := 1; i < len(order)-1; i++ {
			distance[order[i]] += (points[order[i+1]][m] - points[order[i-1]][m]) / objectiveRange
		}
	}
	return distance
}
