package analysis

import (
	"math"
	"sort"
)

// maxIterations caps the assign/recompute loop; two clusters over one
// dimension converge long before this in practice.
const maxIterations = 100

// kmeans2 partitions values into two groups by iterative
// centroid assignment. Centroids are seeded at the minimum and maximum
// of the input, so identical input always produces identical
// assignments and centers. Distance ties assign to the lower-index
// centroid. The returned centers follow the internal labeling and are
// not sorted by value.
func kmeans2(values []float64) ([]int, []float64) {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	centers := [2]float64{sorted[0], sorted[len(sorted)-1]}
	assignments := make([]int, len(values))

	for iter := 0; iter < maxIterations; iter++ {
		changed := false
		for i, v := range values {
			k := 0
			if math.Abs(v-centers[1]) < math.Abs(v-centers[0]) {
				k = 1
			}
			if assignments[i] != k {
				assignments[i] = k
				changed = true
			}
		}

		var sums [2]float64
		var counts [2]int
		for i, v := range values {
			sums[assignments[i]] += v
			counts[assignments[i]]++
		}
		for k := range centers {
			if counts[k] > 0 {
				centers[k] = sums[k] / float64(counts[k])
			}
		}

		if !changed && iter > 0 {
			break
		}
	}

	return assignments, []float64{centers[0], centers[1]}
}
