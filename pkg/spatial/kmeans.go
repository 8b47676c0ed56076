package spatial

import (
	"sync"

	"github.com/df07/go-light-sampler/pkg/core"
)

// KMeansResult holds the output of a Lloyd clustering run: k centroids and
// a cluster label for every input point.
type KMeansResult struct {
	Centroids [][3]float64
	Labels    []int
}

const kMeansMaxIterations = 64

// KMeansLloyd clusters the points into k groups with Lloyd's algorithm.
// Seeding picks evenly spaced input points rather than random ones, so the
// clustering is deterministic for a given input. The assignment step runs
// in parallel; iteration stops when labels stabilize or after a fixed
// iteration cap.
func KMeansLloyd(points [][3]float64, k int) KMeansResult {
	n := len(points)
	if k > n {
		k = n
	}
	result := KMeansResult{
		Centroids: make([][3]float64, k),
		Labels:    make([]int, n),
	}
	if k == 0 {
		return result
	}

	// Deterministic seeding: evenly spaced points across the input
	for i := 0; i < k; i++ {
		result.Centroids[i] = points[i*n/k]
	}

	for iter := 0; iter < kMeansMaxIterations; iter++ {
		changed := false
		var mu sync.Mutex
		sums := make([][3]float64, k)
		counts := make([]int, k)

		// Assignment step: each chunk accumulates partial sums locally and
		// merges them under the lock once
		core.ParallelFor(n, 1024, func(start, end int) error {
			localSums := make([][3]float64, k)
			localCounts := make([]int, k)
			localChanged := false
			for i := start; i < end; i++ {
				label := nearestCentroid(points[i], result.Centroids)
				if result.Labels[i] != label {
					result.Labels[i] = label
					localChanged = true
				}
				for dim := 0; dim < 3; dim++ {
					localSums[label][dim] += points[i][dim]
				}
				localCounts[label]++
			}
			mu.Lock()
			for c := 0; c < k; c++ {
				for dim := 0; dim < 3; dim++ {
					sums[c][dim] += localSums[c][dim]
				}
				counts[c] += localCounts[c]
			}
			if localChanged {
				changed = true
			}
			mu.Unlock()
			return nil
		})

		// Update step: empty clusters keep their previous centroid
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				continue
			}
			for dim := 0; dim < 3; dim++ {
				result.Centroids[c][dim] = sums[c][dim] / float64(counts[c])
			}
		}

		if !changed && iter > 0 {
			break
		}
	}
	return result
}

func nearestCentroid(p [3]float64, centroids [][3]float64) int {
	best := 0
	bestDist := pointDistSq(p, centroids[0])
	for c := 1; c < len(centroids); c++ {
		if d := pointDistSq(p, centroids[c]); d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}

func pointDistSq(a, b [3]float64) float64 {
	d := 0.0
	for dim := 0; dim < 3; dim++ {
		delta := a[dim] - b[dim]
		d += delta * delta
	}
	return d
}
