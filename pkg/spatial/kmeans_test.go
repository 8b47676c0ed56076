package spatial

import (
	"math"
	"testing"
)

func TestKMeansLloydSeparatesClusters(t *testing.T) {
	// Two tight groups far apart must land in different clusters
	var points [][3]float64
	for i := 0; i < 20; i++ {
		o := float64(i) * 0.01
		points = append(points, [3]float64{o, o, 0})
		points = append(points, [3]float64{10 + o, 10 + o, 0})
	}
	result := KMeansLloyd(points, 2)

	if len(result.Centroids) != 2 || len(result.Labels) != len(points) {
		t.Fatalf("got %d centroids, %d labels", len(result.Centroids), len(result.Labels))
	}
	for i := 0; i < len(points); i += 2 {
		if result.Labels[i] == result.Labels[i+1] {
			t.Fatalf("points %v and %v share cluster %d", points[i], points[i+1], result.Labels[i])
		}
	}
	// Each centroid sits near one of the group centers
	for _, c := range result.Centroids {
		nearOrigin := math.Hypot(c[0], c[1]) < 1
		nearFar := math.Hypot(c[0]-10, c[1]-10) < 1.2
		if !nearOrigin && !nearFar {
			t.Errorf("centroid %v far from both groups", c)
		}
	}
}

func TestKMeansLloydDeterministic(t *testing.T) {
	var points [][3]float64
	for i := 0; i < 100; i++ {
		x := float64(i%10) * 1.3
		y := float64(i/10) * 0.7
		points = append(points, [3]float64{x, y, x * y})
	}
	a := KMeansLloyd(points, 5)
	b := KMeansLloyd(points, 5)
	for i := range a.Labels {
		if a.Labels[i] != b.Labels[i] {
			t.Fatalf("label %d differs between runs: %d vs %d", i, a.Labels[i], b.Labels[i])
		}
	}
	for c := range a.Centroids {
		if a.Centroids[c] != b.Centroids[c] {
			t.Fatalf("centroid %d differs between runs: %v vs %v", c, a.Centroids[c], b.Centroids[c])
		}
	}
}

func TestKMeansLloydKClamping(t *testing.T) {
	points := [][3]float64{{0, 0, 0}, {1, 1, 1}, {2, 2, 2}}
	result := KMeansLloyd(points, 10)
	if len(result.Centroids) != len(points) {
		t.Errorf("k clamped to %d centroids, want %d", len(result.Centroids), len(points))
	}

	empty := KMeansLloyd(nil, 4)
	if len(empty.Centroids) != 0 || len(empty.Labels) != 0 {
		t.Errorf("empty input produced %d centroids, %d labels", len(empty.Centroids), len(empty.Labels))
	}
}

func TestKMeansLloydSingleCluster(t *testing.T) {
	points := [][3]float64{{0, 0, 0}, {2, 0, 0}, {4, 0, 0}}
	result := KMeansLloyd(points, 1)
	if got := result.Centroids[0]; got != [3]float64{2, 0, 0} {
		t.Errorf("centroid = %v, want mean {2 0 0}", got)
	}
	for i, label := range result.Labels {
		if label != 0 {
			t.Errorf("point %d labeled %d, want 0", i, label)
		}
	}
}
