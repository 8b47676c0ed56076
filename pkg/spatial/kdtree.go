package spatial

import (
	"sort"
)

// PointSource provides 3D coordinates for the points to index.
// The source must stay immutable while a tree built over it is in use.
type PointSource interface {
	Len() int
	Coord(i, dim int) float64
}

// Match is a single query result: a point index and its squared distance
// to the query point. Distances are always squared; kernel code that wants
// a true distance takes the square root itself.
type Match struct {
	Index  int
	DistSq float64
}

// KdTree is a static k-d tree over a PointSource. It is built once and
// read-only afterwards, so concurrent queries need no synchronization.
type KdTree struct {
	src     PointSource
	maxLeaf int
	nodes   []kdNode
	order   []int // permutation of point indices; leaves own ranges of it
}

type kdNode struct {
	axis        int     // split axis, or -1 for a leaf
	split       float64 // split coordinate along axis
	left, right int     // child node offsets (internal nodes)
	start, end  int     // range into order (leaf nodes)
}

// NewKdTree builds a k-d tree with at most maxLeaf points per leaf.
// Splits use the median along the widest axis of each subset, the same
// scheme the scene BVH uses for shapes.
func NewKdTree(src PointSource, maxLeaf int) *KdTree {
	if maxLeaf < 1 {
		maxLeaf = 1
	}
	t := &KdTree{
		src:     src,
		maxLeaf: maxLeaf,
		order:   make([]int, src.Len()),
	}
	for i := range t.order {
		t.order[i] = i
	}
	if src.Len() > 0 {
		t.build(0, src.Len())
	}
	return t
}

// build recursively partitions order[start:end) and appends nodes,
// returning the new node's offset
func (t *KdTree) build(start, end int) int {
	nodeIndex := len(t.nodes)
	t.nodes = append(t.nodes, kdNode{})

	if end-start <= t.maxLeaf {
		t.nodes[nodeIndex] = kdNode{axis: -1, start: start, end: end}
		return nodeIndex
	}

	// Pick the widest axis of this subset for the split
	axis := t.widestAxis(start, end)
	subset := t.order[start:end]
	sort.Slice(subset, func(i, j int) bool {
		return t.src.Coord(subset[i], axis) < t.src.Coord(subset[j], axis)
	})

	mid := start + (end-start)/2
	split := t.src.Coord(t.order[mid], axis)

	left := t.build(start, mid)
	right := t.build(mid, end)
	t.nodes[nodeIndex] = kdNode{axis: axis, split: split, left: left, right: right}
	return nodeIndex
}

// widestAxis returns the axis with the largest coordinate extent over
// order[start:end)
func (t *KdTree) widestAxis(start, end int) int {
	var lo, hi [3]float64
	for dim := 0; dim < 3; dim++ {
		lo[dim] = t.src.Coord(t.order[start], dim)
		hi[dim] = lo[dim]
	}
	for i := start + 1; i < end; i++ {
		for dim := 0; dim < 3; dim++ {
			c := t.src.Coord(t.order[i], dim)
			if c < lo[dim] {
				lo[dim] = c
			}
			if c > hi[dim] {
				hi[dim] = c
			}
		}
	}
	axis := 0
	best := hi[0] - lo[0]
	for dim := 1; dim < 3; dim++ {
		if hi[dim]-lo[dim] > best {
			best = hi[dim] - lo[dim]
			axis = dim
		}
	}
	return axis
}

func (t *KdTree) distSq(index int, p [3]float64) float64 {
	d := 0.0
	for dim := 0; dim < 3; dim++ {
		delta := t.src.Coord(index, dim) - p[dim]
		d += delta * delta
	}
	return d
}

// KNN returns the k nearest points to p, sorted by ascending squared
// distance. Fewer than k matches are returned when the tree is smaller.
func (t *KdTree) KNN(p [3]float64, k int) []Match {
	if len(t.nodes) == 0 || k <= 0 {
		return nil
	}
	if k > t.src.Len() {
		k = t.src.Len()
	}
	heap := make(matchHeap, 0, k)
	t.knnNode(0, p, k, &heap)

	// The heap holds the winners in max-first order; sort ascending
	result := []Match(heap)
	sort.Slice(result, func(i, j int) bool { return result[i].DistSq < result[j].DistSq })
	return result
}

func (t *KdTree) knnNode(nodeIndex int, p [3]float64, k int, heap *matchHeap) {
	node := &t.nodes[nodeIndex]
	if node.axis < 0 {
		for _, idx := range t.order[node.start:node.end] {
			d := t.distSq(idx, p)
			if len(*heap) < k {
				heap.push(Match{Index: idx, DistSq: d})
			} else if d < (*heap)[0].DistSq {
				heap.replaceMax(Match{Index: idx, DistSq: d})
			}
		}
		return
	}

	// Descend into the near child first, then the far child only if its
	// slab could still hold a closer point
	delta := p[node.axis] - node.split
	near, far := node.left, node.right
	if delta > 0 {
		near, far = far, near
	}
	t.knnNode(near, p, k, heap)
	if len(*heap) < k || delta*delta < (*heap)[0].DistSq {
		t.knnNode(far, p, k, heap)
	}
}

// Radius returns all points within the given squared radius of p, sorted
// by ascending squared distance
func (t *KdTree) Radius(p [3]float64, radiusSq float64) []Match {
	if len(t.nodes) == 0 {
		return nil
	}
	var result []Match
	t.radiusNode(0, p, radiusSq, &result)
	sort.Slice(result, func(i, j int) bool { return result[i].DistSq < result[j].DistSq })
	return result
}

func (t *KdTree) radiusNode(nodeIndex int, p [3]float64, radiusSq float64, result *[]Match) {
	node := &t.nodes[nodeIndex]
	if node.axis < 0 {
		for _, idx := range t.order[node.start:node.end] {
			if d := t.distSq(idx, p); d <= radiusSq {
				*result = append(*result, Match{Index: idx, DistSq: d})
			}
		}
		return
	}

	delta := p[node.axis] - node.split
	near, far := node.left, node.right
	if delta > 0 {
		near, far = far, near
	}
	t.radiusNode(near, p, radiusSq, result)
	if delta*delta <= radiusSq {
		t.radiusNode(far, p, radiusSq, result)
	}
}

// Leaves enumerates the point indices of every leaf cell. The returned
// slices partition all indexed points.
func (t *KdTree) Leaves() [][]int {
	var leaves [][]int
	for _, node := range t.nodes {
		if node.axis < 0 {
			leaf := make([]int, node.end-node.start)
			copy(leaf, t.order[node.start:node.end])
			leaves = append(leaves, leaf)
		}
	}
	return leaves
}

// matchHeap is a fixed-capacity max-heap on DistSq, used to keep the k
// best candidates during a KNN traversal
type matchHeap []Match

func (h *matchHeap) push(m Match) {
	*h = append(*h, m)
	i := len(*h) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if (*h)[parent].DistSq >= (*h)[i].DistSq {
			break
		}
		(*h)[parent], (*h)[i] = (*h)[i], (*h)[parent]
		i = parent
	}
}

func (h *matchHeap) replaceMax(m Match) {
	(*h)[0] = m
	i := 0
	for {
		left, right := 2*i+1, 2*i+2
		largest := i
		if left < len(*h) && (*h)[left].DistSq > (*h)[largest].DistSq {
			largest = left
		}
		if right < len(*h) && (*h)[right].DistSq > (*h)[largest].DistSq {
			largest = right
		}
		if largest == i {
			break
		}
		(*h)[i], (*h)[largest] = (*h)[largest], (*h)[i]
		i = largest
	}
}
