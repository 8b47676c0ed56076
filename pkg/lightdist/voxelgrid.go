package lightdist

import (
	"math"

	"github.com/df07/go-light-sampler/pkg/core"
)

// voxelGrid maps world points onto a grid over the scene bounds. The widest
// axis gets maxVoxels cells and the other axes are scaled to keep voxels
// roughly cubic. Each coordinate fits in 20 bits so a voxel packs into a
// single 64-bit hash key.
type voxelGrid struct {
	bounds core.AABB
	n      [3]int
}

func newVoxelGrid(bounds core.AABB, maxVoxels int) voxelGrid {
	if maxVoxels < 1 {
		maxVoxels = 1
	}
	g := voxelGrid{bounds: bounds}
	diag := bounds.Size()
	maxExtent := math.Max(diag.X, math.Max(diag.Y, diag.Z))
	for axis := 0; axis < 3; axis++ {
		n := 1
		if maxExtent > 0 {
			n = int(math.Round(diag.Axis(axis) / maxExtent * float64(maxVoxels)))
		}
		if n < 1 {
			n = 1
		}
		g.n[axis] = n
	}
	return g
}

// voxelCount returns the total number of grid cells
func (g voxelGrid) voxelCount() int {
	return g.n[0] * g.n[1] * g.n[2]
}

// voxelOf returns the grid coordinates of the voxel containing p. Points
// outside the bounds clamp to the nearest voxel to absorb intersection
// roundoff.
func (g voxelGrid) voxelOf(p core.Vec3) [3]int {
	offset := g.bounds.Offset(p)
	var v [3]int
	for axis := 0; axis < 3; axis++ {
		c := int(offset.Axis(axis) * float64(g.n[axis]))
		if c < 0 {
			c = 0
		}
		if c >= g.n[axis] {
			c = g.n[axis] - 1
		}
		v[axis] = c
	}
	return v
}

// voxelBounds returns the world-space box of the voxel by lerping the scene
// bounds at the voxel corners
func (g voxelGrid) voxelBounds(v [3]int) core.AABB {
	t0 := core.NewVec3(
		float64(v[0])/float64(g.n[0]),
		float64(v[1])/float64(g.n[1]),
		float64(v[2])/float64(g.n[2]),
	)
	t1 := core.NewVec3(
		float64(v[0]+1)/float64(g.n[0]),
		float64(v[1]+1)/float64(g.n[1]),
		float64(v[2]+1)/float64(g.n[2]),
	)
	return core.NewAABB(g.bounds.Lerp(t0), g.bounds.Lerp(t1))
}

// offsetInVoxel returns, per axis, where the point sits inside its voxel,
// shifted so the voxel center is 0 and the faces are at -0.5 and +0.5
func (g voxelGrid) offsetInVoxel(p core.Vec3) [3]float64 {
	offset := g.bounds.Offset(p)
	var o [3]float64
	for axis := 0; axis < 3; axis++ {
		scaled := offset.Axis(axis) * float64(g.n[axis])
		o[axis] = scaled - math.Floor(scaled) - 0.5
	}
	return o
}

// invalidKey marks an empty hash slot. No packed voxel can collide with it
// because voxel coordinates are bounded well below 20 bits.
const invalidKey = ^uint64(0)

// packVoxel encodes voxel coordinates into a hash key, 20 bits per axis
func packVoxel(v [3]int) uint64 {
	return uint64(v[0])<<40 | uint64(v[1])<<20 | uint64(v[2])
}

// hashVoxelKey mixes the packed key with a splitmix-style finalizer so that
// adjacent voxels land in unrelated slots
func hashVoxelKey(key uint64) uint64 {
	key ^= key >> 31
	key *= 0x7FB5D329728EA185
	key ^= key >> 27
	key *= 0x81DADEF4BC2DD44D
	key ^= key >> 33
	return key
}
