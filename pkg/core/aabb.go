package core

import "math"

// AABB is an axis-aligned bounding box spanning Min to Max
type AABB struct {
	Min Vec3
	Max Vec3
}

// NewAABB creates an AABB from its corner points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints creates the tightest AABB enclosing all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	box := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box.Min = minVec(box.Min, p)
		box.Max = maxVec(box.Max, p)
	}
	return box
}

func minVec(a, b Vec3) Vec3 {
	return Vec3{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)}
}

func maxVec(a, b Vec3) Vec3 {
	return Vec3{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)}
}

// Hit reports whether the ray crosses the box within [tMin, tMax], using the
// slab method per axis
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		origin := ray.Origin.Axis(axis)
		direction := ray.Direction.Axis(axis)
		lo := aabb.Min.Axis(axis)
		hi := aabb.Max.Axis(axis)

		if math.Abs(direction) < 1e-8 {
			// Parallel to the slab: inside or a guaranteed miss
			if origin < lo || origin > hi {
				return false
			}
			continue
		}

		inv := 1.0 / direction
		t1 := (lo - origin) * inv
		t2 := (hi - origin) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}
	return true
}

// Union returns the smallest AABB containing both boxes
func (aabb AABB) Union(other AABB) AABB {
	return AABB{
		Min: minVec(aabb.Min, other.Min),
		Max: maxVec(aabb.Max, other.Max),
	}
}

// Center returns the box midpoint
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the per-axis extent
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// LongestAxis returns the axis index (0=X, 1=Y, 2=Z) with the largest extent
func (aabb AABB) LongestAxis() int {
	size := aabb.Size()
	switch {
	case size.X > size.Y && size.X > size.Z:
		return 0
	case size.Y > size.Z:
		return 1
	default:
		return 2
	}
}

// Offset returns the position of p relative to the box corners, (0,0,0) at
// Min and (1,1,1) at Max. Degenerate axes stay at the raw difference so a
// flat box never divides by zero. Points outside map outside [0,1].
func (aabb AABB) Offset(p Vec3) Vec3 {
	o := p.Subtract(aabb.Min)
	size := aabb.Size()
	if size.X > 0 {
		o.X /= size.X
	}
	if size.Y > 0 {
		o.Y /= size.Y
	}
	if size.Z > 0 {
		o.Z /= size.Z
	}
	return o
}

// Lerp interpolates between the corners with per-axis parameters, returning
// Min at (0,0,0) and Max at (1,1,1)
func (aabb AABB) Lerp(t Vec3) Vec3 {
	return Vec3{
		X: aabb.Min.X + t.X*(aabb.Max.X-aabb.Min.X),
		Y: aabb.Min.Y + t.Y*(aabb.Max.Y-aabb.Min.Y),
		Z: aabb.Min.Z + t.Z*(aabb.Max.Z-aabb.Min.Z),
	}
}

// IsValid reports whether Min <= Max on every axis
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}

// Expand grows the box by amount in every direction
func (aabb AABB) Expand(amount float64) AABB {
	e := NewVec3(amount, amount, amount)
	return AABB{Min: aabb.Min.Subtract(e), Max: aabb.Max.Add(e)}
}
