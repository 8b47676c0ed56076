package geometry

import (
	"math"

	"github.com/df07/go-light-sampler/pkg/core"
)

// Box represents an axis-aligned box, hit-tested with the slab method
type Box struct {
	Min core.Vec3
	Max core.Vec3
}

// NewBox creates a new axis-aligned box from its two extreme corners
func NewBox(min, max core.Vec3) *Box {
	return &Box{Min: min, Max: max}
}

// Hit tests if a ray intersects with the box and reports the entry face
func (b *Box) Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	tEnter, tExit := tMin, tMax
	enterAxis := -1
	enterSign := 1.0

	for axis := 0; axis < 3; axis++ {
		min := b.Min.Axis(axis)
		max := b.Max.Axis(axis)
		origin := ray.Origin.Axis(axis)
		direction := ray.Direction.Axis(axis)

		if math.Abs(direction) < 1e-12 {
			if origin < min || origin > max {
				return HitRecord{}, false
			}
			continue
		}

		invDirection := 1.0 / direction
		t1 := (min - origin) * invDirection
		t2 := (max - origin) * invDirection
		sign := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1.0
		}

		if t1 > tEnter {
			tEnter = t1
			enterAxis = axis
			enterSign = sign
		}
		if t2 < tExit {
			tExit = t2
		}
		if tEnter > tExit {
			return HitRecord{}, false
		}
	}

	// Ray starts inside the box or the entry point is out of range; report
	// the exit face instead so interior queries still produce a hit
	t := tEnter
	if enterAxis < 0 || t < tMin {
		t = tExit
		if t < tMin || t > tMax {
			return HitRecord{}, false
		}
		return b.exitHit(ray, t)
	}

	normal := core.Vec3{}
	switch enterAxis {
	case 0:
		normal = core.NewVec3(enterSign, 0, 0)
	case 1:
		normal = core.NewVec3(0, enterSign, 0)
	case 2:
		normal = core.NewVec3(0, 0, enterSign)
	}

	rec := HitRecord{T: t, Point: ray.At(t)}
	rec.SetFaceNormal(ray, normal)
	return rec, true
}

// exitHit builds a hit record for the face where the ray leaves the box
func (b *Box) exitHit(ray core.Ray, t float64) (HitRecord, bool) {
	p := ray.At(t)
	center := b.Min.Add(b.Max).Multiply(0.5)
	half := b.Max.Subtract(b.Min).Multiply(0.5)

	// The exit face is the axis where the local coordinate is closest to
	// the face plane, relative to the box extent
	rel := p.Subtract(center)
	bestAxis, bestDelta := 0, math.Inf(1)
	for axis := 0; axis < 3; axis++ {
		extent := half.Axis(axis)
		if extent <= 0 {
			continue
		}
		delta := extent - math.Abs(rel.Axis(axis))
		if delta < bestDelta {
			bestDelta = delta
			bestAxis = axis
		}
	}

	sign := 1.0
	if rel.Axis(bestAxis) < 0 {
		sign = -1.0
	}
	normal := core.Vec3{}
	switch bestAxis {
	case 0:
		normal = core.NewVec3(sign, 0, 0)
	case 1:
		normal = core.NewVec3(0, sign, 0)
	case 2:
		normal = core.NewVec3(0, 0, sign)
	}

	rec := HitRecord{T: t, Point: p}
	rec.SetFaceNormal(ray, normal)
	return rec, true
}

// BoundingBox returns the axis-aligned bounding box for this box
func (b *Box) BoundingBox() core.AABB {
	return core.NewAABB(b.Min, b.Max)
}
