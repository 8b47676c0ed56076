package geometry

import (
	"math"

	"github.com/df07/go-light-sampler/pkg/core"
)

// Sphere is an analytic sphere occluder
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a sphere at center with the given radius
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{Center: center, Radius: radius}
}

// Hit solves the ray-sphere quadratic and returns the nearest intersection
// inside [tMin, tMax]
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	oc := ray.Origin.Subtract(s.Center)
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	disc := halfB*halfB - a*c
	if disc < 0 {
		return HitRecord{}, false
	}
	sqrtD := math.Sqrt(disc)

	t := (-halfB - sqrtD) / a
	if t < tMin || t > tMax {
		t = (-halfB + sqrtD) / a
		if t < tMin || t > tMax {
			return HitRecord{}, false
		}
	}

	rec := HitRecord{T: t, Point: ray.At(t)}
	rec.SetFaceNormal(ray, rec.Point.Subtract(s.Center).Multiply(1.0/s.Radius))
	return rec, true
}

// BoundingBox returns the tight axis-aligned bounds of the sphere
func (s *Sphere) BoundingBox() core.AABB {
	r := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(s.Center.Subtract(r), s.Center.Add(r))
}
