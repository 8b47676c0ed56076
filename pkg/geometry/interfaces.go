package geometry

import "github.com/df07/go-light-sampler/pkg/core"

// HitRecord describes a ray-surface intersection
type HitRecord struct {
	Point     core.Vec3 // Intersection point in world space
	Normal    core.Vec3 // Surface normal, always facing the incoming ray
	T         float64   // Ray parameter at the intersection
	FrontFace bool      // True if the ray hit the front side of the surface
}

// SetFaceNormal orients the normal against the ray direction and records
// which side was hit
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Shape interface for objects that can be hit by rays
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool)
	BoundingBox() core.AABB
}
