package scene

import (
	"fmt"
	"sort"

	"github.com/df07/go-light-sampler/pkg/core"
	"github.com/df07/go-light-sampler/pkg/geometry"
	"github.com/df07/go-light-sampler/pkg/lights"
)

// Scene contains the geometry and lights needed for light sampling
type Scene struct {
	Shapes    []geometry.Shape // Objects in the scene
	lightList []lights.Light
	BVH       *geometry.BVH // Acceleration structure for ray-object intersection
}

// AddShape adds an occluding shape to the scene
func (s *Scene) AddShape(shape geometry.Shape) {
	s.Shapes = append(s.Shapes, shape)
}

// AddQuadLight adds an emitting quad to the scene as both a light and a shape
// so that it participates in occlusion tests
func (s *Scene) AddQuadLight(corner, u, v core.Vec3, radiance core.Vec3) *lights.QuadLight {
	light := lights.NewQuadLight(corner, u, v, radiance)
	s.lightList = append(s.lightList, light)
	s.Shapes = append(s.Shapes, light.Quad)
	return light
}

// AddPointLight adds a point light to the scene. Point lights have no
// geometry and never occlude.
func (s *Scene) AddPointLight(position, intensity core.Vec3) *lights.PointLight {
	light := lights.NewPointLight(position, intensity)
	s.lightList = append(s.lightList, light)
	return light
}

// Preprocess builds the BVH. Must be called after all shapes are added and
// before Intersect or WorldBound.
func (s *Scene) Preprocess() {
	s.BVH = geometry.NewBVH(s.Shapes)
}

// WorldBound returns the bounding box of all scene geometry
func (s *Scene) WorldBound() core.AABB {
	return s.BVH.WorldBound()
}

// Intersect finds the closest intersection of the ray with scene geometry
func (s *Scene) Intersect(ray core.Ray) (geometry.HitRecord, bool) {
	return s.BVH.Hit(ray, 0.001, 1e30)
}

// Occluded reports whether scene geometry blocks the ray before maxDist.
// The interval shrinks by an epsilon at both ends so the surfaces the
// segment connects do not shadow themselves.
func (s *Scene) Occluded(ray core.Ray, maxDist float64) bool {
	_, blocked := s.BVH.Hit(ray, 0.001, maxDist-0.001)
	return blocked
}

// Lights returns the lights in the scene
func (s *Scene) Lights() []lights.Light {
	return s.lightList
}

// builders maps scene names to constructors for the CLI and inspector
var builders = map[string]func() *Scene{
	"twolight-box": NewTwoLightBoxScene,
	"split-box":    NewSplitBoxScene,
	"point-grid":   NewPointGridScene,
}

// Names returns the sorted names of the built-in scenes
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load builds a named built-in scene, returning an error for unknown names
func Load(name string) (*Scene, error) {
	builder, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (have %v)", name, Names())
	}
	s := builder()
	s.Preprocess()
	return s, nil
}
