package scene

import (
	"github.com/df07/go-light-sampler/pkg/core"
	"github.com/df07/go-light-sampler/pkg/geometry"
)

// NewPointGridScene creates an open floor with a 4x4 grid of point lights
// hovering above it. With many delta lights, distance-aware sampling should
// concentrate probability on the nearest lights.
func NewPointGridScene() *Scene {
	s := &Scene{}

	floorSize := 800.0

	// Floor - XZ plane at y=0
	s.AddShape(geometry.NewQuad(
		core.NewVec3(0, 0, 0),
		core.NewVec3(floorSize, 0, 0),
		core.NewVec3(0, 0, floorSize),
	))

	// A few occluders scattered on the floor
	s.AddShape(geometry.NewSphere(core.NewVec3(200, 50, 200), 50))
	s.AddShape(geometry.NewBox(
		core.NewVec3(500, 0, 450),
		core.NewVec3(620, 120, 570),
	))

	// 4x4 grid of point lights at y=300
	const gridN = 4
	spacing := floorSize / float64(gridN+1)
	for i := 1; i <= gridN; i++ {
		for j := 1; j <= gridN; j++ {
			s.AddPointLight(
				core.NewVec3(float64(i)*spacing, 300, float64(j)*spacing),
				core.NewVec3(50000, 50000, 50000),
			)
		}
	}

	return s
}
