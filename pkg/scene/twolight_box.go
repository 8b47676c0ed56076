package scene

import (
	"github.com/df07/go-light-sampler/pkg/core"
	"github.com/df07/go-light-sampler/pkg/geometry"
)

// NewTwoLightBoxScene creates a box interior, open at the front (z=0), with
// two ceiling quad lights of different colors, one over each end of the box
func NewTwoLightBoxScene() *Scene {
	s := &Scene{}

	boxSize := 555.0

	// Floor - XZ plane at y=0
	s.AddShape(geometry.NewQuad(
		core.NewVec3(0, 0, 0),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, 0, boxSize),
	))

	// Ceiling - XZ plane at y=boxSize
	s.AddShape(geometry.NewQuad(
		core.NewVec3(0, boxSize, 0),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, 0, boxSize),
	))

	// Back wall - XY plane at z=boxSize
	s.AddShape(geometry.NewQuad(
		core.NewVec3(0, 0, boxSize),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, boxSize, 0),
	))

	// Left wall - YZ plane at x=0
	s.AddShape(geometry.NewQuad(
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, 0, boxSize),
		core.NewVec3(0, boxSize, 0),
	))

	// Right wall - YZ plane at x=boxSize
	s.AddShape(geometry.NewQuad(
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, boxSize, 0),
		core.NewVec3(0, 0, boxSize),
	))

	// Two ceiling lights, one warm over the left end and one cool over the
	// right end. Corners slightly below the ceiling, u x v pointing down.
	lightSize := 130.0
	lightY := boxSize - 1

	s.AddQuadLight(
		core.NewVec3(60, lightY, (boxSize-lightSize)/2),
		core.NewVec3(lightSize, 0, 0),
		core.NewVec3(0, 0, lightSize),
		core.NewVec3(18, 12, 6),
	)
	s.AddQuadLight(
		core.NewVec3(boxSize-60-lightSize, lightY, (boxSize-lightSize)/2),
		core.NewVec3(lightSize, 0, 0),
		core.NewVec3(0, 0, lightSize),
		core.NewVec3(6, 10, 18),
	)

	return s
}
