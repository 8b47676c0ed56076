package scene

import (
	"github.com/df07/go-light-sampler/pkg/core"
	"github.com/df07/go-light-sampler/pkg/geometry"
)

// NewSplitBoxScene creates a box interior divided by a full-height wall into
// two compartments, each with its own ceiling light. A point in one
// compartment receives illumination only from its own light, so a spatially
// varying sampler should learn near-zero probability for the far light.
func NewSplitBoxScene() *Scene {
	s := &Scene{}

	boxSize := 555.0

	// Floor
	s.AddShape(geometry.NewQuad(
		core.NewVec3(0, 0, 0),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, 0, boxSize),
	))

	// Ceiling
	s.AddShape(geometry.NewQuad(
		core.NewVec3(0, boxSize, 0),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, 0, boxSize),
	))

	// Back wall
	s.AddShape(geometry.NewQuad(
		core.NewVec3(0, 0, boxSize),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, boxSize, 0),
	))

	// Front wall
	s.AddShape(geometry.NewQuad(
		core.NewVec3(0, 0, 0),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, boxSize, 0),
	))

	// Side walls
	s.AddShape(geometry.NewQuad(
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, 0, boxSize),
		core.NewVec3(0, boxSize, 0),
	))
	s.AddShape(geometry.NewQuad(
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, boxSize, 0),
		core.NewVec3(0, 0, boxSize),
	))

	// Divider: full-height thin box at x=boxSize/2 separating the halves
	s.AddShape(geometry.NewBox(
		core.NewVec3(boxSize/2-1, 0, 0),
		core.NewVec3(boxSize/2+1, boxSize, boxSize),
	))

	// One ceiling light per compartment
	lightSize := 130.0
	lightY := boxSize - 1

	s.AddQuadLight(
		core.NewVec3((boxSize/2-lightSize)/2, lightY, (boxSize-lightSize)/2),
		core.NewVec3(lightSize, 0, 0),
		core.NewVec3(0, 0, lightSize),
		core.NewVec3(15, 15, 15),
	)
	s.AddQuadLight(
		core.NewVec3(boxSize/2+(boxSize/2-lightSize)/2, lightY, (boxSize-lightSize)/2),
		core.NewVec3(lightSize, 0, 0),
		core.NewVec3(0, 0, lightSize),
		core.NewVec3(15, 15, 15),
	)

	return s
}
