package lightdist

import (
	"github.com/df07/go-light-sampler/pkg/core"
	"github.com/df07/go-light-sampler/pkg/geometry"
	"github.com/df07/go-light-sampler/pkg/scene"
)

// twoRoomScene builds two closed unit boxes, each with one point light
// inside. Photons from a light can only hit its own room's walls, so
// photon-based strategies should learn near-exclusive probabilities per
// room.
func twoRoomScene() *scene.Scene {
	s := &scene.Scene{}
	s.AddShape(geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1)))
	s.AddShape(geometry.NewBox(core.NewVec3(2, 0, 0), core.NewVec3(3, 1, 1)))
	s.AddPointLight(core.NewVec3(0.5, 0.5, 0.5), core.NewVec3(10, 10, 10))
	s.AddPointLight(core.NewVec3(2.5, 0.5, 0.5), core.NewVec3(10, 10, 10))
	s.Preprocess()
	return s
}

// unequalPowerScene has two point lights with a 1:3 power ratio above a
// floor quad
func unequalPowerScene() *scene.Scene {
	s := &scene.Scene{}
	s.AddShape(geometry.NewQuad(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 0, 1),
	))
	s.AddPointLight(core.NewVec3(0.3, 0.5, 0.5), core.NewVec3(1, 1, 1))
	s.AddPointLight(core.NewVec3(0.7, 0.5, 0.5), core.NewVec3(3, 3, 3))
	s.Preprocess()
	return s
}

// singleLightScene has one quad light over a floor
func singleLightScene() *scene.Scene {
	s := &scene.Scene{}
	s.AddShape(geometry.NewQuad(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 0, 1),
	))
	s.AddQuadLight(
		core.NewVec3(0.4, 1, 0.4),
		core.NewVec3(0.2, 0, 0),
		core.NewVec3(0, 0, 0.2),
		core.NewVec3(5, 5, 5),
	)
	s.Preprocess()
	return s
}

// newOpenScene has two point lights and a single tiny distant shape, so
// nearly every photon escapes without hitting anything
func newOpenScene() *scene.Scene {
	s := &scene.Scene{}
	// A tiny sphere far from both lights; almost no photon reaches it
	s.AddShape(geometry.NewSphere(core.NewVec3(1000, 1000, 1000), 0.01))
	s.AddPointLight(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1))
	s.AddPointLight(core.NewVec3(1, 0, 0), core.NewVec3(1, 1, 1))
	s.Preprocess()
	return s
}

// pdfSum adds DiscretePDF over the whole domain
func pdfSum(d Distribution) float64 {
	sum := 0.0
	for i := 0; i < d.Count(); i++ {
		sum += d.DiscretePDF(i)
	}
	return sum
}
