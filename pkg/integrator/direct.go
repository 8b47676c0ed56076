package integrator

import (
	"math"

	"github.com/df07/go-light-sampler/pkg/core"
	"github.com/df07/go-light-sampler/pkg/geometry"
	"github.com/df07/go-light-sampler/pkg/lightdist"
	"github.com/df07/go-light-sampler/pkg/lights"
)

// Scene is the view of the scene the integrator consumes
type Scene interface {
	Intersect(ray core.Ray) (geometry.HitRecord, bool)
	Occluded(ray core.Ray, maxDist float64) bool
	Lights() []lights.Light
}

// DirectLighting estimates direct illumination with one light sample per
// query. The light is chosen through a sampling strategy, so the estimator's
// variance directly reflects how well the strategy matches the scene.
type DirectLighting struct {
	scene   Scene
	distrib lightdist.LightDistribution
}

// NewDirectLighting creates a direct lighting estimator over the scene using
// the given light sampling strategy
func NewDirectLighting(sc Scene, distrib lightdist.LightDistribution) *DirectLighting {
	return &DirectLighting{scene: sc, distrib: distrib}
}

// Estimate returns the incident direct radiance at point p with surface
// normal n. uSelect drives the light choice, uLight the sample on the chosen
// light. The estimate divides by both sampling densities, so averaging over
// well-distributed samples converges to the true direct illumination.
func (dl *DirectLighting) Estimate(p, n core.Vec3, uSelect float64, uLight core.Vec2) core.Vec3 {
	sceneLights := dl.scene.Lights()
	if len(sceneLights) == 0 {
		return core.Vec3{}
	}

	dist := dl.distrib.Lookup(p, n)
	lightNum, selectPdf := dist.SampleDiscrete(uSelect)
	dist.Release()
	if selectPdf <= 0 {
		return core.Vec3{}
	}

	sample := sceneLights[lightNum].Sample(p, n, uLight)
	if sample.PDF <= 0 {
		return core.Vec3{}
	}
	cosine := sample.Direction.Dot(n)
	if cosine <= 0 {
		return core.Vec3{}
	}
	if dl.scene.Occluded(core.NewRay(p, sample.Direction), sample.Distance) {
		return core.Vec3{}
	}
	return sample.Emission.Multiply(cosine / (selectPdf * sample.PDF))
}

// EstimateSampled draws the selection and light samples from the sampler
func (dl *DirectLighting) EstimateSampled(p, n core.Vec3, sampler core.Sampler) core.Vec3 {
	return dl.Estimate(p, n, sampler.Get1D(), sampler.Get2D())
}

// Average runs the estimator over a low-discrepancy sample sequence and
// returns the mean. Results are deterministic for a given sample count.
func (dl *DirectLighting) Average(p, n core.Vec3, samples int) core.Vec3 {
	var sum core.Vec3
	for i := uint64(0); i < uint64(samples); i++ {
		uSelect := core.RadicalInverse(0, i)
		uLight := core.NewVec2(core.RadicalInverse(1, i), core.RadicalInverse(2, i))
		sum = sum.Add(dl.Estimate(p, n, uSelect, uLight))
	}
	return sum.Multiply(1 / float64(samples))
}

// RayColor traces the ray into the scene and shades the first hit as a white
// Lambertian surface lit directly
func (dl *DirectLighting) RayColor(ray core.Ray, uSelect float64, uLight core.Vec2) core.Vec3 {
	hit, found := dl.scene.Intersect(ray)
	if !found {
		return core.Vec3{}
	}
	return dl.Estimate(hit.Point, hit.Normal, uSelect, uLight).Multiply(1 / math.Pi)
}
