package lights

import (
	"math"

	"github.com/df07/go-light-sampler/pkg/core"
)

// PointLight represents an isotropic point light emitting uniformly in all
// directions with the given intensity (power per unit solid angle)
type PointLight struct {
	Position  core.Vec3
	Intensity core.Vec3
}

// NewPointLight creates a new point light
func NewPointLight(position, intensity core.Vec3) *PointLight {
	return &PointLight{Position: position, Intensity: intensity}
}

func (pl *PointLight) Type() LightType {
	return LightTypePoint
}

// Sample implements the Light interface. A point light is a delta
// distribution, so the sample is deterministic with PDF 1 and the arriving
// radiance falls off with the squared distance.
func (pl *PointLight) Sample(point core.Vec3, normal core.Vec3, sample core.Vec2) LightSample {
	toLight := pl.Position.Subtract(point)
	distance := toLight.Length()
	if distance == 0 {
		return LightSample{Point: pl.Position, PDF: 1.0}
	}
	direction := toLight.Multiply(1.0 / distance)

	return LightSample{
		Point:     pl.Position,
		Normal:    direction.Negate(),
		Direction: direction,
		Distance:  distance,
		Emission:  pl.Intensity.Multiply(1.0 / (distance * distance)),
		PDF:       1.0,
	}
}

// PDF implements the Light interface. Delta lights can never be hit by a
// sampled direction, so the density is zero.
func (pl *PointLight) PDF(point, normal, direction core.Vec3) float64 {
	return 0.0
}

// SampleEmission implements the Light interface - emits a photon ray in a
// uniformly sampled sphere direction
func (pl *PointLight) SampleEmission(samplePoint core.Vec2, sampleDirection core.Vec2) EmissionSample {
	direction := core.SampleOnUnitSphere(sampleDirection)

	return EmissionSample{
		Point: pl.Position,
		// Delta position: align the normal with the ray so the cosine term is 1
		Normal:       direction,
		Direction:    direction,
		Emission:     pl.Intensity,
		AreaPDF:      1.0,
		DirectionPDF: 1.0 / (4.0 * math.Pi),
	}
}

// EmissionPDF implements the Light interface
func (pl *PointLight) EmissionPDF(point core.Vec3, direction core.Vec3) (pdfPos, pdfDir float64) {
	return 1.0, 1.0 / (4.0 * math.Pi)
}

// Power implements the Light interface - intensity integrated over the full
// sphere of directions
func (pl *PointLight) Power() core.Vec3 {
	return pl.Intensity.Multiply(4.0 * math.Pi)
}
