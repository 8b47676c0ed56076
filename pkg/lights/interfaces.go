package lights

import "github.com/df07/go-light-sampler/pkg/core"

type LightType string

const (
	LightTypeArea  LightType = "area"
	LightTypePoint LightType = "point"
)

// Light interface for objects that can be sampled for direct lighting and
// for emission (photon shooting)
type Light interface {
	Type() LightType

	// Sample samples light toward a specific point for direct lighting.
	// Returns LightSample with direction FROM shading point TO light.
	Sample(point core.Vec3, normal core.Vec3, sample core.Vec2) LightSample

	// PDF calculates the probability density for sampling a given direction
	// toward the light from the shading point
	PDF(point core.Vec3, normal core.Vec3, direction core.Vec3) float64

	// SampleEmission samples a ray leaving the light surface, with separate
	// position and direction densities
	SampleEmission(samplePoint core.Vec2, sampleDirection core.Vec2) EmissionSample

	// EmissionPDF returns the position and direction densities that
	// SampleEmission would have assigned to the given emission ray
	EmissionPDF(point core.Vec3, direction core.Vec3) (pdfPos, pdfDir float64)

	// Power returns the total emitted power of the light as an RGB value
	Power() core.Vec3
}

// LightSample contains information about a sampled point on a light
type LightSample struct {
	Point     core.Vec3 // Point on the light source
	Normal    core.Vec3 // Normal at the light sample point
	Direction core.Vec3 // Direction from shading point to light
	Distance  float64   // Distance to light
	Emission  core.Vec3 // Emitted light arriving at the shading point
	PDF       float64   // Probability density of this sample (solid angle)
}

// EmissionSample contains information about a sampled emission ray
type EmissionSample struct {
	Point        core.Vec3 // Point on the light surface
	Normal       core.Vec3 // Surface normal at the emission point (outward facing)
	Direction    core.Vec3 // Emission direction FROM the surface
	Emission     core.Vec3 // Emitted radiance at this point and direction
	AreaPDF      float64   // PDF for position sampling (per unit area)
	DirectionPDF float64   // PDF for direction sampling (per unit solid angle)
}

// Ray returns the emission ray leaving the light
func (es EmissionSample) Ray() core.Ray {
	return core.NewRay(es.Point, es.Direction)
}
