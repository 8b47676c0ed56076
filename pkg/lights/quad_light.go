package lights

import (
	"math"

	"github.com/df07/go-light-sampler/pkg/core"
	"github.com/df07/go-light-sampler/pkg/geometry"
)

// QuadLight represents a rectangular area light with constant radiance,
// emitting from its front face only
type QuadLight struct {
	*geometry.Quad           // Embed quad for hit testing
	Radiance       core.Vec3 // Emitted radiance from the front face
	Area           float64   // Cached area for PDF calculations
}

// NewQuadLight creates a new quad light
func NewQuadLight(corner, u, v core.Vec3, radiance core.Vec3) *QuadLight {
	quad := geometry.NewQuad(corner, u, v)

	// Area of the quad: |u × v|
	area := u.Cross(v).Length()

	return &QuadLight{Quad: quad, Radiance: radiance, Area: area}
}

func (ql *QuadLight) Type() LightType {
	return LightTypeArea
}

// Sample implements the Light interface - samples a point on the quad for direct lighting
func (ql *QuadLight) Sample(point core.Vec3, normal core.Vec3, sample core.Vec2) LightSample {
	// Sample uniformly on the quad surface
	samplePoint := ql.Corner.Add(ql.U.Multiply(sample.X)).Add(ql.V.Multiply(sample.Y))

	toLight := samplePoint.Subtract(point)
	distance := toLight.Length()
	if distance == 0 {
		return LightSample{Point: samplePoint, Normal: ql.Normal}
	}
	direction := toLight.Multiply(1.0 / distance)

	// Convert the uniform area PDF into a solid angle PDF:
	// PDF_solid_angle = PDF_area * distance² / |cos(θ)|
	cosTheta := math.Abs(ql.Normal.Dot(direction.Negate()))
	if cosTheta < 1e-8 {
		// Light is edge-on, no contribution
		return LightSample{
			Point:     samplePoint,
			Normal:    ql.Normal,
			Direction: direction,
			Distance:  distance,
		}
	}
	solidAnglePDF := distance * distance / (ql.Area * cosTheta)

	// Only the front face emits; the ray direction must oppose the normal
	var emission core.Vec3
	if direction.Dot(ql.Normal) < 0 {
		emission = ql.Radiance
	}

	return LightSample{
		Point:     samplePoint,
		Normal:    ql.Normal,
		Direction: direction,
		Distance:  distance,
		Emission:  emission,
		PDF:       solidAnglePDF,
	}
}

// PDF implements the Light interface - returns the solid angle density for
// sampling the given direction toward the quad
func (ql *QuadLight) PDF(point, normal, direction core.Vec3) float64 {
	ray := core.NewRay(point, direction)
	hitRecord, hit := ql.Quad.Hit(ray, 0.001, math.Inf(1))
	if !hit {
		return 0.0
	}

	distance := hitRecord.T
	cosTheta := math.Abs(ql.Normal.Dot(direction.Negate()))
	if cosTheta < 1e-8 {
		return 0.0
	}
	return distance * distance / (ql.Area * cosTheta)
}

// SampleEmission implements the Light interface - samples a photon ray
// leaving the quad surface with a cosine-weighted direction
func (ql *QuadLight) SampleEmission(samplePoint core.Vec2, sampleDirection core.Vec2) EmissionSample {
	point := ql.Corner.Add(ql.U.Multiply(samplePoint.X)).Add(ql.V.Multiply(samplePoint.Y))
	emissionDir := core.SampleCosineHemisphere(ql.Normal, sampleDirection)

	areaPDF := 1.0 / ql.Area

	// Cosine-weighted hemisphere: PDF = cos(θ)/π
	cosTheta := emissionDir.Dot(ql.Normal)
	directionPDF := cosTheta / math.Pi

	return EmissionSample{
		Point:        point,
		Normal:       ql.Normal,
		Direction:    emissionDir,
		Emission:     ql.Radiance,
		AreaPDF:      areaPDF,
		DirectionPDF: directionPDF,
	}
}

// EmissionPDF implements the Light interface - returns the densities
// SampleEmission would assign to an emission ray from the given point
func (ql *QuadLight) EmissionPDF(point core.Vec3, direction core.Vec3) (pdfPos, pdfDir float64) {
	if !ql.containsPoint(point) {
		return 0.0, 0.0
	}

	pdfPos = 1.0 / ql.Area

	cosTheta := direction.Dot(ql.Normal)
	if cosTheta <= 0 {
		return pdfPos, 0.0
	}
	return pdfPos, cosTheta / math.Pi
}

// containsPoint reports whether the point lies on the quad surface by
// solving point = corner + alpha*u + beta*v
func (ql *QuadLight) containsPoint(point core.Vec3) bool {
	toPoint := point.Subtract(ql.Corner)

	uDotU := ql.U.Dot(ql.U)
	vDotV := ql.V.Dot(ql.V)
	uDotV := ql.U.Dot(ql.V)
	if uDotU == 0 || vDotV == 0 {
		return false
	}

	det := uDotU*vDotV - uDotV*uDotV
	if math.Abs(det) < 1e-8 {
		return false
	}

	toDotU := toPoint.Dot(ql.U)
	toDotV := toPoint.Dot(ql.V)
	alpha := (vDotV*toDotU - uDotV*toDotV) / det
	beta := (uDotU*toDotV - uDotV*toDotU) / det
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return false
	}

	reconstructed := ql.Corner.Add(ql.U.Multiply(alpha)).Add(ql.V.Multiply(beta))
	return reconstructed.Subtract(point).Length() <= 0.001
}

// Power implements the Light interface - for a one-sided Lambertian emitter
// the total power is radiance * area * π
func (ql *QuadLight) Power() core.Vec3 {
	return ql.Radiance.Multiply(ql.Area * math.Pi)
}
