package lights

import (
	"math"
	"testing"

	"github.com/df07/go-light-sampler/pkg/core"
)

func TestPointLightSample(t *testing.T) {
	light := NewPointLight(core.NewVec3(0, 4, 0), core.NewVec3(100, 100, 100))

	sample := light.Sample(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), core.NewVec2(0.5, 0.5))

	if sample.Point != light.Position {
		t.Errorf("sample point = %v, want light position %v", sample.Point, light.Position)
	}
	if math.Abs(sample.Distance-4.0) > 1e-9 {
		t.Errorf("distance = %v, want 4", sample.Distance)
	}
	if sample.PDF != 1.0 {
		t.Errorf("delta light PDF = %v, want 1", sample.PDF)
	}

	// Inverse square falloff: 100 / 16
	wantEmission := core.NewVec3(6.25, 6.25, 6.25)
	if sample.Emission.Subtract(wantEmission).Length() > 1e-9 {
		t.Errorf("emission = %v, want %v", sample.Emission, wantEmission)
	}
}

func TestPointLightPDFIsZero(t *testing.T) {
	light := NewPointLight(core.NewVec3(0, 4, 0), core.NewVec3(100, 100, 100))

	pdf := light.PDF(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0))
	if pdf != 0 {
		t.Errorf("delta light can never be hit, PDF = %v, want 0", pdf)
	}
}

func TestPointLightSampleEmission(t *testing.T) {
	light := NewPointLight(core.NewVec3(1, 2, 3), core.NewVec3(50, 25, 10))

	samples := []core.Vec2{
		core.NewVec2(0.1, 0.2),
		core.NewVec2(0.5, 0.5),
		core.NewVec2(0.9, 0.8),
	}

	for _, s := range samples {
		sample := light.SampleEmission(core.NewVec2(0.5, 0.5), s)

		if sample.Point != light.Position {
			t.Errorf("emission point = %v, want %v", sample.Point, light.Position)
		}
		if math.Abs(sample.Direction.Length()-1.0) > 1e-9 {
			t.Errorf("direction %v should be unit length", sample.Direction)
		}
		if sample.AreaPDF != 1.0 {
			t.Errorf("area PDF = %v, want 1", sample.AreaPDF)
		}
		if math.Abs(sample.DirectionPDF-1.0/(4.0*math.Pi)) > 1e-12 {
			t.Errorf("direction PDF = %v, want uniform sphere %v", sample.DirectionPDF, 1.0/(4.0*math.Pi))
		}

		// Normal aligned with the direction keeps the cosine term at 1
		if math.Abs(sample.Normal.Dot(sample.Direction)-1.0) > 1e-9 {
			t.Errorf("normal %v should align with direction %v", sample.Normal, sample.Direction)
		}
	}
}

func TestPointLightPower(t *testing.T) {
	light := NewPointLight(core.NewVec3(0, 0, 0), core.NewVec3(2, 3, 5))

	want := core.NewVec3(2, 3, 5).Multiply(4 * math.Pi)
	if light.Power().Subtract(want).Length() > 1e-9 {
		t.Errorf("Power() = %v, want %v", light.Power(), want)
	}
}
