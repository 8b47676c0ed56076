package lights

import (
	"math"
	"testing"

	"github.com/df07/go-light-sampler/pkg/core"
)

func TestComputeLightPowerDistribution(t *testing.T) {
	// A bright quad and a dim point light: sampling should strongly favor
	// the quad in proportion to emitted power
	bright := NewQuadLight(
		core.NewVec3(0, 2, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 0, 1),
		core.NewVec3(100, 100, 100),
	)
	dim := NewPointLight(core.NewVec3(3, 1, 0), core.NewVec3(1, 1, 1))

	dist := ComputeLightPowerDistribution([]Light{bright, dim})
	if dist == nil {
		t.Fatal("distribution should not be nil for a non-empty light list")
	}
	if dist.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", dist.Count())
	}

	brightPower := bright.Power().Luminance()
	dimPower := dim.Power().Luminance()
	wantBright := brightPower / (brightPower + dimPower)

	if got := dist.DiscretePDF(0); math.Abs(got-wantBright) > 1e-9 {
		t.Errorf("DiscretePDF(0) = %v, want %v", got, wantBright)
	}
	if got := dist.DiscretePDF(1); math.Abs(got-(1-wantBright)) > 1e-9 {
		t.Errorf("DiscretePDF(1) = %v, want %v", got, 1-wantBright)
	}
}

func TestComputeLightPowerDistributionEmpty(t *testing.T) {
	if dist := ComputeLightPowerDistribution(nil); dist != nil {
		t.Errorf("empty light list should yield nil, got %v", dist)
	}
}
