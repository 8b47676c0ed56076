package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-light-sampler/pkg/core"
)

func TestQuadHit(t *testing.T) {
	// Unit quad in the XY plane at z=0, facing +Z
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0))

	tests := []struct {
		name    string
		ray     core.Ray
		wantHit bool
		wantT   float64
	}{
		{
			name:    "ray hits quad center",
			ray:     core.NewRay(core.NewVec3(0.5, 0.5, 2), core.NewVec3(0, 0, -1)),
			wantHit: true,
			wantT:   2.0,
		},
		{
			name:    "ray hits quad corner",
			ray:     core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1)),
			wantHit: true,
			wantT:   1.0,
		},
		{
			name:    "ray misses quad outside bounds",
			ray:     core.NewRay(core.NewVec3(1.5, 0.5, 2), core.NewVec3(0, 0, -1)),
			wantHit: false,
		},
		{
			name:    "ray parallel to quad",
			ray:     core.NewRay(core.NewVec3(0.5, 0.5, 1), core.NewVec3(1, 0, 0)),
			wantHit: false,
		},
		{
			name:    "hit from behind still reported",
			ray:     core.NewRay(core.NewVec3(0.5, 0.5, -2), core.NewVec3(0, 0, 1)),
			wantHit: true,
			wantT:   2.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := quad.Hit(tt.ray, 0.001, math.Inf(1))
			if isHit != tt.wantHit {
				t.Fatalf("Hit() = %v, want %v", isHit, tt.wantHit)
			}
			if tt.wantHit && math.Abs(hit.T-tt.wantT) > 1e-9 {
				t.Errorf("T = %v, want %v", hit.T, tt.wantT)
			}
		})
	}
}

func TestQuadBoundingBoxHasVolume(t *testing.T) {
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0))
	box := quad.BoundingBox()

	if !box.IsValid() {
		t.Fatalf("bounding box invalid: [%v, %v]", box.Min, box.Max)
	}
	if size := box.Size(); size.Z <= 0 {
		t.Errorf("thin axis should be padded, got size %v", size)
	}
}
