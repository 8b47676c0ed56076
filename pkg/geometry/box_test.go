package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-light-sampler/pkg/core"
)

func TestBoxHit(t *testing.T) {
	box := NewBox(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1))

	tests := []struct {
		name       string
		ray        core.Ray
		wantHit    bool
		wantT      float64
		wantNormal core.Vec3
	}{
		{
			name:       "hit -X face from outside",
			ray:        core.NewRay(core.NewVec3(-1, 0.5, 0.5), core.NewVec3(1, 0, 0)),
			wantHit:    true,
			wantT:      1.0,
			wantNormal: core.NewVec3(-1, 0, 0),
		},
		{
			name:       "hit +Y face from above",
			ray:        core.NewRay(core.NewVec3(0.5, 3, 0.5), core.NewVec3(0, -1, 0)),
			wantHit:    true,
			wantT:      2.0,
			wantNormal: core.NewVec3(0, 1, 0),
		},
		{
			name:    "miss to the side",
			ray:     core.NewRay(core.NewVec3(-1, 2, 0.5), core.NewVec3(1, 0, 0)),
			wantHit: false,
		},
		{
			name:    "ray starts inside, hits exit face",
			ray:     core.NewRay(core.NewVec3(0.5, 0.5, 0.5), core.NewVec3(0, 0, 1)),
			wantHit: true,
			wantT:   0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := box.Hit(tt.ray, 0.001, math.Inf(1))
			if isHit != tt.wantHit {
				t.Fatalf("Hit() = %v, want %v", isHit, tt.wantHit)
			}
			if !tt.wantHit {
				return
			}
			if math.Abs(hit.T-tt.wantT) > 1e-9 {
				t.Errorf("T = %v, want %v", hit.T, tt.wantT)
			}
			if tt.wantNormal != (core.Vec3{}) && hit.Normal != tt.wantNormal {
				t.Errorf("Normal = %v, want %v", hit.Normal, tt.wantNormal)
			}
		})
	}
}
