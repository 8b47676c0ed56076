package scene

import (
	"testing"

	"github.com/df07/go-light-sampler/pkg/core"
)

func TestLoadBuiltinScenes(t *testing.T) {
	tests := []struct {
		name       string
		lightCount int
	}{
		{"twolight-box", 2},
		{"split-box", 2},
		{"point-grid", 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Load(tt.name)
			if err != nil {
				t.Fatalf("Load(%q) error: %v", tt.name, err)
			}
			if got := len(s.Lights()); got != tt.lightCount {
				t.Errorf("light count = %d, want %d", got, tt.lightCount)
			}
			if !s.WorldBound().IsValid() {
				t.Error("world bound should be valid")
			}
		})
	}
}

func TestLoadUnknownScene(t *testing.T) {
	if _, err := Load("no-such-scene"); err == nil {
		t.Fatal("expected an error for an unknown scene name")
	}
}

func TestSplitBoxDividerOccludes(t *testing.T) {
	s, err := Load("split-box")
	if err != nil {
		t.Fatal(err)
	}

	// A ray from the left compartment toward the right compartment must hit
	// the divider wall near x=277.5
	origin := core.NewVec3(100, 100, 277)
	ray := core.NewRay(origin, core.NewVec3(1, 0, 0))
	hit, found := s.Intersect(ray)
	if !found {
		t.Fatal("ray toward the divider should hit")
	}
	if hit.Point.X < 270 || hit.Point.X > 285 {
		t.Errorf("hit at x=%v, want the divider near 277.5", hit.Point.X)
	}
}

func TestTwoLightBoxCeilingLightVisible(t *testing.T) {
	s, err := Load("twolight-box")
	if err != nil {
		t.Fatal(err)
	}

	// Straight up from under the left light: first hit is the light quad,
	// one unit below the ceiling
	light := s.Lights()[0]
	sample := light.Sample(core.NewVec3(125, 0, 277.5), core.NewVec3(0, 1, 0), core.NewVec2(0.5, 0.5))

	ray := core.NewRay(core.NewVec3(125, 0, 277.5), sample.Direction)
	hit, found := s.Intersect(ray)
	if !found {
		t.Fatal("ray toward the light should hit")
	}
	if hit.Point.Subtract(sample.Point).Length() > 1e-6 {
		t.Errorf("first hit %v should be the sampled light point %v", hit.Point, sample.Point)
	}
}
