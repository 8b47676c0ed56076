package lightdist

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/df07/go-light-sampler/pkg/core"
)

func TestShootPhotonsDeterministic(t *testing.T) {
	sc := twoRoomScene()
	distrib := core.NewUniformDistribution1D(len(sc.Lights()))

	a := shootPhotons(sc, distrib, 2000)
	b := shootPhotons(sc, distrib, 2000)
	if diff := cmp.Diff(a, b, cmp.AllowUnexported(photon{})); diff != "" {
		t.Errorf("two photon passes over the same scene differ (-first +second):\n%s", diff)
	}
}

func TestShootPhotonsStayInOwnRoom(t *testing.T) {
	// The rooms are closed boxes, so a photon from light i can only land on
	// walls of room i
	sc := twoRoomScene()
	distrib := core.NewUniformDistribution1D(len(sc.Lights()))
	photons := shootPhotons(sc, distrib, 2000)

	hits := 0
	for _, ph := range photons {
		if !ph.valid() {
			continue
		}
		hits++
		inRoom0 := ph.pos.X <= 1.001
		if ph.lightNum == 0 && !inRoom0 {
			t.Fatalf("photon from light 0 landed at %v outside its room", ph.pos)
		}
		if ph.lightNum == 1 && inRoom0 {
			t.Fatalf("photon from light 1 landed at %v outside its room", ph.pos)
		}
		if ph.beta <= 0 {
			t.Fatalf("surface photon with nonpositive throughput %v", ph.beta)
		}
	}
	// Lights sit inside closed boxes, nearly every photon should land
	if hits < 1900 {
		t.Errorf("only %d of 2000 photons hit a surface in a closed scene", hits)
	}
}

func TestShootPhotonsMissSentinel(t *testing.T) {
	sc := newOpenScene()
	distrib := core.NewUniformDistribution1D(len(sc.Lights()))
	photons := shootPhotons(sc, distrib, 500)

	misses := 0
	for _, ph := range photons {
		if ph.valid() {
			continue
		}
		misses++
		if ph.lightNum != missLightNum {
			t.Fatalf("missed photon has light index %d, want %d", ph.lightNum, missLightNum)
		}
		if ph.pos != photonMissPos {
			t.Fatalf("missed photon has position %v, want the miss sentinel", ph.pos)
		}
	}
	if misses < 490 {
		t.Errorf("only %d of 500 photons missed in a nearly empty scene", misses)
	}
}

func TestShootPhotonsPowerSampling(t *testing.T) {
	// Power-proportional light selection sends roughly 3x the photons from
	// the brighter light
	sc := unequalPowerScene()
	distrib, err := photonLightDistribution("power", sc.Lights())
	if err != nil {
		t.Fatalf("photonLightDistribution: %v", err)
	}

	const count = 4000
	fromBright := 0
	for i := uint64(0); i < count; i++ {
		lightNum, _ := distrib.SampleDiscrete(core.RadicalInverse(0, i))
		if lightNum == 1 {
			fromBright++
		}
	}
	frac := float64(fromBright) / count
	if frac < 0.70 || frac > 0.80 {
		t.Errorf("bright light drew %.3f of photons, want about 0.75", frac)
	}
}

func TestShootPhotonsFromDirUnit(t *testing.T) {
	sc := twoRoomScene()
	distrib := core.NewUniformDistribution1D(len(sc.Lights()))
	for _, ph := range shootPhotons(sc, distrib, 500) {
		if !ph.valid() {
			continue
		}
		if l := ph.fromDir.Length(); math.Abs(l-1) > 1e-9 {
			t.Fatalf("fromDir %v has length %v, want 1", ph.fromDir, l)
		}
	}
}
