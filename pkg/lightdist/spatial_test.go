package lightdist

import (
	"math"
	"sync"
	"testing"

	"github.com/df07/go-light-sampler/pkg/core"
)

func TestSpatialPrefersNearbyLight(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxVoxels = 8
	sc := twoRoomScene()
	s := NewSpatial(cfg, sc)

	// Occlusion is ignored, but the squared falloff still makes the light in
	// the same room dominate
	d := s.Lookup(core.NewVec3(0.5, 0.5, 0.5), core.NewVec3(0, 1, 0))
	defer d.Release()
	if got := d.DiscretePDF(0); got < 0.8 {
		t.Errorf("near light 0: DiscretePDF(0) = %v, want > 0.8", got)
	}
	if got := d.DiscretePDF(1); got <= 0 {
		t.Errorf("distant light keeps zero probability, want a positive floor")
	}

	// Symmetric query in the other room
	d2 := s.Lookup(core.NewVec3(2.5, 0.5, 0.5), core.NewVec3(0, 1, 0))
	defer d2.Release()
	if got := d2.DiscretePDF(1); got < 0.8 {
		t.Errorf("near light 1: DiscretePDF(1) = %v, want > 0.8", got)
	}
}

func TestSpatialBuildsEachVoxelOnce(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxVoxels = 4
	s := NewSpatial(cfg, twoRoomScene())
	p := core.NewVec3(0.5, 0.5, 0.5)

	// Concurrent lookups of the same voxel must all observe the one
	// distribution the winning claimant published
	const workers = 32
	results := make([]*core.Distribution1D, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			d := s.Lookup(p, core.NewVec3(0, 1, 0))
			defer d.Release()
			results[w] = d.(owned).Distribution.(*core.Distribution1D)
		}(w)
	}
	wg.Wait()

	for w := 1; w < workers; w++ {
		if results[w] != results[0] {
			t.Fatalf("worker %d got a different distribution instance for the same voxel", w)
		}
	}
	if built := s.Stats().DistributionsBuilt; built != 1 {
		t.Errorf("distributions built = %d, want 1", built)
	}
}

func TestSpatialOutOfBoundsQueryClamps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxVoxels = 4
	s := NewSpatial(cfg, twoRoomScene())

	d := s.Lookup(core.NewVec3(-100, -100, -100), core.NewVec3(0, 1, 0))
	defer d.Release()
	if sum := pdfSum(d); math.Abs(sum-1) > 1e-9 {
		t.Errorf("out-of-bounds lookup PDFs sum to %v, want 1", sum)
	}
}

func TestSpatialDistinctVoxelsGetDistinctDistributions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxVoxels = 8
	s := NewSpatial(cfg, twoRoomScene())

	a := s.Lookup(core.NewVec3(0.5, 0.5, 0.5), core.NewVec3(0, 1, 0))
	defer a.Release()
	b := s.Lookup(core.NewVec3(2.5, 0.5, 0.5), core.NewVec3(0, 1, 0))
	defer b.Release()

	if a.(owned).Distribution == b.(owned).Distribution {
		t.Error("queries in different rooms share one distribution instance")
	}
	if built := s.Stats().DistributionsBuilt; built != 2 {
		t.Errorf("distributions built = %d, want 2", built)
	}
}
