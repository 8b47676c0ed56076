package lightdist

import (
	"math"
	"testing"

	"github.com/df07/go-light-sampler/pkg/core"
)

func TestPhotonVoxelRoomExclusive(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Strategy = "photonvoxel"
	cfg.PhotonCount = 5000
	cfg.MaxVoxels = 8
	cfg.InterpolateCDF = false
	d, err := NewPhotonVoxel(cfg, twoRoomScene())
	if err != nil {
		t.Fatalf("NewPhotonVoxel: %v", err)
	}

	// Photons cannot cross the closed rooms, so a room-0 voxel only ever saw
	// light 0 and its probability is the full sparse mass plus half the floor
	dist := d.Lookup(core.NewVec3(0.5, 0.1, 0.5), core.NewVec3(0, 1, 0))
	defer dist.Release()
	wantDominant := 1 - cfg.MinContributionScale/2
	if got := dist.DiscretePDF(0); math.Abs(got-wantDominant) > 1e-9 {
		t.Errorf("room 0 voxel: DiscretePDF(0) = %v, want %v", got, wantDominant)
	}
	wantFloor := cfg.MinContributionScale / 2
	if got := dist.DiscretePDF(1); math.Abs(got-wantFloor) > 1e-9 {
		t.Errorf("room 0 voxel: DiscretePDF(1) = %v, want floor %v", got, wantFloor)
	}

	dist2 := d.Lookup(core.NewVec3(2.5, 0.1, 0.5), core.NewVec3(0, 1, 0))
	defer dist2.Release()
	if got := dist2.DiscretePDF(1); math.Abs(got-wantDominant) > 1e-9 {
		t.Errorf("room 1 voxel: DiscretePDF(1) = %v, want %v", got, wantDominant)
	}
}

func TestPhotonVoxelInterpolatedLookup(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PhotonCount = 5000
	cfg.MaxVoxels = 8
	cfg.InterpolateCDF = true
	d, err := NewPhotonVoxel(cfg, twoRoomScene())
	if err != nil {
		t.Fatalf("NewPhotonVoxel: %v", err)
	}

	// An off-center query blends neighbor voxels; the result is still a
	// normalized distribution and light 0 still dominates inside room 0
	dist := d.Lookup(core.NewVec3(0.4, 0.3, 0.6), core.NewVec3(0, 1, 0))
	if sum := pdfSum(dist); math.Abs(sum-1) > 1e-9 {
		t.Errorf("interpolated PDFs sum to %v, want 1", sum)
	}
	if got := dist.DiscretePDF(0); got < 0.8 {
		t.Errorf("interpolated room 0 query: DiscretePDF(0) = %v, want > 0.8", got)
	}
	dist.Release()

	// Released transients are recycled; the next lookup must start clean
	dist2 := d.Lookup(core.NewVec3(2.6, 0.3, 0.4), core.NewVec3(0, 1, 0))
	defer dist2.Release()
	if got := dist2.DiscretePDF(1); got < 0.8 {
		t.Errorf("reused transient in room 1: DiscretePDF(1) = %v, want > 0.8", got)
	}
	if sum := pdfSum(dist2); math.Abs(sum-1) > 1e-9 {
		t.Errorf("reused transient PDFs sum to %v, want 1", sum)
	}
}

func TestPhotonVoxelAllPhotonsMiss(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PhotonCount = 500
	cfg.MaxVoxels = 4
	cfg.InterpolateCDF = false
	d, err := NewPhotonVoxel(cfg, newOpenScene())
	if err != nil {
		t.Fatalf("NewPhotonVoxel: %v", err)
	}

	// With no populated voxels every lookup falls back to uniform
	dist := d.Lookup(core.NewVec3(0.5, 0, 0), core.NewVec3(0, 1, 0))
	defer dist.Release()
	for i := 0; i < dist.Count(); i++ {
		if got := dist.DiscretePDF(i); math.Abs(got-0.5) > 1e-12 {
			t.Errorf("empty-scene fallback: DiscretePDF(%d) = %v, want 0.5", i, got)
		}
	}
}

func TestPhotonVoxelEdgeQueryStaysNormalized(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PhotonCount = 2000
	cfg.MaxVoxels = 4
	cfg.InterpolateCDF = true
	d, err := NewPhotonVoxel(cfg, twoRoomScene())
	if err != nil {
		t.Fatalf("NewPhotonVoxel: %v", err)
	}

	// Corner-of-world queries lean toward neighbors outside the grid, whose
	// share stays with the in-grid cells
	for _, p := range []core.Vec3{
		core.NewVec3(0.01, 0.01, 0.01),
		core.NewVec3(2.99, 0.99, 0.99),
		core.NewVec3(-10, 50, 0),
	} {
		dist := d.Lookup(p, core.NewVec3(0, 1, 0))
		if sum := pdfSum(dist); math.Abs(sum-1) > 1e-9 {
			t.Errorf("query at %v: PDFs sum to %v, want 1", p, sum)
		}
		dist.Release()
	}
}
