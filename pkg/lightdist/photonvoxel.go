package lightdist

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/golang/glog"

	"github.com/df07/go-light-sampler/pkg/core"
)

// PhotonVoxelLightDistribution accumulates photon throughput per voxel and
// light at construction, then answers lookups from frozen per-voxel sparse
// distributions, optionally blended with up to seven axis neighbors.
type PhotonVoxelLightDistribution struct {
	grid           voxelGrid
	table          []photonVoxelEntry
	defaultDistrib *core.SparseDistribution1D
	interpolate    bool
	nLights        int
	interpPool     *sync.Pool
	stats          Stats
}

// photonVoxelEntry is a hash slot. During shooting, writers claim the slot
// by CAS of the voxel key and accumulate under the slot's own mutex; the
// freeze pass then replaces the map with a read-only distribution.
type photonVoxelEntry struct {
	packedPos atomic.Uint64
	mu        sync.Mutex
	contrib   map[int]float64
	distrib   *core.SparseDistribution1D
}

// NewPhotonVoxel shoots photons into a voxel hash and freezes the result
// into per-voxel sparse distributions
func NewPhotonVoxel(cfg Config, sc Scene) (*PhotonVoxelLightDistribution, error) {
	if cfg.PhotonCount <= 0 {
		return nil, fmt.Errorf("photonvoxel: photon count must be positive, got %d", cfg.PhotonCount)
	}
	lightDistrib, err := photonLightDistribution(cfg.PhotonSampling, sc.Lights())
	if err != nil {
		return nil, fmt.Errorf("photonvoxel: %w", err)
	}

	grid := newVoxelGrid(sc.WorldBound(), cfg.MaxVoxels)
	d := &PhotonVoxelLightDistribution{
		grid:        grid,
		table:       make([]photonVoxelEntry, 4*grid.voxelCount()),
		interpolate: cfg.InterpolateCDF,
		nLights:     len(sc.Lights()),
		interpPool:  newInterpPool(),
	}
	for i := range d.table {
		d.table[i].packedPos.Store(invalidKey)
	}
	d.defaultDistrib = core.NewSparseDistribution1D(nil, cfg.MinContributionScale, d.nLights)

	photons := shootPhotons(sc, lightDistrib, cfg.PhotonCount)
	_ = core.ParallelFor(len(photons), photonChunkSize, func(start, end int) error {
		for _, ph := range photons[start:end] {
			if !ph.valid() {
				continue
			}
			d.accumulate(ph)
		}
		return nil
	})

	// Freeze pass: promote each claimed voxel's contribution map into a
	// sparse distribution and drop the map
	minScale := cfg.MinContributionScale
	_ = core.ParallelFor(len(d.table), 1024, func(start, end int) error {
		for i := start; i < end; i++ {
			entry := &d.table[i]
			if entry.packedPos.Load() == invalidKey {
				continue
			}
			entry.distrib = core.NewSparseDistribution1D(entry.contrib, minScale, d.nLights)
			entry.contrib = nil
		}
		return nil
	})

	glog.Infof("photonvoxel: voxel resolution (%d, %d, %d), %d photons, %d lights",
		grid.n[0], grid.n[1], grid.n[2], cfg.PhotonCount, d.nLights)
	return d, nil
}

func (d *PhotonVoxelLightDistribution) Name() string { return "photonvoxel" }

func (d *PhotonVoxelLightDistribution) Stats() StatsSnapshot { return d.stats.Snapshot() }

// accumulate adds the photon's throughput to its voxel's per-light map.
// Contention is limited to photons landing in the same voxel because each
// slot carries its own lock.
func (d *PhotonVoxelLightDistribution) accumulate(ph photon) {
	entry := d.findOrClaim(packVoxel(d.grid.voxelOf(ph.pos)))
	entry.mu.Lock()
	if entry.contrib == nil {
		entry.contrib = make(map[int]float64)
	}
	entry.contrib[ph.lightNum] += ph.beta
	entry.mu.Unlock()
}

// findOrClaim locates the slot for the key, claiming an empty slot if the
// key is not yet present
func (d *PhotonVoxelLightDistribution) findOrClaim(key uint64) *photonVoxelEntry {
	size := uint64(len(d.table))
	hash := hashVoxelKey(key) % size
	step := uint64(1)
	for {
		entry := &d.table[hash]
		switch entry.packedPos.Load() {
		case key:
			return entry
		case invalidKey:
			if entry.packedPos.CompareAndSwap(invalidKey, key) {
				return entry
			}
			// Lost the race; reload the same slot
		default:
			hash = (hash + step*step) % size
			step++
		}
	}
}

// find returns the frozen slot for the key, or nil when no photon reached
// the voxel
func (d *PhotonVoxelLightDistribution) find(key uint64) *photonVoxelEntry {
	size := uint64(len(d.table))
	hash := hashVoxelKey(key) % size
	step := uint64(1)
	probes := int64(1)
	for {
		entry := &d.table[hash]
		switch entry.packedPos.Load() {
		case key:
			d.stats.hashProbes.Add(probes)
			return entry
		case invalidKey:
			d.stats.hashProbes.Add(probes)
			return nil
		default:
			hash = (hash + step*step) % size
			step++
			probes++
		}
	}
}

// Lookup returns the query voxel's distribution, or a neighbor blend when
// interpolation is enabled
func (d *PhotonVoxelLightDistribution) Lookup(p, n core.Vec3) Distribution {
	d.stats.lookups.Add(1)
	v := d.grid.voxelOf(p)
	if !d.interpolate {
		return owned{d.voxelDistribution(v)}
	}
	return d.interpolatedDistribution(p, v)
}

// voxelDistribution returns the voxel's frozen distribution, or the uniform
// default when no photon reached it
func (d *PhotonVoxelLightDistribution) voxelDistribution(v [3]int) *core.SparseDistribution1D {
	if entry := d.find(packVoxel(v)); entry != nil {
		return entry.distrib
	}
	return d.defaultDistrib
}

// interpolatedDistribution blends the query voxel with up to seven axis
// neighbors. Along each axis the point's offset from the voxel center
// splits the accumulated weight between the voxel and the neighbor the
// point leans toward; neighbors outside the grid are skipped and their
// share stays with the nearer cell.
func (d *PhotonVoxelLightDistribution) interpolatedDistribution(p core.Vec3, v [3]int) Distribution {
	offsets := d.grid.offsetInVoxel(p)

	var voxels [8][3]int
	var weights [8]float64
	voxels[0] = v
	weights[0] = 1
	count := 1

	for axis := 0; axis < 3; axis++ {
		off := offsets[axis]
		if off == 0 {
			continue
		}
		step := 1
		if off < 0 {
			step = -1
		}
		frac := off
		if frac < 0 {
			frac = -frac
		}

		for i, prev := 0, count; i < prev; i++ {
			neighbor := voxels[i]
			neighbor[axis] += step
			if neighbor[axis] < 0 || neighbor[axis] >= d.grid.n[axis] {
				continue
			}
			voxels[count] = neighbor
			weights[count] = weights[i] * frac
			weights[i] *= 1 - frac
			count++
		}
	}

	t := d.interpPool.Get().(*transientInterpolated)
	t.subs = t.subs[:0]
	for i := 0; i < count; i++ {
		t.subs = append(t.subs, d.voxelDistribution(voxels[i]))
	}
	t.weights = append(t.weights[:0], weights[:count]...)
	t.Reset(t.weights, t.subs)
	d.stats.distributionsBuilt.Add(1)
	return t
}
