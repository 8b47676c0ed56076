package lightdist

import (
	"math"
	"runtime"
	"sync/atomic"

	"github.com/golang/glog"

	"github.com/df07/go-light-sampler/pkg/core"
)

// spatialSamplesPerVoxel is the number of Halton-distributed interior points
// used to estimate light contributions over a voxel
const spatialSamplesPerVoxel = 128

// SpatialLightDistribution builds one distribution per scene voxel, lazily
// on first lookup. The voxel's distribution estimates each light's incident
// contribution at Halton-distributed points inside the voxel; occlusion is
// ignored, so a uniform floor keeps shadowed lights sampleable.
type SpatialLightDistribution struct {
	scene Scene
	grid  voxelGrid
	table []spatialEntry
	stats Stats
}

// spatialEntry is a hash slot. packedPos moves EMPTY to CLAIMED by a CAS of
// the voxel key, then CLAIMED to READY when the builder publishes the
// distribution pointer. Readers that observe the key with a nil pointer spin
// until the publish.
type spatialEntry struct {
	packedPos atomic.Uint64
	distrib   atomic.Pointer[core.Distribution1D]
}

// NewSpatial creates a spatial light distribution over the scene bounds
func NewSpatial(cfg Config, sc Scene) *SpatialLightDistribution {
	grid := newVoxelGrid(sc.WorldBound(), cfg.MaxVoxels)
	table := make([]spatialEntry, 4*grid.voxelCount())
	for i := range table {
		table[i].packedPos.Store(invalidKey)
	}
	glog.Infof("spatial light distribution: voxel resolution (%d, %d, %d), %d lights",
		grid.n[0], grid.n[1], grid.n[2], len(sc.Lights()))
	return &SpatialLightDistribution{scene: sc, grid: grid, table: table}
}

func (s *SpatialLightDistribution) Name() string { return "spatial" }

func (s *SpatialLightDistribution) Stats() StatsSnapshot { return s.stats.Snapshot() }

// Lookup returns the distribution of the voxel containing p, building and
// publishing it if this is the first query to reach the voxel
func (s *SpatialLightDistribution) Lookup(p, n core.Vec3) Distribution {
	s.stats.lookups.Add(1)
	v := s.grid.voxelOf(p)
	key := packVoxel(v)

	size := uint64(len(s.table))
	hash := hashVoxelKey(key) % size
	step := uint64(1)
	probes := int64(1)
	for {
		entry := &s.table[hash]
		switch loaded := entry.packedPos.Load(); loaded {
		case key:
			// Ready, or a peer claimed the voxel and is mid-build
			for {
				if d := entry.distrib.Load(); d != nil {
					s.stats.hashProbes.Add(probes)
					return owned{d}
				}
				runtime.Gosched()
			}
		case invalidKey:
			if entry.packedPos.CompareAndSwap(invalidKey, key) {
				d := s.buildVoxelDistribution(v)
				entry.distrib.Store(d)
				s.stats.hashProbes.Add(probes)
				s.stats.distributionsBuilt.Add(1)
				return owned{d}
			}
			// Lost the claim race; reload the same slot
		default:
			// Slot holds another voxel, continue quadratic probing. The
			// table has four slots per voxel, so probing always terminates.
			hash = (hash + step*step) % size
			step++
			probes++
		}
	}
}

// buildVoxelDistribution estimates per-light contributions over the voxel
// interior. Each sample point queries every light for unshadowed incident
// radiance over the sampling density.
func (s *SpatialLightDistribution) buildVoxelDistribution(v [3]int) *core.Distribution1D {
	voxelBounds := s.grid.voxelBounds(v)
	sceneLights := s.scene.Lights()
	contrib := make([]float64, len(sceneLights))

	for i := uint64(0); i < spatialSamplesPerVoxel; i++ {
		po := voxelBounds.Lerp(core.NewVec3(
			core.RadicalInverse(0, i),
			core.RadicalInverse(1, i),
			core.RadicalInverse(2, i),
		))
		u := core.NewVec2(core.RadicalInverse(3, i), core.RadicalInverse(4, i))

		for j, light := range sceneLights {
			sample := light.Sample(po, core.Vec3{}, u)
			if sample.PDF > 0 {
				contrib[j] += sample.Emission.Luminance() / sample.PDF
			}
		}
	}

	// Floor the contributions so lights that received no samples keep a
	// small nonzero probability
	sum := 0.0
	for _, c := range contrib {
		sum += c
	}
	avg := sum / float64(spatialSamplesPerVoxel*len(contrib))
	minContrib := 1.0
	if avg > 0 {
		minContrib = 0.001 * avg
	}
	for j := range contrib {
		contrib[j] = math.Max(contrib[j], minContrib)
	}

	glog.V(2).Infof("spatial: built distribution for voxel (%d, %d, %d)", v[0], v[1], v[2])
	return core.NewDistribution1D(contrib)
}
