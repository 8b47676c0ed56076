package lightdist

import (
	"fmt"
	"math"

	"github.com/df07/go-light-sampler/pkg/core"
	"github.com/df07/go-light-sampler/pkg/lights"
)

// photon is a sampled light path truncated at its first surface hit,
// annotated with scalar throughput and originating light index
type photon struct {
	pos      core.Vec3
	fromDir  core.Vec3 // unit direction from the hit back toward the light
	beta     float64
	lightNum int
}

// missLightNum marks photons that were discarded or left the scene
const missLightNum = -1

const photonChunkSize = 4096

// photonMissPos is the sentinel position of missed photons
var photonMissPos = core.NewVec3(math.MaxFloat32, math.MaxFloat32, math.MaxFloat32)

// valid reports whether the photon hit a surface
func (ph photon) valid() bool {
	return ph.lightNum >= 0
}

// shootPhotons traces count photons from the scene lights. Every random
// decision for photon i comes from the radical inverse sequence at index i,
// so the result set is deterministic and the pass parallelizes without
// shared state.
func shootPhotons(sc Scene, lightDistrib *core.Distribution1D, count int) []photon {
	sceneLights := sc.Lights()
	photons := make([]photon, count)
	_ = core.ParallelFor(count, photonChunkSize, func(start, end int) error {
		for i := start; i < end; i++ {
			photons[i] = shootPhoton(sc, sceneLights, lightDistrib, uint64(i))
		}
		return nil
	})
	return photons
}

// Photon is a diagnostic view of one traced photon surface hit
type Photon struct {
	Pos      core.Vec3 `json:"pos"`
	FromDir  core.Vec3 `json:"fromDir"`
	Beta     float64   `json:"beta"`
	LightNum int       `json:"light"`
}

// PhotonDumper is implemented by strategies that retain their photon cloud
// after construction
type PhotonDumper interface {
	PhotonDump() []Photon
}

// TracePhotons shoots cfg.PhotonCount photons through the scene and returns
// the surface hits. Intended for inspection tooling; the strategies trace
// their own photons at construction.
func TracePhotons(cfg Config, sc Scene) ([]Photon, error) {
	if cfg.PhotonCount <= 0 {
		return nil, fmt.Errorf("photon count must be positive, got %d", cfg.PhotonCount)
	}
	lightDistrib, err := photonLightDistribution(cfg.PhotonSampling, sc.Lights())
	if err != nil {
		return nil, err
	}
	all := shootPhotons(sc, lightDistrib, cfg.PhotonCount)
	hits := make([]Photon, 0, len(all))
	for _, ph := range all {
		if ph.valid() {
			hits = append(hits, Photon{Pos: ph.pos, FromDir: ph.fromDir, Beta: ph.beta, LightNum: ph.lightNum})
		}
	}
	return hits, nil
}

func shootPhoton(sc Scene, sceneLights []lights.Light, lightDistrib *core.Distribution1D, index uint64) photon {
	miss := photon{pos: photonMissPos, lightNum: missLightNum}

	lightNum, lightPdf := lightDistrib.SampleDiscrete(core.RadicalInverse(0, index))
	if lightPdf == 0 {
		return miss
	}
	light := sceneLights[lightNum]

	uPos := core.NewVec2(core.RadicalInverse(1, index), core.RadicalInverse(2, index))
	uDir := core.NewVec2(core.RadicalInverse(3, index), core.RadicalInverse(4, index))
	// Dimension 5 would drive the emission time, which is pinned to 0

	es := light.SampleEmission(uPos, uDir)
	if es.AreaPDF == 0 || es.DirectionPDF == 0 {
		return miss
	}

	cosTheta := math.Abs(es.Normal.Dot(es.Direction))
	beta := cosTheta * es.Emission.Sum() / (lightPdf * es.AreaPDF * es.DirectionPDF)
	if beta <= 0 {
		return miss
	}

	hit, found := sc.Intersect(es.Ray())
	if !found {
		return miss
	}
	return photon{pos: hit.Point, fromDir: es.Direction.Negate(), beta: beta, lightNum: lightNum}
}
