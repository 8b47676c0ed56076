package lightdist

import (
	"fmt"
	"sync"

	"github.com/golang/glog"

	"github.com/df07/go-light-sampler/pkg/core"
	"github.com/df07/go-light-sampler/pkg/spatial"
)

// photonTreeLeafSize bounds the number of photons per k-d tree leaf
const photonTreeLeafSize = 10

// photonCloud adapts a photon slice to the spatial.PointSource interface
type photonCloud []photon

func (c photonCloud) Len() int { return len(c) }

func (c photonCloud) Coord(i, dim int) float64 {
	switch dim {
	case 0:
		return c[i].pos.X
	case 1:
		return c[i].pos.Y
	default:
		return c[i].pos.Z
	}
}

// PhotonTreeLightDistribution answers lookups from a k-d tree over photon
// hit points. Each neighbor's throughput is weighted by a distance kernel
// and the result is synthesized into a per-lookup sparse distribution.
type PhotonTreeLightDistribution struct {
	tree           *spatial.KdTree
	photons        []photon // surface hits only, indexed by the tree
	kernel         kernel
	intSmooth      float64
	knn            bool
	k              int
	radiusSq       float64
	minScale       float64
	nLights        int
	defaultDistrib *core.SparseDistribution1D
	sparsePool     *sync.Pool
	stats          Stats
}

// NewPhotonTree shoots photons and indexes their hit points for k-NN or
// radius lookups
func NewPhotonTree(cfg Config, sc Scene) (*PhotonTreeLightDistribution, error) {
	if cfg.PhotonCount <= 0 {
		return nil, fmt.Errorf("photontree: photon count must be positive, got %d", cfg.PhotonCount)
	}
	kern, err := kernelByName(cfg.Interpolation, cfg.IntSmooth)
	if err != nil {
		return nil, fmt.Errorf("photontree: %w", err)
	}
	if cfg.KNN {
		if cfg.NearestNeighbours <= 0 {
			return nil, fmt.Errorf("photontree: nearest neighbour count must be positive, got %d", cfg.NearestNeighbours)
		}
	} else {
		if cfg.PhotonRadius <= 0 {
			return nil, fmt.Errorf("photontree: photon radius must be positive, got %v", cfg.PhotonRadius)
		}
		if cfg.Interpolation != "none" && cfg.Interpolation != "" {
			glog.Warningf("photontree: radius queries sum raw throughput, ignoring %q kernel", cfg.Interpolation)
		}
		kern = kernelNone
	}
	lightDistrib, err := photonLightDistribution(cfg.PhotonSampling, sc.Lights())
	if err != nil {
		return nil, fmt.Errorf("photontree: %w", err)
	}

	all := shootPhotons(sc, lightDistrib, cfg.PhotonCount)
	hits := make([]photon, 0, len(all))
	for _, ph := range all {
		if ph.valid() {
			hits = append(hits, ph)
		}
	}

	d := &PhotonTreeLightDistribution{
		tree:       spatial.NewKdTree(photonCloud(hits), photonTreeLeafSize),
		photons:    hits,
		kernel:     kern,
		intSmooth:  cfg.IntSmooth,
		knn:        cfg.KNN,
		k:          cfg.NearestNeighbours,
		radiusSq:   cfg.PhotonRadius * cfg.PhotonRadius,
		minScale:   cfg.MinContributionScale,
		nLights:    len(sc.Lights()),
		sparsePool: newSparsePool(),
	}
	d.defaultDistrib = core.NewSparseDistribution1D(nil, cfg.MinContributionScale, d.nLights)

	glog.Infof("photontree: %d of %d photons hit a surface, %d lights",
		len(hits), cfg.PhotonCount, d.nLights)
	return d, nil
}

func (d *PhotonTreeLightDistribution) Name() string { return "photontree" }

func (d *PhotonTreeLightDistribution) Stats() StatsSnapshot { return d.stats.Snapshot() }

// PhotonDump exposes the retained photon cloud for inspection
func (d *PhotonTreeLightDistribution) PhotonDump() []Photon {
	dump := make([]Photon, len(d.photons))
	for i, ph := range d.photons {
		dump[i] = Photon{Pos: ph.pos, FromDir: ph.fromDir, Beta: ph.beta, LightNum: ph.lightNum}
	}
	return dump
}

// Lookup gathers the photon neighborhood of p and folds it into a sparse
// distribution over the lights. Empty neighborhoods fall back to uniform.
func (d *PhotonTreeLightDistribution) Lookup(p, n core.Vec3) Distribution {
	d.stats.lookups.Add(1)
	q := [3]float64{p.X, p.Y, p.Z}

	var matches []spatial.Match
	if d.knn {
		matches = d.tree.KNN(q, d.k)
	} else {
		matches = d.tree.Radius(q, d.radiusSq)
	}
	if len(matches) == 0 {
		return owned{d.defaultDistrib}
	}

	// Matches are sorted ascending, so the neighborhood extent is the last
	maxD2 := matches[len(matches)-1].DistSq

	t := d.sparsePool.Get().(*transientSparse)
	clear(t.contrib)
	for _, m := range matches {
		ph := d.photons[m.Index]
		t.contrib[ph.lightNum] += ph.beta * d.kernel(m.DistSq, maxD2, d.intSmooth)
	}
	t.Reset(t.contrib, d.minScale, d.nLights)
	d.stats.distributionsBuilt.Add(1)
	return t
}
