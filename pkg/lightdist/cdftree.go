package lightdist

import (
	"fmt"
	"sync"

	"github.com/golang/glog"

	"github.com/df07/go-light-sampler/pkg/core"
	"github.com/df07/go-light-sampler/pkg/spatial"
)

// defaultCdfCount is the target cluster count when the config leaves it
// unset
const defaultCdfCount = 8

// cdfCluster is one populated k-d leaf: its light distribution and the
// photon count used as its blend weight
type cdfCluster struct {
	distrib *core.SparseDistribution1D
	weight  float64
}

// CdfTreeLightDistribution partitions photons by k-d tree leaf cells, keeps
// one sparse distribution per sufficiently populated leaf, and blends the
// nearest leaf centroids with a kernel scaled by leaf population.
type CdfTreeLightDistribution struct {
	tree           *spatial.KdTree // over leaf centroids
	clusters       []cdfCluster
	kernel         kernel
	intSmooth      float64
	knCdf          int
	nLights        int
	defaultDistrib *core.SparseDistribution1D
	interpPool     *sync.Pool
	stats          Stats
}

// NewCdfTree shoots photons, partitions them into leaf clusters via a k-d
// tree sized so every leaf approximates one cluster, and indexes the leaf
// centroids. Only k-NN lookups are supported.
func NewCdfTree(cfg Config, sc Scene) (*CdfTreeLightDistribution, error) {
	if cfg.PhotonCount <= 0 {
		return nil, fmt.Errorf("cdftree: photon count must be positive, got %d", cfg.PhotonCount)
	}
	if !cfg.KNN {
		return nil, fmt.Errorf("cdftree: radius queries are not supported")
	}
	if cfg.KnCDF <= 0 {
		return nil, fmt.Errorf("cdftree: centroid neighbour count must be positive, got %d", cfg.KnCDF)
	}
	kern, err := kernelByName(cfg.Interpolation, cfg.IntSmooth)
	if err != nil {
		return nil, fmt.Errorf("cdftree: %w", err)
	}
	cdfCount := cfg.CDFCount
	if cdfCount <= 0 {
		cdfCount = defaultCdfCount
	}
	lightDistrib, err := photonLightDistribution(cfg.PhotonSampling, sc.Lights())
	if err != nil {
		return nil, fmt.Errorf("cdftree: %w", err)
	}

	photons := shootPhotons(sc, lightDistrib, cfg.PhotonCount)

	// Leaf size P/cdfCount makes each leaf one cluster candidate
	maxLeaf := cfg.PhotonCount / cdfCount
	if maxLeaf < 1 {
		maxLeaf = 1
	}
	photonTree := spatial.NewKdTree(photonCloud(photons), maxLeaf)

	d := &CdfTreeLightDistribution{
		kernel:     kern,
		intSmooth:  cfg.IntSmooth,
		knCdf:      cfg.KnCDF,
		nLights:    len(sc.Lights()),
		interpPool: newInterpPool(),
	}
	d.defaultDistrib = core.NewSparseDistribution1D(nil, cfg.MinContributionScale, d.nLights)

	var centroids [][3]float64
	for _, leaf := range photonTree.Leaves() {
		contrib := make(map[int]float64)
		var sum core.Vec3
		count := 0
		for _, idx := range leaf {
			ph := photons[idx]
			if !ph.valid() {
				continue
			}
			sum = sum.Add(ph.pos)
			contrib[ph.lightNum] += ph.beta
			count++
		}
		if count < cfg.PhotonThreshold {
			continue
		}
		centroid := sum.Multiply(1 / float64(count))
		centroids = append(centroids, [3]float64{centroid.X, centroid.Y, centroid.Z})
		d.clusters = append(d.clusters, cdfCluster{
			distrib: core.NewSparseDistribution1D(contrib, cfg.MinContributionScale, d.nLights),
			weight:  float64(count),
		})
	}
	d.tree = spatial.NewKdTree(centroidCloud(centroids), 1)

	glog.Infof("cdftree: %d leaf clusters from %d photons, %d lights",
		len(d.clusters), cfg.PhotonCount, d.nLights)
	return d, nil
}

func (d *CdfTreeLightDistribution) Name() string { return "cdftree" }

func (d *CdfTreeLightDistribution) Stats() StatsSnapshot { return d.stats.Snapshot() }

// Lookup blends the nearest leaf clusters, weighting each by its photon
// population times the distance kernel
func (d *CdfTreeLightDistribution) Lookup(p, n core.Vec3) Distribution {
	d.stats.lookups.Add(1)
	matches := d.tree.KNN([3]float64{p.X, p.Y, p.Z}, d.knCdf)
	if len(matches) == 0 {
		return owned{d.defaultDistrib}
	}

	maxD2 := matches[len(matches)-1].DistSq

	t := d.interpPool.Get().(*transientInterpolated)
	t.subs = t.subs[:0]
	t.weights = t.weights[:0]
	for _, m := range matches {
		cluster := d.clusters[m.Index]
		t.subs = append(t.subs, cluster.distrib)
		t.weights = append(t.weights, cluster.weight*d.kernel(m.DistSq, maxD2, d.intSmooth))
	}
	t.Reset(t.weights, t.subs)
	d.stats.distributionsBuilt.Add(1)
	return t
}
