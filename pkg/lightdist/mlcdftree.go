package lightdist

import (
	"fmt"
	"math"
	"sync"

	"github.com/golang/glog"

	"github.com/df07/go-light-sampler/pkg/core"
	"github.com/df07/go-light-sampler/pkg/spatial"
)

// defaultMlCdfCount is the k-means cluster count when the config leaves it
// unset
const defaultMlCdfCount = 264

// centroidCloud adapts centroid coordinates to spatial.PointSource
type centroidCloud [][3]float64

func (c centroidCloud) Len() int                 { return len(c) }
func (c centroidCloud) Coord(i, dim int) float64 { return c[i][dim] }

// MlCdfTreeLightDistribution clusters photon hits with k-means, keeps one
// sparse distribution per cluster, and blends the nearest cluster
// distributions by inverse squared centroid distance at lookup.
type MlCdfTreeLightDistribution struct {
	tree           *spatial.KdTree // over cluster centroids
	clusters       []*core.SparseDistribution1D
	knCdf          int
	nLights        int
	defaultDistrib *core.SparseDistribution1D
	interpPool     *sync.Pool
	stats          Stats
}

// NewMlCdfTree shoots photons, clusters their hit points and indexes the
// cluster centroids. Only k-NN lookups are supported.
func NewMlCdfTree(cfg Config, sc Scene) (*MlCdfTreeLightDistribution, error) {
	if cfg.PhotonCount <= 0 {
		return nil, fmt.Errorf("mlcdftree: photon count must be positive, got %d", cfg.PhotonCount)
	}
	if !cfg.KNN {
		return nil, fmt.Errorf("mlcdftree: radius queries are not supported")
	}
	if cfg.KnCDF <= 0 {
		return nil, fmt.Errorf("mlcdftree: centroid neighbour count must be positive, got %d", cfg.KnCDF)
	}
	cdfCount := cfg.CDFCount
	if cdfCount <= 0 {
		cdfCount = defaultMlCdfCount
	}
	lightDistrib, err := photonLightDistribution(cfg.PhotonSampling, sc.Lights())
	if err != nil {
		return nil, fmt.Errorf("mlcdftree: %w", err)
	}

	all := shootPhotons(sc, lightDistrib, cfg.PhotonCount)
	hits := make([]photon, 0, len(all))
	for _, ph := range all {
		if ph.valid() {
			hits = append(hits, ph)
		}
	}

	d := &MlCdfTreeLightDistribution{
		knCdf:      cfg.KnCDF,
		nLights:    len(sc.Lights()),
		interpPool: newInterpPool(),
	}
	d.defaultDistrib = core.NewSparseDistribution1D(nil, cfg.MinContributionScale, d.nLights)

	if cdfCount > len(hits) {
		cdfCount = len(hits)
	}
	points := make([][3]float64, len(hits))
	for i, ph := range hits {
		points[i] = [3]float64{ph.pos.X, ph.pos.Y, ph.pos.Z}
	}
	km := spatial.KMeansLloyd(points, cdfCount)

	contribs := make([]map[int]float64, len(km.Centroids))
	for i, ph := range hits {
		cluster := km.Labels[i]
		if contribs[cluster] == nil {
			contribs[cluster] = make(map[int]float64)
		}
		contribs[cluster][ph.lightNum] += ph.beta
	}
	d.clusters = make([]*core.SparseDistribution1D, len(km.Centroids))
	for i := range d.clusters {
		d.clusters[i] = core.NewSparseDistribution1D(contribs[i], cfg.MinContributionScale, d.nLights)
	}
	d.tree = spatial.NewKdTree(centroidCloud(km.Centroids), 1)

	glog.Infof("mlcdftree: %d photons hit, %d clusters, %d lights",
		len(hits), len(km.Centroids), d.nLights)
	return d, nil
}

func (d *MlCdfTreeLightDistribution) Name() string { return "mlcdftree" }

func (d *MlCdfTreeLightDistribution) Stats() StatsSnapshot { return d.stats.Snapshot() }

// Lookup blends the nearest cluster distributions, weighting each by the
// inverse squared distance to its centroid
func (d *MlCdfTreeLightDistribution) Lookup(p, n core.Vec3) Distribution {
	d.stats.lookups.Add(1)
	matches := d.tree.KNN([3]float64{p.X, p.Y, p.Z}, d.knCdf)
	if len(matches) == 0 {
		return owned{d.defaultDistrib}
	}

	t := d.interpPool.Get().(*transientInterpolated)
	t.subs = t.subs[:0]
	t.weights = t.weights[:0]
	for _, m := range matches {
		t.subs = append(t.subs, d.clusters[m.Index])
		t.weights = append(t.weights, 1/math.Max(m.DistSq, 1e-12))
	}
	t.Reset(t.weights, t.subs)
	d.stats.distributionsBuilt.Add(1)
	return t
}
