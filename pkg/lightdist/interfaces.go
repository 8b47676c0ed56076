package lightdist

import (
	"sync"

	"github.com/df07/go-light-sampler/pkg/core"
	"github.com/df07/go-light-sampler/pkg/geometry"
	"github.com/df07/go-light-sampler/pkg/lights"
)

// Distribution is a discrete distribution over the scene lights returned by
// Lookup. Callers release it exactly once after sampling: strategy-owned
// results make Release a no-op, per-lookup transients are recycled through
// the owning strategy's pool.
type Distribution interface {
	Count() int
	SampleDiscrete(u float64) (index int, pdf float64)
	DiscretePDF(index int) float64
	Release()
}

// LightDistribution returns a sampling distribution over the scene lights
// for a given shading point and surface normal
type LightDistribution interface {
	Name() string
	Lookup(p, n core.Vec3) Distribution
}

// Scene is the narrow view of the scene the strategies consume
type Scene interface {
	WorldBound() core.AABB
	Intersect(ray core.Ray) (geometry.HitRecord, bool)
	Lights() []lights.Light
}

// owned wraps a strategy-owned distribution whose lifetime matches the
// strategy's own
type owned struct {
	core.Distribution
}

func (owned) Release() {}

// transientSparse is a pooled per-lookup sparse distribution. The contrib
// map is scratch space reused across lookups.
type transientSparse struct {
	*core.SparseDistribution1D
	pool    *sync.Pool
	contrib map[int]float64
}

func (t *transientSparse) Release() {
	t.pool.Put(t)
}

func newSparsePool() *sync.Pool {
	p := &sync.Pool{}
	p.New = func() any {
		return &transientSparse{
			SparseDistribution1D: &core.SparseDistribution1D{},
			pool:                 p,
			contrib:              make(map[int]float64),
		}
	}
	return p
}

// transientInterpolated is a pooled per-lookup interpolated distribution.
// subs and weights are scratch space reused across lookups.
type transientInterpolated struct {
	*core.InterpolatedDistribution1D
	pool    *sync.Pool
	subs    []core.Distribution
	weights []float64
}

func (t *transientInterpolated) Release() {
	t.pool.Put(t)
}

func newInterpPool() *sync.Pool {
	p := &sync.Pool{}
	p.New = func() any {
		return &transientInterpolated{
			InterpolatedDistribution1D: &core.InterpolatedDistribution1D{},
			pool:                       p,
		}
	}
	return p
}
