package lightdist

import (
	"github.com/df07/go-light-sampler/pkg/core"
	"github.com/df07/go-light-sampler/pkg/lights"
)

// UniformLightDistribution samples every light with equal probability,
// ignoring the query point
type UniformLightDistribution struct {
	distrib owned
	stats   Stats
}

// NewUniform creates a uniform distribution over the given lights
func NewUniform(sceneLights []lights.Light) *UniformLightDistribution {
	return &UniformLightDistribution{
		distrib: owned{core.NewUniformDistribution1D(len(sceneLights))},
	}
}

func (d *UniformLightDistribution) Name() string { return "uniform" }

func (d *UniformLightDistribution) Lookup(p, n core.Vec3) Distribution {
	d.stats.lookups.Add(1)
	return d.distrib
}

func (d *UniformLightDistribution) Stats() StatsSnapshot { return d.stats.Snapshot() }

// PowerLightDistribution samples lights in proportion to their total
// emitted power, ignoring the query point
type PowerLightDistribution struct {
	distrib owned
	stats   Stats
}

// NewPower creates a power-weighted distribution over the given lights
func NewPower(sceneLights []lights.Light) *PowerLightDistribution {
	return &PowerLightDistribution{
		distrib: owned{lights.ComputeLightPowerDistribution(sceneLights)},
	}
}

func (d *PowerLightDistribution) Name() string { return "power" }

func (d *PowerLightDistribution) Lookup(p, n core.Vec3) Distribution {
	d.stats.lookups.Add(1)
	return d.distrib
}

func (d *PowerLightDistribution) Stats() StatsSnapshot { return d.stats.Snapshot() }
