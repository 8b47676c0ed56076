package lightdist

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/df07/go-light-sampler/pkg/core"
	"github.com/df07/go-light-sampler/pkg/lights"
)

// New creates the light sampling strategy named by cfg.Strategy. Scenes with
// at most one light always get the uniform strategy, since no distribution
// can improve on it. Unknown strategy names fall back to spatial with a
// logged warning.
func New(cfg Config, sc Scene) (LightDistribution, error) {
	if len(sc.Lights()) <= 1 {
		glog.V(1).Infof("scene has %d lights, forcing uniform light sampling", len(sc.Lights()))
		return NewUniform(sc.Lights()), nil
	}

	switch cfg.Strategy {
	case "uniform":
		return NewUniform(sc.Lights()), nil
	case "power":
		return NewPower(sc.Lights()), nil
	case "spatial":
		return NewSpatial(cfg, sc), nil
	case "photonvoxel":
		return NewPhotonVoxel(cfg, sc)
	case "photontree":
		return NewPhotonTree(cfg, sc)
	case "mlcdftree":
		return NewMlCdfTree(cfg, sc)
	case "cdftree":
		return NewCdfTree(cfg, sc)
	default:
		glog.Warningf("unknown light sample strategy %q, using spatial", cfg.Strategy)
		return NewSpatial(cfg, sc), nil
	}
}

// photonLightDistribution builds the distribution photons are drawn from
// while shooting
func photonLightDistribution(mode string, sceneLights []lights.Light) (*core.Distribution1D, error) {
	switch mode {
	case "uni", "":
		return core.NewUniformDistribution1D(len(sceneLights)), nil
	case "power":
		return lights.ComputeLightPowerDistribution(sceneLights), nil
	default:
		return nil, fmt.Errorf("unknown photon sampling mode %q", mode)
	}
}
