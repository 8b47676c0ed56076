package lights

import "github.com/df07/go-light-sampler/pkg/core"

// ComputeLightPowerDistribution builds a discrete distribution over the scene
// lights weighted by the luminance of their total emitted power. Returns nil
// when the scene has no lights.
func ComputeLightPowerDistribution(sceneLights []Light) *core.Distribution1D {
	if len(sceneLights) == 0 {
		return nil
	}

	powers := make([]float64, len(sceneLights))
	for i, light := range sceneLights {
		powers[i] = light.Power().Luminance()
	}
	return core.NewDistribution1D(powers)
}
