package core

// InterpolatedDistribution1D blends several peer distributions without
// copying their tables. Construction costs O(m) and lookup O(m + log n) for
// m peers over n elements, where a flattened copy would cost O(m*n) to
// build. All peers must index the same element count and order; this is not
// validated here, callers guarantee it.
type InterpolatedDistribution1D struct {
	outer Distribution1D // Distribution over the m peers, from the blend weights
	subs  []Distribution // Non-owning references to the peer distributions
}

// NewInterpolatedDistribution1D creates a weighted mixture over the given
// peer distributions. weights and subs must have equal, nonzero length.
func NewInterpolatedDistribution1D(weights []float64, subs []Distribution) *InterpolatedDistribution1D {
	d := &InterpolatedDistribution1D{}
	d.Reset(weights, subs)
	return d
}

// Reset rebuilds the mixture in place, reusing backing storage
func (d *InterpolatedDistribution1D) Reset(weights []float64, subs []Distribution) {
	d.outer.Reset(weights)
	d.subs = append(d.subs[:0], subs...)
}

// Count reports the element count of the first peer. Peers are required to
// agree, so any of them would do.
func (d *InterpolatedDistribution1D) Count() int {
	return d.subs[0].Count()
}

// SampleDiscrete first samples a peer via the outer CDF, then renormalizes
// u into that peer's segment and samples within it
func (d *InterpolatedDistribution1D) SampleDiscrete(u float64) (int, float64) {
	offset := d.outer.findInterval(u)

	// uSub is a fresh scalar in [0,1) for the chosen peer. It can reach 1.0
	// in rare cases due to floating point precision, so clamp below it.
	uSub := (u - d.outer.cdf[offset]) / (d.outer.cdf[offset+1] - d.outer.cdf[offset])
	if uSub >= 1.0 {
		uSub = oneMinusEpsilon
	}

	sampled, _ := d.subs[offset].SampleDiscrete(uSub)
	return sampled, d.DiscretePDF(sampled)
}

// DiscretePDF marginalizes over the peers: the probability of the index is
// the outer-weighted sum of each peer's probability for it
func (d *InterpolatedDistribution1D) DiscretePDF(index int) float64 {
	pdf := 0.0
	for i, sub := range d.subs {
		pdf += sub.DiscretePDF(index) * (d.outer.cdf[i+1] - d.outer.cdf[i])
	}
	return pdf
}
