package core

import "sort"

// SparseDistribution1D is a two-part mixture over N lights: a small explicit
// distribution over the m indices with nonzero contribution, plus a uniform
// floor over all N indices. The floor guarantees every light keeps a nonzero
// probability even when no photon reached it.
type SparseDistribution1D struct {
	inner     Distribution1D // Distribution over the m sparse entries
	sampleMap []int          // Sparse offset -> dense light index
	backMap   map[int]int    // Dense light index -> sparse offset
	uniProb   float64        // Mass assigned to the uniform component
	uniSingle float64        // uniProb / nAll
	nAll      int            // Total number of lights
}

// NewSparseDistribution1D builds a sparse distribution from a contribution
// map. Zero entries are dropped. An empty map forces uniProb to 1, which
// makes the result strictly uniform over all nAll lights.
func NewSparseDistribution1D(contrib map[int]float64, uniProb float64, nAll int) *SparseDistribution1D {
	s := &SparseDistribution1D{}
	s.Reset(contrib, uniProb, nAll)
	return s
}

// Reset rebuilds the sparse distribution in place, reusing backing storage.
// Entries are ordered by ascending light index so that results are
// reproducible regardless of map iteration order.
func (s *SparseDistribution1D) Reset(contrib map[int]float64, uniProb float64, nAll int) {
	s.sampleMap = s.sampleMap[:0]
	for lightNum, beta := range contrib {
		if beta > 0 {
			s.sampleMap = append(s.sampleMap, lightNum)
		}
	}
	sort.Ints(s.sampleMap)

	if s.backMap == nil {
		s.backMap = make(map[int]int, len(s.sampleMap))
	} else {
		clear(s.backMap)
	}
	weights := make([]float64, len(s.sampleMap))
	for i, lightNum := range s.sampleMap {
		weights[i] = contrib[lightNum]
		s.backMap[lightNum] = i
	}
	s.inner.Reset(weights)

	if len(s.sampleMap) == 0 {
		uniProb = 1
	}
	s.uniProb = uniProb
	s.uniSingle = uniProb / float64(nAll)
	s.nAll = nAll
}

// Count returns the total number of lights, not the sparse entry count
func (s *SparseDistribution1D) Count() int {
	return s.nAll
}

// UniformProb returns the mass assigned to the uniform floor
func (s *SparseDistribution1D) UniformProb() float64 {
	return s.uniProb
}

// SampleDiscrete partitions [0,1) into the sparse part [0, 1-uniProb) and
// the uniform part [1-uniProb, 1), renormalizes u within the chosen part
// and samples there. The returned PDF covers both branches.
func (s *SparseDistribution1D) SampleDiscrete(u float64) (int, float64) {
	var sampled int
	if u >= 1-s.uniProb {
		// Uniform branch
		newU := (u - (1 - s.uniProb)) / s.uniProb
		sampled = int(newU * float64(s.nAll))
		// newU is in [0,1) but can reach 1.0 due to floating point precision
		if sampled >= s.nAll {
			sampled = s.nAll - 1
		}
	} else {
		// Sparse branch
		newU := u / (1 - s.uniProb)
		offset, _ := s.inner.SampleDiscrete(newU)
		sampled = s.sampleMap[offset]
	}
	return sampled, s.DiscretePDF(sampled)
}

// DiscretePDF sums the probability of drawing the index through the uniform
// floor and, when present, through the sparse part
func (s *SparseDistribution1D) DiscretePDF(index int) float64 {
	pdf := s.uniSingle
	if offset, ok := s.backMap[index]; ok {
		pdf += s.inner.DiscretePDF(offset) * (1 - s.uniProb)
	}
	return pdf
}
