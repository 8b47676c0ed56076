package core

import (
	"fmt"
	"sort"
	"strings"
)

// Distribution is the sampling surface shared by the distribution family.
// All implementations index the same discrete domain [0, Count()).
type Distribution interface {
	Count() int
	SampleDiscrete(u float64) (index int, pdf float64)
	DiscretePDF(index int) float64
}

// Distribution1D represents a discrete probability distribution built from
// a tabulated function. Sampling uses inverse-CDF lookup via binary search.
type Distribution1D struct {
	Func    []float64 // Tabulated (unnormalized) weights
	FuncInt float64   // Integral of the step function: sum(Func)/len(Func)
	cdf     []float64 // Piecewise CDF with len(Func)+1 entries
}

// NewDistribution1D creates a distribution from tabulated weights.
// Weights must be non-negative; a zero sum yields a uniform ramp.
func NewDistribution1D(f []float64) *Distribution1D {
	d := &Distribution1D{}
	d.Reset(f)
	return d
}

// NewUniformDistribution1D creates a distribution with equal weight for all
// n entries
func NewUniformDistribution1D(n int) *Distribution1D {
	f := make([]float64, n)
	for i := range f {
		f[i] = 1
	}
	return NewDistribution1D(f)
}

// Reset rebuilds the distribution in place from new weights, reusing the
// existing backing arrays when their capacity allows. Lookup paths that
// synthesize a distribution per query recycle instances through a pool
// instead of allocating each time.
func (d *Distribution1D) Reset(f []float64) {
	n := len(f)
	d.Func = append(d.Func[:0], f...)
	if cap(d.cdf) < n+1 {
		d.cdf = make([]float64, n+1)
	}
	d.cdf = d.cdf[:n+1]

	// Compute integral of step function, then transform into a CDF
	d.cdf[0] = 0
	for i := 1; i < n+1; i++ {
		d.cdf[i] = d.cdf[i-1] + d.Func[i-1]/float64(n)
	}
	d.FuncInt = d.cdf[n]
	if d.FuncInt == 0 {
		// Degenerate case: all weights zero, fall back to a uniform ramp
		for i := 1; i < n+1; i++ {
			d.cdf[i] = float64(i) / float64(n)
		}
	} else {
		for i := 1; i < n+1; i++ {
			d.cdf[i] /= d.FuncInt
		}
	}
}

// Count returns the number of entries in the distribution
func (d *Distribution1D) Count() int {
	return len(d.Func)
}

// findInterval locates the largest CDF offset with cdf[offset] <= u,
// clamped so that offset indexes a valid segment
func (d *Distribution1D) findInterval(u float64) int {
	// sort.Search finds the first index with cdf[i] > u
	offset := sort.Search(len(d.cdf), func(i int) bool { return d.cdf[i] > u }) - 1
	if offset < 0 {
		offset = 0
	}
	if offset > len(d.Func)-1 {
		offset = len(d.Func) - 1
	}
	return offset
}

// SampleContinuous samples a continuous value in [0,1) proportional to the
// tabulated function, returning the value, its PDF and the segment offset
func (d *Distribution1D) SampleContinuous(u float64) (x float64, pdf float64, offset int) {
	offset = d.findInterval(u)

	// Interpolate within the CDF segment
	du := u - d.cdf[offset]
	if d.cdf[offset+1]-d.cdf[offset] > 0 {
		du /= d.cdf[offset+1] - d.cdf[offset]
	}

	if d.FuncInt > 0 {
		pdf = d.Func[offset] / d.FuncInt
	}
	return (float64(offset) + du) / float64(d.Count()), pdf, offset
}

// SampleDiscrete samples an index proportional to the tabulated weights
func (d *Distribution1D) SampleDiscrete(u float64) (int, float64) {
	offset := d.findInterval(u)
	pdf := 0.0
	if d.FuncInt > 0 {
		pdf = d.Func[offset] / (d.FuncInt * float64(d.Count()))
	}
	return offset, pdf
}

// SampleDiscreteRemapped samples an index and additionally returns the
// sample scalar renormalized to [0,1) within the chosen CDF segment, so a
// single uniform value can drive a chain of sampling decisions
func (d *Distribution1D) SampleDiscreteRemapped(u float64) (index int, pdf float64, uRemapped float64) {
	offset := d.findInterval(u)
	if d.FuncInt > 0 {
		pdf = d.Func[offset] / (d.FuncInt * float64(d.Count()))
	}
	uRemapped = (u - d.cdf[offset]) / (d.cdf[offset+1] - d.cdf[offset])
	return offset, pdf, uRemapped
}

// DiscretePDF returns the probability of sampling the given index
func (d *Distribution1D) DiscretePDF(index int) float64 {
	if d.FuncInt == 0 {
		return 0
	}
	return d.Func[index] / (d.FuncInt * float64(d.Count()))
}

// CDF returns the cumulative probability at the given offset, with
// CDF(0) == 0 and CDF(Count()) == 1
func (d *Distribution1D) CDF(offset int) float64 {
	return d.cdf[offset]
}

// String returns the per-index sampling percentages for debugging
func (d *Distribution1D) String() string {
	var sb strings.Builder
	sb.WriteString("distr:")
	for i := range d.Func {
		fmt.Fprintf(&sb, " sample %d ~ %.2f%%,", i, d.DiscretePDF(i)*100)
	}
	return sb.String()
}
