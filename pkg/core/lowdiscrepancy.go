package core

// Prime bases for the radical inverse, one per Halton dimension
var primes = [...]uint64{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61,
	67, 71, 73, 79, 83, 89, 97, 101, 103, 107, 109, 113, 127, 131,
}

// oneMinusEpsilon is a value just below 1 (1 - 1e-13). Sample values are
// clamped to it so that callers can rely on samples in [0,1).
const oneMinusEpsilon = 1 - 1e-13

// RadicalInverse computes the radical inverse of index a in the prime base
// for the given dimension. Successive indices produce a low-discrepancy
// (Halton) sequence in [0,1); the result depends only on (baseIndex, a),
// so callers get deterministic samples without any shared RNG state.
func RadicalInverse(baseIndex int, a uint64) float64 {
	base := primes[baseIndex]
	invBase := 1.0 / float64(base)
	reversedDigits := uint64(0)
	invBaseN := 1.0
	for a > 0 {
		next := a / base
		digit := a - next*base
		reversedDigits = reversedDigits*base + digit
		invBaseN *= invBase
		a = next
	}
	return min(float64(reversedDigits)*invBaseN, oneMinusEpsilon)
}
