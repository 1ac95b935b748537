// SPDX-License-Identifier: MIT

package linalg

import "math"

// NormZero is the additive identity for norm accumulation.
const NormZero = 0.0

// FrobeniusNorm computes sqrt(Σ a[i,j]²) over all elements.
// The reduction runs in fixed flat order 0..n-1 with no data-dependent
// reordering, so results are bit-reproducible across runs for equal inputs.
// Errors: ErrNilMatrix. Complexity: O(r*c).
func FrobeniusNorm(m *Dense) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, opErrorf(opNorm, err)
	}

	sum := NormZero
	length := m.r * m.c
	for idx := 0; idx < length; idx++ { // deterministic 0..n-1
		sum += m.data[idx] * m.data[idx]
	}

	return math.Sqrt(sum), nil
}
