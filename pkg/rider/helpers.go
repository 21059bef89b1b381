// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package rider

import (
	"math"
	"math/rand/v2"
)

// RandomInt returns a uniformly distributed integer in [min, max].
// Reversed bounds are swapped. Any pair of ints is a valid range.
func RandomInt(min, max int) int {
	if min > max {
		min, max = max, min
	}
	// The span is computed in two's complement so the widest ranges do not overflow.
	n := uint64(max - min)
	if n == math.MaxUint64 {
		return min + int(rand.Uint64())
	}
	return min + int(rand.Uint64N(n+1))
}
