// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// FloatToPCM converts a sample in [-1, 1] to a signed integer of bitDepth
// bits. Out of range input is clamped; the positive peak maps to
// 2^(bitDepth-1)-1 so the value never overflows.
func FloatToPCM(x float32, bitDepth int) int {
	switch {
	case x > 1:
		x = 1
	case x < -1:
		x = -1
	case x != x: // NaN
		x = 0
	}

	peak := float64(int64(1)<<(bitDepth-1) - 1)

	return int(math.Round(float64(x) * peak))
}

// PCMToFloat is the inverse of FloatToPCM for the same bit depth.
func PCMToFloat(v, bitDepth int) float32 {
	peak := float64(int64(1)<<(bitDepth-1) - 1)

	return float32(float64(v) / peak)
}
