// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 scales a sample in [-1,1] to 16-bit PCM. Values outside the
// range are clamped.
func Float32ToInt16(x float32) int16 {
	return int16(Float32ToInt(x, 16))
}

// Float32ToInt scales a sample in [-1,1] to a signed integer of bitDepth
// bits (8 to 32). The positive peak maps to the largest value, so -1 maps
// one above the smallest.
func Float32ToInt(x float32, bitDepth int) int {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	peak := int64(1)<<(bitDepth-1) - 1
	return int(float64(x) * float64(peak))
}
