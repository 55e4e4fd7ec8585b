// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Float32ToInt16 converts a normalized sample to 16-bit PCM.
// Values outside [-1, 1] are clipped.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	return int16(x * math.MaxInt16)
}

// PCMToFloat32 normalizes a signed integer PCM sample of the given bit depth
// into [-1, 1). Unknown depths are treated as 16-bit.
func PCMToFloat32(v int, bitDepth int) float32 {
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		bitDepth = 16
	}

	scale := float32(int64(1) << (bitDepth - 1))

	return float32(v) / scale
}

// Saturate narrows x to float32, pinning values beyond the float32 range
// to ±math.MaxFloat32 instead of letting them become infinite.
func Saturate(x float64) float32 {
	switch {
	case x > math.MaxFloat32:
		return math.MaxFloat32
	case x < -math.MaxFloat32:
		return -math.MaxFloat32
	}

	return float32(x)
}
