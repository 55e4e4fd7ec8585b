// SPDX-License-Identifier: EPL-2.0

package utils

// CubicInterpolate returns the Catmull-Rom value at x (0 <= x <= 1)
// between y1 and y2, using y0 and y3 as the outer control points.
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2

	return ((a0*x+a1)*x+a2)*x + y1
}
