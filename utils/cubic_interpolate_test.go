// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestCubicInterpolate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		y0, y1, y2, y3 float32
		x              float32
		want           float32
	}{
		{name: "start returns y1", y0: 0, y1: 1, y2: 2, y3: 3, x: 0, want: 1},
		{name: "end returns y2", y0: 0, y1: 1, y2: 2, y3: 3, x: 1, want: 2},
		{name: "linear ramp midpoint", y0: 0, y1: 1, y2: 2, y3: 3, x: 0.5, want: 1.5},
		{name: "constant", y0: 0.3, y1: 0.3, y2: 0.3, y3: 0.3, x: 0.7, want: 0.3},
		{name: "symmetric around zero", y0: -1, y1: -0.5, y2: 0.5, y3: 1, x: 0.5, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := CubicInterpolate(tt.y0, tt.y1, tt.y2, tt.y3, tt.x)
			if math.Abs(float64(got-tt.want)) > 1e-5 {
				t.Errorf("CubicInterpolate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCubicInterpolate_ZeroAllocs(t *testing.T) {
	allocs := testing.AllocsPerRun(100, func() {
		_ = CubicInterpolate(0.5, 1.0, 0.8, 0.3, 0.5)
	})

	if allocs > 0 {
		t.Errorf("CubicInterpolate allocated %v times, want 0", allocs)
	}
}

func BenchmarkCubicInterpolate(b *testing.B) {
	b.ReportAllocs()

	for b.Loop() {
		_ = CubicInterpolate(0.5, 1.0, 0.8, 0.3, 0.5)
	}
}
