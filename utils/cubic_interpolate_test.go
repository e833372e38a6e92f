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
		{"start returns y1", 0, 1, 2, 3, 0, 1},
		{"end returns y2", 0, 1, 2, 3, 1, 2},
		{"linear midpoint", 0, 1, 2, 3, 0.5, 1.5},
		{"linear quarter", 1, 2, 3, 4, 0.25, 2.25},
		{"symmetric step", -1, -0.5, 0.5, 1, 0.5, 0},
		{"flat", 0.3, 0.3, 0.3, 0.3, 0.7, 0.3},
		{"quadratic", 1, 0, 1, 4, 0.5, 0.25},
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
		_ = CubicInterpolate(0.1, 0.5, 0.9, 0.3, 0.5)
	})

	if allocs != 0 {
		t.Errorf("CubicInterpolate allocates %v times, want 0", allocs)
	}
}

func BenchmarkCubicInterpolate(b *testing.B) {
	for b.Loop() {
		_ = CubicInterpolate(0.1, 0.5, 0.9, 0.3, 0.5)
	}
}
