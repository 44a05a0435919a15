// Package coverage computes which cameras observe each point of a sampled
// 2D grid and blends their colours into a single coverage map.
package coverage

import "math"

const twoPi = 2 * math.Pi

// BringToInterval shifts x by whole turns until it lies within
// [around-π, around+π]. Angles already inside the band are returned as-is.
// NaN and infinite inputs are returned unchanged.
func BringToInterval(x, around float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(around) || math.IsInf(around, 0) {
		return x
	}

	// Far-off angles jump most of the way in one step; adding 2π to a large
	// float may not change it at all.
	if d := x - around; math.Abs(d) > 2*twoPi {
		x -= math.Trunc(d/twoPi) * twoPi
	}

	for x < around-math.Pi {
		x += twoPi
	}
	for x > around+math.Pi {
		x -= twoPi
	}
	return x
}

// deg2rad converts degrees to radians.
func deg2rad(deg float64) float64 {
	return deg * math.Pi / 180.0
}
