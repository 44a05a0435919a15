// Package render draws coverage samples as static images (gonum/plot) and
// interactive HTML charts (go-echarts).
package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/banshee-data/coverage.report/internal/coverage"
)

// ToNRGBA converts a [0,1] colour to 8-bit non-premultiplied channels.
// Out-of-range channels are clamped.
func ToNRGBA(c coverage.RGBA) color.NRGBA {
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}
}

// CSS formats a colour as a CSS rgba() value.
func CSS(c coverage.RGBA) string {
	n := ToNRGBA(c)
	return fmt.Sprintf("rgba(%d,%d,%d,%.3f)", n.R, n.G, n.B, clamp01(c.A))
}

// Opaque returns c with alpha forced to 1, used for camera markers whose
// configured alpha is meant for blending.
func Opaque(c coverage.RGBA) coverage.RGBA {
	c.A = 1
	return c
}

func to8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
