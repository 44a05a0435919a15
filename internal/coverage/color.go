package coverage

import "fmt"

// RGBA is a non-premultiplied colour with channels in [0,1].
type RGBA struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// NotSeenColor marks grid points that no camera observes (CSS "whitesmoke").
var NotSeenColor = RGBA{R: 245.0 / 255.0, G: 245.0 / 255.0, B: 245.0 / 255.0, A: 1}

// Valid reports whether every channel lies in [0,1].
func (c RGBA) Valid() bool {
	for _, v := range [4]float64{c.R, c.G, c.B, c.A} {
		if !(v >= 0 && v <= 1) {
			return false
		}
	}
	return true
}

// String formats the colour as an rgba() tuple.
func (c RGBA) String() string {
	return fmt.Sprintf("rgba(%.3f, %.3f, %.3f, %.3f)", c.R, c.G, c.B, c.A)
}

// Over paints src over dst with the source-over operator.
// A fully transparent result is black.
func Over(dst, src RGBA) RGBA {
	a := dst.A + src.A*(1-dst.A)
	if a == 0 {
		return RGBA{}
	}

	w := src.A * (1 - dst.A)
	return RGBA{
		R: (dst.R*dst.A + src.R*w) / a,
		G: (dst.G*dst.A + src.G*w) / a,
		B: (dst.B*dst.A + src.B*w) / a,
		A: a,
	}
}

// CombineRGBAList folds colors left to right with Over, starting from the
// first colour. Order matters for partially transparent inputs.
// An empty list yields the zero colour.
func CombineRGBAList(colors []RGBA) RGBA {
	if len(colors) == 0 {
		return RGBA{}
	}

	acc := colors[0]
	for _, c := range colors[1:] {
		acc = Over(acc, c)
	}
	return acc
}
