package coverage

import (
	"errors"
	"fmt"
	"math"
)

// MaxAxisPoints bounds the values per axis. A scan holds the square of this
// many samples.
const MaxAxisPoints = 4096

// ErrAxisTooLong is returned by AxisLen when the grid would be too large.
var ErrAxisTooLong = errors.New("coverage: scan axis too long")

// Sample is the coverage result for one grid point.
type Sample struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Color RGBA    `json:"color"`
	Seen  bool    `json:"seen"`
	// Observers holds the indices of the cameras that see the point, in
	// camera order.
	Observers []int `json:"observers,omitempty"`
}

// AxisLen returns ceil(2*size/resolution), the number of values Axis
// produces. Both arguments must be positive and finite, and the count may not
// exceed MaxAxisPoints.
func AxisLen(size, resolution float64) (int, error) {
	if !(resolution > 0) || !(size > 0) || math.IsInf(size, 0) || math.IsInf(resolution, 0) {
		return 0, fmt.Errorf("coverage: size %v and resolution %v must be positive and finite", size, resolution)
	}

	n := math.Ceil((2 * size) / resolution)
	if !(n <= MaxAxisPoints) {
		return 0, fmt.Errorf("%w: %g points for size %v at resolution %v (max %d)", ErrAxisTooLong, n, size, resolution, MaxAxisPoints)
	}
	return int(n), nil
}

// Axis returns -size, -size+resolution, ... up to but excluding size.
// Values are computed as offsets from -size rather than accumulated, so the
// count matches ceil(2*size/resolution). Arguments rejected by AxisLen yield
// nil.
func Axis(size, resolution float64) []float64 {
	n, err := AxisLen(size, resolution)
	if err != nil {
		return nil
	}

	axis := make([]float64, n)
	for i := range axis {
		axis[i] = -size + float64(i)*resolution
	}
	return axis
}

// SamplePoint queries every camera for (x, y) and composites the colours of
// those that see it. Points nobody sees get NotSeenColor.
func SamplePoint(cameras []Camera, x, y float64) Sample {
	s := Sample{X: x, Y: y, Color: NotSeenColor}

	var colors []RGBA
	for i, cam := range cameras {
		c, ok := cam.GetColor(x, y)
		if !ok {
			continue
		}
		colors = append(colors, c)
		s.Observers = append(s.Observers, i)
	}

	if len(colors) > 0 {
		s.Color = CombineRGBAList(colors)
		s.Seen = true
	}
	return s
}

// Scan samples the square [-size, size) x [-size, size) at the given
// resolution. The outer loop runs over x and the inner over y.
func Scan(cameras []Camera, resolution, size float64) []Sample {
	axis := Axis(size, resolution)
	samples := make([]Sample, 0, len(axis)*len(axis))
	for _, x := range axis {
		for _, y := range axis {
			samples = append(samples, SamplePoint(cameras, x, y))
		}
	}
	return samples
}
