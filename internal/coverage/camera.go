package coverage

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrNotImplemented is returned by Camera.ComputeInformation.
var ErrNotImplemented = errors.New("coverage: not implemented")

// Camera is a directional sensor in the plane. Orientation is measured in
// degrees counter-clockwise from the +X axis; FOV is the full cone width.
type Camera struct {
	Name        string
	X           float64
	Y           float64
	Orientation float64
	FOV         float64
	Range       float64
	// ResolutionHorizontal is carried through configuration but does not
	// affect visibility.
	ResolutionHorizontal float64
	Color                RGBA
}

// Label returns the camera name, or a positional fallback when unnamed.
func (c Camera) Label(idx int) string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("cam-%d", idx)
}

// HasPointInFOV reports whether the bearing from the camera to (px, py)
// lies inside the field of view, edges included.
func (c Camera) HasPointInFOV(px, py float64) bool {
	orientation := deg2rad(c.Orientation)
	bearing := BringToInterval(math.Atan2(py-c.Y, px-c.X), orientation)

	halfFOV := deg2rad(c.FOV / 2)
	lower := BringToInterval(orientation-halfFOV, orientation)
	upper := BringToInterval(orientation+halfFOV, orientation)

	return lower <= bearing && bearing <= upper
}

// HasWithinRange reports whether (px, py) is strictly closer than Range.
func (c Camera) HasWithinRange(px, py float64) bool {
	return floats.Distance([]float64{c.X, c.Y}, []float64{px, py}, 2) < c.Range
}

// GetColor returns the camera colour when (px, py) is both in view and in
// range. The boolean is false otherwise.
func (c Camera) GetColor(px, py float64) (RGBA, bool) {
	if !c.HasPointInFOV(px, py) {
		return RGBA{}, false
	}
	if !c.HasWithinRange(px, py) {
		return RGBA{}, false
	}
	return c.Color, true
}

// ComputeInformation is reserved for an information measure of the view of
// (px, py). It has no defined behaviour yet and always fails.
func (c Camera) ComputeInformation(px, py float64) (float64, error) {
	return 0, ErrNotImplemented
}
