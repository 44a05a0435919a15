package render

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"strings"

	"github.com/banshee-data/coverage.report/internal/coverage"
	"github.com/banshee-data/coverage.report/internal/fsutil"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Options controls how a coverage map is drawn.
type Options struct {
	Title    string
	Subtitle string
	// Size is the half-width of the plotted square. Zero derives it from
	// the samples.
	Size float64
	// Side is the edge length of the saved square image.
	Side vg.Length
	// GlyphRadius is the radius of each sample dot.
	GlyphRadius vg.Length
	// Cameras, when set, are drawn as markers and listed in the legend.
	Cameras []coverage.Camera
}

// DefaultOptions returns the options used by the command line tool.
func DefaultOptions() Options {
	return Options{
		Title:       "Camera coverage",
		Side:        10 * vg.Inch,
		GlyphRadius: vg.Points(1),
	}
}

// Plot builds a square scatter plot with one dot per sample coloured by its
// composited coverage colour.
func Plot(samples []coverage.Sample, opts Options) (*plot.Plot, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("no samples to plot")
	}

	p := plot.New()
	p.Title.Text = opts.Title
	if opts.Subtitle != "" {
		p.Title.Text = opts.Title + "\n" + opts.Subtitle
	}
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"

	pts := make(plotter.XYs, len(samples))
	colors := make([]color.Color, len(samples))
	for i, s := range samples {
		pts[i] = plotter.XY{X: s.X, Y: s.Y}
		colors[i] = ToNRGBA(s.Color)
	}

	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	radius := opts.GlyphRadius
	if radius <= 0 {
		radius = vg.Points(1)
	}
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{Color: colors[i], Radius: radius, Shape: draw.CircleGlyph{}}
	}
	p.Add(sc)

	for i, cam := range opts.Cameras {
		marker, err := plotter.NewScatter(plotter.XYs{{X: cam.X, Y: cam.Y}})
		if err != nil {
			return nil, err
		}
		marker.GlyphStyle = draw.GlyphStyle{
			Color:  ToNRGBA(Opaque(cam.Color)),
			Radius: vg.Points(4),
			Shape:  draw.TriangleGlyph{},
		}
		p.Add(marker)
		p.Legend.Add(cam.Label(i), marker)
	}
	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	size := opts.Size
	if size <= 0 {
		size = extent(samples)
	}
	p.X.Min, p.X.Max = -size, size
	p.Y.Min, p.Y.Max = -size, size

	return p, nil
}

// extent is the largest absolute coordinate among the samples.
func extent(samples []coverage.Sample) float64 {
	m := 0.0
	for _, s := range samples {
		m = math.Max(m, math.Max(math.Abs(s.X), math.Abs(s.Y)))
	}
	if m == 0 {
		return 1
	}
	return m
}

// Format returns the image format implied by path's extension, without the
// leading dot.
func Format(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

// Save writes p as a square image to path through fsys. The image format
// follows the extension (png, svg, pdf, jpg, eps, tif).
func Save(fsys fsutil.FileSystem, p *plot.Plot, path string, side vg.Length) (err error) {
	if side <= 0 {
		side = DefaultOptions().Side
	}

	wt, err := p.WriterTo(side, side, Format(path))
	if err != nil {
		return fmt.Errorf("unsupported plot format %q: %w", Format(path), err)
	}

	if err := fsutil.EnsureParent(fsys, path); err != nil {
		return err
	}
	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if _, err := wt.WriteTo(f); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}
