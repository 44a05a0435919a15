package render

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/banshee-data/coverage.report/internal/coverage"
	"github.com/banshee-data/coverage.report/internal/fsutil"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// NotSeenSeries names the series holding points no camera observes.
const NotSeenSeries = "not seen"

// ChartOptions extends Options with HTML page settings.
type ChartOptions struct {
	Options
	// AssetsHost overrides where echarts.min.js is loaded from.
	AssetsHost string
	// SymbolSize is the dot size in pixels.
	SymbolSize int
}

// Series is a group of samples seen by the same set of cameras, and so
// sharing one composited colour.
type Series struct {
	Name      string
	Color     coverage.RGBA
	Observers []int
	Points    [][2]float64
}

// GroupSeries splits samples by observer set. ECharts scatter data items
// carry no colour of their own, so each distinct overlap becomes a series
// with a fixed item colour. Series are ordered by observer count, then by
// camera indices; the not-seen series comes first.
func GroupSeries(samples []coverage.Sample, cameras []coverage.Camera) []Series {
	byKey := make(map[string]*Series)
	var keys []string
	for _, s := range samples {
		key := observerKey(s.Observers)
		sr, ok := byKey[key]
		if !ok {
			sr = &Series{
				Name:      seriesName(s.Observers, cameras),
				Color:     s.Color,
				Observers: s.Observers,
			}
			byKey[key] = sr
			keys = append(keys, key)
		}
		sr.Points = append(sr.Points, [2]float64{s.X, s.Y})
	}

	out := make([]Series, 0, len(keys))
	for _, k := range keys {
		out = append(out, *byKey[k])
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Observers, out[j].Observers
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		for k := range a {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return false
	})
	return out
}

func observerKey(obs []int) string {
	parts := make([]string, len(obs))
	for i, o := range obs {
		parts[i] = strconv.Itoa(o)
	}
	return strings.Join(parts, ",")
}

func seriesName(obs []int, cameras []coverage.Camera) string {
	if len(obs) == 0 {
		return NotSeenSeries
	}
	names := make([]string, len(obs))
	for i, o := range obs {
		if o >= 0 && o < len(cameras) {
			names[i] = cameras[o].Label(o)
		} else {
			names[i] = fmt.Sprintf("cam-%d", o)
		}
	}
	return strings.Join(names, " + ")
}

// Chart builds a go-echarts scatter of the samples with square, symmetric
// axes.
func Chart(samples []coverage.Sample, o ChartOptions) *charts.Scatter {
	size := o.Size
	if size <= 0 {
		size = extent(samples)
	}
	symbolSize := o.SymbolSize
	if symbolSize <= 0 {
		symbolSize = 4
	}

	initOpts := opts.Initialization{PageTitle: o.Title, Width: "900px", Height: "900px"}
	if o.AssetsHost != "" {
		initOpts.AssetsHost = o.AssetsHost
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts),
		charts.WithTitleOpts(opts.Title{Title: o.Title, Subtitle: o.Subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Type: "scroll", Bottom: "0"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Min: -size, Max: size, Name: "X", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Min: -size, Max: size, Name: "Y", NameLocation: "middle", NameGap: 30}),
	)

	for _, sr := range GroupSeries(samples, o.Cameras) {
		data := make([]opts.ScatterData, len(sr.Points))
		for i, pt := range sr.Points {
			data[i] = opts.ScatterData{Value: []interface{}{pt[0], pt[1]}}
		}
		scatter.AddSeries(sr.Name, data,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: symbolSize}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: CSS(sr.Color)}),
		)
	}
	return scatter
}

// WriteHTML renders the chart page to w.
func WriteHTML(w io.Writer, chart *charts.Scatter) error {
	if err := chart.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// SaveHTML writes the chart page to path through fsys.
func SaveHTML(fsys fsutil.FileSystem, chart *charts.Scatter, path string) (err error) {
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
	return WriteHTML(f, chart)
}
