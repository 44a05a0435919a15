// Command coverage computes the combined field-of-view coverage of a set of
// directional cameras on a square grid and renders it as a scatter plot.
//
// Usage:
//
//	go run ./cmd/coverage [flags]
//
// Flags:
//
//	-config      Scene JSON file (default: built-in six-camera scene)
//	-resolution  Grid spacing override
//	-size        Half-width of the sampled square override
//	-out         Write the map to a .png, .svg, .pdf or .html file
//	-listen      Viewer listen address (default: localhost:8090)
//	-show        Serve the viewer and block until interrupted (default: true)
//	-validate    Reject scenes that violate camera invariants (default: true)
//	-version     Print version and exit
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/banshee-data/coverage.report/internal/config"
	"github.com/banshee-data/coverage.report/internal/coverage"
	"github.com/banshee-data/coverage.report/internal/fsutil"
	"github.com/banshee-data/coverage.report/internal/render"
	"github.com/banshee-data/coverage.report/internal/version"
	"github.com/banshee-data/coverage.report/internal/viewer"
)

var (
	configPath  = flag.String("config", "", "Scene JSON file (default: built-in scene)")
	resolution  = flag.Float64("resolution", 0, "Grid spacing override (0 keeps the scene value)")
	size        = flag.Float64("size", 0, "Half-width of the sampled square override (0 keeps the scene value)")
	outPath     = flag.String("out", "", "Write the coverage map to this file (.png, .svg, .pdf, .html)")
	listen      = flag.String("listen", "localhost:8090", "Viewer listen address")
	show        = flag.Bool("show", true, "Serve the viewer and block until interrupted")
	validate    = flag.Bool("validate", true, "Reject scenes that violate camera invariants")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

// loadScene reads the scene file, or the built-in scene when path is empty,
// and applies the scan overrides. The scan grid is always bounds-checked;
// strict additionally validates the cameras.
func loadScene(fsys fsutil.FileSystem, path string, res, sz float64, strict bool) (*config.SceneConfig, error) {
	cfg := config.DefaultSceneConfig()
	if path != "" {
		var err error
		cfg, err = config.LoadSceneConfigFS(fsys, path)
		if err != nil {
			return nil, err
		}
	}
	cfg.SetScan(res, sz)

	if strict {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid scene: %w", err)
		}
	}
	// The grid bound holds even when camera validation is off.
	if _, err := coverage.AxisLen(cfg.GetSize(), cfg.GetResolution()); err != nil {
		return nil, fmt.Errorf("invalid scan grid: %w", err)
	}
	return cfg, nil
}

// writeOutput saves the map to path: an ECharts page for .html, a static
// gonum plot otherwise.
func writeOutput(fsys fsutil.FileSystem, path string, samples []coverage.Sample, opts render.Options) error {
	if render.Format(path) == "html" {
		chart := render.Chart(samples, render.ChartOptions{Options: opts})
		return render.SaveHTML(fsys, chart, path)
	}

	p, err := render.Plot(samples, opts)
	if err != nil {
		return err
	}
	return render.Save(fsys, p, path, opts.Side)
}

func subtitle(sm coverage.Summary, cfg *config.SceneConfig) string {
	return fmt.Sprintf("run %s, %d cameras, resolution %g, seen %.1f%%",
		shortID(sm.RunID), len(cfg.Cameras), cfg.GetResolution(), 100*sm.SeenFrac)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	fsys := fsutil.OSFileSystem{}
	cfg, err := loadScene(fsys, *configPath, *resolution, *size, *validate)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}

	cameras := cfg.GetCameras()
	start := time.Now()
	samples := coverage.Scan(cameras, cfg.GetResolution(), cfg.GetSize())
	summary := coverage.Summarise(cameras, samples)
	log.Printf("Scanned %d points with %d cameras in %v: %d seen (%.1f%%)",
		summary.TotalPoints, len(cameras), time.Since(start).Round(time.Millisecond),
		summary.SeenPoints, 100*summary.SeenFrac)
	for _, c := range summary.Cameras {
		log.Printf("  %-12s %7d points (%.2f%%), %d exclusive", c.Name, c.Points, 100*c.Fraction, c.Exclusive)
	}

	opts := render.DefaultOptions()
	opts.Subtitle = subtitle(summary, cfg)
	opts.Size = cfg.GetSize()
	opts.Cameras = cameras

	if *outPath != "" {
		if err := writeOutput(fsys, *outPath, samples, opts); err != nil {
			log.Fatalf("Failed to write %s: %v", *outPath, err)
		}
		log.Printf("Wrote %s", *outPath)
	}

	if !*show {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := viewer.NewServer(viewer.Config{
		Address: *listen,
		Cameras: cameras,
		Samples: samples,
		Summary: summary,
		Chart:   render.ChartOptions{Options: opts},
	})
	if err := srv.Start(ctx); err != nil {
		log.Fatalf("Viewer failed: %v", err)
	}
	log.Printf("Viewer closed")
}
