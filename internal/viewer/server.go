// Package viewer serves a rendered coverage map over HTTP and blocks until
// the caller's context is cancelled. It stands in for an interactive plot
// window.
package viewer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/banshee-data/coverage.report/internal/coverage"
	"github.com/banshee-data/coverage.report/internal/httputil"
	"github.com/banshee-data/coverage.report/internal/monitoring"
	"github.com/banshee-data/coverage.report/internal/render"
	"github.com/banshee-data/coverage.report/internal/version"
	"tailscale.com/tsweb"
)

// Config carries the scan results the viewer publishes.
type Config struct {
	Address string
	Cameras []coverage.Camera
	Samples []coverage.Sample
	Summary coverage.Summary
	Chart   render.ChartOptions
}

// Server publishes one coverage scan. All data is fixed at construction.
type Server struct {
	address string
	cameras []coverage.Camera
	samples []coverage.Sample
	summary coverage.Summary
	chart   render.ChartOptions

	server *http.Server
}

// NewServer creates a viewer for the given scan.
func NewServer(cfg Config) *Server {
	s := &Server{
		address: cfg.Address,
		cameras: cfg.Cameras,
		samples: cfg.Samples,
		summary: cfg.Summary,
		chart:   cfg.Chart,
	}
	s.server = &http.Server{
		Addr:              s.address,
		Handler:           s.setupRoutes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the viewer's routes.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start serves until ctx is cancelled, then shuts the server down. It
// returns early with an error if the listener cannot be started.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		monitoring.Logf("[Viewer] serving coverage map on http://%s/", s.address)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			return fmt.Errorf("viewer listen on %s: %w", s.address, err)
		}
		return nil
	case <-ctx.Done():
	}

	monitoring.Logf("[Viewer] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		monitoring.Logf("[Viewer] shutdown error: %v", err)
		if err := s.server.Close(); err != nil {
			monitoring.Logf("[Viewer] force close error: %v", err)
		}
	}
	return nil
}

func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/samples", s.handleSamples)
	mux.HandleFunc("/api/summary", s.handleSummary)
	mux.HandleFunc("/api/point", s.handlePoint)
	mux.HandleFunc("/", s.handleChart)

	s.attachDebugRoutes(mux)
	return mux
}

// attachDebugRoutes mounts the tsweb debug index under /debug/.
func (s *Server) attachDebugRoutes(mux *http.ServeMux) {
	debug := tsweb.Debugger(mux)
	debug.KV("Version", version.Version)
	debug.KV("Run", s.summary.RunID)
	debug.KV("Cameras", len(s.cameras))
	debug.KV("Samples", len(s.samples))
	debug.HandleFunc("coverage", "Per-camera coverage summary", s.handleDebugCoverage)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONOK(w, map[string]string{
		"status":  "ok",
		"version": version.Version,
		"git_sha": version.GitSHA,
	})
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	var buf bytes.Buffer
	if err := render.WriteHTML(&buf, render.Chart(s.samples, s.chart)); err != nil {
		httputil.InternalServerError(w, err.Error())
		return
	}
	httputil.WriteHTML(w, buf.Bytes())
}

func (s *Server) handleSamples(w http.ResponseWriter, r *http.Request) {
	if !httputil.RequireGET(w, r) {
		return
	}
	httputil.WriteJSONOK(w, s.samples)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if !httputil.RequireGET(w, r) {
		return
	}
	httputil.WriteJSONOK(w, s.summary)
}

// handlePoint evaluates a single point against the scene's cameras.
// Query params:
//   - x, y (required) finite coordinates
func (s *Server) handlePoint(w http.ResponseWriter, r *http.Request) {
	if !httputil.RequireGET(w, r) {
		return
	}

	q := r.URL.Query()
	x, ok := parseCoord(q.Get("x"))
	if !ok {
		httputil.BadRequest(w, "invalid or missing x")
		return
	}
	y, ok := parseCoord(q.Get("y"))
	if !ok {
		httputil.BadRequest(w, "invalid or missing y")
		return
	}
	httputil.WriteJSONOK(w, coverage.SamplePoint(s.cameras, x, y))
}

// parseCoord accepts finite numbers only. NaN and Inf cannot be encoded as
// JSON.
func parseCoord(v string) (float64, bool) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func (s *Server) handleDebugCoverage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	sm := s.summary
	fmt.Fprintf(w, "run %s\n", sm.RunID)
	fmt.Fprintf(w, "points: %d seen: %d (%.1f%%) mean observers: %.2f\n",
		sm.TotalPoints, sm.SeenPoints, 100*sm.SeenFrac, sm.MeanObservers)
	for _, c := range sm.Cameras {
		fmt.Fprintf(w, "%-16s points=%-7d fraction=%.4f exclusive=%d\n", c.Name, c.Points, c.Fraction, c.Exclusive)
	}
	for k, n := range sm.Overlap {
		fmt.Fprintf(w, "seen by %d: %d\n", k, n)
	}
}
