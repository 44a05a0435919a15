package coverage

import (
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
)

// CameraCoverage counts the grid points a single camera observes.
type CameraCoverage struct {
	Name     string  `json:"name"`
	Points   int     `json:"points"`
	Fraction float64 `json:"fraction"`
	// Exclusive counts points seen by this camera and no other.
	Exclusive int `json:"exclusive"`
}

// Summary aggregates a scan.
type Summary struct {
	RunID       string           `json:"run_id"`
	GeneratedAt time.Time        `json:"generated_at"`
	TotalPoints int              `json:"total_points"`
	SeenPoints  int              `json:"seen_points"`
	SeenFrac    float64          `json:"seen_fraction"`
	Cameras     []CameraCoverage `json:"cameras"`
	// Overlap[k] is the number of points observed by exactly k cameras.
	Overlap []int `json:"overlap"`
	// MeanObservers is the average number of cameras per seen point.
	MeanObservers float64 `json:"mean_observers"`
}

// Summarise computes per-camera and overlap statistics for samples produced
// by Scan over the same cameras.
func Summarise(cameras []Camera, samples []Sample) Summary {
	s := Summary{
		RunID:       uuid.New().String(),
		GeneratedAt: time.Now(),
		TotalPoints: len(samples),
		Cameras:     make([]CameraCoverage, len(cameras)),
		Overlap:     make([]int, len(cameras)+1),
	}
	for i, cam := range cameras {
		s.Cameras[i].Name = cam.Label(i)
	}

	observers := make([]float64, 0, len(samples))
	for _, sm := range samples {
		k := len(sm.Observers)
		if k < len(s.Overlap) {
			s.Overlap[k]++
		}
		if !sm.Seen {
			continue
		}
		s.SeenPoints++
		observers = append(observers, float64(k))
		for _, idx := range sm.Observers {
			if idx < 0 || idx >= len(s.Cameras) {
				continue
			}
			s.Cameras[idx].Points++
			if k == 1 {
				s.Cameras[idx].Exclusive++
			}
		}
	}

	if s.TotalPoints > 0 {
		s.SeenFrac = float64(s.SeenPoints) / float64(s.TotalPoints)
		for i := range s.Cameras {
			s.Cameras[i].Fraction = float64(s.Cameras[i].Points) / float64(s.TotalPoints)
		}
	}
	if len(observers) > 0 {
		s.MeanObservers = floats.Sum(observers) / float64(len(observers))
	}
	return s
}
