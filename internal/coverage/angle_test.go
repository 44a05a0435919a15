package coverage

import (
	"math"
	"math/rand"
	"testing"
)

func TestBringToInterval_InBandUnchanged(t *testing.T) {
	cases := []struct {
		x, around float64
	}{
		{0, 0},
		{1, 0},
		{-1, 0},
		{math.Pi, 0},
		{-math.Pi, 0},
		{3, 2},
		{math.Pi / 2, math.Pi / 2},
	}
	for _, tc := range cases {
		if got := BringToInterval(tc.x, tc.around); got != tc.x {
			t.Errorf("BringToInterval(%v, %v) = %v, want unchanged", tc.x, tc.around, got)
		}
	}
}

func TestBringToInterval_Wraps(t *testing.T) {
	cases := []struct {
		name      string
		x, around float64
		want      float64
	}{
		{"one turn above", 2*math.Pi + 0.5, 0, 0.5},
		{"one turn below", -2*math.Pi - 0.5, 0, -0.5},
		{"around pi", -math.Pi + 0.1, math.Pi, math.Pi + 0.1},
		{"many turns", 0.25 + 40*math.Pi, 0, 0.25},
		{"many turns negative", 0.25 - 40*math.Pi, 0, 0.25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := BringToInterval(tc.x, tc.around)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("BringToInterval(%v, %v) = %v, want %v", tc.x, tc.around, got, tc.want)
			}
		})
	}
}

func TestBringToInterval_Property(t *testing.T) {
	const tol = 1e-9
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 5000; i++ {
		x := (rng.Float64() - 0.5) * 200
		around := (rng.Float64() - 0.5) * 20
		got := BringToInterval(x, around)

		if got < around-math.Pi-tol || got > around+math.Pi+tol {
			t.Fatalf("BringToInterval(%v, %v) = %v, outside band", x, around, got)
		}

		turns := (got - x) / twoPi
		if math.Abs(turns-math.Round(turns)) > 1e-6 {
			t.Fatalf("BringToInterval(%v, %v) = %v, not congruent mod 2π (turns=%v)", x, around, got, turns)
		}
	}
}

func TestBringToInterval_NonFinite(t *testing.T) {
	if got := BringToInterval(math.Inf(1), 0); !math.IsInf(got, 1) {
		t.Errorf("expected +Inf passthrough, got %v", got)
	}
	if got := BringToInterval(math.NaN(), 0); !math.IsNaN(got) {
		t.Errorf("expected NaN passthrough, got %v", got)
	}
	if got := BringToInterval(1, math.NaN()); got != 1 {
		t.Errorf("expected passthrough with NaN reference, got %v", got)
	}
}

func TestBringToInterval_HugeInputTerminates(t *testing.T) {
	got := BringToInterval(1e12, 0)
	if got < -math.Pi-1e-3 || got > math.Pi+1e-3 {
		t.Errorf("BringToInterval(1e12, 0) = %v, outside band", got)
	}
}
