package indicator

import (
	"math"
	"testing"
)

func TestSMAWarmupAndValues(t *testing.T) {
	bars := mkBars(6, func(i int) float64 { return float64(10 + i) }) // 10..15
	out := SMA(bars, 3)

	for i := 0; i < 2; i++ {
		if out[i].Valid {
			t.Fatalf("index %d: valid before warmup", i)
		}
	}
	// mean of 10,11,12 at index 2
	if !out[2].Valid || math.Abs(out[2].Value-11) > 1e-12 {
		t.Fatalf("index 2: got %+v, want 11", out[2])
	}
	if !out[5].Valid || math.Abs(out[5].Value-14) > 1e-12 {
		t.Fatalf("index 5: got %+v, want 14", out[5])
	}
}

func TestSMAShortSeries(t *testing.T) {
	bars := mkBars(2, func(i int) float64 { return 100 })
	for _, p := range SMA(bars, 5) {
		if p.Valid {
			t.Fatal("valid point on a series shorter than the window")
		}
	}
}

func TestMAsClose(t *testing.T) {
	fast := []Point{{Value: 101, Valid: true}}
	slow := []Point{{Value: 100, Valid: true}}

	if !MAsClose(fast, slow, 0, 0.02) {
		t.Fatal("1% apart should be within a 2% threshold")
	}
	if MAsClose(fast, slow, 0, 0.005) {
		t.Fatal("1% apart should not be within a 0.5% threshold")
	}
	if MAsClose(fast, []Point{{}}, 0, 0.02) {
		t.Fatal("invalid slow point should never match")
	}
	if MAsClose(fast, slow, 3, 0.02) {
		t.Fatal("out of range index should never match")
	}
}
