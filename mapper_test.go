package scrub

import (
	"math"
	"testing"
)

func TestFrameMapperReferenceSequence(t *testing.T) {
	m := NewFrameMapper(207)
	cases := []struct {
		p    float64
		want int
	}{
		{0, 0},
		{0.45, 103},
		{0.9, 206},
		{0.95, 206},
		{1, 206},
	}
	for _, c := range cases {
		if got := m.Index(c.p); got != c.want {
			t.Errorf("Index(%v) = %d, want %d", c.p, got, c.want)
		}
	}
}

func TestFrameMapperBounds(t *testing.T) {
	m := NewFrameMapper(207)
	for _, p := range []float64{-5, -0.01, math.NaN(), math.Inf(-1)} {
		if got := m.Index(p); got != 0 {
			t.Errorf("Index(%v) = %d, want 0", p, got)
		}
	}
	for _, p := range []float64{1.5, 100, math.Inf(1)} {
		if got := m.Index(p); got != 206 {
			t.Errorf("Index(%v) = %d, want 206", p, got)
		}
	}
}

func TestFrameMapperMonotonic(t *testing.T) {
	for _, n := range []int{2, 3, 10, 207, 1000} {
		m := NewFrameMapper(n)
		prev := 0
		for i := 0; i <= 2000; i++ {
			p := float64(i) / 2000
			idx := m.Index(p)
			if idx < prev {
				t.Fatalf("n=%d: Index(%v) = %d < previous %d", n, p, idx, prev)
			}
			if idx < 0 || idx >= n {
				t.Fatalf("n=%d: Index(%v) = %d out of range", n, p, idx)
			}
			prev = idx
		}
		if prev != n-1 {
			t.Errorf("n=%d: last index %d, want %d", n, prev, n-1)
		}
	}
}

func TestFrameMapperHoldsLastFrame(t *testing.T) {
	m := NewFrameMapper(207)
	for p := 0.9; p <= 1.0; p += 0.01 {
		if got := m.Index(p); got != 206 {
			t.Errorf("Index(%v) = %d, want 206", p, got)
		}
	}
}

func TestFrameMapperDegenerateCounts(t *testing.T) {
	for _, n := range []int{-1, 0, 1} {
		m := NewFrameMapper(n)
		for _, p := range []float64{0, 0.5, 1} {
			if got := m.Index(p); got != 0 {
				t.Errorf("n=%d: Index(%v) = %d, want 0", n, p, got)
			}
		}
	}
}

func TestFrameMapperCustomSpan(t *testing.T) {
	m := FrameMapper{Count: 11, PlaybackSpan: 0.5}
	if got := m.Index(0.25); got != 5 {
		t.Errorf("Index(0.25) = %d, want 5", got)
	}
	if got := m.Index(0.5); got != 10 {
		t.Errorf("Index(0.5) = %d, want 10", got)
	}

	bad := FrameMapper{Count: 11, PlaybackSpan: 0}
	if got, want := bad.Index(0.45), NewFrameMapper(11).Index(0.45); got != want {
		t.Errorf("zero span Index(0.45) = %d, want default %d", got, want)
	}
}
