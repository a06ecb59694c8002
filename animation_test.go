package main

import (
	"math"
	"testing"
)

func TestAxisAnimationOffset(t *testing.T) {
	a := AxisAnimation{Wave: WaveSine, Amplitude: 10, Frequency: 0.5, Speed: 0.1}
	if got := a.Offset(7, 3, 0); got != 0 {
		t.Errorf("disabled Offset = %v, want 0", got)
	}
	a.Enabled = true
	want := 10 * math.Sin(0.1*7+0.5*3)
	if got := a.Offset(7, 3, 0); math.Abs(got-want) > 1e-9 {
		t.Errorf("Offset = %v, want %v", got, want)
	}
	a.Wave = WaveCosine
	if got := a.Offset(0, 0, 0); math.Abs(got-10) > 1e-9 {
		t.Errorf("cosine Offset at 0 = %v, want 10", got)
	}
}

func TestSmoothNoise(t *testing.T) {
	for i := 0; i < 200; i++ {
		x := float64(i) * 0.13
		v := smoothNoise(x, 42)
		if v < 0 || v > 1 {
			t.Fatalf("smoothNoise(%v) = %v, out of [0,1]", x, v)
		}
		if v != smoothNoise(x, 42) {
			t.Fatalf("smoothNoise(%v) not deterministic", x)
		}
	}
	// continuity across a lattice point
	if d := math.Abs(smoothNoise(2-1e-9, 1) - smoothNoise(2, 1)); d > 1e-6 {
		t.Errorf("jump of %v at lattice point", d)
	}
}

func TestWaveformNextCycles(t *testing.T) {
	w := WaveSine
	for i := 0; i < 3; i++ {
		w = w.Next()
	}
	if w != WaveSine {
		t.Errorf("three Next() calls ended at %v", w)
	}
	for _, w := range []Waveform{WaveSine, WaveCosine, WaveNoise} {
		got, err := parseWaveform(w.String())
		if err != nil || got != w {
			t.Errorf("parseWaveform(%q) = %v, %v", w.String(), got, err)
		}
	}
}

func TestCellOffsetShear(t *testing.T) {
	s := DefaultSettings()
	s.RowShear, s.ColShear = 4, -2
	dx, dy := CellOffset(s, 3, 2, 0)
	if dx != 8 || dy != -6 {
		t.Errorf("CellOffset = (%v, %v), want (8, -6)", dx, dy)
	}
}

func TestDisplayShape(t *testing.T) {
	c := NewCatalog()
	for id := ShapeID(3); id < BuiltinCount; id++ {
		c.Disable(id)
	}
	cycle := CycleAnimation{Enabled: true, Speed: 0.5}
	tests := []struct {
		id    ShapeID
		frame int
		want  ShapeID
	}{
		{0, 0, 0},
		{0, 1, 0},
		{0, 2, 1},
		{2, 2, 0},
		{1, 6, 1},
		{EmptyShape, 4, EmptyShape},
		{9, 4, 9}, // not in catalog
	}
	for _, tt := range tests {
		if got := DisplayShape(c, tt.id, tt.frame, cycle); got != tt.want {
			t.Errorf("DisplayShape(%d, frame %d) = %d, want %d", tt.id, tt.frame, got, tt.want)
		}
	}
	if got := DisplayShape(c, 1, 10, CycleAnimation{Speed: 1}); got != 1 {
		t.Errorf("disabled cycle changed shape to %d", got)
	}
}
