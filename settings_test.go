package main

import (
	"errors"
	"testing"
)

func TestSettingsWithGrid(t *testing.T) {
	tests := []struct {
		name       string
		lock       bool
		cols, rows int
		wantCols   int
		wantRows   int
	}{
		{"free", false, 5, 2, 5, 2},
		{"locked cols changed", true, 6, 3, 6, 6},
		{"locked rows changed", true, 3, 7, 7, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			s.Cols, s.Rows, s.LockAspect = 3, 3, tt.lock
			got, err := s.WithGrid(tt.cols, tt.rows)
			if err != nil {
				t.Fatal(err)
			}
			if got.Cols != tt.wantCols || got.Rows != tt.wantRows {
				t.Errorf("WithGrid(%d, %d) = %dx%d, want %dx%d", tt.cols, tt.rows, got.Cols, got.Rows, tt.wantCols, tt.wantRows)
			}
			if got.Version != s.Version+1 {
				t.Errorf("Version = %d, want %d", got.Version, s.Version+1)
			}
		})
	}
}

func TestSettingsWithGridRejectsNonPositive(t *testing.T) {
	s := DefaultSettings()
	got, err := s.WithGrid(0, 3)
	if !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("error = %v, want ErrInvalidSize", err)
	}
	if got.Cols != s.Cols || got.Version != s.Version {
		t.Error("rejected update should return the settings unchanged")
	}
}

func TestSettingsAspect(t *testing.T) {
	s := DefaultSettings()
	if _, err := s.WithAspect("2:1"); !errors.Is(err, ErrUnknownAspect) {
		t.Errorf("WithAspect(2:1) error = %v, want ErrUnknownAspect", err)
	}
	seen := map[string]bool{}
	for i := 0; i < len(aspectNames); i++ {
		next, err := s.WithAspect(s.NextAspect())
		if err != nil {
			t.Fatal(err)
		}
		s = next
		seen[s.Aspect] = true
	}
	if len(seen) != len(aspectNames) {
		t.Errorf("NextAspect visited %d ratios, want %d", len(seen), len(aspectNames))
	}
	if s.Aspect != DefaultSettings().Aspect {
		t.Errorf("full cycle ended at %s", s.Aspect)
	}
}

func TestCanvasSize(t *testing.T) {
	tests := []struct {
		aspect string
		w, h   int
	}{
		{"1:1", 600, 600},
		{"3:4", 600, 800},
		{"16:9", 800, 450},
		{"bogus", 600, 800},
	}
	for _, tt := range tests {
		s := DefaultSettings()
		s.Aspect = tt.aspect
		if w, h := s.CanvasSize(); w != tt.w || h != tt.h {
			t.Errorf("CanvasSize(%s) = %dx%d, want %dx%d", tt.aspect, w, h, tt.w, tt.h)
		}
	}
}

func TestSettingsLockAspectSquares(t *testing.T) {
	s := DefaultSettings()
	got := s.WithLockAspect(true)
	if got.Rows != got.Cols {
		t.Errorf("locked grid = %dx%d, want square", got.Cols, got.Rows)
	}
}

func TestPaletteActive(t *testing.T) {
	s := DefaultSettings()
	s.UsePalette = true
	if s.PaletteActive() {
		t.Error("empty palette should not be active")
	}
	p, _ := ParsePalette("#ff0000")
	s = s.WithPalette(p).With(func(st *Settings) { st.UsePalette = true })
	if !s.PaletteActive() {
		t.Error("palette should be active")
	}
	if s = s.WithPalette(Palette{}); s.UsePalette {
		t.Error("clearing the palette should turn UsePalette off")
	}
}
