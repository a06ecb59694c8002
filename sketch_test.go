package main

import (
	"errors"
	"image/color"
	"testing"
)

// newTestSketch returns an empty sketch whose catalog holds only the
// given shapes.
func newTestSketch(t *testing.T, cols, rows int, enabled ...ShapeID) *Sketch {
	t.Helper()
	s := DefaultSettings()
	s.Cols, s.Rows = cols, rows
	s.Fill = FillEmpty
	sk, err := NewSketch(s)
	if err != nil {
		t.Fatalf("NewSketch() error = %v", err)
	}
	if len(enabled) > 0 {
		keep := map[ShapeID]bool{}
		for _, id := range enabled {
			keep[id] = true
		}
		for _, id := range sk.Catalog().All() {
			if !keep[id] {
				sk.Catalog().Disable(id)
			}
		}
	}
	return sk
}

func shapeAt(t *testing.T, sk *Sketch, c, r int) ShapeID {
	t.Helper()
	cell, err := sk.Grid().Cell(c, r)
	if err != nil {
		t.Fatal(err)
	}
	return cell.Shape
}

func TestNewSketchFillPolicy(t *testing.T) {
	s := DefaultSettings()
	s.Fill = FillRandom
	sk, err := NewSketch(s)
	if err != nil {
		t.Fatal(err)
	}
	sk.Grid().Each(func(c, r int, cell *Cell) {
		if cell.Empty() {
			t.Errorf("cell (%d,%d) empty with random fill", c, r)
		}
	})

	if _, err := NewSketch(Settings{Cols: 0, Rows: 1}); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("NewSketch(0x1) error = %v, want ErrInvalidSize", err)
	}
}

func TestCycleWraps(t *testing.T) {
	sk := newTestSketch(t, 1, 1, 0, 1, 2)
	want := []ShapeID{0, 1, 2, 0}
	for i, w := range want {
		if err := sk.Cycle(0, 0); err != nil {
			t.Fatal(err)
		}
		if got := shapeAt(t, sk, 0, 0); got != w {
			t.Errorf("cycle %d: shape = %d, want %d", i, got, w)
		}
	}
}

func TestCycleErrors(t *testing.T) {
	sk := newTestSketch(t, 2, 2)
	if err := sk.Cycle(2, 0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Cycle(2,0) error = %v, want ErrOutOfRange", err)
	}
	for _, id := range sk.Catalog().All() {
		sk.Catalog().Disable(id)
	}
	if err := sk.Cycle(0, 0); !errors.Is(err, ErrEmptyCatalog) {
		t.Errorf("Cycle on empty catalog error = %v, want ErrEmptyCatalog", err)
	}
}

func TestCycleLockedCellUnchanged(t *testing.T) {
	sk := newTestSketch(t, 1, 1, 0, 1)
	sk.SetCell(0, 0, 1, 0)
	sk.ToggleLock(0, 0)
	if err := sk.Cycle(0, 0); err != nil {
		t.Fatal(err)
	}
	if got := shapeAt(t, sk, 0, 0); got != 1 {
		t.Errorf("locked cell shape = %d, want 1", got)
	}
}

func TestCycleAdvancesPaletteIndex(t *testing.T) {
	sk := newTestSketch(t, 1, 1, 0, 1)
	sk.AddPaletteColor(color.RGBA{255, 0, 0, 255})
	sk.AddPaletteColor(color.RGBA{0, 0, 255, 255})
	sk.SetCell(0, 0, 0, 1)
	sk.Cycle(0, 0)
	cell, _ := sk.Grid().Cell(0, 0)
	if cell.Shape != 1 || cell.Color != 0 {
		t.Errorf("cell = %+v, want shape 1 color 0", cell)
	}
}

func TestPaintOnlyEmptyUnlocked(t *testing.T) {
	sk := newTestSketch(t, 3, 1, 4)
	sk.SetCell(1, 0, 0, 0)
	sk.ToggleLock(2, 0)

	changed, err := sk.Paint(0, 0)
	if err != nil || !changed {
		t.Fatalf("Paint(0,0) = %v, %v, want true", changed, err)
	}
	if got := shapeAt(t, sk, 0, 0); got != 4 {
		t.Errorf("painted shape = %d, want 4", got)
	}
	if changed, _ := sk.Paint(1, 0); changed {
		t.Error("Paint should not touch an occupied cell")
	}
	if changed, _ := sk.Paint(2, 0); changed {
		t.Error("Paint should not touch a locked cell")
	}
	if _, err := sk.Paint(5, 0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Paint(5,0) error = %v, want ErrOutOfRange", err)
	}
}

func TestHoverCycleDelay(t *testing.T) {
	sk := newTestSketch(t, 1, 1, 0, 1, 2)
	sk.SetCell(0, 0, 0, 0)
	delay := sk.Settings().CycleDelay
	h := Hover{Active: true, Col: 0, Row: 0, Cycle: true}

	if !sk.Advance(delay, h) {
		t.Fatal("first hover cycle should fire")
	}
	if sk.Advance(2*delay-1, h) {
		t.Error("hover cycle fired before the delay elapsed")
	}
	if !sk.Advance(2*delay, h) {
		t.Error("hover cycle should fire once the delay elapsed")
	}
	if got := shapeAt(t, sk, 0, 0); got != 2 {
		t.Errorf("shape = %d, want 2", got)
	}
	h.Cycle = false
	if sk.Advance(10*delay, h) {
		t.Error("no cycle without the modifier")
	}
}

func TestToggleShapeDisableLast(t *testing.T) {
	sk := newTestSketch(t, 2, 1, 3)
	sk.SetCell(0, 0, 3, 0)
	sk.SetCell(1, 0, 3, 0)
	if err := sk.ToggleShape(3, false); err != nil {
		t.Fatal(err)
	}
	if sk.Catalog().Len() != 0 {
		t.Fatalf("catalog len = %d, want 0", sk.Catalog().Len())
	}
	sk.Grid().Each(func(c, r int, cell *Cell) {
		if !cell.Empty() {
			t.Errorf("cell (%d,%d) = %d, want empty", c, r, cell.Shape)
		}
	})
}

func TestToggleShapeDisableReseeds(t *testing.T) {
	sk := newTestSketch(t, 4, 4, 1, 2)
	sk.Grid().Each(func(c, r int, _ *Cell) { sk.SetCell(c, r, 1, 0) })
	if err := sk.ToggleShape(1, false); err != nil {
		t.Fatal(err)
	}
	sk.Grid().Each(func(c, r int, cell *Cell) {
		if cell.Shape != 2 {
			t.Errorf("cell (%d,%d) = %d, want 2", c, r, cell.Shape)
		}
	})
}

func TestToggleShapeDisableReachesShelvedCells(t *testing.T) {
	sk := newTestSketch(t, 2, 1, 3, 4)
	sk.SetCell(1, 0, 3, 0)
	if err := sk.Resize(1, 1); err != nil {
		t.Fatal(err)
	}
	if err := sk.ToggleShape(3, false); err != nil {
		t.Fatal(err)
	}
	if err := sk.Resize(2, 1); err != nil {
		t.Fatal(err)
	}
	if got := shapeAt(t, sk, 1, 0); got != 4 {
		t.Errorf("cell (1,0) after growing back = %d, want 4", got)
	}
}

func TestToggleShapeEnableReseeds(t *testing.T) {
	sk := newTestSketch(t, 40, 40, 0, 1, 2)
	occupied := 0
	sk.Grid().Each(func(c, r int, cell *Cell) {
		if (c+r)%4 == 0 {
			return
		}
		sk.SetCell(c, r, 0, 0)
		occupied++
		if c%5 == 0 {
			sk.ToggleLock(c, r)
		}
	})
	if err := sk.ToggleShape(3, true); err != nil {
		t.Fatal(err)
	}
	if !sk.Catalog().Contains(3) {
		t.Fatal("shape 3 not enabled")
	}

	swapped, lockedSwapped := 0, 0
	sk.Grid().Each(func(c, r int, cell *Cell) {
		if (c+r)%4 == 0 {
			if !cell.Empty() {
				t.Errorf("empty cell (%d,%d) got shape %d", c, r, cell.Shape)
			}
			return
		}
		if cell.Shape == 3 {
			swapped++
			if cell.Locked {
				lockedSwapped++
			}
		}
	})
	// 1/4 of the occupied cells, give or take a few standard deviations
	want := occupied / 4
	if swapped < want-60 || swapped > want+60 {
		t.Errorf("swapped %d of %d occupied cells, want about %d", swapped, occupied, want)
	}
	if lockedSwapped == 0 {
		t.Error("locked occupied cells should be re-seeded too")
	}

	before := sk.Snapshot()
	if err := sk.ToggleShape(3, true); err != nil {
		t.Fatal(err)
	}
	if !before.Equal(sk.Snapshot()) {
		t.Error("enabling an enabled shape should change nothing")
	}
}

func TestRemoveCustomShapeEmptiesCells(t *testing.T) {
	sk := newTestSketch(t, 3, 1)
	a := sk.AddCustomShape(mustAsset(t, "a"))
	b := sk.AddCustomShape(mustAsset(t, "b"))
	sk.SetCell(0, 0, 2, 0)
	sk.SetCell(1, 0, a, 0)
	sk.SetCell(2, 0, b, 0)

	if err := sk.RemoveCustomShape(0); err != nil {
		t.Fatal(err)
	}
	for c, want := range []ShapeID{2, EmptyShape, EmptyShape} {
		if got := shapeAt(t, sk, c, 0); got != want {
			t.Errorf("cell %d = %d, want %d", c, got, want)
		}
	}

	// re-enabling an id that no longer exists must fail
	if err := sk.ToggleShape(b, true); !errors.Is(err, ErrUnknownShape) {
		t.Errorf("ToggleShape(%d, true) error = %v, want ErrUnknownShape", b, err)
	}
}

func TestShuffleDeterministic(t *testing.T) {
	run := func(seed int64) []ShapeID {
		sk := newTestSketch(t, 4, 4)
		sk.SetSeed(seed)
		if err := sk.Shuffle(); err != nil {
			t.Fatal(err)
		}
		var out []ShapeID
		sk.Grid().Each(func(_, _ int, cell *Cell) { out = append(out, cell.Shape) })
		return out
	}
	a, b := run(7), run(7)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed gave different grids: %v vs %v", a, b)
		}
	}
}

func TestShufflePreservesShapes(t *testing.T) {
	sk := newTestSketch(t, 3, 3)
	sk.SetCell(0, 0, 1, 0)
	sk.SetCell(2, 2, 5, 0)
	if err := sk.Shuffle(); err != nil {
		t.Fatal(err)
	}
	counts := map[ShapeID]int{}
	sk.Grid().Each(func(_, _ int, cell *Cell) { counts[cell.Shape]++ })
	if counts[1] != 1 || counts[5] != 1 || counts[EmptyShape] != 7 {
		t.Errorf("shape counts after shuffle = %v", counts)
	}
}

func TestShuffleEmptyCatalog(t *testing.T) {
	sk := newTestSketch(t, 2, 2)
	for _, id := range sk.Catalog().All() {
		sk.Catalog().Disable(id)
	}
	if err := sk.Shuffle(); !errors.Is(err, ErrEmptyCatalog) {
		t.Errorf("Shuffle error = %v, want ErrEmptyCatalog", err)
	}
}

func TestRemovePaletteColorRemaps(t *testing.T) {
	sk := newTestSketch(t, 3, 1)
	for _, c := range []color.RGBA{{255, 0, 0, 255}, {0, 255, 0, 255}, {0, 0, 255, 255}} {
		if err := sk.AddPaletteColor(c); err != nil {
			t.Fatal(err)
		}
	}
	for c := 0; c < 3; c++ {
		sk.SetCell(c, 0, 0, c)
	}
	if err := sk.RemovePaletteColor(0); err != nil {
		t.Fatal(err)
	}
	for c, want := range []int{0, 0, 1} {
		cell, _ := sk.Grid().Cell(c, 0)
		if cell.Color != want {
			t.Errorf("cell %d color = %d, want %d", c, cell.Color, want)
		}
	}
	if sk.Settings().Palette.Len() != 2 {
		t.Errorf("palette len = %d, want 2", sk.Settings().Palette.Len())
	}
}

func TestSnapshotRestore(t *testing.T) {
	sk := newTestSketch(t, 2, 2)
	sk.SetCell(0, 0, 3, 0)
	snap := sk.Snapshot()

	sk.SetCell(0, 0, 4, 0)
	sk.Resize(3, 3)
	if snap.Equal(sk.Snapshot()) {
		t.Fatal("snapshot should differ after edits")
	}
	sk.Restore(snap)
	if !snap.Equal(sk.Snapshot()) {
		t.Error("restore did not bring the snapshot back")
	}
	if s := sk.Settings(); s.Cols != 2 || s.Rows != 2 {
		t.Errorf("settings = %dx%d after restore, want 2x2", s.Cols, s.Rows)
	}
}

func TestSetSettingsResizes(t *testing.T) {
	sk := newTestSketch(t, 2, 2)
	s, _ := sk.Settings().WithGrid(5, 1)
	if err := sk.SetSettings(s); err != nil {
		t.Fatal(err)
	}
	if sk.Grid().Cols() != 5 || sk.Grid().Rows() != 1 {
		t.Errorf("grid = %dx%d, want 5x1", sk.Grid().Cols(), sk.Grid().Rows())
	}
}
