package main

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"slices"
)

// Sketch couples the grid with the shape catalog, the active settings and
// the random source used by the re-seeding policies. All mutation happens
// on the UI goroutine.
type Sketch struct {
	grid     *Grid
	catalog  *Catalog
	settings Settings
	rng      *rand.Rand
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// NewSketch builds a sketch with every built-in shape enabled and the grid
// filled according to s.Fill.
func NewSketch(s Settings) (*Sketch, error) {
	sk := &Sketch{
		catalog:  NewCatalog(),
		settings: s,
		rng:      newRand(s.Seed),
	}
	grid, err := NewGrid(s.Cols, s.Rows)
	if err != nil {
		return nil, err
	}
	sk.grid = grid
	grid.Each(func(_, _ int, cell *Cell) { *cell = sk.newCell() })
	return sk, nil
}

func (sk *Sketch) Grid() *Grid        { return sk.grid }
func (sk *Sketch) Catalog() *Catalog  { return sk.catalog }
func (sk *Sketch) Settings() Settings { return sk.settings }

// newCell applies the fill policy for freshly created cells.
func (sk *Sketch) newCell() Cell {
	cell := emptyCell()
	if sk.settings.Fill == FillEmpty || sk.catalog.Len() == 0 {
		return cell
	}
	cell.Shape = sk.randomShape()
	if sk.settings.PaletteActive() {
		cell.Color = sk.rng.IntN(sk.settings.Palette.Len())
	}
	return cell
}

func (sk *Sketch) randomShape() ShapeID {
	return sk.catalog.At(sk.rng.IntN(sk.catalog.Len()))
}

// SetSettings installs s, resizing the grid when its dimensions changed.
func (sk *Sketch) SetSettings(s Settings) error {
	if s.Cols != sk.grid.Cols() || s.Rows != sk.grid.Rows() {
		prev := sk.settings
		sk.settings = s
		if err := sk.grid.Resize(s.Cols, s.Rows, sk.newCell); err != nil {
			sk.settings = prev
			return err
		}
		Logger().Debug("grid resized", "cols", s.Cols, "rows", s.Rows)
		return nil
	}
	sk.settings = s
	return nil
}

// Resize is SetSettings with only the dimensions changed.
func (sk *Sketch) Resize(cols, rows int) error {
	s, err := sk.settings.WithGrid(cols, rows)
	if err != nil {
		return err
	}
	return sk.SetSettings(s)
}

func (sk *Sketch) SetCell(c, r int, shape ShapeID, colorIndex int) error {
	if shape != EmptyShape && !sk.catalog.Known(shape) {
		return fmt.Errorf("shape %d: %w", shape, ErrUnknownShape)
	}
	return sk.grid.SetCell(c, r, shape, colorIndex)
}

func (sk *Sketch) ClearCell(c, r int) error {
	return sk.grid.ClearCell(c, r)
}

func (sk *Sketch) ToggleLock(c, r int) error {
	return sk.grid.ToggleLock(c, r)
}

// ToggleShape enables or disables id and re-seeds the grid so the change
// is visible immediately. Disabling moves every cell holding id to a random
// remaining shape, shelved cells included, or empties it when nothing is
// left. Enabling swaps the
// new id into each occupied cell with probability 1/|catalog|.
func (sk *Sketch) ToggleShape(id ShapeID, enabled bool) error {
	if enabled {
		if sk.catalog.Contains(id) {
			return nil
		}
		if err := sk.catalog.Enable(id); err != nil {
			return err
		}
		n := sk.catalog.Len()
		sk.grid.Each(func(_, _ int, cell *Cell) {
			if !cell.Empty() && sk.rng.IntN(n) == 0 {
				cell.Shape = id
			}
		})
		return nil
	}

	if !sk.catalog.Contains(id) {
		return sk.catalog.Disable(id)
	}
	if err := sk.catalog.Disable(id); err != nil {
		return err
	}
	sk.grid.eachStored(func(cell *Cell) {
		if cell.Shape != id {
			return
		}
		if sk.catalog.Len() == 0 {
			cell.Shape = EmptyShape
			return
		}
		cell.Shape = sk.randomShape()
	})
	return nil
}

// Cycle is the click action: an empty cell takes the first catalog shape,
// an occupied one the next (wrapping). With a palette in use the color
// index advances too. Locked cells are left alone.
func (sk *Sketch) Cycle(c, r int) error {
	if !sk.grid.inBounds(c, r) {
		return fmt.Errorf("(%d,%d): %w", c, r, ErrOutOfRange)
	}
	if sk.catalog.Len() == 0 {
		return ErrEmptyCatalog
	}
	cell := sk.grid.cell(c, r)
	if cell.Locked {
		return nil
	}
	if cell.Empty() {
		cell.Shape = sk.catalog.At(0)
	} else {
		cell.Shape = sk.catalog.Next(cell.Shape)
	}
	if sk.settings.PaletteActive() {
		cell.Color = (cell.Color + 1) % sk.settings.Palette.Len()
	}
	return nil
}

// Paint fills an empty, unlocked cell with a random catalog shape. It
// reports whether the cell changed.
func (sk *Sketch) Paint(c, r int) (bool, error) {
	if !sk.grid.inBounds(c, r) {
		return false, fmt.Errorf("(%d,%d): %w", c, r, ErrOutOfRange)
	}
	if sk.catalog.Len() == 0 {
		return false, ErrEmptyCatalog
	}
	cell := sk.grid.cell(c, r)
	if cell.Locked || !cell.Empty() {
		return false, nil
	}
	cell.Shape = sk.randomShape()
	if sk.settings.PaletteActive() {
		cell.Color = sk.rng.IntN(sk.settings.Palette.Len())
	}
	return true, nil
}

// HoverCycle advances the shape under a hovering pointer at most once
// every CycleDelay frames.
func (sk *Sketch) HoverCycle(c, r, frame int) bool {
	if !sk.grid.inBounds(c, r) || sk.catalog.Len() == 0 {
		return false
	}
	cell := sk.grid.cell(c, r)
	if cell.Locked || cell.Empty() {
		return false
	}
	if frame-cell.LastCycleFrame < sk.settings.CycleDelay {
		return false
	}
	cell.Shape = sk.catalog.Next(cell.Shape)
	cell.LastCycleFrame = frame
	return true
}

// Hover describes the pointer for one frame.
type Hover struct {
	Active bool
	Col    int
	Row    int
	Cycle  bool // cycle modifier held
}

// Advance runs the per-frame state update that precedes drawing.
func (sk *Sketch) Advance(frame int, h Hover) bool {
	if h.Active && h.Cycle {
		return sk.HoverCycle(h.Col, h.Row, frame)
	}
	return false
}

// Shuffle reseeds from the settings and redistributes the existing shapes
// over the grid. An empty grid is instead filled at random, leaving roughly
// 30% of cells blank.
func (sk *Sketch) Shuffle() error {
	sk.rng = newRand(sk.settings.Seed)
	type entry struct {
		shape ShapeID
		color int
	}
	var cells []entry
	sk.grid.Each(func(_, _ int, cell *Cell) {
		if !cell.Empty() {
			cells = append(cells, entry{cell.Shape, cell.Color})
		}
	})

	if len(cells) == 0 {
		if sk.catalog.Len() == 0 {
			return ErrEmptyCatalog
		}
		sk.grid.Each(func(_, _ int, cell *Cell) {
			if sk.rng.Float64() > 0.3 {
				cell.Shape = sk.randomShape()
				if sk.settings.PaletteActive() {
					cell.Color = sk.rng.IntN(sk.settings.Palette.Len())
				}
			} else {
				cell.Shape = EmptyShape
			}
		})
		return nil
	}

	sk.rng.Shuffle(len(cells), func(i, j int) { cells[i], cells[j] = cells[j], cells[i] })
	i := 0
	sk.grid.Each(func(_, _ int, cell *Cell) {
		if i < len(cells) {
			cell.Shape, cell.Color = cells[i].shape, cells[i].color
			i++
			return
		}
		cell.Shape, cell.Color = EmptyShape, 0
	})
	return nil
}

// Clear empties the whole canvas.
func (sk *Sketch) Clear() {
	sk.grid.Reset()
}

// SetSeed changes the seed used by Shuffle.
func (sk *Sketch) SetSeed(seed int64) {
	sk.settings = sk.settings.With(func(s *Settings) { s.Seed = seed })
}

func (sk *Sketch) AddPaletteColor(c color.RGBA) error {
	p, err := sk.settings.Palette.Add(c)
	if err != nil {
		return err
	}
	sk.settings = sk.settings.WithPalette(p).With(func(s *Settings) { s.UsePalette = true })
	return nil
}

func (sk *Sketch) RemovePaletteColor(index int) error {
	p, err := sk.settings.Palette.Remove(index)
	if err != nil {
		return err
	}
	sk.grid.RemapPaletteRemoval(index, p.Len())
	sk.settings = sk.settings.WithPalette(p)
	return nil
}

func (sk *Sketch) ClearPalette() {
	sk.grid.RemapPaletteRemoval(0, 0)
	sk.settings = sk.settings.WithPalette(Palette{})
}

// AddCustomShape registers asset and returns its id.
func (sk *Sketch) AddCustomShape(asset *Asset) ShapeID {
	id := sk.catalog.AddCustom(asset, asset.Name)
	Logger().Info("custom shape added", "id", int(id), "name", asset.Name, "key", asset.Key)
	return id
}

// RemoveCustomShape deletes the asset at index. Every cell holding a custom
// id is emptied because the remaining ids shift.
func (sk *Sketch) RemoveCustomShape(index int) error {
	if err := sk.catalog.RemoveCustom(index); err != nil {
		return err
	}
	n := sk.grid.InvalidateCustom()
	Logger().Info("custom shape removed", "index", index, "cells_emptied", n)
	return nil
}

// ApplySample writes an image sample into the grid. A sample taken for a
// different extent is rejected.
func (sk *Sketch) ApplySample(s *Sample) error {
	if len(s.Shapes) != sk.grid.Cols() || (len(s.Shapes) > 0 && len(s.Shapes[0]) != sk.grid.Rows()) {
		return fmt.Errorf("sample does not match %dx%d grid: %w", sk.grid.Cols(), sk.grid.Rows(), ErrOutOfRange)
	}
	if s.Palette != nil {
		sk.settings = sk.settings.WithPalette(*s.Palette).With(func(st *Settings) { st.UsePalette = true })
	}
	sk.grid.Each(func(c, r int, cell *Cell) {
		cell.Shape = s.Shapes[c][r]
		if s.Colors != nil && s.Colors[c][r] >= 0 {
			cell.Color = s.Colors[c][r]
		}
	})
	return nil
}

// Snapshot is the undoable part of a sketch: the grid, the palette the
// cell color indices refer to and the enabled shapes.
type Snapshot struct {
	grid       *Grid
	palette    Palette
	usePalette bool
	enabled    []ShapeID
	assets     int
}

func (sk *Sketch) Snapshot() Snapshot {
	return Snapshot{
		grid:       sk.grid.Clone(),
		palette:    sk.settings.Palette,
		usePalette: sk.settings.UsePalette,
		enabled:    sk.catalog.Enabled(),
		assets:     len(sk.catalog.Assets()),
	}
}

// Equal reports whether two snapshots hold the same cells, palette and
// enabled shapes.
func (s Snapshot) Equal(o Snapshot) bool {
	if s.grid == nil || o.grid == nil {
		return s.grid == o.grid
	}
	return s.grid.Equal(o.grid) && s.palette.String() == o.palette.String() &&
		s.usePalette == o.usePalette && slices.Equal(s.enabled, o.enabled)
}

// Restore replaces grid, palette and enabled shapes with a snapshot,
// dropping ids the catalog no longer knows. Custom shapes added after the
// snapshot keep their enabled state. Grid dimensions follow the snapshot.
func (sk *Sketch) Restore(snap Snapshot) {
	enabled := slices.DeleteFunc(slices.Clone(snap.enabled), func(id ShapeID) bool {
		return !sk.catalog.Known(id)
	})
	for _, id := range sk.catalog.Enabled() {
		if id.IsCustom() && int(id-FirstCustom) >= snap.assets {
			enabled = append(enabled, id)
		}
	}
	if err := sk.catalog.SetEnabled(enabled); err != nil {
		Logger().Warn("enabled shapes not restored", "err", err)
	}
	g := snap.grid.Clone()
	g.Sanitize(sk.catalog.Known)
	sk.grid = g
	sk.settings = sk.settings.WithPalette(snap.palette).With(func(s *Settings) {
		s.UsePalette = snap.usePalette && snap.palette.Len() > 0
		s.Cols, s.Rows = g.Cols(), g.Rows()
		if s.LockAspect && s.Cols != s.Rows {
			s.LockAspect = false
		}
	})
}
