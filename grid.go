package main

import "fmt"

// Cell is one grid slot.
type Cell struct {
	Shape          ShapeID
	Color          int
	Locked         bool
	LastCycleFrame int
}

func emptyCell() Cell {
	return Cell{Shape: EmptyShape}
}

func (c Cell) Empty() bool {
	return c.Shape == EmptyShape
}

type cellKey struct {
	col, row int
}

// Grid stores cells indexed [col][row]. The array always matches the
// current dimensions; cells cut off by shrinking are shelved and come back
// when the grid grows over them again.
type Grid struct {
	cols, rows int
	cells      [][]Cell
	shelf      map[cellKey]Cell
}

func NewGrid(cols, rows int) (*Grid, error) {
	g := &Grid{shelf: make(map[cellKey]Cell)}
	if err := g.Resize(cols, rows, nil); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Grid) Cols() int { return g.cols }
func (g *Grid) Rows() int { return g.rows }

// Resize changes the extent. Overlapping cells are copied forward, shelved
// cells are restored and the rest come from fill (empty when fill is nil).
func (g *Grid) Resize(cols, rows int, fill func() Cell) error {
	if cols <= 0 || rows <= 0 {
		return fmt.Errorf("%dx%d: %w", cols, rows, ErrInvalidSize)
	}
	if fill == nil {
		fill = emptyCell
	}
	for c := 0; c < g.cols; c++ {
		for r := 0; r < g.rows; r++ {
			if c >= cols || r >= rows {
				g.shelf[cellKey{c, r}] = g.cells[c][r]
			}
		}
	}

	cells := make([][]Cell, cols)
	for c := 0; c < cols; c++ {
		cells[c] = make([]Cell, rows)
		for r := 0; r < rows; r++ {
			switch {
			case c < g.cols && r < g.rows:
				cells[c][r] = g.cells[c][r]
			default:
				if old, ok := g.shelf[cellKey{c, r}]; ok {
					cells[c][r] = old
					delete(g.shelf, cellKey{c, r})
				} else {
					cells[c][r] = fill()
				}
			}
			cells[c][r].LastCycleFrame = 0
		}
	}
	g.cols, g.rows, g.cells = cols, rows, cells
	return nil
}

func (g *Grid) inBounds(c, r int) bool {
	return c >= 0 && c < g.cols && r >= 0 && r < g.rows
}

func (g *Grid) Cell(c, r int) (Cell, error) {
	if !g.inBounds(c, r) {
		return Cell{}, fmt.Errorf("(%d,%d): %w", c, r, ErrOutOfRange)
	}
	return g.cells[c][r], nil
}

func (g *Grid) cell(c, r int) *Cell {
	return &g.cells[c][r]
}

func (g *Grid) SetCell(c, r int, shape ShapeID, colorIndex int) error {
	if !g.inBounds(c, r) {
		return fmt.Errorf("(%d,%d): %w", c, r, ErrOutOfRange)
	}
	g.cells[c][r].Shape = shape
	g.cells[c][r].Color = colorIndex
	return nil
}

// ClearCell empties the cell and releases its lock.
func (g *Grid) ClearCell(c, r int) error {
	if !g.inBounds(c, r) {
		return fmt.Errorf("(%d,%d): %w", c, r, ErrOutOfRange)
	}
	g.cells[c][r].Shape = EmptyShape
	g.cells[c][r].Locked = false
	return nil
}

func (g *Grid) ToggleLock(c, r int) error {
	if !g.inBounds(c, r) {
		return fmt.Errorf("(%d,%d): %w", c, r, ErrOutOfRange)
	}
	g.cells[c][r].Locked = !g.cells[c][r].Locked
	return nil
}

// Reset empties every cell, unlocks it, zeroes its color and forgets the
// shelf.
func (g *Grid) Reset() {
	for c := range g.cells {
		for r := range g.cells[c] {
			g.cells[c][r] = emptyCell()
		}
	}
	g.shelf = make(map[cellKey]Cell)
}

// Each visits cells in row-major order.
func (g *Grid) Each(fn func(c, r int, cell *Cell)) {
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			fn(c, r, &g.cells[c][r])
		}
	}
}

// eachStored visits shelved cells as well as the live ones.
func (g *Grid) eachStored(fn func(cell *Cell)) {
	g.Each(func(_, _ int, cell *Cell) { fn(cell) })
	for k, cell := range g.shelf {
		fn(&cell)
		g.shelf[k] = cell
	}
}

// InvalidateCustom empties every cell, shelved or live, holding a custom
// shape id.
func (g *Grid) InvalidateCustom() int {
	n := 0
	g.eachStored(func(cell *Cell) {
		if cell.Shape.IsCustom() {
			cell.Shape = EmptyShape
			n++
		}
	})
	return n
}

// Sanitize empties cells whose shape valid rejects.
func (g *Grid) Sanitize(valid func(ShapeID) bool) {
	g.eachStored(func(cell *Cell) {
		if !cell.Empty() && !valid(cell.Shape) {
			cell.Shape = EmptyShape
		}
	})
}

// RemapPaletteRemoval keeps colors attached to cells after palette entry k
// is removed: indices above k shift down, cells that used k take whatever
// now sits at k (mod newLen).
func (g *Grid) RemapPaletteRemoval(k, newLen int) {
	g.eachStored(func(cell *Cell) {
		switch {
		case newLen <= 0:
			cell.Color = 0
		case cell.Color > k:
			cell.Color--
		case cell.Color == k:
			cell.Color = k % newLen
		}
	})
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	cp := &Grid{cols: g.cols, rows: g.rows, shelf: make(map[cellKey]Cell, len(g.shelf))}
	cp.cells = make([][]Cell, g.cols)
	for c := range g.cells {
		cp.cells[c] = append([]Cell(nil), g.cells[c]...)
	}
	for k, v := range g.shelf {
		cp.shelf[k] = v
	}
	return cp
}

// Equal compares the live cells of two grids, ignoring cycle timestamps.
func (g *Grid) Equal(o *Grid) bool {
	if g.cols != o.cols || g.rows != o.rows {
		return false
	}
	for c := range g.cells {
		for r := range g.cells[c] {
			a, b := g.cells[c][r], o.cells[c][r]
			a.LastCycleFrame, b.LastCycleFrame = 0, 0
			if a != b {
				return false
			}
		}
	}
	return true
}
