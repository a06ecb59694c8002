package main

// Rect is a tile rectangle in output pixels.
type Rect struct {
	X, Y float64
	W, H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Layout maps grid cells to pixel rectangles for one frame at one output
// scale. The renderer and the pointer controller use the same Layout so
// hits land on the tile that is drawn.
type Layout struct {
	Settings Settings
	Frame    int
	Scale    float64
}

func NewLayout(s Settings, frame int, scale float64) Layout {
	if scale <= 0 {
		scale = 1
	}
	return Layout{Settings: s, Frame: frame, Scale: scale}
}

// Size returns the canvas size in output pixels.
func (l Layout) Size() (float64, float64) {
	w, h := l.Settings.CanvasSize()
	return float64(w) * l.Scale, float64(h) * l.Scale
}

// TileSize returns the tile width and height in output pixels.
func (l Layout) TileSize() (float64, float64) {
	w, h := l.Size()
	return w / float64(l.Settings.Cols), h / float64(l.Settings.Rows)
}

// CellRect returns the tile of (col,row) with shear and animation applied.
func (l Layout) CellRect(col, row int) Rect {
	tw, th := l.TileSize()
	dx, dy := CellOffset(l.Settings, col, row, l.Frame)
	return Rect{
		X: float64(col)*tw + dx*l.Scale,
		Y: float64(row)*th + dy*l.Scale,
		W: tw,
		H: th,
	}
}

// CellAt returns the topmost cell whose tile contains (x,y). Tiles are
// drawn row-major and offsets can make them overlap, so the scan runs in
// reverse.
func (l Layout) CellAt(x, y float64) (col, row int, ok bool) {
	for r := l.Settings.Rows - 1; r >= 0; r-- {
		for c := l.Settings.Cols - 1; c >= 0; c-- {
			if l.CellRect(c, r).Contains(x, y) {
				return c, r, true
			}
		}
	}
	return 0, 0, false
}
