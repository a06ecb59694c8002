package main

import "time"

type model struct {
	width          int
	height         int
	sketch         *Sketch
	history        History
	pointer        Pointer
	gesture        *Snapshot // grid state when the current press began
	renderer       *Renderer
	viewer         *termView
	config         *Config
	frame          int // ticks since start; drives hover-to-cycle
	animFrame      int // frames shown while not paused; drives animation
	paused         bool
	cycleLatch     bool // hover-to-cycle without holding ctrl
	cursorCol      int
	cursorRow      int
	showCursor     bool
	mode           Mode
	help           bool
	helpScroll     int
	shapeIndex     int
	filename       string
	sketchFile     string
	fileOp         FileOperation
	textTarget     TextInputTarget
	textInputText  string
	confirmAction  ConfirmAction
	confirmShape   ShapeID
	pendingPath    string
	errorMessage   string
	successMessage string
}

type tickMsg time.Time

// viewport is where the canvas sits in the terminal. Each terminal cell
// shows two vertically stacked pixels.
type viewport struct {
	left, top int     // terminal cell offset of the canvas
	cols, rows int     // terminal cells covered
	fit        float64 // view pixels per base pixel
}

// toCanvas converts a terminal cell to base canvas pixels, taking the
// cell's center. ok is false when the cell lies outside the canvas.
func (v viewport) toCanvas(x, y int) (cx, cy float64, ok bool) {
	if v.fit <= 0 {
		return 0, 0, false
	}
	px := float64(x-v.left) + 0.5
	py := float64(y-v.top)*2 + 1
	ok = x >= v.left && y >= v.top && x < v.left+v.cols && y < v.top+v.rows
	return px / v.fit, py / v.fit, ok
}
