package main

import (
	"errors"
	"math"
)

// Modifiers are the keys held during a pointer event.
type Modifiers struct {
	Clear bool // alt: clear cells under the pointer
	Cycle bool // ctrl: cycle the hovered cell every few frames
}

type pointerState int

const (
	pointerIdle pointerState = iota
	pointerPressed
	pointerDragging
)

// Pointer turns press, move and release events into grid edits. All
// coordinates are canvas pixels in the space of the Layout passed in.
type Pointer struct {
	state          pointerState
	startX, startY float64
	cleared        bool
	hover          Hover
}

func (p *Pointer) Dragging() bool { return p.state == pointerDragging }
func (p *Pointer) Pressed() bool  { return p.state != pointerIdle }
func (p *Pointer) Hover() Hover   { return p.hover }

func (p *Pointer) track(l Layout, x, y float64, mods Modifiers) {
	c, r, ok := l.CellAt(x, y)
	p.hover = Hover{Active: ok, Col: c, Row: r, Cycle: mods.Cycle}
}

// Press starts a gesture. With the clear modifier the cell under the
// pointer is cleared right away.
func (p *Pointer) Press(sk *Sketch, l Layout, x, y float64, mods Modifiers) error {
	p.state = pointerPressed
	p.startX, p.startY = x, y
	p.cleared = false
	p.track(l, x, y, mods)
	if mods.Clear {
		return p.clearAt(sk, l, x, y)
	}
	return nil
}

// Move handles motion with the button held. Past the drag threshold it
// paints empty cells; with the clear modifier it clears regardless of
// distance.
func (p *Pointer) Move(sk *Sketch, l Layout, x, y float64, mods Modifiers) error {
	p.track(l, x, y, mods)
	if p.state == pointerIdle {
		return nil
	}
	if mods.Clear {
		return p.clearAt(sk, l, x, y)
	}
	if p.state == pointerPressed && math.Hypot(x-p.startX, y-p.startY) > dragThreshold {
		p.state = pointerDragging
	}
	if p.state != pointerDragging {
		return nil
	}
	c, r, ok := l.CellAt(x, y)
	if !ok {
		return nil
	}
	_, err := sk.Paint(c, r)
	return err
}

// Release ends the gesture. A press that neither dragged nor cleared
// cycles the cell it started on.
func (p *Pointer) Release(sk *Sketch, l Layout, x, y float64, mods Modifiers) error {
	state, cleared := p.state, p.cleared
	p.state = pointerIdle
	p.cleared = false
	p.track(l, x, y, mods)
	if state != pointerPressed || cleared {
		return nil
	}
	c, r, ok := l.CellAt(p.startX, p.startY)
	if !ok {
		return nil
	}
	return sk.Cycle(c, r)
}

// HoverAt records motion without a button.
func (p *Pointer) HoverAt(l Layout, x, y float64, mods Modifiers) {
	p.track(l, x, y, mods)
}

// DropCycle forgets the cycle modifier until the next pointer event.
// Terminals report modifiers only alongside mouse events, so a key press
// is the earliest sign that ctrl may have been let go.
func (p *Pointer) DropCycle() {
	p.hover.Cycle = false
}

// Leave forgets the hover target.
func (p *Pointer) Leave() {
	p.hover = Hover{}
}

func (p *Pointer) clearAt(sk *Sketch, l Layout, x, y float64) error {
	p.cleared = true
	c, r, ok := l.CellAt(x, y)
	if !ok {
		return nil
	}
	if err := sk.ClearCell(c, r); err != nil && !errors.Is(err, ErrOutOfRange) {
		return err
	}
	return nil
}
