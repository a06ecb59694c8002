package main

import "testing"

// The default 3:4 canvas is 600x800, so a 3x4 grid has 200px tiles.
func testLayout(sk *Sketch) Layout {
	return NewLayout(sk.Settings(), 0, 1)
}

func TestLayoutCellAt(t *testing.T) {
	sk := newTestSketch(t, 3, 4)
	l := testLayout(sk)
	tests := []struct {
		x, y   float64
		c, r   int
		inside bool
	}{
		{0, 0, 0, 0, true},
		{199.9, 199.9, 0, 0, true},
		{200, 0, 1, 0, true},
		{599, 799, 2, 3, true},
		{600, 10, 0, 0, false},
		{-1, 10, 0, 0, false},
	}
	for _, tt := range tests {
		c, r, ok := l.CellAt(tt.x, tt.y)
		if ok != tt.inside || (ok && (c != tt.c || r != tt.r)) {
			t.Errorf("CellAt(%v, %v) = (%d, %d, %v), want (%d, %d, %v)", tt.x, tt.y, c, r, ok, tt.c, tt.r, tt.inside)
		}
	}
}

func TestLayoutShearMovesTiles(t *testing.T) {
	sk := newTestSketch(t, 3, 4)
	s := sk.Settings().WithShear(50, 0)
	l := NewLayout(s, 0, 2)
	rect := l.CellRect(0, 1)
	if rect.X != 100 || rect.Y != 400 || rect.W != 400 {
		t.Errorf("CellRect(0,1) at scale 2 = %+v", rect)
	}
	// the pointer follows the drawn tile
	c, r, ok := NewLayout(s, 0, 1).CellAt(60, 210)
	if !ok || c != 0 || r != 1 {
		t.Errorf("CellAt in sheared row = (%d, %d, %v), want (0, 1, true)", c, r, ok)
	}
}

func TestLayoutCellAtPicksTopTile(t *testing.T) {
	sk := newTestSketch(t, 3, 4)
	// (1,0) moves down into (0,1), which moves right over it; row 1 is drawn last
	l := NewLayout(sk.Settings().WithShear(100, 100), 0, 1)
	if !l.CellRect(1, 0).Contains(250, 250) || !l.CellRect(0, 1).Contains(250, 250) {
		t.Fatal("tiles should overlap at (250,250)")
	}
	c, r, ok := l.CellAt(250, 250)
	if !ok || c != 0 || r != 1 {
		t.Errorf("CellAt(250, 250) = (%d, %d, %v), want (0, 1, true)", c, r, ok)
	}
}

func TestPointerClickCycles(t *testing.T) {
	sk := newTestSketch(t, 3, 4)
	l := testLayout(sk)
	var p Pointer
	p.Press(sk, l, 100, 100, Modifiers{})
	p.Move(sk, l, 102, 101, Modifiers{})
	if p.Dragging() {
		t.Fatal("movement under the threshold should not start a drag")
	}
	if err := p.Release(sk, l, 102, 101, Modifiers{}); err != nil {
		t.Fatal(err)
	}
	if got := shapeAt(t, sk, 0, 0); got != sk.Catalog().At(0) {
		t.Errorf("clicked cell = %d, want first catalog shape", got)
	}
	if p.Pressed() {
		t.Error("pointer still pressed after release")
	}
}

func TestPointerDragPaints(t *testing.T) {
	sk := newTestSketch(t, 3, 4)
	l := testLayout(sk)
	var p Pointer
	p.Press(sk, l, 100, 100, Modifiers{})
	if err := p.Move(sk, l, 300, 100, Modifiers{}); err != nil {
		t.Fatal(err)
	}
	if !p.Dragging() {
		t.Fatal("expected a drag")
	}
	p.Move(sk, l, 500, 100, Modifiers{})
	p.Release(sk, l, 500, 100, Modifiers{})

	if shapeAt(t, sk, 0, 0) != EmptyShape {
		t.Error("drag start cell should stay empty")
	}
	for _, c := range []int{1, 2} {
		if shapeAt(t, sk, c, 0) == EmptyShape {
			t.Errorf("cell (%d,0) not painted", c)
		}
	}
}

func TestPointerClearModifier(t *testing.T) {
	sk := newTestSketch(t, 3, 4)
	sk.SetCell(0, 0, 2, 0)
	sk.SetCell(1, 0, 3, 0)
	sk.ToggleLock(1, 0)
	l := testLayout(sk)
	var p Pointer
	alt := Modifiers{Clear: true}

	p.Press(sk, l, 100, 100, alt)
	if shapeAt(t, sk, 0, 0) != EmptyShape {
		t.Error("alt press should clear immediately")
	}
	p.Move(sk, l, 250, 100, alt)
	p.Release(sk, l, 250, 100, alt)

	cell, _ := sk.Grid().Cell(1, 0)
	if !cell.Empty() || cell.Locked {
		t.Errorf("alt drag left %+v, want empty and unlocked", cell)
	}
	if shapeAt(t, sk, 0, 0) != EmptyShape {
		t.Error("release after clearing must not cycle")
	}
}

func TestPointerHover(t *testing.T) {
	sk := newTestSketch(t, 3, 4)
	l := testLayout(sk)
	var p Pointer
	p.HoverAt(l, 450, 650, Modifiers{Cycle: true})
	h := p.Hover()
	if !h.Active || h.Col != 2 || h.Row != 3 || !h.Cycle {
		t.Errorf("Hover() = %+v", h)
	}
	p.Leave()
	if p.Hover().Active {
		t.Error("Leave should drop the hover target")
	}
}
