package main

import (
	"math"
	"strconv"
	"strings"
)

type vertex struct {
	X, Y float64
}

// ellipticalArc is in unit tile coordinates; angles are radians measured
// clockwise from +x since y grows downward.
type ellipticalArc struct {
	CX, CY float64
	RX, RY float64
	From   float64
	To     float64
	Pie    bool
}

type primitive struct {
	name    string
	polygon []vertex
	arc     *ellipticalArc
}

// primitives is the geometry of the built-in shapes on the unit tile. The
// live view, PNG and SVG export and the catalog sheet all trace from this
// table, so it must not change without changing every output at once.
var primitives = [BuiltinCount]primitive{
	{name: "circle", arc: &ellipticalArc{CX: 0.5, CY: 0.5, RX: 0.5, RY: 0.5, From: 0, To: 2 * math.Pi}},
	{name: "half bottom", polygon: []vertex{{0, 0.5}, {1, 0.5}, {1, 1}, {0, 1}}},
	{name: "half top", polygon: []vertex{{0, 0}, {1, 0}, {1, 0.5}, {0, 0.5}}},
	{name: "trapezoid left", polygon: []vertex{{0, 0}, {0.5, 0}, {1, 1}, {0.5, 1}}},
	{name: "trapezoid right", polygon: []vertex{{1, 0}, {0.5, 0}, {0, 1}, {0.5, 1}}},
	{name: "half left", polygon: []vertex{{0, 0}, {0.5, 0}, {0.5, 1}, {0, 1}}},
	{name: "half right", polygon: []vertex{{1, 0}, {0.5, 0}, {0.5, 1}, {1, 1}}},
	{name: "quarter top-left", arc: &ellipticalArc{CX: 0, CY: 0, RX: 1, RY: 1, From: 0, To: math.Pi / 2, Pie: true}},
	{name: "quarter top-right", arc: &ellipticalArc{CX: 1, CY: 0, RX: 1, RY: 1, From: math.Pi / 2, To: math.Pi, Pie: true}},
	{name: "quarter bottom-right", arc: &ellipticalArc{CX: 1, CY: 1, RX: 1, RY: 1, From: math.Pi, To: 3 * math.Pi / 2, Pie: true}},
	{name: "quarter bottom-left", arc: &ellipticalArc{CX: 0, CY: 1, RX: 1, RY: 1, From: 3 * math.Pi / 2, To: 2 * math.Pi, Pie: true}},
}

// pather is the subset of *gg.Context used to trace shapes. svgPath
// implements it too.
type pather interface {
	NewSubPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	DrawEllipticalArc(x, y, rx, ry, angle1, angle2 float64)
	ClosePath()
}

// traceShape adds the outline of built-in shape id, placed on the tile at
// (x, y) with size w×h, to p.
func traceShape(p pather, id ShapeID, x, y, w, h float64) {
	if !id.IsBuiltin() {
		return
	}
	prim := primitives[id]
	p.NewSubPath()
	if a := prim.arc; a != nil {
		cx, cy := x+a.CX*w, y+a.CY*h
		if a.Pie {
			p.MoveTo(cx, cy)
		}
		p.DrawEllipticalArc(cx, cy, a.RX*w, a.RY*h, a.From, a.To)
		p.ClosePath()
		return
	}
	for i, v := range prim.polygon {
		if i == 0 {
			p.MoveTo(x+v.X*w, y+v.Y*h)
		} else {
			p.LineTo(x+v.X*w, y+v.Y*h)
		}
	}
	p.ClosePath()
}

// svgPath collects path data in SVG syntax.
type svgPath struct {
	b          strings.Builder
	hasCurrent bool
}

func (s *svgPath) NewSubPath() {
	s.hasCurrent = false
}

func (s *svgPath) MoveTo(x, y float64) {
	s.cmd("M", x, y)
	s.hasCurrent = true
}

func (s *svgPath) LineTo(x, y float64) {
	if !s.hasCurrent {
		s.MoveTo(x, y)
		return
	}
	s.cmd("L", x, y)
}

// DrawEllipticalArc emits A commands. A full turn is split in two since a
// single SVG arc cannot end where it starts.
func (s *svgPath) DrawEllipticalArc(x, y, rx, ry, angle1, angle2 float64) {
	x0, y0 := x+rx*math.Cos(angle1), y+ry*math.Sin(angle1)
	s.LineTo(x0, y0)
	sweep := angle2 - angle1
	if math.Abs(sweep) >= 2*math.Pi-1e-9 {
		mid := angle1 + sweep/2
		s.arcTo(x, y, rx, ry, mid, sweep/2)
		s.arcTo(x, y, rx, ry, angle2, sweep/2)
		return
	}
	s.arcTo(x, y, rx, ry, angle2, sweep)
}

func (s *svgPath) arcTo(x, y, rx, ry, to, sweep float64) {
	large, dir := "0", "1"
	if math.Abs(sweep) > math.Pi {
		large = "1"
	}
	if sweep < 0 {
		dir = "0"
	}
	s.b.WriteString("A" + num(rx) + " " + num(ry) + " 0 " + large + " " + dir + " ")
	s.b.WriteString(num(x+rx*math.Cos(to)) + " " + num(y+ry*math.Sin(to)))
}

func (s *svgPath) ClosePath() {
	if s.hasCurrent {
		s.b.WriteString("Z")
	}
	s.hasCurrent = false
}

func (s *svgPath) cmd(op string, x, y float64) {
	s.b.WriteString(op + num(x) + " " + num(y))
}

func (s *svgPath) String() string {
	return s.b.String()
}

// num formats v with at most three decimals and no trailing zeros.
func num(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// shapePathData returns the SVG path data of built-in shape id on a tile.
func shapePathData(id ShapeID, x, y, w, h float64) string {
	var p svgPath
	traceShape(&p, id, x, y, w, h)
	return p.String()
}
