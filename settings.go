package main

import (
	"fmt"
	"image/color"
	"strings"
)

type GradientKind int

const (
	GradientLinear GradientKind = iota
	GradientDiagonal
	GradientRadial
)

func (g GradientKind) String() string {
	switch g {
	case GradientDiagonal:
		return "diagonal"
	case GradientRadial:
		return "radial"
	default:
		return "linear"
	}
}

func parseGradientKind(s string) (GradientKind, error) {
	switch s {
	case "linear":
		return GradientLinear, nil
	case "diagonal":
		return GradientDiagonal, nil
	case "radial":
		return GradientRadial, nil
	}
	return GradientLinear, fmt.Errorf("unknown gradient %q", s)
}

// FillPolicy decides what newly created cells hold after a resize.
type FillPolicy int

const (
	FillRandom FillPolicy = iota
	FillEmpty
)

func (f FillPolicy) String() string {
	if f == FillEmpty {
		return "empty"
	}
	return "random"
}

var aspectRatios = map[string][2]int{
	"1:1":  {600, 600},
	"3:4":  {600, 800},
	"4:3":  {800, 600},
	"16:9": {800, 450},
	"9:16": {450, 800},
}

// aspectNames lists the aspect ratios in the order the UI cycles them.
var aspectNames = []string{"1:1", "3:4", "4:3", "16:9", "9:16"}

// Settings is the full render and edit configuration. It is a value type:
// every With method returns a modified copy with Version bumped, and
// renderer, layout and pointer calls receive it explicitly.
type Settings struct {
	Version int

	Cols   int
	Rows   int
	Aspect string

	RowShear float64
	ColShear float64

	Background    color.RGBA
	Foreground    color.RGBA
	Stroke        color.RGBA
	GradientColor color.RGBA
	Gradient      GradientKind

	UseGradient    bool
	UsePalette     bool
	InvertPixels   bool
	StrokeMode     bool
	ExtractPalette bool
	LockAspect     bool

	Seed        int64
	Fill        FillPolicy
	CycleDelay  int
	StrokeWidth float64

	RowAnim AxisAnimation
	ColAnim AxisAnimation
	Cycle   CycleAnimation

	Palette Palette
}

func DefaultSettings() Settings {
	return Settings{
		Cols:          3,
		Rows:          4,
		Aspect:        "3:4",
		Background:    color.RGBA{0, 0, 0, 255},
		Foreground:    color.RGBA{220, 220, 220, 255},
		Stroke:        color.RGBA{0, 220, 0, 255},
		GradientColor: color.RGBA{255, 107, 107, 255},
		Gradient:      GradientLinear,
		Fill:          FillRandom,
		CycleDelay:    defaultCycleDelay,
		StrokeWidth:   2,
		RowAnim:       AxisAnimation{Wave: WaveSine, Amplitude: 10, Frequency: 0.5, Speed: 0.05},
		ColAnim:       AxisAnimation{Wave: WaveSine, Amplitude: 10, Frequency: 0.5, Speed: 0.05},
		Cycle:         CycleAnimation{Speed: 0.1},
	}
}

// CanvasSize returns the base pixel dimensions of the configured aspect.
func (s Settings) CanvasSize() (int, int) {
	dims, ok := aspectRatios[s.Aspect]
	if !ok {
		dims = aspectRatios["3:4"]
	}
	return dims[0], dims[1]
}

// PaletteActive reports whether cells are colored from the palette.
func (s Settings) PaletteActive() bool {
	return s.UsePalette && s.Palette.Len() > 0
}

func (s Settings) bump() Settings {
	s.Version++
	return s
}

// WithGrid sets the grid dimensions. With LockAspect set, whichever axis
// changed is copied onto the other.
func (s Settings) WithGrid(cols, rows int) (Settings, error) {
	if cols <= 0 || rows <= 0 {
		return s, fmt.Errorf("%dx%d: %w", cols, rows, ErrInvalidSize)
	}
	if s.LockAspect {
		if cols != s.Cols {
			rows = cols
		} else {
			cols = rows
		}
	}
	s.Cols, s.Rows = cols, rows
	return s.bump(), nil
}

func (s Settings) WithAspect(name string) (Settings, error) {
	if _, ok := aspectRatios[name]; !ok {
		return s, fmt.Errorf("%q (want one of %s): %w", name, strings.Join(aspectNames, ", "), ErrUnknownAspect)
	}
	s.Aspect = name
	return s.bump(), nil
}

// NextAspect returns the aspect ratio following the current one.
func (s Settings) NextAspect() string {
	for i, name := range aspectNames {
		if name == s.Aspect {
			return aspectNames[(i+1)%len(aspectNames)]
		}
	}
	return aspectNames[0]
}

// WithLockAspect toggles aspect locking; turning it on squares the grid on
// the column count.
func (s Settings) WithLockAspect(locked bool) Settings {
	s.LockAspect = locked
	if locked {
		s.Rows = s.Cols
	}
	return s.bump()
}

func (s Settings) WithShear(row, col float64) Settings {
	s.RowShear, s.ColShear = row, col
	return s.bump()
}

func (s Settings) WithPalette(p Palette) Settings {
	s.Palette = p
	if p.Len() == 0 {
		s.UsePalette = false
	}
	return s.bump()
}

// With applies fn to a copy and bumps the version. It covers the plain
// toggles and colors that need no validation.
func (s Settings) With(fn func(*Settings)) Settings {
	fn(&s)
	return s.bump()
}
