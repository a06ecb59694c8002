package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

const MaxPaletteColors = 4

// Palette is an ordered list of up to four colors. Methods never modify the
// receiver's backing array, so a Palette copied into a Settings value stays
// stable.
type Palette struct {
	colors []color.RGBA
}

func NewPalette(colors ...color.RGBA) (Palette, error) {
	if len(colors) > MaxPaletteColors {
		return Palette{}, ErrPaletteFull
	}
	return Palette{colors: append([]color.RGBA(nil), colors...)}, nil
}

func (p Palette) Len() int {
	return len(p.colors)
}

func (p Palette) Colors() []color.RGBA {
	return append([]color.RGBA(nil), p.colors...)
}

// At interprets index modulo the palette length. An empty palette yields
// the zero color and false.
func (p Palette) At(index int) (color.RGBA, bool) {
	if len(p.colors) == 0 {
		return color.RGBA{}, false
	}
	i := index % len(p.colors)
	if i < 0 {
		i += len(p.colors)
	}
	return p.colors[i], true
}

func (p Palette) Add(c color.RGBA) (Palette, error) {
	if len(p.colors) >= MaxPaletteColors {
		return p, ErrPaletteFull
	}
	colors := make([]color.RGBA, 0, len(p.colors)+1)
	colors = append(colors, p.colors...)
	return Palette{colors: append(colors, c)}, nil
}

func (p Palette) Remove(index int) (Palette, error) {
	if index < 0 || index >= len(p.colors) {
		return p, fmt.Errorf("palette index %d: %w", index, ErrOutOfRange)
	}
	colors := make([]color.RGBA, 0, len(p.colors)-1)
	colors = append(colors, p.colors[:index]...)
	colors = append(colors, p.colors[index+1:]...)
	return Palette{colors: colors}, nil
}

func (p Palette) String() string {
	parts := make([]string, len(p.colors))
	for i, c := range p.colors {
		parts[i] = hexColor(c)
	}
	return strings.Join(parts, ",")
}

// ParsePalette reads a comma separated list of hex colors.
func ParsePalette(s string) (Palette, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Palette{}, nil
	}
	var colors []color.RGBA
	for _, part := range strings.Split(s, ",") {
		c, err := parseHexColor(part)
		if err != nil {
			return Palette{}, err
		}
		colors = append(colors, c)
	}
	return NewPalette(colors...)
}

func parseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// blend mixes two opaque colors in RGB space.
func blend(a, b color.RGBA, t float64) color.RGBA {
	ca, _ := colorful.MakeColor(a)
	cb, _ := colorful.MakeColor(b)
	r, g, bl := ca.BlendRgb(cb, t).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: bl, A: 255}
}
