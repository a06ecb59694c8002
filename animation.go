package main

import (
	"fmt"
	"math"
)

type Waveform int

const (
	WaveSine Waveform = iota
	WaveCosine
	WaveNoise
)

func (w Waveform) String() string {
	switch w {
	case WaveCosine:
		return "cosine"
	case WaveNoise:
		return "noise"
	default:
		return "sine"
	}
}

func (w Waveform) Next() Waveform {
	return (w + 1) % 3
}

func parseWaveform(s string) (Waveform, error) {
	switch s {
	case "sine":
		return WaveSine, nil
	case "cosine":
		return WaveCosine, nil
	case "noise":
		return WaveNoise, nil
	}
	return WaveSine, fmt.Errorf("unknown waveform %q", s)
}

// AxisAnimation oscillates one axis of the cell offsets.
type AxisAnimation struct {
	Enabled   bool
	Wave      Waveform
	Amplitude float64
	Frequency float64
	Speed     float64
}

// Offset returns amplitude * wave(speed*frame + frequency*index), or 0 when
// the animation is off.
func (a AxisAnimation) Offset(frame, index int, seed int64) float64 {
	if !a.Enabled {
		return 0
	}
	t := a.Speed*float64(frame) + a.Frequency*float64(index)
	return a.Amplitude * wave(a.Wave, t, seed)
}

func wave(w Waveform, t float64, seed int64) float64 {
	switch w {
	case WaveCosine:
		return math.Cos(t)
	case WaveNoise:
		return smoothNoise(t, seed)*2 - 1
	default:
		return math.Sin(t)
	}
}

// CycleAnimation rotates the displayed shape through the catalog.
type CycleAnimation struct {
	Enabled bool
	Speed   float64
}

// smoothNoise is 1-D value noise in [0,1]: hashed lattice values blended
// with a smoothstep curve.
func smoothNoise(t float64, seed int64) float64 {
	i := math.Floor(t)
	f := t - i
	a := lattice(int64(i), seed)
	b := lattice(int64(i)+1, seed)
	u := f * f * (3 - 2*f)
	return a + (b-a)*u
}

func lattice(i, seed int64) float64 {
	h := uint64(i)*0x9E3779B97F4A7C15 ^ uint64(seed)*0xBF58476D1CE4E5B9
	h ^= h >> 31
	h *= 0x94D049BB133111EB
	h ^= h >> 29
	return float64(h>>11) / float64(1<<53)
}

// CellOffset returns the displacement of cell (col,row) in base pixels:
// rows slide horizontally, columns slide vertically.
func CellOffset(s Settings, col, row, frame int) (dx, dy float64) {
	dx = float64(row)*s.RowShear + s.RowAnim.Offset(frame, row, s.Seed)
	dy = float64(col)*s.ColShear + s.ColAnim.Offset(frame, col, s.Seed)
	return dx, dy
}

// DisplayShape is the shape drawn for id at frame. With cycle animation on
// it is offset by floor(frame*speed) positions in the catalog; stored cell
// state is never touched.
func DisplayShape(c *Catalog, id ShapeID, frame int, cycle CycleAnimation) ShapeID {
	if !cycle.Enabled || id == EmptyShape {
		return id
	}
	n := c.Len()
	pos := c.IndexOf(id)
	if n == 0 || pos < 0 {
		return id
	}
	step := int(math.Floor(float64(frame) * cycle.Speed))
	next := (pos + step) % n
	if next < 0 {
		next += n
	}
	return c.At(next)
}
