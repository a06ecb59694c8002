package main

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"math/rand/v2"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// brightnessFloor is the lowest brightness that still produces a shape.
const brightnessFloor = 50

// Sample is an image reduced to grid cells, indexed [col][row].
type Sample struct {
	Shapes  [][]ShapeID
	Colors  [][]int  // -1 keeps the cell's current color index
	Palette *Palette // set when colors were extracted from the image
}

// DecodeImage reads any raster format registered with image.
func DecodeImage(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(bufio.NewReader(r))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, format, nil
}

// brightness is the unweighted mean of the 8-bit channels, inverted on
// request.
func brightness(c color.Color, invert bool) float64 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	b := (float64(n.R) + float64(n.G) + float64(n.B)) / 3
	if invert {
		b = 255 - b
	}
	return b
}

// levelIndex maps a brightness in [50,255] onto [0,n).
func levelIndex(b float64, n int) int {
	i := int(math.Floor((b - brightnessFloor) / (255 - brightnessFloor) * float64(n)))
	return max(0, min(i, n-1))
}

// SampleImage nearest-samples img once per cell. Dark cells come out
// empty; the rest pick a shape from the catalog by brightness. The catalog
// is not modified.
func SampleImage(img image.Image, s Settings, catalog *Catalog, rng *rand.Rand) (*Sample, error) {
	n := catalog.Len()
	if n == 0 {
		return nil, ErrEmptyCatalog
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrDecode)
	}

	out := &Sample{
		Shapes: make([][]ShapeID, s.Cols),
		Colors: make([][]int, s.Cols),
	}
	paletteLen := 0
	switch {
	case s.ExtractPalette:
		colors := make([]color.RGBA, MaxPaletteColors)
		for i := range colors {
			px := img.At(bounds.Min.X+rng.IntN(w), bounds.Min.Y+rng.IntN(h))
			nc := color.NRGBAModel.Convert(px).(color.NRGBA)
			colors[i] = color.RGBA{R: nc.R, G: nc.G, B: nc.B, A: 255}
		}
		p, err := NewPalette(colors...)
		if err != nil {
			return nil, err
		}
		out.Palette = &p
		paletteLen = p.Len()
	case s.PaletteActive():
		paletteLen = s.Palette.Len()
	}

	for c := 0; c < s.Cols; c++ {
		out.Shapes[c] = make([]ShapeID, s.Rows)
		out.Colors[c] = make([]int, s.Rows)
		for r := 0; r < s.Rows; r++ {
			out.Colors[c][r] = -1
			x := bounds.Min.X + c*w/s.Cols
			y := bounds.Min.Y + r*h/s.Rows
			b := brightness(img.At(x, y), s.InvertPixels)
			if b < brightnessFloor {
				out.Shapes[c][r] = EmptyShape
				continue
			}
			out.Shapes[c][r] = catalog.At(levelIndex(b, n))
			switch {
			case out.Palette != nil:
				out.Colors[c][r] = rng.IntN(paletteLen)
			case paletteLen > 0:
				out.Colors[c][r] = levelIndex(b, paletteLen)
			}
		}
	}
	return out, nil
}

// SampleImage samples img with the sketch's settings and writes the result
// into the grid. On error the grid is untouched.
func (sk *Sketch) SampleImage(img image.Image) error {
	sample, err := SampleImage(img, sk.settings, sk.catalog, sk.rng)
	if err != nil {
		return err
	}
	if err := sk.ApplySample(sample); err != nil {
		return err
	}
	Logger().Info("image sampled", "cols", sk.grid.Cols(), "rows", sk.grid.Rows(), "extracted", sample.Palette != nil)
	return nil
}
