package main

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	svg "github.com/ajstarks/svgo/float"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

func checkScale(scale int) error {
	if scale < 1 {
		return fmt.Errorf("%d: %w", scale, ErrInvalidScale)
	}
	return nil
}

func pngName(scale int) string {
	return fmt.Sprintf("shape-grid-%dx.png", scale)
}

func svgName(scale int) string {
	return fmt.Sprintf("shape-grid-%dx.svg", scale)
}

func frameName(scale, frame int) string {
	return fmt.Sprintf("shape-grid-%dx-frame-%03d.png", scale, frame)
}

const catalogSheetName = "shape-catalog.png"

// ExportPNG writes the sketch at an integer scale into dir and returns the
// file path.
func ExportPNG(sk *Sketch, dir string, scale, frame int) (string, error) {
	if err := checkScale(scale); err != nil {
		return "", err
	}
	path := filepath.Join(dir, pngName(scale))
	if err := gg.SavePNG(path, RenderImage(sk, float64(scale), frame)); err != nil {
		return "", err
	}
	Logger().Info("exported png", "path", path, "scale", scale)
	return path, nil
}

// ExportFrames writes count consecutive frames starting at from. It
// refuses when nothing is animated.
func ExportFrames(sk *Sketch, dir string, scale, from, count int) ([]string, error) {
	if err := checkScale(scale); err != nil {
		return nil, err
	}
	s := sk.Settings()
	if !s.RowAnim.Enabled && !s.ColAnim.Enabled && !s.Cycle.Enabled {
		return nil, fmt.Errorf("animation is off: %w", ErrNothingToExport)
	}
	paths := make([]string, 0, count)
	for i := 0; i < count; i++ {
		path := filepath.Join(dir, frameName(scale, i))
		if err := gg.SavePNG(path, RenderImage(sk, float64(scale), from+i)); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	Logger().Info("exported frames", "dir", dir, "count", count, "scale", scale)
	return paths, nil
}

// ExportSVG writes the sketch as vector paths. Built-in shapes use the same
// geometry table as the raster output; custom assets are embedded as tinted
// PNG images.
func ExportSVG(sk *Sketch, dir string, scale, frame int) (string, error) {
	if err := checkScale(scale); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := WriteSVG(&buf, sk, float64(scale), frame); err != nil {
		return "", err
	}
	path := filepath.Join(dir, svgName(scale))
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", err
	}
	Logger().Info("exported svg", "path", path, "scale", scale)
	return path, nil
}

// WriteSVG renders the sketch as an SVG document into buf.
func WriteSVG(buf *bytes.Buffer, sk *Sketch, scale float64, frame int) error {
	s := sk.Settings()
	layout := NewLayout(s, frame, scale)
	w, h := layout.Size()

	canvas := svg.New(buf)
	canvas.Start(w, h)
	canvas.Title("shape grid")
	canvas.Rect(0, 0, w, h, "fill=\""+hexColor(s.Background)+"\"")

	var err error
	sk.Grid().Each(func(c, r int, cell *Cell) {
		if err != nil || cell.Locked || cell.Empty() {
			return
		}
		rect := layout.CellRect(c, r)
		id := DisplayShape(sk.Catalog(), cell.Shape, frame, s.Cycle)
		if id.IsBuiltin() {
			writeSVGPrimitive(canvas, s, id, cell.Color, rect, c, r, scale)
			return
		}
		if asset, ok := sk.Catalog().Asset(id); ok {
			err = writeSVGAsset(canvas, asset, tintColor(s, cell.Color), rect)
		}
	})
	canvas.End()
	return err
}

func writeSVGPrimitive(canvas *svg.SVG, s Settings, id ShapeID, colorIndex int, rect Rect, c, r int, scale float64) {
	d := shapePathData(id, rect.X, rect.Y, rect.W, rect.H)
	if s.StrokeMode {
		canvas.Path(d, `fill="none"`, `stroke="`+hexColor(s.Stroke)+`"`, `stroke-width="`+num(s.StrokeWidth*scale)+`"`)
		return
	}
	switch {
	case s.PaletteActive():
		col, _ := s.Palette.At(colorIndex)
		canvas.Path(d, `fill="`+hexColor(col)+`"`)
	case s.UseGradient:
		gid := fmt.Sprintf("g%d-%d", c, r)
		canvas.Def()
		writeSVGGradient(canvas, s, gid, rect)
		canvas.DefEnd()
		canvas.Path(d, `fill="url(#`+gid+`)"`)
	default:
		canvas.Path(d, `fill="`+hexColor(s.Foreground)+`"`)
	}
}

// writeSVGGradient emits a gradient in user space so it spans the tile
// exactly like the raster gradient does.
func writeSVGGradient(canvas *svg.SVG, s Settings, id string, rect Rect) {
	stops := fmt.Sprintf(`<stop offset="0" stop-color="%s"/><stop offset="1" stop-color="%s"/>`,
		hexColor(s.Foreground), hexColor(s.GradientColor))
	switch s.Gradient {
	case GradientRadial:
		cx, cy := rect.Center()
		fmt.Fprintf(canvas.Writer, `<radialGradient id="%s" gradientUnits="userSpaceOnUse" cx="%s" cy="%s" r="%s">%s</radialGradient>`+"\n",
			id, num(cx), num(cy), num(math.Max(rect.W, rect.H)/2), stops)
	default:
		x2, y2 := rect.X, rect.Y+rect.H
		if s.Gradient == GradientDiagonal {
			x2 = rect.X + rect.W
		}
		fmt.Fprintf(canvas.Writer, `<linearGradient id="%s" gradientUnits="userSpaceOnUse" x1="%s" y1="%s" x2="%s" y2="%s">%s</linearGradient>`+"\n",
			id, num(rect.X), num(rect.Y), num(x2), num(y2), stops)
	}
}

func writeSVGAsset(canvas *svg.SVG, asset *Asset, tint color.RGBA, rect Rect) error {
	w, h := int(math.Round(rect.W)), int(math.Round(rect.H))
	if w <= 0 || h <= 0 {
		return nil
	}
	var data bytes.Buffer
	if err := encodeTinted(&data, asset.Mask(w, h), tint); err != nil {
		return err
	}
	href := "data:image/png;base64," + base64.StdEncoding.EncodeToString(data.Bytes())
	canvas.Image(math.Round(rect.X), math.Round(rect.Y), w, h, href)
	return nil
}

// encodeTinted writes tint with the coverage of mask as a PNG.
func encodeTinted(buf *bytes.Buffer, mask *image.Alpha, tint color.RGBA) error {
	img := image.NewNRGBA(mask.Bounds())
	for y := mask.Rect.Min.Y; y < mask.Rect.Max.Y; y++ {
		for x := mask.Rect.Min.X; x < mask.Rect.Max.X; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: tint.R, G: tint.G, B: tint.B, A: mask.AlphaAt(x, y).A})
		}
	}
	return png.Encode(buf, img)
}

const (
	sheetTile    = 96
	sheetPadding = 16
	sheetLabel   = 20
	sheetColumns = 6
)

// ExportCatalog draws every known shape with its id and name on a sheet.
// Disabled shapes are drawn dimmed.
func ExportCatalog(sk *Sketch, dir string) (string, error) {
	img, err := RenderCatalog(sk)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, catalogSheetName)
	if err := gg.SavePNG(path, img); err != nil {
		return "", err
	}
	Logger().Info("exported catalog sheet", "path", path)
	return path, nil
}

func RenderCatalog(sk *Sketch) (image.Image, error) {
	cat := sk.Catalog()
	s := sk.Settings()
	ids := cat.All()

	cols := min(sheetColumns, len(ids))
	rows := (len(ids) + sheetColumns - 1) / sheetColumns
	cellW := sheetTile + sheetPadding
	cellH := sheetTile + sheetPadding + sheetLabel
	dc := gg.NewContext(cols*cellW+sheetPadding, rows*cellH+sheetPadding)
	dc.SetColor(s.Background)
	dc.Clear()

	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %v", err)
	}
	dc.SetFontFace(truetype.NewFace(ttf, &truetype.Options{
		Size:    10,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	var rd Renderer
	dim := blend(s.Foreground, s.Background, 0.7)
	for i, id := range ids {
		x := float64(sheetPadding + (i%sheetColumns)*cellW)
		y := float64(sheetPadding + (i/sheetColumns)*cellH)
		fg := s.Foreground
		if !cat.Contains(id) {
			fg = dim
		}
		rect := Rect{X: x, Y: y, W: sheetTile, H: sheetTile}
		if id.IsBuiltin() {
			traceShape(dc, id, rect.X, rect.Y, rect.W, rect.H)
			dc.SetColor(fg)
			dc.Fill()
		} else if asset, ok := cat.Asset(id); ok {
			rd.drawAsset(dc, asset, fg, rect)
		}
		dc.SetColor(fg)
		dc.DrawStringAnchored(fmt.Sprintf("%d %s", id, cat.Name(id)), x+sheetTile/2, y+sheetTile+sheetLabel/2+2, 0.5, 0.5)
	}
	return dc.Image(), nil
}
