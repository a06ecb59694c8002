package main

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/fogleman/gg"
)

// Frame is everything the renderer needs for one picture.
type Frame struct {
	Grid     *Grid
	Catalog  *Catalog
	Settings Settings
	Count    int
	Scale    float64
	Hover    Hover // outline target; leave zero for exports
}

// Renderer draws frames onto a gg context. It keeps a full-size alpha
// buffer around for tinting custom assets.
type Renderer struct {
	mask *image.Alpha
}

func (rd *Renderer) Draw(dc *gg.Context, f Frame) {
	s := f.Settings
	scale := f.Scale
	if scale <= 0 {
		scale = 1
	}
	layout := NewLayout(s, f.Count, scale)

	dc.ResetClip()
	dc.SetColor(s.Background)
	dc.Clear()

	f.Grid.Each(func(c, r int, cell *Cell) {
		rect := layout.CellRect(c, r)
		if f.Hover.Active && f.Hover.Col == c && f.Hover.Row == r {
			dc.SetColor(s.Stroke)
			dc.SetLineWidth(2 * scale)
			dc.DrawRectangle(rect.X, rect.Y, rect.W, rect.H)
			dc.Stroke()
		}
		if cell.Locked || cell.Empty() {
			return
		}
		id := DisplayShape(f.Catalog, cell.Shape, f.Count, s.Cycle)
		if id.IsBuiltin() {
			rd.drawPrimitive(dc, s, id, cell.Color, rect, scale)
			return
		}
		if asset, ok := f.Catalog.Asset(id); ok {
			rd.drawAsset(dc, asset, tintColor(s, cell.Color), rect)
		}
	})
}

func (rd *Renderer) drawPrimitive(dc *gg.Context, s Settings, id ShapeID, colorIndex int, rect Rect, scale float64) {
	traceShape(dc, id, rect.X, rect.Y, rect.W, rect.H)
	if s.StrokeMode {
		dc.SetColor(s.Stroke)
		dc.SetLineWidth(s.StrokeWidth * scale)
		dc.Stroke()
		return
	}
	switch {
	case s.PaletteActive():
		c, _ := s.Palette.At(colorIndex)
		dc.SetColor(c)
	case s.UseGradient:
		dc.SetFillStyle(gradientPattern(s, rect))
	default:
		dc.SetColor(s.Foreground)
	}
	dc.Fill()
}

// tintColor is the single color used for an asset: stroke color in stroke
// mode, the palette entry, the midpoint of the gradient stops, or the
// foreground.
func tintColor(s Settings, colorIndex int) color.RGBA {
	switch {
	case s.StrokeMode:
		return s.Stroke
	case s.PaletteActive():
		c, _ := s.Palette.At(colorIndex)
		return c
	case s.UseGradient:
		return blend(s.Foreground, s.GradientColor, 0.5)
	}
	return s.Foreground
}

func gradientPattern(s Settings, rect Rect) gg.Gradient {
	var g gg.Gradient
	switch s.Gradient {
	case GradientRadial:
		cx, cy := rect.Center()
		g = gg.NewRadialGradient(cx, cy, 0, cx, cy, math.Max(rect.W, rect.H)/2)
	case GradientDiagonal:
		g = gg.NewLinearGradient(rect.X, rect.Y, rect.X+rect.W, rect.Y+rect.H)
	default:
		g = gg.NewLinearGradient(rect.X, rect.Y, rect.X, rect.Y+rect.H)
	}
	g.AddColorStop(0, s.Foreground)
	g.AddColorStop(1, s.GradientColor)
	return g
}

// drawAsset paints tint through the asset's coverage, placed on rect.
func (rd *Renderer) drawAsset(dc *gg.Context, asset *Asset, tint color.RGBA, rect Rect) {
	x, y := int(math.Round(rect.X)), int(math.Round(rect.Y))
	w, h := int(math.Round(rect.W)), int(math.Round(rect.H))
	if w <= 0 || h <= 0 {
		return
	}
	size := image.Pt(dc.Width(), dc.Height())
	if rd.mask == nil || rd.mask.Bounds().Size() != size {
		rd.mask = image.NewAlpha(image.Rectangle{Max: size})
	} else {
		clear(rd.mask.Pix)
	}
	dst := image.Rect(x, y, x+w, y+h)
	draw.Draw(rd.mask, dst, asset.Mask(w, h), image.Point{}, draw.Src)

	if err := dc.SetMask(rd.mask); err != nil {
		Logger().Warn("tint mask rejected", "err", err)
		return
	}
	dc.SetColor(tint)
	dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
	dc.Fill()
	dc.ResetClip()
}

// RenderImage draws the sketch at scale into a new image. Scale 1 is the
// base canvas size of the aspect ratio.
func RenderImage(sk *Sketch, scale float64, frame int) *image.RGBA {
	s := sk.Settings()
	w, h := NewLayout(s, frame, scale).Size()
	dc := gg.NewContext(int(math.Round(w)), int(math.Round(h)))
	var rd Renderer
	rd.Draw(dc, Frame{
		Grid:     sk.Grid(),
		Catalog:  sk.Catalog(),
		Settings: s,
		Count:    frame,
		Scale:    scale,
	})
	return dc.Image().(*image.RGBA)
}
