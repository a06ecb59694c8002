package main

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"image"
	"image/draw"
	"io"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Asset is a user supplied vector image drawn as a tint mask.
type Asset struct {
	Key    string
	Name   string
	Source []byte

	icon  *oksvg.SvgIcon
	masks map[image.Point]*image.Alpha
}

// DecodeAsset parses SVG markup. A failure wraps ErrDecode and leaves no
// partial state behind.
func DecodeAsset(name string, r io.Reader) (*Asset, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", name, ErrDecode, err)
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", name, ErrDecode, err)
	}
	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		return nil, fmt.Errorf("%s: %w: svg has no size", name, ErrDecode)
	}
	h := fnv.New64a()
	h.Write(src)
	return &Asset{
		Key:    fmt.Sprintf("%016x", h.Sum64()),
		Name:   name,
		Source: src,
		icon:   icon,
		masks:  make(map[image.Point]*image.Alpha),
	}, nil
}

// looksLikeSVG is a cheap sniff for pasted markup.
func looksLikeSVG(text string) bool {
	t := strings.TrimSpace(text)
	return strings.Contains(t, "<svg") && strings.HasSuffix(t, ">")
}

// Mask rasterizes the asset stretched to w×h and returns its coverage.
// Masks are cached per size.
func (a *Asset) Mask(w, h int) *image.Alpha {
	if w <= 0 || h <= 0 {
		return image.NewAlpha(image.Rect(0, 0, 0, 0))
	}
	size := image.Pt(w, h)
	if m, ok := a.masks[size]; ok {
		return m
	}
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	a.icon.SetTarget(0, 0, float64(w), float64(h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	a.icon.Draw(rasterx.NewDasher(w, h, scanner), 1)

	mask := image.NewAlpha(rgba.Bounds())
	draw.Draw(mask, mask.Bounds(), rgba, image.Point{}, draw.Src)
	a.masks[size] = mask
	return mask
}
