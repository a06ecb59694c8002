package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExportPNG(t *testing.T) {
	sk := newTestSketch(t, 3, 4)
	sk.SetCell(0, 0, 0, 0)
	dir := t.TempDir()

	path, err := ExportPNG(sk, dir, 2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "shape-grid-2x.png" {
		t.Errorf("file name = %s", filepath.Base(path))
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, _, err := DecodeImage(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 1200 || b.Dy() != 1600 {
		t.Errorf("exported size = %dx%d, want 1200x1600", b.Dx(), b.Dy())
	}
}

func TestExportInvalidScale(t *testing.T) {
	sk := newTestSketch(t, 3, 4)
	dir := t.TempDir()
	if _, err := ExportPNG(sk, dir, 0, 0); !errors.Is(err, ErrInvalidScale) {
		t.Errorf("ExportPNG scale 0 error = %v", err)
	}
	if _, err := ExportSVG(sk, dir, -1, 0); !errors.Is(err, ErrInvalidScale) {
		t.Errorf("ExportSVG scale -1 error = %v", err)
	}
	if _, err := ExportFrames(sk, dir, 0, 0, 2); !errors.Is(err, ErrInvalidScale) {
		t.Errorf("ExportFrames scale 0 error = %v", err)
	}
}

func TestExportFrames(t *testing.T) {
	sk := newTestSketch(t, 3, 4)
	dir := t.TempDir()
	if _, err := ExportFrames(sk, dir, 1, 0, 3); !errors.Is(err, ErrNothingToExport) {
		t.Fatalf("still sketch error = %v, want ErrNothingToExport", err)
	}

	sk.SetSettings(sk.Settings().With(func(s *Settings) { s.RowAnim.Enabled = true }))
	paths, err := ExportFrames(sk, dir, 1, 5, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 3 {
		t.Fatalf("wrote %d frames, want 3", len(paths))
	}
	if filepath.Base(paths[2]) != "shape-grid-1x-frame-002.png" {
		t.Errorf("last frame name = %s", filepath.Base(paths[2]))
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			t.Error(err)
		}
	}
}

func TestWriteSVG(t *testing.T) {
	sk := newTestSketch(t, 3, 4)
	sk.SetCell(0, 0, 1, 0)
	sk.SetCell(1, 0, 2, 0)
	sk.ToggleLock(1, 0)

	var buf bytes.Buffer
	if err := WriteSVG(&buf, sk, 1, 0); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `d="M0 100L200 100L200 200L0 200Z"`) {
		t.Errorf("missing half-bottom path in:\n%s", out)
	}
	if strings.Count(out, "<path") != 1 {
		t.Errorf("want one path (locked cell skipped), got %d", strings.Count(out, "<path"))
	}
}

func TestWriteSVGGradientAndStroke(t *testing.T) {
	sk := newTestSketch(t, 3, 4)
	sk.SetCell(0, 0, 0, 0)
	sk.SetSettings(sk.Settings().With(func(s *Settings) {
		s.UseGradient = true
		s.Gradient = GradientRadial
	}))
	var buf bytes.Buffer
	WriteSVG(&buf, sk, 1, 0)
	if !strings.Contains(buf.String(), "<radialGradient") || !strings.Contains(buf.String(), "url(#g0-0)") {
		t.Errorf("radial gradient missing:\n%s", buf.String())
	}

	sk.SetSettings(sk.Settings().With(func(s *Settings) { s.StrokeMode = true }))
	buf.Reset()
	WriteSVG(&buf, sk, 2, 0)
	if !strings.Contains(buf.String(), `fill="none"`) || !strings.Contains(buf.String(), `stroke-width="4"`) {
		t.Errorf("stroke attributes missing:\n%s", buf.String())
	}
}

func TestWriteSVGEmbedsAssets(t *testing.T) {
	sk := newTestSketch(t, 3, 4)
	id := sk.AddCustomShape(mustAsset(t, "square"))
	sk.SetCell(0, 0, id, 0)
	var buf bytes.Buffer
	if err := WriteSVG(&buf, sk, 1, 0); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "data:image/png;base64,") {
		t.Error("custom asset not embedded")
	}
}

func TestExportCatalog(t *testing.T) {
	sk := newTestSketch(t, 3, 4)
	sk.AddCustomShape(mustAsset(t, "square"))
	sk.Catalog().Disable(3)
	path, err := ExportCatalog(sk, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != catalogSheetName {
		t.Errorf("file name = %s", filepath.Base(path))
	}
	img, err := RenderCatalog(sk)
	if err != nil {
		t.Fatal(err)
	}
	// 12 shapes: two rows of six
	wantW := 6*(sheetTile+sheetPadding) + sheetPadding
	wantH := 2*(sheetTile+sheetPadding+sheetLabel) + sheetPadding
	if b := img.Bounds(); b.Dx() != wantW || b.Dy() != wantH {
		t.Errorf("sheet size = %dx%d, want %dx%d", b.Dx(), b.Dy(), wantW, wantH)
	}
}
