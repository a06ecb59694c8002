package main

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodeAsset(t *testing.T) {
	a := mustAsset(t, "square")
	if a.Name != "square" || a.Key == "" {
		t.Errorf("asset = %q key %q", a.Name, a.Key)
	}
	b := mustAsset(t, "again")
	if a.Key != b.Key {
		t.Error("same markup should give the same key")
	}
}

func TestDecodeAssetGarbage(t *testing.T) {
	for _, in := range []string{"", "hello", "<svg></svg>"} {
		if _, err := DecodeAsset("bad", strings.NewReader(in)); !errors.Is(err, ErrDecode) {
			t.Errorf("DecodeAsset(%q) error = %v, want ErrDecode", in, err)
		}
	}
}

func TestAssetMask(t *testing.T) {
	a := mustAsset(t, "square")
	m := a.Mask(20, 10)
	if b := m.Bounds(); b.Dx() != 20 || b.Dy() != 10 {
		t.Fatalf("mask size = %v", b)
	}
	if m.AlphaAt(10, 5).A != 255 {
		t.Errorf("mask center alpha = %d, want 255", m.AlphaAt(10, 5).A)
	}
	if a.Mask(20, 10) != m {
		t.Error("mask should be cached per size")
	}
	if got := a.Mask(0, 5).Bounds().Dx(); got != 0 {
		t.Errorf("zero-width mask has width %d", got)
	}
}

func TestLooksLikeSVG(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{testSVG, true},
		{"  <?xml version=\"1.0\"?>\n" + testSVG + "\n", true},
		{"/tmp/shape.svg", false},
		{"<div></div>", false},
	}
	for _, tt := range tests {
		if got := looksLikeSVG(tt.in); got != tt.want {
			t.Errorf("looksLikeSVG(%.20q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
