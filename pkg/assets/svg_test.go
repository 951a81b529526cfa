package assets

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"
)

const rectSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10" viewBox="0 0 10 10">
  <rect x="0" y="0" width="10" height="10" fill="#ff0000"/>
</svg>`

const wideSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 20 10">
  <rect x="0" y="0" width="20" height="10" fill="#0000ff"/>
</svg>`

func TestRasterizeSVG(t *testing.T) {
	img, err := RasterizeSVG([]byte(rectSVG), 32, 32)
	if err != nil {
		t.Fatalf("RasterizeSVG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
		t.Fatalf("bounds = %v, want 32x32", b)
	}
	want := color.NRGBA{0xFF, 0x00, 0x00, 0xFF}
	if got := img.NRGBAAt(16, 16); got != want {
		t.Errorf("center = %+v, want %+v", got, want)
	}
}

func TestRasterizeSVGDerivesHeight(t *testing.T) {
	img, err := RasterizeSVG([]byte(wideSVG), 40, 0)
	if err != nil {
		t.Fatalf("RasterizeSVG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 20 {
		t.Errorf("bounds = %v, want 40x20 from 2:1 viewBox", b)
	}
}

func TestRasterizeSVGRejectsGarbage(t *testing.T) {
	if _, err := RasterizeSVG([]byte("<svg"), 10, 10); err == nil {
		t.Error("expected parse error for truncated SVG")
	}
	if _, err := RasterizeSVG([]byte(rectSVG), 0, 10); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestDecodeTexture(t *testing.T) {
	// SVG input goes through the rasterizer.
	img, err := DecodeTexture([]byte(rectSVG), 16, 16)
	if err != nil {
		t.Fatalf("DecodeTexture(svg): %v", err)
	}
	if img.Bounds().Dx() != 16 {
		t.Errorf("svg width = %d, want 16", img.Bounds().Dx())
	}

	// Raster input is decoded as-is; the sizes are the source's own.
	var buf bytes.Buffer
	src, _ := RasterizeSVG([]byte(rectSVG), 8, 8)
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}
	img, err = DecodeTexture(buf.Bytes(), 100, 100)
	if err != nil {
		t.Fatalf("DecodeTexture(png): %v", err)
	}
	if img.Bounds().Dx() != 8 {
		t.Errorf("png width = %d, want source 8", img.Bounds().Dx())
	}

	if _, err := DecodeTexture([]byte("junk"), 10, 10); err == nil {
		t.Error("expected error for undecodable bytes")
	}
}

func TestLooksLikeSVG(t *testing.T) {
	tests := []struct {
		data string
		want bool
	}{
		{rectSVG, true},
		{"  \n<?xml version=\"1.0\"?><svg/>", true},
		{"\x89PNG\r\n", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := looksLikeSVG([]byte(tt.data)); got != tt.want {
			t.Errorf("looksLikeSVG(%q) = %v, want %v", tt.data[:min(len(tt.data), 12)], got, tt.want)
		}
	}
}
