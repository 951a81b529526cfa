package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/flagring/flagring/pkg/flag"
)

func cutoutPattern() *flag.Pattern {
	return &flag.Pattern{
		Orientation: flag.Horizontal,
		Stripes: []flag.Stripe{
			{Color: "#FFD000", Weight: 1},
			{Color: "#0050B0", Weight: 1},
		},
	}
}

func TestCutoutPhotoNeverShifts(t *testing.T) {
	green := color.NRGBA{0x10, 0xA0, 0x30, 0xFF}
	photo := solidNRGBA(300, 300, green)
	border := Border{Pattern: cutoutPattern()}

	render := func(dx int) *image.NRGBA {
		canvas, err := Render(photo, border, Options{
			Size:         512,
			Presentation: PresentationCutout,
			ImageOffset:  image.Pt(dx, 0),
		})
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		return canvas
	}

	centered := render(0)
	shifted := render(-50)

	// Samples well inside the photo circle (ImageRadius is 204.8 here).
	for _, pt := range []image.Point{{256, 256}, {200, 200}, {330, 300}} {
		c0 := centered.NRGBAAt(pt.X, pt.Y)
		c1 := shifted.NRGBAAt(pt.X, pt.Y)
		if c0 != green {
			t.Errorf("centered photo at %v = %+v, want %+v", pt, c0, green)
		}
		if c1 != c0 {
			t.Errorf("offset moved the photo at %v: %+v != %+v", pt, c1, c0)
		}
	}
}

func TestCutoutStripesShiftWithOffset(t *testing.T) {
	border := Border{Pattern: cutoutPattern()}

	render := func(dx int) *image.NRGBA {
		canvas, err := Render(nil, border, Options{
			Size:         512,
			Presentation: PresentationCutout,
			ImageOffset:  image.Pt(dx, 0),
		})
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		return canvas
	}

	centered := render(0)
	shifted := render(-50)

	// The right edge of the annulus, in the second (lower) stripe.
	at := image.Pt(509, 256)
	blue := color.NRGBA{0x00, 0x50, 0xB0, 0xFF}

	if got := centered.NRGBAAt(at.X, at.Y); got != blue {
		t.Fatalf("unshifted right edge = %+v, want %+v", got, blue)
	}
	// Shifting the border left pulls stripe coverage off the right edge.
	if got := shifted.NRGBAAt(at.X, at.Y); got.A != 0 {
		t.Errorf("shifted right edge alpha = %d, want 0", got.A)
	}
	// The left edge stays covered.
	if got := shifted.NRGBAAt(2, 256); got != blue {
		t.Errorf("shifted left edge = %+v, want %+v", got, blue)
	}
}

func TestCutoutTextureShiftsWithOffset(t *testing.T) {
	tex := solidNRGBA(100, 50, color.NRGBA{0xE0, 0x20, 0x20, 0xFF})
	border := Border{Texture: tex}

	render := func(dx int) *image.NRGBA {
		canvas, err := Render(nil, border, Options{
			Size:         512,
			Presentation: PresentationCutout,
			ImageOffset:  image.Pt(dx, 0),
		})
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		return canvas
	}

	at := image.Pt(509, 256)
	if got := render(0).NRGBAAt(at.X, at.Y); got.A != 0xFF {
		t.Fatalf("unshifted texture right edge alpha = %d, want 255", got.A)
	}
	if got := render(-50).NRGBAAt(at.X, at.Y); got.A != 0 {
		t.Errorf("shifted texture right edge alpha = %d, want 0", got.A)
	}
}

func TestCutoutVerticalStripesTileFullWidth(t *testing.T) {
	border := Border{Pattern: &flag.Pattern{
		Orientation: flag.Vertical,
		Stripes: []flag.Stripe{
			{Color: "#FFD000", Weight: 1},
			{Color: "#0050B0", Weight: 1},
		},
	}}
	canvas, err := Render(nil, border, Options{
		Size:         512,
		Presentation: PresentationCutout,
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	yellow := color.NRGBA{0xFF, 0xD0, 0x00, 0xFF}
	blue := color.NRGBA{0x00, 0x50, 0xB0, 0xFF}
	if got := canvas.NRGBAAt(2, 256); got != yellow {
		t.Errorf("left of annulus = %+v, want %+v", got, yellow)
	}
	if got := canvas.NRGBAAt(509, 256); got != blue {
		t.Errorf("right of annulus = %+v, want %+v", got, blue)
	}
}
