package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// addArc appends a circular arc from angle a0 to a1 (radians) to the
// rasterizer's current path, approximated by cubic Béziers of at most a
// quarter turn each. The current point must already be at angle a0.
// Negative sweeps (a1 < a0) walk the arc in the opposite direction, which
// flips the winding contribution.
func addArc(z *vector.Rasterizer, cx, cy, r, a0, a1 float64) {
	da := a1 - a0
	n := int(math.Ceil(math.Abs(da) / (math.Pi / 2)))
	if n < 1 {
		n = 1
	}
	step := da / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)

	for i := 0; i < n; i++ {
		s := a0 + float64(i)*step
		e := s + step
		sinS, cosS := math.Sincos(s)
		sinE, cosE := math.Sincos(e)

		x0, y0 := cx+r*cosS, cy+r*sinS
		x3, y3 := cx+r*cosE, cy+r*sinE
		x1, y1 := x0-k*r*sinS, y0+k*r*cosS
		x2, y2 := x3+k*r*sinE, y3-k*r*cosE

		z.CubeTo(float32(x1), float32(y1), float32(x2), float32(y2), float32(x3), float32(y3))
	}
}

// addCircle appends a full circle subpath. Reversed circles subtract
// coverage, which is how annulus holes are carved.
func addCircle(z *vector.Rasterizer, cx, cy, r float64, reversed bool) {
	z.MoveTo(float32(cx+r), float32(cy))
	if reversed {
		addArc(z, cx, cy, r, 0, -2*math.Pi)
	} else {
		addArc(z, cx, cy, r, 0, 2*math.Pi)
	}
	z.ClosePath()
}

// fillAnnulus fills the ring between inner and outer with a solid color,
// anti-aliased.
func fillAnnulus(dst *image.NRGBA, cx, cy, inner, outer float64, col color.NRGBA) {
	if outer <= 0 || outer <= inner {
		return
	}
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	addCircle(z, cx, cy, outer, false)
	if inner > 0 {
		addCircle(z, cx, cy, inner, true)
	}
	z.Draw(dst, b, image.NewUniform(col), image.Point{})
}

// fillWedge fills the annulus sector between angles a0 and a1 with a solid
// color. The outer arc is swept forward and the inner arc backward to close
// the wedge; an inner radius of zero degenerates to a pie slice.
func fillWedge(dst *image.NRGBA, cx, cy, inner, outer, a0, a1 float64, col color.NRGBA) {
	if outer <= 0 || outer <= inner {
		return
	}
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())

	sin0, cos0 := math.Sincos(a0)
	z.MoveTo(float32(cx+outer*cos0), float32(cy+outer*sin0))
	addArc(z, cx, cy, outer, a0, a1)
	if inner > 0 {
		sin1, cos1 := math.Sincos(a1)
		z.LineTo(float32(cx+inner*cos1), float32(cy+inner*sin1))
		addArc(z, cx, cy, inner, a1, a0)
	} else {
		z.LineTo(float32(cx), float32(cy))
	}
	z.ClosePath()

	z.Draw(dst, b, image.NewUniform(col), image.Point{})
}

// circleMask rasterizes a filled circle into an alpha mask of the given
// dimensions.
func circleMask(w, h int, cx, cy, r float64) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	if r <= 0 {
		return mask
	}
	z := vector.NewRasterizer(w, h)
	addCircle(z, cx, cy, r, false)
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// annulusMask rasterizes a filled annulus into an alpha mask.
func annulusMask(w, h int, cx, cy, inner, outer float64) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	if outer <= 0 || outer <= inner {
		return mask
	}
	z := vector.NewRasterizer(w, h)
	addCircle(z, cx, cy, outer, false)
	if inner > 0 {
		addCircle(z, cx, cy, inner, true)
	}
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// applyMask multiplies the image's alpha channel by the mask, in place.
// This is destination-in compositing: only content covered by the mask
// survives. The mask must have the same dimensions as the image.
func applyMask(img *image.NRGBA, mask *image.Alpha) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := img.PixOffset(x, y)
			m := mask.AlphaAt(x-b.Min.X, y-b.Min.Y).A
			img.Pix[i+3] = uint8(uint32(img.Pix[i+3]) * uint32(m) / 255)
		}
	}
}

// fillRect fills a rectangle with a solid color, replacing existing pixels.
func fillRect(dst *image.NRGBA, r image.Rectangle, col color.NRGBA) {
	draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(col), image.Point{}, draw.Src)
}
