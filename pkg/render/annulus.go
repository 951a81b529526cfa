package render

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// SampleMode controls how sampled texture pixels are combined with the
// destination.
type SampleMode int

const (
	// SampleNormal writes the sampled RGBA directly to the destination.
	SampleNormal SampleMode = iota

	// SampleErase uses the sampled alpha as a mask: destination pixels
	// under sufficiently opaque texture are made transparent. This cuts a
	// shape out of previously drawn content instead of painting over it.
	SampleErase
)

// eraseAlphaThreshold is the sampled alpha above which SampleErase zeroes
// the destination alpha (about 3% of full opacity).
const eraseAlphaThreshold = 8

// SampleAnnulus wraps a rectangular bitmap around the annulus between
// innerR and outerR, centered at center. Standard 2D drawing offers only
// rectangular blits, so the wrap is built from primitives:
//
//  1. The source is cover-fit into an intermediate texture of
//     circumference × thickness, where circumference is measured at the
//     annulus midline. This unrolled strip is what gets bent around the
//     ring.
//  2. Every destination pixel inside the annulus is mapped back to the
//     strip by inverse polar coordinates: its angle (relative to
//     startAngle) selects the column, its radial depth selects the row.
//  3. The strip is sampled nearest-neighbor. Out-of-range texture indices
//     are clamped, so mismatched aspect ratios degrade gracefully rather
//     than crashing a render.
//
// startAngle is the canvas angle that maps to texture column 0. Degenerate
// inputs (non-positive thickness, empty bitmap) are a no-op.
//
// The per-pixel loop is O(outerR²) with trig on every pixel; it is the
// dominant cost of the whole pipeline. Callers driving it from continuous
// UI controls should rate-limit.
func SampleAnnulus(dst *image.NRGBA, tex image.Image, center Point, innerR, outerR, startAngle float64, mode SampleMode) {
	thickness := outerR - innerR
	if thickness <= 0 || outerR <= 0 || tex == nil {
		return
	}
	tb := tex.Bounds()
	if tb.Dx() < 1 || tb.Dy() < 1 {
		return
	}

	midR := (innerR + outerR) / 2
	texW := int(math.Round(2 * math.Pi * midR))
	texH := int(math.Round(thickness))
	if texW < 1 {
		texW = 1
	}
	if texH < 1 {
		texH = 1
	}
	cover := imaging.Fill(tex, texW, texH, imaging.Center, imaging.Lanczos)

	b := dst.Bounds()
	x0 := max(b.Min.X, int(math.Floor(center.X-outerR)))
	x1 := min(b.Max.X, int(math.Ceil(center.X+outerR)))
	y0 := max(b.Min.Y, int(math.Floor(center.Y-outerR)))
	y1 := min(b.Max.Y, int(math.Ceil(center.Y+outerR)))

	for y := y0; y < y1; y++ {
		dy := float64(y) + 0.5 - center.Y
		for x := x0; x < x1; x++ {
			dx := float64(x) + 0.5 - center.X
			radius := math.Hypot(dx, dy)
			if radius < innerR || radius > outerR {
				continue
			}

			angle := math.Atan2(dy, dx) - startAngle
			angle = math.Mod(angle, 2*math.Pi)
			if angle < 0 {
				angle += 2 * math.Pi
			}

			u := clampInt(int(angle/(2*math.Pi)*float64(texW)), 0, texW-1)
			v := clampInt(int((radius-innerR)/thickness*float64(texH)), 0, texH-1)
			c := cover.NRGBAAt(u, v)

			switch mode {
			case SampleNormal:
				dst.SetNRGBA(x, y, c)
			case SampleErase:
				if c.A > eraseAlphaThreshold {
					i := dst.PixOffset(x, y)
					dst.Pix[i+3] = 0
				}
			}
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
