package render

import (
	"image"
	"image/draw"
	"math"

	"github.com/flagring/flagring/pkg/flag"
)

// renderCutout draws the cutout presentation: the photo centered in the
// inner circle, and the border content drawn on an oversized scratch
// layer, masked to the annulus, and composited back. The scratch is wider
// than the canvas by 3×|ImageOffset.X| so shifted content is never
// clipped; the photo itself never moves.
//
// This presentation never calls the ring or segment renderers.
func renderCutout(canvas *image.NRGBA, photo image.Image, border Border, g Geometry, opts Options) error {
	drawPhoto(canvas, photo, g)

	size := opts.Size
	dx := opts.ImageOffset.X
	pad := 3 * abs(dx)
	if pad%2 != 0 {
		pad++
	}
	left := pad / 2

	scratch := image.NewNRGBA(image.Rect(0, 0, size+pad, size))
	scx := g.Center.X + float64(left)
	scy := g.Center.Y

	if border.Texture != nil {
		// Re-center the flag bitmap on the scratch, shifted by the offset.
		SampleAnnulus(scratch, border.Texture,
			Point{X: scx + float64(dx), Y: scy},
			g.RingInner, g.RingOuter, segmentStartAngle, SampleNormal)
	} else if err := fillCutoutStripes(scratch, border.Pattern, g, left, dx); err != nil {
		return err
	}

	// Destination-in: everything outside the annulus becomes transparent.
	applyMask(scratch, annulusMask(scratch.Bounds().Dx(), scratch.Bounds().Dy(),
		scx, scy, g.RingInner, g.RingOuter))

	// Composite back, compensating for the width overshoot.
	draw.Draw(canvas, canvas.Bounds(), scratch, image.Pt(left, 0), draw.Over)
	return nil
}

// fillCutoutStripes paints raw stripe bands across the scratch layer.
// Horizontal stripes stack vertically over the ring's extent and shift
// with the x offset into the extra width; vertical stripes tile across the
// full scratch width, unshifted.
func fillCutoutStripes(scratch *image.NRGBA, p *flag.Pattern, g Geometry, left, dx int) error {
	if p == nil || len(p.Stripes) == 0 {
		return nil
	}
	total := p.TotalWeight()
	if total <= 0 {
		return nil
	}

	sb := scratch.Bounds()
	if p.Orientation == flag.Vertical {
		edge := 0.0
		width := float64(sb.Dx())
		for _, s := range p.Stripes {
			col, err := flag.ParseHex(s.Color)
			if err != nil {
				return err
			}
			next := edge + s.Weight/total*width
			fillRect(scratch, image.Rect(
				int(math.Round(edge)), sb.Min.Y,
				int(math.Round(next)), sb.Max.Y,
			), col)
			edge = next
		}
		return nil
	}

	x0 := left + dx + int(math.Round(g.Center.X-g.RingOuter))
	x1 := x0 + int(math.Ceil(2*g.RingOuter))
	edge := g.Center.Y - g.RingOuter
	for _, s := range p.Stripes {
		col, err := flag.ParseHex(s.Color)
		if err != nil {
			return err
		}
		next := edge + s.Weight/total*(2*g.RingOuter)
		fillRect(scratch, image.Rect(
			x0, int(math.Round(edge)),
			x1, int(math.Round(next)),
		), col)
		edge = next
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
