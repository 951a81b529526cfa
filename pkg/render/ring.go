package render

import (
	"image"
	"image/color"

	"github.com/flagring/flagring/pkg/flag"
)

// ringGapEpsilon is the residual ring width below which rounding slivers
// are ignored instead of closed.
const ringGapEpsilon = 1e-3

// band is one concentric stripe of the ring presentation.
type band struct {
	outer float64
	inner float64
	col   color.NRGBA
}

// ringBands splits the border annulus into concentric bands, one per
// stripe, walking from the outside in. The first stripe is the outermost
// band: the top stripe of a flag maps to the outer edge of the ring. This
// ordering is a contract, not an accident of iteration.
//
// If floating-point rounding leaves a sliver at the inner edge, it is
// closed with the last stripe's color.
func ringBands(p *flag.Pattern, g Geometry) ([]band, error) {
	total := p.TotalWeight()
	thickness := g.Thickness()
	if total <= 0 || thickness <= 0 {
		return nil, nil
	}

	bands := make([]band, 0, len(p.Stripes))
	remaining := g.RingOuter
	for _, s := range p.Stripes {
		if remaining <= g.RingInner+ringGapEpsilon {
			break
		}
		col, err := flag.ParseHex(s.Color)
		if err != nil {
			return nil, err
		}
		width := s.Weight / total * thickness
		inner := remaining - width
		if inner < g.RingInner {
			inner = g.RingInner
		}
		bands = append(bands, band{outer: remaining, inner: inner, col: col})
		remaining = inner
	}

	// Closing gap policy: any rounding sliver gets the last stripe's color.
	if len(bands) > 0 && remaining > g.RingInner+ringGapEpsilon {
		bands = append(bands, band{
			outer: remaining,
			inner: g.RingInner,
			col:   bands[len(bands)-1].col,
		})
	}

	return bands, nil
}

// renderRingStripes draws the concentric band presentation onto the canvas.
func renderRingStripes(canvas *image.NRGBA, p *flag.Pattern, g Geometry) error {
	bands, err := ringBands(p, g)
	if err != nil {
		return err
	}
	for _, b := range bands {
		fillAnnulus(canvas, g.Center.X, g.Center.Y, b.inner, b.outer, b.col)
	}
	return nil
}
