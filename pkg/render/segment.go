package render

import (
	"image"
	"image/color"
	"math"

	"github.com/flagring/flagring/pkg/flag"
)

// segmentStartAngle is 12 o'clock in canvas coordinates (y grows
// downward). It is also the angle that maps to texture column 0 when a
// bitmap border is wrapped around the annulus.
const segmentStartAngle = -math.Pi / 2

// arcSpan is one angular wedge of the segment presentation. Wedges advance
// from 12 o'clock through the left side of the circle, so the first stripe
// of a two-stripe flag covers the left half.
type arcSpan struct {
	start float64 // leading edge angle, radians
	sweep float64 // positive angular extent
	col   color.NRGBA
}

// segmentArcs splits the full circle into wedges proportional to stripe
// weights. The sweeps sum to exactly 2π by construction, so no gap filling
// is needed.
func segmentArcs(p *flag.Pattern) ([]arcSpan, error) {
	total := p.TotalWeight()
	if total <= 0 {
		return nil, nil
	}

	arcs := make([]arcSpan, 0, len(p.Stripes))
	start := segmentStartAngle
	for _, s := range p.Stripes {
		col, err := flag.ParseHex(s.Color)
		if err != nil {
			return nil, err
		}
		sweep := 2 * math.Pi * s.Weight / total
		arcs = append(arcs, arcSpan{start: start, sweep: sweep, col: col})
		start -= sweep
	}
	return arcs, nil
}

// renderSegmentStripes draws the angular wedge presentation onto the canvas.
func renderSegmentStripes(canvas *image.NRGBA, p *flag.Pattern, g Geometry) error {
	arcs, err := segmentArcs(p)
	if err != nil {
		return err
	}
	for _, a := range arcs {
		fillWedge(canvas, g.Center.X, g.Center.Y, g.RingInner, g.RingOuter,
			a.start, a.start-a.sweep, a.col)
	}
	return nil
}
