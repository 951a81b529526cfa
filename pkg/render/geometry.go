package render

import "math"

// Point is a position on the canvas in pixel coordinates.
type Point struct {
	X float64
	Y float64
}

// Geometry holds the resolved pixel radii for one render call. It is
// derived from Options every call and never persisted.
type Geometry struct {
	// Center of the canvas.
	Center Point

	// OuterRadius is half the canvas size.
	OuterRadius float64

	// RingOuter and RingInner bound the border annulus.
	RingOuter float64
	RingInner float64

	// ImageRadius is the radius of the photo circle.
	ImageRadius float64
}

// Thickness returns the radial width of the border annulus.
func (g Geometry) Thickness() float64 {
	return g.RingOuter - g.RingInner
}

// ResolveGeometry turns canvas size and percentage parameters into pixel
// radii. It is pure and has no failure path: out-of-range inputs are
// clamped, never rejected, because geometry degeneracy is cosmetic.
func ResolveGeometry(opts Options) Geometry {
	opts = opts.normalized()

	size := float64(opts.Size)
	r := size / 2
	thickness := size * opts.ThicknessPct / 100
	padding := size * opts.PaddingPct / 100

	ringOuter := clamp(r-padding, 0, r)
	ringInner := math.Max(0, ringOuter-thickness)
	imageRadius := clamp(ringInner-opts.ImageInset, 0, r-0.5)

	return Geometry{
		Center:      Point{X: r, Y: r},
		OuterRadius: r,
		RingOuter:   ringOuter,
		RingInner:   ringInner,
		ImageRadius: imageRadius,
	}
}
