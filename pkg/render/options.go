package render

import (
	"image"
	"image/color"

	"github.com/flagring/flagring/pkg/errors"
)

// Presentation selects how the flag is drawn around the photo.
type Presentation string

// Supported border presentations.
const (
	PresentationRing    Presentation = "ring"
	PresentationSegment Presentation = "segment"
	PresentationCutout  Presentation = "cutout"
)

// Canvas sizes supported by the renderer.
const (
	SizeSmall = 512
	SizeLarge = 1024
)

// Thickness bounds in percent of the canvas size.
const (
	MinThicknessPct     = 5.0
	MaxThicknessPct     = 20.0
	DefaultThicknessPct = 10.0
)

// Stroke describes an optional outline drawn along the outer edge of
// the border.
type Stroke struct {
	Color color.NRGBA
	Width float64
}

// Options configures a single render call. The zero value renders a
// 512px ring with default thickness on a transparent background.
type Options struct {
	// Size is the square canvas size in pixels, 512 or 1024.
	Size int `json:"size"`

	// ThicknessPct is the border thickness as a percentage of Size,
	// clamped into [5, 20].
	ThicknessPct float64 `json:"thickness_pct"`

	// PaddingPct shrinks the border inward from the canvas edge, as a
	// percentage of Size. Clamped to be non-negative.
	PaddingPct float64 `json:"padding_pct"`

	// ImageInset is the gap in pixels between the border's inner edge
	// and the photo circle. May be negative to let the photo extend
	// underneath the border.
	ImageInset float64 `json:"image_inset"`

	// ImageOffset shifts the border content in cutout presentation.
	// Only the X component is used: cutout bands run horizontally, so
	// the shift is horizontal. The photo itself never moves; in ring
	// and segment presentations this field has no effect.
	ImageOffset image.Point `json:"image_offset"`

	// Presentation selects the border style. When empty, horizontal
	// flags render as rings and vertical flags as segments.
	Presentation Presentation `json:"presentation,omitempty"`

	// OuterStroke, when set, outlines the border's outer edge.
	OuterStroke *Stroke `json:"-"`

	// Background fills the canvas before drawing. Nil leaves the
	// canvas transparent.
	Background *color.NRGBA `json:"-"`
}

// normalized returns a copy with defaults applied and geometry inputs
// clamped. Out-of-range geometry is cosmetic, not an error, so nothing
// here can fail.
func (o Options) normalized() Options {
	if o.Size == 0 {
		o.Size = SizeSmall
	}
	if o.ThicknessPct == 0 {
		o.ThicknessPct = DefaultThicknessPct
	}
	o.ThicknessPct = clamp(o.ThicknessPct, MinThicknessPct, MaxThicknessPct)
	o.PaddingPct = max(o.PaddingPct, 0)
	return o
}

// Validate strictly checks option values for API and CLI input. The
// renderer itself clamps instead of rejecting; this is the gatekeeper for
// callers that want errors rather than silent correction.
func (o Options) Validate() error {
	if o.Size != 0 && o.Size != SizeSmall && o.Size != SizeLarge {
		return errors.New(errors.ErrCodeInvalidOptions, "size must be %d or %d, got %d", SizeSmall, SizeLarge, o.Size)
	}
	if o.ThicknessPct != 0 && (o.ThicknessPct < MinThicknessPct || o.ThicknessPct > MaxThicknessPct) {
		return errors.New(errors.ErrCodeInvalidOptions, "thickness_pct must be in [%g, %g], got %g",
			MinThicknessPct, MaxThicknessPct, o.ThicknessPct)
	}
	if o.PaddingPct < 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "padding_pct must be non-negative, got %g", o.PaddingPct)
	}
	switch o.Presentation {
	case "", PresentationRing, PresentationSegment, PresentationCutout:
	default:
		return errors.New(errors.ErrCodeInvalidOptions, "unknown presentation: %q", o.Presentation)
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
