// Package flag defines the flag data model used by the avatar renderer.
//
// A flag is an ordered list of weighted colored stripes plus an orientation.
// Image-backed flags carry an asset reference instead; the asset pipeline
// rasterizes the referenced SVG into a texture that the renderer wraps
// around the avatar border.
//
// Stripe weights are relative proportions, not absolute sizes: a stripe's
// share of the border thickness (ring presentation) or angular sweep
// (segment presentation) is weight/totalWeight.
package flag

import (
	"image/color"
	"strconv"

	"github.com/flagring/flagring/pkg/errors"
)

// Orientation describes which way the stripes of a flag run.
type Orientation string

// Stripe orientations.
const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// Stripe is a single colored band of a flag.
type Stripe struct {
	// Color is a #RGB or #RRGGBB hex string.
	Color string `json:"color" toml:"color"`

	// Weight is the stripe's relative share of the flag. Must be
	// positive and finite.
	Weight float64 `json:"weight" toml:"weight"`
}

// Pattern is an ordered stripe list plus orientation. The first stripe is
// the top stripe of a horizontal flag or the left stripe of a vertical one.
type Pattern struct {
	Stripes     []Stripe    `json:"stripes" toml:"stripes"`
	Orientation Orientation `json:"orientation" toml:"orientation"`
}

// TotalWeight returns the sum of all stripe weights.
func (p *Pattern) TotalWeight() float64 {
	var total float64
	for _, s := range p.Stripes {
		total += s.Weight
	}
	return total
}

// Flag is a named, categorized pattern as it appears in the manifest.
// Image-backed flags set AssetURL and may omit Stripes.
type Flag struct {
	ID          string      `json:"id" toml:"id"`
	DisplayName string      `json:"display_name" toml:"display_name"`
	Category    string      `json:"category" toml:"category"`
	Orientation Orientation `json:"orientation,omitempty" toml:"orientation"`
	Stripes     []Stripe    `json:"stripes,omitempty" toml:"stripes"`
	AssetURL    string      `json:"asset_url,omitempty" toml:"asset_url"`
}

// Pattern returns the flag's stripe pattern. The orientation defaults to
// horizontal when unset.
func (f *Flag) Pattern() *Pattern {
	orientation := f.Orientation
	if orientation == "" {
		orientation = Horizontal
	}
	return &Pattern{Stripes: f.Stripes, Orientation: orientation}
}

// ParseHex parses a #RGB or #RRGGBB hex string into an opaque color.
// Returns an INVALID_COLOR error for anything else, including named
// colors such as "red".
func ParseHex(s string) (color.NRGBA, error) {
	if err := errors.ValidateHexColor(s); err != nil {
		return color.NRGBA{}, err
	}

	hex := s[1:]
	if len(hex) == 3 {
		// #f0a expands to #ff00aa
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "parse hex color %q", s)
	}

	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xFF,
	}, nil
}
