// Package render composites a profile photo with a circular flag border.
//
// The renderer is a pure function of its inputs: a decoded photo, a border
// source (a weighted stripe pattern or a pre-rasterized flag bitmap) and a
// set of options. Every call resolves its own geometry and owns its own
// canvas buffers, so concurrent calls are safe as long as callers do not
// share destination buffers. No state is retained between calls.
//
// # Presentations
//
// Three border presentations are supported:
//
//   - ring: stripes as concentric bands, first stripe outermost
//   - segment: stripes as angular wedges starting at 12 o'clock
//   - cutout: the border content drawn on an oversized scratch layer,
//     masked to the annulus and horizontally offsettable independent of
//     the photo
//
// When no presentation is requested, horizontal flags render as rings and
// vertical flags as segments. Bitmap borders are wrapped around the annulus
// by inverse polar sampling in all three presentations.
//
// # Errors
//
// Pattern validation runs before any pixel work and is the only rendering
// error a well-formed call can hit. Degenerate geometry (a thickness that
// would produce a negative inner radius, a zero-area texture) is clamped or
// short-circuited, never surfaced as an error.
package render
