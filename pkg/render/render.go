package render

import (
	"image"
	"image/draw"

	"github.com/flagring/flagring/pkg/errors"
	"github.com/flagring/flagring/pkg/flag"
)

// Border is the content wrapped around the photo: a weighted stripe
// pattern, a pre-rasterized flag bitmap, or both. When both are present
// the texture wins; pattern and texture are mutually substitutable border
// sources.
type Border struct {
	Pattern *flag.Pattern
	Texture image.Image
}

// presenter is one border presentation strategy. All three variants share
// a single resolved Geometry; whether a presentation can wrap a bitmap
// border is an explicit capability, not an inference scattered through
// the draw code.
type presenter interface {
	// acceptsTexture reports whether this presentation can render a
	// bitmap-backed border.
	acceptsTexture() bool

	render(canvas *image.NRGBA, photo image.Image, border Border, g Geometry, opts Options) error
}

type ringPresenter struct{}

func (ringPresenter) acceptsTexture() bool { return true }

func (ringPresenter) render(canvas *image.NRGBA, photo image.Image, border Border, g Geometry, opts Options) error {
	drawPhoto(canvas, photo, g)
	if border.Texture != nil {
		SampleAnnulus(canvas, border.Texture, g.Center, g.RingInner, g.RingOuter,
			segmentStartAngle, SampleNormal)
		return nil
	}
	return renderRingStripes(canvas, border.Pattern, g)
}

type segmentPresenter struct{}

func (segmentPresenter) acceptsTexture() bool { return true }

func (segmentPresenter) render(canvas *image.NRGBA, photo image.Image, border Border, g Geometry, opts Options) error {
	drawPhoto(canvas, photo, g)
	if border.Texture != nil {
		SampleAnnulus(canvas, border.Texture, g.Center, g.RingInner, g.RingOuter,
			segmentStartAngle, SampleNormal)
		return nil
	}
	return renderSegmentStripes(canvas, border.Pattern, g)
}

type cutoutPresenter struct{}

func (cutoutPresenter) acceptsTexture() bool { return true }

func (cutoutPresenter) render(canvas *image.NRGBA, photo image.Image, border Border, g Geometry, opts Options) error {
	return renderCutout(canvas, photo, border, g, opts)
}

func presenterFor(p Presentation) (presenter, error) {
	switch p {
	case PresentationRing:
		return ringPresenter{}, nil
	case PresentationSegment:
		return segmentPresenter{}, nil
	case PresentationCutout:
		return cutoutPresenter{}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidOptions, "unknown presentation: %q", p)
}

// resolvePresentation picks the presentation for a border when the caller
// did not: vertical flags default to segments, everything else to rings.
func resolvePresentation(border Border, opts Options) Presentation {
	if opts.Presentation != "" {
		return opts.Presentation
	}
	if border.Pattern != nil && border.Pattern.Orientation == flag.Vertical {
		return PresentationSegment
	}
	return PresentationRing
}

// Render composites the photo and border onto a fresh canvas. The photo
// may be nil for a border-only preview. Validation runs to completion
// before any pixel work; an invalid pattern is never partially rendered.
func Render(photo image.Image, border Border, opts Options) (*image.NRGBA, error) {
	if border.Pattern == nil && border.Texture == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no border source: need a stripe pattern or a texture")
	}
	if border.Pattern != nil {
		if err := flag.ValidatePattern(border.Pattern); err != nil {
			return nil, err
		}
	}

	opts = opts.normalized()
	g := ResolveGeometry(opts)

	pres, err := presenterFor(resolvePresentation(border, opts))
	if err != nil {
		return nil, err
	}
	if border.Pattern == nil && !pres.acceptsTexture() {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"presentation %q cannot render a bitmap border", resolvePresentation(border, opts))
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, opts.Size, opts.Size))
	if opts.Background != nil {
		draw.Draw(canvas, canvas.Bounds(), image.NewUniform(*opts.Background), image.Point{}, draw.Src)
	}

	if err := pres.render(canvas, photo, border, g, opts); err != nil {
		return nil, err
	}

	if s := opts.OuterStroke; s != nil && s.Width > 0 {
		inner := max(0, g.RingOuter-s.Width/2)
		outer := min(g.OuterRadius, g.RingOuter+s.Width/2)
		fillAnnulus(canvas, g.Center.X, g.Center.Y, inner, outer, s.Color)
	}

	return canvas, nil
}

// RenderPNG renders and encodes in one step, returning the PNG blob.
func RenderPNG(photo image.Image, border Border, opts Options) ([]byte, error) {
	canvas, err := Render(photo, border, opts)
	if err != nil {
		return nil, err
	}
	return EncodePNG(canvas)
}
