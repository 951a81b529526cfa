package assets

import (
	"bytes"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/flagring/flagring/pkg/errors"
)

// RasterizeSVG renders SVG markup into a bitmap of the given dimensions,
// anti-aliased, with the drawing scaled to fill the target. Pass zero for
// height to derive it from the document's aspect ratio.
func RasterizeSVG(data []byte, width, height int) (*image.NRGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidImage, err, "parse SVG")
	}

	vb := icon.ViewBox
	if width < 1 {
		return nil, errors.New(errors.ErrCodeInvalidImage, "invalid raster width %d", width)
	}
	if height < 1 {
		if vb.W <= 0 || vb.H <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidImage, "SVG has no usable viewBox")
		}
		height = int(math.Round(float64(width) * vb.H / vb.W))
		if height < 1 {
			height = 1
		}
	}

	icon.SetTarget(0, 0, float64(width), float64(height))

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1.0)

	return imaging.Clone(rgba), nil
}

// DecodeTexture turns fetched artwork into a bitmap border texture. SVG
// documents are rasterized at the given width; raster formats are decoded
// as-is and the renderer's cover-fit handles sizing.
func DecodeTexture(data []byte, width, height int) (*image.NRGBA, error) {
	if looksLikeSVG(data) {
		return RasterizeSVG(data, width, height)
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidImage, err, "decode image")
	}
	return imaging.Clone(img), nil
}

// looksLikeSVG sniffs for an XML or svg prolog. Content-type headers from
// asset hosts are unreliable, so the bytes decide.
func looksLikeSVG(data []byte) bool {
	head := bytes.TrimLeft(data, " \t\r\n\xef\xbb\xbf")
	return bytes.HasPrefix(head, []byte("<svg")) || bytes.HasPrefix(head, []byte("<?xml"))
}
