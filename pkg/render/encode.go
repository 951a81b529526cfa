package render

import (
	"bytes"
	"image"
	"image/png"

	"github.com/flagring/flagring/pkg/errors"
)

// EncodePNG serializes a finished canvas to a lossless PNG blob at full
// alpha depth. It has no side effects besides allocation.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncodeFailure, err, "encode PNG")
	}
	return buf.Bytes(), nil
}
