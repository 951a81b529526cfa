package render

import (
	"image"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
)

// drawPhoto draws the photo centered on the canvas, cover-fit and clipped
// to a circle of ImageRadius. Cover-fit scales by the larger of the
// width/height ratios so the photo fully covers the circle, cropping the
// excess rather than distorting.
//
// The photo is always centered: cutout's ImageOffset moves border content
// only, never the photo.
func drawPhoto(canvas *image.NRGBA, photo image.Image, g Geometry) {
	if photo == nil || g.ImageRadius <= 0 {
		return
	}
	pb := photo.Bounds()
	if pb.Dx() == 0 || pb.Dy() == 0 {
		return
	}

	d := int(math.Ceil(2 * g.ImageRadius))
	if d < 1 {
		return
	}

	fitted := imaging.Fill(photo, d, d, imaging.Center, imaging.Lanczos)

	half := float64(d) / 2
	applyMask(fitted, circleMask(d, d, half, half, g.ImageRadius))

	origin := image.Pt(
		int(math.Round(g.Center.X-half)),
		int(math.Round(g.Center.Y-half)),
	)
	draw.Draw(canvas, image.Rectangle{Min: origin, Max: origin.Add(image.Pt(d, d))},
		fitted, image.Point{}, draw.Over)
}
