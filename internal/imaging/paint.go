package imaging

import (
	"image/color"

	"github.com/disintegration/imaging"
)

// Paint fills the region r of img with c.
//
// The result is always FormatRGBA so that a partially transparent fill survives.
// Pixels inside the region are replaced by c exactly; nothing is blended. The region is
// clamped to the image. An empty region returns img itself, format untouched.
func Paint(img *Image, r Rect, c color.Color) *Image {
	region := r.Clamp(img.Width(), img.Height())
	if region.Empty() {
		return img
	}

	fill := imaging.New(region.Dx(), region.Dy(), c)
	out := imaging.Paste(img.pix, fill, region.Image().Min)
	return wrap(out, FormatRGBA)
}
