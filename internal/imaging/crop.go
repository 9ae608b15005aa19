package imaging

import (
	"github.com/disintegration/imaging"
)

// Trim crops img to the region r.
//
// Both corners are clamped into [0,width] x [0,height] first, so an oversized or
// partly outside selection is silently corrected instead of rejected. When nothing is
// left after clamping, img itself is returned. The format of img is preserved.
func Trim(img *Image, r Rect) *Image {
	region := r.Clamp(img.Width(), img.Height())
	if region.Empty() {
		return img
	}
	return wrap(imaging.Crop(img.pix, region.Image()), img.format)
}
