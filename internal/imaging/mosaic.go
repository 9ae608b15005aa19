package imaging

import (
	"github.com/disintegration/imaging"
)

const (
	// MinMosaicStrength and MaxMosaicStrength bound the strength slider.
	MinMosaicStrength = 1
	MaxMosaicStrength = 50

	// DefaultMosaicStrength is the initial slider position.
	DefaultMosaicStrength = 10
)

// MosaicFactor returns the block size used for a given strength.
//
// The factor is 50/strength (integer division), never below 1. Strength and factor are
// inversely related: strength 50 gives factor 1 (region unchanged) and strength 1 gives
// factor 50 (largest blocks). A strength below 1 is treated as 1.
func MosaicFactor(strength int) int {
	if strength < MinMosaicStrength {
		strength = MinMosaicStrength
	}
	f := MaxMosaicStrength / strength
	if f < 1 {
		f = 1
	}
	return f
}

// Mosaic pixelates the region r of img.
//
// The region is clamped to the image, shrunk by MosaicFactor(strength) with
// nearest-neighbor sampling (each side at least 1 pixel), enlarged back to its
// original size with nearest-neighbor sampling and pasted over the source.
// The format of img is preserved. An empty region returns img itself.
func Mosaic(img *Image, r Rect, strength int) *Image {
	region := r.Clamp(img.Width(), img.Height())
	if region.Empty() {
		return img
	}

	w, h := region.Dx(), region.Dy()
	f := MosaicFactor(strength)
	smallW, smallH := w/f, h/f
	if smallW < 1 {
		smallW = 1
	}
	if smallH < 1 {
		smallH = 1
	}

	sub := imaging.Crop(img.pix, region.Image())
	small := imaging.Resize(sub, smallW, smallH, imaging.NearestNeighbor)
	blocks := imaging.Resize(small, w, h, imaging.NearestNeighbor)

	out := imaging.Paste(img.pix, blocks, region.Image().Min)
	return wrap(out, img.format)
}
