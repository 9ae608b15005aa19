package imaging

import (
	"fmt"
	"image/color"

	"github.com/disintegration/imaging"
)

// FlipDirection selects the mirror axis for Flip.
type FlipDirection int

const (
	// FlipHorizontal mirrors left to right.
	FlipHorizontal FlipDirection = iota
	// FlipVertical mirrors top to bottom.
	FlipVertical
)

func (d FlipDirection) String() string {
	switch d {
	case FlipHorizontal:
		return "horizontal"
	case FlipVertical:
		return "vertical"
	default:
		return fmt.Sprintf("FlipDirection(%d)", int(d))
	}
}

// ParseFlipDirection accepts "horizontal" / "h" and "vertical" / "v".
func ParseFlipDirection(s string) (FlipDirection, error) {
	switch s {
	case "horizontal", "h":
		return FlipHorizontal, nil
	case "vertical", "v":
		return FlipVertical, nil
	default:
		return 0, fmt.Errorf("unknown flip direction: %s", s)
	}
}

// Rotate turns img counter-clockwise by degrees, expanding the canvas to fit.
//
// Multiples of 90 are exact pixel permutations, so +90 followed by -90 restores the
// original. Any other angle is resampled and the uncovered corners become transparent,
// which makes the result FormatRGBA.
func Rotate(img *Image, degrees int) *Image {
	switch ((degrees % 360) + 360) % 360 {
	case 0:
		return img
	case 90:
		return wrap(imaging.Rotate90(img.pix), img.format)
	case 180:
		return wrap(imaging.Rotate180(img.pix), img.format)
	case 270:
		return wrap(imaging.Rotate270(img.pix), img.format)
	default:
		return wrap(imaging.Rotate(img.pix, float64(degrees), color.Transparent), FormatRGBA)
	}
}

// Flip mirrors img along the given axis.
func Flip(img *Image, dir FlipDirection) *Image {
	if dir == FlipVertical {
		return wrap(imaging.FlipV(img.pix), img.format)
	}
	return wrap(imaging.FlipH(img.pix), img.format)
}
