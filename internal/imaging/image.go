package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// ErrEmptyImage is returned when an image with zero width or height is wrapped.
var ErrEmptyImage = errors.New("image has no pixels")

// Format is the pixel format an Image is treated as.
//
// Storage is always 8-bit non-premultiplied RGBA; the format records whether the
// alpha channel carries information. An RGB image is guaranteed to be fully opaque.
type Format int

const (
	// FormatRGB is a 3-channel image; every pixel is opaque.
	FormatRGB Format = iota
	// FormatRGBA is a 4-channel image with meaningful transparency.
	FormatRGBA
)

func (f Format) String() string {
	switch f {
	case FormatRGB:
		return "RGB"
	case FormatRGBA:
		return "RGBA"
	default:
		return "unknown"
	}
}

// Image is an owned, immutable pixel buffer.
//
// Every transform in this package returns a new Image and never modifies its input.
// Callers must not write to the buffer returned by NRGBA.
type Image struct {
	pix    *image.NRGBA
	format Format
}

// New copies src into a new Image of the given format.
//
// Converting to FormatRGB discards the alpha channel: colour values are kept and every
// pixel becomes opaque. The copy is rebased so that Bounds().Min is (0,0).
func New(src image.Image, format Format) (*Image, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	return wrap(imaging.Clone(src), format), nil
}

// wrap takes ownership of pix, which must not be shared with anything else.
func wrap(pix *image.NRGBA, format Format) *Image {
	if format == FormatRGB {
		dropAlpha(pix)
	}
	return &Image{pix: pix, format: format}
}

// dropAlpha forces every pixel opaque in place.
func dropAlpha(pix *image.NRGBA) {
	for i := 3; i < len(pix.Pix); i += 4 {
		pix.Pix[i] = 0xff
	}
}

// Width returns the width in pixels.
func (im *Image) Width() int { return im.pix.Rect.Dx() }

// Height returns the height in pixels.
func (im *Image) Height() int { return im.pix.Rect.Dy() }

// Bounds returns the image rectangle, always anchored at (0,0).
func (im *Image) Bounds() image.Rectangle { return im.pix.Rect }

// Format returns the pixel format.
func (im *Image) Format() Format { return im.format }

// HasAlpha reports whether the image is 4-channel.
func (im *Image) HasAlpha() bool { return im.format == FormatRGBA }

// NRGBA exposes the underlying buffer for encoding and display. Read only.
func (im *Image) NRGBA() *image.NRGBA { return im.pix }

// At returns the colour of one pixel as NRGBA.
func (im *Image) At(x, y int) color.NRGBA { return im.pix.NRGBAAt(x, y) }

// ToRGB returns the image as FormatRGB. The receiver is returned when it already is.
func (im *Image) ToRGB() *Image {
	if im.format == FormatRGB {
		return im
	}
	return wrap(imaging.Clone(im.pix), FormatRGB)
}

// ToRGBA returns the image as FormatRGBA. Pixels are unchanged; an RGB image simply
// gains its (opaque) alpha channel.
func (im *Image) ToRGBA() *Image {
	if im.format == FormatRGBA {
		return im
	}
	return wrap(imaging.Clone(im.pix), FormatRGBA)
}

// Equal reports whether two images have the same format, size and pixel data.
func (im *Image) Equal(other *Image) bool {
	if im == other {
		return true
	}
	if im == nil || other == nil {
		return false
	}
	return im.format == other.format &&
		im.pix.Rect == other.pix.Rect &&
		bytes.Equal(im.pix.Pix, other.pix.Pix)
}
