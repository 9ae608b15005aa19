// Package viewport maps between an image and the area it is displayed in.
//
// Images are scaled down to fit the viewport, never up, and centred. View
// coordinates are in the toolkit's units with (0,0) at the top-left of the viewport.
package viewport

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/transform"

	"github.com/ironsheep/quicksnap/internal/imaging"
)

// Layout places an image inside a viewport.
type Layout struct {
	// Scale is display size / image size, in (0, 1].
	Scale float64

	// Offset is the top-left corner of the displayed image in view coordinates.
	Offset image.Point

	// Size is the displayed image size in view units.
	Size image.Point

	// Image is the full-resolution image size in pixels.
	Image image.Point
}

// Fit returns the layout that shows an imgW x imgH image inside a viewW x viewH
// viewport.
//
// A viewport with no area yields scale 1 so that mapping stays defined before the
// first real resize.
func Fit(imgW, imgH, viewW, viewH int) Layout {
	l := Layout{Scale: 1, Image: image.Pt(imgW, imgH)}
	if imgW <= 0 || imgH <= 0 {
		return l
	}
	if viewW > 0 && viewH > 0 {
		l.Scale = math.Min(1, math.Min(float64(viewW)/float64(imgW), float64(viewH)/float64(imgH)))
	}

	l.Size = image.Pt(
		max(1, int(math.Round(float64(imgW)*l.Scale))),
		max(1, int(math.Round(float64(imgH)*l.Scale))),
	)
	if viewW > 0 && viewH > 0 {
		l.Offset = image.Pt((viewW-l.Size.X)/2, (viewH-l.Size.Y)/2)
	}
	return l
}

// Bounds is the rectangle the image occupies in view coordinates.
func (l Layout) Bounds() image.Rectangle {
	return image.Rectangle{Min: l.Offset, Max: l.Offset.Add(l.Size)}
}

// ToImage converts a point in view coordinates to image pixel coordinates.
//
// The result is not clamped: points in the margin map outside the image and the
// transforms clamp them. Positions are floored, so the far edge of the displayed
// image maps to the image width or height.
func (l Layout) ToImage(p image.Point) image.Point {
	return image.Pt(
		int(math.Floor(float64(p.X-l.Offset.X)/l.Scale)),
		int(math.Floor(float64(p.Y-l.Offset.Y)/l.Scale)),
	)
}

// ToImageF is ToImage for fractional view positions.
func (l Layout) ToImageF(x, y float32) image.Point {
	return image.Pt(
		int(math.Floor((float64(x)-float64(l.Offset.X))/l.Scale)),
		int(math.Floor((float64(y)-float64(l.Offset.Y))/l.Scale)),
	)
}

// ToView converts image pixel coordinates to view coordinates.
func (l Layout) ToView(p image.Point) image.Point {
	return image.Pt(
		l.Offset.X+int(math.Round(float64(p.X)*l.Scale)),
		l.Offset.Y+int(math.Round(float64(p.Y)*l.Scale)),
	)
}

// Preview returns the pixels to draw for img at the given layout.
//
// At scale 1 the image buffer itself is returned. Smaller scales are resampled with a
// Lanczos filter so that downscaled screenshots stay legible.
func Preview(img *imaging.Image, l Layout) image.Image {
	if l.Scale >= 1 || l.Size.X <= 0 || l.Size.Y <= 0 {
		return img.NRGBA()
	}
	return transform.Resize(img.NRGBA(), l.Size.X, l.Size.Y, transform.Lanczos)
}
