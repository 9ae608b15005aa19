package imaging

import (
	"fmt"
	"image"
)

// Rect is a selection rectangle given by two corner points in image pixel coordinates.
//
// The corners may arrive in any order (a drag can go up and to the left); call
// Normalize before use. After normalization the rectangle is half-open:
// (X1, Y1) is inclusive and (X2, Y2) is exclusive, the same convention as
// image.Rectangle.
type Rect struct {
	X1, Y1 int
	X2, Y2 int
}

// RectFromPoints builds a normalized rectangle spanning two drag points.
func RectFromPoints(a, b image.Point) Rect {
	return Rect{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y}.Normalize()
}

// Normalize orders the corners so that X1 <= X2 and Y1 <= Y2.
func (r Rect) Normalize() Rect {
	if r.X1 > r.X2 {
		r.X1, r.X2 = r.X2, r.X1
	}
	if r.Y1 > r.Y2 {
		r.Y1, r.Y2 = r.Y2, r.Y1
	}
	return r
}

// Empty reports whether the normalized rectangle has zero width or height.
func (r Rect) Empty() bool {
	n := r.Normalize()
	return n.X1 == n.X2 || n.Y1 == n.Y2
}

// Dx returns the width of the normalized rectangle.
func (r Rect) Dx() int { n := r.Normalize(); return n.X2 - n.X1 }

// Dy returns the height of the normalized rectangle.
func (r Rect) Dy() int { n := r.Normalize(); return n.Y2 - n.Y1 }

// Clamp normalizes the rectangle and moves both corners into [0,w] x [0,h].
//
// A selection that lies entirely outside the image collapses to an empty rectangle.
func (r Rect) Clamp(w, h int) Rect {
	n := r.Normalize()
	return Rect{
		X1: clamp(n.X1, 0, w),
		Y1: clamp(n.Y1, 0, h),
		X2: clamp(n.X2, 0, w),
		Y2: clamp(n.Y2, 0, h),
	}
}

// Image converts the normalized rectangle to an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	n := r.Normalize()
	return image.Rect(n.X1, n.Y1, n.X2, n.Y2)
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.X1, r.Y1, r.X2, r.Y2)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
