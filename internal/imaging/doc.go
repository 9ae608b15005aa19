// Package imaging provides the image value type and the pixel transforms of the editor.
//
// This package implements the region-based edits (mosaic, paint, trim) and the
// whole-image orientation changes (rotate, flip). Every operation takes an *Image and
// returns a new *Image; inputs are never modified, so an image handed to the view can
// be displayed while the next edit is computed.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// Selections arrive as two drag points in any order. Rect.Normalize orders them and
// Rect.Clamp moves them into the image before a transform touches any pixel.
//
// # Pixel Formats
//
// Images are stored as 8-bit non-premultiplied RGBA. Format records whether the
// alpha channel is meaningful:
//   - FormatRGB: 3-channel image, every pixel opaque (JPEG, BMP sources)
//   - FormatRGBA: 4-channel image (PNG, GIF sources, painted images)
//
// # Degenerate Regions
//
// A region with zero width or height after normalization and clamping is a no-op:
// the transform returns its input pointer unchanged. Callers can detect this with
// pointer equality.
//
// # Color Representation
//
// Paint colours are written as "#RRGGBB" or "#RRGGBBAA". ParseHexColor rejects
// anything else; PaintColor falls back to opaque red.
package imaging
