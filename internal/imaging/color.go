package imaging

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultPaintColor is the fill colour used when none (or a malformed one) is given:
// opaque red.
var DefaultPaintColor = color.NRGBA{R: 255, G: 0, B: 0, A: 255}

// ParseHexColor parses a colour of the form "#RRGGBB" or "#RRGGBBAA".
//
// Hex digits may be upper or lower case. Colours without an alpha pair are opaque.
// Any other length, a missing '#', or a non-hex digit is an error.
func ParseHexColor(s string) (color.NRGBA, error) {
	if len(s) != 7 && len(s) != 9 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: want #RRGGBB or #RRGGBBAA", s)
	}
	if s[0] != '#' {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: missing '#'", s)
	}
	if !isHex(s[1:]) {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: non-hex digit", s)
	}

	c, err := colorful.Hex(s[:7])
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := c.RGB255()

	a := uint64(255)
	if len(s) == 9 {
		a, err = strconv.ParseUint(s[7:9], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
	}

	return color.NRGBA{R: r, G: g, B: b, A: uint8(a)}, nil
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}

// PaintColor resolves a user supplied colour string, falling back to
// DefaultPaintColor when it cannot be parsed.
func PaintColor(s string) color.NRGBA {
	c, err := ParseHexColor(s)
	if err != nil {
		return DefaultPaintColor
	}
	return c
}

// HexColor formats c as "#RRGGBB", or "#RRGGBBAA" when it is not opaque.
func HexColor(c color.NRGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
