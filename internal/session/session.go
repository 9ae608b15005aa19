package session

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ironsheep/quicksnap/internal/imaging"
)

// Mode is the selection tool a completed drag triggers.
type Mode int

const (
	ModeNone Mode = iota
	ModeMosaic
	ModePaint
	ModeTrim
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeMosaic:
		return "mosaic"
	case ModePaint:
		return "paint"
	case ModeTrim:
		return "trim"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// IsTool reports whether m is one of the selection tools.
func (m Mode) IsTool() bool {
	return m == ModeMosaic || m == ModePaint || m == ModeTrim
}

// ParseMode converts "none", "mosaic", "paint" or "trim" to a Mode.
func ParseMode(s string) (Mode, error) {
	for _, m := range []Mode{ModeNone, ModeMosaic, ModePaint, ModeTrim} {
		if m.String() == s {
			return m, nil
		}
	}
	return ModeNone, fmt.Errorf("unknown tool: %s", s)
}

// Session is the state of one editing workflow.
type Session struct {
	// Current is the working image, nil until something is loaded.
	Current *imaging.Image

	// Original is the image as it was loaded. Nothing reads it yet; it is kept for
	// a future revert command.
	Original *imaging.Image

	// Mode is the armed selection tool.
	Mode Mode

	// LastRect remembers the last applied rectangle per tool. It survives mode
	// switches and new images and is clamped to the current image when re-applied.
	LastRect map[Mode]imaging.Rect

	// Strength is the mosaic strength, within [MinMosaicStrength, MaxMosaicStrength].
	Strength int

	// PaintColor is the fill colour of the paint tool.
	PaintColor color.NRGBA

	pending *image.Point
}

// NewSession returns an empty session with default tool parameters.
func NewSession() *Session {
	return &Session{
		Mode:       ModeNone,
		LastRect:   make(map[Mode]imaging.Rect),
		Strength:   imaging.DefaultMosaicStrength,
		PaintColor: imaging.DefaultPaintColor,
	}
}

// HasImage reports whether an image is loaded.
func (s *Session) HasImage() bool { return s.Current != nil }

// Pending returns the start point of a drag in progress.
func (s *Session) Pending() (image.Point, bool) {
	if s.pending == nil {
		return image.Point{}, false
	}
	return *s.pending, true
}

// replace installs a freshly loaded image and returns to Idle.
func (s *Session) replace(img *imaging.Image) {
	s.Current = img
	s.Original = img
	s.Mode = ModeNone
	s.pending = nil
}

func clampStrength(n int) int {
	if n < imaging.MinMosaicStrength {
		return imaging.MinMosaicStrength
	}
	if n > imaging.MaxMosaicStrength {
		return imaging.MaxMosaicStrength
	}
	return n
}
