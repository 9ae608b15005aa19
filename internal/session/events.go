package session

import (
	"image"

	"github.com/ironsheep/quicksnap/internal/imaging"
)

// Event is a semantic user action. The set of events is closed; Dispatch handles every
// implementation.
type Event interface {
	isEvent()
}

// Open asks the view for a file to load.
type Open struct{}

// PasteFromClipboard loads the image on the clipboard.
type PasteFromClipboard struct{}

// DropFile loads a file dropped onto the window.
type DropFile struct {
	Path string
}

// ChooseTool arms a selection tool. ModeNone disarms.
type ChooseTool struct {
	Tool Mode
}

// RemoveBackground makes the background of the current image transparent.
type RemoveBackground struct{}

// SelectionStart begins a drag at Point, in image pixel coordinates.
type SelectionStart struct {
	Point image.Point
}

// SelectionEnd completes a drag at Point, in image pixel coordinates.
type SelectionEnd struct {
	Point image.Point
}

// AdjustMosaicStrength changes the mosaic strength slider.
type AdjustMosaicStrength struct {
	Strength int
}

// SetPaintColor changes the fill colour. Hex is "#RRGGBB" or "#RRGGBBAA".
type SetPaintColor struct {
	Hex string
}

// Rotate turns the image counter-clockwise by Degrees (normally +90 or -90).
type Rotate struct {
	Degrees int
}

// Flip mirrors the image.
type Flip struct {
	Direction imaging.FlipDirection
}

// Save asks the view for a destination and writes the current image there.
type Save struct{}

// CopyToClipboard places the current image on the clipboard.
type CopyToClipboard struct{}

// Quit ends the session.
type Quit struct{}

// Follow-up events posted by the controller itself.
type (
	openPath struct {
		path string
	}

	savePath struct {
		path string
	}

	backgroundRemoved struct {
		src    *imaging.Image
		result *imaging.Image
		err    error
	}
)

func (Open) isEvent()                 {}
func (PasteFromClipboard) isEvent()   {}
func (DropFile) isEvent()             {}
func (ChooseTool) isEvent()           {}
func (RemoveBackground) isEvent()     {}
func (SelectionStart) isEvent()       {}
func (SelectionEnd) isEvent()         {}
func (AdjustMosaicStrength) isEvent() {}
func (SetPaintColor) isEvent()        {}
func (Rotate) isEvent()               {}
func (Flip) isEvent()                 {}
func (Save) isEvent()                 {}
func (CopyToClipboard) isEvent()      {}
func (Quit) isEvent()                 {}
func (openPath) isEvent()             {}
func (savePath) isEvent()             {}
func (backgroundRemoved) isEvent()    {}
