package session

import "github.com/ironsheep/quicksnap/internal/imaging"

// View is what the controller needs from the presentation layer.
//
// Methods are called from the loop goroutine; implementations that own a UI thread
// must marshal the work onto it. The prompt methods may return before the user has
// answered: they call done exactly once, with "" when the user cancelled.
type View interface {
	DisplayImage(img *imaging.Image)
	SetModeIndicator(mode Mode)
	PromptOpenPath(done func(path string))
	PromptSavePath(initialDir string, done func(path string))
	ShowStatus(text string)
	ShowError(text string)
	ShowBusy(text string)
	ClearBusy()
	Close()
}
