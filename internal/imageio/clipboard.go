package imageio

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.design/x/clipboard"

	"github.com/ironsheep/quicksnap/internal/imaging"
)

var (
	// ErrClipboardEmpty is returned when the clipboard holds no image.
	ErrClipboardEmpty = errors.New("clipboard does not contain an image")

	// ErrClipboardUnavailable is returned when the platform clipboard cannot be used.
	ErrClipboardUnavailable = errors.New("clipboard is not available")
)

// Clipboard exchanges images with the system clipboard.
type Clipboard interface {
	// Available reports whether the clipboard can be used at all.
	Available() bool

	// ReadImage returns the image on the clipboard, or ErrClipboardEmpty.
	ReadImage() (*imaging.Image, error)

	// WriteImage places img on the clipboard as PNG.
	WriteImage(img *imaging.Image) error
}

// NewClipboard initialises the system clipboard. When the platform has no usable
// clipboard (no display, missing native support) the returned Clipboard reports
// unavailable and every call fails with ErrClipboardUnavailable.
func NewClipboard(logger *slog.Logger) Clipboard {
	if err := clipboard.Init(); err != nil {
		logger.Warn("clipboard unavailable", "error", err)
		return &unavailableClipboard{err: err}
	}
	return &systemClipboard{}
}

type systemClipboard struct {
	mu sync.Mutex
}

func (c *systemClipboard) Available() bool { return true }

func (c *systemClipboard) ReadImage() (*imaging.Image, error) {
	c.mu.Lock()
	data := clipboard.Read(clipboard.FmtImage)
	c.mu.Unlock()

	if len(data) == 0 {
		return nil, ErrClipboardEmpty
	}
	img, err := DecodeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to read clipboard image: %w", err)
	}
	return img, nil
}

func (c *systemClipboard) WriteImage(img *imaging.Image) error {
	data, err := EncodePNG(img)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	clipboard.Write(clipboard.FmtImage, data)
	return nil
}

type unavailableClipboard struct {
	err error
}

func (c *unavailableClipboard) Available() bool { return false }

func (c *unavailableClipboard) ReadImage() (*imaging.Image, error) {
	return nil, fmt.Errorf("%w: %v", ErrClipboardUnavailable, c.err)
}

func (c *unavailableClipboard) WriteImage(*imaging.Image) error {
	return fmt.Errorf("%w: %v", ErrClipboardUnavailable, c.err)
}
