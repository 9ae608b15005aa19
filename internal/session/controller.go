package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/ironsheep/quicksnap/internal/imageio"
	"github.com/ironsheep/quicksnap/internal/imaging"
	"github.com/ironsheep/quicksnap/internal/prefs"
	"github.com/ironsheep/quicksnap/internal/rembg"
)

// Options wires a Controller to its collaborators.
type Options struct {
	View      View
	Clipboard imageio.Clipboard
	Remover   rembg.Remover

	// Prefs is the loaded preferences record; PrefsPath is where Shutdown saves it.
	// An empty PrefsPath disables saving.
	Prefs     prefs.Preferences
	PrefsPath string

	Logger *slog.Logger
}

// Controller applies events to a Session.
//
// Dispatch is not safe for concurrent use; run it from a single goroutine, normally
// through a Loop.
type Controller struct {
	session   *Session
	view      View
	clipboard imageio.Clipboard
	remover   rembg.Remover
	prefs     prefs.Preferences
	prefsPath string
	logger    *slog.Logger

	// post delivers follow-up events. A Loop replaces it with Loop.Post.
	post func(Event)
	// spawn starts background work.
	spawn func(func())

	busy    bool
	stopped bool

	shutdownOnce sync.Once
	shutdownErr  error
}

// NewController creates a controller with an empty session.
//
// Missing collaborators are replaced by inert ones: no clipboard, no background
// removal, a discarding logger.
func NewController(opts Options) *Controller {
	c := &Controller{
		session:   NewSession(),
		view:      opts.View,
		clipboard: opts.Clipboard,
		remover:   opts.Remover,
		prefs:     opts.Prefs,
		prefsPath: opts.PrefsPath,
		logger:    opts.Logger,
		spawn:     func(f func()) { go f() },
	}
	c.post = func(ev Event) { c.Dispatch(ev) }

	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.clipboard == nil {
		c.clipboard = noClipboard{}
	}
	if c.remover == nil {
		c.remover = &rembg.Unavailable{}
	}
	if c.prefs.DefaultSaveFormat == "" {
		c.prefs = prefs.Default()
	}
	return c
}

// Session returns the controlled session. Callers must not modify it.
func (c *Controller) Session() *Session { return c.session }

// Preferences returns the preferences as updated during the session.
func (c *Controller) Preferences() prefs.Preferences { return c.prefs }

// Busy reports whether background removal is running.
func (c *Controller) Busy() bool { return c.busy }

// Stopped reports whether Quit has been handled.
func (c *Controller) Stopped() bool { return c.stopped }

// Dispatch handles one event. It returns false once the session has ended.
func (c *Controller) Dispatch(ev Event) bool {
	if c.stopped {
		return false
	}
	c.logger.Debug("dispatch", "event", fmt.Sprintf("%T", ev))

	switch e := ev.(type) {
	case Open:
		c.open()
	case openPath:
		c.loadFile(e.path)
	case PasteFromClipboard:
		c.paste()
	case DropFile:
		c.drop(e.Path)
	case ChooseTool:
		c.chooseTool(e.Tool)
	case RemoveBackground:
		c.removeBackground()
	case backgroundRemoved:
		c.backgroundDone(e)
	case SelectionStart:
		c.selectionStart(e.Point)
	case SelectionEnd:
		c.selectionEnd(e.Point)
	case AdjustMosaicStrength:
		c.adjustMosaicStrength(e.Strength)
	case SetPaintColor:
		c.setPaintColor(e.Hex)
	case Rotate:
		c.transformWhole("rotate", func(img *imaging.Image) *imaging.Image {
			return imaging.Rotate(img, e.Degrees)
		})
	case Flip:
		c.transformWhole("flip", func(img *imaging.Image) *imaging.Image {
			return imaging.Flip(img, e.Direction)
		})
	case Save:
		c.save()
	case savePath:
		c.saveTo(e.path)
	case CopyToClipboard:
		c.copyToClipboard()
	case Quit:
		c.Shutdown()
		return false
	default:
		c.logger.Warn("unhandled event", "event", fmt.Sprintf("%T", ev))
	}
	return true
}

// Shutdown saves the preferences and closes the view. Only the first call does
// anything; later calls return the first result.
func (c *Controller) Shutdown() error {
	c.shutdownOnce.Do(func() {
		c.stopped = true
		if c.prefsPath != "" {
			if err := c.prefs.Save(c.prefsPath); err != nil {
				c.shutdownErr = err
				c.logger.Error("failed to save preferences", "path", c.prefsPath, "error", err)
			} else {
				c.logger.Debug("preferences saved", "path", c.prefsPath)
			}
		}
		c.view.Close()
	})
	return c.shutdownErr
}

// rejectIfBusy reports a rejected action while background removal runs.
func (c *Controller) rejectIfBusy(action string) bool {
	if !c.busy {
		return false
	}
	c.view.ShowStatus(fmt.Sprintf("Busy removing background; %s ignored", action))
	return true
}

// requireImage reports a missing image.
func (c *Controller) requireImage(action string) bool {
	if c.session.HasImage() {
		return true
	}
	c.view.ShowStatus(fmt.Sprintf("No image loaded; %s ignored", action))
	return false
}

func (c *Controller) open() {
	if c.rejectIfBusy("open") {
		return
	}
	c.view.PromptOpenPath(func(path string) {
		if path != "" {
			c.post(openPath{path: path})
		}
	})
}

func (c *Controller) drop(path string) {
	if path == "" {
		return
	}
	c.loadFile(path)
}

func (c *Controller) loadFile(path string) {
	if c.rejectIfBusy("load") {
		return
	}
	img, err := imageio.LoadFile(path)
	if err != nil {
		c.logger.Warn("load failed", "path", path, "error", err)
		if errors.Is(err, imageio.ErrUnsupportedFormat) {
			c.view.ShowError(fmt.Sprintf("Unsupported image format: %s", filepath.Base(path)))
		} else {
			c.view.ShowError(fmt.Sprintf("Could not open %s: %v", filepath.Base(path), err))
		}
		return
	}
	c.prefs.LastDirectory = filepath.Dir(path)
	c.setImage(img, "Loaded "+filepath.Base(path))
}

func (c *Controller) paste() {
	if c.rejectIfBusy("paste") {
		return
	}
	if !c.clipboard.Available() {
		c.view.ShowStatus("Clipboard is not available")
		return
	}
	img, err := c.clipboard.ReadImage()
	if err != nil {
		if errors.Is(err, imageio.ErrClipboardEmpty) {
			c.view.ShowStatus("Clipboard does not contain an image")
			return
		}
		c.logger.Warn("clipboard read failed", "error", err)
		c.view.ShowError(fmt.Sprintf("Could not read clipboard: %v", err))
		return
	}
	c.setImage(img, "Pasted from clipboard")
}

// setImage installs a newly loaded image and returns to Idle.
func (c *Controller) setImage(img *imaging.Image, what string) {
	c.session.replace(img)
	c.view.DisplayImage(img)
	c.view.SetModeIndicator(ModeNone)
	c.view.ShowStatus(fmt.Sprintf("%s: %s", what, imaging.Describe(img)))
}

// setCurrent replaces the working image after a transform.
func (c *Controller) setCurrent(img *imaging.Image, what string) {
	c.session.Current = img
	c.view.DisplayImage(img)
	c.view.ShowStatus(fmt.Sprintf("%s: %s", what, imaging.Describe(img)))
}

func (c *Controller) chooseTool(m Mode) {
	if !m.IsTool() {
		m = ModeNone
	}
	c.session.Mode = m
	c.session.pending = nil
	c.view.SetModeIndicator(m)
}

func (c *Controller) selectionStart(p image.Point) {
	if !c.session.HasImage() || !c.session.Mode.IsTool() {
		return
	}
	c.session.pending = &p
}

func (c *Controller) selectionEnd(q image.Point) {
	start, ok := c.session.Pending()
	if !ok {
		return
	}
	c.session.pending = nil

	mode := c.session.Mode
	if !c.session.HasImage() || !mode.IsTool() {
		return
	}
	if c.rejectIfBusy(mode.String()) {
		return
	}

	cur := c.session.Current
	r := imaging.RectFromPoints(start, q).Clamp(cur.Width(), cur.Height())
	if r.Empty() {
		c.view.ShowStatus("Selection is empty")
		return
	}

	c.session.LastRect[mode] = r
	c.setCurrent(c.apply(mode, cur, r), fmt.Sprintf("%s %s", mode, r))
}

// apply runs the transform bound to mode with the current tool parameters.
func (c *Controller) apply(mode Mode, img *imaging.Image, r imaging.Rect) *imaging.Image {
	switch mode {
	case ModeMosaic:
		return imaging.Mosaic(img, r, c.session.Strength)
	case ModePaint:
		return imaging.Paint(img, r, c.session.PaintColor)
	case ModeTrim:
		return imaging.Trim(img, r)
	default:
		return img
	}
}

// adjustMosaicStrength stores the new strength and, in mosaic mode, re-applies the
// mosaic over the remembered rectangle clamped to the current image.
func (c *Controller) adjustMosaicStrength(n int) {
	c.session.Strength = clampStrength(n)

	if c.session.Mode != ModeMosaic || !c.session.HasImage() {
		return
	}
	last, ok := c.session.LastRect[ModeMosaic]
	if !ok {
		return
	}
	if c.rejectIfBusy("mosaic") {
		return
	}

	cur := c.session.Current
	r := last.Clamp(cur.Width(), cur.Height())
	if r.Empty() {
		return
	}
	c.setCurrent(imaging.Mosaic(cur, r, c.session.Strength),
		fmt.Sprintf("mosaic %s strength %d", r, c.session.Strength))
}

func (c *Controller) setPaintColor(hex string) {
	col, err := imaging.ParseHexColor(hex)
	if err != nil {
		c.logger.Debug("invalid paint colour", "value", hex, "error", err)
		c.view.ShowStatus(fmt.Sprintf("Invalid colour %q; using %s", hex, imaging.HexColor(imaging.DefaultPaintColor)))
		col = imaging.DefaultPaintColor
	}
	c.session.PaintColor = col
}

// transformWhole applies an immediate whole-image transform.
func (c *Controller) transformWhole(action string, fn func(*imaging.Image) *imaging.Image) {
	if !c.requireImage(action) || c.rejectIfBusy(action) {
		return
	}
	c.setCurrent(fn(c.session.Current), action)
}

func (c *Controller) removeBackground() {
	if !c.requireImage("background removal") || c.rejectIfBusy("background removal") {
		return
	}
	if !c.remover.Ready() {
		c.view.ShowStatus(fmt.Sprintf("Background removal unavailable: %v", c.remover.LastError()))
		return
	}

	c.busy = true
	c.view.ShowBusy("Removing background...")

	src := c.session.Current
	remover, post := c.remover, c.post
	c.spawn(func() {
		result, err := remover.Remove(context.Background(), src)
		post(backgroundRemoved{src: src, result: result, err: err})
	})
}

func (c *Controller) backgroundDone(e backgroundRemoved) {
	c.busy = false
	c.view.ClearBusy()

	if e.err != nil {
		c.view.ShowError(fmt.Sprintf("Background removal failed: %v", e.err))
		return
	}
	if c.session.Current != e.src {
		c.logger.Warn("discarding background removal for a replaced image")
		return
	}
	c.setCurrent(e.result, "Background removed")
}

func (c *Controller) save() {
	if !c.requireImage("save") {
		return
	}
	c.view.PromptSavePath(c.prefs.LastDirectory, func(path string) {
		if path != "" {
			c.post(savePath{path: path})
		}
	})
}

func (c *Controller) saveTo(path string) {
	if !c.requireImage("save") {
		return
	}
	chosen := path
	if filepath.Ext(path) == "" {
		path += "." + c.prefs.DefaultSaveFormat
	}
	if err := imageio.Save(c.session.Current, path); err != nil {
		c.logger.Error("save failed", "path", path, "error", err)
		c.view.ShowError(fmt.Sprintf("Could not save %s: %v", filepath.Base(path), err))
		return
	}
	if chosen != path {
		c.removePlaceholder(chosen)
	}
	c.prefs.LastDirectory = filepath.Dir(path)
	c.logger.Info("image saved", "path", path)
	c.view.ShowStatus("Saved " + path)
}

// removePlaceholder deletes the empty file a save dialog may have created at the
// name the user typed before an extension was added.
func (c *Controller) removePlaceholder(path string) {
	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() || fi.Size() != 0 {
		return
	}
	if err := os.Remove(path); err != nil {
		c.logger.Warn("failed to remove placeholder", "path", path, "error", err)
	}
}

func (c *Controller) copyToClipboard() {
	if !c.requireImage("copy") {
		return
	}
	if !c.clipboard.Available() {
		c.view.ShowStatus("Clipboard is not available")
		return
	}
	if err := c.clipboard.WriteImage(c.session.Current); err != nil {
		c.logger.Warn("clipboard write failed", "error", err)
		c.view.ShowError(fmt.Sprintf("Could not copy to clipboard: %v", err))
		return
	}
	c.view.ShowStatus("Copied image to clipboard")
}

type noClipboard struct{}

func (noClipboard) Available() bool { return false }

func (noClipboard) ReadImage() (*imaging.Image, error) {
	return nil, imageio.ErrClipboardUnavailable
}

func (noClipboard) WriteImage(*imaging.Image) error {
	return imageio.ErrClipboardUnavailable
}
