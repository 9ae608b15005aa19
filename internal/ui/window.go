// Package ui is the desktop front end: a fyne window that posts session events and
// implements session.View.
package ui

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"strings"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/quicksnap/internal/imaging"
	"github.com/ironsheep/quicksnap/internal/session"
)

// Window is the main application window.
type Window struct {
	fyne.Window

	post   func(session.Event)
	logger *slog.Logger

	surface   *surface
	status    *widget.Label
	modeLabel *widget.Label
	progress  *widget.ProgressBarInfinite

	mosaicRow *fyne.Container
	paintRow  *fyne.Container
	rotateRow *fyne.Container

	strength    *widget.Slider
	colorEntry  *widget.Entry
	colorSwatch *widget.Button

	// gone is set once the app has stopped; view calls after that are dropped.
	gone atomic.Bool
}

// NewWindow builds the window. post receives every user action.
func NewWindow(app fyne.App, title string, size [2]int, post func(session.Event), logger *slog.Logger) *Window {
	w := &Window{
		Window:  app.NewWindow(title),
		post:    post,
		logger:  logger,
		surface: newSurface(),
	}
	w.SetMaster()
	w.Resize(fyne.NewSize(float32(size[0]), float32(size[1])))

	w.surface.onSelectStart = func(p image.Point) { w.post(session.SelectionStart{Point: p}) }
	w.surface.onSelectEnd = func(p image.Point) { w.post(session.SelectionEnd{Point: p}) }

	w.setupMenus()
	w.SetContent(w.buildContent())
	w.setupEventHandlers()
	return w
}

func (w *Window) buildContent() fyne.CanvasObject {
	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.FolderOpenIcon(), func() { w.post(session.Open{}) }),
		widget.NewToolbarAction(theme.ContentPasteIcon(), func() { w.post(session.PasteFromClipboard{}) }),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() { w.post(session.Save{}) }),
		widget.NewToolbarAction(theme.ContentCopyIcon(), func() { w.post(session.CopyToClipboard{}) }),
	)

	tools := container.NewHBox(
		widget.NewButton("Mosaic", func() { w.post(session.ChooseTool{Tool: session.ModeMosaic}) }),
		widget.NewButtonWithIcon("Paint", theme.ColorPaletteIcon(), func() { w.post(session.ChooseTool{Tool: session.ModePaint}) }),
		widget.NewButtonWithIcon("Trim", theme.ContentCutIcon(), func() { w.post(session.ChooseTool{Tool: session.ModeTrim}) }),
		widget.NewButton("Remove background", func() { w.post(session.RemoveBackground{}) }),
		widget.NewButtonWithIcon("Rotate", theme.ViewRefreshIcon(), w.toggleRotateRow),
	)

	w.strength = widget.NewSlider(imaging.MinMosaicStrength, imaging.MaxMosaicStrength)
	w.strength.Step = 1
	w.strength.SetValue(imaging.DefaultMosaicStrength)
	strengthValue := widget.NewLabel(fmt.Sprint(imaging.DefaultMosaicStrength))
	w.strength.OnChanged = func(v float64) { strengthValue.SetText(fmt.Sprint(int(v))) }
	w.strength.OnChangeEnded = func(v float64) { w.post(session.AdjustMosaicStrength{Strength: int(v)}) }
	w.mosaicRow = container.NewBorder(nil, nil, widget.NewLabel("Strength"), strengthValue, w.strength)

	w.colorEntry = widget.NewEntry()
	w.colorEntry.SetText(imaging.HexColor(imaging.DefaultPaintColor))
	w.colorEntry.OnSubmitted = func(s string) { w.setPaintColor(strings.TrimSpace(s)) }
	w.colorSwatch = widget.NewButtonWithIcon("Pick...", theme.ColorPaletteIcon(), w.pickColor)
	w.paintRow = container.NewBorder(nil, nil, widget.NewLabel("Colour"), w.colorSwatch, w.colorEntry)

	w.rotateRow = container.NewHBox(
		widget.NewButton("Rotate left", func() { w.post(session.Rotate{Degrees: 90}) }),
		widget.NewButton("Rotate right", func() { w.post(session.Rotate{Degrees: -90}) }),
		widget.NewButton("Flip horizontal", func() { w.post(session.Flip{Direction: imaging.FlipHorizontal}) }),
		widget.NewButton("Flip vertical", func() { w.post(session.Flip{Direction: imaging.FlipVertical}) }),
	)

	w.mosaicRow.Hide()
	w.paintRow.Hide()
	w.rotateRow.Hide()

	w.status = widget.NewLabel("Ready")
	w.status.Truncation = fyne.TextTruncateEllipsis
	w.modeLabel = widget.NewLabel(modeText(session.ModeNone))
	w.progress = widget.NewProgressBarInfinite()
	w.progress.Stop()
	w.progress.Hide()

	top := container.NewVBox(toolbar, tools, w.mosaicRow, w.paintRow, w.rotateRow)
	bottom := container.NewBorder(nil, nil, w.modeLabel, w.progress, w.status)
	return container.NewBorder(top, bottom, nil, nil, w.surface)
}

func (w *Window) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open...", func() { w.post(session.Open{}) }),
		fyne.NewMenuItem("Save As...", func() { w.post(session.Save{}) }),
	)
	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Paste", func() { w.post(session.PasteFromClipboard{}) }),
		fyne.NewMenuItem("Copy", func() { w.post(session.CopyToClipboard{}) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Mosaic", func() { w.post(session.ChooseTool{Tool: session.ModeMosaic}) }),
		fyne.NewMenuItem("Paint", func() { w.post(session.ChooseTool{Tool: session.ModePaint}) }),
		fyne.NewMenuItem("Trim", func() { w.post(session.ChooseTool{Tool: session.ModeTrim}) }),
		fyne.NewMenuItem("Remove Background", func() { w.post(session.RemoveBackground{}) }),
	)
	transformMenu := fyne.NewMenu("Transform",
		fyne.NewMenuItem("Rotate Left", func() { w.post(session.Rotate{Degrees: 90}) }),
		fyne.NewMenuItem("Rotate Right", func() { w.post(session.Rotate{Degrees: -90}) }),
		fyne.NewMenuItem("Flip Horizontal", func() { w.post(session.Flip{Direction: imaging.FlipHorizontal}) }),
		fyne.NewMenuItem("Flip Vertical", func() { w.post(session.Flip{Direction: imaging.FlipVertical}) }),
	)
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			dialog.ShowInformation("About QuickSnap", "QuickSnap: quick screenshot touch-ups.", w.Window)
		}),
	)
	w.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, transformMenu, helpMenu))
}

func (w *Window) setupEventHandlers() {
	w.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyV, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { w.post(session.PasteFromClipboard{}) })
	w.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyC, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { w.post(session.CopyToClipboard{}) })
	w.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { w.post(session.Save{}) })

	w.SetOnDropped(func(_ fyne.Position, uris []fyne.URI) {
		if len(uris) > 0 {
			w.post(session.DropFile{Path: uris[0].Path()})
		}
	})

	// Closing goes through the session so preferences are saved; Close ends it.
	w.SetCloseIntercept(func() { w.post(session.Quit{}) })
}

func (w *Window) toggleRotateRow() {
	if w.rotateRow.Visible() {
		w.rotateRow.Hide()
	} else {
		w.rotateRow.Show()
	}
}

func (w *Window) setPaintColor(hex string) {
	if _, err := imaging.ParseHexColor(hex); err != nil {
		w.colorEntry.SetText(imaging.HexColor(imaging.DefaultPaintColor))
	}
	w.post(session.SetPaintColor{Hex: hex})
}

func (w *Window) pickColor() {
	picker := dialog.NewColorPicker("Paint colour", "Choose the fill colour", func(c color.Color) {
		cf, ok := colorful.MakeColor(c)
		if !ok {
			// fully transparent
			w.colorEntry.SetText("#00000000")
			w.setPaintColor("#00000000")
			return
		}
		_, _, _, a := c.RGBA()
		hex := strings.ToUpper(cf.Hex())
		if a != 0xffff {
			hex += fmt.Sprintf("%02X", uint8(a>>8))
		}
		w.colorEntry.SetText(hex)
		w.setPaintColor(hex)
	}, w.Window)
	picker.Advanced = true
	if c, err := imaging.ParseHexColor(w.colorEntry.Text); err == nil {
		picker.SetColor(c)
	}
	picker.Show()
}

func modeText(m session.Mode) string {
	if m == session.ModeNone {
		return "Tool: none"
	}
	return "Tool: " + m.String()
}

// session.View. Every method may be called from the session loop goroutine and hands
// its work to the UI thread.

func (w *Window) DisplayImage(img *imaging.Image) {
	w.do(func() { w.surface.SetImage(img) })
}

func (w *Window) SetModeIndicator(m session.Mode) {
	w.do(func() {
		w.modeLabel.SetText(modeText(m))
		if m == session.ModeMosaic {
			w.mosaicRow.Show()
		} else {
			w.mosaicRow.Hide()
		}
		if m == session.ModePaint {
			w.paintRow.Show()
		} else {
			w.paintRow.Hide()
		}
	})
}

func (w *Window) PromptOpenPath(done func(string)) {
	w.do(func() {
		fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				done("")
				return
			}
			reader.Close()
			done(reader.URI().Path())
		}, w.Window)
		fd.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".bmp", ".gif"}))
		fd.Show()
	})
}

func (w *Window) PromptSavePath(initialDir string, done func(string)) {
	w.do(func() {
		fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				done("")
				return
			}
			writer.Close()
			done(writer.URI().Path())
		}, w.Window)
		fd.SetFileName("quicksnap.png")
		if initialDir != "" {
			if loc, err := storage.ListerForURI(storage.NewFileURI(initialDir)); err == nil {
				fd.SetLocation(loc)
			}
		}
		fd.Show()
	})
}

func (w *Window) ShowStatus(text string) {
	w.do(func() { w.status.SetText(text) })
}

func (w *Window) ShowError(text string) {
	w.logger.Debug("error shown", "text", text)
	w.do(func() {
		w.status.SetText(text)
		dialog.ShowError(errors.New(text), w.Window)
	})
}

func (w *Window) ShowBusy(text string) {
	w.do(func() {
		w.status.SetText(text)
		w.progress.Show()
		w.progress.Start()
	})
}

func (w *Window) ClearBusy() {
	w.do(func() {
		w.progress.Stop()
		w.progress.Hide()
	})
}

func (w *Window) Close() {
	w.do(func() { w.Window.Close() })
}

// do runs f on the fyne thread unless the app has stopped.
func (w *Window) do(f func()) {
	if w.gone.Load() {
		return
	}
	fyne.Do(f)
}

// Detach marks the app as stopped. Call it after ShowAndRun returns.
func (w *Window) Detach() { w.gone.Store(true) }
