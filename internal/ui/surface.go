package ui

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ironsheep/quicksnap/internal/imaging"
	"github.com/ironsheep/quicksnap/internal/viewport"
)

// surface shows the current image fitted to its area and turns drags into
// selection points in image coordinates.
type surface struct {
	widget.BaseWidget

	img       *imaging.Image
	layout    viewport.Layout
	preview   *canvas.Image
	previewAt image.Point
	hint      *canvas.Text
	selection *canvas.Rectangle

	dragging  bool
	dragStart fyne.Position
	dragEnd   fyne.Position

	onSelectStart func(image.Point)
	onSelectEnd   func(image.Point)
}

func newSurface() *surface {
	s := &surface{
		preview:   canvas.NewImageFromImage(nil),
		hint:      canvas.NewText("Open, paste or drop an image", theme.Color(theme.ColorNamePlaceHolder)),
		selection: canvas.NewRectangle(color.Transparent),
	}
	s.preview.FillMode = canvas.ImageFillStretch
	s.preview.ScaleMode = canvas.ImageScaleSmooth
	s.hint.Alignment = fyne.TextAlignCenter
	s.selection.StrokeColor = color.NRGBA{R: 0, G: 160, B: 255, A: 255}
	s.selection.StrokeWidth = 1
	s.selection.Hide()
	s.ExtendBaseWidget(s)
	return s
}

// SetImage replaces the displayed image. Must run on the UI thread.
func (s *surface) SetImage(img *imaging.Image) {
	s.img = img
	s.previewAt = image.Point{}
	s.hint.Hide()
	s.Refresh()
}

func (s *surface) CreateRenderer() fyne.WidgetRenderer {
	return &surfaceRenderer{s: s}
}

func (s *surface) MinSize() fyne.Size {
	return fyne.NewSize(320, 240)
}

func (s *surface) Dragged(ev *fyne.DragEvent) {
	if s.img == nil {
		return
	}
	if !s.dragging {
		s.dragging = true
		s.dragStart = ev.Position.Subtract(ev.Dragged)
		if s.onSelectStart != nil {
			s.onSelectStart(s.layout.ToImageF(s.dragStart.X, s.dragStart.Y))
		}
	}
	s.dragEnd = ev.Position
	s.showSelection()
}

func (s *surface) DragEnd() {
	if !s.dragging {
		return
	}
	s.dragging = false
	s.selection.Hide()
	s.selection.Refresh()
	if s.onSelectEnd != nil {
		s.onSelectEnd(s.layout.ToImageF(s.dragEnd.X, s.dragEnd.Y))
	}
}

func (s *surface) showSelection() {
	x1, x2 := s.dragStart.X, s.dragEnd.X
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	y1, y2 := s.dragStart.Y, s.dragEnd.Y
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	s.selection.Move(fyne.NewPos(x1, y1))
	s.selection.Resize(fyne.NewSize(x2-x1, y2-y1))
	s.selection.Show()
	s.selection.Refresh()
}

type surfaceRenderer struct {
	s *surface
}

func (r *surfaceRenderer) Layout(size fyne.Size) {
	s := r.s
	s.hint.Resize(size)
	if s.img == nil {
		s.preview.Hide()
		return
	}

	s.layout = viewport.Fit(s.img.Width(), s.img.Height(), int(size.Width), int(size.Height))
	if s.layout.Size != s.previewAt {
		s.preview.Image = viewport.Preview(s.img, s.layout)
		s.previewAt = s.layout.Size
		s.preview.Refresh()
	}
	s.preview.Move(fyne.NewPos(float32(s.layout.Offset.X), float32(s.layout.Offset.Y)))
	s.preview.Resize(fyne.NewSize(float32(s.layout.Size.X), float32(s.layout.Size.Y)))
	s.preview.Show()
}

func (r *surfaceRenderer) MinSize() fyne.Size {
	return r.s.MinSize()
}

func (r *surfaceRenderer) Refresh() {
	r.Layout(r.s.Size())
	canvas.Refresh(r.s)
}

func (r *surfaceRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.s.hint, r.s.preview, r.s.selection}
}

func (r *surfaceRenderer) Destroy() {}
