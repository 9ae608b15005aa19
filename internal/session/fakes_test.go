package session

import (
	"context"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/quicksnap/internal/imageio"
	"github.com/ironsheep/quicksnap/internal/imaging"
	"github.com/ironsheep/quicksnap/internal/prefs"
)

// fakeView records every call made by the controller
type fakeView struct {
	displayed []*imaging.Image
	modes     []Mode
	statuses  []string
	errors    []string
	busy      []string
	cleared   int
	closed    int

	openResponse string
	saveResponse string
	saveDirs     []string

	onDisplay func(*imaging.Image)
	onClear   func()
}

func (v *fakeView) DisplayImage(img *imaging.Image) {
	v.displayed = append(v.displayed, img)
	if v.onDisplay != nil {
		v.onDisplay(img)
	}
}

func (v *fakeView) SetModeIndicator(m Mode) { v.modes = append(v.modes, m) }

func (v *fakeView) PromptOpenPath(done func(string)) { done(v.openResponse) }

func (v *fakeView) PromptSavePath(dir string, done func(string)) {
	v.saveDirs = append(v.saveDirs, dir)
	done(v.saveResponse)
}

func (v *fakeView) ShowStatus(text string) { v.statuses = append(v.statuses, text) }
func (v *fakeView) ShowError(text string)  { v.errors = append(v.errors, text) }
func (v *fakeView) ShowBusy(text string)   { v.busy = append(v.busy, text) }

func (v *fakeView) ClearBusy() {
	v.cleared++
	if v.onClear != nil {
		v.onClear()
	}
}

func (v *fakeView) Close() { v.closed++ }

func (v *fakeView) lastStatus() string {
	if len(v.statuses) == 0 {
		return ""
	}
	return v.statuses[len(v.statuses)-1]
}

func (v *fakeView) hasStatus(substr string) bool {
	for _, s := range v.statuses {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}

// fakeClipboard holds at most one image
type fakeClipboard struct {
	available bool
	content   *imaging.Image
	writeErr  error
	written   []*imaging.Image
}

func (c *fakeClipboard) Available() bool { return c.available }

func (c *fakeClipboard) ReadImage() (*imaging.Image, error) {
	if !c.available {
		return nil, imageio.ErrClipboardUnavailable
	}
	if c.content == nil {
		return nil, imageio.ErrClipboardEmpty
	}
	return c.content, nil
}

func (c *fakeClipboard) WriteImage(img *imaging.Image) error {
	if c.writeErr != nil {
		return c.writeErr
	}
	c.written = append(c.written, img)
	c.content = img
	return nil
}

// fakeRemover turns every pixel transparent, or fails with err
type fakeRemover struct {
	ready bool
	err   error
	calls int
}

func (r *fakeRemover) Ready() bool { return r.ready }

func (r *fakeRemover) LastError() error {
	if !r.ready {
		return errors.New("rembg not installed")
	}
	return r.err
}

func (r *fakeRemover) Remove(_ context.Context, img *imaging.Image) (*imaging.Image, error) {
	r.calls++
	if r.err != nil {
		return img, r.err
	}
	src := image.NewNRGBA(img.Bounds())
	return imaging.New(src, imaging.FormatRGBA)
}

// createGradientImage creates an RGB image where neighbouring pixels differ
func createGradientImage(t *testing.T, width, height int) *imaging.Image {
	t.Helper()
	src := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			src.Set(x, y, color.NRGBA{uint8(x * 3), uint8(y * 3), uint8(x ^ y), 255})
		}
	}
	img, err := imaging.New(src, imaging.FormatRGB)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return img
}

// writeTestImage saves a gradient PNG and returns its path
func writeTestImage(t *testing.T, dir, name string, width, height int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := imageio.Save(createGradientImage(t, width, height), path); err != nil {
		t.Fatalf("failed to write test image: %v", err)
	}
	return path
}

type testEnv struct {
	ctrl      *Controller
	view      *fakeView
	clipboard *fakeClipboard
	remover   *fakeRemover
	prefsPath string
	jobs      []func()
}

// newTestEnv builds a controller whose background work is queued instead of started
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		view:      &fakeView{},
		clipboard: &fakeClipboard{available: true},
		remover:   &fakeRemover{ready: true},
		prefsPath: filepath.Join(t.TempDir(), "settings.json"),
	}
	env.ctrl = NewController(Options{
		View:      env.view,
		Clipboard: env.clipboard,
		Remover:   env.remover,
		Prefs:     prefs.Default(),
		PrefsPath: env.prefsPath,
	})
	env.ctrl.spawn = func(f func()) { env.jobs = append(env.jobs, f) }
	return env
}

func (e *testEnv) dispatch(t *testing.T, events ...Event) {
	t.Helper()
	for _, ev := range events {
		if !e.ctrl.Dispatch(ev) {
			t.Fatalf("Dispatch(%T) reported stop", ev)
		}
	}
}

// runJobs completes queued background work
func (e *testEnv) runJobs() {
	jobs := e.jobs
	e.jobs = nil
	for _, f := range jobs {
		f()
	}
}
