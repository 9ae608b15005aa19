package script

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/ironsheep/quicksnap/internal/imaging"
	"github.com/ironsheep/quicksnap/internal/session"
)

// Output is one line written by the driver.
type Output struct {
	Kind   string `json:"kind"`
	Text   string `json:"text,omitempty"`
	Mode   string `json:"mode,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Format string `json:"format,omitempty"`
	Line   int    `json:"line,omitempty"`
}

// View implements session.View by writing JSON lines.
type View struct {
	mu   sync.Mutex
	enc  *json.Encoder
	idle chan struct{}

	openPath string
	savePath string
}

// NewView writes view calls to w.
func NewView(w io.Writer) *View {
	idle := make(chan struct{})
	close(idle)
	return &View{enc: json.NewEncoder(w), idle: idle}
}

func (v *View) emit(o Output) {
	v.mu.Lock()
	defer v.mu.Unlock()
	// Output errors surface when the driver finishes; a broken pipe ends the run.
	_ = v.enc.Encode(o)
}

// answer sets the replies for the next open and save prompts.
func (v *View) answer(openPath, savePath string) {
	v.mu.Lock()
	v.openPath, v.savePath = openPath, savePath
	v.mu.Unlock()
}

// waitIdle blocks while background work is running.
func (v *View) waitIdle(ctx context.Context) error {
	v.mu.Lock()
	idle := v.idle
	v.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (v *View) DisplayImage(img *imaging.Image) {
	info := imaging.Describe(img)
	v.emit(Output{Kind: "image", Width: info.Width, Height: info.Height, Format: info.Format})
}

func (v *View) SetModeIndicator(m session.Mode) {
	v.emit(Output{Kind: "mode", Mode: m.String()})
}

func (v *View) PromptOpenPath(done func(string)) {
	v.mu.Lock()
	path := v.openPath
	v.mu.Unlock()
	done(path)
}

func (v *View) PromptSavePath(_ string, done func(string)) {
	v.mu.Lock()
	path := v.savePath
	v.mu.Unlock()
	done(path)
}

func (v *View) ShowStatus(text string) { v.emit(Output{Kind: "status", Text: text}) }

func (v *View) ShowError(text string) { v.emit(Output{Kind: "error", Text: text}) }

func (v *View) ShowBusy(text string) {
	v.mu.Lock()
	v.idle = make(chan struct{})
	v.mu.Unlock()
	v.emit(Output{Kind: "busy", Text: text})
}

func (v *View) ClearBusy() {
	v.mu.Lock()
	select {
	case <-v.idle:
	default:
		close(v.idle)
	}
	v.mu.Unlock()
	v.emit(Output{Kind: "idle"})
}

func (v *View) Close() { v.emit(Output{Kind: "closed"}) }
