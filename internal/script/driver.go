package script

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"

	"github.com/ironsheep/quicksnap/internal/imaging"
	"github.com/ironsheep/quicksnap/internal/session"
)

// Request is one input line.
type Request struct {
	Event     string `json:"event"`
	Path      string `json:"path,omitempty"`
	Tool      string `json:"tool,omitempty"`
	X         *int   `json:"x,omitempty"`
	Y         *int   `json:"y,omitempty"`
	Value     *int   `json:"value,omitempty"`
	Color     string `json:"color,omitempty"`
	Degrees   *int   `json:"degrees,omitempty"`
	Direction string `json:"direction,omitempty"`
}

// Driver feeds requests into a session loop.
type Driver struct {
	view   *View
	ctrl   *session.Controller
	loop   *session.Loop
	logger *slog.Logger
}

// New creates a driver for a controller built on view. It creates the session
// loop; the caller must not start another one for ctrl.
func New(ctrl *session.Controller, view *View, logger *slog.Logger) *Driver {
	return &Driver{
		view:   view,
		ctrl:   ctrl,
		loop:   session.NewLoop(ctrl, logger),
		logger: logger,
	}
}

// Run processes r until "quit" or end of input and returns once the session has
// shut down.
func (d *Driver) Run(ctx context.Context, r io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errc := make(chan error, 1)
	go func() { errc <- d.loop.Run(ctx) }()

	scanner := bufio.NewScanner(r)
	// Increase buffer size for long paths
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	lineNo := 0
	quit := false
	for !quit && scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			d.logger.Warn("failed to parse request", "line", lineNo, "error", err)
			d.view.emit(Output{Kind: "error", Line: lineNo, Text: fmt.Sprintf("invalid JSON: %v", err)})
			continue
		}

		ev, err := toEvent(&req)
		if err != nil {
			d.view.emit(Output{Kind: "error", Line: lineNo, Text: err.Error()})
			continue
		}

		d.view.answer(req.Path, req.Path)
		d.loop.Post(ev)
		if _, ok := ev.(session.Quit); ok {
			quit = true
			break
		}
		if err := d.settle(ctx); err != nil {
			if errors.Is(err, session.ErrStopped) {
				break
			}
			return err
		}
	}

	scanErr := scanner.Err()
	if !quit {
		d.loop.Post(session.Quit{})
	}

	if err := <-errc; err != nil {
		return err
	}
	if scanErr != nil {
		return fmt.Errorf("scanner error: %w", scanErr)
	}
	return nil
}

// settle waits until the posted event and any background work it started are done.
func (d *Driver) settle(ctx context.Context) error {
	if err := d.loop.Barrier(ctx); err != nil {
		return err
	}
	if err := d.view.waitIdle(ctx); err != nil {
		return err
	}
	return d.loop.Barrier(ctx)
}

// toEvent converts a request to a session event.
func toEvent(req *Request) (session.Event, error) {
	switch req.Event {
	case "open":
		if req.Path == "" {
			return nil, errors.New("open: path is required")
		}
		return session.Open{}, nil
	case "paste":
		return session.PasteFromClipboard{}, nil
	case "drop":
		return session.DropFile{Path: req.Path}, nil
	case "choose_tool":
		m, err := session.ParseMode(req.Tool)
		if err != nil {
			return nil, fmt.Errorf("choose_tool: %w", err)
		}
		return session.ChooseTool{Tool: m}, nil
	case "remove_background":
		return session.RemoveBackground{}, nil
	case "selection_start", "selection_end":
		if req.X == nil || req.Y == nil {
			return nil, fmt.Errorf("%s: x and y are required", req.Event)
		}
		p := image.Pt(*req.X, *req.Y)
		if req.Event == "selection_start" {
			return session.SelectionStart{Point: p}, nil
		}
		return session.SelectionEnd{Point: p}, nil
	case "mosaic_strength":
		if req.Value == nil {
			return nil, errors.New("mosaic_strength: value is required")
		}
		return session.AdjustMosaicStrength{Strength: *req.Value}, nil
	case "paint_color":
		return session.SetPaintColor{Hex: req.Color}, nil
	case "rotate":
		if req.Degrees == nil {
			return nil, errors.New("rotate: degrees is required")
		}
		return session.Rotate{Degrees: *req.Degrees}, nil
	case "flip":
		dir, err := imaging.ParseFlipDirection(req.Direction)
		if err != nil {
			return nil, fmt.Errorf("flip: %w", err)
		}
		return session.Flip{Direction: dir}, nil
	case "save":
		if req.Path == "" {
			return nil, errors.New("save: path is required")
		}
		return session.Save{}, nil
	case "copy":
		return session.CopyToClipboard{}, nil
	case "quit":
		return session.Quit{}, nil
	default:
		return nil, fmt.Errorf("unknown event: %s", req.Event)
	}
}
