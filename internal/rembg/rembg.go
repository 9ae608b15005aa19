// Package rembg removes image backgrounds with an external segmentation model.
//
// The model is not linked into the binary. Command drives the rembg command line
// tool through temporary PNG files; when the tool is not installed, New returns an
// Unavailable remover so callers can grey the feature out instead of probing at
// runtime.
package rembg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ironsheep/quicksnap/internal/imageio"
	"github.com/ironsheep/quicksnap/internal/imaging"
)

// DefaultCommand is the executable looked up on PATH when none is configured.
const DefaultCommand = "rembg"

// ErrUnavailable is returned by removers that cannot run.
var ErrUnavailable = errors.New("background removal is not available")

// Remover makes the background of an image transparent.
//
// Remove never panics. On failure it returns the input image unchanged together with
// a non-nil error, and the error is also kept for LastError.
type Remover interface {
	Ready() bool
	LastError() error
	Remove(ctx context.Context, img *imaging.Image) (*imaging.Image, error)
}

// New returns a Command for the given executable when it can be resolved, otherwise an
// Unavailable remover describing why.
func New(command string, timeout time.Duration, logger *slog.Logger) Remover {
	if command == "" {
		command = DefaultCommand
	}
	path, err := exec.LookPath(command)
	if err != nil {
		logger.Info("background removal disabled", "command", command, "error", err)
		return &Unavailable{Reason: fmt.Errorf("%w: %s not found: %v", ErrUnavailable, command, err)}
	}
	logger.Debug("background removal enabled", "path", path)
	return &Command{Path: path, Timeout: timeout, logger: logger}
}

// Command runs "rembg i <input> <output>".
type Command struct {
	// Path is the resolved executable.
	Path string

	// Timeout bounds one run. Zero means no limit.
	Timeout time.Duration

	logger *slog.Logger

	mu      sync.Mutex
	lastErr error
}

// Ready always reports true; New only builds a Command for a resolved executable.
func (c *Command) Ready() bool { return true }

// LastError returns the error of the most recent failed run, or nil.
func (c *Command) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Remove writes img to a temporary PNG, runs the tool and loads its output.
//
// The result is always imaging.FormatRGBA.
func (c *Command) Remove(ctx context.Context, img *imaging.Image) (*imaging.Image, error) {
	start := time.Now()
	result, err := c.run(ctx, img)

	c.mu.Lock()
	c.lastErr = err
	c.mu.Unlock()

	if err != nil {
		if c.logger != nil {
			c.logger.Error("background removal failed", "error", err)
		}
		return img, err
	}
	if c.logger != nil {
		c.logger.Info("background removed", "elapsed", time.Since(start).Round(time.Millisecond))
	}
	return result, nil
}

func (c *Command) run(ctx context.Context, img *imaging.Image) (*imaging.Image, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	dir, err := os.MkdirTemp("", "quicksnap-rembg-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "input.png")
	out := filepath.Join(dir, "output.png")
	if err := imageio.Save(img, in); err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, c.Path, "i", in, out)
	if output, err := cmd.CombinedOutput(); err != nil {
		msg := strings.TrimSpace(string(output))
		if ctx.Err() != nil {
			return nil, fmt.Errorf("rembg: %w", ctx.Err())
		}
		if msg != "" {
			return nil, fmt.Errorf("rembg: %w: %s", err, msg)
		}
		return nil, fmt.Errorf("rembg: %w", err)
	}

	result, err := imageio.LoadFile(out)
	if err != nil {
		return nil, fmt.Errorf("rembg produced no usable output: %w", err)
	}
	return result.ToRGBA(), nil
}

// Unavailable is the remover used when no background removal tool exists.
type Unavailable struct {
	// Reason is reported by LastError and returned from Remove.
	Reason error
}

func (u *Unavailable) Ready() bool { return false }

func (u *Unavailable) LastError() error {
	if u.Reason == nil {
		return ErrUnavailable
	}
	return u.Reason
}

func (u *Unavailable) Remove(_ context.Context, img *imaging.Image) (*imaging.Image, error) {
	return img, u.LastError()
}
