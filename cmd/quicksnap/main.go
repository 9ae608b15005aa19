package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"fyne.io/fyne/v2/app"

	"github.com/ironsheep/quicksnap/internal/config"
	"github.com/ironsheep/quicksnap/internal/imageio"
	"github.com/ironsheep/quicksnap/internal/prefs"
	"github.com/ironsheep/quicksnap/internal/rembg"
	"github.com/ironsheep/quicksnap/internal/script"
	"github.com/ironsheep/quicksnap/internal/session"
	"github.com/ironsheep/quicksnap/internal/ui"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const appID = "com.ironsheep.quicksnap"

// shutdownTimeout bounds the wait for the session after the window is gone.
const shutdownTimeout = 5 * time.Second

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("quicksnap %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage()
			return
		}
	}

	fs := flag.NewFlagSet("quicksnap", flag.ExitOnError)
	fs.Usage = printUsage
	scriptPath := fs.String("script", "", "run JSON-line events from `file` (- for stdin) without a window")
	_ = fs.Parse(os.Args[1:])

	cfg, cfgErr := config.Load()
	logger := newLogger(os.Stderr, cfg.LogLevel)
	if cfgErr != nil {
		logger.Warn("using defaults for invalid settings", "error", cfgErr)
	}
	if cfg.EnvFile != "" {
		logger.Debug("loaded environment file", "path", cfg.EnvFile)
	}
	logger.Debug("starting", "version", Version, "built", BuildTime, "commit", GitCommit)

	p, err := prefs.Load(cfg.SettingsPath)
	if err != nil {
		logger.Warn("preferences unreadable, using defaults", "path", cfg.SettingsPath, "error", err)
	}

	opts := session.Options{
		Clipboard: imageio.NewClipboard(logger),
		Remover:   rembg.New(cfg.RembgCommand, cfg.RembgTimeout, logger),
		Prefs:     p,
		PrefsPath: cfg.SettingsPath,
		Logger:    logger,
	}

	if *scriptPath != "" {
		if err := runScript(*scriptPath, opts); err != nil {
			logger.Error("script failed", "error", err)
			os.Exit(1)
		}
		return
	}

	runWindow(fs.Arg(0), p, opts)
}

func printUsage() {
	fmt.Println("quicksnap - quick screenshot touch-ups")
	fmt.Println()
	fmt.Println("Usage: quicksnap [options] [IMAGE]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --script FILE    Run JSON-line events from FILE (- for stdin) without a window")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables (also read from .env):")
	fmt.Printf("  %s=PATH        Preferences file\n", config.SettingsEnvVar)
	fmt.Printf("  %s=debug      Log level (debug, info, warn, error)\n", config.LogLevelEnvVar)
	fmt.Printf("  %s=CMD            Background removal command (default %s)\n", config.RembgEnvVar, rembg.DefaultCommand)
	fmt.Printf("  %s=90s    Background removal timeout\n", config.RembgTimeoutEnvVar)
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func runScript(path string, opts session.Options) error {
	in := os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open script: %w", err)
		}
		defer f.Close()
		in = f
	}

	view := script.NewView(os.Stdout)
	opts.View = view
	ctrl := session.NewController(opts)
	return script.New(ctrl, view, opts.Logger).Run(context.Background(), in)
}

func runWindow(initial string, p prefs.Preferences, opts session.Options) {
	a := app.NewWithID(appID)

	var loop *session.Loop
	win := ui.NewWindow(a, "QuickSnap", p.WindowSize, func(ev session.Event) { loop.Post(ev) }, opts.Logger)

	opts.View = win
	ctrl := session.NewController(opts)
	loop = session.NewLoop(ctrl, opts.Logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			opts.Logger.Error("session loop stopped", "error", err)
		}
	}()

	if initial != "" {
		loop.Post(session.DropFile{Path: initial})
	}

	win.ShowAndRun()
	win.Detach()

	// The app can exit without going through the window's close intercept.
	loop.Post(session.Quit{})
	select {
	case <-loop.Done():
	case <-time.After(shutdownTimeout):
		opts.Logger.Warn("session did not stop in time")
		cancel()
	}
}
