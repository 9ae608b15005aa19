// Package prefs persists the small set of user preferences that survive restarts.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDir    = "quicksnap"
	prefsFile = "settings.json"
)

// SaveFormats lists the accepted values of DefaultSaveFormat.
var SaveFormats = []string{"png", "jpg", "jpeg", "bmp", "gif"}

// Preferences is the persisted settings record.
type Preferences struct {
	// LastDirectory is where the open and save dialogs start.
	LastDirectory string `json:"last_directory"`

	// DefaultSaveFormat is the extension appended to save paths that have none.
	DefaultSaveFormat string `json:"default_save_format"`

	// WindowSize is the initial window size in pixels, [width, height].
	WindowSize [2]int `json:"window_size"`
}

// Default returns the preferences used when no settings file exists.
func Default() Preferences {
	return Preferences{
		LastDirectory:     "",
		DefaultSaveFormat: "png",
		WindowSize:        [2]int{800, 600},
	}
}

// DefaultPath returns <UserConfigDir>/quicksnap/settings.json.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, appDir, prefsFile)
}

// Load reads preferences from path.
//
// A missing file yields Default() and a nil error. A corrupt file yields Default()
// and the parse error, so the caller can log it and carry on. Keys absent from the
// file keep their defaults and invalid values are repaired by Validate.
func Load(path string) (Preferences, error) {
	p := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return p, nil
		}
		return p, fmt.Errorf("failed to read preferences: %w", err)
	}

	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("failed to parse preferences %s: %w", path, err)
	}
	p.Validate()
	return p, nil
}

// Validate replaces out-of-range values with their defaults.
func (p *Preferences) Validate() {
	d := Default()
	if !validFormat(p.DefaultSaveFormat) {
		p.DefaultSaveFormat = d.DefaultSaveFormat
	}
	if p.WindowSize[0] <= 0 || p.WindowSize[1] <= 0 {
		p.WindowSize = d.WindowSize
	}
}

func validFormat(f string) bool {
	for _, s := range SaveFormats {
		if f == s {
			return true
		}
	}
	return false
}

// Save writes the preferences to path as indented JSON, creating the directory.
// The file is replaced atomically.
func (p Preferences) Save(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".settings-*.json")
	if err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}
