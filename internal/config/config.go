// Package config resolves runtime settings from the environment.
//
// Values come from, in order of precedence:
//  1. the process environment
//  2. a .env file in the working directory, or next to the executable
//  3. built-in defaults
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ironsheep/quicksnap/internal/prefs"
	"github.com/ironsheep/quicksnap/internal/rembg"
)

// Environment variables read by Load.
const (
	// SettingsEnvVar overrides the preferences file path.
	SettingsEnvVar = "QUICKSNAP_SETTINGS"
	// LogLevelEnvVar sets the slog level: debug, info, warn or error.
	LogLevelEnvVar = "QUICKSNAP_LOG_LEVEL"
	// RembgEnvVar names the background removal executable.
	RembgEnvVar = "QUICKSNAP_REMBG"
	// RembgTimeoutEnvVar bounds one background removal run, as a Go duration.
	RembgTimeoutEnvVar = "QUICKSNAP_REMBG_TIMEOUT"
)

// Config holds the resolved settings.
type Config struct {
	SettingsPath string
	LogLevel     slog.Level
	RembgCommand string
	RembgTimeout time.Duration

	// EnvFile is the .env file that was read, or "" when none was found.
	EnvFile string
}

// LoadOptions adjusts where LoadWithOptions looks for settings.
type LoadOptions struct {
	// EnvFile overrides .env discovery. Empty means search the usual places.
	EnvFile string

	// Getenv overrides os.Getenv, for tests.
	Getenv func(string) string
}

// Load resolves the configuration from the process environment and the
// discovered .env file.
func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{})
}

// LoadWithOptions resolves the configuration. Malformed values are reported as errors
// together with a usable Config that falls back to the default for that key.
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	envPath := opts.EnvFile
	if envPath == "" {
		envPath = resolveEnvPath()
	}
	dotenv, ok := readDotenvValues(envPath)
	if !ok {
		envPath = ""
	}

	lookup := func(key string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return strings.TrimSpace(dotenv[key])
	}

	cfg := &Config{
		SettingsPath: prefs.DefaultPath(),
		LogLevel:     slog.LevelInfo,
		RembgCommand: rembg.DefaultCommand,
		EnvFile:      envPath,
	}
	if v := lookup(SettingsEnvVar); v != "" {
		cfg.SettingsPath = v
	}
	if v := lookup(RembgEnvVar); v != "" {
		cfg.RembgCommand = v
	}

	var errs []string
	if v := lookup(LogLevelEnvVar); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			cfg.LogLevel = slog.LevelInfo
			errs = append(errs, fmt.Sprintf("%s=%q: %v", LogLevelEnvVar, v, err))
		}
	}
	if v := lookup(RembgTimeoutEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			errs = append(errs, fmt.Sprintf("%s=%q: want a non-negative duration such as 90s", RembgTimeoutEnvVar, v))
		} else {
			cfg.RembgTimeout = d
		}
	}

	if len(errs) > 0 {
		return cfg, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

func resolveEnvPath() string {
	if _, err := os.Stat(".env"); err == nil {
		return ".env"
	}

	execPath, err := os.Executable()
	if err != nil {
		return ""
	}
	exeEnv := filepath.Join(filepath.Dir(execPath), ".env")
	if _, err := os.Stat(exeEnv); err == nil {
		return exeEnv
	}
	return ""
}

func readDotenvValues(envPath string) (map[string]string, bool) {
	if envPath == "" {
		return map[string]string{}, false
	}

	values, err := godotenv.Read(envPath)
	if err != nil {
		return map[string]string{}, false
	}
	return values, true
}
