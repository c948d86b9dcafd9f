// Package config holds runtime configuration: defaults, CLI flag parsing,
// and validation.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// maxAutoWorkers caps automatic resolver parallelism: each worker owns an
// exiftool subprocess, and past a handful the run is disk-bound anyway.
const maxAutoWorkers = 8

// Config holds all runtime settings. It is populated by [DefaultConfig]
// and then mutated by [ParseFlags] before being passed (by pointer) to the
// packages that need it.
type Config struct {
	// Paths (set from positional args).
	InputDir  string
	OutputDir string

	// Behavior flags.
	DryRun      bool // Print the plan instead of copying.
	Incremental bool // Skip units older than the newest destination photo.
	Workers     int  // Metadata resolver workers; 0 = auto.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	CheckOnly bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with all defaults applied. Used as the
// base before [ParseFlags] applies CLI overrides.
func DefaultConfig() Config {
	return Config{
		Workers:   0,
		ColorMode: ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an
// empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum and numeric fields. When not in CheckOnly mode, it
// also requires that both input and output directory paths are non-empty.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0 (got %d)", c.Workers)
	}
	if c.CheckOnly {
		return nil
	}
	if c.InputDir == "" || c.OutputDir == "" {
		return errors.New("need exactly input_dir and output_dir")
	}
	return nil
}

// EffectiveWorkers resolves the metadata worker count: the configured
// value when positive, else GOMAXPROCS capped at maxAutoWorkers.
func (c *Config) EffectiveWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	n := runtime.GOMAXPROCS(0)
	if n > maxAutoWorkers {
		n = maxAutoWorkers
	}
	if n < 1 {
		n = 1
	}
	return n
}

// ValidatePaths ensures the resolved output directory is not inside (or
// equal to) the resolved input directory, which would make the pipeline
// discover its own output. Both arguments must be absolute,
// symlink-resolved paths.
func (c *Config) ValidatePaths(inputAbs, outputAbs string) error {
	sep := string(filepath.Separator)
	if outputAbs == inputAbs || strings.HasPrefix(outputAbs+sep, inputAbs+sep) {
		return errors.New("output directory must not be inside input directory")
	}
	return nil
}
