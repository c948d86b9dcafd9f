// Package check provides system diagnostics (--check mode) and
// pre-pipeline dependency validation for exiftool.
package check

import (
	"errors"
	"os/exec"
	"strings"
)

// ErrExiftoolNotFound is returned by CheckDeps when exiftool is missing
// or not runnable.
var ErrExiftoolNotFound = errors.New("exiftool not found on PATH")

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck runs the interactive --check flow: it reports whether exiftool
// is available and which version. Returns false when the tool is unusable.
func RunCheck(log Logger) bool {
	log.Info("=== System Check ===")

	version, err := ExiftoolVersion()
	if err != nil {
		log.Error("exiftool not found or not runnable")
		log.Info("Install it to use picture-sorter:")
		log.Info("  Ubuntu/Debian: sudo apt install libimage-exiftool-perl")
		log.Info("  macOS:         brew install exiftool")
		log.Info("  Other:         https://exiftool.org/install.html")
		return false
	}
	log.Success("exiftool: version %s", version)
	return true
}

// CheckDeps is the pre-pipeline validation: exiftool must be on PATH and
// answer -ver. Metadata extraction cannot work without it, so this is
// checked once before any file is touched.
func CheckDeps() error {
	if _, err := ExiftoolVersion(); err != nil {
		return ErrExiftoolNotFound
	}
	return nil
}

// ExiftoolVersion runs `exiftool -ver` and returns the trimmed version
// string.
func ExiftoolVersion() (string, error) {
	if _, err := exec.LookPath("exiftool"); err != nil {
		return "", err
	}
	out, err := exec.Command("exiftool", "-ver").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
