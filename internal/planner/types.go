package planner

import (
	"time"

	"github.com/tulku/picture-sorter/internal/sequence"
)

// Destination tree names under the output root.
const (
	RawTree  = "RAW"
	JPEGTree = "JPEG"
)

// Entry is one planned copy: absolute source path to absolute destination
// path, destination including the filename.
type Entry struct {
	Source string
	Dest   string
}

// ValidationError records why a file (or its whole unit) cannot be
// planned. Errors are collected, never returned one at a time.
type ValidationError struct {
	Path   string
	Reason string
}

func (e ValidationError) Error() string {
	return e.Path + " - " + e.Reason
}

// Request carries everything the planner needs for one run.
type Request struct {
	OutputDir string

	// Units maps unit key to the file paths sharing that base name.
	Units map[string][]string

	// Dates holds metadata capture dates by unit key. Units absent here
	// fall back to the representative file's modification time.
	Dates map[string]time.Time

	// Tags holds sequence membership by unit key.
	Tags map[string]sequence.Tag

	// Cutoff enables incremental mode when non-zero: units dated at or
	// before it are silently omitted.
	Cutoff time.Time
}
