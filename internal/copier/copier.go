// Package copier executes a validated copy plan: dry-run printing or
// directory creation plus byte copies. Validation already happened in the
// planner, so execution fails fast on the first I/O error instead of
// collecting problems.
package copier

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tulku/picture-sorter/internal/planner"
)

// Logger is the minimal logging interface the copier needs. Defined here
// so the package stays testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
}

// Result reports what one execution did.
type Result struct {
	Copied int
	Bytes  int64
}

// Execute runs the plan. In dry-run mode each pair is printed and nothing
// is touched. Otherwise parent directories are created on demand and each
// file is copied; the first failure aborts the remaining plan. Canceling
// ctx stops between files.
func Execute(ctx context.Context, entries []planner.Entry, dryRun bool, log Logger) (Result, error) {
	var res Result
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if dryRun {
			log.Info("Would copy %s to %s", e.Source, e.Dest)
			continue
		}
		n, err := copyFile(e.Source, e.Dest)
		if err != nil {
			return res, err
		}
		res.Copied++
		res.Bytes += n
	}
	return res, nil
}

// copyFile copies src to dest, creating dest's parent directories.
// Dest is opened O_EXCL: the planner already checked for conflicts, and
// refusing to clobber here guards against races with other writers.
func copyFile(src, dest string) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return 0, fmt.Errorf("create %s: %w", filepath.Dir(dest), err)
	}

	in, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", dest, err)
	}

	n, err := io.Copy(out, in)
	if err != nil {
		out.Close()
		os.Remove(dest)
		return 0, fmt.Errorf("copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dest)
		return 0, fmt.Errorf("close %s: %w", dest, err)
	}
	return n, nil
}
