// Command picture-sorter ingests a card or folder of photos into a
// dated RAW/JPEG library tree.
//
// It parses flags, validates configuration and paths, and either runs
// system diagnostics (--check) or the ingest pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/tulku/picture-sorter/internal/check"
	"github.com/tulku/picture-sorter/internal/config"
	"github.com/tulku/picture-sorter/internal/cutoff"
	"github.com/tulku/picture-sorter/internal/display"
	"github.com/tulku/picture-sorter/internal/logging"
	"github.com/tulku/picture-sorter/internal/pipeline"
	"github.com/tulku/picture-sorter/internal/probe"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build" these retain their defaults.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Bootstrap: the logger doesn't exist yet, so errors go directly to
	// stderr. Once NewLogger succeeds, all output goes through the logger
	// for consistent formatting and log-file capture.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, version); err != nil {
		fmt.Fprintf(os.Stderr, "picture-sorter: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "picture-sorter: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "picture-sorter: %v\n", err)
		return 1
	}
	defer log.Close()

	display.PrintBanner()

	if cfg.CheckOnly {
		if !check.RunCheck(log) {
			return 1
		}
		return 0
	}

	// Resolve and validate paths: input must exist, output is created if
	// needed, and output must not be inside input (the pipeline would
	// discover its own copies).
	inputAbs, err := absPath(cfg.InputDir)
	if err != nil {
		log.Error("Input not found: %s", cfg.InputDir)
		return 1
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		log.Error("Cannot create output directory: %s", cfg.OutputDir)
		return 1
	}
	outputAbs, err := absPath(cfg.OutputDir)
	if err != nil {
		log.Error("Cannot resolve output path: %s", cfg.OutputDir)
		return 1
	}
	if err := cfg.ValidatePaths(inputAbs, outputAbs); err != nil {
		log.Error("%v", err)
		log.Error("Choose an output path outside: %s", cfg.InputDir)
		return 1
	}

	log.Info("=== picture-sorter v%s (%s) ===", version, commit)
	log.Info("In:  %s", cfg.InputDir)
	log.Info("Out: %s", cfg.OutputDir)
	if cfg.DryRun {
		log.Warn("DRY RUN: no files will be written")
	}
	log.Info("")

	// Fail fast if exiftool is unavailable.
	if err := check.CheckDeps(); err != nil {
		log.Error("%v", err)
		return 1
	}

	// Incremental mode scans the destination tree for the newest existing
	// photo; units at or before that date are skipped.
	var cut time.Time
	if cfg.Incremental {
		found, ok, err := cutoff.Find(cfg.OutputDir)
		if err != nil {
			log.Error("Cannot scan destination for cutoff: %v", err)
			return 1
		}
		if ok {
			cut = found
			log.Info("Incremental cutoff: %s", cut.Format("2006-01-02 15:04:05"))
		} else {
			log.Info("Incremental mode: destination empty, copying everything")
		}
	}

	// Cancel the context on SIGINT/SIGTERM so the pipeline stops between
	// files without leaving partial output.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, finishing current file...")
		cancel()
	}()

	stats := pipeline.Run(ctx, &cfg, log, newResolver, cut)

	if stats.Failed {
		return 1
	}
	return 0
}

func newResolver() (probe.Resolver, error) {
	return probe.NewExiftoolResolver()
}

// absPath returns the absolute, symlink-resolved path for safe comparison
// of input vs output directory hierarchies.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
