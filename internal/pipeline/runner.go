package pipeline

import (
	"context"
	"time"

	"github.com/tulku/picture-sorter/internal/config"
	"github.com/tulku/picture-sorter/internal/copier"
	"github.com/tulku/picture-sorter/internal/display"
	"github.com/tulku/picture-sorter/internal/logging"
	"github.com/tulku/picture-sorter/internal/planner"
	"github.com/tulku/picture-sorter/internal/probe"
	"github.com/tulku/picture-sorter/internal/sequence"
)

// Run drives one pass over the input directory: discover files, group
// them into units, resolve metadata, detect sequences, validate the copy
// plan and execute it. A zero cutoff disables incremental filtering.
// Validation problems and copy failures are reported through the logger
// and reflected in the returned stats rather than aborting the process.
func Run(
	ctx context.Context,
	cfg *config.Config,
	log *logging.Logger,
	newResolver ResolverFactory,
	cutoff time.Time,
) RunStats {
	var stats RunStats

	files, err := Discover(cfg.InputDir)
	if err != nil {
		log.Error("Cannot scan input directory: %v", err)
		stats.Failed = true
		return stats
	}
	stats.Files = len(files)
	if len(files) == 0 {
		log.Info("No files found in %s", cfg.InputDir)
		return stats
	}

	units := GroupUnits(files)
	stats.Units = len(units)
	log.Info("Found %s in %s", display.FormatCount(len(files), "file"), display.FormatCount(len(units), "unit"))

	fields := ResolveMetadata(ctx, units, cfg.EffectiveWorkers(), newResolver, log, cfg.Verbose)
	stats.Resolved = len(fields)
	if ctx.Err() != nil {
		stats.Failed = true
		return stats
	}

	dates := make(map[string]time.Time, len(fields))
	seqUnits := make([]sequence.Unit, 0, len(fields))
	now := time.Now().UTC()
	for key, f := range fields {
		taken, ok := probe.CaptureDate(f)
		if ok {
			dates[key] = taken
		} else {
			taken = now
		}
		shot, bracketed := probe.HDRShot(f)
		seqUnits = append(seqUnits, sequence.Unit{
			Key:          key,
			Taken:        taken,
			BurstOrdinal: probe.BurstOrdinal(f),
			HDRShot:      shot,
			Bracketed:    bracketed,
		})
	}

	tags := sequence.Detect(seqUnits)
	stats.HDRSequences, stats.BurstSequences = countSequences(tags)
	if len(tags) > 0 {
		log.Info("Detected %d HDR and %d burst sequences", stats.HDRSequences, stats.BurstSequences)
	}

	plan, verrs := planner.BuildPlan(planner.Request{
		OutputDir: cfg.OutputDir,
		Units:     units,
		Dates:     dates,
		Tags:      tags,
		Cutoff:    cutoff,
	})
	if len(verrs) > 0 {
		log.Error("Validation failed! Found %s:", display.FormatCount(len(verrs), "problematic file"))
		for _, e := range verrs {
			log.Error("  %s", e)
		}
		stats.ValidationErrors = len(verrs)
		stats.Failed = true
		return stats
	}
	stats.Planned = len(plan)
	if len(plan) == 0 {
		log.Info("Nothing to copy")
		return stats
	}
	log.Success("Validation passed, %s to copy", display.FormatCount(len(plan), "file"))

	res, err := copier.Execute(ctx, plan, cfg.DryRun, log)
	stats.Copied = res.Copied
	stats.BytesCopied = res.Bytes
	if err != nil {
		log.Error("Copy failed: %v", err)
		stats.Failed = true
		return stats
	}

	if cfg.DryRun {
		log.Success("Dry run complete, %s would be copied", display.FormatCount(stats.Planned, "file"))
	} else {
		log.Success("Copied %s (%s)", display.FormatCount(stats.Copied, "file"), display.FormatBytes(stats.BytesCopied))
	}
	return stats
}

// countSequences counts distinct sequence folders per kind.
func countSequences(tags map[string]sequence.Tag) (hdr, burst int) {
	folders := make(map[string]sequence.Kind, len(tags))
	for _, t := range tags {
		folders[t.Folder] = t.Kind
	}
	for _, kind := range folders {
		if kind == sequence.KindHDR {
			hdr++
		} else {
			burst++
		}
	}
	return hdr, burst
}
