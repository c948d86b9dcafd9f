package config

// This file implements CLI flag parsing and help text. Flags are grouped
// into behavior, display, and utility. Negated flags (e.g. --no-color) are
// applied after Parse so Config defaults hold unless set.

import (
	"flag"
	"fmt"
	"os"
)

// ParseFlags parses os.Args into cfg. On --help or --version it prints and
// exits. On error it returns non-nil (e.g. unknown flag, missing
// positional args).
func ParseFlags(cfg *Config, version string) error {
	fs := flag.NewFlagSet("picture-sorter", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs, version) }

	var flags extraFlags

	defineBehaviorFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &flags)
	defineUtilityFlags(fs, &flags)

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	applyExtraFlags(cfg, &flags)

	if flags.showHelp {
		printUsage(fs, version)
		os.Exit(0)
	}
	if flags.showVersion {
		fmt.Fprintln(os.Stdout, "picture-sorter v"+version)
		os.Exit(0)
	}

	return parsePositionalArgs(fs, cfg)
}

// extraFlags holds boolean flags that are applied after Parse. These
// either override a default (color modes) or trigger exit (help, version).
type extraFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineBehaviorFlags registers dry-run, incremental, and workers.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Print the plan without copying files")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
	fs.BoolVar(&cfg.Incremental, "incremental", false, "Only copy files newer than the destination's newest photo")
	fs.BoolVar(&cfg.Incremental, "i", false, "Same as --incremental")
	fs.IntVar(&cfg.Workers, "workers", 0, "Metadata resolver workers (0 = auto)")
}

// defineDisplayFlags registers --color, --no-color, verbose, --check, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, x *extraFlags) {
	fs.BoolVar(&x.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&x.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
}

// defineUtilityFlags registers --version and --help (exit after printing).
func defineUtilityFlags(fs *flag.FlagSet, x *extraFlags) {
	fs.BoolVar(&x.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&x.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&x.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&x.showHelp, "h", false, "Same as --help")
}

// applyExtraFlags copies override flag values into cfg.
func applyExtraFlags(cfg *Config, x *extraFlags) {
	if x.noColor {
		cfg.ColorMode = ColorNever
	} else if x.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs sets InputDir and OutputDir from the two positional
// args when not in CheckOnly mode.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if cfg.CheckOnly {
		return nil
	}
	if len(args) != 2 {
		return fmt.Errorf("need exactly input_dir and output_dir")
	}
	cfg.InputDir = NormalizeDirArg(args[0])
	cfg.OutputDir = NormalizeDirArg(args[1])
	return nil
}

// printUsage writes the help text to stderr. Column-aligned for
// readability.
func printUsage(fs *flag.FlagSet, version string) {
	const col1 = 26 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "picture-sorter v" + version + " — date-partitioned photo importer"},
		{"", ""},
		{"  picture-sorter [OPTIONS] <input_dir> <output_dir>", ""},
		{"", ""},
		{"Behavior", ""},
		{"  -d, --dry-run", "Print the plan without copying files"},
		{"  -i, --incremental", "Only copy files newer than the destination's newest photo"},
		{"  --workers <n>", "Metadata resolver workers (default: auto)"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "System diagnostics (exiftool presence and version)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}
