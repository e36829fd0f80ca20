package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into encoding, output, display, and utility. pflag gives
// the POSIX -q/--quality pairing that the stdlib flag package cannot express.

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// ParseFlags parses args (normally os.Args[1:]) into cfg. On --help or
// --version it prints and exits. On error it returns non-nil (e.g. unknown
// flag, missing positional arg).
func ParseFlags(cfg *Config, version string, args []string) error {
	fs := pflag.NewFlagSet("webpress", pflag.ContinueOnError)
	fs.Usage = func() { printUsage(version) }
	fs.SortFlags = false

	// Help/version are handled after Parse so defaults from DefaultConfig()
	// hold unless the user passes a flag.
	var showHelp, showVersion, forceColor, noColor bool

	defineEncodingFlags(fs, cfg)
	defineOutputFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &forceColor, &noColor)
	fs.BoolVarP(&showVersion, "version", "V", false, "Print version and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if showHelp {
		printUsage(version)
		os.Exit(0)
	}
	if showVersion {
		fmt.Fprintln(os.Stdout, "webpress v"+version)
		os.Exit(0)
	}

	if noColor {
		cfg.ColorMode = ColorNever
	} else if forceColor {
		cfg.ColorMode = ColorAlways
	}

	return parsePositionalArgs(fs, cfg)
}

// defineEncodingFlags registers -q/--quality, --lossless, -m/--method.
func defineEncodingFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.IntVarP(&cfg.Quality, "quality", "q", cfg.Quality, "Lossy quality 1-100")
	fs.BoolVar(&cfg.Lossless, "lossless", false, "Use lossless compression")
	fs.IntVarP(&cfg.Method, "method", "m", cfg.Method, "Compression method 0-6 (higher = smaller but slower)")
}

// defineOutputFlags registers -o/--output, --output-folder, -r/--recursive.
func defineOutputFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVarP(&cfg.OutputPath, "output", "o", "", "Output file path (single file input only)")
	fs.StringVar(&cfg.OutputFolder, "output-folder", "", "Output folder for converted images")
	fs.BoolVarP(&cfg.Recursive, "recursive", "r", false, "Process subdirectories when input is a directory")
}

// defineDisplayFlags registers --color, --no-color, -v/--verbose, -l/--log.
func defineDisplayFlags(fs *pflag.FlagSet, cfg *Config, forceColor, noColor *bool) {
	fs.BoolVar(forceColor, "color", false, "Force colored logs")
	fs.BoolVar(noColor, "no-color", false, "Disable colored logs")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Show the resolved configuration before processing")
	fs.StringVarP(&cfg.LogFile, "log", "l", "", "Append logs to file")
}

// parsePositionalArgs sets InputPath from the single positional arg.
func parsePositionalArgs(fs *pflag.FlagSet, cfg *Config) error {
	rest := fs.Args()
	if len(rest) != 1 {
		return fmt.Errorf("need exactly one input file or directory")
	}
	cfg.InputPath = NormalizeDirArg(rest[0])
	return nil
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(version string) {
	const col1 = 30 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "Webpress v" + version + " — raster image to WebP converter"},
		{"", ""},
		{"  webpress [OPTIONS] <input>", ""},
		{"", ""},
		{"Encoding", ""},
		{"  -q, --quality <1-100>", "Lossy quality (default: 80)"},
		{"  --lossless", "Use lossless compression (quality becomes advisory)"},
		{"  -m, --method <0-6>", "Compression method (default: 4)"},
		{"", ""},
		{"Output", ""},
		{"  -o, --output <path>", "Explicit output file (single file input only)"},
		{"  --output-folder <path>", "Write outputs into folder (created if missing)"},
		{"  -r, --recursive", "Recurse into subdirectories (directory input only)"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Show resolved configuration before processing"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
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
