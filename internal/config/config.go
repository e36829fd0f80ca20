// Package config holds runtime configuration: defaults, CLI flag parsing, and
// validation. Defaults match the documented CLI contract (quality 80, method 4).
package config

import (
	"errors"
	"strings"
)

// Quality and method bounds accepted by the WebP codec.
const (
	MinQuality = 1
	MaxQuality = 100
	MinMethod  = 0
	MaxMethod  = 6
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// then mutated by [ParseFlags] before being passed (by pointer) to packages
// that need it.
type Config struct {
	// Paths.
	InputPath    string // Positional arg: input file or directory.
	OutputPath   string // -o: explicit output file; single-file input only.
	OutputFolder string // --output-folder: redirect outputs, created if missing.

	// Encoder settings.
	Quality  int  // Default: 80. Clamped to [1,100] by Validate.
	Lossless bool // Use lossless encoding; quality becomes advisory.
	Method   int  // Default: 4. Compression effort, clamped to [0,6] by Validate.

	// Behavior flags.
	Recursive bool // Process subdirectories when input is a directory.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
}

// DefaultConfig returns a Config with the documented defaults. Used as the
// base before [ParseFlags] applies CLI overrides.
func DefaultConfig() Config {
	return Config{
		Quality:   80,
		Lossless:  false,
		Method:    4,
		Recursive: false,
		Verbose:   false,
		ColorMode: ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields and the input path, and clamps quality and
// method to their codec ranges. Out-of-range values are brought into range
// rather than rejected, so a Config that passes Validate is always safe to
// hand to the encoder.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	c.Quality = clamp(c.Quality, MinQuality, MaxQuality)
	c.Method = clamp(c.Method, MinMethod, MaxMethod)

	if c.InputPath == "" {
		return errors.New("need an input file or directory")
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
