package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/backmassage/webpress/internal/config"
	"github.com/backmassage/webpress/internal/display"
	"github.com/backmassage/webpress/internal/imaging"
	"github.com/backmassage/webpress/internal/logging"
	"github.com/backmassage/webpress/internal/naming"
)

// RunSingle converts exactly one file. Any failure here is fatal for the
// invocation: an input that does not validate, or a conversion error, is
// returned to the caller for a non-zero exit. A cancelled context stops the
// conversion before it starts.
func RunSingle(ctx context.Context, cfg *config.Config, log *logging.Logger, out io.Writer) (RunStats, error) {
	stats := RunStats{Total: 1}

	if err := ctx.Err(); err != nil {
		return stats, err
	}

	if !imaging.IsValidImage(cfg.InputPath) {
		stats.Failed = 1
		return stats, fmt.Errorf("invalid or unsupported image file: %s", cfg.InputPath)
	}

	conv := NewConverter(cfg, log, out)
	res, err := conv.Convert(cfg.InputPath, cfg.OutputPath)
	if err != nil {
		stats.Failed = 1
		return stats, fmt.Errorf("converting %s: %w", cfg.InputPath, err)
	}

	stats.Converted = 1
	stats.TotalTime = res.Elapsed
	fmt.Fprintf(out, "Conversion completed successfully in %s!\n", display.FormatSeconds(res.Elapsed))
	return stats, nil
}

// RunBatch converts every discovered image under the input directory,
// sequentially. Per-file failures are logged and counted; the batch
// continues. Only a missing directory or an unreadable tree is an error.
// Context cancellation stops the loop between files.
func RunBatch(ctx context.Context, cfg *config.Config, log *logging.Logger, out io.Writer) (RunStats, error) {
	var stats RunStats

	fi, err := os.Stat(cfg.InputPath)
	if err != nil || !fi.IsDir() {
		return stats, fmt.Errorf("directory does not exist: %s", cfg.InputPath)
	}

	files, err := Discover(cfg.InputPath, cfg.Recursive)
	if err != nil {
		return stats, fmt.Errorf("file discovery failed: %w", err)
	}

	if len(files) == 0 {
		fmt.Fprintln(out, "No supported image files found.")
		return stats, nil
	}

	fmt.Fprintf(out, "Found %d image(s) to convert...\n", len(files))
	fmt.Fprintln(out, strings.Repeat("=", 60))

	return convertAll(ctx, cfg, log, out, files), nil
}

// convertAll runs the sequential conversion loop over files: entries already
// in WebP format are skipped with a notice, per-file failures are logged and
// counted, and a cancelled context stops the loop between files.
func convertAll(ctx context.Context, cfg *config.Config, log *logging.Logger, out io.Writer, files []string) RunStats {
	stats := RunStats{Total: len(files)}

	conv := NewConverter(cfg, log, out)
	for _, path := range files {
		if ctx.Err() != nil {
			break
		}

		if naming.IsWebP(path) {
			fmt.Fprintf(out, "Skipping %s (already WebP)\n", filepath.Base(path))
			stats.Skipped++
			continue
		}

		res, err := conv.Convert(path, "")
		if err != nil {
			log.Error("Error converting %s: %v", path, err)
			stats.Failed++
			continue
		}
		stats.Converted++
		stats.TotalTime += res.Elapsed
	}

	return stats
}
