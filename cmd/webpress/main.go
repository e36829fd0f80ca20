// Command webpress is the CLI entrypoint for the Webpress image converter.
//
// It parses flags, validates configuration, and converts a single image or a
// whole directory tree to WebP.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/backmassage/webpress/internal/config"
	"github.com/backmassage/webpress/internal/display"
	"github.com/backmassage/webpress/internal/logging"
	"github.com/backmassage/webpress/internal/pipeline"
)

// version is injected at build time via -ldflags.
// When built with plain "go build" (no make), it retains its default.
var version = "1.0.0"

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap — the logger doesn't exist yet, so errors go
	// directly to stderr via fmt. Once NewLogger succeeds, all diagnostics
	// go through the logger for consistent formatting and log-file capture.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, version, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "webpress: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "webpress: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "webpress: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available — all diagnostics go through log from here on.
	display.PrintBanner()
	logConfig(log, &cfg)

	fi, err := os.Stat(cfg.InputPath)
	if err != nil {
		log.Error("Input path does not exist: %s", cfg.InputPath)
		return 1
	}

	// Phase 3: Signal handling. SIGINT/SIGTERM cancel the context; both
	// runners stop at the next file boundary and the single cancellation
	// notice is printed here.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	// Phase 4: Dispatch on input type.
	switch {
	case fi.Mode().IsRegular():
		if _, err := pipeline.RunSingle(ctx, &cfg, log, os.Stdout); err != nil {
			if ctx.Err() != nil {
				log.Warn("Operation cancelled by user")
				return 1
			}
			log.Error("%v", err)
			return 1
		}
		if ctx.Err() != nil {
			log.Warn("Operation cancelled by user")
			return 1
		}
		return 0

	case fi.IsDir():
		if cfg.OutputPath != "" {
			log.Warn("Output path is ignored when processing directories")
		}
		stats, err := pipeline.RunBatch(ctx, &cfg, log, os.Stdout)
		if err != nil {
			log.Error("%v", err)
			return 1
		}
		if ctx.Err() != nil {
			log.Warn("Operation cancelled by user")
			return 1
		}
		display.PrintBatchSummary(os.Stdout, stats.Converted, stats.Failed, stats.TotalTime)
		// Per-file failures in batch mode are summary-only; the run itself
		// completed, so the exit code stays zero.
		return 0

	default:
		log.Error("Input is neither a file nor a directory: %s", cfg.InputPath)
		return 1
	}
}

// logConfig prints the resolved configuration when --verbose is set.
func logConfig(log *logging.Logger, cfg *config.Config) {
	v := cfg.Verbose
	log.Debug(v, "Input: %s", cfg.InputPath)
	log.Debug(v, "Quality: %d%%", cfg.Quality)
	log.Debug(v, "Lossless: %t", cfg.Lossless)
	log.Debug(v, "Method: %d", cfg.Method)
	log.Debug(v, "Recursive: %t", cfg.Recursive)
	if cfg.OutputFolder != "" {
		log.Debug(v, "Output folder: %s", cfg.OutputFolder)
	}
}
