package pipeline

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/backmassage/webpress/internal/config"
	"github.com/backmassage/webpress/internal/display"
	"github.com/backmassage/webpress/internal/imaging"
	"github.com/backmassage/webpress/internal/logging"
	"github.com/backmassage/webpress/internal/naming"
)

// Result describes one successful conversion. It is produced once per input
// and never mutated afterwards.
type Result struct {
	OutputPath     string
	Elapsed        time.Duration
	OriginalSize   int64
	CompressedSize int64
}

// Ratio returns the percentage reduction in byte size from original to
// compressed output.
func (r *Result) Ratio() float64 {
	if r.OriginalSize == 0 {
		return 0
	}
	return (1 - float64(r.CompressedSize)/float64(r.OriginalSize)) * 100
}

// Converter runs the per-file conversion pipeline. Reports go to out;
// diagnostics go through the logger.
type Converter struct {
	cfg *config.Config
	log *logging.Logger
	out io.Writer
}

// NewConverter returns a Converter writing report blocks to out.
func NewConverter(cfg *config.Config, log *logging.Logger, out io.Writer) *Converter {
	return &Converter{cfg: cfg, log: log, out: out}
}

// Convert handles one file: resolve output path → decode → normalize color →
// encode WebP → measure → report. explicitOutput overrides path resolution
// and is only set on the single-file path. Errors are returned to the caller,
// which decides whether they are fatal.
func (c *Converter) Convert(inputPath, explicitOutput string) (*Result, error) {
	outputPath := naming.ResolveOutputPath(inputPath, explicitOutput, c.cfg.OutputFolder)
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return nil, &imaging.Error{Kind: imaging.KindIO, Path: outputPath, Err: err}
	}

	if c.cfg.Verbose {
		if format, w, h, err := imaging.Inspect(inputPath); err == nil {
			c.log.Debug(true, "  Source: %s | %dx%d", format, w, h)
		}
	}

	start := time.Now()

	img, _, err := imaging.Decode(inputPath)
	if err != nil {
		return nil, err
	}
	img = imaging.Normalize(img)

	settings := imaging.EncodeSettings{
		Quality:  c.cfg.Quality,
		Lossless: c.cfg.Lossless,
		Method:   c.cfg.Method,
	}
	if err := imaging.EncodeWebP(outputPath, img, settings); err != nil {
		return nil, err
	}

	elapsed := time.Since(start)

	inInfo, err := os.Stat(inputPath)
	if err != nil {
		return nil, &imaging.Error{Kind: imaging.KindIO, Path: inputPath, Err: err}
	}
	outInfo, err := os.Stat(outputPath)
	if err != nil {
		return nil, &imaging.Error{Kind: imaging.KindIO, Path: outputPath, Err: err}
	}

	res := &Result{
		OutputPath:     outputPath,
		Elapsed:        elapsed,
		OriginalSize:   inInfo.Size(),
		CompressedSize: outInfo.Size(),
	}

	display.PrintConversion(c.out,
		filepath.Base(inputPath), filepath.Base(outputPath),
		res.OriginalSize, res.CompressedSize, res.Ratio(), res.Elapsed)

	return res, nil
}
