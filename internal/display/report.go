package display

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// PrintConversion writes the per-file conversion report block. The layout is
// part of the CLI contract; see PrintBatchSummary for the run-level report.
func PrintConversion(w io.Writer, inputName, outputName string, originalSize, compressedSize int64, ratio float64, elapsed time.Duration) {
	fmt.Fprintf(w, "Converted: %s\n", inputName)
	fmt.Fprintf(w, "  Output: %s\n", outputName)
	fmt.Fprintf(w, "  Original: %s\n", FormatSize(originalSize))
	fmt.Fprintf(w, "  Compressed: %s\n", FormatSize(compressedSize))
	fmt.Fprintf(w, "  Compression: %.1f%%\n", ratio)
	fmt.Fprintf(w, "  Time taken: %s\n", FormatSeconds(elapsed))
	fmt.Fprintln(w)
}

// PrintBatchSummary writes the end-of-run summary. The average line appears
// only when at least one file converted; the failed line only on failures.
func PrintBatchSummary(w io.Writer, converted, failed int, total time.Duration) {
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "Summary: %d images converted successfully\n", converted)
	fmt.Fprintf(w, "Total time: %s\n", FormatSeconds(total))
	if converted > 0 {
		fmt.Fprintf(w, "Average time per image: %s\n", FormatSeconds(total/time.Duration(converted)))
	}
	if failed > 0 {
		fmt.Fprintf(w, "Failed conversions: %d\n", failed)
	}
}
