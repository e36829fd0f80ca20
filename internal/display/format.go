package display

import (
	"fmt"
	"time"
)

// sizeUnits are the decimal-style labels used in conversion reports.
// Scaling is still by 1024 and caps at TB.
var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatSize returns a human-readable size with exactly one fractional digit
// (e.g. "0.0 B", "1.5 KB", "1.0 MB").
func FormatSize(bytes int64) string {
	size := float64(bytes)
	unit := 0
	for size >= 1024 && unit < len(sizeUnits)-1 {
		size /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f %s", size, sizeUnits[unit])
}

// FormatSeconds renders a duration as seconds with two fractional digits
// (e.g. "0.04s"), the form used in reports and summaries.
func FormatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.2fs", d.Seconds())
}
