package display

import (
	"fmt"
	"os"
	"strings"

	"github.com/backmassage/webpress/internal/logging"
)

// PrintBanner prints the startup header; uses Magenta if colors are enabled.
func PrintBanner() {
	if logging.Magenta != "" {
		fmt.Fprint(os.Stdout, logging.Magenta)
	}
	fmt.Fprintln(os.Stdout, "Webpress — WebP Image Converter")
	if logging.Magenta != "" {
		fmt.Fprint(os.Stdout, logging.NC)
	}
	fmt.Fprintln(os.Stdout, strings.Repeat("=", 50))
}
