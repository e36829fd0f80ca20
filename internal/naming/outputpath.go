// Package naming resolves output paths for converted images.
package naming

import (
	"path/filepath"
	"strings"
)

// Stem returns the base name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// IsWebP reports whether path already carries a .webp extension
// (case-insensitive).
func IsWebP(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".webp")
}

// ResolveOutputPath builds the output file path for one conversion.
// Precedence: explicit path > <outputFolder>/<stem>.webp > sibling
// <stem>.webp next to the input. Directory creation is the caller's job.
func ResolveOutputPath(inputPath, explicit, outputFolder string) string {
	if explicit != "" {
		return explicit
	}
	if outputFolder != "" {
		return filepath.Join(outputFolder, Stem(inputPath)+".webp")
	}
	return filepath.Join(filepath.Dir(inputPath), Stem(inputPath)+".webp")
}
