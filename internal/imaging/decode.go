package imaging

import (
	"image"
	"os"

	// Register every supported input format with image.Decode. The WebP
	// decoder registers itself from encode.go's webp import.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Decode reads and fully decodes the image at path. The returned string is
// the detected format name ("jpeg", "png", ...).
func Decode(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", &Error{Kind: KindIO, Path: path, Err: err}
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", &Error{Kind: KindDecode, Path: path, Err: err}
	}
	return img, format, nil
}

// IsValidImage reports whether path decodes as a supported image. Decode
// failures of any kind (corrupt data, unsupported format, truncated file)
// yield false rather than an error.
func IsValidImage(path string) bool {
	_, _, err := Decode(path)
	return err == nil
}

// Inspect returns the format name and pixel dimensions of the image at path
// without decoding the pixel data.
func Inspect(path string) (format string, width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, 0, &Error{Kind: KindIO, Path: path, Err: err}
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return "", 0, 0, &Error{Kind: KindDecode, Path: path, Err: err}
	}
	return format, cfg.Width, cfg.Height, nil
}
