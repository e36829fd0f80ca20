package imaging

import (
	"image"
	"os"

	"github.com/deepteams/webp"
)

// EncodeSettings are the user-facing codec knobs, validated/clamped by the
// config layer before they reach this package.
type EncodeSettings struct {
	Quality  int  // 1-100.
	Lossless bool // VP8L; quality acts as compression effort.
	Method   int  // 0-6 effort/size trade-off.
}

// EncodeWebP encodes img to a new file at path. A partial file left behind
// by a failed encode is removed so failures never produce output.
func EncodeWebP(path string, img image.Image, s EncodeSettings) error {
	opts := webp.DefaultOptions()
	opts.Quality = float32(s.Quality)
	opts.Method = s.Method
	opts.Lossless = s.Lossless

	f, err := os.Create(path)
	if err != nil {
		return &Error{Kind: KindIO, Path: path, Err: err}
	}

	if err := webp.Encode(f, img, opts); err != nil {
		f.Close()
		os.Remove(path)
		return &Error{Kind: KindEncode, Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return &Error{Kind: KindIO, Path: path, Err: err}
	}
	return nil
}
