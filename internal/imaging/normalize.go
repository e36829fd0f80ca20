package imaging

import (
	"image"
	"image/draw"
)

// opaquer is implemented by all stdlib concrete image types.
type opaquer interface {
	Opaque() bool
}

// Normalize prepares a decoded image for WebP encoding. Transparency is not
// preserved: any image carrying non-opaque pixels is composited over an
// opaque white background. 8-bit grayscale passes through unchanged, as do
// images already in an opaque RGB-family representation. Everything else
// (paletted, CMYK, 16-bit gray, unknown types) converts to RGB.
func Normalize(img image.Image) image.Image {
	switch img.(type) {
	case *image.Gray:
		return img
	case *image.YCbCr:
		// JPEG output; no alpha channel exists.
		return img
	case *image.RGBA, *image.NRGBA:
		if op, ok := img.(opaquer); ok && op.Opaque() {
			return img
		}
	}
	return flattenToWhite(img)
}

// flattenToWhite redraws img onto a white RGBA canvas. Transparent source
// pixels become pure white; opaque pixels are copied through the usual
// color-model conversion.
func flattenToWhite(img image.Image) image.Image {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}
