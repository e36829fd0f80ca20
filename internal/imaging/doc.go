// Package imaging wraps image decoding, color normalization, and WebP
// encoding behind typed errors. Format support comes from the standard
// library (JPEG, PNG, GIF), golang.org/x/image (BMP, TIFF), and the pure-Go
// WebP codec, all registered with image.Decode.
package imaging
