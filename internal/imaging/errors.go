package imaging

import "fmt"

// ErrorKind classifies a conversion failure.
type ErrorKind string

const (
	KindIO     ErrorKind = "io"     // Open/create/stat failures.
	KindDecode ErrorKind = "decode" // Corrupt, truncated, or unsupported input.
	KindEncode ErrorKind = "encode" // Codec rejected the image or write failed.
)

// Error is a conversion failure with its kind and the path it occurred on.
type Error struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
