package ir

import "fmt"

// InputError reports a source image that is missing, unreadable or fails
// to decode.
type InputError struct {
	Path string // empty when decoding from memory
	Err  error
}

func (e *InputError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("input: %v", e.Err)
	}
	return fmt.Sprintf("input %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// ConfigurationError reports a scale factor that is invalid on its own or
// yields an empty alpha plane for the given source geometry.
type ConfigurationError struct {
	Scale  float64
	Width  int // source width
	Height int // source height
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: scale %g on %dx%d source: %s", e.Scale, e.Width, e.Height, e.Reason)
}

// EncodingError reports a codec failure while serializing one plane.
type EncodingError struct {
	Plane  Plane
	Format string
	Err    error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding %s plane as %s: %v", e.Plane, e.Format, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// IOError reports a failure writing an output file.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
