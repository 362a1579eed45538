package convert

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedType is returned before any disk I/O happens.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrTimeout means the external render/transcode step hit its deadline.
	ErrTimeout = errors.New("conversion timed out")
)

// ConversionError wraps a rendering or transcoding failure.
// Output carries the external process diagnostics when there are any.
type ConversionError struct {
	Stage  string // "transcode" or "render"
	Output string
	Err    error
}

func (e *ConversionError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("%s failed: %v: %s", e.Stage, e.Err, e.Output)
	}
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

func IsConversionError(err error) bool {
	var ce *ConversionError
	return errors.As(err, &ce)
}
