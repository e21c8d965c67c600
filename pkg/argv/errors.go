package argv

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrTruncated indicates a payload extends past the end of the input.
	ErrTruncated = errors.New("argv: truncated token")

	// ErrInvalidLength indicates a number token declares a length outside 1..8.
	ErrInvalidLength = errors.New("argv: invalid number length")

	// ErrUnknownTag indicates a byte that is neither a tag nor the delimiter.
	ErrUnknownTag = errors.New("argv: unknown tag")

	// ErrTooLarge indicates a value that does not fit its encoded field.
	ErrTooLarge = errors.New("argv: value too large")
)

// FormatError describes where and why decoding stopped.
type FormatError struct {
	Offset int   // Offset of the tag byte of the rejected token
	Tag    byte  // The tag byte at Offset
	Err    error // One of the sentinel errors above
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("argv: decode stopped at offset %d (tag 0x%02x): %v", e.Offset, e.Tag, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
