package backdrop

import (
	"errors"
	"fmt"
)

// Sentinel errors for backdrop.
var (
	// ErrInvalidColor matches a ParseError of kind ParseErrorInvalidFormat.
	ErrInvalidColor = errors.New("backdrop: invalid color")

	// ErrInvalidSize is returned by Seed for non-positive dimensions.
	ErrInvalidSize = errors.New("backdrop: invalid image size")

	// ErrNilImage is returned by Update when no image is given.
	ErrNilImage = errors.New("backdrop: nil image")
)

// ParseErrorKind classifies a ParseError.
type ParseErrorKind int

const (
	// ParseErrorInvalidFormat means the text is not exactly six hex digits
	// after an optional '#'.
	ParseErrorInvalidFormat ParseErrorKind = iota
)

// String returns the string representation of the kind.
func (k ParseErrorKind) String() string {
	if k == ParseErrorInvalidFormat {
		return "InvalidFormat"
	}
	return "Unknown"
}

// ParseError is returned by ParseColor.
type ParseError struct {
	Kind  ParseErrorKind
	Input string
	Err   error // underlying strconv error, if any
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("backdrop: invalid color %q: want 6 hex digits, optionally prefixed with '#'", e.Input)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error { return e.Err }

// Is matches ErrInvalidColor.
func (e *ParseError) Is(target error) bool {
	return e.Kind == ParseErrorInvalidFormat && target == ErrInvalidColor
}
