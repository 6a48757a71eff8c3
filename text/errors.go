package text

import (
	"errors"
	"fmt"
)

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrNoFontsAvailable matches a FontError of kind FontErrorNoFontsAvailable.
	ErrNoFontsAvailable = errors.New("text: no fonts available")

	// ErrFontLoadFailed matches a FontError of kind FontErrorLoadFailed.
	ErrFontLoadFailed = errors.New("text: font load failed")

	// ErrMissingGlyph matches a LayoutError of kind LayoutErrorMissingGlyph.
	ErrMissingGlyph = errors.New("text: missing glyph")

	// ErrMetricsUnavailable matches a LayoutError of kind LayoutErrorMetricsUnavailable.
	ErrMetricsUnavailable = errors.New("text: glyph metrics unavailable")

	// ErrGlyphRasterization matches a RasterError of kind RasterErrorGlyphRasterizationFailed.
	ErrGlyphRasterization = errors.New("text: glyph rasterization failed")

	// ErrUnsupportedGlyph is returned by a parser when a glyph has no vector outline
	// (bitmap or color glyphs).
	ErrUnsupportedGlyph = errors.New("text: glyph has no vector outline")

	// ErrInvalidRasterSize is returned by Rasterize for a non-positive size
	// or a canvas too large to allocate.
	ErrInvalidRasterSize = errors.New("text: invalid raster size")
)

// FontErrorKind classifies a FontError.
type FontErrorKind int

const (
	// FontErrorNoFontsAvailable means the provider enumerated no fonts.
	FontErrorNoFontsAvailable FontErrorKind = iota
	// FontErrorLoadFailed means the selected handle could not be loaded.
	FontErrorLoadFailed
)

// String returns the string representation of the kind.
func (k FontErrorKind) String() string {
	switch k {
	case FontErrorNoFontsAvailable:
		return "NoFontsAvailable"
	case FontErrorLoadFailed:
		return "LoadFailed"
	default:
		return unknownStr
	}
}

// FontError is returned by font selection.
type FontError struct {
	Kind   FontErrorKind
	Handle Handle // zero for FontErrorNoFontsAvailable
	Err    error  // cause, nil for FontErrorNoFontsAvailable
}

func (e *FontError) Error() string {
	switch e.Kind {
	case FontErrorNoFontsAvailable:
		if e.Err != nil {
			return fmt.Sprintf("text: no fonts available: %v", e.Err)
		}
		return "text: no fonts available"
	case FontErrorLoadFailed:
		return fmt.Sprintf("text: failed to load font %s: %v", e.Handle, e.Err)
	default:
		return "text: font error"
	}
}

// Unwrap returns the underlying cause.
func (e *FontError) Unwrap() error { return e.Err }

// Is matches the kind sentinels.
func (e *FontError) Is(target error) bool {
	switch e.Kind {
	case FontErrorNoFontsAvailable:
		return target == ErrNoFontsAvailable
	case FontErrorLoadFailed:
		return target == ErrFontLoadFailed
	}
	return false
}

// LayoutErrorKind classifies a LayoutError.
type LayoutErrorKind int

const (
	// LayoutErrorMissingGlyph means the font has no glyph for Rune.
	LayoutErrorMissingGlyph LayoutErrorKind = iota
	// LayoutErrorMetricsUnavailable means bounds or advance could not be read.
	LayoutErrorMetricsUnavailable
)

// String returns the string representation of the kind.
func (k LayoutErrorKind) String() string {
	switch k {
	case LayoutErrorMissingGlyph:
		return "MissingGlyph"
	case LayoutErrorMetricsUnavailable:
		return "MetricsUnavailable"
	default:
		return unknownStr
	}
}

// LayoutError is returned when a rune cannot be laid out with a font.
// Measure and Rasterize report the same LayoutError for the same input.
type LayoutError struct {
	Kind LayoutErrorKind
	Rune rune
	GID  GlyphID
	Err  error
}

func (e *LayoutError) Error() string {
	switch e.Kind {
	case LayoutErrorMissingGlyph:
		return fmt.Sprintf("text: did not find glyph for %q", e.Rune)
	case LayoutErrorMetricsUnavailable:
		return fmt.Sprintf("text: metrics unavailable for %q (glyph %d): %v", e.Rune, e.GID, e.Err)
	default:
		return "text: layout error"
	}
}

// Unwrap returns the underlying cause.
func (e *LayoutError) Unwrap() error { return e.Err }

// Is matches the kind sentinels.
func (e *LayoutError) Is(target error) bool {
	switch e.Kind {
	case LayoutErrorMissingGlyph:
		return target == ErrMissingGlyph
	case LayoutErrorMetricsUnavailable:
		return target == ErrMetricsUnavailable
	}
	return false
}

// RasterErrorKind classifies a RasterError.
type RasterErrorKind int

const (
	// RasterErrorGlyphRasterizationFailed means a glyph outline could not be filled.
	RasterErrorGlyphRasterizationFailed RasterErrorKind = iota
)

// String returns the string representation of the kind.
func (k RasterErrorKind) String() string {
	if k == RasterErrorGlyphRasterizationFailed {
		return "GlyphRasterizationFailed"
	}
	return unknownStr
}

// RasterError is returned when the rasterizer backend fails for a glyph.
type RasterError struct {
	Kind RasterErrorKind
	Rune rune
	GID  GlyphID
	Err  error
}

func (e *RasterError) Error() string {
	return fmt.Sprintf("text: failed to rasterize %q (glyph %d): %v", e.Rune, e.GID, e.Err)
}

// Unwrap returns the underlying cause.
func (e *RasterError) Unwrap() error { return e.Err }

// Is matches the kind sentinels.
func (e *RasterError) Is(target error) bool {
	return e.Kind == RasterErrorGlyphRasterizationFailed && target == ErrGlyphRasterization
}
