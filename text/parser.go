package text

import "sync"

// FontParser is an interface for font parsing backends.
// This abstraction allows swapping the font parsing library
// (golang.org/x/image/font/sfnt or github.com/go-text/typesetting).
//
// The default implementation uses golang.org/x/image/font/opentype.
type FontParser interface {
	// Parse parses font data (TTF, OTF or a TTC/OTC collection) and returns
	// the index'th font. For single-font files index must be 0.
	Parse(data []byte, index int) (ParsedFont, error)
}

// ParsedFont represents a parsed font file.
// Metrics are reported in font design units with the Y axis growing down,
// so that they compose directly with image coordinates.
//
// Implementations must be safe for concurrent use.
type ParsedFont interface {
	// Name returns the font family name, or "" if not available.
	Name() string

	// FullName returns the full font name, or "" if not available.
	FullName() string

	// NumGlyphs returns the number of glyphs in the font.
	NumGlyphs() int

	// UnitsPerEm returns the units per em for the font.
	UnitsPerEm() int

	// GlyphIndex resolves a rune through the font's character map.
	// ok is false when the font has no glyph for r.
	GlyphIndex(r rune) (gid GlyphID, ok bool)

	// GlyphBounds returns the ink bounds of a glyph in design units.
	GlyphBounds(gid GlyphID) (Rect, error)

	// GlyphAdvance returns the advance width of a glyph in design units,
	// truncated to an integer.
	GlyphAdvance(gid GlyphID) (int, error)

	// GlyphOutline returns the glyph outline scaled to ppem pixels per em,
	// relative to the glyph origin on the baseline, Y growing down.
	// Glyphs without ink (space) return an empty outline and no error.
	GlyphOutline(gid GlyphID, ppem float64) ([]OutlineSegment, error)
}

// Parser names accepted by WithParser.
const (
	ParserXImage = "ximage"
	ParserGoText = "gotext"
)

// parserRegistry holds registered font parsers.
var (
	parserMu       sync.RWMutex
	parserRegistry = map[string]FontParser{
		ParserXImage: &ximageParser{},
		ParserGoText: &gotextParser{},
	}
)

// defaultParserName is the name of the default parser.
const defaultParserName = ParserXImage

// RegisterParser registers a custom font parser.
// This allows users to provide their own parsing implementation.
func RegisterParser(name string, parser FontParser) {
	parserMu.Lock()
	defer parserMu.Unlock()
	parserRegistry[name] = parser
}

// HasParser reports whether a parser is registered under name.
func HasParser(name string) bool {
	parserMu.RLock()
	defer parserMu.RUnlock()
	_, ok := parserRegistry[name]
	return ok
}

// getParser returns the parser by name, or the default if not found.
func getParser(name string) FontParser {
	parserMu.RLock()
	defer parserMu.RUnlock()
	if p, ok := parserRegistry[name]; ok {
		return p
	}
	return parserRegistry[defaultParserName]
}
