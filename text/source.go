package text

import (
	"fmt"
	"os"
	"sync"
)

// FontSource represents a loaded font: its raw data plus the parsed
// metrics table (units per em, character map, outlines, advances).
//
// FontSource is read-only once loaded and safe for concurrent use.
// FontSource must not be copied after creation (enforced by copyCheck).
type FontSource struct {
	// addr is used for copy protection (Ebitengine pattern).
	// It must point to the FontSource itself.
	addr *FontSource

	data   []byte
	parsed ParsedFont

	name string

	mu sync.RWMutex

	config sourceConfig
}

// NewFontSource creates a FontSource from font data (TTF, OTF, TTC or OTC).
// The data slice is copied internally and can be reused after this call.
func NewFontSource(data []byte, opts ...SourceOption) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	config := defaultSourceConfig()
	for _, opt := range opts {
		opt(&config)
	}

	// Parsers keep referencing the bytes they parse, so parse our own copy.
	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	parser := getParser(config.parserName)
	parsed, err := parser.Parse(dataCopy, config.index)
	if err != nil {
		return nil, err
	}

	s := &FontSource{
		data:   dataCopy,
		parsed: newCachedFont(parsed),
		config: config,
	}
	s.addr = s
	s.name = extractFontName(parsed)

	slogger().Debug("font loaded",
		"name", s.name,
		"parser", config.parserName,
		"index", config.index,
		"glyphs", parsed.NumGlyphs(),
		"upem", parsed.UnitsPerEm())

	return s, nil
}

// NewFontSourceFromFile loads a FontSource from a font file path.
func NewFontSourceFromFile(path string, opts ...SourceOption) (*FontSource, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}

	return NewFontSource(data, opts...)
}

// Name returns the font name.
func (s *FontSource) Name() string {
	s.copyCheck()
	return s.name
}

// Parsed returns the parsed font used by Measure and Rasterize.
// Parsed returns nil after Close.
func (s *FontSource) Parsed() ParsedFont {
	s.copyCheck()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.parsed
}

// Size returns the length of the font data in bytes.
func (s *FontSource) Size() int {
	s.copyCheck()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Close releases the font data. Calling Close more than once is harmless.
func (s *FontSource) Close() error {
	s.copyCheck()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = nil
	s.parsed = nil

	return nil
}

// copyCheck panics if FontSource was copied by value.
// This is the Ebitengine pattern for preventing accidental copies.
func (s *FontSource) copyCheck() {
	if s.addr != s {
		panic("text: FontSource must not be copied by value")
	}
}

// extractFontName extracts the font family name from the parsed font.
func extractFontName(parsed ParsedFont) string {
	if name := parsed.Name(); name != "" {
		return name
	}
	if fullName := parsed.FullName(); fullName != "" {
		return fullName
	}
	return "Unknown Font"
}
