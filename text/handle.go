package text

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/font"
)

// Handle is an opaque reference to one font available to a FontProvider.
// Exactly one of Path, Data or URL locates the font bytes.
type Handle struct {
	// Name is a display name, used in logs and errors.
	Name string

	// Path is a font file on the local filesystem.
	Path string

	// Data holds the font bytes for in-memory fonts.
	Data []byte

	// URL is a remote font, fetched on Load.
	URL string

	// Index selects a face inside a TTC/OTC collection.
	Index int

	fetch func(url string) ([]byte, error)
}

// String returns a short description of where the font lives.
func (h Handle) String() string {
	var s string
	switch {
	case h.Name != "":
		s = h.Name
	case h.Path != "":
		s = h.Path
	case h.URL != "":
		s = h.URL
	case h.Data != nil:
		s = fmt.Sprintf("<memory %d bytes>", len(h.Data))
	default:
		s = "<empty handle>"
	}
	if h.Index > 0 {
		s = fmt.Sprintf("%s#%d", s, h.Index)
	}
	return s
}

// Load reads the font bytes and parses them into a FontSource.
// WOFF and WOFF2 data is converted to SFNT first.
func (h Handle) Load(opts ...SourceOption) (*FontSource, error) {
	data, err := h.bytes()
	if err != nil {
		return nil, err
	}

	if isWebFont(h.location(), data) {
		sfnt, err := font.ToSFNT(data)
		if err != nil {
			return nil, fmt.Errorf("text: convert web font to sfnt: %w", err)
		}
		data = sfnt
	}

	opts = append([]SourceOption{WithIndex(h.Index)}, opts...)
	return NewFontSource(data, opts...)
}

// bytes returns the raw font data for the handle.
func (h Handle) bytes() ([]byte, error) {
	switch {
	case h.Data != nil:
		if len(h.Data) == 0 {
			return nil, ErrEmptyFontData
		}
		return h.Data, nil
	case h.Path != "":
		// #nosec G304 -- Font paths come from font enumeration or user config
		data, err := os.ReadFile(h.Path)
		if err != nil {
			return nil, fmt.Errorf("text: failed to read font file: %w", err)
		}
		return data, nil
	case h.URL != "":
		if h.fetch == nil {
			return nil, fmt.Errorf("text: no fetcher for %s", h.URL)
		}
		return h.fetch(h.URL)
	default:
		return nil, ErrEmptyFontData
	}
}

// location returns the path or URL used to guess the format.
func (h Handle) location() string {
	if h.Path != "" {
		return h.Path
	}
	return h.URL
}

// fontExtensions lists the file extensions providers accept.
var fontExtensions = map[string]bool{
	".ttf":   true,
	".otf":   true,
	".ttc":   true,
	".otc":   true,
	".woff":  true,
	".woff2": true,
}

// isFontFile reports whether path has a font file extension.
func isFontFile(path string) bool {
	return fontExtensions[strings.ToLower(filepath.Ext(path))]
}

// isWebFont checks whether font data is WOFF or WOFF2 by extension or magic bytes.
func isWebFont(location string, data []byte) bool {
	switch strings.ToLower(filepath.Ext(location)) {
	case ".woff", ".woff2":
		return true
	}
	return bytes.HasPrefix(data, []byte("wOFF")) || bytes.HasPrefix(data, []byte("wOF2"))
}
