package text

import (
	"golang.org/x/text/unicode/norm"
)

// GlyphBounds holds the metrics of one laid out glyph, in design units.
type GlyphBounds struct {
	// Rune is the character the glyph was resolved from.
	Rune rune

	// GID is the glyph in the font.
	GID GlyphID

	// Bounds is the glyph ink box relative to its own origin.
	Bounds Rect

	// Advance is the truncated advance width.
	Advance int

	// Offset is the cursor position at which the glyph is placed.
	Offset int
}

// TextBoundingBox is the union of the ink boxes of all glyphs of a string,
// in design units with the baseline at Y == 0.
//
// The box starts as the zero rectangle at the origin, so it always
// contains the pen start point. Empty text yields a zero-area box.
type TextBoundingBox struct {
	Rect

	// Cursor is the pen position after the last glyph, the sum of all advances.
	Cursor int

	// Glyphs lists the per-glyph metrics in text order.
	Glyphs []GlyphBounds
}

// Scaled returns the box size in pixels at size pixels per em.
func (b TextBoundingBox) Scaled(size float64, unitsPerEm int) (w, h float64) {
	if unitsPerEm <= 0 {
		return 0, 0
	}
	scale := size / float64(unitsPerEm)
	return float64(b.Width()) * scale, float64(b.Height()) * scale
}

// Measure computes the tight bounding box of text under font.
//
// Text is NFC-normalized and walked rune by rune, left to right, without
// bidi or script reordering. A rune the font has no glyph for stops the
// walk with a LayoutError of kind LayoutErrorMissingGlyph; there is no
// fallback. Measure is deterministic for a given (text, font) pair.
func Measure(text string, font ParsedFont) (TextBoundingBox, error) {
	var box TextBoundingBox

	err := walkGlyphs(text, font, func(g GlyphBounds) error {
		box.Rect = box.Union(g.Bounds.Translate(g.Offset))
		box.Cursor = g.Offset + g.Advance
		box.Glyphs = append(box.Glyphs, g)
		return nil
	})
	if err != nil {
		return TextBoundingBox{}, err
	}

	slogger().Debug("text measured",
		"runes", len(box.Glyphs),
		"width", box.Width(),
		"height", box.Height())

	return box, nil
}

// walkGlyphs resolves every rune of text and calls fn with its metrics and
// cursor offset. Measure and Rasterize share it so both passes agree on
// which runes are renderable and where each glyph goes.
func walkGlyphs(text string, font ParsedFont, fn func(GlyphBounds) error) error {
	cursor := 0
	for _, r := range norm.NFC.String(text) {
		g, err := resolveGlyph(font, r)
		if err != nil {
			return err
		}
		g.Offset = cursor
		if err := fn(g); err != nil {
			return err
		}
		cursor += g.Advance
	}
	return nil
}

// resolveGlyph maps r to a glyph and fetches its bounds and advance.
func resolveGlyph(font ParsedFont, r rune) (GlyphBounds, error) {
	gid, ok := font.GlyphIndex(r)
	if !ok {
		return GlyphBounds{}, &LayoutError{Kind: LayoutErrorMissingGlyph, Rune: r}
	}

	bounds, err := font.GlyphBounds(gid)
	if err != nil {
		return GlyphBounds{}, &LayoutError{Kind: LayoutErrorMetricsUnavailable, Rune: r, GID: gid, Err: err}
	}

	advance, err := font.GlyphAdvance(gid)
	if err != nil {
		return GlyphBounds{}, &LayoutError{Kind: LayoutErrorMetricsUnavailable, Rune: r, GID: gid, Err: err}
	}

	return GlyphBounds{
		Rune:    r,
		GID:     gid,
		Bounds:  bounds,
		Advance: advance,
	}, nil
}
