package text

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ximageParser implements FontParser using golang.org/x/image/font/opentype.
type ximageParser struct{}

// collectionTags are the leading tags of TrueType/OpenType collections.
var collectionTags = [][]byte{[]byte("ttcf")}

// isCollection reports whether data starts with a collection header.
func isCollection(data []byte) bool {
	for _, tag := range collectionTags {
		if bytes.HasPrefix(data, tag) {
			return true
		}
	}
	return false
}

// Parse implements FontParser.Parse.
func (p *ximageParser) Parse(data []byte, index int) (ParsedFont, error) {
	if !isCollection(data) {
		if index != 0 {
			return nil, fmt.Errorf("text: font index %d out of range for single font", index)
		}
		f, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("text: failed to parse font: %w", err)
		}
		return &ximageParsedFont{font: f}, nil
	}

	c, err := opentype.ParseCollection(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font collection: %w", err)
	}
	if index < 0 || index >= c.NumFonts() {
		return nil, fmt.Errorf("text: font index %d out of range [0,%d)", index, c.NumFonts())
	}
	f, err := c.Font(index)
	if err != nil {
		return nil, fmt.Errorf("text: failed to load font %d from collection: %w", index, err)
	}
	return &ximageParsedFont{font: f}, nil
}

// ximageParsedFont implements ParsedFont using sfnt.Font.
// Each call uses its own sfnt.Buffer, so the font is safe for concurrent use.
type ximageParsedFont struct {
	font *opentype.Font
}

// Name implements ParsedFont.Name.
func (f *ximageParsedFont) Name() string {
	if buf, err := f.font.Name(nil, sfnt.NameIDFamily); err == nil && buf != "" {
		return buf
	}
	return ""
}

// FullName implements ParsedFont.FullName.
func (f *ximageParsedFont) FullName() string {
	if buf, err := f.font.Name(nil, sfnt.NameIDFull); err == nil && buf != "" {
		return buf
	}
	return ""
}

// NumGlyphs implements ParsedFont.NumGlyphs.
func (f *ximageParsedFont) NumGlyphs() int {
	return f.font.NumGlyphs()
}

// UnitsPerEm implements ParsedFont.UnitsPerEm.
func (f *ximageParsedFont) UnitsPerEm() int {
	return int(f.font.UnitsPerEm())
}

// designPPEM returns the ppem at which one pixel equals one design unit.
func (f *ximageParsedFont) designPPEM() fixed.Int26_6 {
	return fixed.I(f.UnitsPerEm())
}

// GlyphIndex implements ParsedFont.GlyphIndex.
// sfnt maps unknown runes to glyph 0 (.notdef), which counts as missing.
func (f *ximageParsedFont) GlyphIndex(r rune) (GlyphID, bool) {
	var buf sfnt.Buffer
	idx, err := f.font.GlyphIndex(&buf, r)
	if err != nil || idx == 0 {
		return 0, false
	}
	return GlyphID(idx), true
}

// GlyphBounds implements ParsedFont.GlyphBounds.
func (f *ximageParsedFont) GlyphBounds(gid GlyphID) (Rect, error) {
	var buf sfnt.Buffer

	bounds, _, err := f.font.GlyphBounds(&buf, sfnt.GlyphIndex(gid), f.designPPEM(), font.HintingNone)
	if err != nil {
		return Rect{}, err
	}

	return Rect{
		MinX: bounds.Min.X.Floor(),
		MinY: bounds.Min.Y.Floor(),
		MaxX: bounds.Max.X.Ceil(),
		MaxY: bounds.Max.Y.Ceil(),
	}, nil
}

// GlyphAdvance implements ParsedFont.GlyphAdvance.
func (f *ximageParsedFont) GlyphAdvance(gid GlyphID) (int, error) {
	var buf sfnt.Buffer

	advance, err := f.font.GlyphAdvance(&buf, sfnt.GlyphIndex(gid), f.designPPEM(), font.HintingNone)
	if err != nil {
		return 0, err
	}

	return advance.Floor(), nil
}

// GlyphOutline implements ParsedFont.GlyphOutline.
func (f *ximageParsedFont) GlyphOutline(gid GlyphID, ppem float64) ([]OutlineSegment, error) {
	var buf sfnt.Buffer

	segments, err := f.font.LoadGlyph(&buf, sfnt.GlyphIndex(gid), floatToFixed(ppem), nil)
	if err != nil {
		if errors.Is(err, sfnt.ErrColoredGlyph) {
			return nil, ErrUnsupportedGlyph
		}
		return nil, err
	}

	out := make([]OutlineSegment, 0, len(segments))
	for _, seg := range segments {
		var s OutlineSegment
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			s.Op = OutlineOpMoveTo
		case sfnt.SegmentOpLineTo:
			s.Op = OutlineOpLineTo
		case sfnt.SegmentOpQuadTo:
			s.Op = OutlineOpQuadTo
		case sfnt.SegmentOpCubeTo:
			s.Op = OutlineOpCubicTo
		}
		for i := 0; i < s.Op.pointCount(); i++ {
			s.Points[i] = fixedPointToOutline(seg.Args[i])
		}
		out = append(out, s)
	}

	return out, nil
}

// fixedPointToOutline converts a fixed.Point26_6 to OutlinePoint.
func fixedPointToOutline(p fixed.Point26_6) OutlinePoint {
	return OutlinePoint{
		X: float32(p.X) / 64.0,
		Y: float32(p.Y) / 64.0,
	}
}

// floatToFixed converts a float64 size to fixed.Int26_6, saturating at
// the representable range.
func floatToFixed(size float64) fixed.Int26_6 {
	v := size * 64
	switch {
	case v >= math.MaxInt32:
		return math.MaxInt32
	case v <= math.MinInt32:
		return math.MinInt32
	case math.IsNaN(v):
		return 0
	}
	return fixed.Int26_6(v)
}
