package text

import (
	"bytes"
	"fmt"
	"math"
	"sync"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/font/opentype/tables"
)

// gotextParser implements FontParser using github.com/go-text/typesetting.
// Unlike the ximage backend it reads CFF2 and variable fonts, and it
// handles collections through the same loader.
type gotextParser struct{}

// Parse implements FontParser.Parse.
func (p *gotextParser) Parse(data []byte, index int) (ParsedFont, error) {
	loaders, err := ot.NewLoaders(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	if index < 0 || index >= len(loaders) {
		return nil, fmt.Errorf("text: font index %d out of range [0,%d)", index, len(loaders))
	}
	ld := loaders[index]

	raw, err := ld.RawTable(ot.MustNewTag("maxp"))
	if err != nil {
		return nil, fmt.Errorf("text: failed to read maxp table: %w", err)
	}
	maxp, _, err := tables.ParseMaxp(raw)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse maxp table: %w", err)
	}

	ft, err := font.NewFont(ld)
	if err != nil {
		return nil, fmt.Errorf("text: failed to load font: %w", err)
	}

	return &gotextParsedFont{
		face:      font.NewFace(ft),
		numGlyphs: int(maxp.NumGlyphs),
	}, nil
}

// gotextParsedFont implements ParsedFont using a go-text font.Face.
// font.Face keeps internal caches and is NOT safe for concurrent use,
// so every access goes through mu.
type gotextParsedFont struct {
	mu        sync.Mutex
	face      *font.Face
	numGlyphs int
}

// Name implements ParsedFont.Name.
func (f *gotextParsedFont) Name() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.face.Describe().Family
}

// FullName implements ParsedFont.FullName.
// go-text exposes only the family through its description.
func (f *gotextParsedFont) FullName() string {
	return ""
}

// NumGlyphs implements ParsedFont.NumGlyphs.
func (f *gotextParsedFont) NumGlyphs() int {
	return f.numGlyphs
}

// UnitsPerEm implements ParsedFont.UnitsPerEm.
func (f *gotextParsedFont) UnitsPerEm() int {
	return int(f.face.Upem())
}

// GlyphIndex implements ParsedFont.GlyphIndex.
func (f *gotextParsedFont) GlyphIndex(r rune) (GlyphID, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	gid, ok := f.face.NominalGlyph(r)
	if !ok || gid == 0 || gid > math.MaxUint16 {
		return 0, false
	}
	return GlyphID(gid), true //nolint:gosec // range checked above
}

// GlyphBounds implements ParsedFont.GlyphBounds.
// go-text extents grow up with a negative height; they are flipped here.
func (f *gotextParsedFont) GlyphBounds(gid GlyphID) (Rect, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ext, ok := f.face.GlyphExtents(font.GID(gid))
	if !ok {
		return Rect{}, fmt.Errorf("text: no extents for glyph %d", gid)
	}

	top := float64(ext.YBearing)
	bottom := float64(ext.YBearing + ext.Height)
	return Rect{
		MinX: int(math.Floor(float64(ext.XBearing))),
		MinY: int(math.Floor(-top)),
		MaxX: int(math.Ceil(float64(ext.XBearing + ext.Width))),
		MaxY: int(math.Ceil(-bottom)),
	}, nil
}

// GlyphAdvance implements ParsedFont.GlyphAdvance.
func (f *gotextParsedFont) GlyphAdvance(gid GlyphID) (int, error) {
	if int(gid) >= f.numGlyphs {
		return 0, fmt.Errorf("text: glyph %d out of range", gid)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return int(f.face.HorizontalAdvance(font.GID(gid))), nil
}

// GlyphOutline implements ParsedFont.GlyphOutline.
func (f *gotextParsedFont) GlyphOutline(gid GlyphID, ppem float64) ([]OutlineSegment, error) {
	f.mu.Lock()
	data := f.face.GlyphData(font.GID(gid))
	upem := float32(f.face.Upem())
	f.mu.Unlock()

	var outline font.GlyphOutline
	switch d := data.(type) {
	case font.GlyphOutline:
		outline = d
	case font.GlyphSVG:
		outline = d.Outline
	case font.GlyphBitmap:
		if d.Outline == nil {
			return nil, ErrUnsupportedGlyph
		}
		outline = *d.Outline
	case nil:
		return nil, fmt.Errorf("text: no glyph data for glyph %d", gid)
	default:
		return nil, ErrUnsupportedGlyph
	}

	scale := float32(ppem) / upem
	out := make([]OutlineSegment, 0, len(outline.Segments))
	for _, seg := range outline.Segments {
		var s OutlineSegment
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			s.Op = OutlineOpMoveTo
		case ot.SegmentOpLineTo:
			s.Op = OutlineOpLineTo
		case ot.SegmentOpQuadTo:
			s.Op = OutlineOpQuadTo
		case ot.SegmentOpCubeTo:
			s.Op = OutlineOpCubicTo
		}
		for i := 0; i < s.Op.pointCount(); i++ {
			s.Points[i] = OutlinePoint{
				X: seg.Args[i].X * scale,
				Y: -seg.Args[i].Y * scale,
			}
		}
		out = append(out, s)
	}

	return out, nil
}
