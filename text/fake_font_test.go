package text

import "errors"

// fakeGlyph describes one glyph of a fakeFont, in design units (Y down).
type fakeGlyph struct {
	gid     GlyphID
	bounds  Rect
	advance int

	// outline is a closed polygon in design units; nil means no ink.
	outline []OutlinePoint

	boundsErr  error
	advanceErr error
	outlineErr error
}

// fakeFont is a ParsedFont with hand-written metrics.
type fakeFont struct {
	name   string
	upem   int
	glyphs map[rune]fakeGlyph
}

var errFake = errors.New("fake failure")

// newSquareFont returns a font with:
//   - 'A': a full-em square sitting on the baseline
//   - 'g': a glyph with a descender
//   - 'j': a glyph with a negative left bearing
//   - ' ': an inkless space
func newSquareFont() *fakeFont {
	return &fakeFont{
		name: "Square",
		upem: 1000,
		glyphs: map[rune]fakeGlyph{
			'A': {
				gid:     1,
				bounds:  Rect{MinX: 0, MinY: -1000, MaxX: 1000, MaxY: 0},
				advance: 1000,
				outline: []OutlinePoint{{0, -1000}, {1000, -1000}, {1000, 0}, {0, 0}},
			},
			'g': {
				gid:     2,
				bounds:  Rect{MinX: 10, MinY: -500, MaxX: 490, MaxY: 200},
				advance: 550,
				outline: []OutlinePoint{{10, -500}, {490, -500}, {490, 200}, {10, 200}},
			},
			'j': {
				gid:     3,
				bounds:  Rect{MinX: -50, MinY: -500, MaxX: 200, MaxY: 200},
				advance: 250,
				outline: []OutlinePoint{{-50, -500}, {200, -500}, {200, 200}, {-50, 200}},
			},
			' ': {
				gid:     4,
				advance: 300,
			},
		},
	}
}

func (f *fakeFont) Name() string     { return f.name }
func (f *fakeFont) FullName() string { return f.name }
func (f *fakeFont) NumGlyphs() int   { return len(f.glyphs) + 1 }
func (f *fakeFont) UnitsPerEm() int  { return f.upem }

func (f *fakeFont) GlyphIndex(r rune) (GlyphID, bool) {
	g, ok := f.glyphs[r]
	if !ok {
		return 0, false
	}
	return g.gid, true
}

func (f *fakeFont) glyph(gid GlyphID) fakeGlyph {
	for _, g := range f.glyphs {
		if g.gid == gid {
			return g
		}
	}
	return fakeGlyph{boundsErr: errFake, advanceErr: errFake, outlineErr: errFake}
}

func (f *fakeFont) GlyphBounds(gid GlyphID) (Rect, error) {
	g := f.glyph(gid)
	return g.bounds, g.boundsErr
}

func (f *fakeFont) GlyphAdvance(gid GlyphID) (int, error) {
	g := f.glyph(gid)
	return g.advance, g.advanceErr
}

func (f *fakeFont) GlyphOutline(gid GlyphID, ppem float64) ([]OutlineSegment, error) {
	g := f.glyph(gid)
	if g.outlineErr != nil {
		return nil, g.outlineErr
	}
	scale := float32(ppem) / float32(f.upem)
	var segs []OutlineSegment
	for i, p := range g.outline {
		op := OutlineOpLineTo
		if i == 0 {
			op = OutlineOpMoveTo
		}
		segs = append(segs, OutlineSegment{
			Op:     op,
			Points: [3]OutlinePoint{{X: p.X * scale, Y: p.Y * scale}},
		})
	}
	return segs, nil
}
