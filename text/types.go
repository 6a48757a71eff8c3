package text

// unknownStr is the string returned for unknown enum values.
const unknownStr = "Unknown"

// GlyphID is a unique identifier for a glyph within a font.
// The glyph ID is assigned by the font file and is font-specific.
type GlyphID uint16

// Hinting specifies how glyph origins are aligned to the pixel grid.
type Hinting int

const (
	// HintingNone places glyphs at their exact fractional positions.
	HintingNone Hinting = iota
	// HintingVertical snaps the baseline to whole pixels.
	HintingVertical
	// HintingFull snaps both the baseline and each glyph origin to whole pixels.
	HintingFull
)

// String returns the string representation of the hinting.
func (h Hinting) String() string {
	switch h {
	case HintingNone:
		return "None"
	case HintingVertical:
		return "Vertical"
	case HintingFull:
		return "Full"
	default:
		return unknownStr
	}
}

// ParseHinting converts a configuration value ("none", "vertical", "full")
// to a Hinting. Unknown values report ok == false.
func ParseHinting(s string) (h Hinting, ok bool) {
	switch s {
	case "none", "None":
		return HintingNone, true
	case "vertical", "Vertical":
		return HintingVertical, true
	case "full", "Full", "":
		return HintingFull, true
	default:
		return HintingFull, false
	}
}

// Rect is an axis-aligned rectangle in font design units.
// The Y axis grows down: the baseline is at Y == 0, ascenders have
// negative Y and descenders positive Y.
type Rect struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Width returns the width of the rectangle.
func (r Rect) Width() int {
	return r.MaxX - r.MinX
}

// Height returns the height of the rectangle.
func (r Rect) Height() int {
	return r.MaxY - r.MinY
}

// Empty reports whether the rectangle has zero area.
func (r Rect) Empty() bool {
	return r.MinX >= r.MaxX || r.MinY >= r.MaxY
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		MinX: min(r.MinX, o.MinX),
		MinY: min(r.MinY, o.MinY),
		MaxX: max(r.MaxX, o.MaxX),
		MaxY: max(r.MaxY, o.MaxY),
	}
}

// Translate returns r shifted horizontally by dx.
func (r Rect) Translate(dx int) Rect {
	return Rect{MinX: r.MinX + dx, MinY: r.MinY, MaxX: r.MaxX + dx, MaxY: r.MaxY}
}
