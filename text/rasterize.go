package text

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/vector"
)

// maxCanvasPixels bounds the canvas Rasterize allocates.
const maxCanvasPixels = 1 << 28

// MaxRasterSize is the largest size, in pixels per em, Rasterize accepts.
// Outlines are loaded in 26.6 fixed point, which tops out near 2^25.
const MaxRasterSize = 1 << 24

// Rasterize renders text into a coverage canvas sized from bounds,
// which must come from Measure for the same text and font.
//
// The canvas is ceil(width*scale)+1 by ceil(height*scale)+1 pixels, where
// scale is the raster size over the font's units per em; the extra pixel
// absorbs hinting snap. Each glyph is placed at
// ((cursor - bounds.MinX)*scale, -bounds.MinY*scale), so the box's top-left
// corner maps to the canvas origin.
//
// Runes resolve exactly as in Measure: a rune the font lacks fails with the
// same LayoutError. A glyph whose outline cannot be loaded fails with a
// RasterError. On error no canvas is returned.
func Rasterize(text string, font ParsedFont, bounds TextBoundingBox, opts ...RasterOption) (*Canvas, error) {
	o := DefaultRasterOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Size <= 0 || o.Size > MaxRasterSize || math.IsNaN(o.Size) {
		return nil, fmt.Errorf("%w: size %v", ErrInvalidRasterSize, o.Size)
	}

	upem := font.UnitsPerEm()
	if upem <= 0 {
		return nil, &LayoutError{Kind: LayoutErrorMetricsUnavailable, Err: fmt.Errorf("units per em is %d", upem)}
	}
	scale := o.Size / float64(upem)

	w, h := 0, 0
	if !bounds.Empty() {
		// Compare in float64 first so the int conversion cannot overflow.
		fw := math.Ceil(float64(bounds.Width())*scale) + 1
		fh := math.Ceil(float64(bounds.Height())*scale) + 1
		if fw > maxCanvasPixels || fh > maxCanvasPixels {
			return nil, fmt.Errorf("%w: %.0fx%.0f canvas", ErrInvalidRasterSize, fw, fh)
		}
		w, h = int(fw), int(fh)
		if w > maxCanvasPixels/h {
			return nil, fmt.Errorf("%w: %dx%d canvas", ErrInvalidRasterSize, w, h)
		}
	}

	baseline := float64(-bounds.MinY) * scale
	if o.Hinting != HintingNone {
		baseline = math.Ceil(baseline)
	}

	var z *vector.Rasterizer
	if w > 0 && h > 0 {
		z = vector.NewRasterizer(w, h)
	}

	glyphs := 0
	err := walkGlyphs(text, font, func(g GlyphBounds) error {
		segs, err := font.GlyphOutline(g.GID, o.Size)
		if err != nil {
			return &RasterError{Kind: RasterErrorGlyphRasterizationFailed, Rune: g.Rune, GID: g.GID, Err: err}
		}
		if z == nil || len(segs) == 0 {
			return nil
		}

		x := float64(g.Offset-bounds.MinX) * scale
		if o.Hinting == HintingFull {
			x = math.Ceil(x)
		}
		addOutline(z, segs, float32(x), float32(baseline))
		glyphs++
		return nil
	})
	if err != nil {
		return nil, err
	}

	canvas := NewCanvas(w, h)
	if z != nil && glyphs > 0 {
		z.Draw(canvas.Alpha(), canvas.Bounds(), image.Opaque, image.Point{})
	}
	if !o.Antialias {
		threshold(canvas.Pix)
	}

	slogger().Debug("text rasterized",
		"size", o.Size,
		"width", w,
		"height", h,
		"glyphs", glyphs,
		"hinting", o.Hinting.String(),
		"antialias", o.Antialias)

	return canvas, nil
}

// addOutline appends a glyph outline to z with its origin at (ox, oy).
// Every contour is closed explicitly since MoveTo does not close the
// previous one.
func addOutline(z *vector.Rasterizer, segs []OutlineSegment, ox, oy float32) {
	open := false
	for _, s := range segs {
		p := s.Points
		switch s.Op {
		case OutlineOpMoveTo:
			if open {
				z.ClosePath()
			}
			z.MoveTo(ox+p[0].X, oy+p[0].Y)
			open = true
		case OutlineOpLineTo:
			z.LineTo(ox+p[0].X, oy+p[0].Y)
		case OutlineOpQuadTo:
			z.QuadTo(ox+p[0].X, oy+p[0].Y, ox+p[1].X, oy+p[1].Y)
		case OutlineOpCubicTo:
			z.CubeTo(ox+p[0].X, oy+p[0].Y, ox+p[1].X, oy+p[1].Y, ox+p[2].X, oy+p[2].Y)
		}
	}
	if open {
		z.ClosePath()
	}
}

// threshold turns coverage into a hard mask at 50%.
func threshold(pix []byte) {
	for i, v := range pix {
		if v >= 128 {
			pix[i] = 255
		} else {
			pix[i] = 0
		}
	}
}
