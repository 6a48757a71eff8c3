package text

import "image"

// Canvas is a glyph coverage buffer, one byte per pixel, as produced by
// Rasterize. 0 is no ink and 255 full coverage.
//
// A Canvas is owned by whoever allocated it and is not safe for concurrent
// mutation.
type Canvas struct {
	Width  int
	Height int
	Stride int
	Pix    []byte
}

// NewCanvas allocates a zeroed canvas. Negative sizes are treated as zero.
func NewCanvas(width, height int) *Canvas {
	width = max(width, 0)
	height = max(height, 0)
	return &Canvas{
		Width:  width,
		Height: height,
		Stride: width,
		Pix:    make([]byte, width*height),
	}
}

// Bounds returns the canvas rectangle anchored at the origin.
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.Width, c.Height)
}

// Empty reports whether the canvas has no pixels.
func (c *Canvas) Empty() bool {
	return c.Width == 0 || c.Height == 0
}

// AlphaAt returns the coverage at (x, y), or 0 outside the canvas.
func (c *Canvas) AlphaAt(x, y int) uint8 {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return 0
	}
	return c.Pix[y*c.Stride+x]
}

// Alpha returns the coverage as an *image.Alpha sharing Pix with the
// canvas. It is the mask the composer paints the text color through.
func (c *Canvas) Alpha() *image.Alpha {
	return &image.Alpha{Pix: c.Pix, Stride: c.Stride, Rect: c.Bounds()}
}
