package text

// SourceOption configures FontSource creation.
type SourceOption func(*sourceConfig)

// sourceConfig holds configuration for FontSource.
type sourceConfig struct {
	parserName string
	index      int
}

// defaultSourceConfig returns the default source configuration.
func defaultSourceConfig() sourceConfig {
	return sourceConfig{
		parserName: defaultParserName,
	}
}

// WithParser specifies the font parser backend.
// The default is "ximage" which uses golang.org/x/image/font/opentype;
// "gotext" uses github.com/go-text/typesetting.
//
// Custom parsers can be registered with RegisterParser.
func WithParser(name string) SourceOption {
	return func(c *sourceConfig) {
		c.parserName = name
	}
}

// WithIndex selects a font inside a TTC/OTC collection.
// It must be 0 for single-font files.
func WithIndex(i int) SourceOption {
	return func(c *sourceConfig) {
		c.index = i
	}
}

// RasterOption configures Rasterize.
type RasterOption func(*RasterOptions)

// RasterOptions holds the fixed rasterization configuration.
// The same options, font, size and text always yield the same canvas.
type RasterOptions struct {
	// Size is the font size in pixels per em.
	Size float64

	// Hinting controls snapping of each glyph origin to the pixel grid.
	Hinting Hinting

	// Antialias enables fractional coverage. When false, coverage is
	// thresholded at 50%.
	Antialias bool
}

// DefaultRasterSize is the point size used when none is given.
const DefaultRasterSize = 48

// DefaultRasterOptions returns the default rasterization configuration.
func DefaultRasterOptions() RasterOptions {
	return RasterOptions{
		Size:      DefaultRasterSize,
		Hinting:   HintingFull,
		Antialias: true,
	}
}

// WithSize sets the rasterization size in pixels per em.
func WithSize(size float64) RasterOption {
	return func(o *RasterOptions) {
		o.Size = size
	}
}

// WithHinting sets the hinting mode.
func WithHinting(h Hinting) RasterOption {
	return func(o *RasterOptions) {
		o.Hinting = h
	}
}

// WithAntialias enables or disables antialiasing.
func WithAntialias(on bool) RasterOption {
	return func(o *RasterOptions) {
		o.Antialias = on
	}
}
