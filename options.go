package backdrop

import (
	"github.com/gogpu/backdrop/internal/blend"
	"github.com/gogpu/backdrop/text"
)

// DefaultText is the text drawn when no WithText option is given.
const DefaultText = "Hello, World!"

// Defaults for the text size search.
const (
	// DefaultMinSize is the smallest font size, in pixels per em, that Seed
	// will choose when the image has room for it.
	DefaultMinSize = 12.0

	// DefaultMargin is the fraction of each image dimension the text may
	// occupy.
	DefaultMargin = 0.8
)

// BlendMode selects how text coverage is composited over the background.
type BlendMode = blend.Mode

// Blend modes accepted by WithBlendMode.
const (
	BlendOver       = blend.SourceOver
	BlendSource     = blend.Source
	BlendXor        = blend.Xor
	BlendMultiply   = blend.Multiply
	BlendScreen     = blend.Screen
	BlendDifference = blend.Difference
	BlendExclusion  = blend.Exclusion
)

// ParseBlendMode parses a blend mode name such as "over" or "difference".
func ParseBlendMode(name string) (BlendMode, error) {
	return blend.ParseMode(name)
}

// Option configures a Composer during creation.
//
// Example:
//
//	c := backdrop.NewComposer(text.EmbeddedProvider(),
//	    backdrop.WithText("Good morning"),
//	    backdrop.WithSeed(42),
//	)
type Option func(*composerOptions)

// composerOptions holds optional configuration for Composer creation.
type composerOptions struct {
	text       string
	minSize    float64
	margin     float64
	mode       BlendMode
	hinting    text.Hinting
	antialias  bool
	seeded     bool
	seed       uint64
	sourceOpts []text.SourceOption
}

// defaultOptions returns the default composer options.
func defaultOptions() composerOptions {
	return composerOptions{
		text:      DefaultText,
		minSize:   DefaultMinSize,
		margin:    DefaultMargin,
		mode:      BlendOver,
		hinting:   text.HintingFull,
		antialias: true,
	}
}

// WithText sets the text drawn on every seeded image.
func WithText(s string) Option {
	return func(o *composerOptions) {
		o.text = s
	}
}

// WithMinSize sets the lower bound of the random font size, in pixels per em.
// Values <= 0 are ignored.
func WithMinSize(size float64) Option {
	return func(o *composerOptions) {
		if size > 0 {
			o.minSize = size
		}
	}
}

// WithMargin sets the fraction (0, 1] of the image the text may span.
// Out of range values are ignored.
func WithMargin(m float64) Option {
	return func(o *composerOptions) {
		if m > 0 && m <= 1 {
			o.margin = m
		}
	}
}

// WithBlendMode sets the compositing operator. The default is BlendOver.
func WithBlendMode(m BlendMode) Option {
	return func(o *composerOptions) {
		o.mode = m
	}
}

// WithHinting sets the grid fitting applied when rasterizing.
func WithHinting(h text.Hinting) Option {
	return func(o *composerOptions) {
		o.hinting = h
	}
}

// WithAntialias toggles anti-aliased glyph edges.
func WithAntialias(on bool) Option {
	return func(o *composerOptions) {
		o.antialias = on
	}
}

// WithSeed makes font choice and size choice reproducible.
// Without it, the composer draws from the runtime's random source.
func WithSeed(seed uint64) Option {
	return func(o *composerOptions) {
		o.seeded = true
		o.seed = seed
	}
}

// WithSourceOptions passes options (such as text.WithParser) through to
// every font the composer loads.
func WithSourceOptions(opts ...text.SourceOption) Option {
	return func(o *composerOptions) {
		o.sourceOpts = append(o.sourceOpts, opts...)
	}
}
