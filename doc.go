// Package backdrop generates background images with a line of text
// centered on them in a randomly chosen font.
//
// # Overview
//
// A Composer picks a font from a text.FontProvider, measures the text,
// chooses a random size that fits the image, rasterizes the glyphs to a
// coverage mask and composites that mask over a solid background in the
// background's inverse color.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/backdrop"
//	    "github.com/gogpu/backdrop/text"
//	)
//
//	bg := backdrop.MustParseColor("#1e1e2e")
//	c := backdrop.NewComposer(text.NewSystemProvider(),
//	    backdrop.WithText("Hello, World!"),
//	)
//	img, err := c.Seed(1920, 1080, bg)
//
// # Colors
//
// Color is an opaque 8-bit RGB triple parsed from "#rrggbb" or "rrggbb".
// It works as a command line flag value and as a TOML string.
//
// # Fonts
//
// Fonts come from providers: installed system fonts, glob patterns, in
// memory bytes, the embedded Go fonts or remote URLs. See package text.
//
// # Coordinate System
//
// Images use standard raster coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//
// # Logging
//
// backdrop is silent by default. SetLogger installs a slog.Logger for this
// package and package text.
package backdrop

// Version is the current version of backdrop.
const Version = "0.1.0"
