// Package text measures and rasterizes a single line of text with a font
// picked at random from a FontProvider.
//
// The pipeline has three explicit steps that share one rune resolution rule:
//
//   - FontSelector.PickRandom: enumerate a FontProvider and load one font
//   - Measure: tight bounding box of the text in font design units
//   - Rasterize: coverage canvas sized from that box
//
// # Example usage
//
//	sel := text.NewFontSelector(text.NewSystemProvider())
//	src, err := sel.PickRandom()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer src.Close()
//
//	box, err := text.Measure("Hello, World!", src.Parsed())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	canvas, err := text.Rasterize("Hello, World!", src.Parsed(), box, text.WithSize(64))
//
// # Pluggable Parser Backend
//
// Font parsing is abstracted through the FontParser interface.
// By default, golang.org/x/image/font/opentype is used; "gotext" selects
// github.com/go-text/typesetting. Custom parsers can be registered:
//
//	text.RegisterParser("myparser", myCustomParser)
//	source, err := text.NewFontSource(data, text.WithParser("myparser"))
package text
