package backdrop

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is an opaque RGB color with 8 bits per channel.
// It is a small value type; copy it freely.
//
// Color implements image/color.Color, flag.Value (and pflag.Value), and
// encoding.TextMarshaler/TextUnmarshaler so it can be used directly in
// command line flags and TOML configuration.
type Color struct {
	R, G, B uint8
}

// Common colors.
var (
	White = Color{R: 255, G: 255, B: 255}
	Black = Color{}
)

// ParseColor parses "#rrggbb" or "rrggbb" (either case).
// Anything else fails with a *ParseError of kind ParseErrorInvalidFormat.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return Color{}, &ParseError{Kind: ParseErrorInvalidFormat, Input: s}
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, &ParseError{Kind: ParseErrorInvalidFormat, Input: s, Err: err}
	}

	return Color{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}, nil
}

// MustParseColor is like ParseColor but panics on malformed input.
// It is intended for constants in code.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// String formats the color as "#rrggbb", lowercase and zero-padded.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Inverse returns the color with every channel replaced by 255 - channel.
// Inverse(Inverse(c)) == c. Channels near the middle (127, 128) map to
// their neighbour, so mid-grey backgrounds get little contrast.
func (c Color) Inverse() Color {
	return Color{R: 255 - c.R, G: 255 - c.G, B: 255 - c.B}
}

// RGBA implements color.Color. The color is always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}.RGBA()
}

// ToRGBA returns the color as an opaque color.RGBA.
func (c Color) ToRGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// FromColor converts any color to a Color, dropping alpha.
// Translucent colors are un-premultiplied first.
func FromColor(c color.Color) Color {
	n, _ := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B}
}

// Set implements flag.Value.
func (c *Color) Set(s string) error {
	v, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Type implements pflag.Value.
func (c *Color) Type() string {
	return "color"
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	return c.Set(string(text))
}
