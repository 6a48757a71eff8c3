// Package blend implements the compositing operators used to lay tinted
// text coverage over a background image.
//
// All operators work on premultiplied alpha values in the range 0-255,
// the layout of image.RGBA.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

import (
	"fmt"
	"strings"
)

// Mode selects a compositing operator.
type Mode uint8

const (
	// Porter-Duff operators
	SourceOver      Mode = iota // S + D*(1-Sa) [default]
	Source                      // S
	DestinationOver             // S*(1-Da) + D
	SourceAtop                  // S*Da + D*(1-Sa)
	Xor                         // S*(1-Da) + D*(1-Sa)
	Plus                        // min(S + D, 255)

	// Separable blend modes
	Multiply   // S * D
	Screen     // 1 - (1-S)*(1-D)
	Overlay    // HardLight with swapped layers
	Darken     // min(S, D)
	Lighten    // max(S, D)
	Difference // |S - D|
	Exclusion  // S + D - 2*S*D
)

var modeNames = [...]string{
	SourceOver:      "over",
	Source:          "source",
	DestinationOver: "destination-over",
	SourceAtop:      "atop",
	Xor:             "xor",
	Plus:            "plus",
	Multiply:        "multiply",
	Screen:          "screen",
	Overlay:         "overlay",
	Darken:          "darken",
	Lighten:         "lighten",
	Difference:      "difference",
	Exclusion:       "exclusion",
}

// String returns the configuration name of the mode.
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", m)
}

// ParseMode converts a configuration name (case-insensitive) to a Mode.
// The empty string selects SourceOver.
func ParseMode(name string) (Mode, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "source-over" {
		return SourceOver, nil
	}
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
	}
	return SourceOver, fmt.Errorf("blend: unknown mode %q", name)
}

// Func is the signature of a compositing operator.
// All values are premultiplied alpha, 0-255.
type Func func(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte)

// FuncFor returns the operator for mode, or source-over for unknown modes.
func FuncFor(mode Mode) Func {
	switch mode {
	case Source:
		return blendSource
	case DestinationOver:
		return blendDestinationOver
	case SourceAtop:
		return blendSourceAtop
	case Xor:
		return blendXor
	case Plus:
		return blendPlus
	case Multiply:
		return blendMultiply
	case Screen:
		return blendScreen
	case Overlay:
		return blendOverlay
	case Darken:
		return blendDarken
	case Lighten:
		return blendLighten
	case Difference:
		return blendDifference
	case Exclusion:
		return blendExclusion
	default:
		return blendSourceOver
	}
}
