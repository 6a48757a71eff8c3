package backdrop

import (
	"errors"
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Color
		wantErr bool
	}{
		{"white with hash", "#FFFFFF", Color{255, 255, 255}, false},
		{"no hash", "102030", Color{0x10, 0x20, 0x30}, false},
		{"lowercase", "#abcdef", Color{0xab, 0xcd, 0xef}, false},
		{"mixed case", "#aBcDeF", Color{0xab, 0xcd, 0xef}, false},
		{"black", "#000000", Color{}, false},
		{"short form", "#fff", Color{}, true},
		{"too long", "#1234567", Color{}, true},
		{"empty", "", Color{}, true},
		{"hash only", "#", Color{}, true},
		{"non hex", "#gg0000", Color{}, true},
		{"double hash", "##12345", Color{}, true},
		{"sign", "+12345", Color{}, true},
		{"alpha form", "#ff000080", Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidColor) {
					t.Fatalf("ParseColor(%q) error = %v, want ErrInvalidColor", tt.in, err)
				}
				var pe *ParseError
				if !errors.As(err, &pe) || pe.Kind != ParseErrorInvalidFormat || pe.Input != tt.in {
					t.Errorf("ParseColor(%q) error = %#v", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q) = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestColorString(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{Color{}, "#000000"},
		{Color{1, 2, 3}, "#010203"},
		{Color{0xAB, 0xCD, 0xEF}, "#abcdef"},
		{White, "#ffffff"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.c, got, tt.want)
		}
		back, err := ParseColor(tt.want)
		if err != nil || back != tt.c {
			t.Errorf("ParseColor(%q) = %+v, %v; want %+v", tt.want, back, err, tt.c)
		}
	}
}

func TestColorStringNormalizes(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"#ABCDEF", "#abcdef"},
		{"ABCDEF", "#abcdef"},
		{"#aBcDeF", "#abcdef"},
		{"FFFFFF", "#ffffff"},
		{"#0a0B0c", "#0a0b0c"},
	}
	for _, tt := range tests {
		c, err := ParseColor(tt.in)
		if err != nil {
			t.Fatalf("ParseColor(%q): %v", tt.in, err)
		}
		if got := c.String(); got != tt.want {
			t.Errorf("ParseColor(%q).String() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestColorInverse(t *testing.T) {
	tests := []struct {
		c, want Color
	}{
		{White, Black},
		{Color{0x12, 0x34, 0x56}, Color{0xed, 0xcb, 0xa9}},
		{Color{127, 128, 0}, Color{128, 127, 255}},
	}
	for _, tt := range tests {
		if got := tt.c.Inverse(); got != tt.want {
			t.Errorf("%v.Inverse() = %v, want %v", tt.c, got, tt.want)
		}
		if got := tt.c.Inverse().Inverse(); got != tt.c {
			t.Errorf("double inverse of %v = %v", tt.c, got)
		}
	}
}

func TestColorImplementsColor(t *testing.T) {
	var c color.Color = Color{255, 0, 128}
	r, g, b, a := c.RGBA()
	if r != 0xffff || g != 0 || b != 0x8080 || a != 0xffff {
		t.Errorf("RGBA() = %x %x %x %x", r, g, b, a)
	}
}

func TestFromColor(t *testing.T) {
	tests := []struct {
		name string
		in   color.Color
		want Color
	}{
		{"opaque rgba", color.RGBA{10, 20, 30, 255}, Color{10, 20, 30}},
		{"gray", color.Gray{Y: 200}, Color{200, 200, 200}},
		{"premultiplied half", color.RGBA{64, 0, 0, 128}, Color{127, 0, 0}},
		{"nrgba", color.NRGBA{1, 2, 3, 4}, Color{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromColor(tt.in); got != tt.want {
				t.Errorf("FromColor(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestColorFlagAndText(t *testing.T) {
	var c Color
	if err := c.Set("#336699"); err != nil {
		t.Fatal(err)
	}
	if c != (Color{0x33, 0x66, 0x99}) {
		t.Errorf("Set = %v", c)
	}
	if c.Type() != "color" {
		t.Errorf("Type() = %q", c.Type())
	}

	if err := c.Set("nope"); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("Set(nope) = %v", err)
	}
	if c != (Color{0x33, 0x66, 0x99}) {
		t.Error("failed Set modified the color")
	}

	b, _ := c.MarshalText()
	var d Color
	if err := d.UnmarshalText(b); err != nil || d != c {
		t.Errorf("UnmarshalText(%s) = %v, %v", b, d, err)
	}
}

func TestMustParseColorPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParseColor did not panic")
		}
	}()
	MustParseColor("#12")
}
