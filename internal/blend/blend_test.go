package blend

import (
	"image"
	"image/color"
	"testing"
)

func TestMulDiv255(t *testing.T) {
	tests := []struct {
		name string
		a, b byte
		want byte
	}{
		{"zero * zero", 0, 0, 0},
		{"zero * max", 0, 255, 0},
		{"max * max", 255, 255, 255},
		{"half * half", 128, 128, 64},
		{"255 * 128", 255, 128, 128},
		{"1 * 1", 1, 1, 0},
		{"100 * 100", 100, 100, 39},
		{"200 * 200", 200, 200, 157},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mulDiv255(tt.a, tt.b); got != tt.want {
				t.Errorf("mulDiv255(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", SourceOver, false},
		{"over", SourceOver, false},
		{"Source-Over", SourceOver, false},
		{"multiply", Multiply, false},
		{" XOR ", Xor, false},
		{"exclusion", Exclusion, false},
		{"bogus", SourceOver, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestModeStringRoundTrip(t *testing.T) {
	for m := SourceOver; m <= Exclusion; m++ {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %v, %v; want %v", m.String(), got, err, m)
		}
	}
}

func TestOperators(t *testing.T) {
	type px [4]byte
	tests := []struct {
		name     string
		mode     Mode
		src, dst px
		want     px
	}{
		{"over opaque", SourceOver, px{255, 0, 0, 255}, px{0, 0, 255, 255}, px{255, 0, 0, 255}},
		{"over transparent src", SourceOver, px{0, 0, 0, 0}, px{10, 20, 30, 255}, px{10, 20, 30, 255}},
		{"over half", SourceOver, px{128, 0, 0, 128}, px{0, 0, 255, 255}, px{128, 0, 127, 255}},
		{"source", Source, px{1, 2, 3, 4}, px{9, 9, 9, 9}, px{1, 2, 3, 4}},
		{"destination over opaque dst", DestinationOver, px{255, 0, 0, 255}, px{0, 255, 0, 255}, px{0, 255, 0, 255}},
		{"plus clamps", Plus, px{200, 200, 200, 255}, px{100, 10, 0, 255}, px{255, 210, 200, 255}},
		{"multiply black", Multiply, px{0, 0, 0, 255}, px{255, 255, 255, 255}, px{0, 0, 0, 255}},
		{"multiply white", Multiply, px{255, 255, 255, 255}, px{40, 80, 120, 255}, px{40, 80, 120, 255}},
		{"screen white", Screen, px{255, 255, 255, 255}, px{40, 80, 120, 255}, px{255, 255, 255, 255}},
		{"darken", Darken, px{100, 200, 50, 255}, px{150, 100, 50, 255}, px{100, 100, 50, 255}},
		{"lighten", Lighten, px{100, 200, 50, 255}, px{150, 100, 50, 255}, px{150, 200, 50, 255}},
		{"difference", Difference, px{255, 255, 255, 255}, px{255, 0, 55, 255}, px{0, 255, 200, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn := FuncFor(tt.mode)
			r, g, b, a := fn(tt.src[0], tt.src[1], tt.src[2], tt.src[3], tt.dst[0], tt.dst[1], tt.dst[2], tt.dst[3])
			if got := (px{r, g, b, a}); got != tt.want {
				t.Errorf("%v(%v, %v) = %v, want %v", tt.mode, tt.src, tt.dst, got, tt.want)
			}
		})
	}
}

func TestDrawMask(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range dst.Pix {
		dst.Pix[i] = 255
	}

	mask := image.NewAlpha(image.Rect(0, 0, 2, 2))
	mask.SetAlpha(0, 0, color.Alpha{A: 255})
	mask.SetAlpha(1, 0, color.Alpha{A: 128})
	// (0,1) and (1,1) stay zero.

	black := color.RGBA{A: 255}
	DrawMask(dst, image.Rect(1, 1, 3, 3), mask, image.Point{}, black, SourceOver)

	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, color.RGBA{255, 255, 255, 255}},
		{1, 1, color.RGBA{0, 0, 0, 255}},
		{2, 1, color.RGBA{127, 127, 127, 255}},
		{1, 2, color.RGBA{255, 255, 255, 255}},
		{3, 3, color.RGBA{255, 255, 255, 255}},
	}
	for _, tt := range tests {
		if got := dst.RGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDrawMaskClipped(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 3, 3))
	mask := image.NewAlpha(image.Rect(0, 0, 4, 4))
	for i := range mask.Pix {
		mask.Pix[i] = 255
	}

	red := color.RGBA{R: 255, A: 255}
	// Mask hangs off the top-left corner by one pixel.
	DrawMask(dst, image.Rect(-1, -1, 3, 3), mask, image.Point{}, red, SourceOver)

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if got := dst.RGBAAt(x, y); got != red {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, red)
			}
		}
	}
}

func TestDrawMaskZeroCoverageKeepsDestination(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 2, 2))
	dst.SetRGBA(0, 0, color.RGBA{10, 20, 30, 255})
	mask := image.NewAlpha(image.Rect(0, 0, 2, 2))

	DrawMask(dst, dst.Bounds(), mask, image.Point{}, color.RGBA{A: 255}, Source)

	if got := dst.RGBAAt(0, 0); got != (color.RGBA{10, 20, 30, 255}) {
		t.Errorf("pixel changed under zero coverage: %v", got)
	}
}
