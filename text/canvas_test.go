package text

import (
	"image"
	"image/color"
	"testing"
)

func TestNewCanvas(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		wantStride int
		wantLen    int
		wantEmpty  bool
	}{
		{"3x2", 3, 2, 3, 6, false},
		{"empty", 0, 0, 0, 0, true},
		{"zero height", 4, 0, 4, 0, true},
		{"negative", -4, 5, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(tt.w, tt.h)
			if c.Stride != tt.wantStride || len(c.Pix) != tt.wantLen {
				t.Errorf("stride=%d len=%d, want %d %d", c.Stride, len(c.Pix), tt.wantStride, tt.wantLen)
			}
			if c.Empty() != tt.wantEmpty {
				t.Errorf("Empty() = %v, want %v", c.Empty(), tt.wantEmpty)
			}
		})
	}
}

func TestCanvasAlphaAt(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Pix[3] = 200

	if got := c.AlphaAt(1, 1); got != 200 {
		t.Errorf("AlphaAt(1,1) = %d, want 200", got)
	}
	for _, p := range []image.Point{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		if got := c.AlphaAt(p.X, p.Y); got != 0 {
			t.Errorf("AlphaAt(%v) = %d, want 0 outside", p, got)
		}
	}
}

func TestCanvasAlphaSharesPixels(t *testing.T) {
	c := NewCanvas(2, 2)
	a := c.Alpha()
	if a.Bounds() != c.Bounds() {
		t.Errorf("Alpha bounds = %v, want %v", a.Bounds(), c.Bounds())
	}
	a.SetAlpha(1, 0, color.Alpha{A: 77})
	if c.Pix[1] != 77 {
		t.Error("Alpha() should share Pix")
	}
}
