package text

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

// backendOf returns the parser's own font under the metrics cache.
func backendOf(f ParsedFont) ParsedFont {
	if c, ok := f.(*cachedFont); ok {
		return c.ParsedFont
	}
	return f
}

func TestLRUGetOrCreate(t *testing.T) {
	c := newLRU[string, int](0)

	calls := 0
	create := func() int {
		calls++
		return 42
	}

	for range 3 {
		if v := c.getOrCreate("a", create); v != 42 {
			t.Fatalf("getOrCreate = %d, want 42", v)
		}
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}

	c.getOrCreate("b", create)
	if calls != 2 || c.len() != 2 {
		t.Errorf("calls = %d, len = %d; want 2, 2", calls, c.len())
	}
}

func TestLRUEvictsLeastRecentlyUsed(t *testing.T) {
	c := newLRU[int, int](3)
	for i := range 3 {
		c.getOrCreate(i, func() int { return i })
	}

	// Touch 0 so 1 becomes the oldest.
	c.getOrCreate(0, func() int { t.Fatal("0 should be cached"); return 0 })
	c.getOrCreate(3, func() int { return 3 })

	if c.len() != 3 {
		t.Fatalf("len = %d, want 3", c.len())
	}
	recreated := false
	c.getOrCreate(1, func() int { recreated = true; return 1 })
	if !recreated {
		t.Error("entry 1 should have been evicted")
	}
}

func TestLRUConcurrent(t *testing.T) {
	c := newLRU[int, int](16)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				c.getOrCreate((g+i)%32, func() int { return i })
			}
		}()
	}
	wg.Wait()
	if n := c.len(); n > 16 {
		t.Errorf("len = %d, exceeds limit", n)
	}
}

// countingFont counts metric lookups that reach the wrapped font.
type countingFont struct {
	ParsedFont
	index, bounds, advance atomic.Int32
}

func (f *countingFont) GlyphIndex(r rune) (GlyphID, bool) {
	f.index.Add(1)
	return f.ParsedFont.GlyphIndex(r)
}

func (f *countingFont) GlyphBounds(gid GlyphID) (Rect, error) {
	f.bounds.Add(1)
	return f.ParsedFont.GlyphBounds(gid)
}

func (f *countingFont) GlyphAdvance(gid GlyphID) (int, error) {
	f.advance.Add(1)
	return f.ParsedFont.GlyphAdvance(gid)
}

func TestCachedFontServesRepeatLookups(t *testing.T) {
	inner := &countingFont{ParsedFont: newSquareFont()}
	font := newCachedFont(inner)

	first, err := Measure("AAgA", font)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Rasterize("AAgA", font, first, WithSize(10)); err != nil {
		t.Fatal(err)
	}
	second, err := Measure("gA", font)
	if err != nil {
		t.Fatal(err)
	}

	// Two distinct runes, two distinct glyphs.
	if n := inner.index.Load(); n != 2 {
		t.Errorf("GlyphIndex reached the font %d times, want 2", n)
	}
	if n := inner.bounds.Load(); n != 2 {
		t.Errorf("GlyphBounds reached the font %d times, want 2", n)
	}
	if n := inner.advance.Load(); n != 2 {
		t.Errorf("GlyphAdvance reached the font %d times, want 2", n)
	}

	want, _ := Measure("gA", inner)
	if second.Rect != want.Rect || second.Cursor != want.Cursor {
		t.Errorf("cached measure = %+v, want %+v", second, want)
	}
}

func TestCachedFontCachesMisses(t *testing.T) {
	inner := &countingFont{ParsedFont: newSquareFont()}
	font := newCachedFont(inner)

	for range 3 {
		if _, err := Measure("x", font); !errors.Is(err, ErrMissingGlyph) {
			t.Fatalf("Measure = %v, want ErrMissingGlyph", err)
		}
	}
	if n := inner.index.Load(); n != 1 {
		t.Errorf("GlyphIndex reached the font %d times, want 1", n)
	}
}

func TestFontSourceUsesMetricsCache(t *testing.T) {
	src, err := NewFontSource(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = src.Close() }()

	c, ok := src.Parsed().(*cachedFont)
	if !ok {
		t.Fatalf("Parsed() = %T, want *cachedFont", src.Parsed())
	}
	if _, err := Measure("Hello", c); err != nil {
		t.Fatal(err)
	}
	if n := c.index.len(); n != 4 {
		t.Errorf("cached %d runes, want 4 (H e l o)", n)
	}
}
