package text

import "sync"

// metricsCacheLimit bounds each per-font metrics table. Typical text uses
// far fewer distinct glyphs.
const metricsCacheLimit = 1024

// lru is a thread-safe map that evicts the least recently used entry once
// it holds more than limit entries.
//
// lru must not be copied after creation (has mutex).
type lru[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*lruEntry[V]
	limit   int
	tick    int64 // Monotonic access counter
}

type lruEntry[V any] struct {
	value V
	atime int64
}

func newLRU[K comparable, V any](limit int) *lru[K, V] {
	return &lru[K, V]{
		entries: make(map[K]*lruEntry[V]),
		limit:   limit,
	}
}

// getOrCreate returns the cached value for key or stores create's result.
// create runs under the lock, so concurrent misses compute once.
func (c *lru[K, V]) getOrCreate(key K, create func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tick++
	if e, ok := c.entries[key]; ok {
		e.atime = c.tick
		return e.value
	}

	v := create()
	c.entries[key] = &lruEntry[V]{value: v, atime: c.tick}
	if c.limit > 0 && len(c.entries) > c.limit {
		c.evictOldest()
	}
	return v
}

func (c *lru[K, V]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictOldest drops the entry with the smallest access time.
func (c *lru[K, V]) evictOldest() {
	var (
		oldest K
		min    int64 = -1
	)
	for k, e := range c.entries {
		if min < 0 || e.atime < min {
			oldest, min = k, e.atime
		}
	}
	delete(c.entries, oldest)
}

type indexResult struct {
	gid GlyphID
	ok  bool
}

type boundsResult struct {
	rect Rect
	err  error
}

type advanceResult struct {
	adv int
	err error
}

// cachedFont memoizes the metric lookups of a ParsedFont. Measure and
// Rasterize walk the same glyphs, so the second pass is served from here.
// Outlines depend on the raster size and are not cached.
//
// cachedFont is safe for concurrent use when the wrapped font is.
type cachedFont struct {
	ParsedFont

	index   *lru[rune, indexResult]
	bounds  *lru[GlyphID, boundsResult]
	advance *lru[GlyphID, advanceResult]
}

func newCachedFont(f ParsedFont) *cachedFont {
	return &cachedFont{
		ParsedFont: f,
		index:      newLRU[rune, indexResult](metricsCacheLimit),
		bounds:     newLRU[GlyphID, boundsResult](metricsCacheLimit),
		advance:    newLRU[GlyphID, advanceResult](metricsCacheLimit),
	}
}

// GlyphIndex implements ParsedFont.
func (f *cachedFont) GlyphIndex(r rune) (GlyphID, bool) {
	res := f.index.getOrCreate(r, func() indexResult {
		gid, ok := f.ParsedFont.GlyphIndex(r)
		return indexResult{gid, ok}
	})
	return res.gid, res.ok
}

// GlyphBounds implements ParsedFont.
func (f *cachedFont) GlyphBounds(gid GlyphID) (Rect, error) {
	res := f.bounds.getOrCreate(gid, func() boundsResult {
		r, err := f.ParsedFont.GlyphBounds(gid)
		return boundsResult{r, err}
	})
	return res.rect, res.err
}

// GlyphAdvance implements ParsedFont.
func (f *cachedFont) GlyphAdvance(gid GlyphID) (int, error) {
	res := f.advance.getOrCreate(gid, func() advanceResult {
		a, err := f.ParsedFont.GlyphAdvance(gid)
		return advanceResult{a, err}
	})
	return res.adv, res.err
}
