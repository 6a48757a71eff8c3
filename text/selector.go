package text

import (
	"math/rand/v2"
	"sync"
)

// FontSelector picks fonts uniformly at random from a FontProvider.
//
// FontSelector is safe for concurrent use.
type FontSelector struct {
	provider FontProvider
	opts     []SourceOption

	mu  sync.Mutex
	rng *rand.Rand // nil uses the global source
}

// SelectorOption configures a FontSelector.
type SelectorOption func(*FontSelector)

// WithRand makes selection use r. Tests pass a seeded source for
// reproducible picks.
func WithRand(r *rand.Rand) SelectorOption {
	return func(s *FontSelector) {
		s.rng = r
	}
}

// WithSourceOptions sets the options used to load the picked font.
func WithSourceOptions(opts ...SourceOption) SelectorOption {
	return func(s *FontSelector) {
		s.opts = append(s.opts, opts...)
	}
}

// NewFontSelector creates a selector over provider.
func NewFontSelector(provider FontProvider, opts ...SelectorOption) *FontSelector {
	s := &FontSelector{provider: provider}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PickRandom enumerates the provider, picks one handle uniformly at random
// and loads it. An empty enumeration fails with a FontError of kind
// FontErrorNoFontsAvailable; a failed load fails with FontErrorLoadFailed.
// There is no retry with another font.
//
// The caller owns the returned FontSource and should Close it.
func (s *FontSelector) PickRandom() (*FontSource, error) {
	handles, err := s.provider.List()
	if err != nil {
		return nil, &FontError{Kind: FontErrorNoFontsAvailable, Err: err}
	}
	if len(handles) == 0 {
		return nil, &FontError{Kind: FontErrorNoFontsAvailable}
	}

	h := handles[s.intN(len(handles))]
	slogger().Debug("font picked", "handle", h.String(), "candidates", len(handles))

	src, err := h.Load(s.opts...)
	if err != nil {
		return nil, &FontError{Kind: FontErrorLoadFailed, Handle: h, Err: err}
	}
	return src, nil
}

func (s *FontSelector) intN(n int) int {
	if s.rng == nil {
		return rand.IntN(n) //nolint:gosec // font choice is not security sensitive
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}
