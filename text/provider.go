package text

import (
	"errors"
	"fmt"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
)

// FontProvider enumerates the fonts available for selection.
//
// List returns one Handle per font. An empty list with a nil error means
// no fonts are available. Implementations used by a FontSelector from
// several goroutines must be safe for concurrent use.
type FontProvider interface {
	List() ([]Handle, error)
}

// MemoryProvider is a FontProvider over a fixed set of handles.
// It is the deterministic provider used in tests.
type MemoryProvider struct {
	Handles []Handle
}

// NewMemoryProvider returns a provider for in-memory fonts.
// Each font is given a generated name "font-N".
func NewMemoryProvider(fonts ...[]byte) *MemoryProvider {
	p := &MemoryProvider{Handles: make([]Handle, 0, len(fonts))}
	for i, data := range fonts {
		p.Handles = append(p.Handles, Handle{
			Name: fmt.Sprintf("font-%d", i),
			Data: data,
		})
	}
	return p
}

// List implements FontProvider.
func (p *MemoryProvider) List() ([]Handle, error) {
	out := make([]Handle, len(p.Handles))
	copy(out, p.Handles)
	return out, nil
}

// EmbeddedProvider returns a provider for the Go font family bundled
// with golang.org/x/image. It never depends on the host.
func EmbeddedProvider() *MemoryProvider {
	return &MemoryProvider{Handles: []Handle{
		{Name: "Go Regular", Data: goregular.TTF},
		{Name: "Go Bold", Data: gobold.TTF},
		{Name: "Go Italic", Data: goitalic.TTF},
		{Name: "Go Bold Italic", Data: gobolditalic.TTF},
		{Name: "Go Medium", Data: gomedium.TTF},
		{Name: "Go Mono", Data: gomono.TTF},
		{Name: "Go Smallcaps", Data: gosmallcaps.TTF},
	}}
}

// MultiProvider concatenates the handles of several providers, in order.
// A provider that fails is skipped as long as another one succeeds.
type MultiProvider struct {
	providers []FontProvider
}

// NewMultiProvider combines providers. Nil providers are ignored.
func NewMultiProvider(providers ...FontProvider) *MultiProvider {
	m := &MultiProvider{}
	for _, p := range providers {
		if p != nil {
			m.providers = append(m.providers, p)
		}
	}
	return m
}

// List implements FontProvider.
// It returns an error only if every provider failed.
func (m *MultiProvider) List() ([]Handle, error) {
	var (
		out  []Handle
		errs []error
	)
	for _, p := range m.providers {
		handles, err := p.List()
		if err != nil {
			slogger().Warn("font provider failed", "provider", fmt.Sprintf("%T", p), "err", err)
			errs = append(errs, err)
			continue
		}
		out = append(out, handles...)
	}
	if len(out) == 0 && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}
