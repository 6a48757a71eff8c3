package text

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/flopp/go-findfont"
)

// SystemProvider enumerates the fonts installed on the host, using the
// platform font directories known to go-findfont.
//
// The directory walk happens once; later List calls reuse the result.
type SystemProvider struct {
	once    sync.Once
	handles []Handle

	// list is replaced in tests.
	list func() []string
}

// NewSystemProvider returns a provider for the host fonts.
func NewSystemProvider() *SystemProvider {
	return &SystemProvider{list: findfont.List}
}

// List implements FontProvider.
func (p *SystemProvider) List() ([]Handle, error) {
	p.once.Do(func() {
		list := p.list
		if list == nil {
			list = findfont.List
		}
		p.handles = pathHandles(list())
		slogger().Debug("system fonts enumerated", "count", len(p.handles))
	})

	out := make([]Handle, len(p.handles))
	copy(out, p.handles)
	return out, nil
}

// GlobProvider enumerates font files matching doublestar patterns,
// for example "~/fonts/**/*.ttf" or "/usr/share/fonts/**/*.{ttf,otf}".
type GlobProvider struct {
	Patterns []string
}

// NewGlobProvider returns a provider for the given patterns.
func NewGlobProvider(patterns ...string) *GlobProvider {
	return &GlobProvider{Patterns: patterns}
}

// List implements FontProvider.
// Files are returned sorted and deduplicated; non-font files are skipped.
func (p *GlobProvider) List() ([]Handle, error) {
	var paths []string
	for _, pattern := range p.Patterns {
		matches, err := doublestar.FilepathGlob(expandHome(pattern), doublestar.WithFilesOnly())
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	slices.Sort(paths)
	paths = slices.Compact(paths)
	return pathHandles(paths), nil
}

// pathHandles converts font file paths into handles, skipping non-font files.
func pathHandles(paths []string) []Handle {
	handles := make([]Handle, 0, len(paths))
	for _, path := range paths {
		if !isFontFile(path) {
			continue
		}
		handles = append(handles, Handle{
			Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
			Path: path,
		})
	}
	return handles
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(pattern string) string {
	if !strings.HasPrefix(pattern, "~/") {
		return pattern
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return pattern
	}
	return filepath.Join(home, pattern[2:])
}
