package text

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/gogpu/backdrop/internal/atomicfile"
)

// maxRemoteFontSize bounds a single font download.
const maxRemoteFontSize = 32 << 20

// RemoteProvider offers fonts hosted at URLs. Listing is free: a font is
// downloaded only when its handle is loaded, and then kept in CacheDir so
// the next load reads it from disk.
type RemoteProvider struct {
	URLs []string

	// CacheDir holds downloaded fonts. Empty disables the disk cache.
	CacheDir string

	// Client performs the downloads with retries.
	Client *retryablehttp.Client

	mu sync.Mutex // serialises cache writes
}

// NewRemoteProvider returns a provider for urls, caching in cacheDir.
func NewRemoteProvider(urls []string, cacheDir string) *RemoteProvider {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.HTTPClient.Timeout = 30 * time.Second
	client.Logger = nil // suppress retryablehttp's default logging

	return &RemoteProvider{
		URLs:     urls,
		CacheDir: cacheDir,
		Client:   client,
	}
}

// List implements FontProvider.
func (p *RemoteProvider) List() ([]Handle, error) {
	handles := make([]Handle, 0, len(p.URLs))
	for _, u := range p.URLs {
		handles = append(handles, Handle{
			Name:  path.Base(u),
			URL:   u,
			fetch: p.fetch,
		})
	}
	return handles, nil
}

// fetch returns the font at url, from the disk cache when present.
func (p *RemoteProvider) fetch(url string) ([]byte, error) {
	cacheFile := p.cachePath(url)
	if cacheFile != "" {
		if data, err := os.ReadFile(cacheFile); err == nil && len(data) > 0 {
			slogger().Debug("remote font cache hit", "url", url, "file", cacheFile)
			return data, nil
		}
	}

	data, err := p.download(url)
	if err != nil {
		return nil, err
	}

	if cacheFile != "" {
		p.mu.Lock()
		defer p.mu.Unlock()
		if err := os.MkdirAll(p.CacheDir, 0o755); err != nil {
			slogger().Warn("font cache dir", "dir", p.CacheDir, "err", err)
		} else if err := atomicfile.Write(cacheFile, data, 0o644); err != nil {
			// Non-fatal: the font is usable without the cache.
			slogger().Warn("font cache write", "file", cacheFile, "err", err)
		}
	}

	return data, nil
}

func (p *RemoteProvider) download(url string) ([]byte, error) {
	client := p.Client
	if client == nil {
		client = retryablehttp.NewClient()
		client.Logger = nil
	}

	slogger().Info("downloading font", "url", url)
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("text: download font: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("text: download font %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteFontSize))
	if err != nil {
		return nil, fmt.Errorf("text: read font body: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	return data, nil
}

// cachePath names the cache file after a hash of url, keeping its extension.
func (p *RemoteProvider) cachePath(url string) string {
	if p.CacheDir == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(url))
	ext := strings.ToLower(path.Ext(strings.SplitN(url, "?", 2)[0]))
	if !fontExtensions[ext] {
		ext = ""
	}
	return filepath.Join(p.CacheDir, hex.EncodeToString(sum[:16])+ext)
}
