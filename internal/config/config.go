// Package config loads the optional backdrop TOML configuration file.
//
// The file lives at $XDG_CONFIG_HOME/backdrop/config.toml (or
// ~/.config/backdrop/config.toml) unless --config names another path.
// Every key is optional; missing keys keep their defaults and command line
// flags override both.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	charmlog "github.com/charmbracelet/log"

	"github.com/gogpu/backdrop"
	"github.com/gogpu/backdrop/internal/atomicfile"
	"github.com/gogpu/backdrop/text"
)

const (
	appName  = "backdrop"
	fileName = "config.toml"
)

// Config is the top-level configuration.
type Config struct {
	Seed   SeedConfig   `toml:"seed"`
	Fonts  FontsConfig  `toml:"fonts"`
	Render RenderConfig `toml:"render"`
	Log    LogConfig    `toml:"log"`
}

// SeedConfig holds defaults for the seed command.
type SeedConfig struct {
	// Width and Height are the image size in pixels.
	Width  int `toml:"width"`
	Height int `toml:"height"`
	// Background is the fill color, "#rrggbb".
	Background backdrop.Color `toml:"background"`
	// Text is drawn centered on the image.
	Text string `toml:"text"`
	// Output is the image path; its extension picks the format.
	Output string `toml:"output"`
}

// FontsConfig selects where fonts come from.
type FontsConfig struct {
	// System enumerates installed fonts.
	System bool `toml:"system"`
	// Embedded adds the Go font family compiled into the binary.
	Embedded bool `toml:"embedded"`
	// Include lists doublestar glob patterns of extra font files.
	Include []string `toml:"include"`
	// URLs lists remote font files, downloaded on first use.
	URLs []string `toml:"urls"`
	// CacheDir stores downloaded fonts. Empty disables the cache.
	CacheDir string `toml:"cache_dir"`
	// Parser names the font parser backend ("ximage" or "gotext").
	Parser string `toml:"parser"`
}

// RenderConfig tunes rasterization and compositing.
type RenderConfig struct {
	// Hinting is "none", "vertical" or "full".
	Hinting string `toml:"hinting"`
	// Antialias smooths glyph edges.
	Antialias bool `toml:"antialias"`
	// Blend is the compositing mode name, e.g. "over" or "difference".
	Blend string `toml:"blend"`
	// MinSize is the smallest font size in pixels per em.
	MinSize float64 `toml:"min_size"`
	// Margin is the fraction of the image the text may span.
	Margin float64 `toml:"margin"`
	// RandomSeed makes runs reproducible when non-zero.
	RandomSeed uint64 `toml:"random_seed"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is the minimum level (debug, info, warn, error).
	Level string `toml:"level"`
	// File, when set, receives log output instead of stderr.
	File string `toml:"file"`
	// MaxSizeMB is the log file size that triggers rotation.
	MaxSizeMB int `toml:"max_size_mb"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Seed: SeedConfig{
			Width:      1920,
			Height:     1080,
			Background: backdrop.White,
			Text:       backdrop.DefaultText,
			Output:     "backdrop.png",
		},
		Fonts: FontsConfig{
			System: true,
			Parser: text.ParserXImage,
		},
		Render: RenderConfig{
			Hinting:   "full",
			Antialias: true,
			Blend:     "over",
			MinSize:   backdrop.DefaultMinSize,
			Margin:    backdrop.DefaultMargin,
		},
		Log: LogConfig{
			Level:     "info",
			MaxSizeMB: 10,
		},
	}
}

// Dir returns the configuration directory following the XDG convention.
func Dir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// DefaultPath returns the path of the configuration file.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Load reads the file at path on top of DefaultConfig. A missing file is
// not an error when optional is true. Unknown keys are rejected so typos do
// not pass silently.
func Load(path string, optional bool) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("parse config: unknown keys %s", strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to disk as TOML using atomic file write.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return atomicfile.Write(path, buf.Bytes(), 0o644)
}

// Validate checks that all configuration values are within acceptable ranges.
func (c *Config) Validate() error {
	if c.Seed.Width <= 0 || c.Seed.Height <= 0 {
		return fmt.Errorf("seed size must be positive, got %dx%d", c.Seed.Width, c.Seed.Height)
	}

	if _, ok := text.ParseHinting(c.Render.Hinting); !ok {
		return fmt.Errorf("invalid render.hinting %q: must be none, vertical, or full", c.Render.Hinting)
	}

	if _, err := backdrop.ParseBlendMode(c.Render.Blend); err != nil {
		return fmt.Errorf("invalid render.blend: %w", err)
	}

	if c.Render.MinSize <= 0 {
		return fmt.Errorf("render.min_size must be > 0, got %v", c.Render.MinSize)
	}

	if c.Render.Margin <= 0 || c.Render.Margin > 1 {
		return fmt.Errorf("render.margin must be in (0, 1], got %v", c.Render.Margin)
	}

	if c.Fonts.Parser != "" && !text.HasParser(c.Fonts.Parser) {
		return fmt.Errorf("invalid fonts.parser %q", c.Fonts.Parser)
	}

	if _, err := charmlog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log.level %q: must be debug, info, warn, or error", c.Log.Level)
	}

	if c.Log.MaxSizeMB <= 0 {
		return fmt.Errorf("log.max_size_mb must be > 0, got %d", c.Log.MaxSizeMB)
	}

	return nil
}

// FontProvider builds the provider described by the [fonts] section.
// Sources are tried in order: system, include globs, remote URLs, embedded.
// With no source enabled, the embedded fonts are used.
func (c *Config) FontProvider() text.FontProvider {
	var providers []text.FontProvider
	if c.Fonts.System {
		providers = append(providers, text.NewSystemProvider())
	}
	if len(c.Fonts.Include) > 0 {
		providers = append(providers, text.NewGlobProvider(c.Fonts.Include...))
	}
	if len(c.Fonts.URLs) > 0 {
		providers = append(providers, text.NewRemoteProvider(c.Fonts.URLs, c.Fonts.CacheDir))
	}
	if c.Fonts.Embedded || len(providers) == 0 {
		providers = append(providers, text.EmbeddedProvider())
	}
	if len(providers) == 1 {
		return providers[0]
	}
	return text.NewMultiProvider(providers...)
}

// ComposerOptions translates the [render] and [fonts] sections into
// composer options. The config must be valid.
func (c *Config) ComposerOptions() []backdrop.Option {
	hinting, _ := text.ParseHinting(c.Render.Hinting)
	mode, _ := backdrop.ParseBlendMode(c.Render.Blend)

	opts := []backdrop.Option{
		backdrop.WithText(c.Seed.Text),
		backdrop.WithHinting(hinting),
		backdrop.WithAntialias(c.Render.Antialias),
		backdrop.WithBlendMode(mode),
		backdrop.WithMinSize(c.Render.MinSize),
		backdrop.WithMargin(c.Render.Margin),
	}
	if c.Fonts.Parser != "" {
		opts = append(opts, backdrop.WithSourceOptions(text.WithParser(c.Fonts.Parser)))
	}
	if c.Render.RandomSeed != 0 {
		opts = append(opts, backdrop.WithSeed(c.Render.RandomSeed))
	}
	return opts
}
