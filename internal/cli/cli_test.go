package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	charmlog "github.com/charmbracelet/log"

	"github.com/gogpu/backdrop"
	"github.com/gogpu/backdrop/internal/config"
	imageio "github.com/gogpu/backdrop/internal/image"
	"github.com/gogpu/backdrop/text"
)

// testConfig writes a config that only uses the embedded fonts.
func testConfig(t *testing.T, extra string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[fonts]\nsystem = false\nembedded = true\n\n[render]\nrandom_seed = 5\n" + extra
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	var stdout, stderr bytes.Buffer
	err := Execute(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestSeedCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "bg.png")
	stdout, _, err := run(t, "seed", "-c", testConfig(t, ""), "-W", "240", "-H", "80", "-b", "#1e1e2e", "-o", out)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	img, err := imageio.Load(out)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 240 || b.Dy() != 80 {
		t.Errorf("bounds = %v", b)
	}
	if got := backdrop.FromColor(img.At(0, 0)); got != backdrop.MustParseColor("#1e1e2e") {
		t.Errorf("corner = %v", got)
	}

	for _, want := range []string{"seeded", "240x80", out, "#e1e1d1", "#1e1e2e"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("summary missing %q:\n%s", want, stdout)
		}
	}
}

func TestSeedCommandUsesConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "from-config.bmp")
	cfg := testConfig(t, "\n[seed]\nwidth = 64\nheight = 32\nbackground = \"#000000\"\noutput = \""+filepath.ToSlash(out)+"\"\n")

	if _, _, err := run(t, "seed", "--config", cfg); err != nil {
		t.Fatalf("seed: %v", err)
	}

	img, err := imageio.Load(out)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 32 {
		t.Errorf("bounds = %v, want config size", b)
	}
}

func TestSeedCommandErrors(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, "")

	tests := []struct {
		name   string
		args   []string
		target error
		want   string
	}{
		{"bad color", []string{"seed", "-c", cfg, "-b", "#fff", "-o", filepath.Join(dir, "a.png")}, nil, "invalid color"},
		{"bad size", []string{"seed", "-c", cfg, "-W", "0", "-o", filepath.Join(dir, "b.png")}, backdrop.ErrInvalidSize, ""},
		{"missing glyph", []string{"seed", "-c", cfg, "-t", "☃", "-o", filepath.Join(dir, "c.png")}, text.ErrMissingGlyph, ""},
		{"unsupported output", []string{"seed", "-c", cfg, "-o", filepath.Join(dir, "d.gif")}, imageio.ErrUnsupportedFormat, ""},
		{"positional args", []string{"seed", "-c", cfg, "extra"}, nil, "unknown command"},
		{"missing explicit config", []string{"seed", "-c", filepath.Join(dir, "nope.toml")}, os.ErrNotExist, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("error = %v, want %v", err, tt.target)
			}
			if tt.want != "" && !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want containing %q", err, tt.want)
			}
		})
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("failed runs wrote files: %v", entries)
	}
}

func TestUpdateCommand(t *testing.T) {
	cfg := testConfig(t, "")
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.tiff")

	if _, _, err := run(t, "seed", "-c", cfg, "-W", "50", "-H", "20", "-o", in); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := run(t, "update", "-c", cfg, "-i", in, "-o", out)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !strings.Contains(stdout, "updated") || !strings.Contains(stdout, "#ffffff") {
		t.Errorf("summary = %q", stdout)
	}

	a, _ := imageio.Load(in)
	b, err := imageio.Load(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("update changed pixels")
	}

	if _, _, err := run(t, "update", "-c", cfg, "positional"); err == nil {
		t.Error("update should reject positional arguments")
	}
	if _, _, err := run(t, "update", "-c", cfg, "-i", filepath.Join(dir, "missing.png")); err == nil {
		t.Error("update of missing file should fail")
	}
}

func TestWatchCommand(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	out := filepath.Join(dir, "watched.png")
	cfgPath := filepath.Join(dir, "config.toml")

	write := func(width int) {
		t.Helper()
		content := fmt.Sprintf("[fonts]\nsystem = false\nembedded = true\n\n[seed]\nwidth = %d\nheight = 20\noutput = %q\n",
			width, filepath.ToSlash(out))
		if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	waitWidth := func(want int) {
		t.Helper()
		deadline := time.Now().Add(10 * time.Second)
		for time.Now().Before(deadline) {
			if img, err := imageio.Load(out); err == nil && img.Bounds().Dx() == want {
				return
			}
			time.Sleep(20 * time.Millisecond)
		}
		t.Fatalf("output never reached width %d", want)
	}

	write(40)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- Execute(ctx, []string{"watch", "-c", cfgPath, "--poll", "20ms"}, io.Discard, io.Discard)
	}()

	waitWidth(40)
	write(120)
	waitWidth(120)

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("watch returned %v after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatchReloadKeepsPreviousConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[seed]\nwidth = 77\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	a := &app{cfgFile: path, logger: newLogger(&logs, charmlog.DebugLevel)}

	cfg, ok := a.reload()
	if !ok || cfg.Seed.Width != 77 {
		t.Fatalf("reload = %+v, %v; want width 77", cfg, ok)
	}

	tests := []struct {
		name  string
		setup func() error
	}{
		{"deleted", func() error { return os.Remove(path) }},
		{"invalid", func() error { return os.WriteFile(path, []byte("[seed]\nwidth = -1\n"), 0o644) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.setup(); err != nil {
				t.Fatal(err)
			}
			if cfg, ok := a.reload(); ok {
				t.Errorf("reload succeeded with %+v, want failure", cfg)
			}
		})
	}
	if !strings.Contains(logs.String(), "config reload failed") {
		t.Errorf("logs = %q", logs.String())
	}
}

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	stdout, _, err := run(t, "init", "-c", path)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(stdout, path) {
		t.Errorf("stdout = %q, want path", stdout)
	}

	cfg, err := config.Load(path, false)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if want := config.DefaultConfig(); cfg.Seed != want.Seed || cfg.Render != want.Render {
		t.Errorf("loaded %+v, want defaults %+v", cfg, want)
	}

	if _, _, err := run(t, "init", "-c", path); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("second init = %v, want already exists", err)
	}

	if err := os.WriteFile(path, []byte("not toml ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := run(t, "init", "-c", path, "--force"); err != nil {
		t.Fatalf("init --force over a broken file: %v", err)
	}
	if _, err := config.Load(path, false); err != nil {
		t.Errorf("forced config does not load: %v", err)
	}
}

func TestVerboseLogsToStderr(t *testing.T) {
	out := filepath.Join(t.TempDir(), "v.png")
	_, stderr, err := run(t, "-v", "seed", "-c", testConfig(t, ""), "-W", "80", "-H", "30", "-o", out)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"config loaded", "font picked", "seeded image"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, stderr)
		}
	}
}

func TestLogFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "backdrop.log")
	cfg := testConfig(t, "\n[log]\nlevel = \"debug\"\nfile = \""+filepath.ToSlash(logPath)+"\"\n")

	_, stderr, err := run(t, "seed", "-c", cfg, "-W", "40", "-H", "20", "-o", filepath.Join(dir, "x.png"))
	if err != nil {
		t.Fatal(err)
	}
	if stderr != "" {
		t.Errorf("stderr = %q, want logs in file", stderr)
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "seeded image") {
		t.Errorf("log file = %s", data)
	}
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   charmlog.Level
		logFunc func(*charmlog.Logger)
		wantLog bool
	}{
		{"info at info level", charmlog.InfoLevel, func(l *charmlog.Logger) { l.Info("test") }, true},
		{"debug at info level", charmlog.InfoLevel, func(l *charmlog.Logger) { l.Debug("test") }, false},
		{"debug at debug level", charmlog.DebugLevel, func(l *charmlog.Logger) { l.Debug("test") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}
