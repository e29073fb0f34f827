package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rook-computer/hdldisplay/internal/glyph"
	"github.com/rook-computer/hdldisplay/internal/hdl"
)

func envFrom(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestConfigFromEnvDefaults(t *testing.T) {
	cfg, err := ConfigFromEnv(envFrom(nil))
	if err != nil {
		t.Fatal(err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestConfigFromEnvOverrides(t *testing.T) {
	cfg, err := ConfigFromEnv(envFrom(map[string]string{
		EnvWidth:  "64",
		EnvHeight: "32",
		EnvFPS:    "10",
		EnvFBDev:  "/dev/fb1",
		EnvLayout: "/etc/hdl/main.bin",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 64 || cfg.Height != 32 || cfg.FPS != 10 || cfg.FBDev != "/dev/fb1" || cfg.LayoutPath != "/etc/hdl/main.bin" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestConfigFromEnvErrors(t *testing.T) {
	tests := []struct {
		name, value string
	}{
		{EnvWidth, "0"},
		{EnvWidth, "wide"},
		{EnvHeight, "70000"},
		{EnvFPS, "0"},
		{EnvFPS, "61"},
	}
	for _, tt := range tests {
		_, err := ConfigFromEnv(envFrom(map[string]string{tt.name: tt.value}))
		if err == nil || !strings.Contains(err.Error(), tt.name) {
			t.Errorf("%s=%q: err = %v, want error naming the variable", tt.name, tt.value, err)
		}
	}
}

func TestLoadLayout(t *testing.T) {
	data, err := Config{}.LoadLayout()
	if err != nil || string(data) != DefaultLayout {
		t.Fatalf("default layout = %q, %v", data, err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "layout.bin")
	if err := os.WriteFile(path, []byte("sleep"), 0o644); err != nil {
		t.Fatal(err)
	}
	data, err = Config{LayoutPath: path}.LoadLayout()
	if err != nil || string(data) != "sleep" {
		t.Errorf("file layout = %q, %v", data, err)
	}

	big := filepath.Join(dir, "big.bin")
	if err := os.WriteFile(big, make([]byte, hdl.MaxLayoutSize+1), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := (Config{LayoutPath: big}).LoadLayout(); !errors.Is(err, hdl.ErrPayloadTooLarge) {
		t.Errorf("big layout err = %v", err)
	}
	if _, err := (Config{LayoutPath: filepath.Join(dir, "missing")}).LoadLayout(); err == nil {
		t.Error("missing layout accepted")
	}
}

func TestLoadGlyphs(t *testing.T) {
	table, err := Config{}.LoadGlyphs()
	if err != nil || table != glyph.Default {
		t.Fatalf("default glyphs = %p, %v", table, err)
	}

	dir := t.TempDir()
	raw := filepath.Join(dir, "font.bin")
	var buf bytes.Buffer
	if _, err := glyph.Default.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(raw, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	table, err = Config{FontPath: raw}.LoadGlyphs()
	if err != nil || *table != *glyph.Default {
		t.Errorf("raw table load = %v", err)
	}

	short := filepath.Join(dir, "short.bin")
	if err := os.WriteFile(short, []byte{1, 2, 3}, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := (Config{FontPath: short}).LoadGlyphs(); !errors.Is(err, glyph.ErrShortTable) {
		t.Errorf("short table err = %v", err)
	}

	bad := filepath.Join(dir, "bad.ttf")
	if err := os.WriteFile(bad, []byte("not a font"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := (Config{FontPath: bad}).LoadGlyphs(); err == nil {
		t.Error("garbage ttf accepted")
	}
}
