package app

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rook-computer/hdldisplay/internal/glyph"
	"github.com/rook-computer/hdldisplay/internal/hdl"
)

const (
	EnvWidth    = "HDL_WIDTH"
	EnvHeight   = "HDL_HEIGHT"
	EnvLayout   = "HDL_LAYOUT"
	EnvFont     = "HDL_FONT"
	EnvFPS      = "HDL_FPS"
	EnvFBDev    = "HDL_FBDEV"
	EnvStdioLog = "HDL_STDIO_LOG"
	EnvPairURL  = "HDL_PAIR_URL"
)

// DefaultLayout is built when no layout file is configured.
const DefaultLayout = "status"

// fontSize is the em size a TrueType font is rasterised at before it is
// reduced to the 5x8 glyph cell.
const fontSize = 8

type Config struct {
	Width      uint16
	Height     uint16
	LayoutPath string
	FontPath   string
	FPS        int
	FBDev      string
	StdioLog   string
	PairURL    string
}

func DefaultConfig() Config {
	return Config{
		Width:   80,
		Height:  128,
		FPS:     2,
		FBDev:   "/dev/fb0",
		PairURL: "hdl://pair",
	}
}

// ConfigFromEnv overlays the HDL_* variables read through getenv onto the
// defaults.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()
	var err error
	if cfg.Width, err = envDimension(getenv, EnvWidth, cfg.Width); err != nil {
		return Config{}, err
	}
	if cfg.Height, err = envDimension(getenv, EnvHeight, cfg.Height); err != nil {
		return Config{}, err
	}
	if raw := getenv(EnvFPS); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 60 {
			return Config{}, fmt.Errorf("%s must be 1..60 (got %q)", EnvFPS, raw)
		}
		cfg.FPS = n
	}
	if v := getenv(EnvLayout); v != "" {
		cfg.LayoutPath = v
	}
	if v := getenv(EnvFont); v != "" {
		cfg.FontPath = v
	}
	if v := getenv(EnvFBDev); v != "" {
		cfg.FBDev = v
	}
	if v := getenv(EnvStdioLog); v != "" {
		cfg.StdioLog = v
	}
	if v := getenv(EnvPairURL); v != "" {
		cfg.PairURL = v
	}
	return cfg, nil
}

func envDimension(getenv func(string) string, name string, def uint16) (uint16, error) {
	raw := getenv(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.ParseUint(raw, 10, 16)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("%s must be 1..65535 (got %q)", name, raw)
	}
	return uint16(n), nil
}

// LoadLayout reads the compiled layout file, or returns DefaultLayout.
func (cfg Config) LoadLayout() ([]byte, error) {
	if cfg.LayoutPath == "" {
		return []byte(DefaultLayout), nil
	}
	data, err := os.ReadFile(cfg.LayoutPath)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	if len(data) > hdl.MaxLayoutSize {
		return nil, fmt.Errorf("layout %s: %w", cfg.LayoutPath, hdl.ErrPayloadTooLarge)
	}
	return data, nil
}

// LoadGlyphs returns the glyph table. TrueType and OpenType fonts are
// rasterised; any other file is read as a raw 2048 byte table. No font
// selects the built-in table.
func (cfg Config) LoadGlyphs() (*glyph.Table, error) {
	if cfg.FontPath == "" {
		return glyph.Default, nil
	}
	data, err := os.ReadFile(cfg.FontPath)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	switch strings.ToLower(filepath.Ext(cfg.FontPath)) {
	case ".ttf", ".otf":
		table, err := glyph.FromTrueType(data, fontSize)
		if err != nil {
			return nil, fmt.Errorf("font %s: %w", cfg.FontPath, err)
		}
		return table, nil
	default:
		table, err := glyph.Load(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("glyph table %s: %w", cfg.FontPath, err)
		}
		return table, nil
	}
}
