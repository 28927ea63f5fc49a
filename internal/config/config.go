// Package config loads editor options from a TOML file with environment
// variable overrides, and supports live reload for interactive hosts.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	toml "github.com/pelletier/go-toml/v2"
)

// Errors returned by configuration loading.
var (
	// ErrInvalidGlyphWidth indicates a non-positive glyph width.
	ErrInvalidGlyphWidth = errors.New("glyph width must be positive")
)

// Config holds the editor options.
type Config struct {
	Render RenderConfig `toml:"render"`
	Input  InputConfig  `toml:"input"`
	A11y   A11yConfig   `toml:"a11y"`
}

// RenderConfig controls layout geometry.
type RenderConfig struct {
	// GlyphWidth is the pixel width of one character cell.
	GlyphWidth float64 `toml:"glyphWidth"`
	// OriginX is the pixel x coordinate of the field's left edge.
	OriginX float64 `toml:"originX"`
}

// InputConfig controls keystroke handling.
type InputConfig struct {
	// DragSelect enables mouse drag selection.
	DragSelect bool `toml:"dragSelect"`
}

// A11yConfig controls accessibility announcements.
type A11yConfig struct {
	// Announce enables spoken-feedback announcements.
	Announce bool `toml:"announce"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Render: RenderConfig{GlyphWidth: 8, OriginX: 0},
		Input:  InputConfig{DragSelect: true},
		A11y:   A11yConfig{Announce: true},
	}
}

// Load reads path over the defaults, then applies environment overrides.
// A missing file is not an error; the defaults stand.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overrides fields from MATHTEXT_* environment variables.
// Empty values are valid values, not unset.
func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv("MATHTEXT_GLYPH_WIDTH"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: MATHTEXT_GLYPH_WIDTH: %w", err)
		}
		c.Render.GlyphWidth = f
	}
	if v, ok := os.LookupEnv("MATHTEXT_ORIGIN_X"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: MATHTEXT_ORIGIN_X: %w", err)
		}
		c.Render.OriginX = f
	}
	if v, ok := os.LookupEnv("MATHTEXT_ANNOUNCE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: MATHTEXT_ANNOUNCE: %w", err)
		}
		c.A11y.Announce = b
	}
	return nil
}

// Validate checks invariants the rest of the editor relies on.
func (c *Config) Validate() error {
	if c.Render.GlyphWidth <= 0 {
		return fmt.Errorf("config: %w (got %v)", ErrInvalidGlyphWidth, c.Render.GlyphWidth)
	}
	return nil
}
