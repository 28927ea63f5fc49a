package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Render.GlyphWidth != 8 {
		t.Errorf("GlyphWidth = %v, want 8", cfg.Render.GlyphWidth)
	}
	if cfg.Render.OriginX != 0 {
		t.Errorf("OriginX = %v, want 0", cfg.Render.OriginX)
	}
	if !cfg.Input.DragSelect {
		t.Error("expected drag select enabled by default")
	}
	if !cfg.A11y.Announce {
		t.Error("expected announcements enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := []byte("[render]\nglyphWidth = 10.5\noriginX = 4\n\n[input]\ndragSelect = false\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Render.GlyphWidth != 10.5 {
		t.Errorf("GlyphWidth = %v, want 10.5", cfg.Render.GlyphWidth)
	}
	if cfg.Render.OriginX != 4 {
		t.Errorf("OriginX = %v, want 4", cfg.Render.OriginX)
	}
	if cfg.Input.DragSelect {
		t.Error("expected drag select disabled")
	}
	// unset sections keep defaults
	if !cfg.A11y.Announce {
		t.Error("expected announcements still enabled")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MATHTEXT_GLYPH_WIDTH", "12")
	t.Setenv("MATHTEXT_ORIGIN_X", "2.5")
	t.Setenv("MATHTEXT_ANNOUNCE", "false")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Render.GlyphWidth != 12 {
		t.Errorf("GlyphWidth = %v, want 12", cfg.Render.GlyphWidth)
	}
	if cfg.Render.OriginX != 2.5 {
		t.Errorf("OriginX = %v, want 2.5", cfg.Render.OriginX)
	}
	if cfg.A11y.Announce {
		t.Error("expected announcements disabled via env")
	}
}

func TestLoad_InvalidGlyphWidth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[render]\nglyphWidth = -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.Is(err, ErrInvalidGlyphWidth) {
		t.Errorf("err = %v, want ErrInvalidGlyphWidth", err)
	}
}

func TestLoad_MalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("render = {"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected a parse error")
	}
}

func TestWatch_ReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[render]\nglyphWidth = 8\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := make(chan Config, 1)
	w, err := Watch(path, func(cfg Config) {
		select {
		case got <- cfg:
		default:
		}
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("[render]\nglyphWidth = 16\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-got:
		if cfg.Render.GlyphWidth != 16 {
			t.Errorf("GlyphWidth = %v, want 16", cfg.Render.GlyphWidth)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatch_DropsInvalidReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[render]\nglyphWidth = 8\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := make(chan Config, 4)
	w, err := Watch(path, func(cfg Config) { got <- cfg })
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	// invalid content must not reach the callback
	if err := os.WriteFile(path, []byte("[render]\nglyphWidth = -3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(500 * time.Millisecond)

	if err := os.WriteFile(path, []byte("[render]\nglyphWidth = 20\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-got:
		if cfg.Render.GlyphWidth != 20 {
			t.Errorf("GlyphWidth = %v, want 20", cfg.Render.GlyphWidth)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}
