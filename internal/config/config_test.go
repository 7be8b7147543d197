package config

import (
	"os"
	"path/filepath"
	"testing"
)

func testConfigPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.json")
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	m, err := NewConfigManager(testConfigPath(t))
	if err != nil {
		t.Fatalf("NewConfigManager() error = %v", err)
	}

	if err := m.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := m.Get()
	if cfg.MinZoom != DefaultMinZoom || cfg.MaxZoom != DefaultMaxZoom {
		t.Errorf("zoom bounds = (%v, %v), want defaults (%v, %v)",
			cfg.MinZoom, cfg.MaxZoom, DefaultMinZoom, DefaultMaxZoom)
	}
	if cfg.SupersampleFactor != DefaultSupersampleFactor {
		t.Errorf("SupersampleFactor = %d, want %d", cfg.SupersampleFactor, DefaultSupersampleFactor)
	}
	if cfg.ResizeThreshold != DefaultResizeThreshold {
		t.Errorf("ResizeThreshold = %d, want %d", cfg.ResizeThreshold, DefaultResizeThreshold)
	}
}

func TestSaveAndReload(t *testing.T) {
	path := testConfigPath(t)
	m, err := NewConfigManager(path)
	if err != nil {
		t.Fatalf("NewConfigManager() error = %v", err)
	}

	cfg := m.Get()
	cfg.LastFile = "/books/atlas.pdf"
	cfg.FlipLookahead = 8
	if err := m.Update(cfg); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	m2, err := NewConfigManager(path)
	if err != nil {
		t.Fatalf("NewConfigManager() error = %v", err)
	}
	if err := m2.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	got := m2.Get()
	if got.LastFile != "/books/atlas.pdf" {
		t.Errorf("LastFile = %q, want %q", got.LastFile, "/books/atlas.pdf")
	}
	if got.FlipLookahead != 8 {
		t.Errorf("FlipLookahead = %d, want 8", got.FlipLookahead)
	}
}

func TestLoadInvalidJSONFallsBackToDefaults(t *testing.T) {
	path := testConfigPath(t)
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := NewConfigManager(path)
	if err != nil {
		t.Fatalf("NewConfigManager() error = %v", err)
	}
	if err := m.Load(); err != nil {
		t.Fatalf("Load() error = %v, want fall back to defaults", err)
	}
	if m.Get().MinZoom != DefaultMinZoom {
		t.Error("defaults not applied after invalid config file")
	}
}

func TestLoadPartialConfigFillsDefaults(t *testing.T) {
	path := testConfigPath(t)
	if err := os.WriteFile(path, []byte(`{"min_zoom": 0.25, "last_file": "a.pdf"}`), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := NewConfigManager(path)
	if err != nil {
		t.Fatalf("NewConfigManager() error = %v", err)
	}
	if err := m.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := m.Get()
	if cfg.MinZoom != 0.25 {
		t.Errorf("MinZoom = %v, want the configured 0.25", cfg.MinZoom)
	}
	if cfg.LastFile != "a.pdf" {
		t.Errorf("LastFile = %q, want %q", cfg.LastFile, "a.pdf")
	}
	// Everything absent from the file falls back to defaults.
	if cfg.ZoomStep != DefaultZoomStep || cfg.RenderConcurrency != DefaultRenderConcurrency {
		t.Error("absent fields were not filled with defaults")
	}
}
