package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.yaml")
	data := "entity: badge\nframes: 0\nticks: 40\nmode: both\ncolumns: 5\nformat: tiff\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Entity != EntityBadge || cfg.Mode != ModeBoth || cfg.Columns != 5 || cfg.Format != "tiff" {
		t.Errorf("Unexpected config %+v", cfg)
	}
	// Workers по умолчанию 1: флаг -workers показывает это же значение.
	if cfg.Width != 64 || cfg.OutputDir != "output" || cfg.Workers != 1 {
		t.Errorf("Defaults lost: %+v", cfg)
	}
	if cfg.FrameBudget() != 40 {
		t.Errorf("Expected budget 40, got %d", cfg.FrameBudget())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.yaml")
	os.WriteFile(path, []byte("entiti: spinner\n"), 0644)

	if _, err := Load(path); err == nil {
		t.Error("Expected error for unknown key")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"bad entity", func(c *Config) { c.Entity = "cube" }, true},
		{"bad mode", func(c *Config) { c.Mode = "gif" }, true},
		{"zero width", func(c *Config) { c.Width = 0 }, true},
		{"zero dpi", func(c *Config) { c.DPI = 0 }, true},
		{"unbounded without ticks", func(c *Config) { c.Frames = 0 }, true},
		{"negative columns", func(c *Config) { c.Columns = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
