package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Grid.NX != DefaultNX || cfg.Grid.NY != DefaultNY {
		t.Errorf("grid size: got %dx%d", cfg.Grid.NX, cfg.Grid.NY)
	}
	if cfg.Gas.Rho0 != DefaultRho0 || cfg.Gas.P0 != DefaultP0 {
		t.Error("gas defaults wrong")
	}
	if cfg.Forcing.TEnd <= cfg.Forcing.TStart {
		t.Error("forcing window must have positive width")
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"tiny grid", func(c *Config) { c.Grid.NX = 2 }},
		{"degenerate x bounds", func(c *Config) { c.Grid.XMin, c.Grid.XMax = 1, 1 }},
		{"inverted y bounds", func(c *Config) { c.Grid.YMin, c.Grid.YMax = 2, 1 }},
		{"negative density", func(c *Config) { c.Gas.Rho0 = -1 }},
		{"zero pressure", func(c *Config) { c.Gas.P0 = 0 }},
		{"gamma at unity", func(c *Config) { c.Gas.Gamma = 1 }},
		{"negative viscosity", func(c *Config) { c.Gas.Nu = -1 }},
		{"inverted forcing window", func(c *Config) { c.Forcing.TStart, c.Forcing.TEnd = 1, 0 }},
		{"zero duration", func(c *Config) { c.Run.Duration = 0 }},
		{"no cfl interval", func(c *Config) { c.Run.CFLInterval = 0 }},
	}
	for _, tt := range tests {
		cfg := Default()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestFixedDtAllowsNoCFLInterval(t *testing.T) {
	cfg := Default()
	cfg.Run.CFLInterval = 0
	cfg.Run.FixedDt = 1e-6
	if err := cfg.Validate(); err != nil {
		t.Errorf("fixed dt should not require a CFL interval: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := Default()
	cfg.Grid.NX = 130
	cfg.Gas.Nu = 3e-3
	cfg.Forcing.Magnitude = 1234
	cfg.View.Theme = "inferno"

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Grid.NX != 130 {
		t.Errorf("nx: got %d", loaded.Grid.NX)
	}
	if loaded.Gas.Nu != 3e-3 {
		t.Errorf("nu: got %v", loaded.Gas.Nu)
	}
	if loaded.Forcing.Magnitude != 1234 {
		t.Errorf("magnitude: got %v", loaded.Forcing.Magnitude)
	}
	if loaded.View.Theme != "inferno" {
		t.Errorf("theme: got %s", loaded.View.Theme)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := Default()
	cfg.Grid.NX = 1
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected load to reject invalid config")
	}
}

func TestPresets(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("preset %s returned nil", name)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}

	gentle := GetPreset("gentle")
	classic := GetPreset("classic")
	if gentle.Forcing.Magnitude >= classic.Forcing.Magnitude {
		t.Error("gentle preset should weaken the pulse")
	}
}
