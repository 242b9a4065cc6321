package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/dynamo"
	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/physics"
	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/trajectory"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Constants() != physics.Earth {
		t.Errorf("expected Earth constants, got %+v", cfg.Constants())
	}
	if cfg.Params() != trajectory.DefaultParams() {
		t.Errorf("expected default launch, got %+v", cfg.Params())
	}
	if cfg.Options() != trajectory.DefaultOptions() {
		t.Errorf("expected default solver options, got %+v", cfg.Options())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")

	cfg := DefaultConfig()
	cfg.Launch.AngleDeg = 90
	cfg.Solver.Method = "rk4"
	cfg.Solver.Timeout = Duration(30 * time.Second)

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if *loaded != *cfg {
		t.Errorf("round trip changed the config:\n got  %+v\n want %+v", loaded, cfg)
	}
	if loaded.Options().Timeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", loaded.Options().Timeout)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := "launch:\n  speed: 7700\n  angle_deg: 90\nsolver:\n  timeout: 2m\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Launch.Speed != 7700 || cfg.Launch.AngleDeg != 90 {
		t.Errorf("file values not applied: %+v", cfg.Launch)
	}
	if cfg.Launch.Altitude != 400000 || cfg.Launch.Duration != 86400 {
		t.Errorf("missing fields should keep defaults: %+v", cfg.Launch)
	}
	if cfg.Body.Radius != physics.Earth.R {
		t.Errorf("expected default radius, got %g", cfg.Body.Radius)
	}
	if time.Duration(cfg.Solver.Timeout) != 2*time.Minute {
		t.Errorf("expected 2m timeout, got %v", time.Duration(cfg.Solver.Timeout))
	}
}

func TestLoadOverPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	if err := os.WriteFile(path, []byte("launch:\n  duration: 600\n"), 0644); err != nil {
		t.Fatal(err)
	}

	base := GetPreset("iss")
	cfg, err := LoadOver(path, base)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Launch.Duration != 600 {
		t.Errorf("expected file duration 600, got %g", cfg.Launch.Duration)
	}
	if cfg.Launch.Altitude != 408e3 || cfg.Launch.AngleDeg != 90 {
		t.Errorf("preset fields should survive: %+v", cfg.Launch)
	}
	if base.Launch.Duration == 600 {
		t.Error("base config was modified")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("solver:\n  timeout: soon\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected an error for an unparseable duration")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero radius", func(c *Config) { c.Body.Radius = 0 }},
		{"negative altitude", func(c *Config) { c.Launch.Altitude = -10 }},
		{"zero rtol", func(c *Config) { c.Solver.RTol = 0 }},
		{"unknown method", func(c *Config) { c.Solver.Method = "bogus" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, dynamo.ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", err)
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("leo-circular")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Launch.AngleDeg != 90 {
		t.Errorf("expected angle 90, got %f", cfg.Launch.AngleDeg)
	}
	want := physics.Earth.CircularSpeed(physics.Earth.R + 400e3)
	if cfg.Launch.Speed != want {
		t.Errorf("expected circular speed %f, got %f", want, cfg.Launch.Speed)
	}

	cfg.Launch.Speed = 1
	if GetPreset("leo-circular").Launch.Speed != want {
		t.Error("modifying a returned preset must not change the registry")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsAreValid(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d names, got %d", len(Presets), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("preset names not sorted: %v", names)
		}
	}
	for _, name := range names {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s is invalid: %v", name, err)
		}
	}
}
