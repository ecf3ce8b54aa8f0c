package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/pico-snake/internal/core"
)

func TestEmbeddedYAMLMatchesDefaultConfig(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if want := DefaultConfig(); !reflect.DeepEqual(cfg, want) {
		t.Errorf("embedded YAML = %+v\nexpected %+v", cfg, want)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoadCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.yaml")
	data := []byte("grid:\n  width: 20\n  height: 10\ntiming:\n  logic: 150ms\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Grid.Width != 20 || cfg.Grid.Height != 10 {
		t.Errorf("grid = %dx%d, expected 20x10", cfg.Grid.Width, cfg.Grid.Height)
	}
	if cfg.Timing.Logic != 150*time.Millisecond {
		t.Errorf("Timing.Logic = %v, expected 150ms", cfg.Timing.Logic)
	}
	if cfg.Timing.Death != 2*time.Second || cfg.Scoring.PointsPerFood != 10 {
		t.Error("keys missing from the file should keep their defaults")
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of a missing custom file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("grid: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load() of malformed YAML should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("grid:\n  width: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(invalid)
	var cerr *core.ConfigError
	if !errors.As(err, &cerr) || cerr.Field != "grid.width" {
		t.Errorf("Load() error = %v, expected a grid.width ConfigError", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero logic", func(c *Config) { c.Timing.Logic = 0 }, "timing.logic"},
		{"zero blinks", func(c *Config) { c.Timing.BlinkCount = 0 }, "timing.blink_count"},
		{"bad color", func(c *Config) { c.Palette.Food = "red" }, "palette.food"},
		{"bad progression", func(c *Config) { c.Pacing.Progression.Type = "time" }, "pacing.progression.type"},
		{"level out of range", func(c *Config) { c.Pacing.InitialLevel = 1.5 }, "pacing.initial_level"},
		{"negative failures", func(c *Config) { c.Failures.MaxConsecutive = -1 }, "failures.max_consecutive"},
		{"negative debounce", func(c *Config) { c.Input.ButtonDebounce = -time.Second }, "input"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			var cerr *core.ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("Validate() error = %v, expected *core.ConfigError", err)
			}
			if cerr.Field != tc.field {
				t.Errorf("Field = %q, expected %q", cerr.Field, tc.field)
			}
		})
	}
}

func TestFitTerminalSkipsGridCheck(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Grid.Width = 0
	cfg.Grid.FitTerminal = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v, expected grid size to be ignored", err)
	}
}

func TestRenderPalette(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Palette.Head = "#ffff00"
	cfg.Palette.Border = ""

	p, err := cfg.RenderPalette()
	if err != nil {
		t.Fatal(err)
	}
	if p.Head != core.RGB(255, 255, 0) {
		t.Errorf("Head = %v, expected yellow", p.Head)
	}
	if p.Border != core.White {
		t.Errorf("Border = %v, expected the default white", p.Border)
	}
	if p.Corpse != core.Brown {
		t.Errorf("Corpse = %v, expected brown", p.Corpse)
	}
}

func TestConversions(t *testing.T) {
	cfg := DefaultConfig()

	tm := cfg.EngineTiming()
	if tm.Frame != 33*time.Millisecond || tm.BlinkCount != 12 {
		t.Errorf("EngineTiming() = %+v", tm)
	}
	g := cfg.GameConfig()
	if g.Width != 40 || g.Height != 22 || g.PointsPerFood != 10 || g.StartLength != 3 {
		t.Errorf("GameConfig() = %+v", g)
	}
	cfg.Failures.MaxConsecutive = 5
	if cfg.FailurePolicy().MaxConsecutive != 5 {
		t.Error("FailurePolicy() should copy max_consecutive")
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		enabled bool
		level   float64
		logic   time.Duration
	}{
		{DifficultyEasy, true, 0.0, 400 * time.Millisecond},
		{DifficultyNormal, true, 0.3, 300 * time.Millisecond},
		{DifficultyHard, true, 0.7, 200 * time.Millisecond},
		{DifficultyFixed, false, 0.0, 300 * time.Millisecond},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultConfig()
			ApplyPreset(&cfg, tc.preset)
			if cfg.Pacing.Enabled != tc.enabled {
				t.Errorf("Pacing.Enabled = %v, expected %v", cfg.Pacing.Enabled, tc.enabled)
			}
			if cfg.Pacing.InitialLevel != tc.level {
				t.Errorf("InitialLevel = %v, expected %v", cfg.Pacing.InitialLevel, tc.level)
			}
			if cfg.Timing.Logic != tc.logic {
				t.Errorf("Timing.Logic = %v, expected %v", cfg.Timing.Logic, tc.logic)
			}
		})
	}

	if _, err := ParsePreset("insane"); err == nil {
		t.Error("ParsePreset() should reject unknown names")
	}
	if p, err := ParsePreset(""); err != nil || p != DifficultyFixed {
		t.Errorf("ParsePreset(\"\") = %v, %v; expected fixed", p, err)
	}
}

func TestPacer(t *testing.T) {
	cfg := PacingConfig{
		Enabled:      true,
		InitialLevel: 0,
		Progression:  ProgressionConfig{Type: "food", MaxAt: 10},
		Scaling:      ScalingConfig{SpeedMultiplier: 1.0},
	}
	p := NewPacer(cfg)
	base := 300 * time.Millisecond

	if got := p.Interval(base, 0); got != base {
		t.Errorf("Interval(0 food) = %v, expected %v", got, base)
	}
	if got := p.Interval(base, 10); got != 150*time.Millisecond {
		t.Errorf("Interval(10 food) = %v, expected 150ms", got)
	}
	if got := p.Interval(base, 100); got != 150*time.Millisecond {
		t.Errorf("Interval(100 food) = %v, expected the cap of 150ms", got)
	}
	if lvl := p.Level(5); lvl != 0.5 {
		t.Errorf("Level(5) = %v, expected 0.5", lvl)
	}

	cfg.Enabled = false
	if got := NewPacer(cfg).Interval(base, 10); got != base {
		t.Errorf("disabled Interval() = %v, expected %v", got, base)
	}
}
