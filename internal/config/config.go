// Package config provides YAML-based configuration loading, validation and
// difficulty presets for the snake engine and its host backends.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/pico-snake/internal/core"
	"github.com/vovakirdan/pico-snake/internal/engine"
	"github.com/vovakirdan/pico-snake/internal/game"
	"github.com/vovakirdan/pico-snake/internal/render"
)

// Config is the full configuration file.
type Config struct {
	Grid     GridConfig     `yaml:"grid"`
	Timing   TimingConfig   `yaml:"timing"`
	Input    InputConfig    `yaml:"input"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Pacing   PacingConfig   `yaml:"pacing"`
	Failures FailuresConfig `yaml:"failures"`
	Display  DisplayConfig  `yaml:"display"`
	Palette  PaletteConfig  `yaml:"palette"`
	Log      LogConfig      `yaml:"log"`
	Storage  StorageConfig  `yaml:"storage"`
	SSH      SSHConfig      `yaml:"ssh"`
	Seed     int64          `yaml:"seed"` // 0 picks a seed from the clock
}

// GridConfig sizes the play field.
type GridConfig struct {
	Width         int `yaml:"width"`
	Height        int `yaml:"height"`
	StartLength   int `yaml:"start_length"`
	SpawnAttempts int `yaml:"spawn_attempts"`
	// FitTerminal sizes the grid to the terminal instead of Width x Height.
	FitTerminal bool `yaml:"fit_terminal"`
}

// TimingConfig defines the loop cadences.
type TimingConfig struct {
	Frame         time.Duration `yaml:"frame"`
	Logic         time.Duration `yaml:"logic"`
	Death         time.Duration `yaml:"death"`
	BlinkCount    int           `yaml:"blink_count"`
	BlinkDuration time.Duration `yaml:"blink_duration"`
}

// InputConfig defines the debounce windows of host input adapters.
type InputConfig struct {
	DirectionDebounce time.Duration `yaml:"direction_debounce"`
	ButtonDebounce    time.Duration `yaml:"button_debounce"`
}

// ScoringConfig defines points.
type ScoringConfig struct {
	PointsPerFood int `yaml:"points_per_food"`
}

// PacingConfig defines how the logic tick speeds up as the snake eats.
type PacingConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = base speed, 1.0 = max speed
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines what drives the pacing level.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "food" or "none"
	MaxAt int    `yaml:"max_at"` // Food eaten at which max speed is reached
}

// ScalingConfig defines the magnitude of the speed-up.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to the tick rate at max level
}

// FailuresConfig defines when repeated capability errors stop the engine.
type FailuresConfig struct {
	MaxConsecutive int `yaml:"max_consecutive"` // 0 never stops
}

// DisplayConfig selects and sizes the display backend.
type DisplayConfig struct {
	Backend string `yaml:"backend"` // Registered backend name
	Width   int    `yaml:"width"`   // Framebuffer width for pixel backends
	Height  int    `yaml:"height"`
}

// PaletteConfig holds "#rrggbb" colors.
type PaletteConfig struct {
	Background string `yaml:"background"`
	Border     string `yaml:"border"`
	Body       string `yaml:"body"`
	Head       string `yaml:"head"`
	Food       string `yaml:"food"`
	Text       string `yaml:"text"`
	Corpse     string `yaml:"corpse"`
}

// LogConfig defines the log sink.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"` // Empty logs to stderr
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// StorageConfig defines the result ledger.
type StorageConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// SSHConfig defines the SSH server.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// EngineTiming converts the timing section.
func (c Config) EngineTiming() engine.Timing {
	return engine.Timing{
		Frame:         c.Timing.Frame,
		Logic:         c.Timing.Logic,
		Death:         c.Timing.Death,
		BlinkCount:    c.Timing.BlinkCount,
		BlinkDuration: c.Timing.BlinkDuration,
	}
}

// GameConfig converts the grid and scoring sections.
func (c Config) GameConfig() game.Config {
	return game.Config{
		Width:         c.Grid.Width,
		Height:        c.Grid.Height,
		StartLength:   c.Grid.StartLength,
		PointsPerFood: c.Scoring.PointsPerFood,
		SpawnAttempts: c.Grid.SpawnAttempts,
	}
}

// FailurePolicy converts the failures section.
func (c Config) FailurePolicy() engine.FailurePolicy {
	return engine.FailurePolicy{MaxConsecutive: c.Failures.MaxConsecutive}
}

// RenderPalette parses the palette section. Empty entries keep the default.
func (c Config) RenderPalette() (render.Palette, error) {
	p := render.DefaultPalette()
	entries := []struct {
		field string
		value string
		dst   *core.Color
	}{
		{"palette.background", c.Palette.Background, &p.Background},
		{"palette.border", c.Palette.Border, &p.Border},
		{"palette.body", c.Palette.Body, &p.Body},
		{"palette.head", c.Palette.Head, &p.Head},
		{"palette.food", c.Palette.Food, &p.Food},
		{"palette.text", c.Palette.Text, &p.Text},
		{"palette.corpse", c.Palette.Corpse, &p.Corpse},
	}
	for _, e := range entries {
		if e.value == "" {
			continue
		}
		col, err := core.ParseHex(e.value)
		if err != nil {
			return p, &core.ConfigError{Field: e.field, Reason: err.Error()}
		}
		*e.dst = col
	}
	return p, nil
}

// Validate checks every section and returns the first problem found.
func (c Config) Validate() error {
	if !c.Grid.FitTerminal {
		if err := c.GameConfig().Validate(); err != nil {
			return err
		}
	}
	if err := c.EngineTiming().Validate(); err != nil {
		return err
	}
	if c.Input.DirectionDebounce < 0 || c.Input.ButtonDebounce < 0 {
		return &core.ConfigError{Field: "input", Reason: "debounce windows must not be negative"}
	}
	if c.Failures.MaxConsecutive < 0 {
		return &core.ConfigError{Field: "failures.max_consecutive", Reason: "must not be negative"}
	}
	switch c.Pacing.Progression.Type {
	case "", "food", "none":
	default:
		return &core.ConfigError{
			Field:  "pacing.progression.type",
			Reason: fmt.Sprintf("unknown type %q, want food or none", c.Pacing.Progression.Type),
		}
	}
	if c.Pacing.InitialLevel < 0 || c.Pacing.InitialLevel > 1 {
		return &core.ConfigError{Field: "pacing.initial_level", Reason: "must be within [0, 1]"}
	}
	if c.Pacing.Scaling.SpeedMultiplier < 0 {
		return &core.ConfigError{Field: "pacing.scaling.speed_multiplier", Reason: "must not be negative"}
	}
	if c.Display.Width < 0 || c.Display.Height < 0 {
		return &core.ConfigError{Field: "display", Reason: "size must not be negative"}
	}
	if _, err := c.RenderPalette(); err != nil {
		return err
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. Empty means fixed.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	case "":
		return DifficultyFixed, nil
	}
	return "", &core.ConfigError{Field: "difficulty", Reason: fmt.Sprintf("unknown preset %q", s)}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset. The fixed
// preset keeps the constant handheld cadence.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Pacing.Enabled = false
		return
	}
	cfg.Pacing.Enabled = true
	cfg.Pacing.InitialLevel = InitialLevelForPreset(preset)
	if cfg.Pacing.Progression.Type == "" || cfg.Pacing.Progression.Type == "none" {
		cfg.Pacing.Progression.Type = "food"
	}

	switch preset {
	case DifficultyEasy:
		cfg.Timing.Logic = 400 * time.Millisecond
	case DifficultyHard:
		cfg.Timing.Logic = 200 * time.Millisecond
	}
}
