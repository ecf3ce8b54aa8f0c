package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/snake.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultYAML))
	copy(out, defaultYAML)
	return out
}

// DefaultConfig returns the default configuration. It matches the embedded
// YAML and is used when that cannot be parsed.
func DefaultConfig() Config {
	return Config{
		Grid: GridConfig{
			Width:         40,
			Height:        22,
			StartLength:   3,
			SpawnAttempts: 32,
		},
		Timing: TimingConfig{
			Frame:         33 * time.Millisecond,
			Logic:         300 * time.Millisecond,
			Death:         2 * time.Second,
			BlinkCount:    12,
			BlinkDuration: 3 * time.Second,
		},
		Input: InputConfig{
			DirectionDebounce: 150 * time.Millisecond,
			ButtonDebounce:    200 * time.Millisecond,
		},
		Scoring: ScoringConfig{
			PointsPerFood: 10,
		},
		Pacing: PacingConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "food",
				MaxAt: 30,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
		Display: DisplayConfig{
			Backend: "tea",
			Width:   240,
			Height:  135,
		},
		Palette: PaletteConfig{
			Background: "#000000",
			Border:     "#ffffff",
			Body:       "#00ff00",
			Head:       "#00ff00",
			Food:       "#ff0000",
			Text:       "#ffffff",
			Corpse:     "#8b4513",
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Storage: StorageConfig{
			Enabled: true,
			Path:    "~/.snake/results.db",
		},
		SSH: SSHConfig{
			Address:     ":23235",
			IdleTimeout: 30 * time.Minute,
		},
	}
}
