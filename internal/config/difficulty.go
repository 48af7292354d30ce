package config

import (
	"fmt"

	"github.com/vovakirdan/snakeboard/internal/games/snake"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // No speed-up
)

// ParseDifficulty validates a preset name. Empty means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q", s)
	}
}

// ApplySpeedPreset adjusts a speed ramp for a preset. Normal and unknown
// presets return the ramp unchanged.
func ApplySpeedPreset(speed snake.SpeedConfig, preset DifficultyPreset) snake.SpeedConfig {
	switch preset {
	case DifficultyEasy:
		speed.BaseMs += speed.BaseMs / 4
		speed.FloorMs += speed.FloorMs / 2
	case DifficultyHard:
		speed.BaseMs -= speed.BaseMs / 4
		speed.StepMs *= 2
	case DifficultyFixed:
		speed.StepMs = 0
	}
	if speed.FloorMs > speed.BaseMs {
		speed.FloorMs = speed.BaseMs
	}
	return speed
}
