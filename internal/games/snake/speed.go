package snake

import "time"

// SpeedConfig derives the tick interval from the cumulative score.
// The interval starts at BaseMs and shrinks by StepMs for every ScorePerStep
// points, never dropping below FloorMs.
type SpeedConfig struct {
	BaseMs       int `yaml:"base_ms"`
	StepMs       int `yaml:"step_ms"`
	FloorMs      int `yaml:"floor_ms"`
	ScorePerStep int `yaml:"score_per_step"`
}

// DefaultSpeed returns the classic ramp: 120ms, minus 5ms per 50 points,
// floored at 50ms.
func DefaultSpeed() SpeedConfig {
	return SpeedConfig{
		BaseMs:       120,
		StepMs:       5,
		FloorMs:      50,
		ScorePerStep: 50,
	}
}

// IntervalMs returns the tick interval in milliseconds for the given score.
func (c SpeedConfig) IntervalMs(score int) int {
	if score < 0 {
		score = 0
	}
	perStep := c.ScorePerStep
	if perStep <= 0 {
		perStep = 1 // Prevent division by zero
	}
	ms := c.BaseMs - (score/perStep)*c.StepMs
	return max(c.FloorMs, ms)
}

// Interval returns the tick interval for the given score.
func (c SpeedConfig) Interval(score int) time.Duration {
	return time.Duration(c.IntervalMs(score)) * time.Millisecond
}

// TickIntervalMs applies the default ramp.
func TickIntervalMs(score int) int {
	return DefaultSpeed().IntervalMs(score)
}

// TickInterval applies the default ramp.
func TickInterval(score int) time.Duration {
	return DefaultSpeed().Interval(score)
}
