package snake

import (
	"testing"
	"time"
)

func TestTickIntervalMs(t *testing.T) {
	tests := []struct {
		score    int
		expected int
	}{
		{0, 120},
		{49, 120},
		{50, 115},
		{100, 110},
		{250, 95},
		{700, 50},
		{1000, 50},
		{100000, 50},
	}

	for _, tc := range tests {
		if got := TickIntervalMs(tc.score); got != tc.expected {
			t.Errorf("TickIntervalMs(%d) = %d, expected %d", tc.score, got, tc.expected)
		}
	}
}

func TestTickIntervalMonotonic(t *testing.T) {
	prev := TickIntervalMs(0)
	for score := 0; score <= 5000; score += PointsPerFood {
		cur := TickIntervalMs(score)
		if cur > prev {
			t.Fatalf("Interval increased at score %d: %d > %d", score, cur, prev)
		}
		if cur < 50 {
			t.Fatalf("Interval %d below floor at score %d", cur, score)
		}
		prev = cur
	}
}

func TestSpeedConfigInterval(t *testing.T) {
	cfg := SpeedConfig{BaseMs: 200, StepMs: 20, FloorMs: 100, ScorePerStep: 10}

	if got := cfg.Interval(0); got != 200*time.Millisecond {
		t.Errorf("Interval(0) = %v, expected 200ms", got)
	}
	if got := cfg.Interval(30); got != 140*time.Millisecond {
		t.Errorf("Interval(30) = %v, expected 140ms", got)
	}
	if got := cfg.Interval(1000); got != 100*time.Millisecond {
		t.Errorf("Interval(1000) = %v, expected floor 100ms", got)
	}

	// Zero step size must not divide by zero.
	broken := SpeedConfig{BaseMs: 120, StepMs: 5, FloorMs: 50}
	if got := broken.IntervalMs(3); got != 105 {
		t.Errorf("IntervalMs with zero step = %d, expected 105", got)
	}
}
