package config

import (
	"testing"

	"github.com/vovakirdan/snakeboard/internal/games/snake"
)

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{"normal", DifficultyNormal, false},
		{"hard", DifficultyHard, false},
		{"fixed", DifficultyFixed, false},
		{"insane", "", true},
	}

	for _, tt := range tests {
		got, err := ParseDifficulty(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDifficulty(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDifficulty(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestApplySpeedPreset(t *testing.T) {
	base := snake.DefaultSpeed()

	if got := ApplySpeedPreset(base, DifficultyNormal); got != base {
		t.Errorf("Normal should keep the ramp, got %+v", got)
	}

	easy := ApplySpeedPreset(base, DifficultyEasy)
	if easy.IntervalMs(0) <= base.IntervalMs(0) {
		t.Errorf("Easy should start slower: %d vs %d", easy.IntervalMs(0), base.IntervalMs(0))
	}
	if easy.IntervalMs(100000) <= base.IntervalMs(100000) {
		t.Error("Easy should have a slower floor")
	}

	hard := ApplySpeedPreset(base, DifficultyHard)
	if hard.IntervalMs(0) >= base.IntervalMs(0) {
		t.Errorf("Hard should start faster: %d vs %d", hard.IntervalMs(0), base.IntervalMs(0))
	}

	fixed := ApplySpeedPreset(base, DifficultyFixed)
	if fixed.IntervalMs(0) != fixed.IntervalMs(5000) {
		t.Error("Fixed should not speed up")
	}
}
