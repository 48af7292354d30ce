package storage

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
)

// ErrUnavailable is returned for writes when no backend is configured.
var ErrUnavailable = errors.New("storage: leaderboard unavailable")

// FailSoft wraps a leaderboard so that reads never fail: any read error,
// including a missing backend, is logged and becomes an empty list.
// Writes still report their errors.
func FailSoft(lb Leaderboard, logger *log.Logger) Leaderboard {
	if logger == nil {
		logger = log.Default()
	}
	return &failSoft{lb: lb, logger: logger}
}

type failSoft struct {
	lb     Leaderboard
	logger *log.Logger
}

func (f *failSoft) TopScores(ctx context.Context, limit int) ([]ScoreRecord, error) {
	if f.lb == nil {
		f.logger.Warn("Leaderboard read without a backend")
		return []ScoreRecord{}, nil
	}

	records, err := f.lb.TopScores(ctx, limit)
	if err != nil {
		f.logger.Error("Leaderboard read failed", "err", err)
		return []ScoreRecord{}, nil
	}
	if records == nil {
		records = []ScoreRecord{}
	}
	return records, nil
}

func (f *failSoft) SubmitScore(ctx context.Context, username string, score int) (ScoreRecord, error) {
	if f.lb == nil {
		// Still surface bad input as a validation failure.
		if _, err := Validate(username, score); err != nil {
			return ScoreRecord{}, err
		}
		return ScoreRecord{}, ErrUnavailable
	}

	r, err := f.lb.SubmitScore(ctx, username, score)
	if err != nil && !IsValidation(err) {
		f.logger.Error("Leaderboard write failed", "username", username, "score", score, "err", err)
	}
	return r, err
}

func (f *failSoft) Close() error {
	if f.lb == nil {
		return nil
	}
	return f.lb.Close()
}
