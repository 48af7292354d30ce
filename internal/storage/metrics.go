package storage

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// Instrument wraps every leaderboard call with a latency histogram.
// A nil backend stays nil so FailSoft can still see it.
func Instrument(lb Leaderboard) Leaderboard {
	if lb == nil {
		return nil
	}
	return &metrics{lb}
}

var (
	storeCalls = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "snakeboard",
			Subsystem: "storage",
			Name:      "calls",
			Help:      "Calls processed by the leaderboard store.",
		},
		[]string{"method"},
	)
	storeErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "snakeboard",
			Subsystem: "storage",
			Name:      "errors_total",
			Help:      "Leaderboard calls that returned an error.",
		},
		[]string{"method"},
	)
)

func instrument(method string) func() {
	t := prometheus.NewTimer(storeCalls.WithLabelValues(method))
	return func() { t.ObserveDuration() }
}

func init() {
	prometheus.MustRegister(storeCalls, storeErrors)
}

type metrics struct{ lb Leaderboard }

func (m *metrics) TopScores(ctx context.Context, limit int) ([]ScoreRecord, error) {
	defer instrument("TopScores")()
	records, err := m.lb.TopScores(ctx, limit)
	if err != nil {
		storeErrors.WithLabelValues("TopScores").Inc()
	}
	return records, err
}

func (m *metrics) SubmitScore(ctx context.Context, username string, score int) (ScoreRecord, error) {
	defer instrument("SubmitScore")()
	r, err := m.lb.SubmitScore(ctx, username, score)
	if err != nil && !IsValidation(err) {
		storeErrors.WithLabelValues("SubmitScore").Inc()
	}
	return r, err
}

func (m *metrics) Close() error {
	return m.lb.Close()
}
