package storage

import (
	"context"
	"sort"
	"sync"
	"time"
)

func init() {
	Register("memory", func(string) (Leaderboard, error) {
		return NewMemoryStore(), nil
	})
}

// MemoryStore is a process-local leaderboard. Scores are lost on exit.
type MemoryStore struct {
	mu      sync.RWMutex
	nextID  int64
	records []ScoreRecord
	now     func() time.Time
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// SubmitScore stores a validated record.
func (m *MemoryStore) SubmitScore(ctx context.Context, username string, score int) (ScoreRecord, error) {
	name, err := Validate(username, score)
	if err != nil {
		return ScoreRecord{}, err
	}
	if err := ctx.Err(); err != nil {
		return ScoreRecord{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	r := ScoreRecord{
		ID:        m.nextID,
		Username:  name,
		Score:     score,
		CreatedAt: m.now().UTC(),
	}
	m.records = append(m.records, r)
	return r, nil
}

// TopScores returns the best records, earliest first on equal scores.
func (m *MemoryStore) TopScores(ctx context.Context, limit int) ([]ScoreRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	sorted := make([]ScoreRecord, len(m.records))
	copy(sorted, m.records)
	m.mu.RUnlock()

	// Records are appended in ID order, so a stable sort keeps ties by ID.
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	limit = normalizeLimit(limit)
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}

var _ Leaderboard = (*MemoryStore)(nil)
