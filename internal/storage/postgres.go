package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // Import pq driver.
)

const postgresMigrations = `
CREATE TABLE IF NOT EXISTS scores (
	id BIGSERIAL PRIMARY KEY,
	username VARCHAR(32) NOT NULL,
	score INTEGER NOT NULL CHECK (score >= 0),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_scores_top ON scores (score DESC, id ASC);
`

func init() {
	Register("postgres", func(dsn string) (Leaderboard, error) {
		store, err := OpenPostgres(dsn)
		if err != nil {
			return nil, err
		}
		return store, nil
	})
}

// PostgresStore keeps scores in a shared postgres database.
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgres connects to url, waiting at most three seconds, and applies
// the schema.
func OpenPostgres(url string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	if _, err := db.ExecContext(ctx, postgresMigrations); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// SubmitScore stores a validated record.
func (s *PostgresStore) SubmitScore(ctx context.Context, username string, score int) (ScoreRecord, error) {
	name, err := Validate(username, score)
	if err != nil {
		return ScoreRecord{}, err
	}

	r := ScoreRecord{Username: name, Score: score}
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO scores (username, score) VALUES ($1, $2) RETURNING id, created_at`,
		name, score,
	).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return ScoreRecord{}, fmt.Errorf("storage: cannot save score: %w", err)
	}
	return r, nil
}

// TopScores returns the best records, earliest first on equal scores.
func (s *PostgresStore) TopScores(ctx context.Context, limit int) ([]ScoreRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, username, score, created_at
		 FROM scores
		 ORDER BY score DESC, id ASC
		 LIMIT $1`,
		normalizeLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	records := []ScoreRecord{}
	for rows.Next() {
		var r ScoreRecord
		if err := rows.Scan(&r.ID, &r.Username, &r.Score, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

var _ Leaderboard = (*PostgresStore)(nil)
