// Package storage persists leaderboard scores. Backends register themselves
// under a driver name and are opened through Open.
package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

const (
	// DefaultLimit is the number of entries a leaderboard shows.
	DefaultLimit = 10
	// MaxUsernameLen is the longest accepted username, in characters.
	MaxUsernameLen = 10
)

// ScoreRecord is one leaderboard entry. Records are immutable once stored.
type ScoreRecord struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
}

// Leaderboard is the persistence contract shared by every backend.
type Leaderboard interface {
	// TopScores returns at most limit records ordered by score descending,
	// earliest submission first on ties. limit outside 1..DefaultLimit means
	// DefaultLimit.
	TopScores(ctx context.Context, limit int) ([]ScoreRecord, error)

	// SubmitScore validates and stores a new record.
	SubmitScore(ctx context.Context, username string, score int) (ScoreRecord, error)

	Close() error
}

// ValidationError reports a rejected submission. Message is safe to show
// to clients.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Validate normalizes a submission: the username is trimmed and uppercased.
func Validate(username string, score int) (string, error) {
	name := strings.TrimSpace(username)
	if name == "" {
		return "", &ValidationError{Message: "username is required"}
	}
	if utf8.RuneCountInString(name) > MaxUsernameLen {
		return "", &ValidationError{Message: fmt.Sprintf("username must be at most %d characters", MaxUsernameLen)}
	}
	if score < 0 {
		return "", &ValidationError{Message: "score must be a non-negative integer"}
	}
	return strings.ToUpper(name), nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > DefaultLimit {
		return DefaultLimit
	}
	return limit
}

// ErrUnknownDriver is returned by Open for unregistered driver names.
var ErrUnknownDriver = errors.New("storage: unknown driver")

// Opener creates a backend from a driver-specific DSN.
type Opener func(dsn string) (Leaderboard, error)

var (
	drivers   = make(map[string]Opener)
	driversMu sync.RWMutex
)

// Register makes a backend available under name.
// Panics if the name is already taken.
func Register(name string, open Opener) {
	driversMu.Lock()
	defer driversMu.Unlock()

	if _, exists := drivers[name]; exists {
		panic(fmt.Sprintf("storage: driver %q already registered", name))
	}
	drivers[name] = open
}

// Drivers returns the registered driver names, sorted.
func Drivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()

	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open creates the backend registered as driver.
func Open(driver, dsn string) (Leaderboard, error) {
	driversMu.RLock()
	open, ok := drivers[driver]
	driversMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q (have %s)", ErrUnknownDriver, driver, strings.Join(Drivers(), ", "))
	}
	return open(dsn)
}
