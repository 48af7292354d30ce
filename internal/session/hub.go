// Package session tracks live server-side snake games. Each session owns
// one simulation and its tick loop; the hub only keeps the index.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vovakirdan/snakeboard/internal/core"
	"github.com/vovakirdan/snakeboard/internal/games/snake"
)

// ID uniquely identifies a live session.
type ID string

var (
	// ErrHubFull is returned by Start when MaxSessions are already running.
	ErrHubFull = errors.New("session: too many live sessions")
	// ErrHubClosed is returned by Start after Close.
	ErrHubClosed = errors.New("session: hub closed")
)

// Config holds the game settings applied to every new session.
type Config struct {
	Grid        core.Grid
	Speed       snake.SpeedConfig
	Seed        int64 // 0 means time-based
	MaxSessions int   // 0 means unlimited
	EventBuffer int
}

// Result describes a finished session.
type Result struct {
	ID       ID
	Username string
	Score    int
	Reason   snake.Reason
	Ticks    uint64
	Duration time.Duration
}

// ResultHandler is called once for every session that reached a terminal
// state. Cancelled sessions are not reported.
type ResultHandler func(Result)

// Session is one running game.
type Session struct {
	id       ID
	username string
	runner   *snake.Runner
	cancel   context.CancelFunc
	started  time.Time
}

// ID returns the session identifier.
func (s *Session) ID() ID {
	return s.id
}

// Username returns the name the session will submit its score under.
func (s *Session) Username() string {
	return s.username
}

// Events returns the game event stream.
func (s *Session) Events() <-chan snake.Event {
	return s.runner.Events()
}

// Steer forwards a direction intent to the tick loop.
func (s *Session) Steer(d core.Direction) {
	s.runner.Steer(d)
}

// Done returns a channel that closes when the tick loop has stopped.
func (s *Session) Done() <-chan struct{} {
	return s.runner.Done()
}

// Close tears the session down. Safe to call multiple times.
func (s *Session) Close() {
	s.cancel()
	s.runner.Stop()
}

// Hub is a thread-safe registry of live sessions.
type Hub struct {
	cfg      Config
	onResult ResultHandler

	seq atomic.Uint64

	mu       sync.RWMutex
	sessions map[ID]*Session
	closed   bool
	wg       sync.WaitGroup
}

// NewHub creates a hub. onResult may be nil.
func NewHub(cfg Config, onResult ResultHandler) *Hub {
	if cfg.Grid.Size <= 0 {
		cfg.Grid = core.GridFromPixels(core.DefaultBoardPixels, core.DefaultCellPixels)
	}
	if cfg.Speed == (snake.SpeedConfig{}) {
		cfg.Speed = snake.DefaultSpeed()
	}
	return &Hub{
		cfg:      cfg,
		onResult: onResult,
		sessions: make(map[ID]*Session),
	}
}

// Start creates a new game and launches its tick loop. The loop ends on
// game over, on ctx cancellation or on Session.Close.
func (h *Hub) Start(ctx context.Context, username string) (*Session, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHubClosed
	}
	if h.cfg.MaxSessions > 0 && len(h.sessions) >= h.cfg.MaxSessions {
		return nil, ErrHubFull
	}

	n := h.seq.Add(1)
	id := ID(fmt.Sprintf("game-%d-%d", time.Now().Unix(), n))

	seed := h.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano() + int64(n)
	}
	state := snake.New(h.cfg.Grid, snake.NewFoodPlacer(h.cfg.Grid, seed))
	runner := snake.NewRunner(state, h.cfg.Speed, h.cfg.EventBuffer)

	runCtx, cancel := context.WithCancel(ctx)
	s := &Session{
		id:       id,
		username: username,
		runner:   runner,
		cancel:   cancel,
		started:  time.Now(),
	}
	h.sessions[id] = s

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		defer cancel()
		runner.Run(runCtx)
		h.finish(s)
	}()

	return s, nil
}

// finish unregisters a session and reports its result if the game ended
// by itself.
func (h *Hub) finish(s *Session) {
	h.mu.Lock()
	delete(h.sessions, s.id)
	h.mu.Unlock()

	final := s.runner.Final()
	if final.Alive || h.onResult == nil {
		return
	}
	h.onResult(Result{
		ID:       s.id,
		Username: s.username,
		Score:    final.Score,
		Reason:   final.Reason,
		Ticks:    final.Tick,
		Duration: time.Since(s.started),
	})
}

// Get retrieves a live session by ID.
func (h *Hub) Get(id ID) (*Session, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.sessions[id]
	return s, ok
}

// Count returns the number of live sessions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Close stops every live session, refuses new ones and waits for all tick
// loops to exit.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	live := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		live = append(live, s)
	}
	h.mu.Unlock()

	for _, s := range live {
		s.Close()
	}
	h.wg.Wait()
}
