// Package snake implements the single-player snake simulation: a fixed-tick
// grid game with wall and self collision, food, growth, score and a speed
// ramp. State is owned by exactly one caller; nothing here is global.
package snake

import (
	"github.com/vovakirdan/snakeboard/internal/core"
)

// PointsPerFood is the score awarded for every food eaten.
const PointsPerFood = 10

// StartCell is where a new snake spawns on a full-size board.
var StartCell = core.Cell{X: 10, Y: 10}

// Status is the simulation state machine.
type Status string

const (
	StatusActive    Status = "active"
	StatusGameOver  Status = "game_over"
	StatusBoardFull Status = "board_full"
)

// Terminal reports whether no further ticks will change the state.
func (s Status) Terminal() bool {
	return s != StatusActive
}

// Reason explains why a game ended.
type Reason string

const (
	ReasonNone      Reason = ""
	ReasonWall      Reason = "wall"
	ReasonSelf      Reason = "self"
	ReasonBoardFull Reason = "board_full"
)

// Outcome describes what a single tick did.
type Outcome int

const (
	OutcomeIdle      Outcome = iota // Tick on a finished game
	OutcomeMoved                    // Snake shifted by one cell
	OutcomeAte                      // Snake grew by one cell
	OutcomeGameOver                 // Wall or self collision
	OutcomeBoardFull                // Snake fills the board, nowhere to put food
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIdle:
		return "idle"
	case OutcomeMoved:
		return "moved"
	case OutcomeAte:
		return "ate"
	case OutcomeGameOver:
		return "game_over"
	case OutcomeBoardFull:
		return "board_full"
	default:
		return "unknown"
	}
}

// Result is returned by Tick.
type Result struct {
	Outcome  Outcome
	Snapshot Snapshot
}

// State is one game session.
type State struct {
	grid   core.Grid
	placer *FoodPlacer

	tick      uint64
	snake     []core.Cell // Head at index 0
	food      core.Cell
	hasFood   bool
	direction core.Direction // Committed on the last tick
	pending   core.Direction // Applied on the next tick
	score     int
	status    Status
	reason    Reason
}

// New creates a fresh game: a one-cell snake heading right and one food.
func New(grid core.Grid, placer *FoodPlacer) *State {
	start := core.Cell{
		X: core.Clamp(StartCell.X, 0, grid.Size-1),
		Y: core.Clamp(StartCell.Y, 0, grid.Size-1),
	}

	s := &State{
		grid:      grid,
		placer:    placer,
		snake:     []core.Cell{start},
		direction: core.DirRight,
		pending:   core.DirRight,
		status:    StatusActive,
	}
	s.spawnFood()
	return s
}

// spawnFood places food against the current snake, ending the game as a
// win when no free cell is left.
func (s *State) spawnFood() {
	food, ok := s.placer.Place(s.snake)
	if !ok {
		s.hasFood = false
		s.finish(StatusBoardFull, ReasonBoardFull)
		return
	}
	s.food = food
	s.hasFood = true
}

func (s *State) finish(status Status, reason Reason) {
	s.status = status
	s.reason = reason
}

// Steer records a direction intent for the next tick. Intents opposite to
// the committed direction are ignored; otherwise the latest intent wins.
func (s *State) Steer(d core.Direction) bool {
	if !d.Valid() || s.status.Terminal() {
		return false
	}
	if d.IsOpposite(s.direction) {
		return false
	}
	s.pending = d
	return true
}

// Tick advances the game by one cell.
func (s *State) Tick() Result {
	if s.status.Terminal() {
		return Result{Outcome: OutcomeIdle, Snapshot: s.Snapshot()}
	}

	s.tick++
	s.direction = s.pending

	newHead := s.snake[0].Move(s.direction)

	if !s.grid.InBounds(newHead) {
		s.finish(StatusGameOver, ReasonWall)
		return Result{Outcome: OutcomeGameOver, Snapshot: s.Snapshot()}
	}

	// The tail still counts: it has not moved away yet.
	if core.Occupies(s.snake, newHead) {
		s.finish(StatusGameOver, ReasonSelf)
		return Result{Outcome: OutcomeGameOver, Snapshot: s.Snapshot()}
	}

	s.snake = append([]core.Cell{newHead}, s.snake...)

	if s.hasFood && newHead == s.food {
		s.score += PointsPerFood
		s.spawnFood()
		if s.status == StatusBoardFull {
			return Result{Outcome: OutcomeBoardFull, Snapshot: s.Snapshot()}
		}
		return Result{Outcome: OutcomeAte, Snapshot: s.Snapshot()}
	}

	s.snake = s.snake[:len(s.snake)-1]
	return Result{Outcome: OutcomeMoved, Snapshot: s.Snapshot()}
}

// Score returns the cumulative score.
func (s *State) Score() int {
	return s.score
}

// Status returns the current state machine status.
func (s *State) Status() Status {
	return s.status
}

// Reason returns why the game ended, or ReasonNone while active.
func (s *State) Reason() Reason {
	return s.reason
}

// Alive reports whether the game is still running.
func (s *State) Alive() bool {
	return s.status == StatusActive
}

// Grid returns the board the game is played on.
func (s *State) Grid() core.Grid {
	return s.grid
}

// Head returns the snake's head cell.
func (s *State) Head() core.Cell {
	return s.snake[0]
}

// Len returns the snake length.
func (s *State) Len() int {
	return len(s.snake)
}

// Food returns the food cell; ok is false once the board is full.
func (s *State) Food() (core.Cell, bool) {
	return s.food, s.hasFood
}

// Direction returns the committed direction.
func (s *State) Direction() core.Direction {
	return s.direction
}

// Pending returns the direction that the next tick will commit.
func (s *State) Pending() core.Direction {
	return s.pending
}
