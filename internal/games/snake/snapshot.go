package snake

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/snakeboard/internal/core"
)

// Snapshot captures the complete game state for rendering, the websocket
// stream, determinism tests and replays.
type Snapshot struct {
	Tick      uint64         `json:"tick"`
	GridSize  int            `json:"gridSize"`
	Snake     []core.Cell    `json:"snake"`
	Food      *core.Cell     `json:"food,omitempty"`
	Direction core.Direction `json:"direction"`
	Pending   core.Direction `json:"pending"`
	Score     int            `json:"score"`
	Alive     bool           `json:"alive"`
	Status    Status         `json:"status"`
	Reason    Reason         `json:"reason,omitempty"`
}

// Snapshot returns a deep copy of the current state.
func (s *State) Snapshot() Snapshot {
	body := make([]core.Cell, len(s.snake))
	copy(body, s.snake)

	snap := Snapshot{
		Tick:      s.tick,
		GridSize:  s.grid.Size,
		Snake:     body,
		Direction: s.direction,
		Pending:   s.pending,
		Score:     s.score,
		Alive:     s.status == StatusActive,
		Status:    s.status,
		Reason:    s.reason,
	}
	if s.hasFood {
		food := s.food
		snap.Food = &food
	}
	return snap
}

// ErrInvalidSnapshot is returned by Restore for states that break the
// board invariants.
var ErrInvalidSnapshot = errors.New("snake: invalid snapshot")

// Restore rebuilds an active game from explicit positions. The snapshot's
// Direction becomes the committed direction. Pending is kept only when it is
// a legal turn from Direction. When Food is nil a new food is placed.
func Restore(grid core.Grid, placer *FoodPlacer, snap Snapshot) (*State, error) {
	if len(snap.Snake) == 0 {
		return nil, fmt.Errorf("%w: empty snake", ErrInvalidSnapshot)
	}
	seen := make(map[core.Cell]bool, len(snap.Snake))
	for _, c := range snap.Snake {
		if !grid.InBounds(c) {
			return nil, fmt.Errorf("%w: cell %v out of bounds", ErrInvalidSnapshot, c)
		}
		if seen[c] {
			return nil, fmt.Errorf("%w: duplicate cell %v", ErrInvalidSnapshot, c)
		}
		seen[c] = true
	}
	if !snap.Direction.Valid() {
		return nil, fmt.Errorf("%w: direction %d", ErrInvalidSnapshot, int(snap.Direction))
	}

	s := &State{
		grid:      grid,
		placer:    placer,
		tick:      snap.Tick,
		snake:     append([]core.Cell(nil), snap.Snake...),
		direction: snap.Direction,
		pending:   snap.Direction,
		score:     snap.Score,
		status:    StatusActive,
	}
	if snap.Pending.Valid() && !snap.Pending.IsOpposite(snap.Direction) {
		s.pending = snap.Pending
	}

	if snap.Food == nil {
		s.spawnFood()
		return s, nil
	}
	if !grid.InBounds(*snap.Food) || seen[*snap.Food] {
		return nil, fmt.Errorf("%w: food %v", ErrInvalidSnapshot, *snap.Food)
	}
	s.food = *snap.Food
	s.hasFood = true
	return s, nil
}
