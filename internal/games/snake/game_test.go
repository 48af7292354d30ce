package snake

import (
	"errors"
	"testing"

	"github.com/vovakirdan/snakeboard/internal/core"
)

var testGrid = core.NewGrid(30)

func newTestGame(t *testing.T, seed int64) *State {
	t.Helper()
	return New(testGrid, NewFoodPlacer(testGrid, seed))
}

func restore(t *testing.T, snap Snapshot) *State {
	t.Helper()
	g, err := Restore(testGrid, NewFoodPlacer(testGrid, 7), snap)
	if err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}
	return g
}

func cellPtr(x, y int) *core.Cell {
	return &core.Cell{X: x, Y: y}
}

func TestNewGame(t *testing.T) {
	g := newTestGame(t, 42)

	if g.Len() != 1 || g.Head() != (core.Cell{X: 10, Y: 10}) {
		t.Errorf("Expected one-cell snake at (10,10), got len %d head %v", g.Len(), g.Head())
	}
	if g.Direction() != core.DirRight || g.Pending() != core.DirRight {
		t.Errorf("Expected initial direction right, got %v/%v", g.Direction(), g.Pending())
	}
	if g.Score() != 0 || !g.Alive() {
		t.Errorf("Expected live game with zero score, got score %d status %s", g.Score(), g.Status())
	}

	food, ok := g.Food()
	if !ok {
		t.Fatal("New game should have food")
	}
	if food == g.Head() || !testGrid.InBounds(food) {
		t.Errorf("Food placed on an invalid cell %v", food)
	}
}

func TestNewGameSmallGrid(t *testing.T) {
	grid := core.NewGrid(5)
	g := New(grid, NewFoodPlacer(grid, 1))

	if !grid.InBounds(g.Head()) {
		t.Errorf("Start cell should be clamped into a small grid, got %v", g.Head())
	}
}

func TestEatFood(t *testing.T) {
	g := restore(t, Snapshot{
		Snake:     []core.Cell{{X: 10, Y: 10}},
		Direction: core.DirRight,
		Pending:   core.DirRight,
		Food:      cellPtr(11, 10),
	})

	res := g.Tick()

	if res.Outcome != OutcomeAte {
		t.Errorf("Expected OutcomeAte, got %v", res.Outcome)
	}
	expected := []core.Cell{{X: 11, Y: 10}, {X: 10, Y: 10}}
	if len(res.Snapshot.Snake) != 2 || res.Snapshot.Snake[0] != expected[0] || res.Snapshot.Snake[1] != expected[1] {
		t.Errorf("Expected snake %v, got %v", expected, res.Snapshot.Snake)
	}
	if g.Score() != 10 {
		t.Errorf("Expected score 10, got %d", g.Score())
	}
	if !g.Alive() {
		t.Error("Game should still be running")
	}
	food, ok := g.Food()
	if !ok || core.Occupies(res.Snapshot.Snake, food) {
		t.Errorf("New food %v must be placed off the snake", food)
	}
}

func TestWallCollision(t *testing.T) {
	g := restore(t, Snapshot{
		Snake:     []core.Cell{{X: 0, Y: 5}},
		Direction: core.DirLeft,
		Pending:   core.DirLeft,
		Food:      cellPtr(20, 20),
	})

	res := g.Tick()

	if res.Outcome != OutcomeGameOver {
		t.Errorf("Expected OutcomeGameOver, got %v", res.Outcome)
	}
	if g.Alive() || g.Reason() != ReasonWall {
		t.Errorf("Expected wall game over, got status %s reason %q", g.Status(), g.Reason())
	}
	if g.Score() != 0 {
		t.Errorf("Score should be unchanged, got %d", g.Score())
	}
	if g.Head() != (core.Cell{X: 0, Y: 5}) || g.Len() != 1 {
		t.Errorf("Snake must not move on a collision, got head %v len %d", g.Head(), g.Len())
	}
	if food, _ := g.Food(); food != (core.Cell{X: 20, Y: 20}) {
		t.Errorf("Food must not move on a collision, got %v", food)
	}
}

func TestWallCollisionAllEdges(t *testing.T) {
	tests := []struct {
		name string
		head core.Cell
		dir  core.Direction
	}{
		{"top", core.Cell{X: 5, Y: 0}, core.DirUp},
		{"bottom", core.Cell{X: 5, Y: 29}, core.DirDown},
		{"left", core.Cell{X: 0, Y: 5}, core.DirLeft},
		{"right", core.Cell{X: 29, Y: 5}, core.DirRight},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := restore(t, Snapshot{
				Snake:     []core.Cell{tc.head},
				Direction: tc.dir,
				Pending:   tc.dir,
				Food:      cellPtr(15, 15),
			})
			g.Tick()
			if g.Reason() != ReasonWall {
				t.Errorf("Expected wall collision, got %q", g.Reason())
			}
		})
	}
}

func TestSelfCollision(t *testing.T) {
	// Head at (5,5) turning right into its own body at (6,5).
	g := restore(t, Snapshot{
		Snake: []core.Cell{
			{X: 5, Y: 5},
			{X: 5, Y: 6},
			{X: 6, Y: 6},
			{X: 6, Y: 5},
			{X: 6, Y: 4},
		},
		Direction: core.DirUp,
		Pending:   core.DirRight,
		Food:      cellPtr(20, 20),
	})

	res := g.Tick()

	if res.Outcome != OutcomeGameOver || g.Reason() != ReasonSelf {
		t.Errorf("Expected self collision, got %v / %q", res.Outcome, g.Reason())
	}
	if g.Len() != 5 {
		t.Errorf("Snake must not change on collision, got len %d", g.Len())
	}
}

func TestTailCountsAsBody(t *testing.T) {
	// A 4-cell loop: moving into the current tail cell is a collision.
	g := restore(t, Snapshot{
		Snake: []core.Cell{
			{X: 5, Y: 5},
			{X: 6, Y: 5},
			{X: 6, Y: 6},
			{X: 5, Y: 6},
		},
		Direction: core.DirLeft,
		Pending:   core.DirDown,
		Food:      cellPtr(20, 20),
	})

	g.Tick()

	if g.Reason() != ReasonSelf {
		t.Errorf("Moving into the tail should collide, got %q", g.Reason())
	}
}

func TestNoImmediateReversal(t *testing.T) {
	g := restore(t, Snapshot{
		Snake:     []core.Cell{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 7, Y: 5}},
		Direction: core.DirLeft,
		Pending:   core.DirLeft,
		Food:      cellPtr(20, 20),
	})

	if g.Steer(core.DirRight) {
		t.Error("Steer should reject the opposite of the committed direction")
	}
	if g.Pending() != core.DirLeft {
		t.Errorf("Pending should stay left, got %v", g.Pending())
	}

	res := g.Tick()

	if res.Outcome != OutcomeMoved {
		t.Fatalf("Expected OutcomeMoved, got %v", res.Outcome)
	}
	expected := []core.Cell{{X: 4, Y: 5}, {X: 5, Y: 5}, {X: 6, Y: 5}}
	for i, c := range expected {
		if res.Snapshot.Snake[i] != c {
			t.Errorf("Segment %d: expected %v, got %v", i, c, res.Snapshot.Snake[i])
		}
	}
	if !g.Alive() {
		t.Error("Snake should still be alive")
	}
}

func TestSteerAgainstCommittedNotPending(t *testing.T) {
	g := restore(t, Snapshot{
		Snake:     []core.Cell{{X: 10, Y: 10}, {X: 9, Y: 10}},
		Direction: core.DirRight,
		Pending:   core.DirRight,
		Food:      cellPtr(20, 20),
	})

	// Up then Down between two ticks: Down is only opposite of the pending
	// intent, not of the committed heading, so it wins.
	if !g.Steer(core.DirUp) {
		t.Fatal("Up should be accepted")
	}
	if !g.Steer(core.DirDown) {
		t.Fatal("Down should be accepted against committed Right")
	}
	if g.Pending() != core.DirDown {
		t.Errorf("Last intent should win, got %v", g.Pending())
	}

	g.Tick()
	if g.Head() != (core.Cell{X: 10, Y: 11}) {
		t.Errorf("Expected head at (10,11), got %v", g.Head())
	}
	if g.Steer(core.DirUp) {
		t.Error("Up is now opposite of the committed Down")
	}
}

func TestMovementInvariants(t *testing.T) {
	g := newTestGame(t, 2024)
	dirs := []core.Direction{core.DirDown, core.DirLeft, core.DirUp, core.DirRight}

	for i := 0; i < 500 && g.Alive(); i++ {
		if i%7 == 0 {
			g.Steer(dirs[(i/7)%len(dirs)])
		}

		before := g.Snapshot()
		res := g.Tick()
		if res.Outcome == OutcomeGameOver {
			break
		}
		after := res.Snapshot

		if after.Snake[0].Manhattan(before.Snake[0]) != 1 {
			t.Fatalf("Tick %d: head jumped from %v to %v", i, before.Snake[0], after.Snake[0])
		}
		if after.Snake[0] != before.Snake[0].Move(after.Direction) {
			t.Fatalf("Tick %d: head does not follow committed direction %v", i, after.Direction)
		}

		switch res.Outcome {
		case OutcomeMoved:
			if len(after.Snake) != len(before.Snake) {
				t.Fatalf("Tick %d: length changed without food", i)
			}
		case OutcomeAte:
			if len(after.Snake) != len(before.Snake)+1 {
				t.Fatalf("Tick %d: eating should grow the snake by one", i)
			}
		}

		seen := make(map[core.Cell]bool)
		for _, c := range after.Snake {
			if seen[c] {
				t.Fatalf("Tick %d: duplicate cell %v in live snake", i, c)
			}
			seen[c] = true
		}
		if after.Food != nil && seen[*after.Food] {
			t.Fatalf("Tick %d: food %v on snake", i, *after.Food)
		}
	}
}

func TestTickAfterGameOverIsIdle(t *testing.T) {
	g := restore(t, Snapshot{
		Snake:     []core.Cell{{X: 0, Y: 0}},
		Direction: core.DirUp,
		Pending:   core.DirUp,
		Food:      cellPtr(5, 5),
	})
	g.Tick()

	res := g.Tick()
	if res.Outcome != OutcomeIdle {
		t.Errorf("Ticking a finished game should be idle, got %v", res.Outcome)
	}
	if g.Steer(core.DirRight) {
		t.Error("Steering a finished game should be rejected")
	}
}

func TestBoardFull(t *testing.T) {
	// 2x2 board: snake of three with food in the last free cell.
	grid := core.NewGrid(2)
	g, err := Restore(grid, NewFoodPlacer(grid, 3), Snapshot{
		Snake:     []core.Cell{{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}},
		Direction: core.DirUp,
		Pending:   core.DirLeft,
		Food:      cellPtr(0, 0),
	})
	if err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}

	res := g.Tick()

	if res.Outcome != OutcomeBoardFull {
		t.Fatalf("Expected OutcomeBoardFull, got %v", res.Outcome)
	}
	if g.Status() != StatusBoardFull || g.Reason() != ReasonBoardFull {
		t.Errorf("Expected board_full status, got %s/%q", g.Status(), g.Reason())
	}
	if g.Score() != PointsPerFood {
		t.Errorf("Final food should still score, got %d", g.Score())
	}
	if _, ok := g.Food(); ok {
		t.Error("No food can exist on a full board")
	}
	if res.Snapshot.Food != nil {
		t.Error("Snapshot should omit food on a full board")
	}
}

func TestDeterminism(t *testing.T) {
	g1 := newTestGame(t, 12345)
	g2 := newTestGame(t, 12345)

	for i := 0; i < 100; i++ {
		if i == 5 {
			g1.Steer(core.DirDown)
			g2.Steer(core.DirDown)
		}
		if i == 12 {
			g1.Steer(core.DirLeft)
			g2.Steer(core.DirLeft)
		}
		g1.Tick()
		g2.Tick()
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if s1.Tick != s2.Tick || s1.Score != s2.Score || s1.Status != s2.Status {
		t.Errorf("Snapshot mismatch: %+v vs %+v", s1, s2)
	}
	if (s1.Food == nil) != (s2.Food == nil) || (s1.Food != nil && *s1.Food != *s2.Food) {
		t.Errorf("Food mismatch: %v vs %v", s1.Food, s2.Food)
	}
}

func TestRestoreValidation(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
	}{
		{"empty snake", Snapshot{Direction: core.DirUp}},
		{"out of bounds", Snapshot{Snake: []core.Cell{{X: 30, Y: 0}}}},
		{"duplicate cells", Snapshot{Snake: []core.Cell{{X: 1, Y: 1}, {X: 1, Y: 1}}}},
		{"food on snake", Snapshot{Snake: []core.Cell{{X: 1, Y: 1}}, Food: cellPtr(1, 1)}},
		{"bad direction", Snapshot{Snake: []core.Cell{{X: 1, Y: 1}}, Direction: core.Direction(9)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Restore(testGrid, NewFoodPlacer(testGrid, 1), tc.snap)
			if !errors.Is(err, ErrInvalidSnapshot) {
				t.Errorf("Expected ErrInvalidSnapshot, got %v", err)
			}
		})
	}
}
