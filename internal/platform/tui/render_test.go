package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/snakeboard/internal/core"
	"github.com/vovakirdan/snakeboard/internal/games/snake"
)

func testSnapshot() snake.Snapshot {
	food := core.Cell{X: 0, Y: 0}
	return snake.Snapshot{
		GridSize: 5,
		Snake:    []core.Cell{{X: 2, Y: 2}, {X: 1, Y: 2}},
		Food:     &food,
		Score:    10,
		Alive:    true,
		Status:   snake.StatusActive,
	}
}

func TestBoardSize(t *testing.T) {
	w, h := BoardSize(core.NewGrid(30))
	if w != 62 || h != 33 {
		t.Errorf("Expected 62x33, got %dx%d", w, h)
	}
}

func TestDrawBoard(t *testing.T) {
	w, h := BoardSize(core.NewGrid(5))
	s := core.NewScreen(w, h)

	if !DrawBoard(s, testSnapshot(), snake.DefaultSpeed(), 0) {
		t.Fatal("Board should fit an exactly sized screen")
	}

	if !strings.HasPrefix(s.Row(0), "SCORE 10") {
		t.Errorf("Expected HUD on the first row, got %q", s.Row(0))
	}
	if s.Get(0, 1) != '┌' || s.Get(w-1, h-1) != '┘' {
		t.Error("Expected box corners around the board")
	}

	// Cell (x, y) is drawn at column 1+2x, row 2+y
	if got := s.Get(1+2*2, 2+2); got != glyphHead {
		t.Errorf("Expected head at (2,2), got %q", got)
	}
	if got := s.Get(1+2*1, 2+2); got != glyphBody {
		t.Errorf("Expected body at (1,2), got %q", got)
	}
	if got := s.Get(1, 2); got != glyphFood {
		t.Errorf("Expected food at (0,0), got %q", got)
	}
	if g := s.GetGlyph(1+2*2, 2+2); g.Color != core.ColorHead {
		t.Errorf("Expected live head color, got %v", g.Color)
	}
	if g := s.GetGlyph(1+2*1, 2+2); g.Color != core.ColorBody {
		t.Errorf("Expected body color, got %v", g.Color)
	}
	if g := s.GetGlyph(1, 2); g.Color != core.ColorFood {
		t.Errorf("Expected food color, got %v", g.Color)
	}
	if g := s.GetGlyph(0, 1); g.Color != core.ColorBorder {
		t.Errorf("Expected border color, got %v", g.Color)
	}
}

func TestDrawBoardHUD(t *testing.T) {
	_, h := BoardSize(core.NewGrid(5))
	s := core.NewScreen(120, h)

	DrawBoard(s, testSnapshot(), snake.DefaultSpeed(), 40)
	if row := strings.TrimSpace(s.Row(0)); row != "SCORE 10   HI-SCORE 40   LENGTH 2   SPEED 120ms" {
		t.Errorf("Unexpected HUD %q", row)
	}

	// The current score counts once it beats the session best
	DrawBoard(s, testSnapshot(), snake.DefaultSpeed(), 0)
	if row := s.Row(0); !strings.Contains(row, "HI-SCORE 10") {
		t.Errorf("Expected current score as best, got %q", row)
	}
}

func TestDrawBoardDeadHead(t *testing.T) {
	w, h := BoardSize(core.NewGrid(5))
	s := core.NewScreen(w, h)
	snap := testSnapshot()
	snap.Alive = false

	DrawBoard(s, snap, snake.DefaultSpeed(), 0)
	if g := s.GetGlyph(1+2*2, 2+2); g.Color != core.ColorDeadHead {
		t.Errorf("Expected dead head to be highlighted, got %v", g.Color)
	}
}

func TestDrawBoardTooSmall(t *testing.T) {
	s := core.NewScreen(40, 10)
	if DrawBoard(s, snake.Snapshot{GridSize: 30, Snake: []core.Cell{{X: 1, Y: 1}}}, snake.DefaultSpeed(), 0) {
		t.Fatal("A 30x30 board does not fit 40x10")
	}
	if !strings.Contains(s.String(), "Terminal too small") {
		t.Error("Expected a size hint")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawText(0, 0, "snake")
	s.SetColored(0, 1, '@', core.ColorBody)

	out := RenderScreen(s)
	if !strings.Contains(out, "snake") {
		t.Errorf("Rendered output lost text: %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("Expected 2 lines, got %q", out)
	}
}
