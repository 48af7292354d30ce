package core

import (
	"testing"
)

func TestScreenGlyphs(t *testing.T) {
	s := NewScreen(4, 3)

	if g := s.GetGlyph(3, 2); g != blank {
		t.Errorf("New screen should be blank, got %+v", g)
	}

	s.SetColored(1, 2, '@', ColorHead)
	if g := s.GetGlyph(1, 2); g.Rune != '@' || g.Color != ColorHead {
		t.Errorf("GetGlyph(1, 2) = %+v, expected head glyph", g)
	}

	// Plain Set resets the color of a previously colored cell
	s.Set(1, 2, 'x')
	if g := s.GetGlyph(1, 2); g.Rune != 'x' || g.Color != ColorDefault {
		t.Errorf("Set should use the default color, got %+v", g)
	}

	s.SetColored(1, 1, '*', ColorFood)
	s.Clear()
	if g := s.GetGlyph(1, 1); g != blank {
		t.Errorf("Clear should reset glyphs, got %+v", g)
	}
}

func TestScreenGlyphOutOfBounds(t *testing.T) {
	s := NewScreen(2, 2)

	for _, p := range [][2]int{{-1, 0}, {2, 0}, {0, -1}, {0, 2}} {
		s.SetColored(p[0], p[1], 'o', ColorBody)
		if g := s.GetGlyph(p[0], p[1]); g != blank {
			t.Errorf("GetGlyph(%d, %d) = %+v, expected blank", p[0], p[1], g)
		}
	}
	if s.String() != "  \n  " {
		t.Errorf("Out of bounds writes should not land on screen, got %q", s.String())
	}
}

func TestScreenDrawBoxColor(t *testing.T) {
	s := NewScreen(6, 5)
	s.DrawBox(NewRect(0, 0, 6, 5), ColorBorder)

	expected := []string{
		"┌────┐",
		"│    │",
		"│    │",
		"│    │",
		"└────┘",
	}
	for y, want := range expected {
		if got := s.Row(y); got != want {
			t.Errorf("Row(%d) = %q, expected %q", y, got, want)
		}
	}

	for y := 0; y < 5; y++ {
		for x := 0; x < 6; x++ {
			onEdge := x == 0 || x == 5 || y == 0 || y == 4
			want := ColorDefault
			if onEdge {
				want = ColorBorder
			}
			if got := s.GetGlyph(x, y).Color; got != want {
				t.Errorf("Color at (%d, %d) = %v, expected %v", x, y, got, want)
			}
		}
	}
}

func TestScreenResizeKeepsColors(t *testing.T) {
	s := NewScreen(4, 4)
	s.SetColored(0, 0, '@', ColorDeadHead)
	s.SetColored(3, 3, '*', ColorFood)

	s.Resize(2, 2)
	if g := s.GetGlyph(0, 0); g.Rune != '@' || g.Color != ColorDeadHead {
		t.Errorf("Resize should keep glyphs inside the new bounds, got %+v", g)
	}

	s.Resize(4, 4)
	if g := s.GetGlyph(3, 3); g != blank {
		t.Errorf("Cells cut off by a shrink should come back blank, got %+v", g)
	}
}

func TestScreenDrawTextCenteredRunes(t *testing.T) {
	s := NewScreen(9, 1)
	s.DrawTextCentered(0, "ÉCLAT")

	if got := s.Row(0); got != "  ÉCLAT  " {
		t.Errorf("Row(0) = %q, expected text centered by runes", got)
	}
	if g := s.GetGlyph(2, 0); g.Color != ColorDefault {
		t.Errorf("Text should use the default color, got %v", g.Color)
	}
}
