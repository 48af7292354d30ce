package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snakeboard/internal/core"
	"github.com/vovakirdan/snakeboard/internal/games/snake"
)

// Board glyphs. Every grid cell is two characters wide so the board looks
// square in a terminal.
const (
	glyphHead = '@'
	glyphBody = 'o'
	glyphFood = '*'
	cellWidth = 2
	hudHeight = 1
)

// colorStyles maps board roles to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:  lipgloss.NewStyle(),
	core.ColorBorder:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorFood:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBody:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorHead:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorDeadHead: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
}

// BoardSize returns the screen area needed to draw a grid, including the
// border and the HUD line.
func BoardSize(g core.Grid) (w, h int) {
	return g.Size*cellWidth + 2, g.Size + 2 + hudHeight
}

// DrawBoard draws the HUD and the board for snap, centered on dst. best is
// the session high score shown in the HUD.
// It reports false and draws a hint instead when dst is too small.
func DrawBoard(dst *core.Screen, snap snake.Snapshot, speed snake.SpeedConfig, best int) bool {
	grid := core.NewGrid(snap.GridSize)
	w, h := BoardSize(grid)
	if dst.Width() < w || dst.Height() < h {
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("Terminal too small: need %dx%d", w, h))
		return false
	}

	left := (dst.Width() - w) / 2
	top := (dst.Height() - h) / 2

	hud := fmt.Sprintf("SCORE %d   HI-SCORE %d   LENGTH %d   SPEED %dms",
		snap.Score, max(best, snap.Score), len(snap.Snake), speed.IntervalMs(snap.Score))
	dst.DrawText(left, top, hud)

	box := core.NewRect(left, top+hudHeight, w, grid.Size+2)
	dst.DrawBox(box, core.ColorBorder)

	plot := func(c core.Cell, r rune, color core.Color) {
		x := left + 1 + c.X*cellWidth
		y := top + hudHeight + 1 + c.Y
		dst.SetColored(x, y, r, color)
		dst.SetColored(x+1, y, ' ', color)
	}

	if snap.Food != nil {
		plot(*snap.Food, glyphFood, core.ColorFood)
	}
	// Body first so the head stays visible after a self collision
	for i := len(snap.Snake) - 1; i >= 1; i-- {
		plot(snap.Snake[i], glyphBody, core.ColorBody)
	}
	if len(snap.Snake) > 0 {
		headColor := core.ColorHead
		if !snap.Alive {
			headColor = core.ColorDeadHead
		}
		plot(snap.Snake[0], glyphHead, headColor)
	}
	return true
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetGlyph(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				g := s.GetGlyph(x, y)
				if g.Color != startColor {
					break
				}
				run.WriteRune(g.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
