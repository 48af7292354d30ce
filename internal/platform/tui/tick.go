// Package tui provides the Bubble Tea front end: the playable board, the
// name prompt after a game and the leaderboard screen, locally or over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg triggers one simulation tick. Seq is the tick token current when
// it was scheduled; the model drops ticks whose token has since changed.
type TickMsg struct {
	Seq int
	At  time.Time
}

// tickCmd schedules the next tick after interval.
func tickCmd(seq int, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Seq: seq, At: t}
	})
}
