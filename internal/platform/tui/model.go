package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snakeboard/internal/core"
	"github.com/vovakirdan/snakeboard/internal/games/snake"
	"github.com/vovakirdan/snakeboard/internal/storage"
)

const submitTimeout = 5 * time.Second

// Options configures a game model.
type Options struct {
	Grid    core.Grid
	Speed   snake.SpeedConfig
	Runtime core.RuntimeConfig

	// Username prefills the name prompt after a game.
	Username string

	// Leaderboard receives finished games. Nil skips the name prompt.
	Leaderboard storage.Leaderboard
}

type phase int

const (
	phasePlaying phase = iota
	phasePaused
	phaseNaming     // Asking for a name to submit under
	phaseSubmitting // Waiting for the leaderboard
	phaseScores     // Showing the leaderboard after a submission
	phaseOver       // Game over, nothing to submit
)

// submittedMsg carries the result of a score submission.
type submittedMsg struct {
	record storage.ScoreRecord
	err    error
}

// Model is the Bubble Tea model for one player's snake games.
type Model struct {
	opts  Options
	state *snake.State
	seed  int64
	gen   int // Games started, offsets the food seed

	// tickSeq identifies the one tick chain allowed to advance the game.
	// Bumped on every pause and restart so ticks already in flight are dropped.
	tickSeq int

	best  int // Best score of this session
	phase phase
	screen *core.Screen
	keys   *KeyMapper

	name      textinput.Model
	notice    string
	submitted *storage.ScoreRecord
	board     ScoreboardModel

	quitting bool
}

// NewModel creates a model and its first game.
func NewModel(opts Options) Model {
	if opts.Grid.Size <= 0 {
		opts.Grid = core.GridFromPixels(core.DefaultBoardPixels, core.DefaultCellPixels)
	}
	if opts.Speed == (snake.SpeedConfig{}) {
		opts.Speed = snake.DefaultSpeed()
	}
	if opts.Runtime.ScreenW <= 0 || opts.Runtime.ScreenH <= 0 {
		defaults := core.DefaultConfig()
		opts.Runtime.ScreenW, opts.Runtime.ScreenH = defaults.ScreenW, defaults.ScreenH
	}

	seed := opts.Runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ti := textinput.New()
	ti.Placeholder = "YOUR NAME"
	ti.CharLimit = storage.MaxUsernameLen
	ti.Width = storage.MaxUsernameLen + 1

	m := Model{
		opts:   opts,
		seed:   seed,
		screen: core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		keys:   NewKeyMapper(),
		name:   ti,
	}
	m.reset()
	return m
}

// reset starts a new game. Ticks scheduled for the old one become stale.
func (m *Model) reset() {
	m.gen++
	m.tickSeq++
	placer := snake.NewFoodPlacer(m.opts.Grid, m.seed+int64(m.gen))
	m.state = snake.New(m.opts.Grid, placer)
	m.phase = phasePlaying
	m.notice = ""
	m.submitted = nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return m.nextTick()
}

func (m Model) nextTick() tea.Cmd {
	return tickCmd(m.tickSeq, m.opts.Speed.Interval(m.state.Score()))
}

// boardFits reports whether the whole board is visible on the screen.
func (m Model) boardFits() bool {
	w, h := BoardSize(m.opts.Grid)
	return m.opts.Runtime.ScreenW >= w && m.opts.Runtime.ScreenH >= h
}

// pause stops the tick chain. Resuming starts a fresh one.
func (m *Model) pause() {
	m.phase = phasePaused
	m.tickSeq++
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		updated, _ := m.board.Update(msg)
		m.board = updated.(ScoreboardModel)
		if m.phase == phasePlaying && !m.boardFits() {
			m.pause()
		}
		return m, nil

	case TickMsg:
		return m.handleTick(msg)

	case submittedMsg:
		return m.handleSubmitted(msg)

	case scoresLoadedMsg:
		updated, cmd := m.board.Update(msg)
		m.board = updated.(ScoreboardModel)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.phase == phaseNaming {
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleTick advances the simulation and schedules the next tick with the
// interval for the new score.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != m.tickSeq || m.phase != phasePlaying {
		return m, nil
	}
	if !m.boardFits() {
		m.pause()
		return m, nil
	}

	m.state.Tick()
	if m.state.Status().Terminal() {
		return m.gameOver()
	}
	return m, m.nextTick()
}

func (m Model) gameOver() (tea.Model, tea.Cmd) {
	if score := m.state.Score(); score > m.best {
		m.best = score
	}
	if m.opts.Leaderboard == nil {
		m.phase = phaseOver
		return m, nil
	}

	m.phase = phaseNaming
	m.notice = ""
	m.name.SetValue(strings.ToUpper(m.opts.Username))
	m.name.CursorEnd()
	return m, m.name.Focus()
}

// handleKey processes keyboard input for the current phase.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.phase == phaseNaming {
		return m.handleNameKey(msg)
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.phase {
	case phasePlaying:
		if d, ok := action.Direction(); ok {
			m.state.Steer(d)
			return m, nil
		}
		if action == core.ActionPause {
			m.pause()
		}
		return m, nil

	case phasePaused:
		switch action {
		case core.ActionPause, core.ActionConfirm:
			if !m.boardFits() {
				return m, nil
			}
			m.phase = phasePlaying
			return m, m.nextTick()
		case core.ActionRestart:
			m.reset()
			return m, m.nextTick()
		}
		return m, nil

	case phaseOver, phaseScores:
		if action == core.ActionRestart {
			m.reset()
			return m, m.nextTick()
		}
		if m.phase == phaseScores {
			updated, cmd := m.board.Update(msg)
			m.board = updated.(ScoreboardModel)
			if m.board.IsGoingBack() {
				m.phase = phaseOver
				return m, nil
			}
			return m, filterQuit(cmd)
		}
	}
	return m, nil
}

// filterQuit drops tea.Quit from a nested model's command; only this model
// decides when the program ends.
func filterQuit(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		msg := cmd()
		if _, ok := msg.(tea.QuitMsg); ok {
			return nil
		}
		return msg
	}
}

func (m Model) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.name.Blur()
		m.phase = phaseOver
		return m, nil
	case "enter":
		if _, err := storage.Validate(m.name.Value(), m.state.Score()); err != nil {
			m.notice = err.Error()
			return m, nil
		}
		m.name.Blur()
		m.phase = phaseSubmitting
		m.notice = ""
		return m, submitCmd(m.opts.Leaderboard, m.name.Value(), m.state.Score())
	}

	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return m, cmd
}

func submitCmd(lb storage.Leaderboard, username string, score int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		record, err := lb.SubmitScore(ctx, username, score)
		return submittedMsg{record: record, err: err}
	}
}

func (m Model) handleSubmitted(msg submittedMsg) (tea.Model, tea.Cmd) {
	if m.phase != phaseSubmitting {
		return m, nil
	}

	if msg.err != nil {
		if storage.IsValidation(msg.err) {
			m.phase = phaseNaming
			m.notice = msg.err.Error()
			return m, m.name.Focus()
		}
		m.phase = phaseOver
		m.notice = "Could not save score: leaderboard unavailable"
		return m, nil
	}

	record := msg.record
	m.submitted = &record
	m.phase = phaseScores
	m.board = NewScoreboardModel(m.opts.Leaderboard, m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH).Highlight(record.ID)
	return m, m.board.Init()
}

// Score returns the current game's score.
func (m Model) Score() int {
	return m.state.Score()
}

// Best returns the best score of this session.
func (m Model) Best() int {
	return m.best
}

// Snapshot returns the current game state.
func (m Model) Snapshot() snake.Snapshot {
	return m.state.Snapshot()
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.phase {
	case phaseNaming, phaseSubmitting:
		return m.viewNaming()
	case phaseScores:
		return m.board.View() + "\n" + hintStyle.Render(centerText("r: play again   q: quit", m.opts.Runtime.ScreenW))
	}

	m.screen.Clear()
	if DrawBoard(m.screen, m.state.Snapshot(), m.opts.Speed, m.best) {
		mid := m.screen.Height() / 2
		switch m.phase {
		case phasePaused:
			m.screen.DrawTextCentered(mid, " PAUSED ")
			m.screen.DrawTextCentered(mid+1, " p: resume  r: restart  q: quit ")
		case phaseOver:
			m.screen.DrawTextCentered(mid-1, fmt.Sprintf(" GAME OVER: %s ", reasonText(m.state.Reason())))
			m.screen.DrawTextCentered(mid, fmt.Sprintf(" SCORE %d   HI-SCORE %d ", m.state.Score(), m.best))
			m.screen.DrawTextCentered(mid+1, " r: play again  q: quit ")
			if m.notice != "" {
				m.screen.DrawTextCentered(mid+2, " "+m.notice+" ")
			}
		}
	} else if m.phase == phasePaused {
		m.screen.DrawTextCentered(m.screen.Height()/2+1, "Game paused until the board fits")
	}
	return RenderScreen(m.screen)
}

func (m Model) viewNaming() string {
	var b strings.Builder
	width := m.opts.Runtime.ScreenW

	b.WriteString(titleStyle.Render(centerText("GAME OVER", width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("%s  -  SCORE %d  -  HI-SCORE %d", reasonText(m.state.Reason()), m.state.Score(), m.best), width))
	b.WriteString("\n\n")

	if m.phase == phaseSubmitting {
		b.WriteString(centerText("Saving score...", width))
		return b.String()
	}

	b.WriteString(centerText("Enter your name for the leaderboard:", width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.name.View(), width))
	b.WriteString("\n\n")
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(centerText(m.notice, width)))
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render(centerText("enter: submit   esc: skip", width)))
	return b.String()
}

func reasonText(r snake.Reason) string {
	switch r {
	case snake.ReasonWall:
		return "hit the wall"
	case snake.ReasonSelf:
		return "bit yourself"
	case snake.ReasonBoardFull:
		return "board cleared"
	default:
		return "game over"
	}
}

// Run starts the Bubble Tea program and blocks until the player quits.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
