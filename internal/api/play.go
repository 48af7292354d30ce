package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"

	"github.com/vovakirdan/snakeboard/internal/core"
	"github.com/vovakirdan/snakeboard/internal/games/snake"
	"github.com/vovakirdan/snakeboard/internal/session"
	"github.com/vovakirdan/snakeboard/internal/storage"
)

const (
	writeWait      = 5 * time.Second
	maxMessageSize = 512
)

// Message types on the /api/play socket.
const (
	MsgSteer    = "steer"
	MsgState    = "state"
	MsgGameOver = "game_over"
	MsgError    = "error"
)

// ClientMessage is sent by the player.
type ClientMessage struct {
	Type      string `json:"type"`
	Direction string `json:"direction,omitempty"`
}

// StateMessage carries the board after every tick.
type StateMessage struct {
	Type string `json:"type"`
	snake.Snapshot
}

// GameOverMessage is the last message of a game.
type GameOverMessage struct {
	Type     string         `json:"type"`
	Score    int            `json:"score"`
	Reason   snake.Reason   `json:"reason"`
	Snapshot snake.Snapshot `json:"snapshot"`
}

// ErrorMessage reports a refused game.
type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// SubmitResults returns a session.ResultHandler that stores the final score
// of every named player.
func SubmitResults(lb storage.Leaderboard, logger *log.Logger) session.ResultHandler {
	if logger == nil {
		logger = log.Default()
	}
	return func(res session.Result) {
		logger.Info("Game finished",
			"session", res.ID,
			"username", res.Username,
			"score", res.Score,
			"reason", res.Reason,
			"ticks", res.Ticks,
			"duration", res.Duration.Round(time.Millisecond),
		)
		if res.Username == "" || lb == nil {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := lb.SubmitScore(ctx, res.Username, res.Score); err != nil {
			logger.Error("Failed to store game result", "session", res.ID, "err", err)
		}
	}
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if s.hub == nil {
		writeError(w, http.StatusServiceUnavailable, "live play is disabled")
		return
	}

	username := strings.TrimSpace(r.URL.Query().Get("username"))
	if username != "" {
		name, err := storage.Validate(username, 0)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		username = name
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied.
		s.logger.Debug("Websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sess, err := s.hub.Start(ctx, username)
	if err != nil {
		msg := "cannot start game"
		if errors.Is(err, session.ErrHubFull) {
			msg = "server is full, try again later"
		}
		s.writeMessage(conn, ErrorMessage{Type: MsgError, Message: msg})
		s.closeSocket(conn, websocket.CloseTryAgainLater, msg)
		return
	}
	defer sess.Close()

	s.logger.Debug("Live game started", "session", sess.ID(), "username", username, "remote", clientIP(r))

	go s.readSteering(conn, sess, cancel)

	for evt := range sess.Events() {
		var msg any
		switch e := evt.(type) {
		case snake.StateEvent:
			msg = StateMessage{Type: MsgState, Snapshot: e.Snapshot}
		case snake.GameOverEvent:
			msg = GameOverMessage{Type: MsgGameOver, Score: e.Score, Reason: e.Reason, Snapshot: e.Snapshot}
		default:
			continue
		}
		if err := s.writeMessage(conn, msg); err != nil {
			s.logger.Debug("Websocket write failed", "session", sess.ID(), "err", err)
			return
		}
	}

	s.closeSocket(conn, websocket.CloseNormalClosure, "game over")
}

// readSteering forwards steer messages until the socket fails, then
// cancels the game.
func (s *Server) readSteering(conn *websocket.Conn, sess *session.Session, cancel context.CancelFunc) {
	defer cancel()
	conn.SetReadLimit(maxMessageSize)

	for {
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if msg.Type != MsgSteer {
			continue
		}
		d, err := core.ParseDirection(msg.Direction)
		if err != nil {
			s.logger.Debug("Ignoring steer message", "session", sess.ID(), "err", err)
			continue
		}
		sess.Steer(d)
	}
}

func (s *Server) writeMessage(conn *websocket.Conn, msg any) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}

func (s *Server) closeSocket(conn *websocket.Conn, code int, text string) {
	deadline := time.Now().Add(writeWait)
	conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, text), deadline)
}

// originChecker allows websocket upgrades from the configured CORS origins.
func originChecker(origins []string) func(r *http.Request) bool {
	allowAll := len(origins) == 0
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return allowAll || origin == "" || allowed[origin]
	}
}
