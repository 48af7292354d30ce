// Package api serves the leaderboard over HTTP and hosts live games over
// websockets.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/vovakirdan/snakeboard/internal/session"
	"github.com/vovakirdan/snakeboard/internal/storage"
)

// Options configures a Server.
type Options struct {
	Addr string

	// Leaderboard backs /api/scores. It is wrapped with storage.FailSoft,
	// so a nil value serves an empty board and rejects submissions.
	Leaderboard storage.Leaderboard

	// Hub runs /api/play games. A nil hub disables the endpoint.
	Hub *session.Hub

	Logger *log.Logger

	CORSOrigins []string // Empty allows any origin
	RateRPS     float64  // Score submissions per second per IP, 0 = unlimited
	RateBurst   int
	Metrics     bool // Serve /metrics
}

// Server is the leaderboard HTTP server.
type Server struct {
	hs       *http.Server
	lb       storage.Leaderboard
	hub      *session.Hub
	logger   *log.Logger
	limiter  *ipLimiter
	upgrader websocket.Upgrader
}

// New builds a server and its routes. Call ListenAndServe to start it.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		lb:     storage.FailSoft(opts.Leaderboard, logger),
		hub:    opts.Hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(opts.CORSOrigins),
		},
	}
	if opts.RateRPS > 0 {
		s.limiter = newIPLimiter(opts.RateRPS, opts.RateBurst)
	}

	router := httprouter.New()
	router.GET("/api/scores", s.route("list_scores", s.handleListScores))
	router.POST("/api/scores", s.route("submit_score", s.rateLimited(s.handleSubmitScore)))
	router.GET("/api/play", s.route("play", s.handlePlay))
	router.GET("/healthz", s.route("healthz", s.handleHealth))
	if opts.Metrics {
		router.Handler(http.MethodGet, "/metrics", promhttp.Handler())
	}
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})

	s.hs = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.accessLog(c.Handler(router)),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.hs.Handler
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.hs.Addr
}

// ListenAndServe blocks until the server stops. A clean Shutdown returns nil.
func (s *Server) ListenAndServe() error {
	s.logger.Info("Leaderboard listening", "addr", s.hs.Addr)
	err := s.hs.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting requests, ends live games and waits for
// in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.hub != nil {
		s.hub.Close()
	}
	return s.hs.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
