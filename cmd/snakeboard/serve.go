package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snakeboard/internal/api"
	"github.com/vovakirdan/snakeboard/internal/platform/tui"
	"github.com/vovakirdan/snakeboard/internal/session"
	"github.com/vovakirdan/snakeboard/internal/storage"
)

var (
	flagAddr        string
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the leaderboard server",
	Long: `Start the leaderboard HTTP API.

Endpoints:
  GET  /api/scores   - Top ten scores, best first
  POST /api/scores   - Submit {"username": "...", "score": n}
  GET  /api/play     - Play a server-side game over a websocket
  GET  /healthz      - Liveness check
  GET  /metrics      - Prometheus metrics (when enabled)

With --ssh the server also accepts SSH connections; each connection plays
its own game against the same leaderboard.

Examples:
  snakeboard serve                         # HTTP on :8080, sqlite at ~/.snakeboard/scores.db
  snakeboard serve --addr :9000 --ssh :2222
  snakeboard serve --db-driver postgres --db postgres://localhost/snake?sslmode=disable
  snakeboard serve --db-driver memory`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "HTTP listen address (default from config, :8080)")
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "Also serve the game over SSH on this address")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to SSH host key (auto-generated if missing)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "SSH idle timeout in minutes")
}

func runServe(cmd *cobra.Command, _ []string) {
	if err := serve(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// serve runs until a signal or a listener failure. Returning instead of
// exiting lets the deferred store Close run on every path.
func serve(cmd *cobra.Command) error {
	cfg := loadConfig(cmd)
	logger := newLogger(cfg)

	if flagAddr != "" {
		cfg.Server.Addr = flagAddr
	}

	store, err := storage.Open(cfg.Storage.Driver, cfg.Storage.DSN)
	if err != nil {
		// Reads keep working without a store; submissions fail with 500.
		logger.Error("Leaderboard storage unavailable", "driver", cfg.Storage.Driver, "err", err)
	}
	var lb storage.Leaderboard
	if store != nil {
		lb = storage.Instrument(store)
		defer store.Close()
	}

	var sshSrv *tui.SSHServer
	sshAddr := flagSSHAddr
	if sshAddr == "" && cmd.Flags().Changed("host-key") {
		sshAddr = cfg.SSH.Addr // --host-key alone enables SSH on the configured address
	}
	if sshAddr != "" {
		sshCfg := tui.DefaultSSHServerConfig()
		sshCfg.Address = sshAddr
		sshCfg.HostKeyPath = cfg.SSH.HostKey
		if flagHostKey != "" {
			sshCfg.HostKeyPath = flagHostKey
		}
		sshCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
		sshCfg.Grid = cfg.Game.Grid()
		sshCfg.Speed = cfg.Game.EffectiveSpeed()
		sshCfg.Seed = cfg.Game.Seed

		sshSrv, err = tui.NewSSHServer(sshCfg, storage.FailSoft(lb, logger), logger)
		if err != nil {
			return fmt.Errorf("creating SSH server: %w", err)
		}
	}

	hub := session.NewHub(session.Config{
		Grid:        cfg.Game.Grid(),
		Speed:       cfg.Game.EffectiveSpeed(),
		Seed:        cfg.Game.Seed,
		MaxSessions: cfg.Server.MaxSessions,
	}, api.SubmitResults(storage.FailSoft(lb, logger), logger))

	srv := api.New(api.Options{
		Addr:        cfg.Server.Addr,
		Leaderboard: lb,
		Hub:         hub,
		Logger:      logger,
		CORSOrigins: cfg.Server.CORSOrigins,
		RateRPS:     cfg.Server.RateLimit.RPS,
		RateBurst:   cfg.Server.RateLimit.Burst,
		Metrics:     cfg.Server.Metrics,
	})

	errCh := make(chan error, 2)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	if sshSrv != nil {
		go func() {
			errCh <- sshSrv.ListenAndServe()
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case sig := <-sigCh:
		logger.Info("Shutting down", "signal", sig.String())
	case runErr = <-errCh:
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if sshSrv != nil {
		if err := sshSrv.Shutdown(ctx); err != nil {
			logger.Warn("SSH shutdown", "err", err)
		}
	}
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		logger.Warn("HTTP shutdown", "err", err)
	}

	if runErr != nil {
		return fmt.Errorf("server: %w", runErr)
	}
	return nil
}
