// main.go
//
// Entry point for the Anagram Manager web server.
// Responsibilities:
//   - Load .env and configuration (flags over env over defaults).
//   - Configure the global zerolog logger.
//   - Build the in-memory session store, event dispatcher and HTTP server.
//   - Serve until SIGINT/SIGTERM, then shut down gracefully.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/anagram-manager/internal/config"
	"github.com/robalobadob/anagram-manager/internal/game"
	"github.com/robalobadob/anagram-manager/internal/httpserver"
	"github.com/robalobadob/anagram-manager/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.SessionSecret == config.DevSecret {
		log.Warn().Msg("SESSION_SECRET not set, using development secret")
	}

	srv, err := httpserver.New(
		store.NewMemoryStore(cfg.SessionTTL),
		game.NewDispatcher(nil),
		httpserver.Options{
			Secret:       cfg.SessionSecret,
			TTL:          cfg.SessionTTL,
			CookieName:   cfg.CookieName,
			CookieSecure: cfg.CookieSecure,
		},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Int("port", cfg.Port).Dur("session_ttl", cfg.SessionTTL).Msg("starting anagram-manager")
	if err := srv.Start(ctx, cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}
