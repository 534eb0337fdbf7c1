package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"sockchat/internal/api"
	"sockchat/internal/broker"
	"sockchat/internal/config"
	"sockchat/internal/message"
	"sockchat/internal/registry"
	"sockchat/internal/room"
	"sockchat/internal/storage"
	"sockchat/internal/typing"
)

func main() {
	cfg := config.Load()

	var logger zerolog.Logger
	if cfg.IsDevelopment() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Logger()
	} else {
		logger = zerolog.New(os.Stdout).
			With().
			Timestamp().
			Logger()
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logger.Fatal().Err(err).Str("dir", cfg.UploadDir).Msg("could not create upload directory")
	}

	// Messages, presence and typing state are in-memory only and lost on
	// restart; the room list is the single persisted artifact.
	rooms := room.NewDirectory(storage.NewFileStore(cfg.RoomsFile), logger)
	b := broker.New(logger, registry.New(), rooms, message.NewStore(message.DefaultCapacity), typing.New())

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: api.NewEngine(cfg, b, logger),
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
	}
}
