package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Wyydra/huddle/internal/adapter/driven/frame"
	"github.com/Wyydra/huddle/internal/adapter/driven/gateway/ws"
	badgerdir "github.com/Wyydra/huddle/internal/adapter/driven/persistence/badger"
	"github.com/Wyydra/huddle/internal/adapter/driven/persistence/memory"
	registry "github.com/Wyydra/huddle/internal/adapter/driven/registry/memory"
	"github.com/Wyydra/huddle/internal/adapter/driven/secret"
	"github.com/Wyydra/huddle/internal/adapter/driven/token"
	handler "github.com/Wyydra/huddle/internal/adapter/driving/http"
	"github.com/Wyydra/huddle/internal/config"
	"github.com/Wyydra/huddle/internal/core/port"
	"github.com/Wyydra/huddle/internal/core/service"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log.Logger = cfg.Logger()
	l := log.Logger

	var directory port.Directory
	switch cfg.DirectoryBackend {
	case config.BackendBadger:
		db, err := badgerdir.Open(cfg.BadgerPath)
		if err != nil {
			return err
		}
		defer func() {
			if err := db.Close(); err != nil {
				l.Error().Err(err).Msg("Error closing badger")
			}
		}()
		directory = badgerdir.NewDirectory(db)
	default:
		directory = memory.NewDirectory()
	}
	l.Info().Str("backend", cfg.DirectoryBackend).Msg("Directory ready")

	var admissions port.AdmissionIssuer
	if cfg.AdmissionSecret != "" {
		issuer, err := token.NewJWTIssuer(cfg.AdmissionSecret, cfg.AdmissionTTL)
		if err != nil {
			return err
		}
		admissions = issuer
	}

	scope, err := service.ParseBroadcastScope(cfg.BroadcastScope)
	if err != nil {
		return err
	}

	sessions := registry.NewRegistry()
	relay := service.NewRelay(sessions, service.NewRoomBroadcaster(sessions, scope), service.RelayOptions{
		WrapSignals: cfg.WrapSignals,
	})
	meetings := service.NewMeetingService(directory, secret.NewArgon2Hasher(), admissions, relay)
	frames := service.NewFrameService(frame.NewOverlayAnalyzer(frame.NopDetector{}), cfg.FrameOverlayEnabled)
	hub := ws.NewHub()

	h := handler.NewHandler(meetings, relay, frames, hub, handler.Options{
		StaticDir:        cfg.StaticDir,
		RequireAdmission: cfg.RequireAdmission,
		ICEServers:       cfg.ICEServers,
		WS: ws.Options{
			MaxMessageBytes: int64(cfg.WSMaxMessageBytes),
			SendBuffer:      cfg.WSSendBuffer,
			WriteTimeout:    cfg.WSWriteTimeout,
			PongTimeout:     cfg.WSPongTimeout,
			PingInterval:    cfg.WSPingInterval,
		},
	})

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: h.NewRouter(),
	}

	serveErr := make(chan error, 1)
	go func() {
		l.Info().Str("addr", srv.Addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		return err
	case <-quit:
	}
	l.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		l.Error().Err(err).Msg("Server forced to shutdown")
	}

	hub.Stop()
	l.Info().Msg("Server exited")
	return nil
}
