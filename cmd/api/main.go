package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"microboard/cmd/app"
	"microboard/internal/config"
	"microboard/internal/database"
	handlers "microboard/internal/handler"
	"microboard/internal/logger"
	"microboard/internal/router"
	"microboard/internal/session"
	"microboard/internal/view"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	logger.Init(cfg.Log)

	db, services := app.App(cfg)
	defer database.MethodsDB.CloseDB(db)

	views, err := view.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse templates")
	}

	sessions := session.NewManager(cfg.Session)

	handler := handlers.NewHandlers(services, sessions, views)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           router.New(handler, services.User, sessions),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
