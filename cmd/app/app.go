package app

import (
	"github.com/rs/zerolog/log"

	"microboard/internal/config"
	"microboard/internal/database"
	"microboard/internal/repository"
	"microboard/internal/service"
)

// App connects to the database and wires repositories into services.
func App(cfg *config.Config) (*database.DB, *service.Service) {
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg)

	return db, services
}
