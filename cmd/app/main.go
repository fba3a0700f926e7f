package main

import (
	"roomslot/config"
	"roomslot/di"
	"roomslot/helper"
	"roomslot/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Room Slot API
// @version 1.0
// @description Meeting-room slot reservation: four daily windows per room, approval workflow and daily rollover.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.Init(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
