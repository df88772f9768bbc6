package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/tarjumo/internal/app"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/config"
)

// LoadEnvironment reads .env (if present), loads and validates the
// configuration and sets up logging for it.
func LoadEnvironment() *config.Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	app.SetupLogging(cfg)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	return cfg
}
