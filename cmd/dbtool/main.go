package main

import (
	"context"
	"load-route-service/internal/adapters/repositories"
	"load-route-service/internal/config"
	"load-route-service/internal/platform/db"
	"load-route-service/internal/platform/obs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// main creates the run-history schema in the Postgres database at DATABASE_URL.
func main() {
	envErr := godotenv.Load()

	if err := obs.SetupLogger(os.Stderr, config.Get("LOG_LEVEL", "info"), config.Get("LOG_FORMAT", "console")); err != nil {
		log.Fatal().Err(err).Msg("setup logger")
	}
	if envErr != nil {
		log.Info().Msg("no .env file found (using environment variables)")
	}

	databaseURL := config.Get("DATABASE_URL", "")
	if databaseURL == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := db.Open(ctx, databaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer conn.Close()

	log.Info().Msg("initializing database schema...")
	if err := repositories.InitPostgresSchema(ctx, conn); err != nil {
		log.Fatal().Err(err).Msg("schema initialization failed")
	}
	log.Info().Msg("schema ready")
}
