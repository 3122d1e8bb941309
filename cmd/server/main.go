package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"load-route-service/internal/adapters/cache"
	"load-route-service/internal/adapters/repositories"
	"load-route-service/internal/api"
	"load-route-service/internal/config"
	"load-route-service/internal/platform/db"
	"load-route-service/internal/platform/obs"
	"load-route-service/internal/ports"
	"load-route-service/internal/services"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// main is the application composition root.
// It wires the run-history and plan-cache adapters behind their ports and starts the HTTP server.
func main() {
	envErr := godotenv.Load()

	cfg, err := config.LoadSolver()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := obs.SetupLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if envErr != nil {
		log.Info().Msg("no .env file found (using environment variables)")
	}

	srvCfg, err := config.LoadServer()
	if err != nil {
		log.Fatal().Err(err).Msg("load server config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, runs, err := openRuns(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open run history")
	}
	if conn != nil {
		defer conn.Close()
	}

	routerCfg := api.RouterConfig{
		Defaults: services.PlanRoutesRequest{
			Cost:     cfg.Cost,
			Schedule: cfg.Schedule,
			Restarts: cfg.Restarts,
		},
		Runs: runs,
	}

	if srvCfg.RedisURL != "" {
		client, err := cache.Connect(ctx, srvCfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("connect plan cache")
		}
		defer client.Close()
		routerCfg.Cache = cache.NewRedisPlanCache(client, srvCfg.CacheTTL)
	}
	if srvCfg.PlanRate > 0 {
		routerCfg.PlanLimiter = rate.NewLimiter(rate.Limit(srvCfg.PlanRate), srvCfg.PlanBurst)
	}

	router := api.NewRouter(routerCfg)

	// Write timeout covers a full default-schedule solve of a large instance.
	srv := &http.Server{
		Addr:              ":" + srvCfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown")
		}
	}()

	log.Info().
		Str("addr", srv.Addr).
		Bool("run_history", runs != nil).
		Bool("plan_cache", routerCfg.Cache != nil).
		Float64("plans_per_second", srvCfg.PlanRate).
		Msg("server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server failed")
	}
}

// openRuns opens the configured run-history store. Both results are nil when
// history is off.
func openRuns(ctx context.Context, cfg config.SolverConfig) (*sql.DB, ports.RunRepository, error) {
	switch {
	case cfg.DatabaseURL != "":
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := repositories.InitPostgresSchema(ctx, conn); err != nil {
			conn.Close()
			return nil, nil, err
		}
		return conn, repositories.NewSQLRunRepository(conn), nil
	case cfg.RunsDBPath != "":
		conn, err := db.OpenSQLite(ctx, cfg.RunsDBPath)
		if err != nil {
			return nil, nil, err
		}
		if err := repositories.InitSchema(ctx, conn); err != nil {
			conn.Close()
			return nil, nil, err
		}
		return conn, repositories.NewSqliteRunRepository(conn), nil
	default:
		return nil, nil, nil
	}
}
