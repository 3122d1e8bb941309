package main

import (
	"context"
	"fmt"
	"io"
	"load-route-service/internal/adapters/instance"
	"load-route-service/internal/adapters/repositories"
	"load-route-service/internal/config"
	"load-route-service/internal/domain"
	"load-route-service/internal/platform/db"
	"load-route-service/internal/platform/metrics"
	"load-route-service/internal/platform/obs"
	"load-route-service/internal/ports"
	"load-route-service/internal/services"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// main solves one instance file and prints a route per driver to stdout.
func main() {
	if len(os.Args) != 2 {
		fmt.Println("usage: solver <problem-file>")
		os.Exit(1)
	}

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
		log.Debug().Msg("no .env file found (using environment variables)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1], cfg, os.Stdout); err != nil {
		stop()
		log.Fatal().Err(err).Msg("solve failed")
	}
}

func run(ctx context.Context, path string, cfg config.SolverConfig, stdout io.Writer) error {
	runID := uuid.NewString()
	ctx = obs.WithRunID(ctx, runID)
	startedAt := time.Now()

	seed := cfg.Seed
	if seed == 0 {
		seed = startedAt.UnixNano()
	}

	runs, closeRuns, err := openRunRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRuns()

	log.Info().
		Str("run_id", runID).
		Str("instance", path).
		Int64("seed", seed).
		Int("restarts", cfg.Restarts).
		Msg("solve started")

	req := services.PlanRoutesRequest{
		Cost:     cfg.Cost,
		Schedule: cfg.Schedule,
		Seed:     seed,
		Restarts: cfg.Restarts,
	}
	if every := cfg.ProgressEvery; every > 0 {
		req.Progress = func(restart int, p services.Progress) {
			if p.Iteration%every != 0 {
				return
			}
			log.Debug().
				Str("run_id", runID).
				Int("restart", restart).
				Int("iteration", p.Iteration).
				Float64("temperature", p.Temperature).
				Float64("current_cost", p.CurrentCost).
				Float64("best_cost", p.BestCost).
				Msg("anneal progress")
		}
	}

	res, err := services.PlanRoutes(ctx, req, instance.NewFileLoadRepository(path))
	if err != nil {
		metrics.ObserveSolve("cli", "error", 0, 0, 0, 0, time.Since(startedAt))
		writeMetrics(cfg.MetricsTextfile)
		return err
	}

	if err := printRoutes(stdout, res.Solution); err != nil {
		return fmt.Errorf("write routes: %w", err)
	}

	log.Info().
		Str("run_id", runID).
		Int("loads", res.LoadCount).
		Int("drivers", res.Solution.Drivers).
		Int("infeasible", res.Solution.Infeasible).
		Float64("total_cost", res.Solution.Cost).
		Float64("initial_cost", res.InitialCost).
		Int("winning_restart", res.Restart).
		Int("stalls", res.Stalls).
		Int64("dur_ms", res.Duration.Milliseconds()).
		Msg("solve done")

	metrics.ObserveSolve("cli", "ok", res.Solution.Cost, res.Solution.Drivers, res.Evaluations, res.Stalls, res.Duration)
	writeMetrics(cfg.MetricsTextfile)

	if runs != nil {
		if err := runs.SaveRun(ctx, services.NewRun(runID, "cli", startedAt, res)); err != nil {
			log.Warn().Err(err).Str("run_id", runID).Msg("record run failed")
		}
	}

	return nil
}

// printRoutes writes each driver's load ids on its own line, e.g. [1, 2, 3].
func printRoutes(w io.Writer, sol domain.Solution) error {
	for _, seg := range sol.Segments() {
		ids := make([]string, len(seg))
		for i, id := range seg {
			ids[i] = strconv.Itoa(id)
		}
		if _, err := fmt.Fprintf(w, "[%s]\n", strings.Join(ids, ", ")); err != nil {
			return err
		}
	}
	return nil
}

// openRunRepository picks Postgres when DATABASE_URL is set, SQLite when
// RUNS_DB_PATH is set, and nothing otherwise.
func openRunRepository(ctx context.Context, cfg config.SolverConfig) (ports.RunRepository, func(), error) {
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
		return repositories.NewSQLRunRepository(conn), func() { conn.Close() }, nil
	case cfg.RunsDBPath != "":
		conn, err := db.OpenSQLite(ctx, cfg.RunsDBPath)
		if err != nil {
			return nil, nil, err
		}
		if err := repositories.InitSchema(ctx, conn); err != nil {
			conn.Close()
			return nil, nil, err
		}
		return repositories.NewSqliteRunRepository(conn), func() { conn.Close() }, nil
	default:
		return nil, func() {}, nil
	}
}

func writeMetrics(path string) {
	if path == "" {
		return
	}
	if err := metrics.WriteTextfile(path); err != nil {
		log.Warn().Err(err).Msg("write metrics failed")
	}
}
