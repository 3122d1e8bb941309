package config

import (
	"fmt"
	"load-route-service/internal/services"
	"os"
	"strconv"
	"strings"
	"time"
)

// Get returns the trimmed value of key, or fallback when it is unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) (int, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q: %w", key, v, err)
	}
	return n, nil
}

func GetInt64(key string, fallback int64) (int64, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q: %w", key, v, err)
	}
	return n, nil
}

func GetFloat(key string, fallback float64) (float64, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q: %w", key, v, err)
	}
	return f, nil
}

func GetBool(key string, fallback bool) (bool, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s=%q: %w", key, v, err)
	}
	return b, nil
}

func GetDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q: %w", key, v, err)
	}
	return d, nil
}

// SolverConfig is everything a solve needs besides the instance itself.
type SolverConfig struct {
	Cost     services.CostModel
	Schedule services.Schedule

	// Seed 0 means "pick one from the clock"; callers resolve it.
	Seed     int64
	Restarts int

	RunsDBPath      string // SQLite run history, off when empty
	DatabaseURL     string // Postgres run history, wins over RunsDBPath
	MetricsTextfile string // CLI only
	ProgressEvery   int    // log every n outer iterations, 0 disables

	LogLevel  string
	LogFormat string
}

// LoadSolver reads SolverConfig from the environment. Unset variables keep
// the built-in defaults.
func LoadSolver() (SolverConfig, error) {
	cfg := SolverConfig{
		Cost:            services.DefaultCostModel(),
		Schedule:        services.DefaultSchedule(),
		RunsDBPath:      Get("RUNS_DB_PATH", ""),
		DatabaseURL:     Get("DATABASE_URL", ""),
		MetricsTextfile: Get("METRICS_TEXTFILE", ""),
		LogLevel:        Get("LOG_LEVEL", "info"),
		LogFormat:       Get("LOG_FORMAT", "json"),
	}

	var err error
	if cfg.Cost.Capacity, err = GetFloat("SOLVER_CAPACITY", cfg.Cost.Capacity); err != nil {
		return SolverConfig{}, err
	}
	if cfg.Cost.Penalty, err = GetFloat("SOLVER_PENALTY", cfg.Cost.Penalty); err != nil {
		return SolverConfig{}, err
	}
	if cfg.Cost.DriverCost, err = GetFloat("SOLVER_DRIVER_COST", cfg.Cost.DriverCost); err != nil {
		return SolverConfig{}, err
	}
	if cfg.Schedule.InitialTemp, err = GetFloat("SOLVER_INITIAL_TEMP", cfg.Schedule.InitialTemp); err != nil {
		return SolverConfig{}, err
	}
	if cfg.Schedule.Alpha, err = GetFloat("SOLVER_ALPHA", cfg.Schedule.Alpha); err != nil {
		return SolverConfig{}, err
	}
	if cfg.Schedule.Iterations, err = GetInt("SOLVER_ITERATIONS", cfg.Schedule.Iterations); err != nil {
		return SolverConfig{}, err
	}
	if cfg.Schedule.InnerMoves, err = GetInt("SOLVER_INNER_MOVES", cfg.Schedule.InnerMoves); err != nil {
		return SolverConfig{}, err
	}
	if cfg.Seed, err = GetInt64("SOLVER_SEED", 0); err != nil {
		return SolverConfig{}, err
	}
	if cfg.Restarts, err = GetInt("SOLVER_RESTARTS", 1); err != nil {
		return SolverConfig{}, err
	}
	if cfg.ProgressEvery, err = GetInt("PROGRESS_EVERY", 100); err != nil {
		return SolverConfig{}, err
	}

	if err := cfg.Schedule.Validate(); err != nil {
		return SolverConfig{}, fmt.Errorf("config: %w", err)
	}
	if cfg.Cost.Capacity <= 0 {
		return SolverConfig{}, fmt.Errorf("config: SOLVER_CAPACITY must be > 0, got %g", cfg.Cost.Capacity)
	}
	if cfg.Restarts < 1 {
		return SolverConfig{}, fmt.Errorf("config: SOLVER_RESTARTS must be >= 1, got %d", cfg.Restarts)
	}

	return cfg, nil
}

// ServerConfig holds the HTTP-only settings.
type ServerConfig struct {
	Port string

	RedisURL string // plan cache, off when empty
	CacheTTL time.Duration

	// PlanRate is the sustained POST /plans rate per second, 0 disables
	// limiting.
	PlanRate  float64
	PlanBurst int
}

func LoadServer() (ServerConfig, error) {
	cfg := ServerConfig{
		Port:     Get("PORT", "8080"),
		RedisURL: Get("REDIS_URL", ""),
	}

	var err error
	if cfg.CacheTTL, err = GetDuration("PLAN_CACHE_TTL", 24*time.Hour); err != nil {
		return ServerConfig{}, err
	}
	if cfg.PlanRate, err = GetFloat("PLANS_PER_SECOND", 2); err != nil {
		return ServerConfig{}, err
	}
	if cfg.PlanBurst, err = GetInt("PLANS_BURST", 4); err != nil {
		return ServerConfig{}, err
	}

	if cfg.PlanRate < 0 {
		return ServerConfig{}, fmt.Errorf("config: PLANS_PER_SECOND must be >= 0, got %g", cfg.PlanRate)
	}
	if cfg.PlanRate > 0 && cfg.PlanBurst < 1 {
		return ServerConfig{}, fmt.Errorf("config: PLANS_BURST must be >= 1, got %d", cfg.PlanBurst)
	}

	return cfg, nil
}
