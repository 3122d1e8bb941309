package api

import (
	"load-route-service/internal/api/handlers"
	"load-route-service/internal/platform/metrics"
	"load-route-service/internal/ports"
	"load-route-service/internal/services"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// RouterConfig carries the handler dependencies. Runs, Cache and PlanLimiter
// are optional.
type RouterConfig struct {
	Defaults    services.PlanRoutesRequest
	Runs        ports.RunRepository
	Cache       ports.PlanCache
	PlanLimiter *rate.Limiter
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(cfg RouterConfig) http.Handler {
	metrics.Register()

	mux := http.NewServeMux()

	planHandler := &handlers.PlanHandler{
		Defaults: cfg.Defaults,
		Runs:     cfg.Runs,
		Cache:    cfg.Cache,
	}
	runHandler := &handlers.RunHandler{Repo: cfg.Runs}
	healthHandler := &handlers.HealthHandler{Runs: cfg.Runs, Cache: cfg.Cache}

	mux.HandleFunc("/health", healthHandler.Check)
	mux.Handle("/plans", rateLimit(cfg.PlanLimiter, http.HandlerFunc(planHandler.Plan)))
	mux.HandleFunc("/runs", runHandler.List)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return loggingMiddleware(mux)
}
