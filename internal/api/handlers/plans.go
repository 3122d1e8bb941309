package handlers

import (
	"context"
	"errors"
	"load-route-service/internal/adapters/instance"
	"load-route-service/internal/api/dto"
	"load-route-service/internal/domain"
	"load-route-service/internal/platform/metrics"
	"load-route-service/internal/platform/obs"
	"load-route-service/internal/ports"
	"load-route-service/internal/services"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	maxInstanceBytes = 10 << 20
	maxRestarts      = 64
)

type PlanHandler struct {
	// Defaults carries the cost model, schedule and restart count; Seed and
	// Restarts can be overridden per request.
	Defaults services.PlanRoutesRequest

	// Runs records finished solves. Nil disables history.
	Runs ports.RunRepository

	// Cache answers repeated identical requests. Nil disables caching.
	Cache ports.PlanCache
}

// Plan solves the instance posted as the request body.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	seed, ok := queryInt(r, "seed", time.Now().UnixNano())
	if !ok {
		writeError(w, r, http.StatusBadRequest, "seed must be an integer")
		return
	}

	defRestarts := int64(h.Defaults.Restarts)
	if defRestarts < 1 {
		defRestarts = 1
	}
	restarts, ok := queryInt(r, "restarts", defRestarts)
	if !ok || restarts < 1 || restarts > maxRestarts {
		writeError(w, r, http.StatusBadRequest, "restarts must be between 1 and 64")
		return
	}

	defer r.Body.Close()
	loads, err := instance.ParseLoads(http.MaxBytesReader(w, r.Body, maxInstanceBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "instance too large")
			return
		}
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	runID := uuid.NewString()
	ctx := obs.WithRunID(r.Context(), runID)
	startedAt := time.Now()

	req := h.Defaults
	req.Seed = seed
	req.Restarts = int(restarts)
	req.Progress = nil

	var key string
	if h.Cache != nil {
		key = services.PlanKey(loads, req)
		if sol, ok := h.cachedSolution(ctx, key, loads, req.Cost); ok {
			metrics.ObserveSolve("http", "cached", sol.Cost, sol.Drivers, 0, 0, time.Since(startedAt))
			log.Info().Str("run_id", runID).Int64("seed", seed).Float64("total_cost", sol.Cost).Msg("plan served from cache")
			writeJSON(w, r, http.StatusOK, dto.PlanResponse{
				RunID:        runID,
				Seed:         seed,
				Restarts:     req.Restarts,
				TotalCost:    sol.Cost,
				DistanceCost: sol.DistanceCost,
				Drivers:      sol.Drivers,
				Infeasible:   sol.Infeasible,
				Routes:       sol.Segments(),
				DurationMS:   time.Since(startedAt).Milliseconds(),
				Cached:       true,
			})
			return
		}
	}

	res, err := services.PlanRoutes(ctx, req, instance.NewStaticLoadRepository(loads))
	if err != nil {
		metrics.ObserveSolve("http", "error", 0, 0, 0, 0, time.Since(startedAt))
		if errors.Is(err, services.ErrDuplicateLoad) || errors.Is(err, services.ErrDepotLoad) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		log.Error().Err(err).Str("run_id", runID).Msg("plan routes failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	metrics.ObserveSolve("http", "ok", res.Solution.Cost, res.Solution.Drivers, res.Evaluations, res.Stalls, res.Duration)
	log.Info().
		Str("run_id", runID).
		Int64("seed", seed).
		Int("loads", res.LoadCount).
		Int("drivers", res.Solution.Drivers).
		Float64("total_cost", res.Solution.Cost).
		Int64("dur_ms", res.Duration.Milliseconds()).
		Msg("plan solved")

	if h.Cache != nil {
		if err := h.Cache.PutPlan(ctx, key, res.Solution.Segments()); err != nil {
			log.Warn().Err(err).Str("run_id", runID).Msg("cache plan failed")
		}
	}
	if h.Runs != nil {
		if err := h.Runs.SaveRun(ctx, services.NewRun(runID, "http", startedAt, res)); err != nil {
			log.Warn().Err(err).Str("run_id", runID).Msg("record run failed")
		}
	}

	writeJSON(w, r, http.StatusOK, dto.PlanResponse{
		RunID:        runID,
		Seed:         seed,
		Restarts:     res.Restarts,
		TotalCost:    res.Solution.Cost,
		DistanceCost: res.Solution.DistanceCost,
		Drivers:      res.Solution.Drivers,
		Infeasible:   res.Solution.Infeasible,
		Routes:       res.Solution.Segments(),
		Iterations:   res.Iterations,
		Evaluations:  res.Evaluations,
		DurationMS:   res.Duration.Milliseconds(),
	})
}

// cachedSolution looks key up and rebuilds the solution over loads. Cache
// failures are logged and treated as misses.
func (h *PlanHandler) cachedSolution(ctx context.Context, key string, loads []domain.Load, cost services.CostModel) (domain.Solution, bool) {
	segments, ok, err := h.Cache.GetPlan(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("run_id", obs.RunID(ctx)).Msg("plan cache lookup failed")
		return domain.Solution{}, false
	}
	if !ok {
		return domain.Solution{}, false
	}

	sol, err := cost.SolutionFromSegments(loads, segments)
	if err != nil {
		log.Warn().Err(err).Str("run_id", obs.RunID(ctx)).Msg("discarding stale cached plan")
		return domain.Solution{}, false
	}
	return sol, true
}
