package handlers

import (
	"load-route-service/internal/api/dto"
	"load-route-service/internal/ports"
	"net/http"

	"github.com/rs/zerolog/log"
)

// RunHandler exposes the recorded solve history.
type RunHandler struct {
	Repo ports.RunRepository
}

func (h *RunHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if h.Repo == nil {
		writeError(w, r, http.StatusNotFound, "run history is disabled")
		return
	}

	limit, ok := queryInt(r, "limit", 20)
	if !ok || limit < 1 || limit > 200 {
		writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 200")
		return
	}

	runs, err := h.Repo.ListRuns(r.Context(), int(limit))
	if err != nil {
		log.Error().Err(err).Msg("list runs failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListRunsResponse{Runs: make([]dto.RunResponse, 0, len(runs))}
	for _, run := range runs {
		res.Runs = append(res.Runs, dto.RunResponse{
			RunID:       run.ID,
			Source:      run.Source,
			Seed:        run.Seed,
			Restarts:    run.Restarts,
			LoadCount:   run.LoadCount,
			TotalCost:   run.Cost,
			Drivers:     run.Drivers,
			Routes:      run.Segments,
			Iterations:  run.Iterations,
			Evaluations: run.Evaluations,
			StartedAt:   run.StartedAt,
			DurationMS:  run.Duration.Milliseconds(),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
