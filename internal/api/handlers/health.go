package handlers

import (
	"load-route-service/internal/api/dto"
	"load-route-service/internal/ports"
	"net/http"
)

// HealthHandler is the liveness check. It also reports which optional
// backends this instance was started with.
type HealthHandler struct {
	Runs  ports.RunRepository
	Cache ports.PlanCache
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.HealthResponse{
		Status:     "ok",
		RunHistory: h.Runs != nil,
		PlanCache:  h.Cache != nil,
	})
}
