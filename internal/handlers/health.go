package handlers

import (
	"net/http"

	"github.com/sbilibin2017/gw-employee-service/internal/models"
)

// NewHealthHandler returns a liveness probe.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /health [get]
func NewHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.HealthResponse{OK: true})
	}
}
