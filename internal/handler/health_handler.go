package handlers

import (
	"net/http"

	"github.com/rs/zerolog"
)

// boardTables is the number of tables the migration creates.
const boardTables = 3

type HealthResponse struct {
	Status string `json:"status"`
	Tables int    `json:"tables"`
}

// Health reports whether the database is reachable and migrated.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	count, err := h.TablesService.GetCountTables(r.Context())
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Health check failed")
		writeJSON(w, HealthResponse{Status: "unavailable"}, http.StatusServiceUnavailable)
		return
	}

	status := "ok"
	if count < boardTables {
		status = "degraded"
	}

	writeJSON(w, HealthResponse{Status: status, Tables: count}, http.StatusOK)
}
