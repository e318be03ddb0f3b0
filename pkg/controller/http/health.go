package http

import (
	"net/http"

	"github.com/m-mizutani/ctxlog"

	"github.com/m-mizutani/courier/pkg/domain/model"
	"github.com/m-mizutani/courier/pkg/domain/types"
)

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, &model.HealthStatus{
		Status:  "healthy",
		Service: types.ServiceName,
		Version: types.Version,
	})
}

// handleRoot answers the plain-text liveness probe
func handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(types.ServiceName + ": Git -> ClickUp bot is running")); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write root response", "error", err)
	}
}
