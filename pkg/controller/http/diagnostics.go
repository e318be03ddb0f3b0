package http

import (
	"net/http"

	"github.com/m-mizutani/courier/pkg/domain/interfaces"
)

// DiagnosticsHandler serves the upstream connectivity check
type DiagnosticsHandler struct {
	diagnosticsUC interfaces.DiagnosticsUseCase
}

// NewDiagnosticsHandler creates a new DiagnosticsHandler
func NewDiagnosticsHandler(uc interfaces.DiagnosticsUseCase) *DiagnosticsHandler {
	return &DiagnosticsHandler{diagnosticsUC: uc}
}

// Handle always answers 200; failures are described in the body
func (h *DiagnosticsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	report := h.diagnosticsUC.CheckConnections(r.Context())
	writeJSON(r.Context(), w, http.StatusOK, report)
}
