package handlers

import (
	"net/http"

	"pdfvault/internal/contextutil"
	"pdfvault/internal/vault"
)

// StatusHandler handles HTTP requests for vault status.
type StatusHandler struct {
	svc    vault.Service
	report *vault.BootstrapReport
}

// NewStatusHandler creates a new StatusHandler. The bootstrap report is the
// one produced when the vault was opened at startup.
func NewStatusHandler(svc vault.Service, report *vault.BootstrapReport) *StatusHandler {
	return &StatusHandler{svc: svc, report: report}
}

// StatusResponse represents the vault status response payload.
type StatusResponse struct {
	Files   int64    `json:"files"`
	Pages   int64    `json:"pages"`
	Created []string `json:"created,omitempty"`
}

// ServeHTTP reports record counts plus anything bootstrapped at startup.
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.svc.Stats(ctx)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to read vault status")
		return
	}

	resp := StatusResponse{Files: stats.Files, Pages: stats.Pages}
	if h.report != nil {
		resp.Created = h.report.Created
	}

	writeJSON(w, http.StatusOK, resp)
}

// NukeHandler handles HTTP requests to destroy the vault's index and
// managed directories.
type NukeHandler struct {
	svc vault.Service
}

// NewNukeHandler creates a new NukeHandler.
func NewNukeHandler(svc vault.Service) *NukeHandler {
	return &NukeHandler{svc: svc}
}

// NukeResponse represents the nuke response payload.
type NukeResponse struct {
	Nuked bool `json:"nuked"`
}

// ServeHTTP destroys the vault. The operation is irreversible, so it
// requires an explicit confirm=true query parameter.
func (h *NukeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.URL.Query().Get("confirm") != "true" {
		writeError(w, http.StatusBadRequest, "Nuke requires confirm=true")
		return
	}

	if err := h.svc.Nuke(ctx); err != nil {
		handleServiceError(w, ctx, err, "Failed to nuke vault")
		return
	}

	logger.WarnContext(ctx, "vault nuked")
	writeJSON(w, http.StatusOK, NukeResponse{Nuked: true})
}
