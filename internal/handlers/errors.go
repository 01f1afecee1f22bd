package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"pdfvault/internal/contextutil"
	"pdfvault/internal/storage"
	"pdfvault/internal/vault"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, ErrorResponse{Error: message})
}

// handleServiceError maps coordinator errors to HTTP status codes.
func handleServiceError(w http.ResponseWriter, ctx context.Context, err error, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)
	logger.ErrorContext(ctx, "service error", "error", err)

	var validationErr *vault.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Validation error: %s", validationErr.Error()))
		return
	}

	var schemaErr *storage.SchemaViolationError
	if errors.As(err, &schemaErr) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Schema violation: %s", schemaErr.Error()))
		return
	}

	if errors.Is(err, vault.ErrInvalidType) {
		writeError(w, http.StatusBadRequest, "Invalid pdf type")
		return
	}

	if errors.Is(err, vault.ErrVaultNotFound) {
		writeError(w, http.StatusNotFound, "Vault not found")
		return
	}

	if errors.Is(err, storage.ErrCorruptIndex) {
		writeError(w, http.StatusConflict, "Index is corrupt; delete it and re-index")
		return
	}

	if errors.Is(err, vault.ErrClosed) {
		writeError(w, http.StatusServiceUnavailable, "Vault is closed")
		return
	}

	writeError(w, http.StatusInternalServerError, defaultMsg)
}
