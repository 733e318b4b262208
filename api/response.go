package api

import (
	"encoding/json"
	"net/http"

	"log/slog"

	"github.com/ironledger/ironledger/internal/validation"
)

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, map[string]any{"error": msg}, status)
}

// respondValidation reports every violated field to keep bulk-editing
// clients usable.
func respondValidation(w http.ResponseWriter, errs []validation.FieldError) {
	writeJSON(w, map[string]any{"error": "Invalid input data", "details": errs}, http.StatusBadRequest)
}
