package handlers

import (
	"encoding/json"
	"net/http"

	"p9e.in/dirtrack/models"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondError sends the uniform error envelope used across the API.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"status":  "error",
		"message": message,
	})
}

// respondValidation surfaces per-field failures as structured data, never
// as a raw database error string.
func respondValidation(w http.ResponseWriter, errs models.ValidationErrors) {
	respondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
		"status": "error",
		"errors": errs,
	})
}
