package httpserver

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"blogManagement/repository"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeStoreError maps repository sentinels onto the HTTP error taxonomy:
// NotFound -> 404, Conflict -> 409, Integrity -> 400. Anything else is an
// internal fault; it is logged but never surfaced to the client.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, repository.ErrConflict):
		writeError(w, http.StatusConflict, "conflict with existing record")
	case errors.Is(err, repository.ErrIntegrity):
		writeError(w, http.StatusBadRequest, "integrity constraint violated")
	default:
		log.Printf("store error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
