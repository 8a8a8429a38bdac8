package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/isdelr/contactos-api/internal/services"
	"github.com/rs/zerolog/log"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// writeServiceError maps a service outcome to a status code. detail is sent
// for domain outcomes; internal errors are logged under logMsg and replaced
// with a generic detail.
func writeServiceError(w http.ResponseWriter, err error, detail, logMsg string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		writeError(w, http.StatusNotFound, detail)
	case errors.Is(err, services.ErrConflict):
		writeError(w, http.StatusBadRequest, detail)
	case errors.Is(err, services.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, detail)
	default:
		log.Error().Err(err).Msg(logMsg)
		writeError(w, http.StatusInternalServerError, "Error de servidor")
	}
}
