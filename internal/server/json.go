package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/playperu/moneybags/internal/gamestate"
	"github.com/playperu/moneybags/internal/sharelink"
)

const maxBodyBytes = 4 << 20

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func readJSON(w http.ResponseWriter, r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeStoreError maps store and share-link errors to a status code.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gamestate.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, gamestate.ErrInvalidName),
		errors.Is(err, gamestate.ErrInvalidAmount),
		errors.Is(err, gamestate.ErrInvalidRate),
		errors.Is(err, gamestate.ErrInvalidAvatar),
		errors.Is(err, gamestate.ErrInvalidCollateral),
		errors.Is(err, gamestate.ErrMalformedState),
		errors.Is(err, sharelink.ErrInvalidLink):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
