package server

import (
	"net/http"
	"strings"

	"github.com/playperu/moneybags/internal/gamestate"
)

type SetTurnRequest struct {
	PlayerID string `json:"playerId"`
}

func handleGetTurn(store *gamestate.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := store.CurrentPlayer()
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func handleNextTurn(store *gamestate.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := store.NextTurn()
		if !ok {
			writeError(w, http.StatusConflict, "no players")
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func handleSetTurn(store *gamestate.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SetTurnRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.PlayerID = strings.TrimSpace(req.PlayerID)
		if req.PlayerID == "" {
			writeError(w, http.StatusBadRequest, "playerId is required")
			return
		}

		if err := store.SetCurrentTurn(req.PlayerID); err != nil {
			writeStoreError(w, err)
			return
		}
		p, _ := store.CurrentPlayer()
		writeJSON(w, http.StatusOK, p)
	}
}
