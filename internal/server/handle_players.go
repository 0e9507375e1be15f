package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/moneybags/internal/gamestate"
	"github.com/playperu/moneybags/internal/moneybags"
)

type CreatePlayerRequest struct {
	Name   string          `json:"name"`
	Avatar moneybags.Piece `json:"avatar,omitempty"`
}

// UpdatePlayerRequest changes only the fields that are present.
type UpdatePlayerRequest struct {
	Notes     *string          `json:"notes,omitempty"`
	DebtLimit *float64         `json:"debtLimit,omitempty"`
	Avatar    *moneybags.Piece `json:"avatar,omitempty"`
}

func (req UpdatePlayerRequest) validate() string {
	if req.Notes == nil && req.DebtLimit == nil && req.Avatar == nil {
		return "nothing to update"
	}
	if req.DebtLimit != nil && *req.DebtLimit < 0 {
		return "debtLimit must not be negative"
	}
	if req.Avatar != nil && !req.Avatar.Valid() {
		return "unknown avatar"
	}
	return ""
}

type PassGoResponse struct {
	Events        []moneybags.LoanEvent `json:"events"`
	TotalPassedGo int                   `json:"totalPassedGo"`
}

func handleCreatePlayer(store *gamestate.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreatePlayerRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		p, err := store.AddPlayer(req.Name, req.Avatar)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, p)
	}
}

func handleGetPlayer(store *gamestate.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standing, ok := store.Standing(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "player not found")
			return
		}
		writeJSON(w, http.StatusOK, standing)
	}
}

func handleUpdatePlayer(store *gamestate.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req UpdatePlayerRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		if req.Notes != nil {
			if err := store.UpdatePlayerNotes(id, *req.Notes); err != nil {
				writeStoreError(w, err)
				return
			}
		}
		if req.DebtLimit != nil {
			if err := store.UpdatePlayerDebtLimit(id, *req.DebtLimit); err != nil {
				writeStoreError(w, err)
				return
			}
		}
		if req.Avatar != nil {
			if err := store.UpdatePlayerAvatar(id, *req.Avatar); err != nil {
				writeStoreError(w, err)
				return
			}
		}

		p, _ := store.Player(id)
		writeJSON(w, http.StatusOK, p)
	}
}

func handleDeletePlayer(store *gamestate.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.RemovePlayer(chi.URLParam(r, "id")); err != nil {
			writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handlePassGo(store *gamestate.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := store.PassGo(chi.URLParam(r, "id"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, PassGoResponse{
			Events:        events,
			TotalPassedGo: store.State().TotalPassedGo,
		})
	}
}
