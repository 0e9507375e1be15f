package server

import (
	"io"
	"net/http"

	"github.com/playperu/moneybags/internal/gamestate"
	"github.com/playperu/moneybags/internal/moneybags"
	"github.com/playperu/moneybags/internal/sharelink"
)

type StateResponse struct {
	State   moneybags.GameState `json:"state"`
	Summary gamestate.Summary   `json:"summary"`
}

type SettingsRequest struct {
	BankruptcyThreshold *float64 `json:"bankruptcyThreshold"`
}

type ShareResponse struct {
	URL   string         `json:"url"`
	Token string         `json:"token"`
	Mode  sharelink.Mode `json:"mode"`
}

func stateResponse(store *gamestate.Store) StateResponse {
	return StateResponse{State: store.State(), Summary: store.Summary()}
}

func handleGetState(store *gamestate.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, stateResponse(store))
	}
}

func handleGetSummary(store *gamestate.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.Summary())
	}
}

func handleCatalog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		group := moneybags.ColorGroup(r.URL.Query().Get("group"))
		if group == "" {
			writeJSON(w, http.StatusOK, moneybags.Catalog)
			return
		}
		templates := moneybags.TemplatesByGroup(group)
		if templates == nil {
			templates = []moneybags.PropertyTemplate{}
		}
		writeJSON(w, http.StatusOK, templates)
	}
}

func handleSettings(store *gamestate.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SettingsRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.BankruptcyThreshold == nil {
			writeError(w, http.StatusBadRequest, "bankruptcyThreshold is required")
			return
		}
		if err := store.SetBankruptcyThreshold(*req.BankruptcyThreshold); err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, store.Summary())
	}
}

func handleReset(store *gamestate.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store.Reset()
		writeJSON(w, http.StatusOK, stateResponse(store))
	}
}

func handleExport(store *gamestate.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := store.Export()
		if err != nil {
			writeStoreError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="monopoly-game.json"`)
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}

// handleImport accepts raw exported JSON, a share URL or a bare share token
// as the request body.
func handleImport(store *gamestate.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		data, _, err := sharelink.Parse(string(body))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if err := store.Import(data); err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stateResponse(store))
	}
}

func handleShare(store *gamestate.Store, publicURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mode := sharelink.ParseMode(r.URL.Query().Get(sharelink.ModeParam))

		data, err := store.Export()
		if err != nil {
			writeStoreError(w, err)
			return
		}
		link, err := sharelink.BuildURL(publicURL, data, mode)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		token, err := sharelink.Encode(data)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, ShareResponse{URL: link, Token: token, Mode: mode})
	}
}
