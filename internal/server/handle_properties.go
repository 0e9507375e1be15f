package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/moneybags/internal/gamestate"
)

type CreatePropertyRequest struct {
	PlayerID   string   `json:"playerId"`
	Name       string   `json:"name,omitempty"`
	Value      *float64 `json:"value,omitempty"`
	TemplateID string   `json:"templateId,omitempty"`
	ColorHex   string   `json:"colorHex,omitempty"`
}

// params fills missing fields from the catalog entry named by TemplateID.
func (req CreatePropertyRequest) params() (gamestate.PropertyParams, string) {
	p := gamestate.PropertyParams{PlayerID: req.PlayerID}
	if req.TemplateID != "" {
		var ok bool
		if p, ok = gamestate.TemplateParams(req.PlayerID, req.TemplateID); !ok {
			return p, "unknown templateId"
		}
	} else if req.Value == nil {
		return p, "value is required"
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		p.Name = name
	}
	if req.Value != nil {
		p.Value = *req.Value
	}
	if req.ColorHex != "" {
		p.ColorHex = req.ColorHex
	}
	return p, ""
}

type UnmortgageCostResponse struct {
	PropertyID string  `json:"propertyId"`
	Value      float64 `json:"value"`
	Cost       float64 `json:"cost"`
}

func handleCreateProperty(store *gamestate.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreatePropertyRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		params, msg := req.params()
		if msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		prop, err := store.AddProperty(params)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, prop)
	}
}

func handleDeleteProperty(store *gamestate.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.RemoveProperty(chi.URLParam(r, "id")); err != nil {
			writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleToggleMortgage(store *gamestate.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prop, err := store.ToggleMortgage(chi.URLParam(r, "id"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, prop)
	}
}

func handleUnmortgageCost(store *gamestate.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		prop, ok := store.Property(id)
		if !ok {
			writeError(w, http.StatusNotFound, "property not found")
			return
		}
		cost, _ := store.UnmortgageCost(id)
		writeJSON(w, http.StatusOK, UnmortgageCostResponse{PropertyID: id, Value: prop.Value, Cost: cost})
	}
}

func handlePledgedProperties(store *gamestate.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.PropertiesUsedAsCollateral())
	}
}
