package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/moneybags/internal/gamestate"
	"github.com/playperu/moneybags/internal/moneybags"
)

type CreateLoanRequest struct {
	PlayerID             string                 `json:"playerId"`
	Amount               float64                `json:"amount"`
	InterestRate         moneybags.InterestRate `json:"interestRate,omitempty"`
	CollateralPropertyID string                 `json:"collateralPropertyId,omitempty"`
}

type PaymentRequest struct {
	Amount float64 `json:"amount"`
}

func handleCreateLoan(store *gamestate.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateLoanRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		loan, err := store.CreateLoan(gamestate.LoanParams{
			PlayerID:             req.PlayerID,
			Amount:               req.Amount,
			InterestRate:         req.InterestRate,
			CollateralPropertyID: req.CollateralPropertyID,
		})
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, loan)
	}
}

func handlePayLoan(store *gamestate.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PaymentRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		loan, err := store.PayOffLoan(chi.URLParam(r, "id"), req.Amount)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, loan)
	}
}

// handleLoanEvents lists a loan's history. Events outlive their loan, so an
// unknown id yields an empty list rather than 404.
func handleLoanEvents(store *gamestate.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events := store.LoanEvents(chi.URLParam(r, "id"))
		if r.URL.Query().Get("order") == "desc" {
			events = moneybags.NewestFirst(events)
		}
		writeJSON(w, http.StatusOK, events)
	}
}

func handleLoanCollateral(store *gamestate.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prop, ok := store.LoanCollateral(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "no collateral")
			return
		}
		writeJSON(w, http.StatusOK, prop)
	}
}
