package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/playperu/moneybags/internal/gamestate"
	"github.com/playperu/moneybags/internal/handler/health"
	"github.com/playperu/moneybags/internal/moneybags"
)

// Request shapes that combine path or query parameters with a body, used
// only to describe operations.

type idPath struct {
	ID string `path:"id"`
}

type updatePlayerInput struct {
	ID string `path:"id"`
	UpdatePlayerRequest
}

type paymentInput struct {
	ID string `path:"id"`
	PaymentRequest
}

type loanEventsInput struct {
	ID    string `path:"id"`
	Order string `query:"order" enum:"asc,desc"`
}

type catalogInput struct {
	Group string `query:"group"`
}

type shareInput struct {
	Mode string `query:"mode" enum:"edit,view"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Moneybags API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Loan, interest and mortgage tracker for a board game session.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of the blob store.")
	getHealthz.AddRespStructure(map[string]health.Result{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(map[string]health.Result{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /ws
	getWS, _ := r.NewOperationContext(http.MethodGet, "/ws")
	getWS.SetSummary("State stream (WebSocket)")
	getWS.SetDescription("Upgrades to a WebSocket that receives the game state on connect and after every change.")
	getWS.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("text/plain"))
	_ = r.AddOperation(getWS)

	// GET /api/state
	getState, _ := r.NewOperationContext(http.MethodGet, "/api/state")
	getState.SetSummary("Get game state")
	getState.SetDescription("Returns the whole aggregate with headline totals.")
	getState.AddRespStructure(StateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getState)

	// GET /api/summary
	getSummary, _ := r.NewOperationContext(http.MethodGet, "/api/summary")
	getSummary.SetSummary("Get totals")
	getSummary.AddRespStructure(gamestate.Summary{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getSummary)

	// GET /api/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/events")
	getEvents.SetSummary("State stream (SSE)")
	getEvents.SetDescription("Server-Sent Events stream of \"state\" events carrying the game state.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// GET /api/catalog
	getCatalog, _ := r.NewOperationContext(http.MethodGet, "/api/catalog")
	getCatalog.SetSummary("Property catalog")
	getCatalog.SetDescription("Lists the board's property templates, optionally filtered by colour group.")
	getCatalog.AddReqStructure(catalogInput{})
	getCatalog.AddRespStructure([]moneybags.PropertyTemplate{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getCatalog)

	// POST /api/players
	createPlayer, _ := r.NewOperationContext(http.MethodPost, "/api/players")
	createPlayer.SetSummary("Add player")
	createPlayer.SetDescription("Colour and default avatar are assigned round-robin. The first player takes the turn.")
	createPlayer.AddReqStructure(CreatePlayerRequest{})
	createPlayer.AddRespStructure(moneybags.Player{}, openapi.WithHTTPStatus(http.StatusCreated))
	createPlayer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(createPlayer)

	// GET /api/players/{id}
	getPlayer, _ := r.NewOperationContext(http.MethodGet, "/api/players/{id}")
	getPlayer.SetSummary("Player standing")
	getPlayer.SetDescription("Returns the player with loans, properties, debt, warning flags and available collateral.")
	getPlayer.AddReqStructure(idPath{})
	getPlayer.AddRespStructure(gamestate.PlayerStanding{}, openapi.WithHTTPStatus(http.StatusOK))
	getPlayer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getPlayer)

	// PATCH /api/players/{id}
	updatePlayer, _ := r.NewOperationContext(http.MethodPatch, "/api/players/{id}")
	updatePlayer.SetSummary("Update player")
	updatePlayer.SetDescription("Changes notes, debt limit or avatar. Absent fields are left alone.")
	updatePlayer.AddReqStructure(updatePlayerInput{})
	updatePlayer.AddRespStructure(moneybags.Player{}, openapi.WithHTTPStatus(http.StatusOK))
	updatePlayer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	updatePlayer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(updatePlayer)

	// DELETE /api/players/{id}
	deletePlayer, _ := r.NewOperationContext(http.MethodDelete, "/api/players/{id}")
	deletePlayer.SetSummary("Remove player")
	deletePlayer.SetDescription("Removes the player with their loans and properties. Loan events are kept.")
	deletePlayer.AddReqStructure(idPath{})
	deletePlayer.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	deletePlayer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(deletePlayer)

	// POST /api/players/{id}/pass-go
	passGo, _ := r.NewOperationContext(http.MethodPost, "/api/players/{id}/pass-go")
	passGo.SetSummary("Pass GO")
	passGo.SetDescription("Compounds interest on each of the player's active loans.")
	passGo.AddReqStructure(idPath{})
	passGo.AddRespStructure(PassGoResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	passGo.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(passGo)

	// GET /api/turn
	getTurn, _ := r.NewOperationContext(http.MethodGet, "/api/turn")
	getTurn.SetSummary("Current player")
	getTurn.AddRespStructure(moneybags.Player{}, openapi.WithHTTPStatus(http.StatusOK))
	getTurn.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	_ = r.AddOperation(getTurn)

	// POST /api/turn/next
	nextTurn, _ := r.NewOperationContext(http.MethodPost, "/api/turn/next")
	nextTurn.SetSummary("Next turn")
	nextTurn.AddRespStructure(moneybags.Player{}, openapi.WithHTTPStatus(http.StatusOK))
	nextTurn.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(nextTurn)

	// PUT /api/turn
	setTurn, _ := r.NewOperationContext(http.MethodPut, "/api/turn")
	setTurn.SetSummary("Set current player")
	setTurn.AddReqStructure(SetTurnRequest{})
	setTurn.AddRespStructure(moneybags.Player{}, openapi.WithHTTPStatus(http.StatusOK))
	setTurn.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(setTurn)

	// POST /api/loans
	createLoan, _ := r.NewOperationContext(http.MethodPost, "/api/loans")
	createLoan.SetSummary("Take a loan")
	createLoan.SetDescription("Interest rate is 5, 10 or 15 percent per pass of GO (default 10).")
	createLoan.AddReqStructure(CreateLoanRequest{})
	createLoan.AddRespStructure(moneybags.Loan{}, openapi.WithHTTPStatus(http.StatusCreated))
	createLoan.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	createLoan.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(createLoan)

	// POST /api/loans/{id}/payments
	payLoan, _ := r.NewOperationContext(http.MethodPost, "/api/loans/{id}/payments")
	payLoan.SetSummary("Make a payment")
	payLoan.SetDescription("Overpayment clamps the balance at zero and marks the loan paid off.")
	payLoan.AddReqStructure(paymentInput{})
	payLoan.AddRespStructure(moneybags.Loan{}, openapi.WithHTTPStatus(http.StatusOK))
	payLoan.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	payLoan.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(payLoan)

	// GET /api/loans/{id}/events
	loanEvents, _ := r.NewOperationContext(http.MethodGet, "/api/loans/{id}/events")
	loanEvents.SetSummary("Loan history")
	loanEvents.SetDescription("Events in recorded order, or newest first with order=desc.")
	loanEvents.AddReqStructure(loanEventsInput{})
	loanEvents.AddRespStructure([]moneybags.LoanEvent{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(loanEvents)

	// GET /api/loans/{id}/collateral
	loanCollateral, _ := r.NewOperationContext(http.MethodGet, "/api/loans/{id}/collateral")
	loanCollateral.SetSummary("Loan collateral")
	loanCollateral.AddReqStructure(idPath{})
	loanCollateral.AddRespStructure(moneybags.Property{}, openapi.WithHTTPStatus(http.StatusOK))
	loanCollateral.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(loanCollateral)

	// POST /api/properties
	createProperty, _ := r.NewOperationContext(http.MethodPost, "/api/properties")
	createProperty.SetSummary("Add property")
	createProperty.SetDescription("With templateId, missing name, value and colorHex come from the catalog.")
	createProperty.AddReqStructure(CreatePropertyRequest{})
	createProperty.AddRespStructure(moneybags.Property{}, openapi.WithHTTPStatus(http.StatusCreated))
	createProperty.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	createProperty.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(createProperty)

	// GET /api/properties/collateral
	pledged, _ := r.NewOperationContext(http.MethodGet, "/api/properties/collateral")
	pledged.SetSummary("Pledged properties")
	pledged.SetDescription("Properties securing at least one active loan.")
	pledged.AddRespStructure([]moneybags.Property{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(pledged)

	// DELETE /api/properties/{id}
	deleteProperty, _ := r.NewOperationContext(http.MethodDelete, "/api/properties/{id}")
	deleteProperty.SetSummary("Remove property")
	deleteProperty.AddReqStructure(idPath{})
	deleteProperty.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	deleteProperty.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(deleteProperty)

	// POST /api/properties/{id}/mortgage
	toggleMortgage, _ := r.NewOperationContext(http.MethodPost, "/api/properties/{id}/mortgage")
	toggleMortgage.SetSummary("Toggle mortgage")
	toggleMortgage.AddReqStructure(idPath{})
	toggleMortgage.AddRespStructure(moneybags.Property{}, openapi.WithHTTPStatus(http.StatusOK))
	toggleMortgage.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(toggleMortgage)

	// GET /api/properties/{id}/unmortgage-cost
	unmortgageCost, _ := r.NewOperationContext(http.MethodGet, "/api/properties/{id}/unmortgage-cost")
	unmortgageCost.SetSummary("Unmortgage cost")
	unmortgageCost.SetDescription("Value plus 10%, rounded to whole units.")
	unmortgageCost.AddReqStructure(idPath{})
	unmortgageCost.AddRespStructure(UnmortgageCostResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	unmortgageCost.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(unmortgageCost)

	// PUT /api/settings
	settings, _ := r.NewOperationContext(http.MethodPut, "/api/settings")
	settings.SetSummary("Update settings")
	settings.SetDescription("Sets the bankruptcy threshold; 0 disables the warning.")
	settings.AddReqStructure(SettingsRequest{})
	settings.AddRespStructure(gamestate.Summary{}, openapi.WithHTTPStatus(http.StatusOK))
	settings.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(settings)

	// POST /api/reset
	reset, _ := r.NewOperationContext(http.MethodPost, "/api/reset")
	reset.SetSummary("New game")
	reset.AddRespStructure(StateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(reset)

	// GET /api/export
	export, _ := r.NewOperationContext(http.MethodGet, "/api/export")
	export.SetSummary("Export game")
	export.AddRespStructure(moneybags.GameState{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(export)

	// POST /api/import
	importOp, _ := r.NewOperationContext(http.MethodPost, "/api/import")
	importOp.SetSummary("Import game")
	importOp.SetDescription("Body is exported JSON, a share URL or a share token. The game is replaced only on success.")
	importOp.AddReqStructure(moneybags.GameState{})
	importOp.AddRespStructure(StateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	importOp.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(importOp)

	// GET /api/share
	share, _ := r.NewOperationContext(http.MethodGet, "/api/share")
	share.SetSummary("Share link")
	share.SetDescription("Builds a link that carries the whole game; mode=view marks it read-only.")
	share.AddReqStructure(shareInput{})
	share.AddRespStructure(ShareResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(share)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
