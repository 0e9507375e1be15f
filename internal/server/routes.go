package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, opts Options) {
	store, broker := opts.Store, opts.Broker

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Moneybags API", "/openapi.json", "/docs"))
	r.Get("/ws", handleStateStream(logger, store, broker))
	if opts.Mount != nil {
		opts.Mount(r)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", handleGetState(store))
		r.Get("/summary", handleGetSummary(store))
		r.Get("/events", handleEvents(store, broker))
		r.Get("/catalog", handleCatalog())

		r.Post("/players", handleCreatePlayer(store))
		r.Get("/players/{id}", handleGetPlayer(store))
		r.Patch("/players/{id}", handleUpdatePlayer(store))
		r.Delete("/players/{id}", handleDeletePlayer(store))
		r.Post("/players/{id}/pass-go", handlePassGo(store))

		r.Get("/turn", handleGetTurn(store))
		r.Post("/turn/next", handleNextTurn(store))
		r.Put("/turn", handleSetTurn(store))

		r.Post("/loans", handleCreateLoan(store))
		r.Post("/loans/{id}/payments", handlePayLoan(store))
		r.Get("/loans/{id}/events", handleLoanEvents(store))
		r.Get("/loans/{id}/collateral", handleLoanCollateral(store))

		r.Post("/properties", handleCreateProperty(store))
		r.Get("/properties/collateral", handlePledgedProperties(store))
		r.Delete("/properties/{id}", handleDeleteProperty(store))
		r.Post("/properties/{id}/mortgage", handleToggleMortgage(store))
		r.Get("/properties/{id}/unmortgage-cost", handleUnmortgageCost(store))

		r.Put("/settings", handleSettings(store))
		r.Post("/reset", handleReset(store))
		r.Get("/export", handleExport(store))
		r.Post("/import", handleImport(store))
		r.Get("/share", handleShare(store, opts.PublicURL))
	})

	if opts.SPADir != "" {
		if info, err := os.Stat(opts.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", opts.SPADir)
			r.NotFound(handleSPA(opts.SPADir))
		}
	}
}
