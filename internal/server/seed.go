package server

import (
	"log/slog"

	"github.com/playperu/moneybags/internal/gamestate"
	"github.com/playperu/moneybags/internal/moneybags"
)

// SeedDemo fills an empty game with two players, a few properties and a
// loan so the UI has something to show. It does nothing if players exist.
func SeedDemo(logger *slog.Logger, store *gamestate.Store) error {
	if len(store.State().Players) > 0 {
		return nil
	}

	alice, err := store.AddPlayer("Alice", "")
	if err != nil {
		return err
	}
	bob, err := store.AddPlayer("Bob", "")
	if err != nil {
		return err
	}

	parkLane, err := addTemplate(store, alice.ID, "park-lane")
	if err != nil {
		return err
	}
	if _, err := addTemplate(store, bob.ID, "strand"); err != nil {
		return err
	}
	if _, err := addTemplate(store, bob.ID, "kings-cross"); err != nil {
		return err
	}

	if _, err := store.CreateLoan(gamestate.LoanParams{
		PlayerID: alice.ID, Amount: 1000, CollateralPropertyID: parkLane.ID,
	}); err != nil {
		return err
	}
	if _, err := store.CreateLoan(gamestate.LoanParams{PlayerID: bob.ID, Amount: 300, InterestRate: 15}); err != nil {
		return err
	}

	logger.Info("demo game seeded")
	return nil
}

func addTemplate(store *gamestate.Store, playerID, templateID string) (moneybags.Property, error) {
	params, _ := gamestate.TemplateParams(playerID, templateID)
	return store.AddProperty(params)
}
