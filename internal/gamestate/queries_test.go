package gamestate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playperu/moneybags/internal/gamestate"
	"github.com/playperu/moneybags/internal/moneybags"
)

func addProperty(t *testing.T, s *gamestate.Store, playerID, name string, value float64) moneybags.Property {
	t.Helper()
	p, err := s.AddProperty(gamestate.PropertyParams{PlayerID: playerID, Name: name, Value: value})
	require.NoError(t, err)
	return p
}

func TestToggleMortgage(t *testing.T) {
	s := newStore(t)
	alice := addPlayer(t, s, "Alice")
	prop := addProperty(t, s, alice.ID, "Park Lane", 350)
	assert.False(t, prop.IsMortgaged)
	assert.Nil(t, prop.MortgagedAt)

	got, err := s.ToggleMortgage(prop.ID)
	require.NoError(t, err)
	assert.True(t, got.IsMortgaged)
	require.NotNil(t, got.MortgagedAt)

	got, err = s.ToggleMortgage(prop.ID)
	require.NoError(t, err)
	assert.False(t, got.IsMortgaged)
	assert.Nil(t, got.MortgagedAt)
}

func TestUnmortgageCost(t *testing.T) {
	s := newStore(t)
	alice := addPlayer(t, s, "Alice")

	tests := []struct {
		value float64
		want  float64
	}{
		{350, 385},
		{60, 66},
		{140, 154},
		{125, 138}, // 137.5 rounds up
		{0, 0},
	}
	for _, tt := range tests {
		prop := addProperty(t, s, alice.ID, "Somewhere", tt.value)
		got, ok := s.UnmortgageCost(prop.ID)
		require.True(t, ok)
		assert.Equal(t, tt.want, got, "value %v", tt.value)
	}

	_, ok := s.UnmortgageCost("nope")
	assert.False(t, ok)
}

func TestAddPropertyKeepsTemplateMetadata(t *testing.T) {
	s := newStore(t)
	alice := addPlayer(t, s, "Alice")

	prop, err := s.AddProperty(gamestate.PropertyParams{
		PlayerID:   alice.ID,
		Name:       "Mayfair",
		Value:      400,
		TemplateID: "mayfair",
		ColorHex:   "#0000CD",
	})
	require.NoError(t, err)
	assert.Equal(t, "mayfair", prop.TemplateID)
	assert.Equal(t, "#0000CD", prop.ColorHex)

	_, err = s.AddProperty(gamestate.PropertyParams{PlayerID: alice.ID, Name: "", Value: 10})
	assert.ErrorIs(t, err, gamestate.ErrInvalidName)
	_, err = s.AddProperty(gamestate.PropertyParams{PlayerID: alice.ID, Name: "X", Value: -1})
	assert.ErrorIs(t, err, gamestate.ErrInvalidAmount)
	_, err = s.AddProperty(gamestate.PropertyParams{PlayerID: "nope", Name: "X", Value: 1})
	assert.ErrorIs(t, err, gamestate.ErrNotFound)
}

func TestRemovePropertyLeavesDanglingCollateral(t *testing.T) {
	s := newStore(t)
	alice := addPlayer(t, s, "Alice")
	prop := addProperty(t, s, alice.ID, "Park Lane", 350)
	loan, err := s.CreateLoan(gamestate.LoanParams{PlayerID: alice.ID, Amount: 200, CollateralPropertyID: prop.ID})
	require.NoError(t, err)

	require.NoError(t, s.RemoveProperty(prop.ID))

	got, _ := s.Loan(loan.ID)
	require.NotNil(t, got.CollateralPropertyID)
	assert.Equal(t, prop.ID, *got.CollateralPropertyID)

	_, ok := s.LoanCollateral(loan.ID)
	assert.False(t, ok, "dangling reference resolves to nothing")
	assert.Empty(t, s.PropertiesUsedAsCollateral())
}

func TestDebtAggregation(t *testing.T) {
	s := newStore(t)
	alice := addPlayer(t, s, "Alice")
	bob := addPlayer(t, s, "Bob")

	a1 := createLoan(t, s, alice.ID, 1000, 10)
	a2 := createLoan(t, s, alice.ID, 500, 10)
	createLoan(t, s, bob.ID, 250.25, 5)

	_, err := s.PassGo(alice.ID) // a1 -> 1100, a2 -> 550
	require.NoError(t, err)
	_, err = s.PayOffLoan(a2.ID, 550)
	require.NoError(t, err)

	assert.Equal(t, 1100.0, s.PlayerDebt(alice.ID))
	assert.Equal(t, 250.25, s.PlayerDebt(bob.ID))
	assert.Zero(t, s.PlayerDebt("nope"))

	assert.Equal(t, 1350.25, s.TotalDebt())
	// currentAmount - initialAmount over every loan, paid-off a2 included:
	// a1 +100, a2 0-500, bob 0.
	assert.Equal(t, -400.0, s.TotalInterest())
	assert.Equal(t, 2, s.ActiveLoansCount())

	loans := s.PlayerLoans(alice.ID)
	require.Len(t, loans, 2)
	assert.Equal(t, a1.ID, loans[0].ID)
	assert.Equal(t, a2.ID, loans[1].ID)
}

func TestTotalInterestIncludesPaidOffLoans(t *testing.T) {
	s := newStore(t)
	alice := addPlayer(t, s, "Alice")
	loan := createLoan(t, s, alice.ID, 1000, 10)

	_, err := s.PassGo(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, s.TotalInterest())

	_, err = s.PayOffLoan(loan.ID, 1100)
	require.NoError(t, err)

	assert.Zero(t, s.TotalDebt())
	assert.Zero(t, s.ActiveLoansCount())
	// currentAmount - initialAmount over all loans, paid-off included.
	assert.Equal(t, -1000.0, s.TotalInterest())
}

func TestBankruptcyUsesInclusiveThreshold(t *testing.T) {
	s := newStore(t)
	alice := addPlayer(t, s, "Alice")
	require.NoError(t, s.SetBankruptcyThreshold(1000))

	createLoan(t, s, alice.ID, 999.99, 10)
	assert.False(t, s.IsPlayerBankrupt(alice.ID))

	createLoan(t, s, alice.ID, 0.01, 10)
	assert.True(t, s.IsPlayerBankrupt(alice.ID), "debt == threshold is bankrupt")

	require.NoError(t, s.SetBankruptcyThreshold(0))
	assert.False(t, s.IsPlayerBankrupt(alice.ID), "threshold 0 disables the check")
}

func TestDebtLimitUsesStrictComparison(t *testing.T) {
	s := newStore(t)
	alice := addPlayer(t, s, "Alice")
	createLoan(t, s, alice.ID, 1000, 10)

	assert.False(t, s.PlayerOverDebtLimit(alice.ID), "limit 0 means no limit")

	require.NoError(t, s.UpdatePlayerDebtLimit(alice.ID, 1000))
	assert.False(t, s.PlayerOverDebtLimit(alice.ID), "debt == limit is not over")

	require.NoError(t, s.UpdatePlayerDebtLimit(alice.ID, 999.99))
	assert.True(t, s.PlayerOverDebtLimit(alice.ID))

	assert.False(t, s.PlayerOverDebtLimit("nope"))
}

func TestCollateralQueries(t *testing.T) {
	s := newStore(t)
	alice := addPlayer(t, s, "Alice")
	bob := addPlayer(t, s, "Bob")

	parkLane := addProperty(t, s, alice.ID, "Park Lane", 350)
	mayfair := addProperty(t, s, alice.ID, "Mayfair", 400)
	strand := addProperty(t, s, alice.ID, "Strand", 220)
	bobsProp := addProperty(t, s, bob.ID, "Whitehall", 140)

	_, err := s.ToggleMortgage(strand.ID)
	require.NoError(t, err)

	l1, err := s.CreateLoan(gamestate.LoanParams{PlayerID: alice.ID, Amount: 100, CollateralPropertyID: parkLane.ID})
	require.NoError(t, err)
	// A second pledge of the same property is not prevented by the store.
	_, err = s.CreateLoan(gamestate.LoanParams{PlayerID: alice.ID, Amount: 100, CollateralPropertyID: parkLane.ID})
	require.NoError(t, err)

	used := s.PropertiesUsedAsCollateral()
	require.Len(t, used, 1, "de-duplicated")
	assert.Equal(t, parkLane.ID, used[0].ID)

	avail := s.AvailableCollateralProperties(alice.ID)
	require.Len(t, avail, 1)
	assert.Equal(t, mayfair.ID, avail[0].ID)

	bobAvail := s.AvailableCollateralProperties(bob.ID)
	require.Len(t, bobAvail, 1)
	assert.Equal(t, bobsProp.ID, bobAvail[0].ID)

	// Paying off releases the pledge only once every loan on it is closed.
	_, err = s.PayOffLoan(l1.ID, 100)
	require.NoError(t, err)
	assert.Len(t, s.PropertiesUsedAsCollateral(), 1)

	_, ok := s.LoanCollateral("nope")
	assert.False(t, ok)
}

func TestSummaryAndStanding(t *testing.T) {
	s := newStore(t)
	alice := addPlayer(t, s, "Alice")
	addPlayer(t, s, "Bob")
	createLoan(t, s, alice.ID, 1000, 10)
	addProperty(t, s, alice.ID, "Mayfair", 400)
	_, err := s.PassGo(alice.ID)
	require.NoError(t, err)

	sum := s.Summary()
	assert.Equal(t, 2, sum.Players)
	assert.Equal(t, 1100.0, sum.TotalDebt)
	assert.Equal(t, 100.0, sum.TotalInterest)
	assert.Equal(t, 1, sum.ActiveLoans)
	assert.Equal(t, 1, sum.TotalPassedGo)
	require.NotNil(t, sum.CurrentPlayer)
	assert.Equal(t, alice.ID, sum.CurrentPlayer.ID)

	st, ok := s.Standing(alice.ID)
	require.True(t, ok)
	assert.Equal(t, 1100.0, st.Debt)
	assert.Len(t, st.Loans, 1)
	assert.Len(t, st.Properties, 1)
	assert.Len(t, st.AvailableCollateral, 1)
	assert.False(t, st.Bankrupt)
	assert.False(t, st.OverDebtLimit)

	_, ok = s.Standing("nope")
	assert.False(t, ok)
}

func TestTemplateParams(t *testing.T) {
	p, ok := gamestate.TemplateParams("p1", "park-lane")
	require.True(t, ok)
	assert.Equal(t, gamestate.PropertyParams{
		PlayerID:   "p1",
		Name:       "Park Lane",
		Value:      350,
		TemplateID: "park-lane",
		ColorHex:   "#0000CD",
	}, p)

	_, ok = gamestate.TemplateParams("p1", "atlantis")
	assert.False(t, ok)
}
