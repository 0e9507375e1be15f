package gamestate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playperu/moneybags/internal/gamestate"
	"github.com/playperu/moneybags/internal/moneybags"
)

func TestCreateLoan(t *testing.T) {
	s := newStore(t)
	alice := addPlayer(t, s, "Alice")

	loan, err := s.CreateLoan(gamestate.LoanParams{PlayerID: alice.ID, Amount: 1000})
	require.NoError(t, err)

	assert.Equal(t, alice.ID, loan.PlayerID)
	assert.Equal(t, 1000.0, loan.InitialAmount)
	assert.Equal(t, 1000.0, loan.CurrentAmount)
	assert.Equal(t, moneybags.Rate10, loan.InterestRate, "default rate")
	assert.Zero(t, loan.PassedGoCount)
	assert.False(t, loan.IsPaidOff)
	assert.Nil(t, loan.CollateralPropertyID)
	assert.False(t, loan.CreatedAt.IsZero())

	events := s.LoanEvents(loan.ID)
	require.Len(t, events, 1)
	assert.Equal(t, moneybags.LoanEventCreated, events[0].Type)
	assert.Equal(t, 1000.0, events[0].Amount)
	assert.Equal(t, "Loan created for Alice at 10% interest", events[0].Description)
}

func TestCreateLoanValidation(t *testing.T) {
	s := newStore(t)
	alice := addPlayer(t, s, "Alice")
	bob := addPlayer(t, s, "Bob")
	bobsProp, err := s.AddProperty(gamestate.PropertyParams{PlayerID: bob.ID, Name: "Mayfair", Value: 400})
	require.NoError(t, err)

	tests := []struct {
		name    string
		params  gamestate.LoanParams
		wantErr error
	}{
		{"zero amount", gamestate.LoanParams{PlayerID: alice.ID, Amount: 0}, gamestate.ErrInvalidAmount},
		{"negative amount", gamestate.LoanParams{PlayerID: alice.ID, Amount: -5}, gamestate.ErrInvalidAmount},
		{"unsupported rate", gamestate.LoanParams{PlayerID: alice.ID, Amount: 100, InterestRate: 12}, gamestate.ErrInvalidRate},
		{"unknown collateral", gamestate.LoanParams{PlayerID: alice.ID, Amount: 100, CollateralPropertyID: "nope"}, gamestate.ErrInvalidCollateral},
		{"someone else's collateral", gamestate.LoanParams{PlayerID: alice.ID, Amount: 100, CollateralPropertyID: bobsProp.ID}, gamestate.ErrInvalidCollateral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateLoan(tt.params)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Empty(t, s.State().Loans)
	assert.Empty(t, s.State().LoanEvents)
}

func TestInterestCompounds(t *testing.T) {
	s := newStore(t)
	alice := addPlayer(t, s, "Alice")
	loan := createLoan(t, s, alice.ID, 1000, 10)

	_, err := s.PassGo(alice.ID)
	require.NoError(t, err)
	got, _ := s.Loan(loan.ID)
	assert.Equal(t, 1100.0, got.CurrentAmount)

	_, err = s.PassGo(alice.ID)
	require.NoError(t, err)
	got, _ = s.Loan(loan.ID)
	assert.Equal(t, 1210.0, got.CurrentAmount)
	assert.Equal(t, 2, got.PassedGoCount)
	assert.Equal(t, 1000.0, got.InitialAmount)
}

func TestInterestRoundsToCents(t *testing.T) {
	s := newStore(t)
	alice := addPlayer(t, s, "Alice")
	loan := createLoan(t, s, alice.ID, 333.33, 15)

	events, err := s.PassGo(alice.ID)
	require.NoError(t, err)

	got, _ := s.Loan(loan.ID)
	// 333.33 * 1.15 = 383.3295
	assert.Equal(t, 383.33, got.CurrentAmount)
	require.Len(t, events, 1)
	assert.InDelta(t, 49.9995, events[0].Amount, 1e-9)
}

func TestPassGoTouchesOnlyActiveLoansOfPlayer(t *testing.T) {
	s := newStore(t)
	alice := addPlayer(t, s, "Alice")
	bob := addPlayer(t, s, "Bob")

	a1 := createLoan(t, s, alice.ID, 1000, 10)
	a2 := createLoan(t, s, alice.ID, 200, 5)
	paid := createLoan(t, s, alice.ID, 50, 15)
	b1 := createLoan(t, s, bob.ID, 500, 10)

	_, err := s.PayOffLoan(paid.ID, 50)
	require.NoError(t, err)

	events, err := s.PassGo(alice.ID)
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, a1.ID, events[0].LoanID)
	assert.Equal(t, 100.0, events[0].Amount)
	assert.Equal(t, a2.ID, events[1].LoanID)
	assert.Equal(t, 10.0, events[1].Amount)
	for _, e := range events {
		assert.Equal(t, moneybags.LoanEventInterest, e.Type)
	}
	assert.Equal(t, "Alice passed GO - 10% interest added", events[0].Description)

	got, _ := s.Loan(a2.ID)
	assert.Equal(t, 210.0, got.CurrentAmount)

	frozen, _ := s.Loan(paid.ID)
	assert.Zero(t, frozen.CurrentAmount)
	assert.Zero(t, frozen.PassedGoCount)

	untouched, _ := s.Loan(b1.ID)
	assert.Equal(t, 500.0, untouched.CurrentAmount)
	assert.Zero(t, untouched.PassedGoCount)

	assert.Equal(t, 1, s.State().TotalPassedGo)
}

func TestPassGoWithoutLoansStillCounts(t *testing.T) {
	s := newStore(t)
	alice := addPlayer(t, s, "Alice")

	events, err := s.PassGo(alice.ID)
	require.NoError(t, err)
	assert.Empty(t, events)

	_, err = s.PassGo(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, s.State().TotalPassedGo)
}

func TestPayToZeroIsIdempotent(t *testing.T) {
	for _, pay := range []float64{1100, 1100.01, 5000, 1e9} {
		s := newStore(t)
		alice := addPlayer(t, s, "Alice")
		loan := createLoan(t, s, alice.ID, 1000, 10)
		_, err := s.PassGo(alice.ID)
		require.NoError(t, err)

		got, err := s.PayOffLoan(loan.ID, pay)
		require.NoError(t, err)
		assert.Zero(t, got.CurrentAmount, "pay %v", pay)
		assert.True(t, got.IsPaidOff, "pay %v", pay)

		events := s.LoanEvents(loan.ID)
		last := events[len(events)-1]
		assert.Equal(t, moneybags.LoanEventPayment, last.Type)
		assert.Equal(t, pay, last.Amount, "event records the attempted amount")
	}
}

func TestPaidOffLoansAreFrozen(t *testing.T) {
	s := newStore(t)
	alice := addPlayer(t, s, "Alice")
	loan := createLoan(t, s, alice.ID, 100, 15)
	_, err := s.PayOffLoan(loan.ID, 100)
	require.NoError(t, err)

	for range 3 {
		_, err := s.PassGo(alice.ID)
		require.NoError(t, err)
	}

	got, _ := s.Loan(loan.ID)
	assert.Zero(t, got.CurrentAmount)
	assert.Zero(t, got.PassedGoCount)
	assert.True(t, got.IsPaidOff)
	assert.Len(t, s.LoanEvents(loan.ID), 2, "created + payment only")
}

func TestPayOffLoanValidation(t *testing.T) {
	s := newStore(t)
	alice := addPlayer(t, s, "Alice")
	loan := createLoan(t, s, alice.ID, 100, 10)

	_, err := s.PayOffLoan(loan.ID, 0)
	assert.ErrorIs(t, err, gamestate.ErrInvalidAmount)
	_, err = s.PayOffLoan(loan.ID, -20)
	assert.ErrorIs(t, err, gamestate.ErrInvalidAmount)

	assert.Len(t, s.LoanEvents(loan.ID), 1)
}

func TestPaymentDescriptionGroupsThousands(t *testing.T) {
	s := newStore(t)
	alice := addPlayer(t, s, "Alice")
	loan := createLoan(t, s, alice.ID, 5000, 10)

	_, err := s.PayOffLoan(loan.ID, 1500)
	require.NoError(t, err)

	events := s.LoanEvents(loan.ID)
	assert.Equal(t, "Alice paid $1,500", events[1].Description)
}

func TestAliceScenario(t *testing.T) {
	s := newStore(t)
	alice := addPlayer(t, s, "Alice")
	loan := createLoan(t, s, alice.ID, 1000, 10)

	_, err := s.PassGo(alice.ID)
	require.NoError(t, err)
	got, err := s.PayOffLoan(loan.ID, 400)
	require.NoError(t, err)

	assert.Equal(t, 700.0, got.CurrentAmount)
	assert.Equal(t, 1, got.PassedGoCount)
	assert.False(t, got.IsPaidOff)

	events := s.LoanEvents(loan.ID)
	require.Len(t, events, 3)
	assert.Equal(t, moneybags.LoanEventCreated, events[0].Type)
	assert.Equal(t, 1000.0, events[0].Amount)
	assert.Equal(t, moneybags.LoanEventInterest, events[1].Type)
	assert.Equal(t, 100.0, events[1].Amount)
	assert.Equal(t, moneybags.LoanEventPayment, events[2].Type)
	assert.Equal(t, 400.0, events[2].Amount)

	newest := moneybags.NewestFirst(events)
	assert.Equal(t, moneybags.LoanEventPayment, newest[0].Type)
}

func TestLoanWithCollateral(t *testing.T) {
	s := newStore(t)
	alice := addPlayer(t, s, "Alice")
	prop, err := s.AddProperty(gamestate.PropertyParams{PlayerID: alice.ID, Name: "Park Lane", Value: 350})
	require.NoError(t, err)

	loan, err := s.CreateLoan(gamestate.LoanParams{PlayerID: alice.ID, Amount: 300, CollateralPropertyID: prop.ID})
	require.NoError(t, err)
	require.NotNil(t, loan.CollateralPropertyID)
	assert.Equal(t, prop.ID, *loan.CollateralPropertyID)

	got, ok := s.LoanCollateral(loan.ID)
	require.True(t, ok)
	assert.Equal(t, "Park Lane", got.Name)
}
