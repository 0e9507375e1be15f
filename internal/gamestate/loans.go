package gamestate

import (
	"github.com/playperu/moneybags/internal/moneybags"
)

// LoanParams describes a new loan. A zero InterestRate means the default
// rate; an empty CollateralPropertyID means no collateral.
type LoanParams struct {
	PlayerID             string
	Amount               float64
	InterestRate         moneybags.InterestRate
	CollateralPropertyID string
}

// CreateLoan opens a loan for the player and records a created event.
func (s *Store) CreateLoan(p LoanParams) (moneybags.Loan, error) {
	if p.Amount <= 0 {
		return moneybags.Loan{}, ErrInvalidAmount
	}
	if p.InterestRate == 0 {
		p.InterestRate = moneybags.DefaultInterestRate
	}
	if !p.InterestRate.Valid() {
		return moneybags.Loan{}, ErrInvalidRate
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pi := s.playerIndex(p.PlayerID)
	if pi < 0 {
		return moneybags.Loan{}, ErrNotFound
	}

	var collateral *string
	if p.CollateralPropertyID != "" {
		ci := s.propertyIndex(p.CollateralPropertyID)
		if ci < 0 || s.state.Properties[ci].PlayerID != p.PlayerID {
			return moneybags.Loan{}, ErrInvalidCollateral
		}
		id := p.CollateralPropertyID
		collateral = &id
	}

	loan := moneybags.Loan{
		ID:                   s.newID(),
		PlayerID:             p.PlayerID,
		InitialAmount:        p.Amount,
		CurrentAmount:        p.Amount,
		InterestRate:         p.InterestRate,
		CreatedAt:            s.now(),
		PassedGoCount:        0,
		IsPaidOff:            false,
		CollateralPropertyID: collateral,
	}
	s.state.Loans = append(s.state.Loans, loan)
	s.appendEvent(loan.ID, moneybags.LoanEventCreated, p.Amount,
		describeCreated(s.state.Players[pi].Name, p.InterestRate))
	s.commit()
	return copyLoan(loan), nil
}

// PayOffLoan reduces the balance by amount, never below zero. The payment
// event records amount as given, even when it overshoots the balance.
func (s *Store) PayOffLoan(loanID string, amount float64) (moneybags.Loan, error) {
	if amount <= 0 {
		return moneybags.Loan{}, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	li := s.loanIndex(loanID)
	if li < 0 {
		return moneybags.Loan{}, ErrNotFound
	}
	loan := &s.state.Loans[li]

	loan.CurrentAmount = repay(loan.CurrentAmount, amount)
	if loan.CurrentAmount == 0 {
		loan.IsPaidOff = true
	}

	name := "Unknown"
	if pi := s.playerIndex(loan.PlayerID); pi >= 0 {
		name = s.state.Players[pi].Name
	}
	s.appendEvent(loan.ID, moneybags.LoanEventPayment, amount, describePayment(name, amount))
	out := copyLoan(*loan)
	s.commit()
	return out, nil
}

// PassGo compounds interest on every active loan of the player and bumps
// the global pass-GO counter once. It returns the interest events recorded.
func (s *Store) PassGo(playerID string) ([]moneybags.LoanEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pi := s.playerIndex(playerID)
	if pi < 0 {
		return nil, ErrNotFound
	}
	name := s.state.Players[pi].Name

	events := []moneybags.LoanEvent{}
	for i := range s.state.Loans {
		loan := &s.state.Loans[i]
		if loan.PlayerID != playerID || loan.IsPaidOff {
			continue
		}
		interest, next := accrue(loan.CurrentAmount, loan.InterestRate)
		loan.CurrentAmount = next
		loan.PassedGoCount++
		events = append(events, s.appendEvent(loan.ID, moneybags.LoanEventInterest, interest,
			describeInterest(name, loan.InterestRate)))
	}
	s.state.TotalPassedGo++
	s.commit()
	return events, nil
}

func (s *Store) Loan(id string) (moneybags.Loan, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.loanIndex(id)
	if i < 0 {
		return moneybags.Loan{}, false
	}
	return copyLoan(s.state.Loans[i]), true
}

func copyLoan(l moneybags.Loan) moneybags.Loan {
	if l.CollateralPropertyID != nil {
		id := *l.CollateralPropertyID
		l.CollateralPropertyID = &id
	}
	return l
}
