package gamestate

import (
	"github.com/playperu/moneybags/internal/moneybags"
)

// Derived queries. All are pure reads of the current state.

func (s *Store) PlayerLoans(playerID string) []moneybags.Loan {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []moneybags.Loan{}
	for _, l := range s.state.Loans {
		if l.PlayerID == playerID {
			out = append(out, copyLoan(l))
		}
	}
	return out
}

func (s *Store) PlayerProperties(playerID string) []moneybags.Property {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []moneybags.Property{}
	for _, p := range s.state.Properties {
		if p.PlayerID == playerID {
			out = append(out, copyProperty(p))
		}
	}
	return out
}

// PlayerDebt sums the balances of the player's active loans.
func (s *Store) PlayerDebt(playerID string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playerDebt(playerID)
}

func (s *Store) playerDebt(playerID string) float64 {
	var sum summer
	for _, l := range s.state.Loans {
		if l.PlayerID == playerID && !l.IsPaidOff {
			sum.add(l.CurrentAmount)
		}
	}
	return sum.value()
}

// IsPlayerBankrupt reports debt at or above the global threshold. A zero
// threshold disables the check.
func (s *Store) IsPlayerBankrupt(playerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.BankruptcyThreshold == 0 {
		return false
	}
	return s.playerDebt(playerID) >= s.state.BankruptcyThreshold
}

// PlayerOverDebtLimit reports debt strictly above the player's own limit.
// A zero limit, or an unknown player, never warns.
func (s *Store) PlayerOverDebtLimit(playerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.playerIndex(playerID)
	if i < 0 || s.state.Players[i].DebtLimit == 0 {
		return false
	}
	return s.playerDebt(playerID) > s.state.Players[i].DebtLimit
}

func (s *Store) TotalDebt() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sum summer
	for _, l := range s.state.Loans {
		if !l.IsPaidOff {
			sum.add(l.CurrentAmount)
		}
	}
	return sum.value()
}

// TotalInterest includes interest that was charged on loans since paid off.
func (s *Store) TotalInterest() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sum summer
	for _, l := range s.state.Loans {
		sum.add(l.Interest())
	}
	return sum.value()
}

func (s *Store) ActiveLoansCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, l := range s.state.Loans {
		if !l.IsPaidOff {
			n++
		}
	}
	return n
}

// LoanEvents returns the loan's events in the order they were recorded.
func (s *Store) LoanEvents(loanID string) []moneybags.LoanEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []moneybags.LoanEvent{}
	for _, e := range s.state.LoanEvents {
		if e.LoanID == loanID {
			out = append(out, e)
		}
	}
	return out
}

// LoanCollateral resolves the loan's pledged property. Dangling references
// resolve to nothing.
func (s *Store) LoanCollateral(loanID string) (moneybags.Property, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	li := s.loanIndex(loanID)
	if li < 0 || s.state.Loans[li].CollateralPropertyID == nil {
		return moneybags.Property{}, false
	}
	pi := s.propertyIndex(*s.state.Loans[li].CollateralPropertyID)
	if pi < 0 {
		return moneybags.Property{}, false
	}
	return copyProperty(s.state.Properties[pi]), true
}

// PropertiesUsedAsCollateral lists each property pledged on an active loan
// once, in property order.
func (s *Store) PropertiesUsedAsCollateral() []moneybags.Property {
	s.mu.Lock()
	defer s.mu.Unlock()

	pledged := s.pledged()
	out := []moneybags.Property{}
	for _, p := range s.state.Properties {
		if pledged[p.ID] {
			out = append(out, copyProperty(p))
		}
	}
	return out
}

// AvailableCollateralProperties lists the player's properties that are
// neither mortgaged nor pledged on an active loan.
func (s *Store) AvailableCollateralProperties(playerID string) []moneybags.Property {
	s.mu.Lock()
	defer s.mu.Unlock()

	pledged := s.pledged()
	out := []moneybags.Property{}
	for _, p := range s.state.Properties {
		if p.PlayerID == playerID && !p.IsMortgaged && !pledged[p.ID] {
			out = append(out, copyProperty(p))
		}
	}
	return out
}

func (s *Store) pledged() map[string]bool {
	ids := make(map[string]bool)
	for _, l := range s.state.Loans {
		if !l.IsPaidOff && l.CollateralPropertyID != nil {
			ids[*l.CollateralPropertyID] = true
		}
	}
	return ids
}

// Summary aggregates the headline numbers shown alongside the game.
type Summary struct {
	Players             int               `json:"players"`
	TotalDebt           float64           `json:"totalDebt"`
	TotalInterest       float64           `json:"totalInterest"`
	ActiveLoans         int               `json:"activeLoans"`
	TotalPassedGo       int               `json:"totalPassedGo"`
	BankruptcyThreshold float64           `json:"bankruptcyThreshold"`
	CurrentPlayer       *moneybags.Player `json:"currentPlayer,omitempty"`
}

func (s *Store) Summary() Summary {
	sum := Summary{
		TotalDebt:     s.TotalDebt(),
		TotalInterest: s.TotalInterest(),
		ActiveLoans:   s.ActiveLoansCount(),
	}

	s.mu.Lock()
	sum.Players = len(s.state.Players)
	sum.TotalPassedGo = s.state.TotalPassedGo
	sum.BankruptcyThreshold = s.state.BankruptcyThreshold
	s.mu.Unlock()

	if p, ok := s.CurrentPlayer(); ok {
		sum.CurrentPlayer = &p
	}
	return sum
}

// PlayerStanding is the per-player view: holdings plus the derived flags.
type PlayerStanding struct {
	Player              moneybags.Player     `json:"player"`
	Loans               []moneybags.Loan     `json:"loans"`
	Properties          []moneybags.Property `json:"properties"`
	Debt                float64              `json:"debt"`
	Bankrupt            bool                 `json:"bankrupt"`
	OverDebtLimit       bool                 `json:"overDebtLimit"`
	AvailableCollateral []moneybags.Property `json:"availableCollateral"`
}

func (s *Store) Standing(playerID string) (PlayerStanding, bool) {
	p, ok := s.Player(playerID)
	if !ok {
		return PlayerStanding{}, false
	}
	return PlayerStanding{
		Player:              p,
		Loans:               s.PlayerLoans(playerID),
		Properties:          s.PlayerProperties(playerID),
		Debt:                s.PlayerDebt(playerID),
		Bankrupt:            s.IsPlayerBankrupt(playerID),
		OverDebtLimit:       s.PlayerOverDebtLimit(playerID),
		AvailableCollateral: s.AvailableCollateralProperties(playerID),
	}, true
}
