// Package moneybags defines the core domain types for tracking house-rule loans,
// interest and mortgages during a board game session.
// It has no external dependencies.
package moneybags

import (
	"slices"
	"time"
)

// Piece is a player avatar, one of the classic board game tokens.
type Piece string

const (
	PieceCar         Piece = "car"
	PieceDog         Piece = "dog"
	PieceHat         Piece = "hat"
	PieceShip        Piece = "ship"
	PieceThimble     Piece = "thimble"
	PieceBoot        Piece = "boot"
	PieceWheelbarrow Piece = "wheelbarrow"
	PieceCat         Piece = "cat"
)

// Pieces lists every avatar in round-robin assignment order.
var Pieces = []Piece{
	PieceCar, PieceDog, PieceHat, PieceShip,
	PieceThimble, PieceBoot, PieceWheelbarrow, PieceCat,
}

// Valid reports whether p is one of Pieces.
func (p Piece) Valid() bool {
	return slices.Contains(Pieces, p)
}

// PieceFor returns the default avatar for the player at position i.
func PieceFor(i int) Piece {
	return Pieces[i%len(Pieces)]
}

// PlayerColors is the display palette, assigned round-robin at creation.
var PlayerColors = []string{
	"#ef4444", // red
	"#3b82f6", // blue
	"#22c55e", // green
	"#f59e0b", // amber
	"#8b5cf6", // violet
	"#ec4899", // pink
	"#14b8a6", // teal
	"#f97316", // orange
}

// ColorFor returns the palette colour for the player at position i.
func ColorFor(i int) string {
	return PlayerColors[i%len(PlayerColors)]
}

// InterestRate is a per-pass-GO percentage.
type InterestRate int

const (
	Rate5  InterestRate = 5
	Rate10 InterestRate = 10
	Rate15 InterestRate = 15

	DefaultInterestRate = Rate10
)

var InterestRates = []InterestRate{Rate5, Rate10, Rate15}

func (r InterestRate) Valid() bool {
	return slices.Contains(InterestRates, r)
}

// DefaultBankruptcyThreshold applies to a fresh game; 0 disables the check.
const DefaultBankruptcyThreshold = 5000

type Player struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Color         string  `json:"color"`
	Avatar        Piece   `json:"avatar"`
	Notes         string  `json:"notes"`
	DebtLimit     float64 `json:"debtLimit"` // 0 = no limit
	IsCurrentTurn bool    `json:"isCurrentTurn"`
}

type Loan struct {
	ID                   string       `json:"id"`
	PlayerID             string       `json:"playerId"`
	InitialAmount        float64      `json:"initialAmount"`
	CurrentAmount        float64      `json:"currentAmount"`
	InterestRate         InterestRate `json:"interestRate"`
	CreatedAt            time.Time    `json:"createdAt"`
	PassedGoCount        int          `json:"passedGoCount"`
	IsPaidOff            bool         `json:"isPaidOff"`
	CollateralPropertyID *string      `json:"collateralPropertyId,omitempty"`
}

// Active reports whether the loan still carries a balance.
func (l Loan) Active() bool { return !l.IsPaidOff }

// Interest is the amount accrued on top of the principal so far.
func (l Loan) Interest() float64 { return l.CurrentAmount - l.InitialAmount }

type LoanEventType string

const (
	LoanEventCreated  LoanEventType = "created"
	LoanEventInterest LoanEventType = "interest"
	LoanEventPayment  LoanEventType = "payment"
)

// LoanEvent is an append-only audit record. Events outlive the loans they
// reference.
type LoanEvent struct {
	ID          string        `json:"id"`
	LoanID      string        `json:"loanId"`
	Type        LoanEventType `json:"type"`
	Amount      float64       `json:"amount"`
	Timestamp   time.Time     `json:"timestamp"`
	Description string        `json:"description"`
}

// NewestFirst returns a copy of events ordered by timestamp, latest first.
func NewestFirst(events []LoanEvent) []LoanEvent {
	out := slices.Clone(events)
	slices.SortStableFunc(out, func(a, b LoanEvent) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return out
}

type Property struct {
	ID          string     `json:"id"`
	PlayerID    string     `json:"playerId"`
	Name        string     `json:"name"`
	Value       float64    `json:"value"`
	IsMortgaged bool       `json:"isMortgaged"`
	MortgagedAt *time.Time `json:"mortgagedAt,omitempty"`
	TemplateID  string     `json:"templateId,omitempty"`
	ColorHex    string     `json:"colorHex,omitempty"`
}

// GameState is the aggregate: the unit of persistence, export and import.
type GameState struct {
	Players             []Player    `json:"players"`
	Loans               []Loan      `json:"loans"`
	LoanEvents          []LoanEvent `json:"loanEvents"`
	Properties          []Property  `json:"properties"`
	TotalPassedGo       int         `json:"totalPassedGo"`
	BankruptcyThreshold float64     `json:"bankruptcyThreshold"` // 0 = disabled
}

// NewGameState returns the initial, empty aggregate.
func NewGameState() GameState {
	return GameState{
		Players:             []Player{},
		Loans:               []Loan{},
		LoanEvents:          []LoanEvent{},
		Properties:          []Property{},
		BankruptcyThreshold: DefaultBankruptcyThreshold,
	}
}

// Clone returns a deep copy that shares no slices or pointers with s.
func (s GameState) Clone() GameState {
	c := s
	c.Players = slices.Clone(s.Players)
	c.LoanEvents = slices.Clone(s.LoanEvents)

	c.Loans = make([]Loan, len(s.Loans))
	for i, l := range s.Loans {
		if l.CollateralPropertyID != nil {
			id := *l.CollateralPropertyID
			l.CollateralPropertyID = &id
		}
		c.Loans[i] = l
	}

	c.Properties = make([]Property, len(s.Properties))
	for i, p := range s.Properties {
		if p.MortgagedAt != nil {
			at := *p.MortgagedAt
			p.MortgagedAt = &at
		}
		c.Properties[i] = p
	}
	return c
}
