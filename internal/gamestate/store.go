// Package gamestate owns the game aggregate. Every action is an atomic
// read-modify-replace of the whole state; subscribers are told about each
// successful transition.
package gamestate

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/playperu/moneybags/internal/moneybags"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidName       = errors.New("name is required")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidRate       = errors.New("invalid interest rate")
	ErrInvalidAvatar     = errors.New("invalid avatar")
	ErrInvalidCollateral = errors.New("collateral must be a property owned by the borrower")
	ErrMalformedState    = errors.New("malformed game state")
)

// Listener receives a snapshot after each transition. It runs while the
// store is locked and must not call back into the store.
type Listener func(moneybags.GameState)

type Store struct {
	mu        sync.Mutex
	state     moneybags.GameState
	listeners map[int]Listener
	nextSub   int

	now   func() time.Time
	newID func() string
}

type Option func(*Store)

// WithClock overrides the time source used for createdAt, timestamps and
// mortgagedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

func New(opts ...Option) *Store {
	s := &Store{
		state:     moneybags.NewGameState(),
		listeners: make(map[int]Listener),
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns a deep snapshot of the aggregate.
func (s *Store) State() moneybags.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Subscribe registers fn for state-changed notifications and returns a
// function that removes it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// commit notifies listeners. Callers hold s.mu and have finished mutating.
func (s *Store) commit() {
	if len(s.listeners) == 0 {
		return
	}
	snap := s.state.Clone()
	for _, fn := range s.listeners {
		fn(snap)
	}
}

// SetBankruptcyThreshold sets the global debt ceiling; 0 disables it.
func (s *Store) SetBankruptcyThreshold(threshold float64) error {
	if threshold < 0 {
		return ErrInvalidAmount
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.BankruptcyThreshold = threshold
	s.commit()
	return nil
}

// Reset discards everything and starts a fresh game.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = moneybags.NewGameState()
	s.commit()
}

func (s *Store) playerIndex(id string) int {
	for i, p := range s.state.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) loanIndex(id string) int {
	for i, l := range s.state.Loans {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) propertyIndex(id string) int {
	for i, p := range s.state.Properties {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) appendEvent(loanID string, typ moneybags.LoanEventType, amount float64, desc string) moneybags.LoanEvent {
	ev := moneybags.LoanEvent{
		ID:          s.newID(),
		LoanID:      loanID,
		Type:        typ,
		Amount:      amount,
		Timestamp:   s.now(),
		Description: desc,
	}
	s.state.LoanEvents = append(s.state.LoanEvents, ev)
	return ev
}
