package gamestate

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/playperu/moneybags/internal/moneybags"
)

// Decode parses a persisted or exported aggregate and runs Migrate on it.
// Top-level fields missing from data keep their initial values.
func Decode(data []byte) (moneybags.GameState, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return moneybags.GameState{}, fmt.Errorf("%w: expected a JSON object", ErrMalformedState)
	}

	st := moneybags.NewGameState()
	if err := json.Unmarshal(trimmed, &st); err != nil {
		return moneybags.GameState{}, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}
	return Migrate(st), nil
}

// Migrate backfills fields that older saves did not carry. It is applied
// on both the load and the import path.
func Migrate(st moneybags.GameState) moneybags.GameState {
	if st.Players == nil {
		st.Players = []moneybags.Player{}
	}
	if st.Loans == nil {
		st.Loans = []moneybags.Loan{}
	}
	if st.LoanEvents == nil {
		st.LoanEvents = []moneybags.LoanEvent{}
	}
	if st.Properties == nil {
		st.Properties = []moneybags.Property{}
	}

	for i := range st.Players {
		if st.Players[i].Avatar == "" {
			st.Players[i].Avatar = moneybags.PieceFor(i)
		}
	}
	for i := range st.Loans {
		if st.Loans[i].InterestRate == 0 {
			st.Loans[i].InterestRate = moneybags.DefaultInterestRate
		}
	}
	return st
}

// Export returns the whole aggregate as JSON, unfiltered.
func (s *Store) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(s.state)
	if err != nil {
		return nil, fmt.Errorf("encoding game state: %w", err)
	}
	return data, nil
}

// Import replaces the aggregate with data. On error the current state is
// left untouched.
func (s *Store) Import(data []byte) error {
	st, err := Decode(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = st
	s.commit()
	return nil
}

// Load restores a persisted aggregate at startup. Unlike Import it does not
// notify subscribers: restoring is not a game transition.
func (s *Store) Load(data []byte) error {
	st, err := Decode(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	return nil
}
