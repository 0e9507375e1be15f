package gamestate

import (
	"slices"
	"strings"

	"github.com/playperu/moneybags/internal/moneybags"
)

// AddPlayer appends a player. An empty avatar picks the round-robin default.
// The first player added takes the current turn.
func (s *Store) AddPlayer(name string, avatar moneybags.Piece) (moneybags.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return moneybags.Player{}, ErrInvalidName
	}
	if avatar != "" && !avatar.Valid() {
		return moneybags.Player{}, ErrInvalidAvatar
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.state.Players)
	if avatar == "" {
		avatar = moneybags.PieceFor(n)
	}
	p := moneybags.Player{
		ID:            s.newID(),
		Name:          name,
		Color:         moneybags.ColorFor(n),
		Avatar:        avatar,
		Notes:         "",
		DebtLimit:     0,
		IsCurrentTurn: n == 0,
	}
	s.state.Players = append(s.state.Players, p)
	s.commit()
	return p, nil
}

// RemovePlayer deletes the player with their loans and properties. Loan
// events stay. If the player held the turn, nobody holds it afterwards.
func (s *Store) RemovePlayer(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.playerIndex(id) < 0 {
		return ErrNotFound
	}
	s.state.Players = slices.DeleteFunc(s.state.Players, func(p moneybags.Player) bool { return p.ID == id })
	s.state.Loans = slices.DeleteFunc(s.state.Loans, func(l moneybags.Loan) bool { return l.PlayerID == id })
	s.state.Properties = slices.DeleteFunc(s.state.Properties, func(p moneybags.Property) bool { return p.PlayerID == id })
	s.commit()
	return nil
}

func (s *Store) UpdatePlayerNotes(id, notes string) error {
	return s.updatePlayer(id, func(p *moneybags.Player) { p.Notes = notes })
}

// UpdatePlayerDebtLimit sets the warning ceiling; 0 means no limit.
func (s *Store) UpdatePlayerDebtLimit(id string, limit float64) error {
	if limit < 0 {
		return ErrInvalidAmount
	}
	return s.updatePlayer(id, func(p *moneybags.Player) { p.DebtLimit = limit })
}

func (s *Store) UpdatePlayerAvatar(id string, avatar moneybags.Piece) error {
	if !avatar.Valid() {
		return ErrInvalidAvatar
	}
	return s.updatePlayer(id, func(p *moneybags.Player) { p.Avatar = avatar })
}

func (s *Store) updatePlayer(id string, fn func(*moneybags.Player)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.playerIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	fn(&s.state.Players[i])
	s.commit()
	return nil
}

func (s *Store) Player(id string) (moneybags.Player, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.playerIndex(id)
	if i < 0 {
		return moneybags.Player{}, false
	}
	return s.state.Players[i], true
}

// FindPlayer resolves an id or, failing that, an exact name.
func (s *Store) FindPlayer(ref string) (moneybags.Player, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.playerIndex(ref); i >= 0 {
		return s.state.Players[i], true
	}
	for _, p := range s.state.Players {
		if p.Name == ref {
			return p, true
		}
	}
	return moneybags.Player{}, false
}

// NextTurn passes the turn to the player after the current one, wrapping
// around. With no current player the first player gets the turn. Returns
// false when there are no players.
func (s *Store) NextTurn() (moneybags.Player, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.state.Players)
	if n == 0 {
		return moneybags.Player{}, false
	}
	cur := slices.IndexFunc(s.state.Players, func(p moneybags.Player) bool { return p.IsCurrentTurn })
	next := (cur + 1) % n
	for i := range s.state.Players {
		s.state.Players[i].IsCurrentTurn = i == next
	}
	s.commit()
	return s.state.Players[next], true
}

func (s *Store) SetCurrentTurn(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.playerIndex(id) < 0 {
		return ErrNotFound
	}
	for i := range s.state.Players {
		s.state.Players[i].IsCurrentTurn = s.state.Players[i].ID == id
	}
	s.commit()
	return nil
}

func (s *Store) CurrentPlayer() (moneybags.Player, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.state.Players {
		if p.IsCurrentTurn {
			return p, true
		}
	}
	return moneybags.Player{}, false
}
