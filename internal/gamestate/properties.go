package gamestate

import (
	"slices"
	"strings"

	"github.com/playperu/moneybags/internal/moneybags"
)

// PropertyParams describes a new property. TemplateID and ColorHex are
// decorative references into the catalog.
type PropertyParams struct {
	PlayerID   string
	Name       string
	Value      float64
	TemplateID string
	ColorHex   string
}

// TemplateParams prefills a property for playerID from the catalog entry
// templateID.
func TemplateParams(playerID, templateID string) (PropertyParams, bool) {
	t, ok := moneybags.TemplateByID(templateID)
	if !ok {
		return PropertyParams{}, false
	}
	return PropertyParams{
		PlayerID:   playerID,
		Name:       t.Name,
		Value:      t.Price,
		TemplateID: t.ID,
		ColorHex:   t.ColorHex,
	}, true
}

func (s *Store) AddProperty(p PropertyParams) (moneybags.Property, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return moneybags.Property{}, ErrInvalidName
	}
	if p.Value < 0 {
		return moneybags.Property{}, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.playerIndex(p.PlayerID) < 0 {
		return moneybags.Property{}, ErrNotFound
	}
	prop := moneybags.Property{
		ID:          s.newID(),
		PlayerID:    p.PlayerID,
		Name:        p.Name,
		Value:       p.Value,
		IsMortgaged: false,
		TemplateID:  p.TemplateID,
		ColorHex:    p.ColorHex,
	}
	s.state.Properties = append(s.state.Properties, prop)
	s.commit()
	return prop, nil
}

// RemoveProperty deletes the property. Loans pledging it keep their
// collateral reference; LoanCollateral resolves such references to nothing.
func (s *Store) RemoveProperty(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.propertyIndex(id) < 0 {
		return ErrNotFound
	}
	s.state.Properties = slices.DeleteFunc(s.state.Properties, func(p moneybags.Property) bool { return p.ID == id })
	s.commit()
	return nil
}

// ToggleMortgage flips the mortgage flag, stamping mortgagedAt on the way in
// and clearing it on the way out.
func (s *Store) ToggleMortgage(id string) (moneybags.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.propertyIndex(id)
	if i < 0 {
		return moneybags.Property{}, ErrNotFound
	}
	prop := &s.state.Properties[i]
	if prop.IsMortgaged {
		prop.IsMortgaged = false
		prop.MortgagedAt = nil
	} else {
		at := s.now()
		prop.IsMortgaged = true
		prop.MortgagedAt = &at
	}
	out := copyProperty(*prop)
	s.commit()
	return out, nil
}

func (s *Store) Property(id string) (moneybags.Property, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.propertyIndex(id)
	if i < 0 {
		return moneybags.Property{}, false
	}
	return copyProperty(s.state.Properties[i]), true
}

// UnmortgageCost is the property value plus a 10% fee, in whole units.
func (s *Store) UnmortgageCost(id string) (float64, bool) {
	prop, ok := s.Property(id)
	if !ok {
		return 0, false
	}
	return redemption(prop.Value), true
}

func copyProperty(p moneybags.Property) moneybags.Property {
	if p.MortgagedAt != nil {
		at := *p.MortgagedAt
		p.MortgagedAt = &at
	}
	return p
}
