// Package domain contains the core data model for the DuelDisk card tracker.
package domain

import (
	"strings"
	"time"
)

// CardKind is the main classification of a card.
type CardKind string

// Card kinds. Unknown covers anything the external source could not classify.
const (
	KindMonster CardKind = "Monster"
	KindSpell   CardKind = "Spell"
	KindTrap    CardKind = "Trap"
	KindUnknown CardKind = "Unknown"
)

// KindFromAPIType folds a raw type string from the card database or the
// vision model into a CardKind. The database reports composite types like
// "Effect Monster" or "XYZ Monster", so matching is by substring.
func KindFromAPIType(raw string) CardKind {
	s := strings.ToLower(raw)
	switch {
	case strings.Contains(s, "monster"):
		return KindMonster
	case strings.Contains(s, "spell"):
		return KindSpell
	case strings.Contains(s, "trap"):
		return KindTrap
	default:
		return KindUnknown
	}
}

// Card represents one distinct owned-or-wished-for card entry. Quantity is a
// field, not repeated rows: a single record stands for every physical copy.
type Card struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Kind        CardKind `json:"kind"`
	Description string   `json:"description"`
	Attack      string   `json:"attack,omitempty"`
	Defense     string   `json:"defense,omitempty"`
	Level       int      `json:"level,omitempty"`
	Race        string   `json:"race,omitempty"`
	ImageRef    string   `json:"imageRef,omitempty"`
	AcquiredAt  int64    `json:"acquiredAt"` // ms epoch
	Owned       bool     `json:"owned"`
	Quantity    int      `json:"quantity"`
}

// IsProxy reports whether this card is a proxy/wishlist entry materialized
// only inside a deck. Proxies never count toward collection totals.
func (c *Card) IsProxy() bool {
	return !c.Owned
}

// PartialCard is the optional-field attribute set produced by the external
// card source (vision scan or database search). Name is the only required
// attribute; everything else defaults when the full record is constructed.
type PartialCard struct {
	Name        string   `json:"name"`
	Kind        CardKind `json:"kind,omitempty"`
	Description string   `json:"description,omitempty"`
	Attack      string   `json:"attack,omitempty"`
	Defense     string   `json:"defense,omitempty"`
	Level       int      `json:"level,omitempty"`
	Race        string   `json:"race,omitempty"`
	ImageRef    string   `json:"imageRef,omitempty"`
}

// NewCard builds a full owned Card record from a partial attribute set,
// applying defaults exactly once: kind Unknown, quantity 1, owned true.
// Downstream code never checks for missing values again.
func NewCard(cardID string, p PartialCard, acquiredAt time.Time) Card {
	kind := p.Kind
	if kind == "" {
		kind = KindUnknown
	}
	return Card{
		ID:          cardID,
		Name:        p.Name,
		Kind:        kind,
		Description: p.Description,
		Attack:      p.Attack,
		Defense:     p.Defense,
		Level:       p.Level,
		Race:        p.Race,
		ImageRef:    p.ImageRef,
		AcquiredAt:  acquiredAt.UnixMilli(),
		Owned:       true,
		Quantity:    1,
	}
}

// NewProxyCard builds a proxy/wishlist Card record: not owned, quantity 1.
// Proxies enter the collection when a deck references a card the user does
// not own (AI-generated plans, unresolved search picks).
func NewProxyCard(cardID string, p PartialCard, acquiredAt time.Time) Card {
	c := NewCard(cardID, p, acquiredAt)
	c.Owned = false
	return c
}
