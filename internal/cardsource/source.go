// Package cardsource provides external card knowledge: vision-model card
// identification, card database search, and AI deck plans.
package cardsource

import (
	"context"

	"github.com/dueldisk/dueldisk-server/internal/domain"
)

// PlanMode selects the card pool for an AI deck plan.
type PlanMode string

// Plan modes. Owned restricts the plan to the user's collection; Unlimited
// lets the model suggest any card in the game.
const (
	PlanModeOwned     PlanMode = "OWNED"
	PlanModeUnlimited PlanMode = "UNLIMITED"
)

// ParsePlanMode converts a string to a PlanMode.
func ParsePlanMode(s string) (PlanMode, bool) {
	switch PlanMode(s) {
	case PlanModeOwned, PlanModeUnlimited:
		return PlanMode(s), true
	default:
		return "", false
	}
}

// DeckPlan is an AI-generated deck: a name and card names per section. Names
// are resolved against the collection when the deck is materialized.
type DeckPlan struct {
	DeckName  string   `json:"deckName"`
	MainDeck  []string `json:"mainDeck"`
	ExtraDeck []string `json:"extraDeck,omitempty"`
}

// Source is external card knowledge as one surface.
type Source interface {
	// IdentifyCard recognizes a card from a photo and returns its attributes.
	IdentifyCard(ctx context.Context, image []byte, mimeType string) (*domain.PartialCard, error)

	// SearchByName runs a fuzzy name search against the card database.
	// No match returns an empty slice.
	SearchByName(ctx context.Context, name string) ([]domain.PartialCard, error)

	// SearchByCode looks up a card by its printed passcode.
	SearchByCode(ctx context.Context, code string) (*domain.PartialCard, error)

	// GenerateDeckPlan asks the model for a deck built around coreNames.
	// In owned mode the plan draws only from availableNames.
	GenerateDeckPlan(ctx context.Context, coreNames []string, mode PlanMode, availableNames []string) (*DeckPlan, error)
}
