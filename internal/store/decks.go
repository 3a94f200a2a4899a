package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dueldisk/dueldisk-server/internal/domain"
)

// GetDeck retrieves a deck by ID.
// Returns ErrDeckNotFound if the deck does not exist.
func (s *Store) GetDeck(ctx context.Context, deckID string) (*domain.Deck, error) {
	deck, err := s.Decks.Get(ctx, deckID)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrDeckNotFound
	}
	if err != nil {
		return nil, unavailable(fmt.Errorf("get deck %s: %w", deckID, err))
	}
	return deck, nil
}

// PutDeck upserts a deck record.
func (s *Store) PutDeck(ctx context.Context, deck *domain.Deck) error {
	if err := s.Decks.Put(ctx, deck.ID, deck); err != nil {
		return unavailable(fmt.Errorf("put deck %s: %w", deck.ID, err))
	}
	return nil
}

// DeleteDeck removes a deck record. Deleting an absent id is a no-op.
func (s *Store) DeleteDeck(ctx context.Context, deckID string) error {
	if err := s.Decks.Delete(ctx, deckID); err != nil {
		return unavailable(fmt.Errorf("delete deck %s: %w", deckID, err))
	}
	return nil
}

// ListDecks returns every deck record.
func (s *Store) ListDecks(ctx context.Context) ([]*domain.Deck, error) {
	decks := []*domain.Deck{}
	for deck, err := range s.Decks.List(ctx) {
		if err != nil {
			return nil, unavailable(fmt.Errorf("list decks: %w", err))
		}
		decks = append(decks, deck)
	}
	return decks, nil
}
