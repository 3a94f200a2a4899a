package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dueldisk/dueldisk-server/internal/domain"
)

// GetCard retrieves a card by ID.
// Returns ErrCardNotFound if the card does not exist.
func (s *Store) GetCard(ctx context.Context, cardID string) (*domain.Card, error) {
	card, err := s.Cards.Get(ctx, cardID)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrCardNotFound
	}
	if err != nil {
		return nil, unavailable(fmt.Errorf("get card %s: %w", cardID, err))
	}
	return card, nil
}

// PutCard upserts a card record. The record is durable when the call returns.
func (s *Store) PutCard(ctx context.Context, card *domain.Card) error {
	if err := s.Cards.Put(ctx, card.ID, card); err != nil {
		return unavailable(fmt.Errorf("put card %s: %w", card.ID, err))
	}
	return nil
}

// DeleteCard removes a card record. Deleting an absent id is a no-op.
func (s *Store) DeleteCard(ctx context.Context, cardID string) error {
	if err := s.Cards.Delete(ctx, cardID); err != nil {
		return unavailable(fmt.Errorf("delete card %s: %w", cardID, err))
	}
	return nil
}

// ListCards returns every card record, proxies included.
func (s *Store) ListCards(ctx context.Context) ([]*domain.Card, error) {
	cards := []*domain.Card{}
	for card, err := range s.Cards.List(ctx) {
		if err != nil {
			return nil, unavailable(fmt.Errorf("list cards: %w", err))
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// FindOwnedCardByName looks up an owned card by case-folded name via the
// owned-name index. Proxy cards are not indexed and are never returned.
// Returns ErrCardNotFound when no owned card matches.
func (s *Store) FindOwnedCardByName(ctx context.Context, name string) (*domain.Card, error) {
	card, err := s.Cards.GetByIndex(ctx, "owned-name", name)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrCardNotFound
	}
	if err != nil {
		return nil, unavailable(fmt.Errorf("find owned card by name: %w", err))
	}
	return card, nil
}
