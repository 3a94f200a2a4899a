// Package service provides the business logic layer for the card collection,
// deck building, and collection/deck consistency.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dueldisk/dueldisk-server/internal/domain"
	apperrors "github.com/dueldisk/dueldisk-server/internal/errors"
	"github.com/dueldisk/dueldisk-server/internal/id"
	"github.com/dueldisk/dueldisk-server/internal/store"
)

// Sweeper removes a deleted card's references from every deck.
type Sweeper interface {
	OnCardDeleted(ctx context.Context, cardID string) error
}

// CollectionService orchestrates owned-card operations: merge-on-add,
// quantity changes, and full deletion with the deck sweep.
type CollectionService struct {
	store   *store.Store
	sweeper Sweeper
	logger  *slog.Logger
}

// NewCollectionService creates a new collection service.
func NewCollectionService(store *store.Store, sweeper Sweeper, logger *slog.Logger) *CollectionService {
	return &CollectionService{
		store:   store,
		sweeper: sweeper,
		logger:  logger,
	}
}

// AddOwnedCard adds quantity copies of a card to the owned collection. A
// quantity below 1 counts as 1.
//
// Additions merge by name: if an owned card with the same folded name already
// exists, its quantity is incremented and the stored attributes win over the
// incoming ones (attributes the existing record lacks are backfilled).
// Otherwise a fresh record is created. Proxy records never participate in
// the merge, so adding a card the user previously only wished for creates a
// separate owned entry.
func (s *CollectionService) AddOwnedCard(ctx context.Context, p domain.PartialCard, quantity int) (*domain.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(p.Name) == "" {
		return nil, apperrors.Validation("card name is required")
	}
	if quantity < 1 {
		quantity = 1
	}

	existing, err := s.store.FindOwnedCardByName(ctx, p.Name)
	switch {
	case err == nil:
		existing.Quantity += quantity
		if existing.Description == "" {
			existing.Description = p.Description
		}
		if existing.ImageRef == "" {
			existing.ImageRef = p.ImageRef
		}
		if err := s.store.PutCard(ctx, existing); err != nil {
			return nil, fmt.Errorf("merge owned card: %w", err)
		}

		s.logger.Info("owned card merged",
			"card_id", existing.ID,
			"name", existing.Name,
			"quantity", existing.Quantity,
		)
		return existing, nil

	case apperrors.Is(err, store.ErrCardNotFound):
		cardID, err := id.Generate(id.PrefixCard)
		if err != nil {
			return nil, fmt.Errorf("generate card ID: %w", err)
		}

		card := domain.NewCard(cardID, p, time.Now())
		card.Quantity = quantity
		if err := s.store.PutCard(ctx, &card); err != nil {
			return nil, fmt.Errorf("create owned card: %w", err)
		}

		s.logger.Info("owned card created",
			"card_id", card.ID,
			"name", card.Name,
			"kind", card.Kind,
		)
		return &card, nil

	default:
		return nil, fmt.Errorf("find owned card: %w", err)
	}
}

// RemoveCopies removes count copies of a card from the collection.
//
// Removing fewer copies than owned just decrements the quantity. Removing
// the last copy (or more than are owned) deletes the record entirely and
// triggers the deck sweep so no deck keeps slots pointing at the deleted id.
// Removing copies of an absent card is a no-op. A non-positive count is a
// validation error.
func (s *CollectionService) RemoveCopies(ctx context.Context, cardID string, count int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if count <= 0 {
		return apperrors.Validation("removal count must be positive")
	}

	card, err := s.store.GetCard(ctx, cardID)
	if apperrors.Is(err, store.ErrCardNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("get card: %w", err)
	}

	if count < card.Quantity {
		card.Quantity -= count
		if err := s.store.PutCard(ctx, card); err != nil {
			return fmt.Errorf("decrement card quantity: %w", err)
		}

		s.logger.Info("card copies removed",
			"card_id", cardID,
			"removed", count,
			"remaining", card.Quantity,
		)
		return nil
	}

	return s.deleteAndSweep(ctx, card)
}

// DeleteCard deletes a card record outright, regardless of quantity, and
// sweeps its references out of every deck. Deleting an absent id is a no-op.
func (s *CollectionService) DeleteCard(ctx context.Context, cardID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	card, err := s.store.GetCard(ctx, cardID)
	if apperrors.Is(err, store.ErrCardNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("get card: %w", err)
	}

	return s.deleteAndSweep(ctx, card)
}

// deleteAndSweep removes the record and then runs the deck sweep. The delete
// is durable before the sweep starts, so a sweep failure leaves dangling
// references (rendered as missing cards) rather than a resurrected record.
func (s *CollectionService) deleteAndSweep(ctx context.Context, card *domain.Card) error {
	if err := s.store.DeleteCard(ctx, card.ID); err != nil {
		return fmt.Errorf("delete card: %w", err)
	}

	s.logger.Info("card deleted",
		"card_id", card.ID,
		"name", card.Name,
	)

	if err := s.sweeper.OnCardDeleted(ctx, card.ID); err != nil {
		return fmt.Errorf("sweep deck references for %s: %w", card.ID, err)
	}

	return nil
}

// GetCard retrieves a single card record.
func (s *CollectionService) GetCard(ctx context.Context, cardID string) (*domain.Card, error) {
	card, err := s.store.GetCard(ctx, cardID)
	if apperrors.Is(err, store.ErrCardNotFound) {
		return nil, apperrors.NotFoundf("card %s not found", cardID)
	}
	if err != nil {
		return nil, err
	}
	return card, nil
}

// ListCards returns every card record, proxies included.
func (s *CollectionService) ListCards(ctx context.Context) ([]*domain.Card, error) {
	return s.store.ListCards(ctx)
}

// ListOwned returns only owned card records, excluding proxies.
func (s *CollectionService) ListOwned(ctx context.Context) ([]*domain.Card, error) {
	cards, err := s.store.ListCards(ctx)
	if err != nil {
		return nil, err
	}

	owned := cards[:0:0]
	for _, c := range cards {
		if !c.IsProxy() {
			owned = append(owned, c)
		}
	}
	return owned, nil
}
