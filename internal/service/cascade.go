package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dueldisk/dueldisk-server/internal/domain"
	apperrors "github.com/dueldisk/dueldisk-server/internal/errors"
)

// DeckStore is the slice of the durable store the cascade needs. The
// interface keeps the sweep testable against a store that fails mid-run.
type DeckStore interface {
	ListDecks(ctx context.Context) ([]*domain.Deck, error)
	PutDeck(ctx context.Context, deck *domain.Deck) error
}

// CascadeService keeps decks consistent with the collection. When a card is
// fully deleted, every deck referencing it must drop those slots; otherwise
// the references dangle and render as missing cards.
type CascadeService struct {
	decks  DeckStore
	logger *slog.Logger
}

// NewCascadeService creates a new cascade service.
func NewCascadeService(decks DeckStore, logger *slog.Logger) *CascadeService {
	return &CascadeService{
		decks:  decks,
		logger: logger,
	}
}

// OnCardDeleted sweeps all occurrences of cardID out of every deck.
//
// The sweep is sequential and keeps going past per-deck write failures: a
// deck that cannot be updated is logged and collected, and the remaining
// decks are still swept. When any deck failed, the joined per-deck errors
// come back wrapped in a partial-sweep error so the caller can surface that
// some references may dangle. Decks that never referenced the card are not
// rewritten.
func (s *CascadeService) OnCardDeleted(ctx context.Context, cardID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	decks, err := s.decks.ListDecks(ctx)
	if err != nil {
		return fmt.Errorf("list decks for sweep: %w", err)
	}

	var failures []error
	swept := 0

	for _, deck := range decks {
		removed := deck.RemoveAllOccurrences(cardID)
		if removed == 0 {
			continue
		}

		if err := s.decks.PutDeck(ctx, deck); err != nil {
			s.logger.Error("deck sweep write failed",
				"deck_id", deck.ID,
				"card_id", cardID,
				"error", err,
			)
			failures = append(failures, fmt.Errorf("deck %s: %w", deck.ID, err))
			continue
		}

		swept++
		s.logger.Info("card references swept from deck",
			"deck_id", deck.ID,
			"card_id", cardID,
			"removed", removed,
		)
	}

	if len(failures) > 0 {
		return apperrors.PartialSweep(
			fmt.Sprintf("swept %d decks, %d failed", swept, len(failures)),
			apperrors.Join(failures...),
		)
	}

	return nil
}
