package store

import (
	"context"
	"fmt"
	"time"

	"github.com/dueldisk/dueldisk-server/internal/domain"
)

// Snapshot is a full JSON export of both record collections. The client uses
// it for manual backup and device-to-device transfer.
type Snapshot struct {
	ExportedAt int64         `json:"exportedAt"` // ms epoch
	Cards      []domain.Card `json:"cards"`
	Decks      []domain.Deck `json:"decks"`
}

// Export captures every card and deck record into a snapshot.
func (s *Store) Export(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{
		ExportedAt: time.Now().UnixMilli(),
		Cards:      []domain.Card{},
		Decks:      []domain.Deck{},
	}

	for card, err := range s.Cards.List(ctx) {
		if err != nil {
			return nil, unavailable(fmt.Errorf("export cards: %w", err))
		}
		snap.Cards = append(snap.Cards, *card)
	}

	for deck, err := range s.Decks.List(ctx) {
		if err != nil {
			return nil, unavailable(fmt.Errorf("export decks: %w", err))
		}
		snap.Decks = append(snap.Decks, *deck)
	}

	return snap, nil
}

// Import writes every record in the snapshot with upsert semantics.
// Records already in the store that the snapshot does not mention are left
// untouched; each write is independently durable, so a failure partway
// leaves earlier records imported.
func (s *Store) Import(ctx context.Context, snap *Snapshot) error {
	for i := range snap.Cards {
		if err := s.PutCard(ctx, &snap.Cards[i]); err != nil {
			return fmt.Errorf("import card %s: %w", snap.Cards[i].ID, err)
		}
	}
	for i := range snap.Decks {
		if err := s.PutDeck(ctx, &snap.Decks[i]); err != nil {
			return fmt.Errorf("import deck %s: %w", snap.Decks[i].ID, err)
		}
	}

	if s.logger != nil {
		s.logger.Info("snapshot imported",
			"cards", len(snap.Cards),
			"decks", len(snap.Decks),
		)
	}

	return nil
}
