// Package store provides the durable persistence layer for cards and decks.
//
// Records live in a local Badger database as JSON values under the prefixes
// "card:" and "deck:". The two collections are independent: the store itself
// enforces no cross-collection constraints. Referential bookkeeping between
// decks and cards belongs to the service layer.
package store

import (
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/dueldisk/dueldisk-server/internal/domain"
	"github.com/dueldisk/dueldisk-server/internal/normalize"
)

// Key prefixes for BadgerDB.
const (
	cardPrefix = "card:"
	deckPrefix = "deck:"
)

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	// Generic entities
	Cards *Entity[domain.Card]
	Decks *Entity[domain.Deck]
}

// New creates a new Store instance with the given database path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // A put must be durable before its completion is signaled
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	store := &Store{
		db:     db,
		logger: logger,
	}

	store.initCards()
	store.initDecks()

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", path)
	}

	return store, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

// initCards initializes the Cards entity on the store.
// Owned cards are indexed by case-folded name so merge-on-add can find the
// record to increment. Proxy/wishlist cards are deliberately not indexed:
// a proxy with the same name never merges with an owned addition.
func (s *Store) initCards() {
	s.Cards = NewEntity[domain.Card](s, cardPrefix).
		WithIndexTransform("owned-name",
			func(c *domain.Card) []string {
				if !c.Owned {
					return nil
				}
				return []string{normalize.CardName(c.Name)}
			},
			normalize.CardName, // Transform lookups so matching is case-insensitive
		)
}

// initDecks initializes the Decks entity on the store.
// Decks reference cards by id only; no secondary indexes are needed.
func (s *Store) initDecks() {
	s.Decks = NewEntity[domain.Deck](s, deckPrefix)
}
