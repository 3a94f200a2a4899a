// Package state holds the in-memory mirror of the collection and decks.
// The durable store is the source of truth; the snapshot exists so list
// endpoints serve from memory without iterating the store on every request.
package state

import (
	"cmp"
	"slices"
	"sync"

	"github.com/dueldisk/dueldisk-server/internal/domain"
)

// Snapshot is the mutex-guarded mirror. It is updated only from repository
// return values, never speculatively, so it can not drift ahead of the
// store. Readers get copies.
type Snapshot struct {
	mu    sync.RWMutex
	cards map[string]domain.Card
	decks map[string]domain.Deck
}

// New creates an empty snapshot.
func New() *Snapshot {
	return &Snapshot{
		cards: make(map[string]domain.Card),
		decks: make(map[string]domain.Deck),
	}
}

// cloneDeck deep-copies the section slices so the mirror and its readers
// never share backing arrays with each other or with service-held values.
// Cards are all scalar fields and copy by value.
func cloneDeck(d domain.Deck) domain.Deck {
	d.MainCards = slices.Clone(d.MainCards)
	d.ExtraCards = slices.Clone(d.ExtraCards)
	d.SideCards = slices.Clone(d.SideCards)
	return d
}

// Reload replaces the whole mirror, typically at startup or after an import.
func (s *Snapshot) Reload(cards []*domain.Card, decks []*domain.Deck) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cards = make(map[string]domain.Card, len(cards))
	for _, c := range cards {
		s.cards[c.ID] = *c
	}
	s.decks = make(map[string]domain.Deck, len(decks))
	for _, d := range decks {
		s.decks[d.ID] = cloneDeck(*d)
	}
}

// ApplyCard records a created or updated card.
func (s *Snapshot) ApplyCard(card *domain.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards[card.ID] = *card
}

// DropCard removes a card from the mirror.
func (s *Snapshot) DropCard(cardID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cards, cardID)
}

// ApplyDeck records a created or updated deck.
func (s *Snapshot) ApplyDeck(deck *domain.Deck) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decks[deck.ID] = cloneDeck(*deck)
}

// DropDeck removes a deck from the mirror.
func (s *Snapshot) DropDeck(deckID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.decks, deckID)
}

// Cards returns a copy of every card, newest acquisition first. Ties break
// by id so the order is stable.
func (s *Snapshot) Cards() []domain.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cards := make([]domain.Card, 0, len(s.cards))
	for _, c := range s.cards {
		cards = append(cards, c)
	}
	slices.SortFunc(cards, func(a, b domain.Card) int {
		if c := cmp.Compare(b.AcquiredAt, a.AcquiredAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return cards
}

// OwnedCards returns a copy of every owned card, newest acquisition first.
func (s *Snapshot) OwnedCards() []domain.Card {
	cards := s.Cards()
	owned := cards[:0:0]
	for _, c := range cards {
		if !c.IsProxy() {
			owned = append(owned, c)
		}
	}
	return owned
}

// Decks returns a copy of every deck, newest first, ties broken by id.
func (s *Snapshot) Decks() []domain.Deck {
	s.mu.RLock()
	defer s.mu.RUnlock()

	decks := make([]domain.Deck, 0, len(s.decks))
	for _, d := range s.decks {
		decks = append(decks, cloneDeck(d))
	}
	slices.SortFunc(decks, func(a, b domain.Deck) int {
		if c := cmp.Compare(b.CreatedAt, a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return decks
}
