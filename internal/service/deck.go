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
	"github.com/dueldisk/dueldisk-server/internal/normalize"
	"github.com/dueldisk/dueldisk-server/internal/store"
)

// DeckService orchestrates deck operations: building, positional edits, and
// resolving weak card references against the collection.
type DeckService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewDeckService creates a new deck service.
func NewDeckService(store *store.Store, logger *slog.Logger) *DeckService {
	return &DeckService{
		store:  store,
		logger: logger,
	}
}

// CreateDeck creates a deck from full card values, one slice per section,
// preserving input order. Cards already in the collection are referenced;
// anything else is materialized as a new record with quantity forced to 1.
// This is how AI-suggested and hand-entered cards enter the collection as
// proxies. Empty slices make an empty deck.
func (s *DeckService) CreateDeck(ctx context.Context, name, notes string, main, extra, side []domain.Card) (*domain.Deck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(name) == "" {
		return nil, apperrors.Validation("deck name is required")
	}

	deckID, err := id.Generate(id.PrefixDeck)
	if err != nil {
		return nil, fmt.Errorf("generate deck ID: %w", err)
	}

	deck := &domain.Deck{
		ID:        deckID,
		Name:      name,
		MainCards: []string{},
		Notes:     notes,
		CreatedAt: time.Now().UnixMilli(),
	}

	for _, sec := range []struct {
		section domain.Section
		cards   []domain.Card
	}{
		{domain.SectionMain, main},
		{domain.SectionExtra, extra},
		{domain.SectionSide, side},
	} {
		for i := range sec.cards {
			cardID, err := s.materializeCard(ctx, &sec.cards[i])
			if err != nil {
				return nil, err
			}
			deck.AppendCard(sec.section, cardID)
		}
	}

	if err := s.store.PutDeck(ctx, deck); err != nil {
		return nil, fmt.Errorf("create deck: %w", err)
	}

	s.logger.Info("deck created",
		"deck_id", deckID,
		"name", name,
		"main", len(deck.MainCards),
		"extra", len(deck.ExtraCards),
		"side", len(deck.SideCards),
	)

	return deck, nil
}

// materializeCard returns the id the deck should reference for the supplied
// card, creating a collection record when none exists. Materialized records
// get quantity 1 regardless of what the caller sent.
func (s *DeckService) materializeCard(ctx context.Context, card *domain.Card) (string, error) {
	if card.ID != "" {
		_, err := s.store.GetCard(ctx, card.ID)
		if err == nil {
			return card.ID, nil
		}
		if !apperrors.Is(err, store.ErrCardNotFound) {
			return "", fmt.Errorf("get card: %w", err)
		}
	}

	if strings.TrimSpace(card.Name) == "" {
		return "", apperrors.Validation("card name is required")
	}

	if card.ID == "" {
		cardID, err := id.Generate(id.PrefixCard)
		if err != nil {
			return "", fmt.Errorf("generate card ID: %w", err)
		}
		card.ID = cardID
	}
	if card.Kind == "" {
		card.Kind = domain.KindUnknown
	}
	if card.AcquiredAt == 0 {
		card.AcquiredAt = time.Now().UnixMilli()
	}
	card.Quantity = 1

	if err := s.store.PutCard(ctx, card); err != nil {
		return "", fmt.Errorf("materialize card: %w", err)
	}

	s.logger.Info("card materialized for deck",
		"card_id", card.ID,
		"name", card.Name,
		"owned", card.Owned,
	)

	return card.ID, nil
}

// CreateFromNames builds a deck from card names, resolving each against the
// owned collection by folded name. Names with no owned match are materialized
// as proxy records (not owned, quantity 1) so the deck has a concrete card to
// reference. Sections are clamped at their capacity; overflow names are
// dropped with a warning rather than failing the whole build, since plans
// from the deck wizard can run long.
func (s *DeckService) CreateFromNames(ctx context.Context, name string, mainNames, extraNames []string) (*domain.Deck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(name) == "" {
		return nil, apperrors.Validation("deck name is required")
	}

	deckID, err := id.Generate(id.PrefixDeck)
	if err != nil {
		return nil, fmt.Errorf("generate deck ID: %w", err)
	}

	deck := &domain.Deck{
		ID:        deckID,
		Name:      name,
		MainCards: []string{},
		CreatedAt: time.Now().UnixMilli(),
	}

	// Same name resolves to the same id within one build, so a plan that
	// lists "Kuriboh" three times produces one proxy with three slots.
	resolved := map[string]string{}

	fill := func(section domain.Section, names []string) error {
		for _, cardName := range names {
			if strings.TrimSpace(cardName) == "" {
				continue
			}
			if len(deck.Cards(section)) >= section.Capacity() {
				s.logger.Warn("deck section full, dropping card",
					"deck_id", deckID,
					"section", section,
					"name", cardName,
				)
				continue
			}

			cardID, err := s.resolveByName(ctx, cardName, resolved)
			if err != nil {
				return err
			}
			deck.AppendCard(section, cardID)
		}
		return nil
	}

	if err := fill(domain.SectionMain, mainNames); err != nil {
		return nil, err
	}
	if err := fill(domain.SectionExtra, extraNames); err != nil {
		return nil, err
	}

	if err := s.store.PutDeck(ctx, deck); err != nil {
		return nil, fmt.Errorf("create deck: %w", err)
	}

	s.logger.Info("deck built from names",
		"deck_id", deckID,
		"name", name,
		"main", len(deck.MainCards),
		"extra", len(deck.ExtraCards),
	)

	return deck, nil
}

// resolveByName maps a card name to an id, preferring an owned card and
// falling back to a freshly materialized proxy.
func (s *DeckService) resolveByName(ctx context.Context, name string, resolved map[string]string) (string, error) {
	key := normalize.CardName(name)
	if cardID, ok := resolved[key]; ok {
		return cardID, nil
	}

	card, err := s.store.FindOwnedCardByName(ctx, name)
	switch {
	case err == nil:
		resolved[key] = card.ID
		return card.ID, nil

	case apperrors.Is(err, store.ErrCardNotFound):
		cardID, err := id.Generate(id.PrefixCard)
		if err != nil {
			return "", fmt.Errorf("generate card ID: %w", err)
		}

		proxy := domain.NewProxyCard(cardID, domain.PartialCard{Name: name}, time.Now())
		if err := s.store.PutCard(ctx, &proxy); err != nil {
			return "", fmt.Errorf("materialize proxy card: %w", err)
		}

		s.logger.Info("proxy card materialized",
			"card_id", cardID,
			"name", name,
		)
		resolved[key] = cardID
		return cardID, nil

	default:
		return "", fmt.Errorf("find owned card: %w", err)
	}
}

// AddCardToSection appends a card to the named section of a deck.
//
// Two limits apply, in order. An owned card cannot appear in the deck more
// times than copies owned, counting occurrences across all three sections.
// Then the section itself has a hard capacity. Proxy cards skip the quantity
// check since there is nothing owned to run out of.
func (s *DeckService) AddCardToSection(ctx context.Context, deckID string, section domain.Section, cardID string) (*domain.Deck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	deck, err := s.getDeck(ctx, deckID)
	if err != nil {
		return nil, err
	}

	card, err := s.store.GetCard(ctx, cardID)
	if apperrors.Is(err, store.ErrCardNotFound) {
		return nil, apperrors.NotFoundf("card %s not found", cardID)
	}
	if err != nil {
		return nil, fmt.Errorf("get card: %w", err)
	}

	if card.Owned && deck.CountOccurrences(cardID) >= card.Quantity {
		return nil, apperrors.Capacityf("all %d owned copies of %q are already in the deck",
			card.Quantity, card.Name)
	}

	if len(deck.Cards(section)) >= section.Capacity() {
		return nil, apperrors.Capacityf("%s deck is full (%d cards)", section, section.Capacity())
	}

	deck.AppendCard(section, cardID)

	if err := s.store.PutDeck(ctx, deck); err != nil {
		return nil, fmt.Errorf("update deck: %w", err)
	}

	s.logger.Info("card added to deck",
		"deck_id", deckID,
		"card_id", cardID,
		"section", section,
	)

	return deck, nil
}

// RemoveCardAt removes the card at index from the named section. Removal is
// positional because sections may hold duplicate ids; removing "the second
// Kuriboh" must not touch the first. An out-of-range index is a validation
// error and leaves the deck untouched.
func (s *DeckService) RemoveCardAt(ctx context.Context, deckID string, section domain.Section, index int) (*domain.Deck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	deck, err := s.getDeck(ctx, deckID)
	if err != nil {
		return nil, err
	}

	removed, ok := deck.RemoveCardAt(section, index)
	if !ok {
		return nil, apperrors.Validationf("index %d out of range for %s deck of %d cards",
			index, section, len(deck.Cards(section)))
	}

	if err := s.store.PutDeck(ctx, deck); err != nil {
		return nil, fmt.Errorf("update deck: %w", err)
	}

	s.logger.Info("card removed from deck",
		"deck_id", deckID,
		"card_id", removed,
		"section", section,
		"index", index,
	)

	return deck, nil
}

// UpdateNotes replaces a deck's notes.
func (s *DeckService) UpdateNotes(ctx context.Context, deckID, notes string) (*domain.Deck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	deck, err := s.getDeck(ctx, deckID)
	if err != nil {
		return nil, err
	}

	deck.Notes = notes
	if err := s.store.PutDeck(ctx, deck); err != nil {
		return nil, fmt.Errorf("update deck: %w", err)
	}

	return deck, nil
}

// RenameDeck replaces a deck's name.
func (s *DeckService) RenameDeck(ctx context.Context, deckID, name string) (*domain.Deck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(name) == "" {
		return nil, apperrors.Validation("deck name is required")
	}

	deck, err := s.getDeck(ctx, deckID)
	if err != nil {
		return nil, err
	}

	deck.Name = name
	if err := s.store.PutDeck(ctx, deck); err != nil {
		return nil, fmt.Errorf("update deck: %w", err)
	}

	return deck, nil
}

// DeleteDeck removes a deck. Card records the deck referenced are untouched;
// deck deletion never cascades into the collection. Deleting an absent deck
// is a no-op.
func (s *DeckService) DeleteDeck(ctx context.Context, deckID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.store.DeleteDeck(ctx, deckID); err != nil {
		return fmt.Errorf("delete deck: %w", err)
	}

	s.logger.Info("deck deleted", "deck_id", deckID)
	return nil
}

// GetDeck retrieves a deck by ID.
func (s *DeckService) GetDeck(ctx context.Context, deckID string) (*domain.Deck, error) {
	return s.getDeck(ctx, deckID)
}

// ListDecks returns every deck.
func (s *DeckService) ListDecks(ctx context.Context) ([]*domain.Deck, error) {
	return s.store.ListDecks(ctx)
}

// ResolveDeck loads a deck and resolves every slot against the collection.
// Slots whose card was deleted come back with a nil card and render as
// missing on the client instead of failing the whole deck view.
func (s *DeckService) ResolveDeck(ctx context.Context, deckID string) (*domain.ResolvedDeck, error) {
	deck, err := s.getDeck(ctx, deckID)
	if err != nil {
		return nil, err
	}

	lookup := map[string]*domain.Card{}
	for _, ids := range [][]string{deck.MainCards, deck.ExtraCards, deck.SideCards} {
		for _, cardID := range ids {
			if _, seen := lookup[cardID]; seen {
				continue
			}
			card, err := s.store.GetCard(ctx, cardID)
			if apperrors.Is(err, store.ErrCardNotFound) {
				lookup[cardID] = nil
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("resolve card %s: %w", cardID, err)
			}
			lookup[cardID] = card
		}
	}

	return &domain.ResolvedDeck{
		Deck:       *deck,
		MainCards:  domain.ResolveSection(deck.MainCards, lookup),
		ExtraCards: domain.ResolveSection(deck.ExtraCards, lookup),
		SideCards:  domain.ResolveSection(deck.SideCards, lookup),
	}, nil
}

func (s *DeckService) getDeck(ctx context.Context, deckID string) (*domain.Deck, error) {
	deck, err := s.store.GetDeck(ctx, deckID)
	if apperrors.Is(err, store.ErrDeckNotFound) {
		return nil, apperrors.NotFoundf("deck %s not found", deckID)
	}
	if err != nil {
		return nil, err
	}
	return deck, nil
}
