package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dueldisk/dueldisk-server/internal/domain"
	"github.com/dueldisk/dueldisk-server/internal/http/response"
)

// CreateDeckRequest represents the request body for creating a deck. Cards
// unknown to the collection are materialized as new records.
type CreateDeckRequest struct {
	Name       string            `json:"name" validate:"required,min=1,max=255"`
	Notes      string            `json:"notes" validate:"max=8000"`
	MainCards  []DeckCardRequest `json:"mainCards" validate:"max=60,dive"`
	ExtraCards []DeckCardRequest `json:"extraCards" validate:"max=15,dive"`
	SideCards  []DeckCardRequest `json:"sideCards" validate:"max=15,dive"`
}

// DeckCardRequest is one card in a deck-creation request. An id referencing
// an existing record wins over the inline attributes; otherwise a new record
// is created from them. A card that does not say whether it is owned is
// owned, matching the record contract.
type DeckCardRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name" validate:"max=255"`
	Kind        string `json:"kind" validate:"omitempty,oneof=Monster Spell Trap Unknown"`
	Description string `json:"description" validate:"max=4000"`
	Attack      string `json:"attack" validate:"max=8"`
	Defense     string `json:"defense" validate:"max=8"`
	Level       int    `json:"level" validate:"gte=0,lte=13"`
	Race        string `json:"race" validate:"max=64"`
	ImageRef    string `json:"imageRef" validate:"omitempty,url"`
	Owned       *bool  `json:"owned"`
}

// toCard converts the request card to a domain card, applying the owned
// default exactly here so the service layer only ever sees explicit values.
func (r DeckCardRequest) toCard() domain.Card {
	return domain.Card{
		ID:          r.ID,
		Name:        r.Name,
		Kind:        domain.CardKind(r.Kind),
		Description: r.Description,
		Attack:      r.Attack,
		Defense:     r.Defense,
		Level:       r.Level,
		Race:        r.Race,
		ImageRef:    r.ImageRef,
		Owned:       r.Owned == nil || *r.Owned,
	}
}

func toCards(reqs []DeckCardRequest) []domain.Card {
	cards := make([]domain.Card, len(reqs))
	for i, r := range reqs {
		cards[i] = r.toCard()
	}
	return cards
}

// AddDeckCardRequest represents the request body for adding a card to a
// deck section.
type AddDeckCardRequest struct {
	Section string `json:"section" validate:"required,oneof=main extra side"`
	CardID  string `json:"cardId" validate:"required"`
}

// UpdateNotesRequest represents the request body for replacing deck notes.
type UpdateNotesRequest struct {
	Notes string `json:"notes" validate:"max=8000"`
}

// handleListDecks returns all decks from the in-memory snapshot.
func (s *Server) handleListDecks(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, s.snapshot.Decks(), s.logger)
}

// handleCreateDeck creates a deck, materializing unknown cards.
func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateDeckRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	deck, err := s.decks.CreateDeck(ctx, req.Name, req.Notes,
		toCards(req.MainCards), toCards(req.ExtraCards), toCards(req.SideCards))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	// Materialization may have added cards; reload rather than patch.
	s.refreshSnapshot(r)
	response.Created(w, deck, s.logger)
}

// handleGetDeck returns a deck with every slot resolved against the
// collection. Dangling references come back with a null card.
func (s *Server) handleGetDeck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	resolved, err := s.decks.ResolveDeck(ctx, id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, resolved, s.logger)
}

// handleDeleteDeck removes a deck. Cards stay in the collection.
func (s *Server) handleDeleteDeck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if err := s.decks.DeleteDeck(ctx, id); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	s.snapshot.DropDeck(id)
	response.NoContent(w)
}

// handleUpdateDeckNotes replaces the deck's notes.
func (s *Server) handleUpdateDeckNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var req UpdateNotesRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	deck, err := s.decks.UpdateNotes(ctx, id, req.Notes)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	s.snapshot.ApplyDeck(deck)
	response.Success(w, deck, s.logger)
}

// handleAddCardToDeck appends a card to a deck section.
func (s *Server) handleAddCardToDeck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var req AddDeckCardRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	section, _ := domain.ParseSection(req.Section)

	deck, err := s.decks.AddCardToSection(ctx, id, section, req.CardID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	s.snapshot.ApplyDeck(deck)
	response.Success(w, deck, s.logger)
}

// handleRemoveCardFromDeck removes the card at ?section=&index= from the
// deck. Removal is positional since sections can hold duplicate ids.
func (s *Server) handleRemoveCardFromDeck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	section, ok := domain.ParseSection(r.URL.Query().Get("section"))
	if !ok {
		response.BadRequest(w, "section must be one of main, extra, side", s.logger)
		return
	}

	index, err := strconv.Atoi(r.URL.Query().Get("index"))
	if err != nil {
		response.BadRequest(w, "index must be an integer", s.logger)
		return
	}

	deck, err := s.decks.RemoveCardAt(ctx, id, section, index)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	s.snapshot.ApplyDeck(deck)
	response.Success(w, deck, s.logger)
}
