package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dueldisk/dueldisk-server/internal/domain"
	"github.com/dueldisk/dueldisk-server/internal/http/response"
)

// AddCardRequest represents the request body for adding an owned card.
type AddCardRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Kind        string `json:"kind" validate:"omitempty,oneof=Monster Spell Trap Unknown"`
	Description string `json:"description" validate:"max=4000"`
	Attack      string `json:"attack" validate:"max=8"`
	Defense     string `json:"defense" validate:"max=8"`
	Level       int    `json:"level" validate:"gte=0,lte=13"`
	Race        string `json:"race" validate:"max=64"`
	ImageRef    string `json:"imageRef" validate:"omitempty,url"`
	Quantity    int    `json:"quantity" validate:"gte=0"`
}

// handleListCards returns the card collection from the in-memory snapshot.
// ?owned=true filters out proxy records.
func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("owned") == "true" {
		response.Success(w, s.snapshot.OwnedCards(), s.logger)
		return
	}
	response.Success(w, s.snapshot.Cards(), s.logger)
}

// handleAddCard adds copies of a card to the owned collection.
func (s *Server) handleAddCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AddCardRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	card, err := s.collection.AddOwnedCard(ctx, domain.PartialCard{
		Name:        req.Name,
		Kind:        domain.CardKind(req.Kind),
		Description: req.Description,
		Attack:      req.Attack,
		Defense:     req.Defense,
		Level:       req.Level,
		Race:        req.Race,
		ImageRef:    req.ImageRef,
	}, req.Quantity)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	s.snapshot.ApplyCard(card)
	response.Created(w, card, s.logger)
}

// handleGetCard returns a single card record.
func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	card, err := s.collection.GetCard(ctx, id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, card, s.logger)
}

// handleRemoveCopies removes copies of a card. ?count=n defaults to 1;
// removing the last copy deletes the record and sweeps the decks, so the
// snapshot is reloaded rather than patched.
func (s *Server) handleRemoveCopies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	count := 1
	if countStr := r.URL.Query().Get("count"); countStr != "" {
		parsed, err := strconv.Atoi(countStr)
		if err != nil {
			response.BadRequest(w, "count must be an integer", s.logger)
			return
		}
		count = parsed
	}

	if err := s.collection.RemoveCopies(ctx, id, count); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	s.refreshSnapshot(r)
	response.NoContent(w)
}
