package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/dueldisk/dueldisk-server/internal/http/response"
)

// decodeAndValidate reads the JSON body into req and runs struct validation.
// On failure it writes the error response and returns false.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.UnmarshalRead(r.Body, req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return false
	}
	if err := s.validator.Validate(req); err != nil {
		response.HandleError(w, err, s.logger)
		return false
	}
	return true
}

// sourceAvailable reports whether the external card source is configured,
// writing a 503 when it is not.
func (s *Server) sourceAvailable(w http.ResponseWriter) bool {
	if s.source == nil {
		response.Error(w, http.StatusServiceUnavailable,
			"External card source is not configured", s.logger)
		return false
	}
	return true
}

// refreshSnapshot reloads the in-memory mirror from the store. Used after
// operations whose full effect spans multiple records (deletes with sweeps,
// imports).
func (s *Server) refreshSnapshot(r *http.Request) {
	ctx := r.Context()

	cards, err := s.store.ListCards(ctx)
	if err != nil {
		s.logger.Error("Failed to reload cards into snapshot", "error", err)
		return
	}
	decks, err := s.store.ListDecks(ctx)
	if err != nil {
		s.logger.Error("Failed to reload decks into snapshot", "error", err)
		return
	}
	s.snapshot.Reload(cards, decks)
}
