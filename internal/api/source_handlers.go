package api

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/dueldisk/dueldisk-server/internal/cardsource"
	"github.com/dueldisk/dueldisk-server/internal/http/response"
)

// ScanRequest represents the request body for identifying a card from a
// photo. Image is base64, with or without a data URL prefix.
type ScanRequest struct {
	Image    string `json:"image" validate:"required"`
	MimeType string `json:"mimeType" validate:"omitempty,max=64"`
}

// WizardDeckRequest represents the request body for AI deck generation.
type WizardDeckRequest struct {
	CoreCards []string `json:"coreCards" validate:"required,min=1,max=10,dive,required"`
	Mode      string   `json:"mode" validate:"required,oneof=OWNED UNLIMITED"`
	Name      string   `json:"name" validate:"max=255"`
}

// handleScan identifies a card from a photo. The result is returned for the
// user to confirm; nothing is written to the collection.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !s.sourceAvailable(w) {
		return
	}

	var req ScanRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	// Browsers send data URLs; keep only the payload.
	payload := req.Image
	if _, after, found := strings.Cut(payload, ","); found {
		payload = after
	}

	image, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		response.BadRequest(w, "image must be base64 encoded", s.logger)
		return
	}

	card, err := s.source.IdentifyCard(ctx, image, req.MimeType)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, card, s.logger)
}

// handleSearch queries the external card database by ?q= (fuzzy name) or
// ?code= (printed passcode).
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !s.sourceAvailable(w) {
		return
	}

	if code := r.URL.Query().Get("code"); code != "" {
		card, err := s.source.SearchByCode(ctx, code)
		if err != nil {
			response.HandleError(w, err, s.logger)
			return
		}
		response.Success(w, card, s.logger)
		return
	}

	q := r.URL.Query().Get("q")
	if q == "" {
		response.BadRequest(w, "q or code query parameter is required", s.logger)
		return
	}

	cards, err := s.source.SearchByName(ctx, q)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, cards, s.logger)
}

// handleWizardDeck generates a deck plan around the requested core cards and
// materializes it as a real deck, creating proxies for unowned names.
func (s *Server) handleWizardDeck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !s.sourceAvailable(w) {
		return
	}

	var req WizardDeckRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	mode, _ := cardsource.ParsePlanMode(req.Mode)

	var available []string
	if mode == cardsource.PlanModeOwned {
		owned, err := s.collection.ListOwned(ctx)
		if err != nil {
			response.HandleError(w, err, s.logger)
			return
		}
		available = make([]string, 0, len(owned))
		for _, c := range owned {
			available = append(available, c.Name)
		}
	}

	plan, err := s.source.GenerateDeckPlan(ctx, req.CoreCards, mode, available)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	name := req.Name
	if name == "" {
		name = plan.DeckName
	}

	deck, err := s.decks.CreateFromNames(ctx, name, plan.MainDeck, plan.ExtraDeck)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	// Proxy materialization may have added cards.
	s.refreshSnapshot(r)
	response.Created(w, deck, s.logger)
}
