package ygopro

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/dueldisk/dueldisk-server/internal/domain"
)

// SearchByName runs a fuzzy name search and returns matching cards in API
// order. No match returns an empty slice, not an error.
func (c *Client) SearchByName(ctx context.Context, name string) ([]domain.PartialCard, error) {
	query := url.Values{}
	query.Set("fname", name)

	body, err := c.doRequest(ctx, "/cardinfo.php", query)
	if errors.Is(err, ErrNotFound) {
		return []domain.PartialCard{}, nil
	}
	if err != nil {
		return nil, wrapError("searchByName", name, err)
	}

	var resp rawResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("searchByName", name, fmt.Errorf("parse response: %w", err))
	}

	cards := make([]domain.PartialCard, 0, len(resp.Data))
	for i := range resp.Data {
		cards = append(cards, convertCard(&resp.Data[i]))
	}
	return cards, nil
}

// SearchByCode looks up a single card by its printed passcode (the numeric
// id on the card face). Returns ErrNotFound when the code matches nothing.
func (c *Client) SearchByCode(ctx context.Context, code string) (*domain.PartialCard, error) {
	if _, err := strconv.ParseInt(code, 10, 64); err != nil {
		return nil, wrapError("searchByCode", code, ErrBadRequest)
	}

	query := url.Values{}
	query.Set("id", code)

	body, err := c.doRequest(ctx, "/cardinfo.php", query)
	if err != nil {
		return nil, wrapError("searchByCode", code, err)
	}

	var resp rawResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("searchByCode", code, fmt.Errorf("parse response: %w", err))
	}
	if len(resp.Data) == 0 {
		return nil, wrapError("searchByCode", code, ErrNotFound)
	}

	card := convertCard(&resp.Data[0])
	return &card, nil
}

// convertCard maps a raw API card to the domain attribute set. Numeric
// attack/defense become strings; spells and traps leave them empty.
func convertCard(raw *rawCard) domain.PartialCard {
	p := domain.PartialCard{
		Name:        raw.Name,
		Kind:        domain.KindFromAPIType(raw.Type),
		Description: raw.Desc,
		Level:       raw.Level,
		Race:        raw.Race,
	}
	if raw.Attack != nil {
		p.Attack = strconv.Itoa(*raw.Attack)
	}
	if raw.Def != nil {
		p.Defense = strconv.Itoa(*raw.Def)
	}
	if len(raw.Images) > 0 {
		p.ImageRef = raw.Images[0].ImageURL
	}
	return p
}
