package ygopro_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dueldisk/dueldisk-server/internal/cardsource/ygopro"
	"github.com/dueldisk/dueldisk-server/internal/domain"
)

func testClient(t *testing.T, handler http.HandlerFunc) *ygopro.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := ygopro.New(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		ygopro.WithBaseURL(srv.URL),
		ygopro.WithRate(1000, 1000),
	)
	t.Cleanup(c.Close)
	return c
}

const kuribohJSON = `{"data":[{
	"id": 40640057,
	"name": "Kuriboh",
	"type": "Effect Monster",
	"desc": "During your opponent's turn, at damage calculation: You can discard this card; you take no battle damage from that battle.",
	"atk": 300,
	"def": 200,
	"level": 1,
	"race": "Fiend",
	"card_images": [{"image_url": "https://images.ygoprodeck.com/images/cards/40640057.jpg", "image_url_small": "https://images.ygoprodeck.com/images/cards_small/40640057.jpg"}]
}]}`

const potOfGreedJSON = `{"data":[{
	"id": 55144522,
	"name": "Pot of Greed",
	"type": "Spell Card",
	"desc": "Draw 2 cards.",
	"race": "Normal",
	"card_images": [{"image_url": "https://images.ygoprodeck.com/images/cards/55144522.jpg"}]
}]}`

func TestSearchByName(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cardinfo.php", r.URL.Path)
		assert.Equal(t, "kuriboh", r.URL.Query().Get("fname"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, kuribohJSON)
	})

	cards, err := client.SearchByName(context.Background(), "kuriboh")
	require.NoError(t, err)
	require.Len(t, cards, 1)

	card := cards[0]
	assert.Equal(t, "Kuriboh", card.Name)
	assert.Equal(t, domain.KindMonster, card.Kind)
	assert.Equal(t, "300", card.Attack)
	assert.Equal(t, "200", card.Defense)
	assert.Equal(t, 1, card.Level)
	assert.Equal(t, "Fiend", card.Race)
	assert.Equal(t, "https://images.ygoprodeck.com/images/cards/40640057.jpg", card.ImageRef)
}

func TestSearchByName_NoMatchIsEmpty(t *testing.T) {
	// The API reports "no match" as a 400 with an error body.
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"No card matching your query was found in the database."}`)
	})

	cards, err := client.SearchByName(context.Background(), "xyzzy")
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestSearchByName_ServerError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.SearchByName(context.Background(), "kuriboh")
	assert.ErrorIs(t, err, ygopro.ErrServer)
}

func TestSearchByCode(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "55144522", r.URL.Query().Get("id"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, potOfGreedJSON)
	})

	card, err := client.SearchByCode(context.Background(), "55144522")
	require.NoError(t, err)

	assert.Equal(t, "Pot of Greed", card.Name)
	assert.Equal(t, domain.KindSpell, card.Kind)
	// Spells carry no attack or defense.
	assert.Empty(t, card.Attack)
	assert.Empty(t, card.Defense)
}

func TestSearchByCode_NotFound(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"No card matching your query was found in the database."}`)
	})

	_, err := client.SearchByCode(context.Background(), "12345678")
	assert.ErrorIs(t, err, ygopro.ErrNotFound)
}

func TestSearchByCode_RejectsNonNumeric(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request should not reach the server")
	})

	_, err := client.SearchByCode(context.Background(), "kuriboh")
	assert.ErrorIs(t, err, ygopro.ErrBadRequest)
}
