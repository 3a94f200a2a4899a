package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dueldisk/dueldisk-server/internal/domain"
	apperrors "github.com/dueldisk/dueldisk-server/internal/errors"
	"github.com/dueldisk/dueldisk-server/internal/store"
)

func TestStore_CardRoundTrip(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	card := domain.NewCard("card_abc123", domain.PartialCard{
		Name:        "Dark Magician",
		Kind:        domain.KindMonster,
		Description: "The ultimate wizard in terms of attack and defense.",
		Attack:      "2500",
		Defense:     "2100",
		Level:       7,
		Race:        "Spellcaster",
		ImageRef:    "https://images.example.com/46986414.jpg",
	}, time.Now())
	card.Quantity = 3

	require.NoError(t, s.PutCard(ctx, &card))

	got, err := s.GetCard(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, &card, got)
}

func TestStore_GetCard_NotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := s.GetCard(context.Background(), "card_missing")
	assert.ErrorIs(t, err, store.ErrCardNotFound)
}

func TestStore_FindOwnedCardByName_CaseInsensitive(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	card := domain.NewCard("card_km1", domain.PartialCard{Name: "Kuriboh"}, time.Now())
	require.NoError(t, s.PutCard(ctx, &card))

	for _, query := range []string{"Kuriboh", "kuriboh", "KURIBOH", "  kuriboh  "} {
		got, err := s.FindOwnedCardByName(ctx, query)
		require.NoError(t, err, "query %q", query)
		assert.Equal(t, "card_km1", got.ID)
	}
}

func TestStore_FindOwnedCardByName_SkipsProxies(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	proxy := domain.NewProxyCard("card_px1", domain.PartialCard{Name: "Blue-Eyes White Dragon"}, time.Now())
	require.NoError(t, s.PutCard(ctx, &proxy))

	// Proxy records are never indexed, so the lookup misses.
	_, err := s.FindOwnedCardByName(ctx, "Blue-Eyes White Dragon")
	assert.ErrorIs(t, err, store.ErrCardNotFound)

	// An owned record with the same name is found alongside the proxy.
	owned := domain.NewCard("card_own1", domain.PartialCard{Name: "Blue-Eyes White Dragon"}, time.Now())
	require.NoError(t, s.PutCard(ctx, &owned))

	got, err := s.FindOwnedCardByName(ctx, "blue-eyes white dragon")
	require.NoError(t, err)
	assert.Equal(t, "card_own1", got.ID)
}

func TestStore_DeleteCard_RemovesIndexEntry(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	card := domain.NewCard("card_del1", domain.PartialCard{Name: "Pot of Greed"}, time.Now())
	require.NoError(t, s.PutCard(ctx, &card))
	require.NoError(t, s.DeleteCard(ctx, card.ID))

	_, err := s.GetCard(ctx, card.ID)
	assert.ErrorIs(t, err, store.ErrCardNotFound)

	_, err = s.FindOwnedCardByName(ctx, "Pot of Greed")
	assert.ErrorIs(t, err, store.ErrCardNotFound)
}

func TestStore_ListCards_IncludesProxies(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	owned := domain.NewCard("card_a", domain.PartialCard{Name: "Mirror Force"}, time.Now())
	proxy := domain.NewProxyCard("card_b", domain.PartialCard{Name: "Raigeki"}, time.Now())
	require.NoError(t, s.PutCard(ctx, &owned))
	require.NoError(t, s.PutCard(ctx, &proxy))

	cards, err := s.ListCards(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 2)

	ids := map[string]bool{}
	for _, c := range cards {
		ids[c.ID] = true
	}
	assert.True(t, ids["card_a"])
	assert.True(t, ids["card_b"])
}

func TestStore_ClosedStoreReportsUnavailable(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	card := domain.NewCard("card_z1", domain.PartialCard{Name: "Sangan"}, time.Now())
	require.NoError(t, s.PutCard(ctx, &card))

	require.NoError(t, s.Close())

	_, err := s.GetCard(ctx, "card_z1")
	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)

	err = s.PutCard(ctx, &card)
	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)

	err = s.DeleteCard(ctx, "card_z1")
	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)

	_, err = s.ListCards(ctx)
	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)

	_, err = s.FindOwnedCardByName(ctx, "Sangan")
	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
}
