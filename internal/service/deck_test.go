package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dueldisk/dueldisk-server/internal/domain"
	apperrors "github.com/dueldisk/dueldisk-server/internal/errors"
)

func TestDeck_CreateDeck(t *testing.T) {
	_, decks, _, cleanup := setupServices(t)
	defer cleanup()

	ctx := context.Background()

	deck, err := decks.CreateDeck(ctx, "Burn", "win by effect damage", nil, nil, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, deck.ID)
	assert.Equal(t, "Burn", deck.Name)
	assert.Equal(t, "win by effect damage", deck.Notes)
	assert.Empty(t, deck.MainCards)
	assert.NotZero(t, deck.CreatedAt)

	_, err = decks.CreateDeck(ctx, "", "", nil, nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestDeck_CreateDeck_MaterializesSuppliedCards(t *testing.T) {
	collection, decks, _, cleanup := setupServices(t)
	defer cleanup()

	ctx := context.Background()

	owned, err := collection.AddOwnedCard(ctx, domain.PartialCard{Name: "Kuriboh"}, 3)
	require.NoError(t, err)

	deck, err := decks.CreateDeck(ctx, "Imported", "",
		[]domain.Card{
			*owned,
			{Name: "Winged Kuriboh", Kind: domain.KindMonster, Quantity: 9},
		},
		nil, nil,
	)
	require.NoError(t, err)
	require.Len(t, deck.MainCards, 2)

	// The known card is referenced, not duplicated.
	assert.Equal(t, owned.ID, deck.MainCards[0])
	kept, err := collection.GetCard(ctx, owned.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, kept.Quantity)

	// The unknown card entered the collection with quantity forced to 1.
	materialized, err := collection.GetCard(ctx, deck.MainCards[1])
	require.NoError(t, err)
	assert.Equal(t, "Winged Kuriboh", materialized.Name)
	assert.Equal(t, 1, materialized.Quantity)
	assert.True(t, materialized.IsProxy())
}

func TestDeck_CreateFromNames_ResolvesOwnedAndMaterializesProxies(t *testing.T) {
	collection, decks, _, cleanup := setupServices(t)
	defer cleanup()

	ctx := context.Background()

	owned, err := collection.AddOwnedCard(ctx, domain.PartialCard{Name: "Kuriboh"}, 1)
	require.NoError(t, err)

	deck, err := decks.CreateFromNames(ctx, "Starter",
		[]string{"Kuriboh", "Dark Magician", "Dark Magician"},
		[]string{"Stardust Dragon"},
	)
	require.NoError(t, err)

	require.Len(t, deck.MainCards, 3)
	require.Len(t, deck.ExtraCards, 1)

	// The owned name resolved to the existing record.
	assert.Equal(t, owned.ID, deck.MainCards[0])

	// The unowned name materialized exactly one proxy, referenced twice.
	assert.Equal(t, deck.MainCards[1], deck.MainCards[2])
	assert.NotEqual(t, owned.ID, deck.MainCards[1])

	proxy, err := collection.GetCard(ctx, deck.MainCards[1])
	require.NoError(t, err)
	assert.True(t, proxy.IsProxy())
	assert.Equal(t, 1, proxy.Quantity)
	assert.Equal(t, "Dark Magician", proxy.Name)
}

func TestDeck_CreateFromNames_ClampsAtCapacity(t *testing.T) {
	_, decks, _, cleanup := setupServices(t)
	defer cleanup()

	ctx := context.Background()

	names := make([]string, domain.ExtraCapacity+5)
	for i := range names {
		names[i] = "Stardust Dragon"
	}

	deck, err := decks.CreateFromNames(ctx, "Overstuffed", nil, names)
	require.NoError(t, err)
	assert.Len(t, deck.ExtraCards, domain.ExtraCapacity)
}

func TestDeck_AddCardToSection(t *testing.T) {
	collection, decks, _, cleanup := setupServices(t)
	defer cleanup()

	ctx := context.Background()

	card, err := collection.AddOwnedCard(ctx, domain.PartialCard{Name: "Mirror Force"}, 1)
	require.NoError(t, err)

	deck, err := decks.CreateDeck(ctx, "Traps", "", nil, nil, nil)
	require.NoError(t, err)

	updated, err := decks.AddCardToSection(ctx, deck.ID, domain.SectionSide, card.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{card.ID}, updated.SideCards)

	_, err = decks.AddCardToSection(ctx, "deck_missing", domain.SectionMain, card.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = decks.AddCardToSection(ctx, deck.ID, domain.SectionMain, "card_missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeck_AddCardToSection_SectionCapacity(t *testing.T) {
	collection, decks, _, cleanup := setupServices(t)
	defer cleanup()

	ctx := context.Background()

	// One owned card with enough copies to fill the side deck and then some.
	var card *domain.Card
	for range domain.SideCapacity + 1 {
		c, err := collection.AddOwnedCard(ctx, domain.PartialCard{Name: "Kuriboh"}, 1)
		require.NoError(t, err)
		card = c
	}

	deck, err := decks.CreateDeck(ctx, "Wall", "", nil, nil, nil)
	require.NoError(t, err)

	for range domain.SideCapacity {
		_, err = decks.AddCardToSection(ctx, deck.ID, domain.SectionSide, card.ID)
		require.NoError(t, err)
	}

	_, err = decks.AddCardToSection(ctx, deck.ID, domain.SectionSide, card.ID)
	assert.ErrorIs(t, err, apperrors.ErrCapacity)
}

func TestDeck_AddCardToSection_ProxySkipsQuantityCheck(t *testing.T) {
	collection, decks, _, cleanup := setupServices(t)
	defer cleanup()

	ctx := context.Background()

	deck, err := decks.CreateFromNames(ctx, "Wishlist", []string{"Dark Magician"}, nil)
	require.NoError(t, err)
	proxyID := deck.MainCards[0]

	// Proxies have quantity 1 but can still fill multiple slots.
	_, err = decks.AddCardToSection(ctx, deck.ID, domain.SectionMain, proxyID)
	require.NoError(t, err)
	updated, err := decks.AddCardToSection(ctx, deck.ID, domain.SectionMain, proxyID)
	require.NoError(t, err)
	assert.Len(t, updated.MainCards, 3)

	proxy, err := collection.GetCard(ctx, proxyID)
	require.NoError(t, err)
	require.True(t, proxy.IsProxy())
}

func TestDeck_RemoveCardAt_Positional(t *testing.T) {
	collection, decks, _, cleanup := setupServices(t)
	defer cleanup()

	ctx := context.Background()

	a, err := collection.AddOwnedCard(ctx, domain.PartialCard{Name: "Card A"}, 1)
	require.NoError(t, err)
	_, err = collection.AddOwnedCard(ctx, domain.PartialCard{Name: "Card A"}, 1)
	require.NoError(t, err)
	b, err := collection.AddOwnedCard(ctx, domain.PartialCard{Name: "Card B"}, 1)
	require.NoError(t, err)

	deck, err := decks.CreateDeck(ctx, "Positional", "", nil, nil, nil)
	require.NoError(t, err)
	for _, cardID := range []string{a.ID, b.ID, a.ID} {
		_, err = decks.AddCardToSection(ctx, deck.ID, domain.SectionMain, cardID)
		require.NoError(t, err)
	}

	// Removing index 2 takes the second copy of A, not the first.
	updated, err := decks.RemoveCardAt(ctx, deck.ID, domain.SectionMain, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, b.ID}, updated.MainCards)

	_, err = decks.RemoveCardAt(ctx, deck.ID, domain.SectionMain, 5)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = decks.RemoveCardAt(ctx, deck.ID, domain.SectionMain, -1)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// The failed removals left the deck untouched.
	got, err := decks.GetDeck(ctx, deck.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, b.ID}, got.MainCards)
}

func TestDeck_UpdateNotesAndRename(t *testing.T) {
	_, decks, _, cleanup := setupServices(t)
	defer cleanup()

	ctx := context.Background()

	deck, err := decks.CreateDeck(ctx, "Draft", "", nil, nil, nil)
	require.NoError(t, err)

	updated, err := decks.UpdateNotes(ctx, deck.ID, "side into traps vs aggro")
	require.NoError(t, err)
	assert.Equal(t, "side into traps vs aggro", updated.Notes)

	renamed, err := decks.RenameDeck(ctx, deck.ID, "Final")
	require.NoError(t, err)
	assert.Equal(t, "Final", renamed.Name)

	_, err = decks.RenameDeck(ctx, deck.ID, "  ")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestDeck_DeleteDeck_LeavesCards(t *testing.T) {
	collection, decks, _, cleanup := setupServices(t)
	defer cleanup()

	ctx := context.Background()

	card, err := collection.AddOwnedCard(ctx, domain.PartialCard{Name: "Sangan"}, 1)
	require.NoError(t, err)

	deck, err := decks.CreateDeck(ctx, "Doomed", "", nil, nil, nil)
	require.NoError(t, err)
	_, err = decks.AddCardToSection(ctx, deck.ID, domain.SectionMain, card.ID)
	require.NoError(t, err)

	require.NoError(t, decks.DeleteDeck(ctx, deck.ID))
	require.NoError(t, decks.DeleteDeck(ctx, deck.ID))

	_, err = decks.GetDeck(ctx, deck.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// Deck deletion never cascades into the collection.
	got, err := collection.GetCard(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Quantity)
}

func TestDeck_ResolveDeck_MarksMissingSlots(t *testing.T) {
	collection, decks, s, cleanup := setupServices(t)
	defer cleanup()

	ctx := context.Background()

	keep, err := collection.AddOwnedCard(ctx, domain.PartialCard{Name: "Keeper"}, 1)
	require.NoError(t, err)
	gone, err := collection.AddOwnedCard(ctx, domain.PartialCard{Name: "Goner"}, 1)
	require.NoError(t, err)

	deck, err := decks.CreateDeck(ctx, "Half Gone", "", nil, nil, nil)
	require.NoError(t, err)
	_, err = decks.AddCardToSection(ctx, deck.ID, domain.SectionMain, keep.ID)
	require.NoError(t, err)
	_, err = decks.AddCardToSection(ctx, deck.ID, domain.SectionMain, gone.ID)
	require.NoError(t, err)

	// Delete the second card directly in the store, bypassing the sweep,
	// so the deck is left with a dangling reference.
	require.NoError(t, s.DeleteCard(ctx, gone.ID))

	resolved, err := decks.ResolveDeck(ctx, deck.ID)
	require.NoError(t, err)
	require.Len(t, resolved.MainCards, 2)

	assert.False(t, resolved.MainCards[0].Missing())
	assert.Equal(t, "Keeper", resolved.MainCards[0].Card.Name)

	assert.True(t, resolved.MainCards[1].Missing())
	assert.Equal(t, gone.ID, resolved.MainCards[1].ID)
}
