package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dueldisk/dueldisk-server/internal/domain"
	apperrors "github.com/dueldisk/dueldisk-server/internal/errors"
	"github.com/dueldisk/dueldisk-server/internal/service"
)

// fakeDeckStore serves decks from memory and can be made to fail writes for
// selected deck ids.
type fakeDeckStore struct {
	decks   []*domain.Deck
	failPut map[string]error
	puts    []string
}

func (f *fakeDeckStore) ListDecks(_ context.Context) ([]*domain.Deck, error) {
	return f.decks, nil
}

func (f *fakeDeckStore) PutDeck(_ context.Context, deck *domain.Deck) error {
	if err := f.failPut[deck.ID]; err != nil {
		return err
	}
	f.puts = append(f.puts, deck.ID)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCascade_SweepsOnlyReferencingDecks(t *testing.T) {
	decks := &fakeDeckStore{
		decks: []*domain.Deck{
			{ID: "deck_1", MainCards: []string{"card_x", "card_y", "card_x"}},
			{ID: "deck_2", MainCards: []string{"card_y"}},
			{ID: "deck_3", SideCards: []string{"card_x"}},
		},
	}
	cascade := service.NewCascadeService(decks, testLogger())

	err := cascade.OnCardDeleted(context.Background(), "card_x")
	require.NoError(t, err)

	// Only the two referencing decks were rewritten.
	assert.Equal(t, []string{"deck_1", "deck_3"}, decks.puts)
	assert.Equal(t, []string{"card_y"}, decks.decks[0].MainCards)
	assert.Equal(t, []string{"card_y"}, decks.decks[1].MainCards)
	assert.Empty(t, decks.decks[2].SideCards)
}

func TestCascade_NoReferences_NoWrites(t *testing.T) {
	decks := &fakeDeckStore{
		decks: []*domain.Deck{
			{ID: "deck_1", MainCards: []string{"card_y"}},
		},
	}
	cascade := service.NewCascadeService(decks, testLogger())

	require.NoError(t, cascade.OnCardDeleted(context.Background(), "card_x"))
	assert.Empty(t, decks.puts)
}

func TestCascade_PartialFailure_KeepsSweeping(t *testing.T) {
	writeErr := errors.New("disk full")
	decks := &fakeDeckStore{
		decks: []*domain.Deck{
			{ID: "deck_1", MainCards: []string{"card_x"}},
			{ID: "deck_2", MainCards: []string{"card_x"}},
			{ID: "deck_3", MainCards: []string{"card_x"}},
		},
		failPut: map[string]error{"deck_2": writeErr},
	}
	cascade := service.NewCascadeService(decks, testLogger())

	err := cascade.OnCardDeleted(context.Background(), "card_x")
	require.Error(t, err)

	// The failure is typed, carries the underlying cause, and did not stop
	// the sweep: decks 1 and 3 were still written.
	assert.ErrorIs(t, err, apperrors.ErrPartialSweep)
	assert.ErrorIs(t, err, writeErr)
	assert.Equal(t, []string{"deck_1", "deck_3"}, decks.puts)
}
