package api

import (
	"encoding/json/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dueldisk/dueldisk-server/internal/http/response"
	"github.com/dueldisk/dueldisk-server/internal/store"
)

func TestBackupExportImportRoundTrip(t *testing.T) {
	server, cleanup := setupTestServer(t, nil)
	defer cleanup()

	cardID := addTestCard(t, server, "Kuriboh", 3)
	deckID := createTestDeck(t, server, "Travel Deck")

	w := doJSON(t, server, http.MethodGet, "/api/v1/backup/export", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.True(t, env.Success)

	raw, err := json.Marshal(env.Data)
	require.NoError(t, err)

	var snap store.Snapshot
	require.NoError(t, json.Unmarshal(raw, &snap))
	require.Len(t, snap.Cards, 1)
	require.Len(t, snap.Decks, 1)
	assert.Equal(t, cardID, snap.Cards[0].ID)
	assert.Equal(t, deckID, snap.Decks[0].ID)
	assert.NotZero(t, snap.ExportedAt)

	// Importing into a fresh server restores both records.
	fresh, freshCleanup := setupTestServer(t, nil)
	defer freshCleanup()

	w = doJSON(t, fresh, http.MethodPost, "/api/v1/backup/import", snap)
	require.Equal(t, http.StatusOK, w.Code)

	counts := decodeData(t, w)
	assert.Equal(t, float64(1), counts["cards"])
	assert.Equal(t, float64(1), counts["decks"])

	got := doJSON(t, fresh, http.MethodGet, "/api/v1/cards/"+cardID, nil)
	require.Equal(t, http.StatusOK, got.Code)
	assert.Equal(t, float64(3), decodeData(t, got)["quantity"])

	deck := doJSON(t, fresh, http.MethodGet, "/api/v1/decks/"+deckID, nil)
	assert.Equal(t, http.StatusOK, deck.Code)
}

func TestHandleImport_RejectsBadBody(t *testing.T) {
	server, cleanup := setupTestServer(t, nil)
	defer cleanup()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/backup/import", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
