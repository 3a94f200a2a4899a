package api

import (
	"encoding/base64"
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dueldisk/dueldisk-server/internal/cardsource"
	"github.com/dueldisk/dueldisk-server/internal/domain"
	"github.com/dueldisk/dueldisk-server/internal/http/response"
)

func TestHandleScan(t *testing.T) {
	source := &fakeSource{
		identifyOK: true,
		identified: &domain.PartialCard{
			Name:   "Kuriboh",
			Kind:   domain.KindMonster,
			Attack: "300",
		},
	}
	server, cleanup := setupTestServer(t, source)
	defer cleanup()

	image := base64.StdEncoding.EncodeToString([]byte("jpeg bytes"))

	w := doJSON(t, server, http.MethodPost, "/api/v1/scan", ScanRequest{
		Image:    "data:image/jpeg;base64," + image,
		MimeType: "image/jpeg",
	})
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	assert.Equal(t, "Kuriboh", data["name"])

	// Scanning identifies only; nothing is added to the collection.
	cards := doJSON(t, server, http.MethodGet, "/api/v1/cards", nil)
	var env response.Envelope
	require.NoError(t, json.Unmarshal(cards.Body.Bytes(), &env))
	list, ok := env.Data.([]any)
	require.True(t, ok)
	assert.Empty(t, list)
}

func TestHandleScan_RejectsBadBase64(t *testing.T) {
	server, cleanup := setupTestServer(t, &fakeSource{identifyOK: true})
	defer cleanup()

	w := doJSON(t, server, http.MethodPost, "/api/v1/scan", ScanRequest{
		Image: "not base64!!!",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleSearch_ByName(t *testing.T) {
	source := &fakeSource{
		searchResults: []domain.PartialCard{
			{Name: "Kuriboh"},
			{Name: "Winged Kuriboh"},
		},
	}
	server, cleanup := setupTestServer(t, source)
	defer cleanup()

	w := doJSON(t, server, http.MethodGet, "/api/v1/search?q=kuriboh", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	results, ok := env.Data.([]any)
	require.True(t, ok)
	assert.Len(t, results, 2)
}

func TestHandleSearch_ByCode(t *testing.T) {
	source := &fakeSource{
		codeResult: &domain.PartialCard{Name: "Pot of Greed", Kind: domain.KindSpell},
	}
	server, cleanup := setupTestServer(t, source)
	defer cleanup()

	w := doJSON(t, server, http.MethodGet, "/api/v1/search?code=55144522", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Pot of Greed", decodeData(t, w)["name"])
}

func TestHandleSearch_RequiresQuery(t *testing.T) {
	server, cleanup := setupTestServer(t, &fakeSource{})
	defer cleanup()

	w := doJSON(t, server, http.MethodGet, "/api/v1/search", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleWizardDeck_OwnedMode(t *testing.T) {
	source := &fakeSource{
		plan: &cardsource.DeckPlan{
			DeckName: "Kuriboh Swarm",
			MainDeck: []string{"Kuriboh", "Kuriboh"},
		},
	}
	server, cleanup := setupTestServer(t, source)
	defer cleanup()

	addTestCard(t, server, "Kuriboh", 2)

	w := doJSON(t, server, http.MethodPost, "/api/v1/wizard/deck", WizardDeckRequest{
		CoreCards: []string{"Kuriboh"},
		Mode:      "OWNED",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	data := decodeData(t, w)
	assert.Equal(t, "Kuriboh Swarm", data["name"])
	main, ok := data["mainCards"].([]any)
	require.True(t, ok)
	assert.Len(t, main, 2)

	// Owned mode hands the model only the collection's names.
	assert.Equal(t, cardsource.PlanModeOwned, source.gotMode)
	assert.Equal(t, []string{"Kuriboh"}, source.gotAvail)
}

func TestHandleWizardDeck_UnlimitedModeCreatesProxies(t *testing.T) {
	source := &fakeSource{
		plan: &cardsource.DeckPlan{
			DeckName:  "Blue-Eyes",
			MainDeck:  []string{"Blue-Eyes White Dragon"},
			ExtraDeck: []string{"Blue-Eyes Twin Burst Dragon"},
		},
	}
	server, cleanup := setupTestServer(t, source)
	defer cleanup()

	w := doJSON(t, server, http.MethodPost, "/api/v1/wizard/deck", WizardDeckRequest{
		CoreCards: []string{"Blue-Eyes White Dragon"},
		Mode:      "UNLIMITED",
		Name:      "Dragon Rush",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	data := decodeData(t, w)
	assert.Equal(t, "Dragon Rush", data["name"])
	assert.Nil(t, source.gotAvail)

	// Proxies for the unowned names are visible in the full card list but
	// not the owned view.
	all := doJSON(t, server, http.MethodGet, "/api/v1/cards", nil)
	var env response.Envelope
	require.NoError(t, json.Unmarshal(all.Body.Bytes(), &env))
	list, ok := env.Data.([]any)
	require.True(t, ok)
	assert.Len(t, list, 2)

	owned := doJSON(t, server, http.MethodGet, "/api/v1/cards?owned=true", nil)
	require.NoError(t, json.Unmarshal(owned.Body.Bytes(), &env))
	list, ok = env.Data.([]any)
	require.True(t, ok)
	assert.Empty(t, list)
}

func TestHandleWizardDeck_RejectsUnknownMode(t *testing.T) {
	server, cleanup := setupTestServer(t, &fakeSource{})
	defer cleanup()

	w := doJSON(t, server, http.MethodPost, "/api/v1/wizard/deck", WizardDeckRequest{
		CoreCards: []string{"Kuriboh"},
		Mode:      "TOURNAMENT",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
