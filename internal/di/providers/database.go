package providers

import (
	"context"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/dueldisk/dueldisk-server/internal/config"
	"github.com/dueldisk/dueldisk-server/internal/logger"
	"github.com/dueldisk/dueldisk-server/internal/state"
	"github.com/dueldisk/dueldisk-server/internal/store"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the database store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := filepath.Join(cfg.Store.DataPath, "db")
	db, err := store.New(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}

// ProvideSnapshot provides the in-memory read mirror, preloaded from the
// store so list endpoints are warm from the first request.
func ProvideSnapshot(i do.Injector) (*state.Snapshot, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	ctx := context.Background()

	cards, err := storeHandle.ListCards(ctx)
	if err != nil {
		return nil, err
	}
	decks, err := storeHandle.ListDecks(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := state.New()
	snapshot.Reload(cards, decks)

	log.Info("Snapshot loaded",
		"cards", len(cards),
		"decks", len(decks),
	)

	return snapshot, nil
}
