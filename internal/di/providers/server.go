package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/dueldisk/dueldisk-server/internal/api"
	"github.com/dueldisk/dueldisk-server/internal/config"
	"github.com/dueldisk/dueldisk-server/internal/logger"
	"github.com/dueldisk/dueldisk-server/internal/service"
	"github.com/dueldisk/dueldisk-server/internal/state"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	snapshot := do.MustInvoke[*state.Snapshot](i)
	sourceHandle := do.MustInvoke[*CardSourceHandle](i)
	collectionService := do.MustInvoke[*service.CollectionService](i)
	deckService := do.MustInvoke[*service.DeckService](i)

	handler := api.NewServer(
		storeHandle.Store,
		collectionService,
		deckService,
		sourceHandle.Source,
		snapshot,
		log.Logger,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr)

	return &HTTPServerHandle{Server: srv}, nil
}
