// Package di provides dependency injection configuration for the DuelDisk server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/dueldisk/dueldisk-server/internal/config"
	"github.com/dueldisk/dueldisk-server/internal/di/providers"
	"github.com/dueldisk/dueldisk-server/internal/logger"
	"github.com/dueldisk/dueldisk-server/internal/service"
	"github.com/dueldisk/dueldisk-server/internal/state"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Database layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideSnapshot)

	// External card source
	do.Provide(injector, providers.ProvideCardSource)

	// Business services
	do.Provide(injector, providers.ProvideDeckService)
	do.Provide(injector, providers.ProvideCascadeService)
	do.Provide(injector, providers.ProvideCollectionService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle
// management. This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*state.Snapshot](injector)
	_ = do.MustInvoke[*providers.CardSourceHandle](injector)
	_ = do.MustInvoke[*service.DeckService](injector)
	_ = do.MustInvoke[*service.CascadeService](injector)
	_ = do.MustInvoke[*service.CollectionService](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
