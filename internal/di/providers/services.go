package providers

import (
	"github.com/samber/do/v2"

	"github.com/dueldisk/dueldisk-server/internal/logger"
	"github.com/dueldisk/dueldisk-server/internal/service"
)

// ProvideDeckService provides the deck repository service.
func ProvideDeckService(i do.Injector) (*service.DeckService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewDeckService(storeHandle.Store, log.Logger), nil
}

// ProvideCascadeService provides the deck sweep coordinator.
func ProvideCascadeService(i do.Injector) (*service.CascadeService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCascadeService(storeHandle.Store, log.Logger), nil
}

// ProvideCollectionService provides the card collection service.
func ProvideCollectionService(i do.Injector) (*service.CollectionService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	cascade := do.MustInvoke[*service.CascadeService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCollectionService(storeHandle.Store, cascade, log.Logger), nil
}
