package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/dueldisk/dueldisk-server/internal/cardsource"
	"github.com/dueldisk/dueldisk-server/internal/cardsource/gemini"
	"github.com/dueldisk/dueldisk-server/internal/cardsource/ygopro"
	"github.com/dueldisk/dueldisk-server/internal/config"
	"github.com/dueldisk/dueldisk-server/internal/logger"
)

// CardSourceHandle wraps the external card source with shutdown capability.
// Source is nil when no Gemini key is configured; the API then reports scan,
// search, and deck wizard endpoints as unavailable.
type CardSourceHandle struct {
	Source  cardsource.Source
	catalog *ygopro.Client
}

// Shutdown implements do.Shutdownable.
func (h *CardSourceHandle) Shutdown() error {
	if h.catalog != nil {
		h.catalog.Close()
	}
	return nil
}

// ProvideCardSource provides the composite external card source.
func ProvideCardSource(i do.Injector) (*CardSourceHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Gemini.APIKey == "" {
		log.Warn("GEMINI_API_KEY not set, scan and deck wizard endpoints disabled")
		return &CardSourceHandle{}, nil
	}

	vision, err := gemini.New(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model, log.Logger)
	if err != nil {
		return nil, err
	}

	catalog := ygopro.New(log.Logger,
		ygopro.WithBaseURL(cfg.CardDB.BaseURL),
		ygopro.WithRate(cfg.CardDB.RPS, cfg.CardDB.Burst),
	)

	log.Info("External card source ready",
		"model", cfg.Gemini.Model,
		"card_db", cfg.CardDB.BaseURL,
	)

	return &CardSourceHandle{
		Source:  cardsource.NewComposite(vision, catalog, log.Logger),
		catalog: catalog,
	}, nil
}
