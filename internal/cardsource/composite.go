package cardsource

import (
	"context"
	"log/slog"

	"github.com/dueldisk/dueldisk-server/internal/domain"
	apperrors "github.com/dueldisk/dueldisk-server/internal/errors"
)

// Vision is the AI side of the composite source. A nil availableNames slice
// means the plan may use any card in the game.
type Vision interface {
	IdentifyCard(ctx context.Context, image []byte, mimeType string) (*domain.PartialCard, error)
	GenerateDeck(ctx context.Context, coreNames, availableNames []string) (*DeckPlan, error)
}

// Catalog is the card database side of the composite source.
type Catalog interface {
	SearchByName(ctx context.Context, name string) ([]domain.PartialCard, error)
	SearchByCode(ctx context.Context, code string) (*domain.PartialCard, error)
}

// Composite joins the vision model and the card database into one Source.
// The vision model reads the photo; the database supplies canonical data and
// official artwork.
type Composite struct {
	vision  Vision
	catalog Catalog
	logger  *slog.Logger
}

var _ Source = (*Composite)(nil)

// NewComposite creates a Source backed by a vision model and a card catalog.
func NewComposite(vision Vision, catalog Catalog, logger *slog.Logger) *Composite {
	return &Composite{
		vision:  vision,
		catalog: catalog,
		logger:  logger,
	}
}

// IdentifyCard recognizes a card from a photo, then enriches the result with
// the official artwork for the recognized name. The vision result stays
// authoritative; the database contributes only the image, and enrichment is
// best effort: a database miss or outage still returns the vision result.
func (c *Composite) IdentifyCard(ctx context.Context, image []byte, mimeType string) (*domain.PartialCard, error) {
	identified, err := c.vision.IdentifyCard(ctx, image, mimeType)
	if err != nil {
		return nil, apperrors.ExternalSource("card identification failed", err)
	}

	matches, err := c.catalog.SearchByName(ctx, identified.Name)
	if err != nil {
		c.logger.Warn("artwork enrichment failed, keeping vision result",
			"name", identified.Name,
			"error", err,
		)
		return identified, nil
	}
	if len(matches) > 0 && matches[0].ImageRef != "" {
		identified.ImageRef = matches[0].ImageRef
	}
	return identified, nil
}

// SearchByName runs a fuzzy name search against the card database.
func (c *Composite) SearchByName(ctx context.Context, name string) ([]domain.PartialCard, error) {
	cards, err := c.catalog.SearchByName(ctx, name)
	if err != nil {
		return nil, apperrors.ExternalSource("card search failed", err)
	}
	return cards, nil
}

// SearchByCode looks up a card by its printed passcode.
func (c *Composite) SearchByCode(ctx context.Context, code string) (*domain.PartialCard, error) {
	card, err := c.catalog.SearchByCode(ctx, code)
	if err != nil {
		return nil, apperrors.ExternalSource("card code lookup failed", err)
	}
	return card, nil
}

// GenerateDeckPlan asks the model for a deck plan. Owned mode requires a
// non-empty collection to draw from.
func (c *Composite) GenerateDeckPlan(ctx context.Context, coreNames []string, mode PlanMode, availableNames []string) (*DeckPlan, error) {
	if len(coreNames) == 0 {
		return nil, apperrors.Validation("at least one core card is required")
	}

	var available []string
	switch mode {
	case PlanModeOwned:
		if len(availableNames) == 0 {
			return nil, apperrors.Validation("owned mode requires a non-empty collection")
		}
		available = availableNames
	case PlanModeUnlimited:
		available = nil
	default:
		return nil, apperrors.Validationf("unknown plan mode %q", mode)
	}

	plan, err := c.vision.GenerateDeck(ctx, coreNames, available)
	if err != nil {
		return nil, apperrors.ExternalSource("deck generation failed", err)
	}
	return plan, nil
}
