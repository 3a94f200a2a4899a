package domain_test

import (
	"testing"
	"time"

	"github.com/dueldisk/dueldisk-server/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestKindFromAPIType(t *testing.T) {
	tests := []struct {
		raw  string
		want domain.CardKind
	}{
		{"Effect Monster", domain.KindMonster},
		{"XYZ Monster", domain.KindMonster},
		{"normal monster", domain.KindMonster},
		{"Spell Card", domain.KindSpell},
		{"Continuous Spell", domain.KindSpell},
		{"Trap Card", domain.KindTrap},
		{"Skill Card", domain.KindUnknown},
		{"", domain.KindUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.KindFromAPIType(tt.raw), "raw %q", tt.raw)
	}
}

func TestNewCard_Defaults(t *testing.T) {
	now := time.Now()
	card := domain.NewCard("card-001", domain.PartialCard{Name: "Kuriboh"}, now)

	assert.Equal(t, "card-001", card.ID)
	assert.Equal(t, "Kuriboh", card.Name)
	assert.Equal(t, domain.KindUnknown, card.Kind)
	assert.True(t, card.Owned)
	assert.Equal(t, 1, card.Quantity)
	assert.Equal(t, now.UnixMilli(), card.AcquiredAt)
	assert.False(t, card.IsProxy())
}

func TestNewCard_KeepsProvidedAttributes(t *testing.T) {
	partial := domain.PartialCard{
		Name:        "Dark Magician",
		Kind:        domain.KindMonster,
		Description: "The ultimate wizard.",
		Attack:      "2500",
		Defense:     "2100",
		Level:       7,
		Race:        "Spellcaster",
		ImageRef:    "https://example.com/dm.jpg",
	}

	card := domain.NewCard("card-002", partial, time.Now())

	assert.Equal(t, domain.KindMonster, card.Kind)
	assert.Equal(t, "2500", card.Attack)
	assert.Equal(t, "2100", card.Defense)
	assert.Equal(t, 7, card.Level)
	assert.Equal(t, "Spellcaster", card.Race)
	assert.Equal(t, "https://example.com/dm.jpg", card.ImageRef)
}

func TestNewProxyCard(t *testing.T) {
	card := domain.NewProxyCard("card-003", domain.PartialCard{Name: "Raigeki"}, time.Now())

	assert.False(t, card.Owned)
	assert.True(t, card.IsProxy())
	assert.Equal(t, 1, card.Quantity)
}
