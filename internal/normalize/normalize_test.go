package normalize_test

import (
	"testing"

	"github.com/dueldisk/dueldisk-server/internal/normalize"
	"github.com/stretchr/testify/assert"
)

func TestCardName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Dark Magician", "dark magician"},
		{"trims", "  Kuriboh  ", "kuriboh"},
		{"collapses whitespace", "Blue-Eyes   White\tDragon", "blue-eyes white dragon"},
		{"already normal", "pot of greed", "pot of greed"},
		{"empty", "", ""},
		{"only spaces", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.CardName(tt.input))
		})
	}
}

func TestEqualCardNames(t *testing.T) {
	assert.True(t, normalize.EqualCardNames("KURIBOH", "kuriboh"))
	assert.True(t, normalize.EqualCardNames(" Dark Magician ", "dark  magician"))
	assert.False(t, normalize.EqualCardNames("Kuriboh", "Winged Kuriboh"))
}
