// Package gemini wraps the Gemini API for card identification and deck
// generation.
package gemini

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/dueldisk/dueldisk-server/internal/cardsource"
	"github.com/dueldisk/dueldisk-server/internal/domain"
)

const defaultModel = "gemini-2.5-flash"

const (
	identifySystem = "You are an expert Yu-Gi-Oh! database. Precision is key."
	identifyPrompt = "Identify this Yu-Gi-Oh! card. Return the EXACT English card name. " +
		"Also extract type, ATK/DEF, level, race, and description."

	deckSystem = "You are a world-champion Yu-Gi-Oh! deck builder. Create synergistic, consistent decks."
)

// Client generates structured card and deck data with the Gemini API.
type Client struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

// New creates a new Gemini client.
func New(ctx context.Context, apiKey, model string, logger *slog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Client{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// cardSchema constrains identification output to a card attribute object.
var cardSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"name": {
			Type:        genai.TypeString,
			Description: "The exact English name of the card as it appears in the database.",
		},
		"type": {
			Type:        genai.TypeString,
			Description: "The main type of the card: Monster, Spell, or Trap",
			Enum:        []string{"Monster", "Spell", "Trap"},
		},
		"description": {
			Type:        genai.TypeString,
			Description: "The full text/effect description of the card",
		},
		"atk": {
			Type:        genai.TypeString,
			Description: "Attack points (e.g., '2500' or '?')",
		},
		"def": {
			Type:        genai.TypeString,
			Description: "Defense points (e.g., '2100' or '?')",
		},
		"level": {
			Type:        genai.TypeInteger,
			Description: "Level or Rank (e.g., 7)",
		},
		"race": {
			Type:        genai.TypeString,
			Description: "The race or sub-type (e.g., Dragon, Warrior, Continuous, Field)",
		},
	},
	Required: []string{"name", "type", "description"},
}

// deckSchema constrains deck generation output to a named card list.
var deckSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"deckName": {
			Type:        genai.TypeString,
			Description: "A creative name for the deck",
		},
		"mainDeck": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "List of card names for the Main Deck (40-60 cards)",
		},
		"extraDeck": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "List of card names for the Extra Deck (0-15 cards)",
		},
	},
	Required: []string{"deckName", "mainDeck"},
}

// IdentifyCard recognizes a card from an image and returns its attributes.
// The image reference is left empty; the database search fills it with the
// official artwork afterwards.
func (c *Client) IdentifyCard(ctx context.Context, image []byte, mimeType string) (*domain.PartialCard, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("image data is required")
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(image, mimeType),
			genai.NewPartFromText(identifyPrompt),
		}, genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType:  "application/json",
		ResponseSchema:    cardSchema,
		SystemInstruction: genai.NewContentFromText(identifySystem, genai.RoleUser),
	})
	if err != nil {
		return nil, fmt.Errorf("identify card: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("identify card: empty model response")
	}

	var out struct {
		Name        string `json:"name"`
		Type        string `json:"type"`
		Description string `json:"description"`
		Atk         string `json:"atk"`
		Def         string `json:"def"`
		Level       int    `json:"level"`
		Race        string `json:"race"`
	}
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("identify card: parse model response: %w", err)
	}
	if out.Name == "" {
		return nil, fmt.Errorf("identify card: model returned no card name")
	}

	c.logger.Debug("card identified",
		"name", out.Name,
		"type", out.Type,
	)

	return &domain.PartialCard{
		Name:        out.Name,
		Kind:        domain.KindFromAPIType(out.Type),
		Description: out.Description,
		Attack:      out.Atk,
		Defense:     out.Def,
		Level:       out.Level,
		Race:        out.Race,
	}, nil
}

// GenerateDeck asks the model for a deck built around coreNames. A non-nil
// availableNames restricts the plan to those cards; nil means any card in
// the game is fair game.
func (c *Client) GenerateDeck(ctx context.Context, coreNames, availableNames []string) (*cardsource.DeckPlan, error) {
	if len(coreNames) == 0 {
		return nil, fmt.Errorf("at least one core card is required")
	}

	var prompt string
	if availableNames != nil {
		prompt = fmt.Sprintf(
			"Build the best possible Yu-Gi-Oh! deck that focuses on these core cards: %s. "+
				"CRITICAL: You must ONLY use cards from this available list: %s. Do not suggest cards not in the list. "+
				"Construct a Main Deck (40-60 cards) and an Extra Deck (0-15 cards) if the strategy requires it.",
			strings.Join(coreNames, ", "),
			strings.Join(availableNames, ", "),
		)
	} else {
		prompt = fmt.Sprintf(
			"Build a competitive/meta Yu-Gi-Oh! deck revolving around: %s. "+
				"You can suggest any card in the game. "+
				"Construct a Main Deck (40 cards usually) and an Extra Deck (up to 15 cards) "+
				"containing relevant Fusion, Synchro, Xyz, or Link monsters.",
			strings.Join(coreNames, ", "),
		)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType:  "application/json",
		ResponseSchema:    deckSchema,
		SystemInstruction: genai.NewContentFromText(deckSystem, genai.RoleUser),
	})
	if err != nil {
		return nil, fmt.Errorf("generate deck: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("generate deck: empty model response")
	}

	var plan cardsource.DeckPlan
	if err := json.Unmarshal([]byte(text), &plan); err != nil {
		return nil, fmt.Errorf("generate deck: parse model response: %w", err)
	}
	if len(plan.MainDeck) == 0 {
		return nil, fmt.Errorf("generate deck: model returned an empty main deck")
	}

	c.logger.Debug("deck plan generated",
		"name", plan.DeckName,
		"main", len(plan.MainDeck),
		"extra", len(plan.ExtraDeck),
	)

	return &plan, nil
}
