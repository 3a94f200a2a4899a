package ygopro

// Raw API response types (internal). The YGOPRODeck API reports numeric
// attack/defense and omits them for spells and traps.

type rawResponse struct {
	Data  []rawCard `json:"data"`
	Error string    `json:"error"`
}

type rawCard struct {
	ID     int64      `json:"id"`
	Name   string     `json:"name"`
	Type   string     `json:"type"`
	Desc   string     `json:"desc"`
	Attack *int       `json:"atk"`
	Def    *int       `json:"def"`
	Level  int        `json:"level"`
	Race   string     `json:"race"`
	Images []rawImage `json:"card_images"`
}

type rawImage struct {
	ImageURL      string `json:"image_url"`
	ImageURLSmall string `json:"image_url_small"`
}
