package domain

// CardRef is the result of resolving one deck slot against the collection.
// A nil Card marks a dangling reference: the target was deleted (or a sweep
// partially failed) and the slot renders as a missing/proxy card instead of
// crashing the consumer.
type CardRef struct {
	ID   string `json:"id"`
	Card *Card  `json:"card,omitempty"`
}

// Missing reports whether the reference could not be resolved.
func (r CardRef) Missing() bool {
	return r.Card == nil
}

// ResolveSection maps a section's id sequence to CardRefs using the given
// lookup. Order and duplicates are preserved slot for slot.
func ResolveSection(ids []string, lookup map[string]*Card) []CardRef {
	refs := make([]CardRef, len(ids))
	for i, cardID := range ids {
		refs[i] = CardRef{ID: cardID, Card: lookup[cardID]}
	}
	return refs
}

// ResolvedDeck is a deck with every slot resolved against the collection.
type ResolvedDeck struct {
	Deck       Deck      `json:"deck"`
	MainCards  []CardRef `json:"mainCards"`
	ExtraCards []CardRef `json:"extraCards"`
	SideCards  []CardRef `json:"sideCards"`
}
