package domain

import "slices"

// Section identifies one of the three card sequences within a deck.
type Section string

// Deck sections.
const (
	SectionMain  Section = "main"
	SectionExtra Section = "extra"
	SectionSide  Section = "side"
)

// Section capacities. These are the conventional deck-building caps; the
// store itself never enforces them.
const (
	MainCapacity  = 60
	ExtraCapacity = 15
	SideCapacity  = 15
)

// ParseSection converts a string to a Section.
func ParseSection(s string) (Section, bool) {
	switch Section(s) {
	case SectionMain, SectionExtra, SectionSide:
		return Section(s), true
	default:
		return "", false
	}
}

// Capacity returns the maximum sequence length for the section.
func (s Section) Capacity() int {
	if s == SectionMain {
		return MainCapacity
	}
	return ExtraCapacity
}

// Deck is a named collection of card identifiers partitioned into three
// ordered sequences. The same id may appear multiple times across the
// sequences, modeling multiple physical copies in play. References are weak:
// a card may be deleted independently, leaving dangling ids that render as
// proxies until swept.
type Deck struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	MainCards  []string `json:"mainCards"`
	ExtraCards []string `json:"extraCards,omitempty"`
	SideCards  []string `json:"sideCards,omitempty"`
	Notes      string   `json:"notes,omitempty"`
	CreatedAt  int64    `json:"createdAt"` // ms epoch
}

// Cards returns the sequence for a section.
func (d *Deck) Cards(s Section) []string {
	switch s {
	case SectionExtra:
		return d.ExtraCards
	case SectionSide:
		return d.SideCards
	default:
		return d.MainCards
	}
}

// setCards replaces the sequence for a section.
func (d *Deck) setCards(s Section, ids []string) {
	switch s {
	case SectionExtra:
		d.ExtraCards = ids
	case SectionSide:
		d.SideCards = ids
	default:
		d.MainCards = ids
	}
}

// AppendCard appends a card id to the named section's sequence.
func (d *Deck) AppendCard(s Section, cardID string) {
	d.setCards(s, append(d.Cards(s), cardID))
}

// RemoveCardAt removes the id at index from the named section's sequence.
// Removal is positional, not by-value: sequences may contain duplicate ids,
// so the caller addresses the exact slot. Returns the removed id and whether
// the index was in range.
func (d *Deck) RemoveCardAt(s Section, index int) (string, bool) {
	ids := d.Cards(s)
	if index < 0 || index >= len(ids) {
		return "", false
	}
	removed := ids[index]
	d.setCards(s, slices.Delete(slices.Clone(ids), index, index+1))
	return removed, true
}

// CountOccurrences returns how many times cardID appears across all three
// sections. Used to enforce the owned-quantity limit on add.
func (d *Deck) CountOccurrences(cardID string) int {
	count := 0
	for _, ids := range [][]string{d.MainCards, d.ExtraCards, d.SideCards} {
		for _, cid := range ids {
			if cid == cardID {
				count++
			}
		}
	}
	return count
}

// References reports whether cardID appears in any section.
func (d *Deck) References(cardID string) bool {
	return slices.Contains(d.MainCards, cardID) ||
		slices.Contains(d.ExtraCards, cardID) ||
		slices.Contains(d.SideCards, cardID)
}

// RemoveAllOccurrences strips every occurrence of cardID from all three
// sections and returns the number removed. This is the sweep primitive the
// consistency coordinator applies after a card's full deletion.
func (d *Deck) RemoveAllOccurrences(cardID string) int {
	removed := 0
	strip := func(ids []string) []string {
		kept := ids[:0:0]
		for _, cid := range ids {
			if cid == cardID {
				removed++
				continue
			}
			kept = append(kept, cid)
		}
		return kept
	}
	d.MainCards = strip(d.MainCards)
	d.ExtraCards = strip(d.ExtraCards)
	d.SideCards = strip(d.SideCards)
	return removed
}
