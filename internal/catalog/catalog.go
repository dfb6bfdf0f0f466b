package catalog

import (
	"github.com/arcanaland/grimoire/internal/card"
)

// Catalog holds the canonical card collection and the current criteria.
// Every change recomputes the display sequence.
//
// Sorting reorders the canonical collection itself, so the canonical order
// always reflects the last sort applied and later filter changes see the
// sorted order even after the sort selector returns to unset.
type Catalog struct {
	cards    []card.Card
	criteria Criteria
	display  []card.Card
}

// New creates a catalog over cards
func New(cards []card.Card) *Catalog {
	c := &Catalog{}
	c.SetCards(cards)
	return c
}

// SetCards replaces the canonical collection. The current sort order, if
// any, is applied to the new collection.
func (c *Catalog) SetCards(cards []card.Card) {
	c.cards = append([]card.Card(nil), cards...)
	SortByName(c.cards, c.criteria.Sort)
	c.recompute()
}

// Cards returns a copy of the canonical collection in its current order
func (c *Catalog) Cards() []card.Card {
	return cloneAll(c.cards)
}

// Criteria returns the current criteria
func (c *Catalog) Criteria() Criteria {
	crit := c.criteria
	crit.Types = append([]string(nil), c.criteria.Types...)
	crit.Colors = append([]string(nil), c.criteria.Colors...)
	return crit
}

// SetSearch sets the free text search term
func (c *Catalog) SetSearch(term string) {
	c.criteria.Search = term
	c.recompute()
}

// SetTypes replaces the selected types
func (c *Catalog) SetTypes(types []string) {
	c.criteria.Types = dedupe(types)
	c.recompute()
}

// ToggleType selects t when it is not selected and deselects it otherwise
func (c *Catalog) ToggleType(t string) {
	c.criteria.Types = toggle(c.criteria.Types, t)
	c.recompute()
}

// SetColors replaces the selected colors
func (c *Catalog) SetColors(colors []string) {
	c.criteria.Colors = dedupe(colors)
	c.recompute()
}

// ToggleColor selects color when it is not selected and deselects it otherwise
func (c *Catalog) ToggleColor(color string) {
	c.criteria.Colors = toggle(c.criteria.Colors, color)
	c.recompute()
}

// SetSort sets the sort order and reorders the canonical collection
func (c *Catalog) SetSort(order SortOrder) {
	SortByName(c.cards, order)
	c.criteria.Sort = order
	c.recompute()
}

// Apply replaces all criteria at once
func (c *Catalog) Apply(crit Criteria) {
	c.criteria.Search = crit.Search
	c.criteria.Types = dedupe(crit.Types)
	c.criteria.Colors = dedupe(crit.Colors)
	c.SetSort(crit.Sort)
}

// Reset clears search, selections and sort. The canonical order is kept.
func (c *Catalog) Reset() {
	c.criteria = Criteria{}
	c.recompute()
}

// Display returns a copy of the current display sequence
func (c *Catalog) Display() []card.Card {
	return cloneAll(c.display)
}

// Len returns the number of cards in the display sequence
func (c *Catalog) Len() int {
	return len(c.display)
}

// recompute derives the display sequence. The canonical collection is
// already in sort order, so the filters run with sorting disabled.
func (c *Catalog) recompute() {
	crit := c.criteria
	crit.Sort = SortUnset
	c.display = Filter(c.cards, crit)
}

func cloneAll(cards []card.Card) []card.Card {
	out := make([]card.Card, len(cards))
	for i, cd := range cards {
		out[i] = cd.Clone()
	}
	return out
}

func toggle(set []string, v string) []string {
	for i, s := range set {
		if s == v {
			return append(set[:i:i], set[i+1:]...)
		}
	}
	return append(set, v)
}

func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
