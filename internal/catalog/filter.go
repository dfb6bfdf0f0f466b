// Package catalog derives the sequence of cards to display from a card
// collection and the user's current search, filter and sort criteria.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/arcanaland/grimoire/internal/card"
)

// SortOrder is the alphabetical order applied to card names
type SortOrder int

const (
	SortUnset SortOrder = iota
	SortAscending
	SortDescending
)

// String returns the label shown in the sort selector
func (o SortOrder) String() string {
	switch o {
	case SortAscending:
		return "Ascending"
	case SortDescending:
		return "Descending"
	default:
		return "Sort"
	}
}

// ParseSortOrder parses a user supplied sort order
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sort", "none", "unset":
		return SortUnset, nil
	case "asc", "ascending", "a-z":
		return SortAscending, nil
	case "desc", "descending", "z-a":
		return SortDescending, nil
	}
	return SortUnset, fmt.Errorf("invalid sort order: %s (expected asc or desc)", s)
}

// Criteria is the combination of search term, selected tags and sort order
// that drives the display sequence. Types and Colors are treated as sets.
type Criteria struct {
	Search string
	Types  []string
	Colors []string
	Sort   SortOrder
}

// IsZero reports whether the criteria leave the collection untouched
func (c Criteria) IsZero() bool {
	return c.Search == "" && len(c.Types) == 0 && len(c.Colors) == 0 && c.Sort == SortUnset
}

// Filter applies the criteria to all and returns the display sequence.
// Each stage runs over the output of the previous one. all is not modified.
func Filter(all []card.Card, c Criteria) []card.Card {
	result := make([]card.Card, 0, len(all))
	search := strings.ToLower(c.Search)
	for _, cd := range all {
		if matchesSearch(cd, search) {
			result = append(result, cd)
		}
	}

	if len(c.Types) > 0 {
		result = keep(result, func(cd card.Card) bool {
			return cd.HasTypes() && anyContains(cd.Types, c.Types)
		})
	}

	if len(c.Colors) > 0 {
		result = keep(result, func(cd card.Card) bool {
			return cd.HasColors() && anyContains(cd.Colors, c.Colors)
		})
	}

	if c.Sort != SortUnset {
		SortByName(result, c.Sort)
	}

	return result
}

// SortByName sorts cards in place by locale aware name comparison.
// Equal names keep their relative order. SortUnset leaves cards untouched.
func SortByName(cards []card.Card, order SortOrder) {
	if order == SortUnset {
		return
	}
	col := collate.New(language.English)
	sort.SliceStable(cards, func(i, j int) bool {
		cmp := col.CompareString(cards[i].Name, cards[j].Name)
		if order == SortDescending {
			return cmp > 0
		}
		return cmp < 0
	})
}

// matchesSearch reports whether the lowercased term is found in the card
// name, or in its rules text when it has any
func matchesSearch(cd card.Card, term string) bool {
	if strings.Contains(strings.ToLower(cd.Name), term) {
		return true
	}
	return cd.HasText() && strings.Contains(strings.ToLower(cd.Text), term)
}

// anyContains reports whether any of values contains any of selected,
// ignoring case. An empty values list never matches.
func anyContains(values, selected []string) bool {
	for _, v := range values {
		lv := strings.ToLower(v)
		for _, s := range selected {
			if strings.Contains(lv, strings.ToLower(s)) {
				return true
			}
		}
	}
	return false
}

func keep(cards []card.Card, pred func(card.Card) bool) []card.Card {
	out := cards[:0]
	for _, cd := range cards {
		if pred(cd) {
			out = append(out, cd)
		}
	}
	return out
}
