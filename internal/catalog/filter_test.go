package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/grimoire/internal/card"
)

func sampleCards() []card.Card {
	return []card.Card{
		{ID: "1", Name: "Goblin Scout", Text: "", Types: []string{"Creature"}, Colors: []string{"Red"}},
		{ID: "2", Name: "Healing Salve", Text: "Heals", Types: []string{"Instant"}, Colors: []string{"White"}},
	}
}

func mixedCards() []card.Card {
	return []card.Card{
		{ID: "a", Name: "Serra Angel", Text: "Flying, vigilance", Types: []string{"Creature"}, Colors: []string{"White"}},
		{ID: "b", Name: "Sol Ring", Text: "Add two colorless mana.", Types: []string{"Artifact"}, Colors: []string{}},
		{ID: "c", Name: "Boros Charm", Text: "Choose one", Types: []string{"Instant"}, Colors: []string{"Red", "White"}},
		{ID: "d", Name: "Plane of Chaos", Types: nil, Colors: nil},
		{ID: "e", Name: "Ajani's Pridemate", Text: "Whenever you gain life", Types: []string{"Creature"}, Colors: []string{"White"}},
		{ID: "f", Name: "Dryad Arbor", Types: []string{"Land", "Creature"}, Colors: []string{"Green"}},
	}
}

func ids(cards []card.Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.ID)
	}
	return out
}

func TestFilterSearchMatchesName(t *testing.T) {
	got := Filter(sampleCards(), Criteria{Search: "goblin"})
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestFilterSearchMatchesText(t *testing.T) {
	got := Filter(mixedCards(), Criteria{Search: "COLORLESS MANA"})
	assert.Equal(t, []string{"b"}, ids(got))
}

func TestFilterSearchIgnoresMissingText(t *testing.T) {
	got := Filter(mixedCards(), Criteria{Search: "chaos"})
	assert.Equal(t, []string{"d"}, ids(got))

	got = Filter(mixedCards(), Criteria{Search: "flying"})
	assert.Equal(t, []string{"a"}, ids(got))
}

func TestFilterByColor(t *testing.T) {
	got := Filter(sampleCards(), Criteria{Colors: []string{"White"}})
	assert.Equal(t, []string{"2"}, ids(got))
}

func TestFilterColorDropsColorlessAndUnknown(t *testing.T) {
	all := mixedCards()
	neutral := Filter(all, Criteria{})
	assert.Contains(t, ids(neutral), "b")
	assert.Contains(t, ids(neutral), "d")

	got := Filter(all, Criteria{Colors: []string{"Green"}})
	assert.Equal(t, []string{"f"}, ids(got))

	got = Filter(all, Criteria{Colors: []string{"White", "Red"}})
	assert.Equal(t, []string{"a", "c", "e"}, ids(got))
}

func TestFilterByTypeDropsUntyped(t *testing.T) {
	got := Filter(mixedCards(), Criteria{Types: []string{"Creature"}})
	assert.Equal(t, []string{"a", "e", "f"}, ids(got))

	got = Filter(mixedCards(), Criteria{Types: []string{"creat"}})
	assert.Equal(t, []string{"a", "e", "f"}, ids(got), "type match is a case-insensitive substring match")
}

func TestFilterStagesCompose(t *testing.T) {
	got := Filter(mixedCards(), Criteria{
		Search: "a",
		Types:  []string{"Creature", "Instant"},
		Colors: []string{"White"},
	})
	assert.Equal(t, []string{"a", "c", "e"}, ids(got))
}

func TestFilterNeutralCriteriaKeepsOrder(t *testing.T) {
	all := mixedCards()
	got := Filter(all, Criteria{})
	assert.Equal(t, ids(all), ids(got))
	assert.True(t, Criteria{}.IsZero())
}

func TestFilterEmptyCollection(t *testing.T) {
	got := Filter(nil, Criteria{Search: "x", Sort: SortAscending})
	assert.Empty(t, got)
}

func TestFilterDoesNotModifyInput(t *testing.T) {
	all := mixedCards()
	before := ids(all)
	Filter(all, Criteria{Sort: SortDescending, Colors: []string{"White"}})
	assert.Equal(t, before, ids(all))
}

func TestFilterIsSubsetAndIdempotent(t *testing.T) {
	all := mixedCards()
	allIDs := ids(all)
	crits := []Criteria{
		{},
		{Search: "ar"},
		{Types: []string{"Creature"}, Sort: SortAscending},
		{Colors: []string{"White"}, Sort: SortDescending},
		{Search: "zzz"},
	}
	for _, crit := range crits {
		first := Filter(all, crit)
		second := Filter(all, crit)
		assert.Equal(t, ids(first), ids(second))
		for _, id := range ids(first) {
			assert.Contains(t, allIDs, id)
		}
	}
}

func TestSortRoundTrip(t *testing.T) {
	all := mixedCards()
	asc := Filter(all, Criteria{Sort: SortAscending})
	desc := Filter(asc, Criteria{Sort: SortDescending})

	require.Len(t, desc, len(asc))
	for i := range asc {
		assert.Equal(t, asc[i].ID, desc[len(desc)-1-i].ID)
	}
	assert.Equal(t, []string{"e", "c", "f", "d", "a", "b"}, ids(asc))
}

func TestSortIsLocaleAware(t *testing.T) {
	all := []card.Card{
		{ID: "1", Name: "zombie"},
		{ID: "2", Name: "Élan"},
		{ID: "3", Name: "Angel"},
		{ID: "4", Name: "elf"},
	}
	got := Filter(all, Criteria{Sort: SortAscending})
	assert.Equal(t, []string{"3", "2", "4", "1"}, ids(got))
}

func TestParseSortOrder(t *testing.T) {
	tests := []struct {
		in   string
		want SortOrder
		err  bool
	}{
		{"", SortUnset, false},
		{"Sort", SortUnset, false},
		{"asc", SortAscending, false},
		{"Ascending", SortAscending, false},
		{"DESC", SortDescending, false},
		{"descending", SortDescending, false},
		{"sideways", SortUnset, true},
	}
	for _, tt := range tests {
		got, err := ParseSortOrder(tt.in)
		if tt.err {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
