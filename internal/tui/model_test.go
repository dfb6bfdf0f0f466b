package tui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	colorize "github.com/fatih/color"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arcanaland/grimoire/internal/card"
	"github.com/arcanaland/grimoire/internal/catalog"
	"github.com/arcanaland/grimoire/internal/session"
)

func init() {
	colorize.NoColor = true
	lipgloss.SetColorProfile(termenv.Ascii)
}

type fakeSource struct {
	cards []card.Card
	err   error
	loads int
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Load(ctx context.Context) ([]card.Card, error) {
	f.loads++
	return f.cards, f.err
}

func testCards() []card.Card {
	return []card.Card{
		{ID: "1", Name: "Goblin Scout", Types: []string{"Creature"}, Colors: []string{"Red"}, SetName: "Portal"},
		{ID: "2", Name: "Healing Salve", Text: "Heals", Types: []string{"Instant"}, Colors: []string{"White"}, SetName: "Alpha"},
		{ID: "3", Name: "Sol Ring", Types: []string{"Artifact"}, Colors: []string{}, SetName: "C21"},
	}
}

func newTestModel(t *testing.T, src *fakeSource, route string) (Model, *session.Store) {
	t.Helper()
	store := session.NewStoreAt(filepath.Join(t.TempDir(), "state.toml"))
	m := NewModel(Options{
		Session: &session.Session{},
		Store:   store,
		Source:  src,
		Logger:  zap.NewNop(),
		Route:   route,
	})
	return m, store
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

// enterCards submits a valid name and returns the model with its load command
func enterCards(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	m = typeText(t, m, "Jace")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, viewCards, m.view)
	require.NotNil(t, cmd)
	return m, cmd
}

func TestHomeRejectsInvalidName(t *testing.T) {
	m, _ := newTestModel(t, &fakeSource{}, "")
	m = typeText(t, m, "jace")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, viewHome, m.view)
	assert.Contains(t, m.View(), session.ErrNameUppercase.Error())

	// Typing clears the message
	m = typeText(t, m, "x")
	assert.NotContains(t, m.View(), session.ErrNameUppercase.Error())
}

func TestHomeSubmitSavesNameAndLoadsCards(t *testing.T) {
	src := &fakeSource{cards: testCards()}
	m, store := newTestModel(t, src, "")

	m, cmd := enterCards(t, m)
	assert.Contains(t, m.View(), loadingText)

	name, ok, err := store.LoadName()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Jace", name)

	m, _ = update(t, m, cmd())
	view := m.View()
	assert.Contains(t, view, "Hello, Jace")
	assert.Contains(t, view, "Cards found: 3")
	assert.Contains(t, view, "Healing Salve")
	assert.Len(t, m.session.Cards, 3)
}

func TestCardsSearchFiltersDisplay(t *testing.T) {
	m, _ := newTestModel(t, &fakeSource{cards: testCards()}, "")
	m, cmd := enterCards(t, m)
	m, _ = update(t, m, cmd())

	m = typeText(t, m, "goblin")
	assert.Equal(t, "goblin", m.catalog.Criteria().Search)
	assert.Contains(t, m.View(), "Cards found: 1")
	assert.NotContains(t, m.View(), "Healing Salve")
}

func TestCardsColorSelector(t *testing.T) {
	m, _ := newTestModel(t, &fakeSource{cards: testCards()}, "")
	m, cmd := enterCards(t, m)
	m, _ = update(t, m, cmd())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, focusColors, m.focus)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	assert.Equal(t, []string{"White"}, m.catalog.Criteria().Colors)
	assert.Contains(t, m.View(), "[x] White")
	assert.Contains(t, m.View(), "Cards found: 1")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Empty(t, m.catalog.Criteria().Colors)
	assert.Contains(t, m.View(), "Cards found: 3")
}

func TestCardsTypeSelectorAndSort(t *testing.T) {
	m, _ := newTestModel(t, &fakeSource{cards: testCards()}, "")
	m, cmd := enterCards(t, m)
	m, _ = update(t, m, cmd())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, focusTypes, m.focus)
	// Artifact is first
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []string{"Artifact"}, m.catalog.Criteria().Types)
	assert.Equal(t, 1, m.catalog.Len())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.True(t, m.catalog.Criteria().IsZero())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, catalog.SortAscending, m.catalog.Criteria().Sort)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, catalog.SortDescending, m.catalog.Criteria().Sort)

	names := []string{}
	for _, c := range m.catalog.Display() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Sol Ring", "Healing Salve", "Goblin Scout"}, names)
	assert.Contains(t, m.View(), "Descending")
}

func TestCardsListFocusShowsDetail(t *testing.T) {
	m, _ := newTestModel(t, &fakeSource{cards: testCards()}, "")
	m, cmd := enterCards(t, m)
	m, _ = update(t, m, cmd())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, focusList, m.focus)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.listCursor)
	assert.Contains(t, m.View(), "Card is colorless")
}

func TestLeavingCardsDropsPendingLoad(t *testing.T) {
	m, _ := newTestModel(t, &fakeSource{cards: testCards()}, "")
	m, cmd := enterCards(t, m)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, viewHome, m.view)

	msg := cmd()
	loaded, ok := msg.(cardsLoadedMsg)
	require.True(t, ok)
	assert.True(t, loaded.result.Canceled)

	m, _ = update(t, m, msg)
	assert.Nil(t, m.session.Cards)
	assert.Equal(t, 0, m.catalog.Len())
}

func TestStaleLoadDroppedAfterRemount(t *testing.T) {
	src := &fakeSource{cards: testCards()}
	m, _ := newTestModel(t, src, "")
	m, stale := enterCards(t, m)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, fresh := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, fresh)

	m, _ = update(t, m, stale())
	assert.False(t, m.loaded)

	m, _ = update(t, m, fresh())
	assert.True(t, m.loaded)
}

func TestFailedLoadStaysLoading(t *testing.T) {
	m, _ := newTestModel(t, &fakeSource{err: errors.New("offline")}, "")
	m, cmd := enterCards(t, m)
	m, _ = update(t, m, cmd())

	assert.False(t, m.loaded)
	assert.Contains(t, m.View(), loadingText)
}

func TestStartOnCardsRoute(t *testing.T) {
	src := &fakeSource{cards: testCards()}
	m, _ := newTestModel(t, src, RouteCards)
	require.Equal(t, viewCards, m.view)

	cmd := m.Init()
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.True(t, m.loaded)
	assert.Equal(t, 1, src.loads)
}

func TestUnknownRouteShowsNotFound(t *testing.T) {
	m, _ := newTestModel(t, &fakeSource{}, "/nowhere")
	assert.Contains(t, m.View(), notFoundText)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, viewHome, m.view)
}

func TestSnapshotChangeReloads(t *testing.T) {
	src := &fakeSource{cards: testCards()}
	m, _ := newTestModel(t, src, "")
	changes := make(chan struct{}, 1)
	m.changes = changes

	m, cmd := enterCards(t, m)
	m, _ = update(t, m, cmd())
	require.Equal(t, 1, src.loads)

	src.cards = testCards()[:1]
	m, cmd = update(t, m, snapshotChangedMsg{})
	require.NotNil(t, cmd)

	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	require.Len(t, batch, 2)
	m, _ = update(t, m, batch[1]())
	assert.Equal(t, 1, m.catalog.Len())
	assert.True(t, strings.Contains(m.View(), "Cards found: 1"))
}

func TestCtrlCQuits(t *testing.T) {
	m, _ := newTestModel(t, &fakeSource{}, "")
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestRoutePromptReachesNotFoundAndBack(t *testing.T) {
	src := &fakeSource{cards: testCards()}
	m, _ := newTestModel(t, src, "")
	m, cmd := enterCards(t, m)
	m, _ = update(t, m, cmd())

	// ':' is text while the search field has focus
	m = typeText(t, m, ":")
	assert.False(t, m.routing)
	assert.Equal(t, ":", m.catalog.Criteria().Search)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = typeText(t, m, ":")
	require.True(t, m.routing)
	m = typeText(t, m, "nowhere")
	assert.Contains(t, m.View(), ":nowhere")

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, m.routing)
	assert.Equal(t, viewNotFound, m.view)
	assert.Contains(t, m.View(), notFoundText)

	m = typeText(t, m, ":")
	m = typeText(t, m, "/cards-page")
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, viewCards, m.view)
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.True(t, m.loaded)
	assert.Equal(t, 2, src.loads)
}

func TestRoutePromptFromHome(t *testing.T) {
	m, _ := newTestModel(t, &fakeSource{}, "")

	// ':' goes into the name field on the home view
	m = typeText(t, m, ":")
	assert.False(t, m.routing)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlG})
	require.True(t, m.routing)
	m = typeText(t, m, "somewhere")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.routing)
	assert.Equal(t, viewHome, m.view)

	m = typeText(t, m, "Jace")
	assert.Equal(t, "Jace", m.nameInput.Value())
	assert.NotContains(t, m.View(), "somewhere")
}
