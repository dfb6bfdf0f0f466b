package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/arcanaland/grimoire/internal/card"
	"github.com/arcanaland/grimoire/internal/catalog"
	"github.com/arcanaland/grimoire/internal/session"
	"github.com/arcanaland/grimoire/internal/source"
)

// Routes addressable in the browser. Anything else shows the not found view.
const (
	RouteHome  = "/"
	RouteCards = "/cards-page"
)

type view int

const (
	viewHome view = iota
	viewCards
	viewNotFound
)

// focus is the control of the cards view receiving key presses
type focus int

const (
	focusSearch focus = iota
	focusColors
	focusTypes
	focusList
	focusCount
)

// cardsLoadedMsg carries the result of a load started for request gen
type cardsLoadedMsg struct {
	gen    int
	result source.Result
}

// snapshotChangedMsg is sent when the watched snapshot file changes
type snapshotChangedMsg struct{}

// Options configures a Model
type Options struct {
	Session *session.Session
	Store   *session.Store
	Source  source.Source
	Logger  *zap.Logger
	// Sort is the initial sort order of the cards view
	Sort catalog.SortOrder
	// Changes, when set, triggers a reload of the cards view on every value
	Changes <-chan struct{}
	// Route is the first view shown
	Route string
}

// Model is the bubbletea model of the browser
type Model struct {
	session *session.Session
	store   *session.Store
	src     source.Source
	logger  *zap.Logger
	styles  Styles
	changes <-chan struct{}

	view   view
	width  int
	height int

	// home view
	nameInput textinput.Model
	nameErr   string

	// route prompt, opened with ':' or ctrl+g
	routeInput textinput.Model
	routing    bool

	// cards view
	catalog     *catalog.Catalog
	initialSort catalog.SortOrder
	searchInput textinput.Model
	focus       focus
	colorCursor int
	typeCursor  int
	listCursor  int
	loaded      bool

	// gen identifies the current load. A result for any other generation
	// belongs to a cards view that has since been left and is dropped.
	gen    int
	cancel context.CancelFunc

	// initCmd is the load started by NewModel when opening on the cards view
	initCmd tea.Cmd
}

// NewModel creates the browser model
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	sess := opts.Session
	if sess == nil {
		sess = &session.Session{}
	}

	nameInput := textinput.New()
	nameInput.Placeholder = "Your name here"
	nameInput.Prompt = "Name: "
	nameInput.CharLimit = 64
	nameInput.SetValue(sess.Name)
	nameInput.Focus()

	routeInput := textinput.New()
	routeInput.Prompt = ":"
	routeInput.Placeholder = "cards-page"

	searchInput := textinput.New()
	searchInput.Placeholder = "name or text"
	searchInput.Prompt = "Search: "

	m := Model{
		session:     sess,
		store:       opts.Store,
		src:         opts.Source,
		logger:      logger,
		styles:      DefaultStyles(),
		changes:     opts.Changes,
		width:       80,
		height:      24,
		nameInput:   nameInput,
		routeInput:  routeInput,
		catalog:     catalog.New(nil),
		initialSort: opts.Sort,
		searchInput: searchInput,
	}

	if opts.Route != "" {
		m.initCmd = m.Navigate(opts.Route)
	}
	return m
}

// Init starts the load when the browser opens on the cards view
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.changes != nil {
		cmds = append(cmds, waitForChange(m.changes))
	}
	if m.initCmd != nil {
		cmds = append(cmds, m.initCmd)
	}
	return tea.Batch(cmds...)
}

func routeView(route string) view {
	switch route {
	case RouteHome:
		return viewHome
	case RouteCards:
		return viewCards
	}
	return viewNotFound
}

// Navigate switches to the view addressed by route, mounting and
// unmounting the cards view as needed
func (m *Model) Navigate(route string) tea.Cmd {
	next := routeView(route)
	if m.view == viewCards && next != viewCards {
		m.unmountCards()
	}
	prev := m.view
	m.view = next

	switch next {
	case viewCards:
		if prev != viewCards {
			return m.mountCards()
		}
	case viewHome:
		m.nameErr = ""
		m.nameInput.SetValue(m.session.Name)
		m.nameInput.CursorEnd()
		m.nameInput.Focus()
	case viewNotFound:
		m.nameInput.Blur()
	}
	return nil
}

// mountCards resets the cards view and starts loading the collection
func (m *Model) mountCards() tea.Cmd {
	m.catalog = catalog.New(nil)
	m.catalog.SetSort(m.initialSort)
	m.loaded = false
	m.focus = focusSearch
	m.listCursor = 0
	m.searchInput.SetValue("")
	m.searchInput.Focus()
	m.nameInput.Blur()
	return m.startLoad()
}

// unmountCards cancels any load in flight; its result will be dropped
func (m *Model) unmountCards() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.gen++
	m.searchInput.Blur()
}

// startLoad begins a new load, superseding any previous one
func (m *Model) startLoad() tea.Cmd {
	if m.cancel != nil {
		m.cancel()
	}
	m.gen++
	if m.src == nil {
		m.logger.Error("no card source configured")
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	gen, src := m.gen, m.src
	return func() tea.Msg {
		return cardsLoadedMsg{gen: gen, result: source.Fetch(ctx, src)}
	}
}

func waitForChange(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return snapshotChangedMsg{}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.nameInput.Width = max(10, msg.Width-10)
		m.searchInput.Width = max(10, msg.Width-12)
		return m, nil

	case cardsLoadedMsg:
		m.applyLoad(msg)
		return m, nil

	case snapshotChangedMsg:
		cmds := []tea.Cmd{waitForChange(m.changes)}
		if m.view == viewCards {
			m.logger.Info("snapshot changed, reloading cards")
			cmds = append(cmds, m.startLoad())
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.unmountCards()
			return m, tea.Quit
		}
		if m.routing {
			return m.updateRoute(msg)
		}
		if msg.Type == tea.KeyCtrlG || (msg.String() == ":" && !m.typing()) {
			m.openRoute()
			return m, nil
		}
		switch m.view {
		case viewHome:
			return m.updateHome(msg)
		case viewCards:
			return m.updateCards(msg)
		default:
			return m.updateNotFound(msg)
		}
	}
	return m, nil
}

// applyLoad stores a load result unless it is stale
func (m *Model) applyLoad(msg cardsLoadedMsg) {
	if msg.gen != m.gen || msg.result.Canceled || m.view != viewCards {
		m.logger.Debug("dropping stale card load", zap.Int("gen", msg.gen), zap.Int("current", m.gen))
		return
	}
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if msg.result.Err != nil {
		// The view stays in its loading state; there is no retry.
		m.logger.Error("Request Failed", zap.Error(msg.result.Err))
		return
	}

	m.session.Cards = msg.result.Cards
	m.catalog.SetCards(msg.result.Cards)
	m.loaded = true
	m.clampCursor()
}

// typing reports whether key presses go to a text field of the current view
func (m Model) typing() bool {
	return m.view == viewHome || (m.view == viewCards && m.focus == focusSearch)
}

func (m *Model) openRoute() {
	m.routing = true
	m.routeInput.SetValue("")
	m.routeInput.Focus()
	m.nameInput.Blur()
	m.searchInput.Blur()
}

// closeRoute hides the route prompt and gives focus back to the view
func (m *Model) closeRoute() {
	m.routing = false
	m.routeInput.Blur()
	switch m.view {
	case viewHome:
		m.nameInput.Focus()
	case viewCards:
		m.setFocus(m.focus)
	}
}

func (m Model) updateRoute(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeRoute()
		return m, nil
	case tea.KeyEnter:
		route := strings.TrimSpace(m.routeInput.Value())
		m.closeRoute()
		if route == "" {
			return m, nil
		}
		if !strings.HasPrefix(route, "/") {
			route = "/" + route
		}
		m.logger.Debug("navigating", zap.String("route", route))
		cmd := m.Navigate(route)
		return m, cmd
	}

	var cmd tea.Cmd
	m.routeInput, cmd = m.routeInput.Update(msg)
	return m, cmd
}

func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		name := m.nameInput.Value()
		if err := session.ValidateName(name); err != nil {
			m.nameErr = err.Error()
			return m, nil
		}
		m.session.Name = name
		if m.store != nil {
			if err := m.store.SaveName(name); err != nil {
				m.logger.Warn("failed to save name", zap.Error(err))
			}
		}
		cmd := m.Navigate(RouteCards)
		return m, cmd
	case tea.KeyEsc:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	m.nameErr = ""
	return m, cmd
}

func (m Model) updateNotFound(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		cmd := m.Navigate(RouteHome)
		return m, cmd
	}
	if msg.String() == "q" {
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateCards(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		cmd := m.Navigate(RouteHome)
		return m, cmd
	case tea.KeyTab:
		m.setFocus((m.focus + 1) % focusCount)
		return m, nil
	case tea.KeyShiftTab:
		m.setFocus((m.focus + focusCount - 1) % focusCount)
		return m, nil
	case tea.KeyCtrlS:
		m.catalog.SetSort(nextSort(m.catalog.Criteria().Sort))
		m.clampCursor()
		return m, nil
	case tea.KeyCtrlR:
		m.catalog.Reset()
		m.searchInput.SetValue("")
		m.clampCursor()
		return m, nil
	}

	switch m.focus {
	case focusSearch:
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		if m.searchInput.Value() != m.catalog.Criteria().Search {
			m.catalog.SetSearch(m.searchInput.Value())
			m.clampCursor()
		}
		return m, cmd
	case focusColors:
		m.colorCursor = m.moveSelector(msg, m.colorCursor, len(card.AllColors), func(i int) {
			m.catalog.ToggleColor(card.AllColors[i])
		})
	case focusTypes:
		m.typeCursor = m.moveSelector(msg, m.typeCursor, len(card.AllTypes), func(i int) {
			m.catalog.ToggleType(card.AllTypes[i])
		})
	case focusList:
		switch msg.Type {
		case tea.KeyUp:
			m.listCursor--
		case tea.KeyDown:
			m.listCursor++
		case tea.KeyPgUp:
			m.listCursor -= m.listHeight()
		case tea.KeyPgDown:
			m.listCursor += m.listHeight()
		case tea.KeyHome:
			m.listCursor = 0
		case tea.KeyEnd:
			m.listCursor = m.catalog.Len() - 1
		}
	}
	m.clampCursor()
	return m, nil
}

// moveSelector handles cursor movement and toggling in a multi-select
func (m *Model) moveSelector(msg tea.KeyMsg, cursor, n int, toggle func(int)) int {
	switch msg.Type {
	case tea.KeyLeft, tea.KeyUp:
		cursor = (cursor + n - 1) % n
	case tea.KeyRight, tea.KeyDown:
		cursor = (cursor + 1) % n
	case tea.KeySpace, tea.KeyEnter:
		toggle(cursor)
	}
	return cursor
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	if f == focusSearch {
		m.searchInput.Focus()
	} else {
		m.searchInput.Blur()
	}
}

func (m *Model) clampCursor() {
	if m.listCursor >= m.catalog.Len() {
		m.listCursor = m.catalog.Len() - 1
	}
	if m.listCursor < 0 {
		m.listCursor = 0
	}
}

func nextSort(o catalog.SortOrder) catalog.SortOrder {
	if o == catalog.SortAscending {
		return catalog.SortDescending
	}
	return catalog.SortAscending
}
