package tui

import (
	"fmt"
	"strings"

	"github.com/arcanaland/grimoire/internal/card"
	"github.com/arcanaland/grimoire/internal/present"
)

const (
	loadingText  = "Loading cards..."
	notFoundText = "Error 404, there is no page here"
)

// View renders the current view
func (m Model) View() string {
	var out string
	switch m.view {
	case viewHome:
		out = m.homeView()
	case viewCards:
		out = m.cardsView()
	default:
		out = m.notFoundView()
	}
	if m.routing {
		out += "\n" + m.routeInput.View() + "\n"
	}
	return out
}

func (m Model) homeView() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("MtG Cards Browser"))
	b.WriteString("\n\n")
	b.WriteString(m.nameInput.View())
	b.WriteString("\n")
	if m.nameErr != "" {
		b.WriteString(m.styles.Error.Render(m.nameErr))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("enter: submit • ctrl+g: go to route • esc: quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) notFoundView() string {
	return m.styles.Title.Render(notFoundText) + "\n\n" +
		m.styles.Muted.Render("enter: home • : go to route • q: quit") + "\n"
}

func (m Model) cardsView() string {
	var b strings.Builder
	b.WriteString(m.styles.Greeting.Render("Hello, " + m.session.Name))
	b.WriteString("\n")

	crit := m.catalog.Criteria()
	b.WriteString(m.selectorView("Filter cards by color", card.AllColors, crit.Colors, m.colorCursor, m.focus == focusColors))
	b.WriteString(m.selectorView("Filter cards by type", card.AllTypes, crit.Types, m.typeCursor, m.focus == focusTypes))
	b.WriteString(m.searchInput.View())
	b.WriteString("\n")
	b.WriteString(m.styles.Label.Render("Sort card alphabetically: ") + crit.Sort.String())
	b.WriteString("\n\n")

	if !m.loaded {
		b.WriteString(m.styles.Muted.Render(loadingText))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString("Cards found: " + m.styles.Count.Render(fmt.Sprintf("%d", m.catalog.Len())))
	b.WriteString("\n")

	display := m.catalog.Display()
	start, end := m.listWindow(len(display))
	for i := start; i < end; i++ {
		line := present.Summary(display[i])
		if i == m.listCursor && m.focus == focusList {
			line = m.styles.Selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.focus == focusList && len(display) > 0 {
		b.WriteString(m.styles.Box.Render(strings.TrimRight(present.Card(display[m.listCursor]), "\n")))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Muted.Render("tab: next control • space: toggle • ctrl+s: sort • ctrl+r: reset • ctrl+g: go to route • esc: home"))
	b.WriteString("\n")
	return b.String()
}

// selectorView renders one multi-select row. Options outside the terminal
// width are scrolled so that the cursor stays visible.
func (m Model) selectorView(label string, options, selected []string, cursor int, focused bool) string {
	isSelected := make(map[string]bool, len(selected))
	for _, s := range selected {
		isSelected[s] = true
	}

	items := make([]string, len(options))
	for i, opt := range options {
		mark := "[ ]"
		if isSelected[opt] {
			mark = "[x]"
		}
		item := mark + " " + opt
		if focused && i == cursor {
			item = m.styles.Focused.Render(item)
		}
		items[i] = item
	}

	lbl := m.styles.Label.Render(label + ": ")
	if focused {
		lbl = m.styles.Focused.Render(label + ": ")
	}

	// Show a window of options starting near the cursor
	first := 0
	avail := m.width - len(label) - 2
	for first < cursor {
		width := 0
		for i := first; i <= cursor; i++ {
			width += len([]rune(options[i])) + 6
		}
		if width <= avail {
			break
		}
		first++
	}

	var row []string
	width := 0
	for i := first; i < len(items); i++ {
		w := len([]rune(options[i])) + 6
		if width+w > avail && len(row) > 0 {
			row = append(row, "…")
			break
		}
		row = append(row, items[i])
		width += w
	}
	if first > 0 {
		row = append([]string{"…"}, row...)
	}
	return lbl + strings.Join(row, "  ") + "\n"
}

// listHeight is the number of card rows that fit on screen
func (m Model) listHeight() int {
	h := m.height - 16
	if h < 3 {
		h = 3
	}
	return h
}

// listWindow returns the range of display rows to render
func (m Model) listWindow(n int) (int, int) {
	h := m.listHeight()
	start := 0
	if m.listCursor >= h {
		start = m.listCursor - h + 1
	}
	end := start + h
	if end > n {
		end = n
	}
	return start, end
}
