package ui

import (
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/marquee-tui/marquee/internal/logging/events"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.searching {
		return m.handleSearchKey(keyMsg)
	}
	switch keyMsg.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case "/":
		m.searching = true
		m.query = ""
		return nil
	case "up":
		m.cursor.Up(m.tree)
	case "down":
		m.cursor.Down(m.tree)
	case "left":
		m.cursor.Left(m.tree)
	case "right":
		m.cursor.Right(m.tree)
	default:
		return nil
	}
	events.UI.Cursor(m.cursor.Row, m.cursor.Col)
	return m.broadcastCursor()
}

// broadcastCursor delivers the cursor to every item in the tree snapshot
// before any later input event is processed; the broadcast and any
// resulting animation scheduling happen inside this one handling step.
func (m *Model) broadcastCursor() tea.Cmd {
	m.syncViewport()
	if m.tree.Broadcast(m.cursor.Row, m.cursor.Col) {
		return m.startAnimation()
	}
	return nil
}

func (m *Model) handleSearchKey(keyMsg tea.KeyMsg) tea.Cmd {
	switch keyMsg.String() {
	case "esc", "ctrl+c":
		m.searching = false
		m.query = ""
		return nil
	case "enter":
		m.searching = false
		return m.jumpToQuery()
	case "backspace":
		if len(m.query) > 0 {
			runes := []rune(m.query)
			m.query = string(runes[:len(runes)-1])
		}
		return nil
	}
	if keyMsg.Type == tea.KeyRunes {
		m.query += string(keyMsg.Runes)
	}
	return nil
}

// jumpToQuery fuzzy-matches the query against the loaded row titles and
// moves the cursor to the best match's first item.
func (m *Model) jumpToQuery() tea.Cmd {
	query := m.query
	m.query = ""
	if query == "" {
		return nil
	}
	rows := m.tree.Rows()
	titles := make([]string, len(rows))
	for i, row := range rows {
		titles[i] = row.Meta.Title
	}
	ranks := fuzzy.RankFindNormalizedFold(query, titles)
	if len(ranks) == 0 {
		return nil
	}
	sort.Sort(ranks)
	best := ranks[0].OriginalIndex
	m.cursor.MoveTo(best, 0)
	events.UI.Jump(query, best)
	return m.broadcastCursor()
}

// syncViewport keeps the cursor row inside the visible row window.
func (m *Model) syncViewport() {
	maxVisible := m.maxVisibleRows()
	if maxVisible <= 0 {
		m.rowOffset = 0
		return
	}
	if m.rowOffset < 0 {
		m.rowOffset = 0
	}
	if m.cursor.Row < m.rowOffset {
		m.rowOffset = m.cursor.Row
	}
	if m.cursor.Row > m.rowOffset+maxVisible-1 {
		m.rowOffset = m.cursor.Row - maxVisible + 1
	}
	if last := m.tree.RowCount() - 1; last >= 0 && m.rowOffset > last {
		m.rowOffset = last
	}
}
