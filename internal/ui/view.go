package ui

import (
	"fmt"
	"math"
	"path"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/marquee-tui/marquee/internal/ui/tree"
)

const (
	// tileBaseWidth is the interior width of a fully grown tile; the
	// animation scales it down to 90% at rest.
	tileBaseWidth = 16
	tileHeight    = 3
	// rowBlockHeight is one row's rendered footprint: tile interior plus
	// border rows, a title line, and a blank spacer.
	rowBlockHeight = tileHeight + 2 + 2
	headerFooter   = 3
)

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(styles.Header.Render("marquee"))
	b.WriteString("\n\n")

	switch {
	case m.tree.Err != nil:
		b.WriteString(styles.Error.Render(fmt.Sprintf("catalog unavailable: %v", m.tree.Err)))
		b.WriteString("\n")
	case !m.tree.Loaded():
		b.WriteString(m.spin.View())
		b.WriteString(styles.Loading.Render(" loading catalog"))
		b.WriteString("\n")
	default:
		m.viewRows(&b)
	}

	b.WriteString("\n")
	b.WriteString(m.viewFooter())
	return b.String()
}

func (m *Model) viewRows(b *strings.Builder) {
	rows := m.tree.Rows()
	if len(rows) == 0 {
		b.WriteString(styles.Info.Render("(no collections)"))
		b.WriteString("\n")
		return
	}
	start := m.rowOffset
	if start < 0 {
		start = 0
	}
	if start >= len(rows) {
		start = len(rows) - 1
	}
	end := len(rows)
	if maxVisible := m.maxVisibleRows(); maxVisible > 0 && start+maxVisible < end {
		end = start + maxVisible
	}
	for _, row := range rows[start:end] {
		b.WriteString(styles.RowTitle.Render(row.Meta.Title))
		b.WriteString("\n")
		b.WriteString(m.viewRowBody(row))
		b.WriteString("\n")
	}
}

func (m *Model) viewRowBody(row *tree.Row) string {
	switch {
	case row.Err != nil:
		return styles.Error.Render(fmt.Sprintf("failed to load: %v", row.Err)) + "\n"
	case !row.Loaded():
		return m.spin.View() + styles.Loading.Render(" loading") + "\n"
	case len(row.Items()) == 0:
		return styles.Info.Render("(empty)") + "\n"
	}

	items := row.Items()
	start, end := m.visibleColumns(row)
	cells := make([]string, 0, end-start)
	for _, it := range items[start:end] {
		cells = append(cells, m.viewTile(it))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, cells...) + "\n"
}

// visibleColumns returns the half-open column window for a row, keeping
// the cursor's column on screen when the cursor is on this row.
func (m *Model) visibleColumns(row *tree.Row) (int, int) {
	total := len(row.Items())
	maxCols := m.maxVisibleCols()
	if maxCols <= 0 || total <= maxCols {
		return 0, total
	}
	start := 0
	if m.cursor.Row == row.Index && m.cursor.Col >= maxCols {
		start = m.cursor.Col - maxCols + 1
	}
	if start > total-maxCols {
		start = total - maxCols
	}
	return start, start + maxCols
}

func (m *Model) viewTile(it *tree.Item) string {
	inner := int(math.Round(it.Scale() * tileBaseWidth))
	label := truncate.String(tileLabel(it.ImageURL), uint(inner))
	style := styles.Tile
	if it.Selected() {
		style = styles.SelectedTile
	}
	return style.Width(inner).Height(tileHeight).Render(label)
}

func (m *Model) viewFooter() string {
	if m.searching {
		return styles.SearchPrompt.Render("/") + styles.SearchQuery.Render(m.query)
	}
	hints := "↑↓←→ move · / jump · q quit"
	if m.verbose {
		hints = fmt.Sprintf("%s · cursor (%d,%d)", hints, m.cursor.Row, m.cursor.Col)
	}
	return styles.Footer.Render(hints)
}

func (m *Model) maxVisibleRows() int {
	if m.height <= 0 {
		return 0
	}
	n := (m.height - headerFooter) / rowBlockHeight
	if n < 1 {
		n = 1
	}
	return n
}

func (m *Model) maxVisibleCols() int {
	if m.width <= 0 {
		return 0
	}
	n := m.width / (tileBaseWidth + 2)
	if n < 1 {
		n = 1
	}
	return n
}

// tileLabel derives a short human label from a tile URL: the last path
// segment without its extension.
func tileLabel(rawURL string) string {
	u := rawURL
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	base := path.Base(u)
	base = strings.TrimSuffix(base, path.Ext(base))
	if base == "" || base == "." || base == "/" {
		return rawURL
	}
	return base
}
