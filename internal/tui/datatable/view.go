// Copyright (c) 2026 Mealdeck Team
// Mealdeck - food delivery operations consoles
// This source code is licensed under the MIT license found in the LICENSE file.

package datatable

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mealdeck/mealdeck/internal/i18n"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("81")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true)
	focusedHeaderStyle = headerStyle.Underline(true)
	cursorRowStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("81"))
	subtleStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	statusStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("40"))
)

// pad truncates or right-pads a cell to the column width.
func pad(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		if width <= 1 {
			return string(r[:width])
		}
		return string(r[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(r))
}

// View renders the table: search line, header, body (or loading spinner or
// empty message) and footer.
func (m Model[T, K]) View() string {
	var b strings.Builder

	if m.searchable {
		b.WriteString(m.searchLine())
		b.WriteString("\n")
	}

	b.WriteString(m.headerLine())
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString(m.spinner.View() + " " + subtleStyle.Render(i18n.T("table.loading")))
		b.WriteString("\n")
	default:
		visible := m.VisibleRows()
		if len(visible) == 0 {
			b.WriteString(subtleStyle.Render(m.emptyMessage))
			b.WriteString("\n")
		} else {
			for i, row := range visible {
				b.WriteString(m.rowLine(row, i == m.cursor))
				b.WriteString("\n")
			}
		}
	}

	if footer := m.footerLine(); footer != "" {
		b.WriteString(footer)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model[T, K]) searchLine() string {
	if m.searching {
		return m.search.View()
	}
	if q := m.search.Value(); q != "" {
		return subtleStyle.Render(i18n.T("table.search_active", q))
	}
	return subtleStyle.Render(i18n.T("table.search_hint"))
}

func (m Model[T, K]) headerLine() string {
	var cells []string
	if m.selectable {
		box := "[ ]"
		if m.pageFullySelected() {
			box = "[x]"
		}
		cells = append(cells, headerStyle.Render(box))
	}
	for i, col := range m.columns {
		title := col.Title
		if m.sortKey == col.Key {
			if m.sortDir == Ascending {
				title += " ▲"
			} else {
				title += " ▼"
			}
		}
		style := headerStyle
		if i == m.focusCol {
			style = focusedHeaderStyle
		}
		cells = append(cells, style.Render(pad(title, col.displayWidth())))
	}
	return strings.Join(cells, " ")
}

func (m Model[T, K]) rowLine(row T, isCursor bool) string {
	var cells []string
	if m.selectable {
		box := "[ ]"
		if m.selected[m.identity(row)] {
			box = "[x]"
		}
		cells = append(cells, box)
	}
	for _, col := range m.columns {
		cells = append(cells, pad(col.cellValue(row), col.displayWidth()))
	}
	line := strings.Join(cells, " ")
	if isCursor {
		return cursorRowStyle.Render(line)
	}
	return line
}

// pageFullySelected reports whether every row on the current page is in the
// selection set; this drives the header checkbox state.
func (m Model[T, K]) pageFullySelected() bool {
	visible := m.VisibleRows()
	if len(visible) == 0 {
		return false
	}
	for _, row := range visible {
		if !m.selected[m.identity(row)] {
			return false
		}
	}
	return true
}

func (m Model[T, K]) footerLine() string {
	var parts []string
	// The pager is omitted outright on a single page, not merely disabled.
	if total := m.TotalPages(); total > 1 {
		parts = append(parts, subtleStyle.Render(i18n.T("table.page_status", m.page, total, len(m.data))))
	}
	if m.selectable {
		count := 0
		for _, v := range m.selected {
			if v {
				count++
			}
		}
		if count > 0 {
			parts = append(parts, subtleStyle.Render(i18n.T("table.selected_count", count)))
		}
	}
	if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}
	if len(parts) == 0 {
		return ""
	}
	line := strings.Join(parts, "  ")
	if m.width > lipgloss.Width(line) {
		line += strings.Repeat(" ", m.width-lipgloss.Width(line))
	}
	return line
}
