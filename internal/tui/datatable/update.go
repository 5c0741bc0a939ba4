// Copyright (c) 2026 Mealdeck Team
// Mealdeck - food delivery operations consoles
// This source code is licensed under the MIT license found in the LICENSE file.

package datatable

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mealdeck/mealdeck/internal/i18n"
)

// StartLoading switches the table into loading mode and returns the spinner
// tick command to animate it.
func (m *Model[T, K]) StartLoading() tea.Cmd {
	m.loading = true
	return m.spinner.Tick
}

// Update reacts to key and spinner messages. It follows the bubbles
// component convention: value receiver, returns the successor model.
func (m Model[T, K]) Update(msg tea.Msg) (Model[T, K], tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		m.status = ""
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

// updateSearch routes keys into the search input. Every change of the input
// value is forwarded verbatim through onSearch; the data is never filtered
// here.
func (m Model[T, K]) updateSearch(msg tea.KeyMsg) (Model[T, K], tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.fireSearch()
		}
		return m, nil
	case tea.KeyEnter:
		// Keep the query, leave input mode.
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.fireSearch()
	}
	return m, cmd
}

func (m *Model[T, K]) fireSearch() {
	if m.onSearch != nil {
		m.onSearch(m.search.Value())
	}
}

func (m Model[T, K]) updateKeys(msg tea.KeyMsg) (Model[T, K], tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		if m.searchable {
			m.searching = true
			return m, m.search.Focus()
		}

	case key.Matches(msg, m.keys.CursorUp):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.CursorDown):
		if m.cursor < len(m.VisibleRows())-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.ColumnLeft):
		if m.focusCol > 0 {
			m.focusCol--
		}

	case key.Matches(msg, m.keys.ColumnRight):
		if m.focusCol < len(m.columns)-1 {
			m.focusCol++
		}

	case key.Matches(msg, m.keys.ToggleSort):
		m.toggleSort()

	case key.Matches(msg, m.keys.FirstPage):
		m.gotoPage(1)

	case key.Matches(msg, m.keys.PrevPage):
		m.gotoPage(m.page - 1)

	case key.Matches(msg, m.keys.NextPage):
		m.gotoPage(m.page + 1)

	case key.Matches(msg, m.keys.LastPage):
		m.gotoPage(m.TotalPages())

	case key.Matches(msg, m.keys.ToggleRow):
		if m.selectable {
			m.toggleRow()
		}

	case key.Matches(msg, m.keys.TogglePage):
		if m.selectable {
			m.togglePage()
		}

	case key.Matches(msg, m.keys.Activate):
		if row, ok := m.CursorRow(); ok && m.onActivate != nil {
			m.onActivate(row)
		}

	case key.Matches(msg, m.keys.CopyID):
		if row, ok := m.CursorRow(); ok {
			id := idString(m.identity(row))
			// Best effort; a headless terminal has no clipboard.
			_ = clipboard.WriteAll(id)
			m.status = i18n.T("table.copied", id)
		}
	}
	return m, nil
}

// idString renders a row ID for the clipboard and footer notices.
func idString[K comparable](id K) string {
	return fmt.Sprintf("%v", id)
}
