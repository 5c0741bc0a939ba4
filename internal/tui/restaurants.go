// Copyright (c) 2026 Mealdeck Team
// Mealdeck - food delivery operations consoles
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mealdeck/mealdeck/internal/i18n"
	"github.com/mealdeck/mealdeck/internal/model"
	"github.com/mealdeck/mealdeck/internal/query"
	"github.com/mealdeck/mealdeck/internal/tui/confirm"
	"github.com/mealdeck/mealdeck/internal/tui/datatable"
)

type restaurantsLoadedMsg struct {
	result query.Result[model.Restaurant]
	search string
	err    error
}

type restaurantToggledMsg struct {
	restaurant model.Restaurant
	active     bool
	err        error
}

type restaurantsSearchDebounceMsg struct {
	query string
}

type restaurantsBridge struct {
	query        string
	queryChanged bool
}

// restaurantsModel is the model for the restaurant management console.
type restaurantsModel struct {
	backend Backend
	bridge  *restaurantsBridge
	table   datatable.Model[model.Restaurant, string]

	confirming bool
	dialog     confirm.Model
	pending    model.Restaurant

	status  string
	stale   bool
	staleAt time.Time
	err     error
}

func restaurantColumns() []datatable.Column[model.Restaurant] {
	return []datatable.Column[model.Restaurant]{
		{Key: "id", Title: i18n.T("restaurants.header.id"), Width: 8, Sortable: true,
			Accessor: func(r model.Restaurant) string { return r.ID }},
		{Key: "name", Title: i18n.T("restaurants.header.name"), Width: 24, Sortable: true,
			Accessor: func(r model.Restaurant) string { return r.Name }},
		{Key: "city", Title: i18n.T("restaurants.header.city"), Width: 16, Sortable: true,
			Accessor: func(r model.Restaurant) string { return r.City }},
		{Key: "rating", Title: i18n.T("restaurants.header.rating"), Width: 8, Sortable: true,
			Accessor: func(r model.Restaurant) string { return fmt.Sprintf("%.1f", r.Rating) }},
		{Key: "status", Title: i18n.T("restaurants.header.status"), Width: 10, Sortable: true,
			Accessor: func(r model.Restaurant) string {
				if r.IsActive {
					return i18n.T("restaurants.status.open")
				}
				return i18n.T("restaurants.status.closed")
			}},
	}
}

func newRestaurantsModel(backend Backend, pageSize int) *restaurantsModel {
	bridge := &restaurantsBridge{}
	m := &restaurantsModel{backend: backend, bridge: bridge}
	m.table = datatable.New(
		func(r model.Restaurant) string { return r.ID },
		datatable.WithColumns[model.Restaurant, string](restaurantColumns()),
		datatable.WithPageSize[model.Restaurant, string](pageSize),
		datatable.WithEmptyMessage[model.Restaurant, string](i18n.T("restaurants.empty")),
		datatable.WithSearch[model.Restaurant, string](func(q string) {
			bridge.query = q
			bridge.queryChanged = true
		}),
	)
	return m
}

func loadRestaurantsCmd(b Backend, search string) tea.Cmd {
	return func() tea.Msg {
		res, err := b.Restaurants(context.Background(), search)
		return restaurantsLoadedMsg{result: res, search: search, err: err}
	}
}

func toggleRestaurantCmd(b Backend, r model.Restaurant) tea.Cmd {
	active := !r.IsActive
	return func() tea.Msg {
		err := b.SetRestaurantActive(context.Background(), r.ID, active)
		if err == nil {
			b.Invalidate(context.Background(), "restaurants")
		}
		return restaurantToggledMsg{restaurant: r, active: active, err: err}
	}
}

func (m *restaurantsModel) Init() tea.Cmd {
	return tea.Batch(m.table.StartLoading(), loadRestaurantsCmd(m.backend, ""))
}

func (m *restaurantsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case restaurantsLoadedMsg:
		if msg.search != m.bridge.query {
			return m, nil
		}
		m.table.SetLoading(false)
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.stale = msg.result.Stale
		m.staleAt = msg.result.FetchedAt
		m.table.SetData(msg.result.Rows)
		return m, nil

	case restaurantsSearchDebounceMsg:
		if msg.query != m.bridge.query {
			return m, nil
		}
		return m, tea.Batch(m.table.StartLoading(), loadRestaurantsCmd(m.backend, msg.query))

	case restaurantToggledMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(i18n.T("restaurants.status.toggle_failed", msg.err))
			return m, nil
		}
		state := i18n.T("restaurants.status.closed")
		if msg.active {
			state = i18n.T("restaurants.status.open")
		}
		m.status = successStyle.Render(i18n.T("restaurants.status.toggled", msg.restaurant.Name, state))
		return m, tea.Batch(m.table.StartLoading(), loadRestaurantsCmd(m.backend, m.bridge.query))

	case confirm.ResolvedMsg:
		if !m.confirming {
			return m, nil
		}
		m.confirming = false
		if msg.Accepted {
			return m, toggleRestaurantCmd(m.backend, m.pending)
		}
		m.status = helpStyle.Render(i18n.T("restaurants.status.toggle_aborted"))
		return m, nil

	case tea.KeyMsg:
		if m.confirming {
			var cmd tea.Cmd
			m.dialog, cmd = m.dialog.Update(msg)
			return m, cmd
		}
		m.status = ""
		if !m.table.Searching() {
			switch msg.String() {
			case "q", "esc":
				if m.table.SearchQuery() != "" {
					m.table.ClearSearch()
					break
				}
				return m, backToMenu
			case "r":
				return m, tea.Batch(m.table.StartLoading(), loadRestaurantsCmd(m.backend, m.bridge.query))
			case "t":
				if row, ok := m.table.CursorRow(); ok {
					m.confirming = true
					m.pending = row
					msgID := "restaurants.confirm_disable"
					if !row.IsActive {
						msgID = "restaurants.confirm_enable"
					}
					m.dialog = confirm.New(i18n.T(msgID, row.Name), row.IsActive)
				}
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	cmds = append(cmds, cmd)

	if m.bridge.queryChanged {
		m.bridge.queryChanged = false
		q := m.bridge.query
		cmds = append(cmds, tea.Tick(searchDebounce, func(time.Time) tea.Msg {
			return restaurantsSearchDebounceMsg{query: q}
		}))
	}
	return m, tea.Batch(cmds...)
}

func (m *restaurantsModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(i18n.T("restaurants.title")) + "\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(i18n.T("errors.load", "restaurants", m.err)) + "\n")
	}
	if m.stale {
		b.WriteString(specialStyle.Render(i18n.T("dashboard.stale_notice", m.staleAt.Format("15:04:05"))) + "\n")
	}

	if m.confirming {
		b.WriteString(m.dialog.View())
		return b.String()
	}

	b.WriteString(m.table.View())
	if m.status != "" {
		b.WriteString(m.status + "\n")
	}
	b.WriteString(helpStyle.Render(i18n.T("restaurants.footer_keys")))
	return b.String()
}
