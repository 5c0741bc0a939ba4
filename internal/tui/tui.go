// Copyright (c) 2026 Mealdeck Team
// Mealdeck - food delivery operations consoles
// This source code is licensed under the MIT license found in the LICENSE file.

// package tui provides the terminal operations consoles for Mealdeck.
// This file, tui.go, is the main entry point for the TUI, containing the
// top-level model that acts as a router to all other sub-views.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mealdeck/mealdeck/internal/api"
	"github.com/mealdeck/mealdeck/internal/i18n"
	"github.com/mealdeck/mealdeck/internal/model"
	"github.com/mealdeck/mealdeck/internal/query"
)

// Backend bundles the read path (cached queries) and the write path (direct
// API commands) the views depend on. Tests inject fakes; production wires
// NewBackend.
type Backend interface {
	Orders(ctx context.Context, search string) (query.Result[model.Order], error)
	Restaurants(ctx context.Context, search string) (query.Result[model.Restaurant], error)
	Couriers(ctx context.Context) (query.Result[model.Courier], error)
	Tickets(ctx context.Context) (query.Result[model.Ticket], error)

	CancelOrder(ctx context.Context, id string) error
	SetRestaurantActive(ctx context.Context, id string, active bool) error
	BumpTicket(ctx context.Context, id string) error
	RecallTicket(ctx context.Context, id string) error

	Invalidate(ctx context.Context, prefix string)
}

// liveBackend is the production Backend: reads through the cache, writes
// through the API client.
type liveBackend struct {
	cache *query.Cache
	api   *api.Client
}

// NewBackend wires the cache and API client into the Backend the views use.
func NewBackend(cache *query.Cache, client *api.Client) Backend {
	return &liveBackend{cache: cache, api: client}
}

func (b *liveBackend) Orders(ctx context.Context, search string) (query.Result[model.Order], error) {
	return b.cache.Orders(ctx, search)
}

func (b *liveBackend) Restaurants(ctx context.Context, search string) (query.Result[model.Restaurant], error) {
	return b.cache.Restaurants(ctx, search)
}

func (b *liveBackend) Couriers(ctx context.Context) (query.Result[model.Courier], error) {
	return b.cache.Couriers(ctx)
}

func (b *liveBackend) Tickets(ctx context.Context) (query.Result[model.Ticket], error) {
	return b.cache.Tickets(ctx)
}

func (b *liveBackend) CancelOrder(ctx context.Context, id string) error {
	return b.api.CancelOrder(ctx, id)
}

func (b *liveBackend) SetRestaurantActive(ctx context.Context, id string, active bool) error {
	return b.api.SetRestaurantActive(ctx, id, active)
}

func (b *liveBackend) BumpTicket(ctx context.Context, id string) error {
	return b.api.BumpTicket(ctx, id)
}

func (b *liveBackend) RecallTicket(ctx context.Context, id string) error {
	return b.api.RecallTicket(ctx, id)
}

func (b *liveBackend) Invalidate(ctx context.Context, prefix string) {
	b.cache.Invalidate(ctx, prefix)
}

// A message to signal that we should go back to the main menu.
type backToMenuMsg struct{}

func backToMenu() tea.Msg { return backToMenuMsg{} }

// viewState represents which part of the UI is currently active.
type viewState int

const (
	menuView viewState = iota
	ordersView
	restaurantsView
	couriersView
	kitchenView
	dashboardView
)

// menuModel holds the state for the main menu.
type menuModel struct {
	choices []string
	cursor  int
}

// mainModel is the top-level model for the TUI. It acts as a state machine
// and router, delegating updates and view rendering to the currently active
// sub-model.
type mainModel struct {
	backend  Backend
	pageSize int

	state       viewState
	menu        menuModel
	orders      *ordersModel
	restaurants *restaurantsModel
	couriers    *couriersModel
	kitchen     *kitchenModel
	dashboard   *dashboardModel

	width  int
	height int
}

func initialModel(backend Backend, pageSize int) mainModel {
	return mainModel{
		backend:  backend,
		pageSize: pageSize,
		state:    menuView,
		menu: menuModel{
			choices: []string{
				i18n.T("menu.orders"),
				i18n.T("menu.restaurants"),
				i18n.T("menu.couriers"),
				i18n.T("menu.kitchen"),
				i18n.T("menu.dashboard"),
				i18n.T("menu.quit"),
			},
		},
	}
}

func (m mainModel) Init() tea.Cmd {
	return nil
}

// Update is the main message loop. It handles global events and delegates
// the rest to the active sub-model.
func (m mainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	if _, ok := msg.(backToMenuMsg); ok {
		m.state = menuView
		return m, nil
	}

	switch m.state {
	case ordersView:
		var next tea.Model
		next, cmd = m.orders.Update(msg)
		m.orders = next.(*ordersModel)
		return m, cmd

	case restaurantsView:
		var next tea.Model
		next, cmd = m.restaurants.Update(msg)
		m.restaurants = next.(*restaurantsModel)
		return m, cmd

	case couriersView:
		var next tea.Model
		next, cmd = m.couriers.Update(msg)
		m.couriers = next.(*couriersModel)
		return m, cmd

	case kitchenView:
		var next tea.Model
		next, cmd = m.kitchen.Update(msg)
		m.kitchen = next.(*kitchenModel)
		return m, cmd

	case dashboardView:
		var next tea.Model
		next, cmd = m.dashboard.Update(msg)
		m.dashboard = next.(*dashboardModel)
		return m, cmd
	}

	return m.updateMenu(msg)
}

func (m mainModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.menu.cursor > 0 {
			m.menu.cursor--
		}
	case "down", "j":
		if m.menu.cursor < len(m.menu.choices)-1 {
			m.menu.cursor++
		}
	case "enter":
		switch m.menu.cursor {
		case 0:
			m.state = ordersView
			m.orders = newOrdersModel(m.backend, m.pageSize)
			return m, m.orders.Init()
		case 1:
			m.state = restaurantsView
			m.restaurants = newRestaurantsModel(m.backend, m.pageSize)
			return m, m.restaurants.Init()
		case 2:
			m.state = couriersView
			m.couriers = newCouriersModel(m.backend, m.pageSize)
			return m, m.couriers.Init()
		case 3:
			m.state = kitchenView
			m.kitchen = newKitchenModel(m.backend)
			return m, m.kitchen.Init()
		case 4:
			m.state = dashboardView
			m.dashboard = newDashboardModel(m.backend)
			return m, m.dashboard.Init()
		case 5:
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m mainModel) View() string {
	switch m.state {
	case ordersView:
		return docStyle.Render(m.orders.View())
	case restaurantsView:
		return docStyle.Render(m.restaurants.View())
	case couriersView:
		return docStyle.Render(m.couriers.View())
	case kitchenView:
		return docStyle.Render(m.kitchen.View())
	case dashboardView:
		return docStyle.Render(m.dashboard.View())
	}

	var b strings.Builder
	b.WriteString(mainTitleStyle.Render(i18n.T("app.title")) + "\n")
	b.WriteString(helpStyle.Render(i18n.T("app.subtitle")) + "\n\n")
	for i, choice := range m.menu.choices {
		cursor := "  "
		style := itemStyle
		if i == m.menu.cursor {
			cursor = "▸ "
			style = selectedItemStyle
		}
		b.WriteString(fmt.Sprintf("%s%s\n", cursor, style.Render(choice)))
	}
	b.WriteString("\n" + helpStyle.Render(i18n.T("menu.help")))
	return docStyle.Render(b.String())
}

// Run starts the interactive console suite.
func Run(backend Backend, pageSize int) error {
	p := tea.NewProgram(initialModel(backend, pageSize), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
