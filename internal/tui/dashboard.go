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
)

// dashboardData holds the aggregate counters shown on the overview screen.
type dashboardData struct {
	openOrders        int
	activeRestaurants int
	couriersOnline    int
	stale             bool
	staleAt           time.Time
	err               error
}

type dashboardDataMsg struct {
	data dashboardData
}

// dashboardModel is the model for the overview console.
type dashboardModel struct {
	backend Backend
	data    dashboardData
	loaded  bool
}

func newDashboardModel(backend Backend) *dashboardModel {
	return &dashboardModel{backend: backend}
}

// refreshDashboardCmd gathers counts across the three read paths. Any
// single failure surfaces as the view error; partial counts still render.
func refreshDashboardCmd(b Backend) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var d dashboardData

		orders, err := b.Orders(ctx, "")
		if err != nil {
			d.err = err
			return dashboardDataMsg{data: d}
		}
		for _, o := range orders.Rows {
			if o.Open() {
				d.openOrders++
			}
		}
		d.stale = orders.Stale
		d.staleAt = orders.FetchedAt

		restaurants, err := b.Restaurants(ctx, "")
		if err != nil {
			d.err = err
			return dashboardDataMsg{data: d}
		}
		for _, r := range restaurants.Rows {
			if r.IsActive {
				d.activeRestaurants++
			}
		}
		d.stale = d.stale || restaurants.Stale

		couriers, err := b.Couriers(ctx)
		if err != nil {
			d.err = err
			return dashboardDataMsg{data: d}
		}
		for _, c := range couriers.Rows {
			if c.Online() {
				d.couriersOnline++
			}
		}
		d.stale = d.stale || couriers.Stale

		return dashboardDataMsg{data: d}
	}
}

func (m *dashboardModel) Init() tea.Cmd {
	return refreshDashboardCmd(m.backend)
}

func (m *dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		m.data = msg.data
		m.loaded = true
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc":
			return m, backToMenu
		case "r":
			return m, refreshDashboardCmd(m.backend)
		}
	}
	return m, nil
}

func (m *dashboardModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(i18n.T("dashboard.title")) + "\n\n")

	if m.data.err != nil {
		b.WriteString(errorStyle.Render(i18n.T("errors.load", "dashboard", m.data.err)) + "\n")
	}
	if !m.loaded {
		b.WriteString(helpStyle.Render(i18n.T("table.loading")) + "\n")
		return b.String()
	}
	if m.data.stale {
		b.WriteString(specialStyle.Render(i18n.T("dashboard.stale_notice", m.data.staleAt.Format("15:04:05"))) + "\n")
	}

	b.WriteString(fmt.Sprintf("%s  %s\n", statusMessageStyle.Render(fmt.Sprintf("%3d", m.data.openOrders)), i18n.T("dashboard.open_orders")))
	b.WriteString(fmt.Sprintf("%s  %s\n", statusMessageStyle.Render(fmt.Sprintf("%3d", m.data.activeRestaurants)), i18n.T("dashboard.active_restaurants")))
	b.WriteString(fmt.Sprintf("%s  %s\n", statusMessageStyle.Render(fmt.Sprintf("%3d", m.data.couriersOnline)), i18n.T("dashboard.couriers_online")))

	b.WriteString("\n" + helpStyle.Render("(r: refresh, q: back)"))
	return b.String()
}
