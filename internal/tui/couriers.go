// Copyright (c) 2026 Mealdeck Team
// Mealdeck - food delivery operations consoles
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mealdeck/mealdeck/internal/geo"
	"github.com/mealdeck/mealdeck/internal/i18n"
	"github.com/mealdeck/mealdeck/internal/model"
	"github.com/mealdeck/mealdeck/internal/query"
	"github.com/mealdeck/mealdeck/internal/tui/datatable"
)

// courierRefreshEvery is the live position poll interval. The poll lives in
// the view; the table component never runs timers of its own.
const courierRefreshEvery = 5 * time.Second

type couriersLoadedMsg struct {
	result query.Result[model.Courier]
	err    error
}

type courierTickMsg struct{}

// couriersModel is the model for the courier console with the live
// map-bounds footer.
type couriersModel struct {
	backend Backend
	table   datatable.Model[model.Courier, string]
	bounds  geo.Bounds

	stale   bool
	staleAt time.Time
	err     error
}

func courierColumns() []datatable.Column[model.Courier] {
	return []datatable.Column[model.Courier]{
		{Key: "id", Title: i18n.T("couriers.header.id"), Width: 8, Sortable: true,
			Accessor: func(c model.Courier) string { return c.ID }},
		{Key: "name", Title: i18n.T("couriers.header.name"), Width: 20, Sortable: true,
			Accessor: func(c model.Courier) string { return c.Name }},
		{Key: "vehicle", Title: i18n.T("couriers.header.vehicle"), Width: 10, Sortable: true,
			Accessor: func(c model.Courier) string { return c.Vehicle }},
		{Key: "status", Title: i18n.T("couriers.header.status"), Width: 12, Sortable: true,
			Accessor: func(c model.Courier) string { return c.Status }},
		{Key: "deliveries", Title: i18n.T("couriers.header.deliveries"), Width: 10, Sortable: true,
			Accessor: func(c model.Courier) string { return strconv.Itoa(c.Deliveries) }},
	}
}

func newCouriersModel(backend Backend, pageSize int) *couriersModel {
	m := &couriersModel{backend: backend}
	m.table = datatable.New(
		func(c model.Courier) string { return c.ID },
		datatable.WithColumns[model.Courier, string](courierColumns()),
		datatable.WithPageSize[model.Courier, string](pageSize),
		datatable.WithEmptyMessage[model.Courier, string](i18n.T("couriers.empty")),
	)
	return m
}

func loadCouriersCmd(b Backend) tea.Cmd {
	return func() tea.Msg {
		res, err := b.Couriers(context.Background())
		return couriersLoadedMsg{result: res, err: err}
	}
}

func courierTickCmd() tea.Cmd {
	return tea.Tick(courierRefreshEvery, func(time.Time) tea.Msg {
		return courierTickMsg{}
	})
}

func (m *couriersModel) Init() tea.Cmd {
	return tea.Batch(m.table.StartLoading(), loadCouriersCmd(m.backend), courierTickCmd())
}

// refitBounds rebuilds the map window from scratch so it shrinks when
// couriers go offline, instead of only ever growing.
func (m *couriersModel) refitBounds(couriers []model.Courier) {
	points := make([]geo.Point, 0, len(couriers))
	for _, c := range couriers {
		if !c.Online() {
			continue
		}
		points = append(points, geo.Point{Lat: c.Lat, Lng: c.Lng})
	}
	m.bounds = geo.FromPoints(points)
}

func (m *couriersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case couriersLoadedMsg:
		m.table.SetLoading(false)
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.stale = msg.result.Stale
		m.staleAt = msg.result.FetchedAt
		m.table.SetData(msg.result.Rows)
		m.refitBounds(msg.result.Rows)
		return m, nil

	case courierTickMsg:
		// Force a refetch so positions move even within the cache TTL.
		m.backend.Invalidate(context.Background(), "couriers")
		return m, tea.Batch(loadCouriersCmd(m.backend), courierTickCmd())

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc":
			return m, backToMenu
		case "r":
			m.backend.Invalidate(context.Background(), "couriers")
			return m, tea.Batch(m.table.StartLoading(), loadCouriersCmd(m.backend))
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *couriersModel) boundsLine() string {
	if m.bounds.Empty() {
		return helpStyle.Render(i18n.T("couriers.bounds_empty"))
	}
	center := m.bounds.Center()
	return helpStyle.Render(i18n.T("couriers.bounds",
		m.bounds.MinLat, m.bounds.MinLng, m.bounds.MaxLat, m.bounds.MaxLng,
		center.Lat, center.Lng))
}

func (m *couriersModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(i18n.T("couriers.title")) + "\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(i18n.T("errors.load", "couriers", m.err)) + "\n")
	}
	if m.stale {
		b.WriteString(specialStyle.Render(i18n.T("dashboard.stale_notice", m.staleAt.Format("15:04:05"))) + "\n")
	}

	b.WriteString(m.table.View())
	b.WriteString(m.boundsLine())
	return b.String()
}
