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
	"github.com/mealdeck/mealdeck/internal/export"
	"github.com/mealdeck/mealdeck/internal/i18n"
	"github.com/mealdeck/mealdeck/internal/model"
	"github.com/mealdeck/mealdeck/internal/query"
	"github.com/mealdeck/mealdeck/internal/tui/confirm"
	"github.com/mealdeck/mealdeck/internal/tui/datatable"
)

// searchDebounce is how long the view waits after the last keystroke before
// asking the backend. The table forwards every keystroke; timing policy is
// the view's job.
const searchDebounce = 300 * time.Millisecond

type ordersLoadedMsg struct {
	result query.Result[model.Order]
	search string
	err    error
}

type orderCancelledMsg struct {
	id  string
	err error
}

type ordersExportedMsg struct {
	path string
	rows int
	err  error
}

type ordersSearchDebounceMsg struct {
	query string
}

// ordersBridge carries the state the table component hands back through its
// synchronous callbacks. The view owns it; the table only writes to it.
type ordersBridge struct {
	selected     map[string]bool
	query        string
	queryChanged bool
	activated    *model.Order
}

// ordersModel is the model for the orders console.
type ordersModel struct {
	backend Backend
	bridge  *ordersBridge
	table   datatable.Model[model.Order, string]

	confirming bool
	dialog     confirm.Model
	pending    model.Order

	rows    []model.Order
	status  string
	stale   bool
	staleAt time.Time
	err     error
}

func money(cents int, currency string) string {
	return fmt.Sprintf("%s %d.%02d", currency, cents/100, cents%100)
}

func orderColumns() []datatable.Column[model.Order] {
	return []datatable.Column[model.Order]{
		{Key: "id", Title: i18n.T("orders.header.id"), Width: 10, Sortable: true,
			Accessor: func(o model.Order) string { return o.ID }},
		{Key: "restaurant", Title: i18n.T("orders.header.restaurant"), Width: 22, Sortable: true,
			Accessor: func(o model.Order) string { return o.Restaurant }},
		{Key: "courier", Title: i18n.T("orders.header.courier"), Width: 16, Sortable: true,
			Accessor: func(o model.Order) string { return o.Courier }},
		{Key: "status", Title: i18n.T("orders.header.status"), Width: 12, Sortable: true,
			Accessor: func(o model.Order) string { return o.Status }},
		{Key: "total", Title: i18n.T("orders.header.total"), Width: 12, Sortable: true,
			Accessor: func(o model.Order) string { return money(o.TotalCents, o.Currency) }},
		{Key: "placed", Title: i18n.T("orders.header.placed"), Width: 17, Sortable: true,
			Accessor: func(o model.Order) string { return o.PlacedAt.Format("2006-01-02 15:04") }},
	}
}

func newOrdersModel(backend Backend, pageSize int) *ordersModel {
	bridge := &ordersBridge{selected: map[string]bool{}}
	m := &ordersModel{
		backend: backend,
		bridge:  bridge,
	}
	m.table = datatable.New(
		func(o model.Order) string { return o.ID },
		datatable.WithColumns[model.Order, string](orderColumns()),
		datatable.WithPageSize[model.Order, string](pageSize),
		datatable.WithEmptyMessage[model.Order, string](i18n.T("orders.empty")),
		datatable.WithSelection[model.Order, string](bridge.selected, func(s map[string]bool) {
			bridge.selected = s
		}),
		datatable.WithSearch[model.Order, string](func(q string) {
			bridge.query = q
			bridge.queryChanged = true
		}),
		datatable.WithOnActivate[model.Order, string](func(o model.Order) {
			bridge.activated = &o
		}),
	)
	return m
}

func loadOrdersCmd(b Backend, search string) tea.Cmd {
	return func() tea.Msg {
		res, err := b.Orders(context.Background(), search)
		return ordersLoadedMsg{result: res, search: search, err: err}
	}
}

func cancelOrderCmd(b Backend, id string) tea.Cmd {
	return func() tea.Msg {
		err := b.CancelOrder(context.Background(), id)
		if err == nil {
			b.Invalidate(context.Background(), "orders")
		}
		return orderCancelledMsg{id: id, err: err}
	}
}

func exportOrdersCmd(orders []model.Order, path string) tea.Cmd {
	return func() tea.Msg {
		t := export.Table{
			Headers: []string{"id", "restaurant", "courier", "status", "total", "placed_at"},
		}
		for _, o := range orders {
			t.Rows = append(t.Rows, []string{
				o.ID, o.Restaurant, o.Courier, o.Status,
				money(o.TotalCents, o.Currency),
				o.PlacedAt.Format(time.RFC3339),
			})
		}
		err := export.WriteFile(path, t)
		return ordersExportedMsg{path: path, rows: len(orders), err: err}
	}
}

func (m *ordersModel) Init() tea.Cmd {
	return tea.Batch(m.table.StartLoading(), loadOrdersCmd(m.backend, ""))
}

func (m *ordersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case ordersLoadedMsg:
		if msg.search != m.bridge.query {
			// A newer query superseded this fetch.
			return m, nil
		}
		m.table.SetLoading(false)
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.rows = msg.result.Rows
		m.stale = msg.result.Stale
		m.staleAt = msg.result.FetchedAt
		m.table.SetData(msg.result.Rows)
		return m, nil

	case ordersSearchDebounceMsg:
		// Only the latest scheduled query triggers a fetch.
		if msg.query != m.bridge.query {
			return m, nil
		}
		return m, tea.Batch(m.table.StartLoading(), loadOrdersCmd(m.backend, msg.query))

	case orderCancelledMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(i18n.T("orders.status.cancel_failed", msg.err))
			return m, nil
		}
		m.status = successStyle.Render(i18n.T("orders.status.cancelled", msg.id))
		// A cancelled order has no business staying selected for export.
		delete(m.bridge.selected, msg.id)
		m.table.SetSelected(m.bridge.selected)
		return m, tea.Batch(m.table.StartLoading(), loadOrdersCmd(m.backend, m.bridge.query))

	case ordersExportedMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(i18n.T("orders.status.export_failed", msg.err))
		} else {
			m.status = successStyle.Render(i18n.T("orders.status.exported", msg.rows, msg.path))
		}
		return m, nil

	case confirm.ResolvedMsg:
		if !m.confirming {
			return m, nil
		}
		m.confirming = false
		if msg.Accepted {
			return m, cancelOrderCmd(m.backend, m.pending.ID)
		}
		m.status = helpStyle.Render(i18n.T("orders.status.cancel_aborted"))
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
				return m, tea.Batch(m.table.StartLoading(), loadOrdersCmd(m.backend, m.bridge.query))
			case "x":
				if row, ok := m.table.CursorRow(); ok && row.Open() {
					m.confirming = true
					m.pending = row
					m.dialog = confirm.New(i18n.T("orders.confirm_cancel", row.ID), true)
					return m, nil
				}
				return m, nil
			case "e":
				selected := m.selectedOrders()
				if len(selected) == 0 {
					m.status = helpStyle.Render(i18n.T("orders.status.nothing_selected"))
					return m, nil
				}
				path := fmt.Sprintf("orders-%s.csv", time.Now().Format("20060102-150405"))
				return m, exportOrdersCmd(selected, path)
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	cmds = append(cmds, cmd)

	if m.bridge.activated != nil {
		m.status = helpStyle.Render(orderSummary(*m.bridge.activated))
		m.bridge.activated = nil
	}
	if m.bridge.queryChanged {
		m.bridge.queryChanged = false
		q := m.bridge.query
		cmds = append(cmds, tea.Tick(searchDebounce, func(time.Time) tea.Msg {
			return ordersSearchDebounceMsg{query: q}
		}))
	}
	return m, tea.Batch(cmds...)
}

// selectedOrders returns the selected rows in their current data order.
func (m *ordersModel) selectedOrders() []model.Order {
	var out []model.Order
	for _, o := range m.rows {
		if m.bridge.selected[o.ID] {
			out = append(out, o)
		}
	}
	return out
}

// orderSummary is the one-line detail shown when a row is activated.
func orderSummary(o model.Order) string {
	if len(o.Items) == 0 {
		return fmt.Sprintf("%s · %s · %s", o.ID, o.Restaurant, money(o.TotalCents, o.Currency))
	}
	parts := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		parts = append(parts, fmt.Sprintf("%d× %s", it.Quantity, it.Name))
	}
	return fmt.Sprintf("%s: %s", o.ID, strings.Join(parts, ", "))
}

func (m *ordersModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(i18n.T("orders.title")) + "\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(i18n.T("errors.load", "orders", m.err)) + "\n")
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
	b.WriteString(helpStyle.Render(i18n.T("orders.footer_keys")))
	return b.String()
}
