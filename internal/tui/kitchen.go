// Copyright (c) 2026 Mealdeck Team
// Mealdeck - food delivery operations consoles
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mealdeck/mealdeck/internal/i18n"
	"github.com/mealdeck/mealdeck/internal/model"
	"github.com/mealdeck/mealdeck/internal/query"
)

// ticketRefreshEvery keeps the board close to real time without the
// component owning any timer; the view schedules all polling.
const ticketRefreshEvery = 3 * time.Second

type ticketsLoadedMsg struct {
	result query.Result[model.Ticket]
	err    error
}

type ticketMovedMsg struct {
	id     string
	lane   string
	recall bool
	err    error
}

type kitchenTickMsg struct{}

// kitchenKeyMap is the keyboard-shortcut set of the display board. Digits
// focus a ticket in the focused lane; bump/recall move it between lanes.
type kitchenKeyMap struct {
	Lane   key.Binding
	Bump   key.Binding
	Recall key.Binding
	Up     key.Binding
	Down   key.Binding
	Back   key.Binding
}

func defaultKitchenKeyMap() kitchenKeyMap {
	return kitchenKeyMap{
		Lane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next lane"),
		),
		Bump: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "bump ticket"),
		),
		Recall: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "recall ticket"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "ticket up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "ticket down"),
		),
		Back: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "back"),
		),
	}
}

var kitchenLanes = []string{model.TicketLaneNew, model.TicketLanePreparing, model.TicketLaneReady}

// kitchenModel is the model for the kitchen display board.
type kitchenModel struct {
	backend Backend
	keys    kitchenKeyMap

	tickets []model.Ticket
	lane    int // focused lane index into kitchenLanes
	cursor  int // focused ticket within the lane

	status  string
	stale   bool
	staleAt time.Time
	err     error
}

func newKitchenModel(backend Backend) *kitchenModel {
	return &kitchenModel{backend: backend, keys: defaultKitchenKeyMap()}
}

func loadTicketsCmd(b Backend) tea.Cmd {
	return func() tea.Msg {
		res, err := b.Tickets(context.Background())
		return ticketsLoadedMsg{result: res, err: err}
	}
}

func kitchenTickCmd() tea.Cmd {
	return tea.Tick(ticketRefreshEvery, func(time.Time) tea.Msg {
		return kitchenTickMsg{}
	})
}

func moveTicketCmd(b Backend, t model.Ticket, recall bool) tea.Cmd {
	return func() tea.Msg {
		var err error
		if recall {
			err = b.RecallTicket(context.Background(), t.ID)
		} else {
			err = b.BumpTicket(context.Background(), t.ID)
		}
		if err == nil {
			b.Invalidate(context.Background(), "tickets")
		}
		return ticketMovedMsg{id: t.ID, lane: t.Lane, recall: recall, err: err}
	}
}

func (m *kitchenModel) Init() tea.Cmd {
	return tea.Batch(loadTicketsCmd(m.backend), kitchenTickCmd())
}

// laneTickets returns the tickets of one lane, oldest first.
func (m *kitchenModel) laneTickets(lane string) []model.Ticket {
	var out []model.Ticket
	for _, t := range m.tickets {
		if t.Lane == lane {
			out = append(out, t)
		}
	}
	return out
}

// focusedTicket returns the ticket under the cursor, if any.
func (m *kitchenModel) focusedTicket() (model.Ticket, bool) {
	lane := m.laneTickets(kitchenLanes[m.lane])
	if m.cursor < 0 || m.cursor >= len(lane) {
		return model.Ticket{}, false
	}
	return lane[m.cursor], true
}

func (m *kitchenModel) clampCursor() {
	lane := m.laneTickets(kitchenLanes[m.lane])
	if m.cursor >= len(lane) {
		m.cursor = len(lane) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *kitchenModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ticketsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.tickets = msg.result.Rows
		m.stale = msg.result.Stale
		m.staleAt = msg.result.FetchedAt
		m.clampCursor()
		return m, nil

	case kitchenTickMsg:
		m.backend.Invalidate(context.Background(), "tickets")
		return m, tea.Batch(loadTicketsCmd(m.backend), kitchenTickCmd())

	case ticketMovedMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(i18n.T("kitchen.status.move_failed", msg.err))
			return m, nil
		}
		if msg.recall {
			m.status = successStyle.Render(i18n.T("kitchen.status.recalled", msg.id, msg.lane))
		} else {
			m.status = successStyle.Render(i18n.T("kitchen.status.bumped", msg.id, msg.lane))
		}
		return m, loadTicketsCmd(m.backend)

	case tea.KeyMsg:
		m.status = ""
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, backToMenu

		case key.Matches(msg, m.keys.Lane):
			m.lane = (m.lane + 1) % len(kitchenLanes)
			m.cursor = 0

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.laneTickets(kitchenLanes[m.lane]))-1 {
				m.cursor++
			}

		case key.Matches(msg, m.keys.Bump):
			if t, ok := m.focusedTicket(); ok && t.Lane != model.TicketLaneReady {
				return m, moveTicketCmd(m.backend, t, false)
			}

		case key.Matches(msg, m.keys.Recall):
			if t, ok := m.focusedTicket(); ok && t.Lane != model.TicketLaneNew {
				return m, moveTicketCmd(m.backend, t, true)
			}

		default:
			// Digit shortcuts jump straight to the Nth ticket of the lane.
			s := msg.String()
			if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
				idx := int(s[0] - '1')
				if idx < len(m.laneTickets(kitchenLanes[m.lane])) {
					m.cursor = idx
				}
			}
		}
	}
	return m, nil
}

func laneTitle(lane string) string {
	switch lane {
	case model.TicketLaneNew:
		return i18n.T("kitchen.lane.new")
	case model.TicketLanePreparing:
		return i18n.T("kitchen.lane.preparing")
	default:
		return i18n.T("kitchen.lane.ready")
	}
}

func (m *kitchenModel) renderLane(laneIdx int) string {
	lane := kitchenLanes[laneIdx]
	tickets := m.laneTickets(lane)

	var b strings.Builder
	b.WriteString(laneTitleStyle.Render(laneTitle(lane)) + "\n")
	for i, t := range tickets {
		marker := "  "
		if laneIdx == m.lane && i == m.cursor {
			marker = "▸ "
		}
		age := time.Since(t.OpenedAt).Round(time.Minute)
		line := fmt.Sprintf("%s%d. %s (%s)", marker, i+1, t.OrderID, age)
		if laneIdx == m.lane && i == m.cursor {
			line = selectedItemStyle.Render(line)
		}
		b.WriteString(line + "\n")
		for _, item := range t.Items {
			b.WriteString("     " + helpStyle.Render(item) + "\n")
		}
	}
	return laneStyle.Render(b.String())
}

func (m *kitchenModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(i18n.T("kitchen.title")) + "\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(i18n.T("errors.load", "tickets", m.err)) + "\n")
	}
	if m.stale {
		b.WriteString(specialStyle.Render(i18n.T("dashboard.stale_notice", m.staleAt.Format("15:04:05"))) + "\n")
	}

	if len(m.tickets) == 0 {
		b.WriteString(helpStyle.Render(i18n.T("kitchen.empty")) + "\n")
	} else {
		lanes := make([]string, 0, len(kitchenLanes))
		for i := range kitchenLanes {
			lanes = append(lanes, m.renderLane(i))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, lanes...) + "\n")
	}

	if m.status != "" {
		b.WriteString(m.status + "\n")
	}
	b.WriteString(helpStyle.Render(i18n.T("kitchen.help")))
	return b.String()
}
