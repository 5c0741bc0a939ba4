// Copyright (c) 2026 Mealdeck Team
// Mealdeck - food delivery operations consoles
// This source code is licensed under the MIT license found in the LICENSE file.

// Package confirm is a modal yes/no dialog. Views open it before any
// destructive mutation (cancelling an order, taking a restaurant offline)
// and resolve on the emitted message.
package confirm

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mealdeck/mealdeck/internal/i18n"
)

var (
	dialogBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("81")).
			Padding(1, 2).
			Width(60)
	destructiveBoxStyle = dialogBoxStyle.BorderForeground(lipgloss.Color("196"))

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("237")).
			Padding(0, 3).
			MarginTop(1)
	activeButtonStyle = buttonStyle.
				Background(lipgloss.Color("81")).
				Underline(true)
)

// ResolvedMsg reports the operator's choice. Accepted is false for an
// explicit No and for esc/q dismissal.
type ResolvedMsg struct {
	Accepted bool
}

// Model is the dialog state. The zero value is unusable; construct with New.
type Model struct {
	message     string
	destructive bool
	cursor      int // 0 = No, 1 = Yes; No is the safe default
}

// New builds a dialog showing the message. Destructive dialogs render with
// warning colors.
func New(message string, destructive bool) Model {
	return Model{message: message, destructive: destructive}
}

// Update handles dialog keys and emits ResolvedMsg when a choice is made.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "left", "h", "right", "l", "tab":
		m.cursor = 1 - m.cursor
	case "y":
		return m, resolve(true)
	case "n", "q", "esc":
		return m, resolve(false)
	case "enter":
		return m, resolve(m.cursor == 1)
	}
	return m, nil
}

func resolve(accepted bool) tea.Cmd {
	return func() tea.Msg { return ResolvedMsg{Accepted: accepted} }
}

// View renders the dialog box.
func (m Model) View() string {
	no := buttonStyle.Render(i18n.T("confirm.no"))
	yes := buttonStyle.Render(i18n.T("confirm.yes"))
	if m.cursor == 0 {
		no = activeButtonStyle.Render(i18n.T("confirm.no"))
	} else {
		yes = activeButtonStyle.Render(i18n.T("confirm.yes"))
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top, no, strings.Repeat(" ", 4), yes)

	box := dialogBoxStyle
	if m.destructive {
		box = destructiveBoxStyle
	}
	return box.Render(m.message + "\n" + buttons)
}
