package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/recall-cli/recall/internal/ui/theme"
)

// MenuItem represents a single item in a navigation menu. Detail is an
// optional right-hand annotation (progress, flame count).
type MenuItem struct {
	Label  string
	Detail string
	Action func() tea.Cmd
}

// Menu is a vertical navigation menu.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a new menu with the given items.
func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Items)-1 {
			m.Selected++
		}
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			if action := m.Items[m.Selected].Action; action != nil {
				return m, action()
			}
		}
	}

	return m, nil
}

// View renders the menu, padding labels so details line up.
func (m Menu) View() string {
	labelWidth := 0
	for _, item := range m.Items {
		if w := lipgloss.Width(item.Label); w > labelWidth {
			labelWidth = w
		}
	}

	var s string
	for i, item := range m.Items {
		line := item.Label
		if item.Detail != "" {
			pad := labelWidth - lipgloss.Width(item.Label) + 3
			for p := 0; p < pad; p++ {
				line += " "
			}
			line += item.Detail
		}
		if i == m.Selected {
			s += theme.Selected.Render("  ▸ "+line) + "\n"
		} else {
			s += theme.Unselected.Render("    "+line) + "\n"
		}
	}
	return s
}
