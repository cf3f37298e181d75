package styles

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmModel is a yes/no dialog. It defaults to "No" since every
// question it asks destroys data.
type ConfirmModel struct {
	Message   string
	Detail    string
	Yes       bool
	Confirmed bool
	Canceled  bool
	theme     *Theme
}

// ConfirmKeyMap defines keybindings for the confirm dialog.
type ConfirmKeyMap struct {
	Yes     key.Binding
	No      key.Binding
	Toggle  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeyMap returns the default keybindings.
func DefaultConfirmKeyMap() ConfirmKeyMap {
	return ConfirmKeyMap{
		Yes:     key.NewBinding(key.WithKeys("y", "right", "l"), key.WithHelp("y/→", "yes")),
		No:      key.NewBinding(key.WithKeys("n", "left", "h"), key.WithHelp("n/←", "no")),
		Toggle:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "toggle")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:  key.NewBinding(key.WithKeys("esc", "q", "ctrl+c"), key.WithHelp("esc", "cancel")),
	}
}

// NewConfirm creates a confirmation dialog asking message.
func NewConfirm(theme *Theme, message, detail string) ConfirmModel {
	return ConfirmModel{Message: message, Detail: detail, theme: theme}
}

// Update handles one key press.
func (m ConfirmModel) Update(msg tea.Msg) (ConfirmModel, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	keys := DefaultConfirmKeyMap()
	switch {
	case key.Matches(k, keys.Yes):
		m.Yes = true
	case key.Matches(k, keys.No):
		m.Yes = false
	case key.Matches(k, keys.Toggle):
		m.Yes = !m.Yes
	case key.Matches(k, keys.Confirm):
		m.Confirmed = true
	case key.Matches(k, keys.Cancel):
		m.Canceled = true
	}
	return m, nil
}

func (m ConfirmModel) View() string {
	t := m.theme

	yesStyle, noStyle := t.InactiveButton, t.ActiveButton
	if m.Yes {
		yesStyle, noStyle = t.ActiveButton, t.InactiveButton
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		noStyle.Render("Keep"), "  ", yesStyle.Render(IconFire+" Burn"))

	parts := []string{t.Title.Render(m.Message)}
	if m.Detail != "" {
		parts = append(parts, t.Subtle.Render(m.Detail))
	}
	parts = append(parts,
		"",
		buttons,
		"",
		t.Subtle.Render("y/n to select • enter to confirm • esc to cancel"),
	)
	return t.Box.Render(lipgloss.JoinVertical(lipgloss.Center, parts...))
}

// Done reports whether the dialog was answered or dismissed.
func (m ConfirmModel) Done() bool {
	return m.Confirmed || m.Canceled
}

// Result reports whether the user confirmed "Yes".
func (m ConfirmModel) Result() bool {
	return m.Confirmed && m.Yes && !m.Canceled
}
