package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// BurnCategory is a group of data a burn may clear.
type BurnCategory int

const (
	CategoryHistory BurnCategory = iota
	CategorySiteData
	CategoryChatHistory
)

func (c BurnCategory) label() string {
	switch c {
	case CategoryHistory:
		return fmt.Sprintf("%s History", IconClock)
	case CategorySiteData:
		return fmt.Sprintf("%s Cookies and site data", IconDatabase)
	case CategoryChatHistory:
		return fmt.Sprintf("%s Chat history", IconComment)
	default:
		return "Data"
	}
}

// BurnSelection is the outcome of a BurnSelector.
type BurnSelection struct {
	History     bool
	SiteData    bool
	ChatHistory bool
}

// BurnItem is one row of the selector. Locked rows cannot be toggled.
type BurnItem struct {
	Category BurnCategory
	Selected bool
	Locked   bool
}

// BurnSelector is the multi-select list shown before a burn.
type BurnSelector struct {
	Title     string
	Scope     string
	Items     []BurnItem
	Cursor    int
	Confirmed bool
	Canceled  bool
	theme     *Theme
}

// BurnKeyMap defines keybindings for the selector.
type BurnKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	ToggleAll key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
}

// DefaultBurnKeyMap returns default keybindings.
func DefaultBurnKeyMap() BurnKeyMap {
	return BurnKeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		ToggleAll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "toggle all")),
		Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:    key.NewBinding(key.WithKeys("esc", "q", "ctrl+c"), key.WithHelp("esc", "cancel")),
	}
}

// NewBurnSelector builds a selector preselected from sel. lockHistory pins
// the history row, for burns that always clear history.
func NewBurnSelector(theme *Theme, title, scope string, sel BurnSelection, lockHistory bool) BurnSelector {
	return BurnSelector{
		Title: title,
		Scope: scope,
		Items: []BurnItem{
			{Category: CategoryHistory, Selected: sel.History || lockHistory, Locked: lockHistory},
			{Category: CategorySiteData, Selected: sel.SiteData},
			{Category: CategoryChatHistory, Selected: sel.ChatHistory},
		},
		theme: theme,
	}
}

// Update handles one key press.
func (m BurnSelector) Update(msg tea.Msg) (BurnSelector, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	keys := DefaultBurnKeyMap()
	switch {
	case key.Matches(k, keys.Up):
		m.Cursor = (m.Cursor - 1 + len(m.Items)) % len(m.Items)
	case key.Matches(k, keys.Down):
		m.Cursor = (m.Cursor + 1) % len(m.Items)
	case key.Matches(k, keys.Toggle):
		if it := &m.Items[m.Cursor]; !it.Locked {
			it.Selected = !it.Selected
		}
	case key.Matches(k, keys.ToggleAll):
		m.toggleAll()
	case key.Matches(k, keys.Confirm):
		m.Confirmed = true
	case key.Matches(k, keys.Cancel):
		m.Canceled = true
	}
	return m, nil
}

func (m *BurnSelector) toggleAll() {
	anyUnselected := false
	for _, it := range m.Items {
		if !it.Locked && !it.Selected {
			anyUnselected = true
			break
		}
	}
	for i := range m.Items {
		if !m.Items[i].Locked {
			m.Items[i].Selected = anyUnselected
		}
	}
}

// Done reports whether the selector was confirmed or dismissed.
func (m BurnSelector) Done() bool {
	return m.Confirmed || m.Canceled
}

// Selection returns the selected categories.
func (m BurnSelector) Selection() BurnSelection {
	var sel BurnSelection
	for _, it := range m.Items {
		if !it.Selected {
			continue
		}
		switch it.Category {
		case CategoryHistory:
			sel.History = true
		case CategorySiteData:
			sel.SiteData = true
		case CategoryChatHistory:
			sel.ChatHistory = true
		}
	}
	return sel
}

// Empty reports whether nothing is selected.
func (m BurnSelector) Empty() bool {
	return m.Selection() == BurnSelection{}
}

func (m BurnSelector) View() string {
	t := m.theme

	rows := make([]string, 0, len(m.Items))
	for i, it := range m.Items {
		rows = append(rows, m.renderRow(i, it))
	}

	parts := []string{
		t.Title.Render(fmt.Sprintf("%s %s", IconFire, m.Title)),
		t.Subtle.Render(m.Scope),
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		"",
		t.Subtle.Render("↑/↓ j/k move • space toggle • a all • enter burn • esc cancel"),
	}
	return t.Box.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m BurnSelector) renderRow(i int, it BurnItem) string {
	t := m.theme

	cursor := "  "
	if i == m.Cursor {
		cursor = IconCursor + " "
	}
	checkbox := IconCheckboxEmpty
	if it.Selected {
		checkbox = IconCheckboxChecked
	}

	accent := lipgloss.NewStyle().Foreground(t.Accent)
	labelStyle := t.Normal
	suffix := ""
	if it.Locked {
		accent = t.Subtle
		labelStyle = t.Subtle
		suffix = t.Subtle.Render(" (always)")
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Left,
		accent.Render(cursor),
		accent.Render(checkbox),
		" ",
		labelStyle.Render(it.Category.label()),
		suffix,
	)
}

func padRight(s string, width int) string {
	r := []rune(s)
	if len(r) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(r))
}
