// Package model holds the Bubble Tea programs of the CLI.
package model

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/ember/internal/cli/styles"
)

// BurnFunc performs the burn once the user confirmed it.
type BurnFunc func(ctx context.Context, sel styles.BurnSelection) (styles.BurnSummary, error)

// BurnModelConfig describes what the model asks before burning.
type BurnModelConfig struct {
	Title       string
	Scope       string
	Initial     styles.BurnSelection
	LockHistory bool
	// Question is asked after the selection; empty skips the confirmation.
	Question string
	Run      BurnFunc
}

type burnPhase int

const (
	phaseSelect burnPhase = iota
	phaseConfirm
	phaseBurning
	phaseDone
)

type burnDoneMsg struct {
	summary styles.BurnSummary
	err     error
}

// BurnModel walks through selection, confirmation and the burn itself.
type BurnModel struct {
	cfg      BurnModelConfig
	selector styles.BurnSelector
	confirm  styles.ConfirmModel
	loading  styles.LoadingModel

	phase    burnPhase
	canceled bool
	info     string
	summary  *styles.BurnSummary
	err      error

	theme *styles.Theme
	ctx   context.Context
}

// NewBurnModel creates the model. Run is called from a tea.Cmd goroutine.
func NewBurnModel(ctx context.Context, theme *styles.Theme, cfg BurnModelConfig) BurnModel {
	return BurnModel{
		cfg:      cfg,
		selector: styles.NewBurnSelector(theme, cfg.Title, cfg.Scope, cfg.Initial, cfg.LockHistory),
		loading:  styles.NewLoading(theme, "Burning..."),
		theme:    theme,
		ctx:      ctx,
	}
}

func (m BurnModel) Init() tea.Cmd {
	return nil
}

func (m BurnModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case burnDoneMsg:
		m.phase = phaseDone
		m.err = msg.err
		m.summary = &msg.summary
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.phase == phaseBurning {
		var cmd tea.Cmd
		m.loading, cmd = m.loading.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m BurnModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.phase {
	case phaseSelect:
		m.selector, _ = m.selector.Update(msg)
		switch {
		case m.selector.Canceled:
			m.canceled = true
			return m, tea.Quit
		case !m.selector.Confirmed:
			return m, nil
		case m.selector.Empty():
			m.phase = phaseDone
			m.info = "Nothing selected"
			return m, nil
		case m.cfg.Question == "":
			return m.startBurn()
		}
		m.phase = phaseConfirm
		m.confirm = styles.NewConfirm(m.theme, m.cfg.Question, m.cfg.Scope)
		return m, nil

	case phaseConfirm:
		m.confirm, _ = m.confirm.Update(msg)
		if !m.confirm.Done() {
			return m, nil
		}
		if !m.confirm.Result() {
			m.canceled = true
			return m, tea.Quit
		}
		return m.startBurn()

	case phaseBurning:
		// A burn is never cancelled midway.
		return m, nil

	default:
		return m, tea.Quit
	}
}

func (m BurnModel) startBurn() (tea.Model, tea.Cmd) {
	m.phase = phaseBurning
	sel := m.selector.Selection()
	run := m.cfg.Run
	ctx := m.ctx
	return m, tea.Batch(m.loading.Tick, func() tea.Msg {
		summary, err := run(ctx, sel)
		return burnDoneMsg{summary: summary, err: err}
	})
}

func (m BurnModel) View() string {
	t := m.theme

	switch m.phase {
	case phaseSelect:
		return m.selector.View()
	case phaseConfirm:
		return m.confirm.View()
	case phaseBurning:
		return t.Box.Render(m.loading.View())
	}

	parts := make([]string, 0, 4)
	switch {
	case m.info != "":
		parts = append(parts, t.Subtle.Render(m.info))
	case m.summary != nil:
		parts = append(parts, styles.RenderSummary(t, *m.summary))
		if m.err != nil {
			parts = append(parts, "", styles.RenderError(t, m.err))
		}
	}
	parts = append(parts, "", t.Subtle.Render("Press any key to exit"))
	return t.Box.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// Canceled reports whether the user backed out before burning.
func (m BurnModel) Canceled() bool {
	return m.canceled
}

// Result returns the summary of the burn, if it ran.
func (m BurnModel) Result() (*styles.BurnSummary, error) {
	return m.summary, m.err
}

// Burned reports whether the burn ran to completion.
func (m BurnModel) Burned() bool {
	return m.phase == phaseDone && m.summary != nil
}

var _ tea.Model = BurnModel{}
