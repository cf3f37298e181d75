package model

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/ember/internal/cli/styles"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m tea.Model, keys ...string) (BurnModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = m.Update(key(k))
	}
	bm, ok := m.(BurnModel)
	require.True(t, ok)
	return bm, cmd
}

// drain runs cmd and feeds the burn result back into m.
func drain(t *testing.T, m BurnModel, cmd tea.Cmd) BurnModel {
	t.Helper()
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	for _, c := range batch {
		if c == nil {
			continue
		}
		if done, ok := c().(burnDoneMsg); ok {
			next, _ := m.Update(done)
			return next.(BurnModel)
		}
	}
	t.Fatal("burn command not found in batch")
	return m
}

type recordingRun struct {
	calls int
	sel   styles.BurnSelection
	err   error
}

func (r *recordingRun) run(_ context.Context, sel styles.BurnSelection) (styles.BurnSummary, error) {
	r.calls++
	r.sel = sel
	return styles.BurnSummary{Kind: "all"}, r.err
}

func newModel(run *recordingRun, question string) BurnModel {
	return NewBurnModel(context.Background(), styles.NewTheme(), BurnModelConfig{
		Title:       "Burn everything",
		Scope:       "Every site",
		Initial:     styles.BurnSelection{SiteData: true},
		LockHistory: true,
		Question:    question,
		Run:         run.run,
	})
}

func TestBurnModel_ConfirmedBurnRuns(t *testing.T) {
	run := &recordingRun{}
	m := newModel(run, "Burn all?")

	m, _ = send(t, m, "enter")
	assert.Equal(t, phaseConfirm, m.phase)
	assert.Zero(t, run.calls)

	m, cmd := send(t, m, "y", "enter")
	assert.Equal(t, phaseBurning, m.phase)

	m = drain(t, m, cmd)
	assert.Equal(t, 1, run.calls)
	assert.Equal(t, styles.BurnSelection{History: true, SiteData: true}, run.sel)
	assert.True(t, m.Burned())
	summary, err := m.Result()
	require.NoError(t, err)
	assert.Equal(t, "all", summary.Kind)
}

func TestBurnModel_DeclinedConfirmationQuits(t *testing.T) {
	run := &recordingRun{}
	m, _ := send(t, newModel(run, "Burn all?"), "enter")

	m, cmd := send(t, m, "n", "enter")
	assert.True(t, m.Canceled())
	assert.False(t, m.Burned())
	assert.Zero(t, run.calls)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestBurnModel_EscapeFromSelector(t *testing.T) {
	run := &recordingRun{}
	m, cmd := send(t, newModel(run, "Burn all?"), "esc")
	assert.True(t, m.Canceled())
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestBurnModel_NoQuestionBurnsRightAway(t *testing.T) {
	run := &recordingRun{err: errors.New("partial failure")}
	m, cmd := send(t, newModel(run, ""), "enter")
	assert.Equal(t, phaseBurning, m.phase)

	m = drain(t, m, cmd)
	_, err := m.Result()
	assert.EqualError(t, err, "partial failure")
	assert.Contains(t, m.View(), "partial failure")
}

func TestBurnModel_KeysIgnoredWhileBurning(t *testing.T) {
	run := &recordingRun{}
	m, _ := send(t, newModel(run, ""), "enter")

	m, cmd := send(t, m, "esc")
	assert.Equal(t, phaseBurning, m.phase)
	assert.Nil(t, cmd)
	assert.False(t, m.Canceled())
}
