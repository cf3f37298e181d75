package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotFromWindows_SkipsFireWindows(t *testing.T) {
	regular := NewWindow("w1", false)
	pinned := NewTab("t1", "https://pinned.example")
	pinned.IsPinned = true
	regular.Tabs.Add(pinned)
	regular.Tabs.Add(NewTab("t2", "https://example.com"))
	regular.Tabs.Select("t2")

	fire := NewWindow("w2", true)
	fire.Tabs.Add(NewTab("t3", "https://secret.example"))

	state := SnapshotFromWindows([]*Window{regular, fire, nil})

	require.Len(t, state.Windows, 1)
	assert.Equal(t, SessionStateVersion, state.Version)
	assert.Equal(t, 1, state.Windows[0].ActiveTabIndex)
	assert.True(t, state.Windows[0].Tabs[0].IsPinned)
	assert.Equal(t, 2, state.TabCount())
}
