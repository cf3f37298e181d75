package entity

import "time"

// SessionStateVersion is the current schema version for session state.
// Increment when making breaking changes to the serialization format.
const SessionStateVersion = 1

// SessionState is the snapshot restored on next launch.
// It is serialized to JSON and stored in the database.
type SessionState struct {
	Version int              `json:"version"`
	Windows []WindowSnapshot `json:"windows"`
	SavedAt time.Time        `json:"saved_at"`
}

// WindowSnapshot captures one window.
type WindowSnapshot struct {
	ID             WindowID      `json:"id"`
	IsFireWindow   bool          `json:"is_fire_window"`
	Tabs           []TabSnapshot `json:"tabs"`
	ActiveTabIndex int           `json:"active_tab_index"`
}

// TabSnapshot captures the state of a single tab.
type TabSnapshot struct {
	ID       TabID  `json:"id"`
	URL      string `json:"url"`
	Title    string `json:"title"`
	IsPinned bool   `json:"is_pinned"`
}

// SnapshotFromWindows creates a SessionState from live windows.
// Fire windows are never persisted.
func SnapshotFromWindows(windows []*Window) *SessionState {
	state := &SessionState{
		Version: SessionStateVersion,
		Windows: make([]WindowSnapshot, 0, len(windows)),
		SavedAt: time.Now(),
	}
	for _, w := range windows {
		if w == nil || w.IsFireWindow || w.Tabs == nil {
			continue
		}
		ws := WindowSnapshot{ID: w.ID, Tabs: make([]TabSnapshot, 0, w.Tabs.Count())}
		for i, tab := range w.Tabs.Tabs {
			if tab.ID == w.Tabs.ActiveTabID {
				ws.ActiveTabIndex = i
			}
			ws.Tabs = append(ws.Tabs, TabSnapshot{
				ID:       tab.ID,
				URL:      tab.URL,
				Title:    tab.Title,
				IsPinned: tab.IsPinned,
			})
		}
		state.Windows = append(state.Windows, ws)
	}
	return state
}

// TabCount returns the total number of tabs in the snapshot.
func (s *SessionState) TabCount() int {
	n := 0
	for _, w := range s.Windows {
		n += len(w.Tabs)
	}
	return n
}
