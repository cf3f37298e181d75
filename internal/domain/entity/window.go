package entity

import "time"

// WindowID uniquely identifies a browser window.
type WindowID string

// Window is a top-level browser window holding an ordered tab list.
type Window struct {
	ID WindowID
	// IsFireWindow marks an ephemeral window whose data is discarded on close.
	IsFireWindow bool
	Tabs         *TabList
	// LastActivatedAt orders windows by recency; the most recent regular
	// window is the "last active regular window".
	LastActivatedAt time.Time
	CreatedAt       time.Time
}

// NewWindow creates an empty window.
func NewWindow(id WindowID, fireWindow bool) *Window {
	now := time.Now()
	return &Window{
		ID:              id,
		IsFireWindow:    fireWindow,
		Tabs:            NewTabList(),
		LastActivatedAt: now,
		CreatedAt:       now,
	}
}

// HasPinnedTabs reports whether the window holds at least one pinned tab.
func (w *Window) HasPinnedTabs() bool {
	return w.Tabs != nil && w.Tabs.PinnedCount() > 0
}

// IsEmpty reports whether the window has no tabs left.
func (w *Window) IsEmpty() bool {
	return w.Tabs == nil || w.Tabs.Count() == 0
}
