package entity

import "time"

// RecentlyClosedKind distinguishes closed tabs from closed windows.
type RecentlyClosedKind string

const (
	RecentlyClosedTab    RecentlyClosedKind = "tab"
	RecentlyClosedWindow RecentlyClosedKind = "window"
)

// RecentlyClosedItem is an entry of the "reopen closed tab/window" cache.
// A tab item holds one URL; a window item holds one URL per tab.
type RecentlyClosedItem struct {
	ID       int64
	Kind     RecentlyClosedKind
	Title    string
	URLs     []string
	ClosedAt time.Time
}
