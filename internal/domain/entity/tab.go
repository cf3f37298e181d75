package entity

import "time"

// TabID uniquely identifies a tab.
type TabID string

// Tab represents a browser tab.
type Tab struct {
	ID       TabID
	URL      string
	Title    string
	Position int  // Position in the tab bar (0-indexed)
	IsPinned bool // Pinned tabs stay at the left

	// LoadedFromCache is set on tabs recreated by a burn; the page is
	// reloaded from the HTTP cache rather than the network.
	LoadedFromCache bool

	// LocalHistory holds the URLs visited in this tab, oldest first.
	LocalHistory []string
	CreatedAt    time.Time
}

// NewTab creates a tab loading url.
func NewTab(id TabID, url string) *Tab {
	t := &Tab{
		ID:        id,
		URL:       url,
		CreatedAt: time.Now(),
	}
	if url != "" {
		t.LocalHistory = []string{url}
	}
	return t
}

// DisplayTitle returns the display title for the tab.
func (t *Tab) DisplayTitle() string {
	if t.Title != "" {
		return t.Title
	}
	if t.URL != "" {
		return t.URL
	}
	return "New Tab"
}

// TabList manages an ordered collection of tabs. Pinned tabs always
// occupy the leading positions.
type TabList struct {
	Tabs        []*Tab
	ActiveTabID TabID
}

// NewTabList creates an empty tab list.
func NewTabList() *TabList {
	return &TabList{
		Tabs: make([]*Tab, 0),
	}
}

// Add appends a tab to the list. Pinned tabs are appended after the last
// pinned tab.
func (tl *TabList) Add(tab *Tab) {
	if tab.IsPinned {
		tl.Insert(tl.PinnedCount(), tab)
		return
	}
	tl.Insert(len(tl.Tabs), tab)
}

// Insert places tab at index, clamped to the list bounds.
func (tl *TabList) Insert(index int, tab *Tab) {
	if index < 0 {
		index = 0
	}
	if index > len(tl.Tabs) {
		index = len(tl.Tabs)
	}
	tl.Tabs = append(tl.Tabs, nil)
	copy(tl.Tabs[index+1:], tl.Tabs[index:])
	tl.Tabs[index] = tab
	tl.reindex()
	if tl.ActiveTabID == "" {
		tl.ActiveTabID = tab.ID
	}
}

// Remove removes a tab by ID and reindexes positions.
func (tl *TabList) Remove(id TabID) bool {
	for i, tab := range tl.Tabs {
		if tab.ID == id {
			tl.Tabs = append(tl.Tabs[:i], tl.Tabs[i+1:]...)
			tl.reindex()
			// Update active tab if needed
			if tl.ActiveTabID == id {
				switch {
				case len(tl.Tabs) == 0:
					tl.ActiveTabID = ""
				case i < len(tl.Tabs):
					tl.ActiveTabID = tl.Tabs[i].ID
				default:
					tl.ActiveTabID = tl.Tabs[len(tl.Tabs)-1].ID
				}
			}
			return true
		}
	}
	return false
}

// Replace swaps the tab identified by id for replacement, keeping its slot
// and pin state. The replacement becomes active if the old tab was.
func (tl *TabList) Replace(id TabID, replacement *Tab) bool {
	for i, tab := range tl.Tabs {
		if tab.ID != id {
			continue
		}
		replacement.IsPinned = tab.IsPinned
		replacement.Position = i
		tl.Tabs[i] = replacement
		if tl.ActiveTabID == id {
			tl.ActiveTabID = replacement.ID
		}
		return true
	}
	return false
}

// Find returns a tab by ID.
func (tl *TabList) Find(id TabID) *Tab {
	for _, tab := range tl.Tabs {
		if tab.ID == id {
			return tab
		}
	}
	return nil
}

// Select makes the tab active. Returns false if it does not exist.
func (tl *TabList) Select(id TabID) bool {
	if tl.Find(id) == nil {
		return false
	}
	tl.ActiveTabID = id
	return true
}

// ActiveTab returns the currently active tab.
func (tl *TabList) ActiveTab() *Tab {
	return tl.Find(tl.ActiveTabID)
}

// Count returns the number of tabs.
func (tl *TabList) Count() int {
	return len(tl.Tabs)
}

// PinnedCount returns the number of pinned tabs.
func (tl *TabList) PinnedCount() int {
	n := 0
	for _, tab := range tl.Tabs {
		if tab.IsPinned {
			n++
		}
	}
	return n
}

// Pinned returns the pinned tabs in order.
func (tl *TabList) Pinned() []*Tab {
	return tl.filter(true)
}

// Regular returns the non-pinned tabs in order.
func (tl *TabList) Regular() []*Tab {
	return tl.filter(false)
}

func (tl *TabList) filter(pinned bool) []*Tab {
	out := make([]*Tab, 0, len(tl.Tabs))
	for _, tab := range tl.Tabs {
		if tab.IsPinned == pinned {
			out = append(out, tab)
		}
	}
	return out
}

func (tl *TabList) reindex() {
	for i := range tl.Tabs {
		tl.Tabs[i].Position = i
	}
}
