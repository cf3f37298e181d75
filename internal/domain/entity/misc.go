package entity

import "time"

// FireproofDomain is a site the user exempted from burning.
type FireproofDomain struct {
	Domain  string
	AddedAt time.Time
}

// Bookmark is a saved page. Deleted bookmarks linger until sync has
// acknowledged the deletion.
type Bookmark struct {
	ID        int64
	URL       string
	Title     string
	Deleted   bool
	UpdatedAt time.Time
}

// SavedLogin is the part of a stored credential the burn pipeline needs.
type SavedLogin struct {
	ID       int64
	Domain   string
	Username string
}

// AIChat is a conversation kept by the built-in chat assistant.
type AIChat struct {
	ID        string
	Title     string
	CreatedAt time.Time
}

// PrivacyStat counts trackers blocked per company and day.
type PrivacyStat struct {
	Company string
	Day     string // YYYY-MM-DD
	Count   int64
}
