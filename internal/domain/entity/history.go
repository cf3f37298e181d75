package entity

import "time"

// Visit is a single recorded visit to a URL. History keeps one row per
// visit so a burn can remove exactly the visits a user selected.
type Visit struct {
	ID        int64     `json:"id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Domain    string    `json:"domain"` // eTLD+1 of URL, filled by the store
	VisitedAt time.Time `json:"visited_at"`
}

// NewVisit creates a visit stamped with the current time.
func NewVisit(url, title string) *Visit {
	return &Visit{
		URL:       url,
		Title:     title,
		VisitedAt: time.Now(),
	}
}

// IsToday reports whether the visit happened on the same calendar day as now.
func (v *Visit) IsToday(now time.Time) bool {
	y1, m1, d1 := v.VisitedAt.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// VisitIDs returns the identifiers of the given visits.
func VisitIDs(visits []*Visit) []int64 {
	ids := make([]int64, 0, len(visits))
	for _, v := range visits {
		if v != nil {
			ids = append(ids, v.ID)
		}
	}
	return ids
}

// VisitURLs returns the distinct URLs of the given visits, in input order.
func VisitURLs(visits []*Visit) []string {
	seen := make(map[string]struct{}, len(visits))
	urls := make([]string, 0, len(visits))
	for _, v := range visits {
		if v == nil {
			continue
		}
		if _, ok := seen[v.URL]; ok {
			continue
		}
		seen[v.URL] = struct{}{}
		urls = append(urls, v.URL)
	}
	return urls
}

// DomainStat contains per-domain visit statistics.
type DomainStat struct {
	Domain    string    `json:"domain"`
	Visits    int64     `json:"visits"`
	LastVisit time.Time `json:"last_visit"`
}
