package entity

import "time"

// Zoom factor bounds; 1.0 is 100%.
const (
	ZoomMin = 0.25
	ZoomMax = 5.0
)

// ZoomLevel is a site's persisted zoom factor. It is keyed by eTLD+1 and is
// removed by a burn unless the site is fireproof.
type ZoomLevel struct {
	Domain     string
	ZoomFactor float64
	UpdatedAt  time.Time
}

// NewZoomLevel clamps factor into [ZoomMin, ZoomMax].
func NewZoomLevel(domain string, factor float64) *ZoomLevel {
	return &ZoomLevel{
		Domain:     domain,
		ZoomFactor: min(max(factor, ZoomMin), ZoomMax),
		UpdatedAt:  time.Now(),
	}
}
