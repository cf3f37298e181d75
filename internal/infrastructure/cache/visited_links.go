package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/ember/internal/logging"
)

// DefaultVisitedLinksCapacity bounds the visited-link set.
const DefaultVisitedLinksCapacity = 10000

// VisitedLinks is the set of URLs rendered as visited. It mirrors history
// and is emptied whenever the history it was built from is burned.
type VisitedLinks struct {
	links *LRU[string, time.Time]
}

// NewVisitedLinks creates an empty visited-link set holding at most capacity URLs.
func NewVisitedLinks(capacity int) *VisitedLinks {
	return &VisitedLinks{links: NewLRU[string, time.Time](capacity)}
}

// Warm fills the set from the most recent visits of source.
func (v *VisitedLinks) Warm(ctx context.Context, source VisitSource, limit int) error {
	visits, err := source.GetRecent(ctx, limit)
	if err != nil {
		return fmt.Errorf("load recent visits: %w", err)
	}
	// Oldest first so the newest visits end up most recently used.
	for i := len(visits) - 1; i >= 0; i-- {
		v.links.Set(visits[i].URL, visits[i].VisitedAt)
	}
	logging.FromContext(ctx).Debug().Int("links", v.links.Len()).Msg("visited links warmed")
	return nil
}

// Add marks url as visited.
func (v *VisitedLinks) Add(url string) {
	v.links.Set(url, time.Now())
}

// Contains reports whether url is rendered as visited.
func (v *VisitedLinks) Contains(url string) bool {
	return v.links.Contains(url)
}

// Len returns the number of visited URLs.
func (v *VisitedLinks) Len() int {
	return v.links.Len()
}

func (v *VisitedLinks) RemoveAll(ctx context.Context) error {
	n := v.links.Len()
	v.links.Clear()
	logging.FromContext(ctx).Debug().Int("removed", n).Msg("visited links cleared")
	return nil
}

func (v *VisitedLinks) RemoveVisitedLink(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	v.links.Remove(url)
	return nil
}
