package fire

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/bnema/ember/internal/application/port"
	"github.com/bnema/ember/internal/logging"
)

// TabCleanupPreparer asks tabs about to be burned to flush their pending
// work, and waits until every one of them is done.
type TabCleanupPreparer struct {
	// Limit bounds concurrent preparations; zero means unbounded.
	Limit int
}

// NewTabCleanupPreparer returns a preparer with no concurrency limit.
func NewTabCleanupPreparer() *TabCleanupPreparer {
	return &TabCleanupPreparer{}
}

// Prepare runs PrepareForBurning on every tab concurrently. A tab that fails
// is logged and does not hold back the others.
func (p *TabCleanupPreparer) Prepare(ctx context.Context, tabs []port.TabViewModel) {
	if len(tabs) == 0 {
		return
	}
	log := logging.FromContext(ctx)

	var g errgroup.Group
	if p.Limit > 0 {
		g.SetLimit(p.Limit)
	}
	for _, tab := range tabs {
		g.Go(func() error {
			if err := tab.PrepareForBurning(ctx); err != nil {
				log.Warn().Err(err).Str("tab_id", string(tab.TabID())).Msg("tab cleanup failed")
			}
			return nil
		})
	}
	_ = g.Wait()

	log.Debug().Int("tabs", len(tabs)).Msg("tabs prepared for burning")
}
