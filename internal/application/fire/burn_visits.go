package fire

import (
	"context"
	"time"

	"github.com/bnema/ember/internal/application/port"
	"github.com/bnema/ember/internal/domain/entity"
	"github.com/bnema/ember/internal/domain/scope"
	"github.com/bnema/ember/internal/logging"
)

// BurnVisitsOptions configures BurnVisits.
type BurnVisitsOptions struct {
	ExceptFireproofDomains bool
	// IsToday selects the escalation: visits from today also close the
	// windows showing them.
	IsToday           bool
	CloseWindows      bool
	ClearSiteData     bool
	ClearChatHistory  bool
	URLToOpenIfClosed string
}

// BurnVisits deletes exactly the given visits. Other visits to the same
// domains survive. With ClearSiteData the site data of the visited domains
// is burned afterwards.
func (f *Fire) BurnVisits(ctx context.Context, visits []*entity.Visit, opts BurnVisitsOptions) {
	ctx = logging.WithComponent(ctx, "fire")
	log := logging.FromContext(ctx)

	domains := scope.ToETLDPlusOne(scope.FromURLs(entity.VisitURLs(visits)...))
	fireproofOK := true
	if opts.ExceptFireproofDomains {
		var fireproof scope.Set
		fireproof, fireproofOK = f.fireproofDomains(ctx)
		domains = domains.Minus(fireproof)
	}
	log.Info().
		Int("visits", len(visits)).
		Strs("domains", domains.Sorted()).
		Bool("site_data", opts.ClearSiteData).
		Msg("burning visits")

	f.runStep(ctx, step{port.StepVisitedLinks, func(ctx context.Context) error {
		return f.removeVisitedLinks(ctx, entity.VisitURLs(visits))
	}})
	f.runStep(ctx, step{port.StepHistory, func(ctx context.Context) error {
		return f.deps.History.BurnVisits(ctx, visits)
	}})

	if !fireproofOK && opts.ClearSiteData {
		log.Error().Msg("fireproof domains unavailable, not escalating to site data")
	}
	if !opts.ClearSiteData || !fireproofOK {
		if opts.ClearChatHistory {
			f.BurnChatHistory(ctx)
		}
		return
	}

	burnOpts := BurnOptions{
		IncludingHistory:          false,
		IncludeCookiesAndSiteData: true,
		IncludeChatHistory:        opts.ClearChatHistory,
	}
	if !opts.IsToday {
		f.BurnEntity(ctx, entity.NoneEntity{SelectedDomains: domains}, burnOpts)
		return
	}

	var windows []entity.WindowID
	f.onMain(ctx, func() {
		windows = windowIDs(f.deps.Windows.Windows())
	})
	f.BurnEntity(ctx, entity.AllWindowsEntity{
		Windows:         windows,
		SelectedDomains: domains,
		CustomURLToOpen: opts.URLToOpenIfClosed,
		Close:           opts.CloseWindows,
	}, burnOpts)
}

// BurnChatHistory clears AI chat history. It is a no-op when no chat
// history store is configured.
func (f *Fire) BurnChatHistory(ctx context.Context) {
	if f.deps.ChatHistory == nil {
		logging.FromContext(ctx).Debug().Msg("no chat history store configured")
		return
	}
	start := time.Now()
	f.runStep(ctx, step{port.StepChatHistory, f.deps.ChatHistory.CleanAIChatHistory})
	logging.FromContext(ctx).Info().Dur("duration", time.Since(start)).Msg("chat history burned")
}
