package cache

import (
	"context"
	"sync"

	"github.com/bnema/ember/internal/domain/scope"
	"github.com/bnema/ember/internal/logging"
)

// DefaultAutoconsentCapacity bounds the number of sites remembered.
const DefaultAutoconsentCapacity = 2048

// ConsentOutcome is what the consent handler did on a site.
type ConsentOutcome string

const (
	ConsentOptedOut   ConsentOutcome = "opted_out"
	ConsentNoPopup    ConsentOutcome = "no_popup"
	ConsentSelfTested ConsentOutcome = "self_tested"
)

// AutoconsentStats counts handled cookie popups.
type AutoconsentStats struct {
	PopupsHandled int64
	SitesVisited  int64
}

// Autoconsent remembers per-site cookie popup handling so a site is not
// re-probed on every visit. Keys are eTLD+1.
type Autoconsent struct {
	sites *LRU[string, ConsentOutcome]

	mu    sync.Mutex
	stats AutoconsentStats
}

// NewAutoconsent creates an empty consent cache.
func NewAutoconsent(capacity int) *Autoconsent {
	return &Autoconsent{sites: NewLRU[string, ConsentOutcome](capacity)}
}

// Record stores the outcome for the site of host and updates the stats.
func (a *Autoconsent) Record(host string, outcome ConsentOutcome) error {
	domain, err := scope.ETLDPlusOne(host)
	if err != nil {
		return err
	}
	a.sites.Set(domain, outcome)

	a.mu.Lock()
	a.stats.SitesVisited++
	if outcome == ConsentOptedOut {
		a.stats.PopupsHandled++
	}
	a.mu.Unlock()
	return nil
}

// Outcome returns the remembered outcome for the site of host.
func (a *Autoconsent) Outcome(host string) (ConsentOutcome, bool) {
	domain, err := scope.ETLDPlusOne(host)
	if err != nil {
		return "", false
	}
	return a.sites.Get(domain)
}

// Stats returns a copy of the counters.
func (a *Autoconsent) Stats() AutoconsentStats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}

// ClearCache forgets the given sites; nil forgets every site.
func (a *Autoconsent) ClearCache(ctx context.Context, domains scope.Set) error {
	var removed int
	if domains == nil {
		removed = a.sites.Len()
		a.sites.Clear()
	} else {
		removed = a.sites.RemoveFunc(func(domain string, _ ConsentOutcome) bool {
			return domains.Contains(domain)
		})
	}
	logging.FromContext(ctx).Debug().Int("removed", removed).Msg("autoconsent cache cleared")
	return nil
}

func (a *Autoconsent) ClearStats(context.Context) error {
	a.mu.Lock()
	a.stats = AutoconsentStats{}
	a.mu.Unlock()
	return nil
}
