package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bnema/ember/internal/application/fire"
	"github.com/bnema/ember/internal/cli/styles"
	"github.com/bnema/ember/internal/domain/entity"
	"github.com/bnema/ember/internal/domain/scope"
	"github.com/bnema/ember/internal/infrastructure/telemetry"
)

// ErrNoVisits is returned by BurnVisits when nothing matches the filter.
var ErrNoVisits = errors.New("no matching visits")

// BurnAll clears every site outside the fireproof list. History is always
// burned.
func (a *App) BurnAll(ctx context.Context, sel styles.BurnSelection) (styles.BurnSummary, error) {
	start := time.Now()
	a.Runtime.Fire.BurnAll(ctx, fire.BurnAllOptions{
		IncludeCookiesAndSiteData: sel.SiteData,
		IncludeChatHistory:        sel.ChatHistory,
	})
	return a.summary(ctx, "all", nil, start)
}

// BurnDomains clears the sites of the given hosts. Hosts are reduced to
// their eTLD+1 first; fireproof sites are skipped.
func (a *App) BurnDomains(ctx context.Context, hosts []string, sel styles.BurnSelection) (styles.BurnSummary, error) {
	domains, err := parseDomains(hosts)
	if err != nil {
		return styles.BurnSummary{}, err
	}
	start := time.Now()
	a.Runtime.Fire.BurnEntity(ctx, entity.NoneEntity{SelectedDomains: domains}, fire.BurnOptions{
		IncludingHistory:          sel.History,
		IncludeCookiesAndSiteData: sel.SiteData,
		IncludeChatHistory:        sel.ChatHistory,
	})
	return a.summary(ctx, "domains", domains.Sorted(), start)
}

// BurnVisits removes the visits to host made within since (zero means any
// time). Other visits to the same site survive.
func (a *App) BurnVisits(ctx context.Context, host string, since time.Duration, sel styles.BurnSelection) (styles.BurnSummary, error) {
	domain, err := scope.ETLDPlusOne(host)
	if err != nil {
		return styles.BurnSummary{}, fmt.Errorf("invalid domain %q: %w", host, err)
	}
	visits, err := a.Runtime.History.FindByDomain(ctx, domain)
	if err != nil {
		return styles.BurnSummary{}, fmt.Errorf("load visits: %w", err)
	}

	now := time.Now()
	selected := make([]*entity.Visit, 0, len(visits))
	today := true
	for _, v := range visits {
		if since > 0 && now.Sub(v.VisitedAt) > since {
			continue
		}
		selected = append(selected, v)
		today = today && v.IsToday(now)
	}
	if len(selected) == 0 {
		return styles.BurnSummary{}, ErrNoVisits
	}

	start := time.Now()
	a.Runtime.Fire.BurnVisits(ctx, selected, fire.BurnVisitsOptions{
		ExceptFireproofDomains: true,
		IsToday:                today,
		ClearSiteData:          sel.SiteData,
		ClearChatHistory:       sel.ChatHistory,
	})
	s, err := a.summary(ctx, "visits", []string{domain}, start)
	s.Kind = fmt.Sprintf("%d visits", len(selected))
	return s, err
}

// BurnChatHistory clears the chat assistant's conversations.
func (a *App) BurnChatHistory(ctx context.Context) (styles.BurnSummary, error) {
	start := time.Now()
	a.Runtime.Fire.BurnChatHistory(ctx)
	return a.summary(ctx, "chat", nil, start)
}

// WriteMetrics prints the burn metrics collected by this process.
func (a *App) WriteMetrics(w io.Writer) error {
	return telemetry.WriteText(w, a.Runtime.Registry)
}

func (a *App) summary(ctx context.Context, kind string, domains []string, start time.Time) (styles.BurnSummary, error) {
	rt := a.Runtime
	s := styles.BurnSummary{Kind: kind, Domains: domains, Duration: time.Since(start)}

	var errs []error
	count := func(label string, n int, err error) {
		if err != nil {
			errs = append(errs, fmt.Errorf("count %s: %w", label, err))
			return
		}
		s.Remaining = append(s.Remaining, styles.StoreCount{Label: label, Count: n})
	}

	historyDomains, err := rt.History.Domains(ctx)
	count("history sites", historyDomains.Len(), err)
	count("visited links", rt.VisitedLinks.Len(), nil)
	sites, err := rt.WebCache.Sites()
	count("site data", sites.Len(), err)
	icons, err := rt.Favicons.Hosts()
	count("favicons", len(icons), err)

	fireproof, err := rt.Fireproof.FireproofDomains(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("load fireproof domains: %w", err))
	} else {
		s.Fireproof = fireproof.Sorted()
	}
	return s, errors.Join(errs...)
}

func parseDomains(hosts []string) (scope.Set, error) {
	if len(hosts) == 0 {
		return nil, errors.New("at least one domain is required")
	}
	domains := scope.NewSet()
	for _, h := range hosts {
		d, err := scope.ETLDPlusOne(h)
		if err != nil {
			return nil, fmt.Errorf("invalid domain %q: %w", h, err)
		}
		domains.Add(d)
	}
	return domains, nil
}
