// Package port defines interfaces for external dependencies.
package port

import (
	"context"

	"github.com/bnema/ember/internal/domain/entity"
	"github.com/bnema/ember/internal/domain/scope"
)

// The interfaces below are the per-subsystem burners. Each owns one store,
// does its own locking and may block on I/O. Methods taking a domain set
// treat nil as "every domain"; methods taking an except set must leave data
// of those domains untouched.

// FireproofDomainSource exposes the sites the user exempted from burning.
type FireproofDomainSource interface {
	IsFireproof(ctx context.Context, domain string) bool
	FireproofDomains(ctx context.Context) (scope.Set, error)
}

// HistoryStore owns browsing history.
type HistoryStore interface {
	// BurnVisits removes exactly the given visits.
	BurnVisits(ctx context.Context, visits []*entity.Visit) error
	// BurnDomains removes every visit to the domains and their sub-domains.
	// Returns the URLs that were removed.
	BurnDomains(ctx context.Context, domains scope.Set) ([]string, error)
	// BurnAll removes every visit except those to the except domains.
	BurnAll(ctx context.Context, except scope.Set) error
	// Domains returns the eTLD+1 of every domain still present in history.
	Domains(ctx context.Context) (scope.Set, error)
}

// WebCacheStore owns cookies, local storage and the HTTP cache.
type WebCacheStore interface {
	ClearAll(ctx context.Context, except scope.Set) error
	Clear(ctx context.Context, baseDomains scope.Set) error
}

// FaviconExceptions lists domains whose favicons survive a burn.
type FaviconExceptions struct {
	Fireproof       scope.Set
	Bookmarked      scope.Set
	SavedLogins     scope.Set
	ExistingHistory scope.Set
}

// Contains reports whether a domain is covered by any exception.
func (e FaviconExceptions) Contains(domain string) bool {
	for _, set := range []scope.Set{e.Fireproof, e.Bookmarked, e.SavedLogins, e.ExistingHistory} {
		if scope.MatchesAny(domain, set) {
			return true
		}
	}
	return false
}

// FaviconStore owns cached site icons.
type FaviconStore interface {
	Burn(ctx context.Context, except FaviconExceptions) error
	BurnDomains(ctx context.Context, domains scope.Set, except FaviconExceptions) error
}

// PermissionStore owns per-site permission decisions.
type PermissionStore interface {
	BurnPermissionsExcept(ctx context.Context, fireproof scope.Set) error
	BurnPermissionsOf(ctx context.Context, domains scope.Set) error
}

// DownloadsStore owns the downloads list.
type DownloadsStore interface {
	// CleanupInactive removes finished, failed and cancelled downloads.
	CleanupInactive(ctx context.Context, domains, except scope.Set) error
}

// ZoomLevelStore owns per-site zoom factors.
type ZoomLevelStore interface {
	BurnExcept(ctx context.Context, fireproof scope.Set) error
	BurnOf(ctx context.Context, domains scope.Set) error
}

// VisitedLinkCache colors visited links; it mirrors history.
type VisitedLinkCache interface {
	RemoveAll(ctx context.Context) error
	RemoveVisitedLink(ctx context.Context, url string) error
}

// AutoconsentCache owns cookie-consent popup handling state.
type AutoconsentCache interface {
	ClearCache(ctx context.Context, domains scope.Set) error
	ClearStats(ctx context.Context) error
}

// RecentlyClosedStore owns the reopen-closed-tab cache.
type RecentlyClosedStore interface {
	BurnCache(ctx context.Context, domains, except scope.Set) error
}

// SessionRestorationStore owns the snapshot restored on next launch.
type SessionRestorationStore interface {
	ClearLastSessionState(ctx context.Context) error
}

// ChatHistoryCleaner removes the chat assistant's conversations.
type ChatHistoryCleaner interface {
	CleanAIChatHistory(ctx context.Context) error
}

// SyncMetadataCleaner purges bookmark rows kept only for sync bookkeeping.
type SyncMetadataCleaner interface {
	IsSyncActive(ctx context.Context) bool
	PurgeDeletedBookmarks(ctx context.Context) error
}

// PrivacyStatsStore owns blocked-tracker counters.
type PrivacyStatsStore interface {
	ClearPrivacyStats(ctx context.Context) error
}

// DomainSource lists the domains of a collection such as bookmarks or
// saved logins.
type DomainSource interface {
	Domains(ctx context.Context) (scope.Set, error)
}

// ResidueChecker is optionally implemented by stores that can count what a
// full burn left behind.
type ResidueChecker interface {
	Residue(ctx context.Context, except scope.Set) (int64, error)
}
