package fire_test

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bnema/ember/internal/app/browser"
	"github.com/bnema/ember/internal/app/mainloop"
	"github.com/bnema/ember/internal/application/fire"
	"github.com/bnema/ember/internal/application/port"
	"github.com/bnema/ember/internal/domain/entity"
	"github.com/bnema/ember/internal/domain/scope"
	"github.com/bnema/ember/internal/logging"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

// call is one recorded leaf invocation. Sets are captured sorted; nil
// sets (meaning "every domain") are recorded as nil.
type call struct {
	name    string
	domains []string
	except  []string
}

type recorder struct {
	mu     sync.Mutex
	calls  []call
	fail   map[string]error
	panics map[string]bool
	block  map[string]chan struct{}
}

func newRecorder() *recorder {
	return &recorder{
		fail:   make(map[string]error),
		panics: make(map[string]bool),
		block:  make(map[string]chan struct{}),
	}
}

func sortedOrNil(s scope.Set) []string {
	if s == nil {
		return nil
	}
	return s.Sorted()
}

func (r *recorder) record(name string, domains, except scope.Set) error {
	r.mu.Lock()
	r.calls = append(r.calls, call{name: name, domains: sortedOrNil(domains), except: sortedOrNil(except)})
	err := r.fail[name]
	shouldPanic := r.panics[name]
	block := r.block[name]
	r.mu.Unlock()

	if block != nil {
		<-block
	}
	if shouldPanic {
		panic(fmt.Sprintf("%s exploded", name))
	}
	return err
}

func (r *recorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.calls))
	for _, c := range r.calls {
		out = append(out, c.name)
	}
	return out
}

func (r *recorder) get(name string) (call, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.calls {
		if c.name == name {
			return c, true
		}
	}
	return call{}, false
}

func (r *recorder) blockOn(name string) chan struct{} {
	ch := make(chan struct{})
	r.mu.Lock()
	r.block[name] = ch
	r.mu.Unlock()
	return ch
}

type fakeFireproof struct {
	domains scope.Set
	err     error
}

func (f *fakeFireproof) IsFireproof(_ context.Context, d string) bool {
	return f.domains.Contains(d)
}

func (f *fakeFireproof) FireproofDomains(context.Context) (scope.Set, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.domains.Clone(), nil
}

type fakeHistory struct {
	rec       *recorder
	mu        sync.Mutex
	remaining scope.Set
	urls      map[string][]string
	visits    []*entity.Visit
	residue   int64
}

func (h *fakeHistory) BurnVisits(_ context.Context, visits []*entity.Visit) error {
	h.mu.Lock()
	h.visits = append(h.visits, visits...)
	h.mu.Unlock()
	return h.rec.record("history.visits", scope.FromURLs(entity.VisitURLs(visits)...), nil)
}

func (h *fakeHistory) BurnDomains(_ context.Context, domains scope.Set) ([]string, error) {
	if err := h.rec.record("history.domains", domains, nil); err != nil {
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	var removed []string
	for _, d := range domains.Sorted() {
		removed = append(removed, h.urls[d]...)
	}
	return removed, nil
}

func (h *fakeHistory) BurnAll(_ context.Context, except scope.Set) error {
	return h.rec.record("history.all", nil, except)
}

func (h *fakeHistory) Domains(context.Context) (scope.Set, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.remaining.Clone(), nil
}

func (h *fakeHistory) Residue(context.Context, scope.Set) (int64, error) {
	return h.residue, nil
}

type fakeWebCache struct{ rec *recorder }

func (w fakeWebCache) ClearAll(_ context.Context, except scope.Set) error {
	return w.rec.record("web_cache.all", nil, except)
}

func (w fakeWebCache) Clear(_ context.Context, domains scope.Set) error {
	return w.rec.record("web_cache.domains", domains, nil)
}

type fakeFavicons struct {
	rec *recorder
	mu  sync.Mutex
	ex  port.FaviconExceptions
}

func (f *fakeFavicons) Burn(_ context.Context, except port.FaviconExceptions) error {
	f.mu.Lock()
	f.ex = except
	f.mu.Unlock()
	return f.rec.record("favicons.all", nil, except.Fireproof)
}

func (f *fakeFavicons) BurnDomains(_ context.Context, domains scope.Set, except port.FaviconExceptions) error {
	f.mu.Lock()
	f.ex = except
	f.mu.Unlock()
	return f.rec.record("favicons.domains", domains, except.Fireproof)
}

func (f *fakeFavicons) exceptions() port.FaviconExceptions {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ex
}

type fakePermissions struct{ rec *recorder }

func (p fakePermissions) BurnPermissionsExcept(_ context.Context, fireproof scope.Set) error {
	return p.rec.record("permissions.all", nil, fireproof)
}

func (p fakePermissions) BurnPermissionsOf(_ context.Context, domains scope.Set) error {
	return p.rec.record("permissions.domains", domains, nil)
}

type fakeDownloads struct{ rec *recorder }

func (d fakeDownloads) CleanupInactive(_ context.Context, domains, except scope.Set) error {
	return d.rec.record("downloads", domains, except)
}

type fakeZoom struct{ rec *recorder }

func (z fakeZoom) BurnExcept(_ context.Context, fireproof scope.Set) error {
	return z.rec.record("zoom.all", nil, fireproof)
}

func (z fakeZoom) BurnOf(_ context.Context, domains scope.Set) error {
	return z.rec.record("zoom.domains", domains, nil)
}

type fakeVisitedLinks struct {
	rec     *recorder
	mu      sync.Mutex
	removed []string
}

func (v *fakeVisitedLinks) RemoveAll(context.Context) error {
	return v.rec.record("visited_links.all", nil, nil)
}

func (v *fakeVisitedLinks) RemoveVisitedLink(_ context.Context, u string) error {
	v.mu.Lock()
	v.removed = append(v.removed, u)
	v.mu.Unlock()
	return nil
}

func (v *fakeVisitedLinks) links() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.removed...)
}

type fakeAutoconsent struct{ rec *recorder }

func (a fakeAutoconsent) ClearCache(_ context.Context, domains scope.Set) error {
	return a.rec.record("autoconsent.cache", domains, nil)
}

func (a fakeAutoconsent) ClearStats(context.Context) error {
	return a.rec.record("autoconsent.stats", nil, nil)
}

type fakeRecentlyClosed struct{ rec *recorder }

func (r fakeRecentlyClosed) BurnCache(_ context.Context, domains, except scope.Set) error {
	return r.rec.record("recently_closed", domains, except)
}

type fakeSession struct{ rec *recorder }

func (s fakeSession) ClearLastSessionState(context.Context) error {
	return s.rec.record("session_state", nil, nil)
}

type fakeChat struct{ rec *recorder }

func (c fakeChat) CleanAIChatHistory(context.Context) error {
	return c.rec.record("chat_history", nil, nil)
}

type fakeSync struct {
	rec    *recorder
	active bool
}

func (s *fakeSync) IsSyncActive(context.Context) bool { return s.active }

func (s *fakeSync) PurgeDeletedBookmarks(context.Context) error {
	return s.rec.record("sync_metadata", nil, nil)
}

type fakePrivacyStats struct{ rec *recorder }

func (p fakePrivacyStats) ClearPrivacyStats(context.Context) error {
	return p.rec.record("privacy_stats", nil, nil)
}

type staticDomains scope.Set

func (s staticDomains) Domains(context.Context) (scope.Set, error) {
	return scope.Set(s).Clone(), nil
}

type fakeSettings struct {
	mu       sync.Mutex
	settings port.FireVisualSettings
	onChange []func(port.FireVisualSettings)
}

func (s *fakeSettings) FireVisualSettings() port.FireVisualSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *fakeSettings) OnFireVisualSettingsChange(fn func(port.FireVisualSettings)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

func (s *fakeSettings) set(v port.FireVisualSettings) {
	s.mu.Lock()
	s.settings = v
	fns := slices.Clone(s.onChange)
	s.mu.Unlock()
	for _, fn := range fns {
		fn(v)
	}
}

var errStoreDown = errors.New("store unavailable")

type harness struct {
	ctx       context.Context
	rec       *recorder
	main      *mainloop.Inline
	windows   *browser.WindowManager
	settings  *fakeSettings
	fireproof *fakeFireproof
	history   *fakeHistory
	favicons  *fakeFavicons
	visited   *fakeVisitedLinks
	sync      *fakeSync
	deps      fire.Dependencies
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctx := testContext()
	rec := newRecorder()
	h := &harness{
		ctx:       ctx,
		rec:       rec,
		main:      &mainloop.Inline{},
		windows:   browser.NewWindowManager(ctx),
		settings:  &fakeSettings{},
		fireproof: &fakeFireproof{domains: scope.NewSet()},
		history:   &fakeHistory{rec: rec, remaining: scope.NewSet(), urls: map[string][]string{}},
		favicons:  &fakeFavicons{rec: rec},
		visited:   &fakeVisitedLinks{rec: rec},
		sync:      &fakeSync{rec: rec},
	}
	h.deps = fire.Dependencies{
		MainThread:         h.main,
		AppState:           h.windows,
		Windows:            h.windows,
		Fireproof:          h.fireproof,
		History:            h.history,
		WebCache:           fakeWebCache{rec},
		Favicons:           h.favicons,
		Permissions:        fakePermissions{rec},
		Downloads:          fakeDownloads{rec},
		ZoomLevels:         fakeZoom{rec},
		VisitedLinks:       h.visited,
		Autoconsent:        fakeAutoconsent{rec},
		RecentlyClosed:     fakeRecentlyClosed{rec},
		SessionRestoration: fakeSession{rec},
		ChatHistory:        fakeChat{rec},
		SyncMetadata:       h.sync,
		PrivacyStats:       fakePrivacyStats{rec},
	}
	return h
}

// build finalizes the dependencies; tests tweak h.deps before calling it.
func (h *harness) build(t *testing.T) *fire.Fire {
	t.Helper()
	if h.deps.Visualize == nil {
		h.deps.Visualize = fire.NewVisualizeFireSettingsDecider(h.settings)
	}
	f, err := fire.New(h.deps)
	require.NoError(t, err)
	return f
}

func allOptions() fire.BurnOptions {
	return fire.BurnOptions{IncludingHistory: true, IncludeCookiesAndSiteData: true, IncludeChatHistory: true}
}
