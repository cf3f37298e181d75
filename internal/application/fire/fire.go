// Package fire implements the Fire button: coordinated, domain-aware
// destruction of browsing data across every store the browser owns.
package fire

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bnema/ember/internal/application/port"
	"github.com/bnema/ember/internal/domain/entity"
	"github.com/bnema/ember/internal/domain/scope"
	"github.com/bnema/ember/internal/logging"
)

// DefaultAnimationTimeout bounds how long a registered fire animation may
// hold a burn open.
const DefaultAnimationTimeout = 10 * time.Second

// Dependencies lists every collaborator of Fire. Nothing is resolved from
// global state; fields marked optional may be nil.
type Dependencies struct {
	MainThread port.MainThread
	AppState   port.AppState
	Windows    port.WindowControllerRegistry
	Visualize  *VisualizeFireSettingsDecider

	Fireproof          port.FireproofDomainSource
	History            port.HistoryStore
	WebCache           port.WebCacheStore
	Favicons           port.FaviconStore
	Permissions        port.PermissionStore
	Downloads          port.DownloadsStore
	ZoomLevels         port.ZoomLevelStore
	VisitedLinks       port.VisitedLinkCache
	Autoconsent        port.AutoconsentCache
	RecentlyClosed     port.RecentlyClosedStore
	SessionRestoration port.SessionRestorationStore

	// Optional.
	ChatHistory  port.ChatHistoryCleaner
	SyncMetadata port.SyncMetadataCleaner
	PrivacyStats port.PrivacyStatsStore
	Bookmarks    port.DomainSource
	SavedLogins  port.DomainSource
	Reporter     port.BurnReporter
	TabPreparer  *TabCleanupPreparer

	// AnimationTimeout defaults to DefaultAnimationTimeout.
	AnimationTimeout time.Duration
}

func (d Dependencies) validate() error {
	required := map[string]any{
		"MainThread":         d.MainThread,
		"AppState":           d.AppState,
		"Windows":            d.Windows,
		"Visualize":          d.Visualize,
		"Fireproof":          d.Fireproof,
		"History":            d.History,
		"WebCache":           d.WebCache,
		"Favicons":           d.Favicons,
		"Permissions":        d.Permissions,
		"Downloads":          d.Downloads,
		"ZoomLevels":         d.ZoomLevels,
		"VisitedLinks":       d.VisitedLinks,
		"Autoconsent":        d.Autoconsent,
		"RecentlyClosed":     d.RecentlyClosed,
		"SessionRestoration": d.SessionRestoration,
	}
	var errs []error
	for _, name := range sortedKeys(required) {
		if isNil(required[name]) {
			errs = append(errs, fmt.Errorf("missing dependency %s", name))
		}
	}
	return errors.Join(errs...)
}

// Fire is the burn orchestrator. Its operations block until the burn is
// complete and never fail: leaf errors are logged and reported, never
// returned.
type Fire struct {
	deps     Dependencies
	reporter port.BurnReporter
	preparer *TabCleanupPreparer

	mu          sync.Mutex
	burningData *entity.BurningData
	current     *Barrier
	holds       []*animationHold
	subscribers map[int]func(*entity.BurningData)
	nextSubID   int
}

// New creates a Fire orchestrator.
func New(deps Dependencies) (*Fire, error) {
	if err := deps.validate(); err != nil {
		return nil, fmt.Errorf("fire: %w", err)
	}
	if deps.AnimationTimeout <= 0 {
		deps.AnimationTimeout = DefaultAnimationTimeout
	}
	reporter := deps.Reporter
	if reporter == nil {
		reporter = nopReporter{}
	}
	preparer := deps.TabPreparer
	if preparer == nil {
		preparer = NewTabCleanupPreparer()
	}
	return &Fire{
		deps:        deps,
		reporter:    reporter,
		preparer:    preparer,
		subscribers: make(map[int]func(*entity.BurningData)),
	}, nil
}

// BurningData returns the state of the burn in flight, or nil when idle.
func (f *Fire) BurningData() *entity.BurningData {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.burningData
}

// SubscribeBurningData registers fn to be called on the main thread each time
// BurningData changes. The returned function unsubscribes.
func (f *Fire) SubscribeBurningData(fn func(*entity.BurningData)) (cancel func()) {
	f.mu.Lock()
	id := f.nextSubID
	f.nextSubID++
	f.subscribers[id] = fn
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		delete(f.subscribers, id)
		f.mu.Unlock()
	}
}

func (f *Fire) publish(ctx context.Context, data *entity.BurningData) {
	f.onMain(ctx, func() {
		f.mu.Lock()
		f.burningData = data
		subs := make([]func(*entity.BurningData), 0, len(f.subscribers))
		for _, id := range sortedKeys(f.subscribers) {
			subs = append(subs, f.subscribers[id])
		}
		f.mu.Unlock()

		for _, fn := range subs {
			fn(data)
		}
	})
}

// burnRun is the bookkeeping of one burn.
type burnRun struct {
	ctx     context.Context
	kind    string
	barrier *Barrier
	started time.Time
}

func (f *Fire) beginRun(ctx context.Context, kind string) *burnRun {
	ctx = logging.WithComponent(ctx, "fire")
	ctx = logging.WithBurnID(ctx, uuid.NewString())
	log := logging.FromContext(ctx)

	run := &burnRun{ctx: ctx, kind: kind, barrier: NewBarrier(), started: time.Now()}

	f.mu.Lock()
	overlapping := f.burningData != nil
	f.current = run.barrier
	f.mu.Unlock()

	if overlapping {
		log.Warn().Str("kind", kind).Msg("burn started while another burn is in progress")
		f.reporter.OverlappingBurn(kind)
	}

	log.Info().Str("kind", kind).Msg("burn started")
	f.reporter.BurnStarted(kind)
	return run
}

// settle releases the unit held by the orchestrator and waits for every
// fanned-out unit. A burn is never cancelled midway.
func (f *Fire) settle(run *burnRun) {
	run.barrier.Leave()
	<-run.barrier.Done()

	f.mu.Lock()
	if f.current == run.barrier {
		f.current = nil
	}
	f.mu.Unlock()
}

func (f *Fire) endRun(run *burnRun) {
	f.publish(run.ctx, nil)
	d := time.Since(run.started)
	f.reporter.BurnFinished(run.kind, d)
	logging.FromContext(run.ctx).Info().
		Str("kind", run.kind).
		Dur("duration", d).
		Msg("burn finished")
}

// onMain runs fn on the UI context. Completion must not depend on the
// caller's context, so cancellation is stripped.
func (f *Fire) onMain(ctx context.Context, fn func()) {
	if err := f.deps.MainThread.Run(context.WithoutCancel(ctx), fn); err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("main thread unavailable, skipping UI work")
	}
}

// FireAnimationDidStart registers the fire animation as a participant of
// the burn in flight, so completion waits for FireAnimationDidFinish.
func (f *Fire) FireAnimationDidStart() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.current == nil || !f.current.Enter() {
		return
	}
	h := &animationHold{barrier: f.current, started: time.Now()}
	h.timer = time.AfterFunc(f.deps.AnimationTimeout, func() {
		f.releaseHold(h, errAnimationTimeout)
	})
	f.holds = append(f.holds, h)
}

// FireAnimationDidFinish releases the oldest animation registration.
func (f *Fire) FireAnimationDidFinish() {
	f.mu.Lock()
	if len(f.holds) == 0 {
		f.mu.Unlock()
		return
	}
	h := f.holds[0]
	f.mu.Unlock()

	f.releaseHold(h, nil)
}

var errAnimationTimeout = errors.New("fire animation did not finish in time")

type animationHold struct {
	barrier *Barrier
	timer   *time.Timer
	started time.Time
	once    sync.Once
}

func (f *Fire) releaseHold(h *animationHold, err error) {
	h.once.Do(func() {
		// h.timer is assigned under f.mu; the timeout may fire before that.
		f.mu.Lock()
		h.timer.Stop()
		for i, held := range f.holds {
			if held == h {
				f.holds = append(f.holds[:i], f.holds[i+1:]...)
				break
			}
		}
		f.mu.Unlock()

		f.reporter.StepFinished(port.StepAnimation, time.Since(h.started), err)
		h.barrier.Leave()
	})
}

// fireproofDomains returns the fireproof list, or an empty set when the
// source fails. A failing source must not widen a burn, so callers doing a
// global burn skip stores that cannot honor the list.
func (f *Fire) fireproofDomains(ctx context.Context) (scope.Set, bool) {
	domains, err := f.deps.Fireproof.FireproofDomains(ctx)
	if err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("failed to load fireproof domains")
		return scope.NewSet(), false
	}
	return domains, true
}

// domainsToBurn checks the eTLD+1 invariant of the request, then returns
// the normalized selection minus fireproof domains.
func (f *Fire) domainsToBurn(ctx context.Context, e entity.BurningEntity, fireproof scope.Set) scope.Set {
	selected := entity.SelectedDomains(e)
	if err := scope.Validate(selected); err != nil {
		var invErr *scope.InvariantError
		if errors.As(err, &invErr) {
			f.reporter.InvariantViolated(entity.EntityKind(e), invErr.Domains)
		}
		logging.FromContext(ctx).Error().Err(err).Msg("burn request violates eTLD+1 invariant, continuing with normalized domains")
	}
	return scope.ToETLDPlusOne(selected).Minus(fireproof)
}

type nopReporter struct{}

func (nopReporter) BurnStarted(string)                               {}
func (nopReporter) BurnFinished(string, time.Duration)               {}
func (nopReporter) StepFinished(port.BurnStep, time.Duration, error) {}
func (nopReporter) ResidueFound(port.BurnStep, int64)                {}
func (nopReporter) InvariantViolated(string, []string)               {}
func (nopReporter) OverlappingBurn(string)                           {}
