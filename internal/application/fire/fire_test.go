package fire_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/ember/internal/application/fire"
	"github.com/bnema/ember/internal/application/port"
	"github.com/bnema/ember/internal/application/port/mocks"
	"github.com/bnema/ember/internal/domain/entity"
	"github.com/bnema/ember/internal/domain/scope"
	"github.com/bnema/ember/internal/domain/url"
)

// newReporter returns a reporter accepting any call. Expectations set by
// expect are registered first so they take precedence.
func newReporter(t *testing.T, expect func(r *mocks.MockBurnReporter)) *mocks.MockBurnReporter {
	r := mocks.NewMockBurnReporter(t)
	if expect != nil {
		expect(r)
	}
	r.EXPECT().BurnStarted(mock.Anything).Maybe()
	r.EXPECT().BurnFinished(mock.Anything, mock.Anything).Maybe()
	r.EXPECT().StepFinished(mock.Anything, mock.Anything, mock.Anything).Maybe()
	r.EXPECT().ResidueFound(mock.Anything, mock.Anything).Maybe()
	r.EXPECT().InvariantViolated(mock.Anything, mock.Anything).Maybe()
	r.EXPECT().OverlappingBurn(mock.Anything).Maybe()
	return r
}

func isErr(err error) bool { return err != nil }

func TestNew_ReportsMissingDependencies(t *testing.T) {
	_, err := fire.New(fire.Dependencies{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing dependency History")
	assert.Contains(t, err.Error(), "missing dependency MainThread")
}

func TestBurnEntity_NoneClearsScopedStoresOnly(t *testing.T) {
	h := newHarness(t)
	f := h.build(t)
	w := h.windows.OpenWindow(port.OpenWindowOptions{URL: "https://example.com"})

	var published []*entity.BurningData
	f.SubscribeBurningData(func(d *entity.BurningData) { published = append(published, d) })

	f.BurnEntity(h.ctx, entity.NoneEntity{SelectedDomains: scope.NewSet("example.com")}, allOptions())

	for _, name := range []string{
		"web_cache.domains", "history.domains", "favicons.domains", "permissions.domains",
		"downloads", "autoconsent.cache", "zoom.domains", "recently_closed",
	} {
		c, ok := h.rec.get(name)
		require.True(t, ok, "%s not called", name)
		assert.Equal(t, []string{"example.com"}, c.domains, name)
	}
	assert.Contains(t, h.rec.names(), "chat_history")
	assert.NotContains(t, h.rec.names(), "history.all")

	require.Len(t, h.windows.Windows(), 1)
	assert.Equal(t, w.ID, h.windows.Windows()[0].ID)
	assert.Equal(t, 1, w.Tabs.Count())

	require.Len(t, published, 2)
	require.NotNil(t, published[0])
	assert.Equal(t, entity.BurningSpecificDomains, published[0].Kind)
	assert.False(t, published[0].ShouldPlayFireAnimation)
	assert.Nil(t, published[1])
	assert.Nil(t, f.BurningData())
}

func TestBurnEntity_ExcludesFireproofDomainsEverywhere(t *testing.T) {
	h := newHarness(t)
	h.fireproof.domains = scope.NewSet("keep.com")
	f := h.build(t)

	f.BurnEntity(h.ctx, entity.NoneEntity{SelectedDomains: scope.NewSet("example.com", "keep.com")}, allOptions())

	for _, name := range []string{
		"web_cache.domains", "history.domains", "favicons.domains", "permissions.domains",
		"autoconsent.cache", "zoom.domains", "recently_closed", "downloads",
	} {
		c, ok := h.rec.get(name)
		require.True(t, ok, name)
		assert.NotContains(t, c.domains, "keep.com", name)
	}
	ex := h.favicons.exceptions()
	assert.True(t, ex.Contains("keep.com"))
}

func TestBurnEntity_SkipsScopedStoresWhenNothingLeft(t *testing.T) {
	h := newHarness(t)
	h.fireproof.domains = scope.NewSet("keep.com")
	f := h.build(t)

	f.BurnEntity(h.ctx, entity.NoneEntity{SelectedDomains: scope.NewSet("keep.com")}, allOptions())

	assert.ElementsMatch(t, []string{"session_state", "sync_metadata", "chat_history"}, h.rec.names())
}

func TestBurnEntity_UnavailableFireproofListSkipsStores(t *testing.T) {
	h := newHarness(t)
	h.fireproof.domains = scope.NewSet("bank.example")
	h.fireproof.err = errStoreDown
	f := h.build(t)

	f.BurnEntity(h.ctx, entity.NoneEntity{SelectedDomains: scope.NewSet("bank.example", "a.com")}, allOptions())

	names := h.rec.names()
	for _, name := range []string{
		"history.domains", "permissions.domains", "web_cache.domains", "zoom.domains",
		"favicons.domains", "downloads", "autoconsent.cache", "recently_closed",
	} {
		assert.NotContains(t, names, name)
	}
	assert.Contains(t, names, "session_state")
	assert.Contains(t, names, "chat_history")
	assert.Nil(t, f.BurningData())
}

func TestBurnEntity_NormalizesAndReportsSubdomainRequests(t *testing.T) {
	h := newHarness(t)
	h.deps.Reporter = newReporter(t, func(r *mocks.MockBurnReporter) {
		r.EXPECT().InvariantViolated("none", []string{"sub.example.com"}).Once()
	})
	f := h.build(t)

	f.BurnEntity(h.ctx, entity.NoneEntity{SelectedDomains: scope.NewSet("sub.example.com")}, allOptions())

	c, ok := h.rec.get("web_cache.domains")
	require.True(t, ok)
	assert.Equal(t, []string{"example.com"}, c.domains)
}

func TestBurnEntity_LeafFailuresDoNotBlockCompletion(t *testing.T) {
	h := newHarness(t)
	h.rec.fail["history.domains"] = errStoreDown
	h.rec.panics["zoom.domains"] = true
	h.deps.Reporter = newReporter(t, func(r *mocks.MockBurnReporter) {
		r.EXPECT().StepFinished(port.StepHistory, mock.Anything, errStoreDown).Once()
		r.EXPECT().StepFinished(port.StepZoomLevels, mock.Anything, mock.MatchedBy(isErr)).Once()
		r.EXPECT().BurnFinished("none", mock.Anything).Once()
	})
	f := h.build(t)

	f.BurnEntity(h.ctx, entity.NoneEntity{SelectedDomains: scope.NewSet("example.com")}, allOptions())

	names := h.rec.names()
	assert.Contains(t, names, "favicons.domains", "chained steps still run after a failure")
	assert.Contains(t, names, "downloads")
	assert.Contains(t, names, "recently_closed")
	assert.Nil(t, f.BurningData())
}

func TestBurnEntity_WaitsForEveryStore(t *testing.T) {
	// Chained steps follow the step they wait on.
	leaves := []string{
		"web_cache.domains", "history.domains", "favicons.domains", "permissions.domains",
		"downloads", "autoconsent.cache", "zoom.domains", "recently_closed", "chat_history",
	}
	h := newHarness(t)
	release := make(map[string]chan struct{}, len(leaves))
	for _, name := range leaves {
		release[name] = h.rec.blockOn(name)
	}
	f := h.build(t)

	done := make(chan struct{})
	go func() {
		f.BurnEntity(h.ctx, entity.NoneEntity{SelectedDomains: scope.NewSet("example.com")}, allOptions())
		close(done)
	}()
	finished := func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}

	for _, name := range leaves {
		require.Eventually(t, func() bool {
			_, ok := h.rec.get(name)
			return ok
		}, time.Second, 5*time.Millisecond, "%s not called", name)
		assert.Never(t, finished, 20*time.Millisecond, 5*time.Millisecond, "completed before %s returned", name)
		assert.NotNil(t, f.BurningData())
		close(release[name])
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("burn did not complete")
	}
	assert.Nil(t, f.BurningData())
}

func TestBurnEntity_FireAnimationHoldsCompletion(t *testing.T) {
	h := newHarness(t)
	h.deps.AnimationTimeout = time.Minute
	f := h.build(t)
	f.SubscribeBurningData(func(d *entity.BurningData) {
		if d != nil {
			f.FireAnimationDidStart()
		}
	})

	done := make(chan struct{})
	go func() {
		f.BurnEntity(h.ctx, entity.NoneEntity{SelectedDomains: scope.NewSet("example.com")}, allOptions())
		close(done)
	}()

	require.Eventually(t, func() bool {
		_, ok := h.rec.get("recently_closed")
		return ok
	}, time.Second, 5*time.Millisecond)
	assert.Never(t, func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, 50*time.Millisecond, 5*time.Millisecond)

	f.FireAnimationDidFinish()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("burn did not complete after the animation finished")
	}
}

func TestBurnEntity_StuckAnimationTimesOut(t *testing.T) {
	h := newHarness(t)
	h.deps.AnimationTimeout = 20 * time.Millisecond
	h.deps.Reporter = newReporter(t, func(r *mocks.MockBurnReporter) {
		r.EXPECT().StepFinished(port.StepAnimation, mock.Anything, mock.MatchedBy(isErr)).Once()
	})
	f := h.build(t)
	f.SubscribeBurningData(func(d *entity.BurningData) {
		if d != nil {
			f.FireAnimationDidStart()
		}
	})

	done := make(chan struct{})
	go func() {
		f.BurnEntity(h.ctx, entity.NoneEntity{SelectedDomains: scope.NewSet("example.com")}, allOptions())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("burn did not complete after the animation timeout")
	}
}

func TestBurnEntity_AnimationTimeoutFiringImmediately(t *testing.T) {
	h := newHarness(t)
	h.deps.AnimationTimeout = time.Nanosecond
	f := h.build(t)
	f.SubscribeBurningData(func(d *entity.BurningData) {
		if d != nil {
			f.FireAnimationDidStart()
			f.FireAnimationDidStart()
		}
	})

	done := make(chan struct{})
	go func() {
		for range 50 {
			f.BurnEntity(h.ctx, entity.NoneEntity{SelectedDomains: scope.NewSet("example.com")}, allOptions())
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("burns did not complete")
	}
	assert.Nil(t, f.BurningData())
}

func TestFireAnimation_IgnoredWhenIdle(t *testing.T) {
	h := newHarness(t)
	f := h.build(t)

	f.FireAnimationDidStart()
	f.FireAnimationDidFinish()

	f.BurnEntity(h.ctx, entity.NoneEntity{SelectedDomains: scope.NewSet("example.com")}, allOptions())
	assert.Nil(t, f.BurningData())
}

func TestBurnEntity_OverlappingBurnIsReported(t *testing.T) {
	h := newHarness(t)
	release := h.rec.blockOn("history.domains")
	h.deps.Reporter = newReporter(t, func(r *mocks.MockBurnReporter) {
		r.EXPECT().OverlappingBurn("none").Once()
	})
	f := h.build(t)

	first := make(chan struct{})
	go func() {
		f.BurnEntity(h.ctx, entity.NoneEntity{SelectedDomains: scope.NewSet("a.com")}, allOptions())
		close(first)
	}()
	require.Eventually(t, func() bool {
		_, ok := h.rec.get("history.domains")
		return ok
	}, time.Second, 5*time.Millisecond)

	f.BurnEntity(h.ctx, entity.NoneEntity{SelectedDomains: scope.NewSet("b.com")}, fire.BurnOptions{IncludeCookiesAndSiteData: true})

	close(release)
	<-first
}

func TestBurnEntity_SessionStateClearedFirst(t *testing.T) {
	h := newHarness(t)
	f := h.build(t)

	f.BurnEntity(h.ctx, entity.NoneEntity{SelectedDomains: scope.NewSet("example.com")}, allOptions())

	names := h.rec.names()
	require.GreaterOrEqual(t, len(names), 2)
	assert.Equal(t, "session_state", names[0])
	assert.Equal(t, "sync_metadata", names[1])
}

func TestBurnEntity_KeepsSyncMetadataWhileSyncIsActive(t *testing.T) {
	h := newHarness(t)
	h.sync.active = true
	f := h.build(t)

	f.BurnEntity(h.ctx, entity.NoneEntity{SelectedDomains: scope.NewSet("example.com")}, allOptions())

	assert.NotContains(t, h.rec.names(), "sync_metadata")
	assert.Contains(t, h.rec.names(), "session_state")
}

func TestBurnEntity_OptionalStoresMayBeMissing(t *testing.T) {
	h := newHarness(t)
	h.deps.ChatHistory = nil
	h.deps.SyncMetadata = nil
	h.deps.PrivacyStats = nil
	f := h.build(t)

	f.BurnEntity(h.ctx, entity.NoneEntity{SelectedDomains: scope.NewSet("example.com")}, allOptions())
	f.BurnChatHistory(h.ctx)

	assert.NotContains(t, h.rec.names(), "chat_history")
	assert.Contains(t, h.rec.names(), "web_cache.domains")
}

func TestBurnEntity_RespectsCategoryOptions(t *testing.T) {
	h := newHarness(t)
	f := h.build(t)

	f.BurnEntity(h.ctx, entity.NoneEntity{SelectedDomains: scope.NewSet("example.com")}, fire.BurnOptions{IncludingHistory: true})

	names := h.rec.names()
	assert.Contains(t, names, "history.domains")
	assert.Contains(t, names, "recently_closed")
	for _, absent := range []string{"web_cache.domains", "permissions.domains", "zoom.domains", "autoconsent.cache", "chat_history"} {
		assert.NotContains(t, names, absent)
	}
}

func TestBurnEntity_FaviconExceptionsAndVisitedLinks(t *testing.T) {
	h := newHarness(t)
	h.deps.Bookmarks = staticDomains(scope.NewSet("bookmarked.com"))
	h.deps.SavedLogins = staticDomains(scope.NewSet("login.com"))
	h.history.remaining = scope.NewSet("still.com")
	h.history.urls["example.com"] = []string{"https://example.com/a", "https://www.example.com/b"}
	f := h.build(t)

	f.BurnEntity(h.ctx, entity.NoneEntity{SelectedDomains: scope.NewSet("example.com")}, allOptions())

	ex := h.favicons.exceptions()
	assert.True(t, ex.Contains("bookmarked.com"))
	assert.True(t, ex.Contains("www.login.com"))
	assert.True(t, ex.Contains("still.com"))
	assert.False(t, ex.Contains("example.com"))
	assert.Equal(t, []string{"https://example.com/a", "https://www.example.com/b"}, h.visited.links())
}

func TestBurnEntity_WindowGetsPlaceholderInsteadOfClosing(t *testing.T) {
	h := newHarness(t)
	f := h.build(t)
	w := h.windows.OpenWindow(port.OpenWindowOptions{URL: "https://example.com"})

	f.BurnEntity(h.ctx, entity.WindowEntity{
		Window:          w.ID,
		SelectedDomains: scope.NewSet("example.com"),
		Close:           true,
	}, allOptions())

	windows := h.windows.Windows()
	require.Len(t, windows, 1)
	assert.Equal(t, w.ID, windows[0].ID)
	require.Equal(t, 1, w.Tabs.Count())
	assert.Equal(t, url.BlankPage, w.Tabs.ActiveTab().URL)
}

func TestBurnEntity_PinnedTabsSurviveWindowBurn(t *testing.T) {
	h := newHarness(t)
	f := h.build(t)
	w := h.windows.OpenWindow(port.OpenWindowOptions{URL: "https://regular.com"})
	p1 := h.windows.AddTab(w.ID, "https://pinned-one.com", true)
	p2 := h.windows.AddTab(w.ID, "https://pinned-two.com", true)
	p1.Title = "One"
	h.windows.AddTab(w.ID, "https://other.com", false)

	f.BurnEntity(h.ctx, entity.WindowEntity{
		Window:          w.ID,
		SelectedDomains: scope.NewSet("regular.com", "other.com"),
		Close:           true,
	}, allOptions())

	require.Len(t, h.windows.Windows(), 1)
	require.Equal(t, 2, w.Tabs.Count())
	for i, want := range []string{"https://pinned-one.com", "https://pinned-two.com"} {
		tab := w.Tabs.Tabs[i]
		assert.True(t, tab.IsPinned)
		assert.True(t, tab.LoadedFromCache)
		assert.Equal(t, want, tab.URL)
		assert.NotEqual(t, p1.ID, tab.ID)
		assert.NotEqual(t, p2.ID, tab.ID)
	}
	assert.Equal(t, "One", w.Tabs.Tabs[0].Title)
	assert.Equal(t, w.Tabs.Tabs[0].ID, w.Tabs.ActiveTabID)
}

func TestBurnEntity_TabEntity(t *testing.T) {
	t.Run("pinned tab is replaced in place", func(t *testing.T) {
		h := newHarness(t)
		f := h.build(t)
		w := h.windows.OpenWindow(port.OpenWindowOptions{URL: "https://a.com"})
		pinned := h.windows.AddTab(w.ID, "https://pinned.com", true)

		f.BurnEntity(h.ctx, entity.TabEntity{Tab: pinned.ID, Parent: w.ID, SelectedDomains: scope.NewSet("pinned.com"), Close: true}, allOptions())

		require.Equal(t, 2, w.Tabs.Count())
		assert.True(t, w.Tabs.Tabs[0].IsPinned)
		assert.True(t, w.Tabs.Tabs[0].LoadedFromCache)
		assert.Equal(t, "https://pinned.com", w.Tabs.Tabs[0].URL)
		assert.Nil(t, w.Tabs.Find(pinned.ID))
	})

	t.Run("last tab of the only window gets a placeholder", func(t *testing.T) {
		h := newHarness(t)
		f := h.build(t)
		w := h.windows.OpenWindow(port.OpenWindowOptions{URL: "https://a.com"})
		tab := w.Tabs.Tabs[0]

		f.BurnEntity(h.ctx, entity.TabEntity{Tab: tab.ID, Parent: w.ID, SelectedDomains: scope.NewSet("a.com"), Close: true}, allOptions())

		require.Len(t, h.windows.Windows(), 1)
		require.Equal(t, 1, w.Tabs.Count())
		assert.Equal(t, url.BlankPage, w.Tabs.Tabs[0].URL)
	})

	t.Run("one of many tabs is removed", func(t *testing.T) {
		h := newHarness(t)
		f := h.build(t)
		w := h.windows.OpenWindow(port.OpenWindowOptions{URL: "https://a.com"})
		b := h.windows.AddTab(w.ID, "https://b.com", false)

		f.BurnEntity(h.ctx, entity.TabEntity{Tab: b.ID, Parent: w.ID, SelectedDomains: scope.NewSet("b.com"), Close: true}, allOptions())

		require.Equal(t, 1, w.Tabs.Count())
		assert.Equal(t, "https://a.com", w.Tabs.Tabs[0].URL)
	})

	t.Run("backgrounded app lets the window close", func(t *testing.T) {
		h := newHarness(t)
		f := h.build(t)
		w := h.windows.OpenWindow(port.OpenWindowOptions{URL: "https://a.com"})
		h.windows.SetActive(false)

		f.BurnEntity(h.ctx, entity.TabEntity{Tab: w.Tabs.Tabs[0].ID, Parent: w.ID, SelectedDomains: scope.NewSet("a.com"), Close: true}, allOptions())

		assert.Empty(t, h.windows.Windows(), "no window is reopened while the app is in the background")
	})
}

func TestBurnEntity_FireWindowByDefaultReopensFireWindow(t *testing.T) {
	h := newHarness(t)
	h.settings.set(port.FireVisualSettings{OpenFireWindowByDefault: true, FireWindowFeatureEnabled: true})
	f := h.build(t)
	w := h.windows.OpenWindow(port.OpenWindowOptions{URL: "https://a.com"})

	f.BurnEntity(h.ctx, entity.WindowEntity{Window: w.ID, SelectedDomains: scope.NewSet("a.com"), Close: true}, allOptions())

	windows := h.windows.Windows()
	require.Len(t, windows, 1)
	assert.NotEqual(t, w.ID, windows[0].ID)
	assert.True(t, windows[0].IsFireWindow)
}

func TestBurnEntity_NoCloseLeavesUIAlone(t *testing.T) {
	h := newHarness(t)
	f := h.build(t)
	w := h.windows.OpenWindow(port.OpenWindowOptions{URL: "https://a.com"})
	h.windows.AddTab(w.ID, "https://b.com", false)

	f.BurnEntity(h.ctx, entity.WindowEntity{Window: w.ID, SelectedDomains: scope.NewSet("a.com"), Close: false}, allOptions())

	assert.Equal(t, 2, w.Tabs.Count())
	assert.Empty(t, h.windows.PreparedTabs())
}

func TestBurnEntity_PreparesTabsBeforeClosing(t *testing.T) {
	h := newHarness(t)
	f := h.build(t)
	w := h.windows.OpenWindow(port.OpenWindowOptions{URL: "https://a.com"})
	h.windows.AddTab(w.ID, "https://b.com", false)
	var ids []entity.TabID
	for _, tab := range w.Tabs.Tabs {
		ids = append(ids, tab.ID)
	}

	f.BurnEntity(h.ctx, entity.WindowEntity{Window: w.ID, SelectedDomains: scope.NewSet("a.com", "b.com"), Close: true}, allOptions())

	assert.ElementsMatch(t, ids, h.windows.PreparedTabs())
}

func TestBurnAll_GlobalStoresExceptFireproof(t *testing.T) {
	h := newHarness(t)
	h.fireproof.domains = scope.NewSet("keep.com")
	f := h.build(t)
	h.windows.OpenWindow(port.OpenWindowOptions{URL: "https://a.com"})

	f.BurnAll(h.ctx, fire.BurnAllOptions{IncludeCookiesAndSiteData: true, IncludeChatHistory: true})

	names := h.rec.names()
	assert.Subset(t, names, []string{
		"session_state", "sync_metadata", "history.all", "visited_links.all", "favicons.all",
		"web_cache.all", "permissions.all", "downloads", "zoom.all", "autoconsent.cache",
		"autoconsent.stats", "recently_closed", "privacy_stats", "chat_history",
	})
	for _, name := range []string{"history.all", "web_cache.all", "permissions.all", "zoom.all", "recently_closed", "downloads"} {
		c, _ := h.rec.get(name)
		assert.Equal(t, []string{"keep.com"}, c.except, name)
		assert.Nil(t, c.domains, name)
	}
	assert.Nil(t, f.BurningData())
}

func TestBurnAll_HistoryAndPrivacyStatsWithoutSiteData(t *testing.T) {
	h := newHarness(t)
	f := h.build(t)

	f.BurnAll(h.ctx, fire.BurnAllOptions{})

	names := h.rec.names()
	assert.Contains(t, names, "history.all")
	assert.Contains(t, names, "privacy_stats")
	assert.NotContains(t, names, "web_cache.all")
	assert.NotContains(t, names, "permissions.all")
	assert.NotContains(t, names, "chat_history")
}

func TestBurnAll_UnavailableFireproofListSkipsStores(t *testing.T) {
	h := newHarness(t)
	h.fireproof.err = errStoreDown
	f := h.build(t)

	f.BurnAll(h.ctx, fire.BurnAllOptions{IncludeCookiesAndSiteData: true})

	names := h.rec.names()
	assert.NotContains(t, names, "history.all")
	assert.NotContains(t, names, "web_cache.all")
	assert.Contains(t, names, "privacy_stats")
	assert.Contains(t, names, "session_state")
}

func TestBurnAll_KeepsLastWindowWithPlaceholder(t *testing.T) {
	h := newHarness(t)
	f := h.build(t)
	w := h.windows.OpenWindow(port.OpenWindowOptions{URL: "https://a.com"})

	f.BurnAll(h.ctx, fire.BurnAllOptions{IncludeCookiesAndSiteData: true})

	windows := h.windows.Windows()
	require.Len(t, windows, 1)
	assert.Equal(t, w.ID, windows[0].ID)
	assert.Equal(t, url.BlankPage, w.Tabs.ActiveTab().URL)
}

func TestBurnAll_OpeningURLReopensWindow(t *testing.T) {
	h := newHarness(t)
	f := h.build(t)
	w := h.windows.OpenWindow(port.OpenWindowOptions{URL: "https://a.com"})

	f.BurnAll(h.ctx, fire.BurnAllOptions{OpeningURL: "https://start.example"})

	windows := h.windows.Windows()
	require.Len(t, windows, 1)
	assert.NotEqual(t, w.ID, windows[0].ID)
	assert.Equal(t, "https://start.example", windows[0].Tabs.ActiveTab().URL)
	assert.False(t, windows[0].IsFireWindow)
}

func TestBurnAll_BurnOnExitClosesEverything(t *testing.T) {
	h := newHarness(t)
	f := h.build(t)
	h.windows.OpenWindow(port.OpenWindowOptions{URL: "https://a.com"})
	h.windows.OpenWindow(port.OpenWindowOptions{URL: "https://b.com"})

	f.BurnAll(h.ctx, fire.BurnAllOptions{IsBurnOnExit: true, IncludeCookiesAndSiteData: true})

	assert.Empty(t, h.windows.Windows())
}

func TestBurnAll_PublishOrderFollowsAnimationSetting(t *testing.T) {
	publishedFor := func(t *testing.T, showAnimation bool, opts fire.BurnAllOptions) (string, *entity.BurningData) {
		h := newHarness(t)
		h.settings.set(port.FireVisualSettings{ShowFireAnimation: showAnimation})
		f := h.build(t)
		w := h.windows.OpenWindow(port.OpenWindowOptions{URL: "https://a.com"})

		var seen string
		var data *entity.BurningData
		f.SubscribeBurningData(func(d *entity.BurningData) {
			if d != nil && data == nil {
				data = d
				seen = w.Tabs.ActiveTab().URL
			}
		})
		f.BurnAll(h.ctx, opts)
		require.NotNil(t, data)
		assert.Equal(t, entity.BurningAll, data.Kind)
		return seen, data
	}

	seen, data := publishedFor(t, false, fire.BurnAllOptions{})
	assert.Equal(t, url.BlankPage, seen, "windows close before the burn is published")
	assert.False(t, data.ShouldPlayFireAnimation)

	seen, data = publishedFor(t, true, fire.BurnAllOptions{})
	assert.Equal(t, "https://a.com", seen, "the animation plays over the original tabs")
	assert.True(t, data.ShouldPlayFireAnimation)

	_, data = publishedFor(t, true, fire.BurnAllOptions{IsBurnOnExit: true})
	assert.False(t, data.ShouldPlayFireAnimation, "no animation while quitting")
}

func TestBurnAll_ReportsResidue(t *testing.T) {
	h := newHarness(t)
	h.history.residue = 3
	h.deps.Reporter = newReporter(t, func(r *mocks.MockBurnReporter) {
		r.EXPECT().ResidueFound(port.StepHistory, int64(3)).Once()
	})
	f := h.build(t)

	f.BurnAll(h.ctx, fire.BurnAllOptions{})
}

func TestBurnVisits_RemovesOnlyListedVisits(t *testing.T) {
	h := newHarness(t)
	f := h.build(t)
	w := h.windows.OpenWindow(port.OpenWindowOptions{URL: "https://a.com"})
	visit := entity.NewVisit("https://a.com/x", "X")

	f.BurnVisits(h.ctx, []*entity.Visit{visit}, fire.BurnVisitsOptions{IsToday: true, CloseWindows: true})

	assert.Equal(t, []string{"history.visits"}, h.rec.names())
	assert.Equal(t, []string{"https://a.com/x"}, h.visited.links())
	require.Len(t, h.history.visits, 1)
	assert.Same(t, visit, h.history.visits[0])
	assert.Equal(t, "https://a.com", w.Tabs.ActiveTab().URL)
}

func TestBurnVisits_EscalatesToDomainBurn(t *testing.T) {
	h := newHarness(t)
	h.fireproof.domains = scope.NewSet("keep.com")
	f := h.build(t)
	w := h.windows.OpenWindow(port.OpenWindowOptions{URL: "https://a.com"})
	visits := []*entity.Visit{
		entity.NewVisit("https://www.a.com/x", ""),
		entity.NewVisit("https://keep.com/y", ""),
	}

	f.BurnVisits(h.ctx, visits, fire.BurnVisitsOptions{ExceptFireproofDomains: true, ClearSiteData: true})

	c, ok := h.rec.get("web_cache.domains")
	require.True(t, ok)
	assert.Equal(t, []string{"a.com"}, c.domains)
	assert.NotContains(t, h.rec.names(), "history.domains", "whole-domain history must survive")
	assert.Equal(t, "https://a.com", w.Tabs.ActiveTab().URL, "older visits leave the UI alone")
}

func TestBurnVisits_UnavailableFireproofListStopsEscalation(t *testing.T) {
	h := newHarness(t)
	h.fireproof.domains = scope.NewSet("bank.example")
	h.fireproof.err = errStoreDown
	f := h.build(t)
	visits := []*entity.Visit{entity.NewVisit("https://bank.example/login", "")}

	f.BurnVisits(h.ctx, visits, fire.BurnVisitsOptions{
		ExceptFireproofDomains: true,
		ClearSiteData:          true,
		ClearChatHistory:       true,
	})

	assert.Equal(t, []string{"history.visits", "chat_history"}, h.rec.names())
}

func TestBurnVisits_TodayBurnsWindows(t *testing.T) {
	h := newHarness(t)
	f := h.build(t)
	w := h.windows.OpenWindow(port.OpenWindowOptions{URL: "https://a.com"})

	f.BurnVisits(h.ctx, []*entity.Visit{entity.NewVisit("https://a.com/x", "")}, fire.BurnVisitsOptions{
		IsToday:       true,
		CloseWindows:  true,
		ClearSiteData: true,
	})

	assert.Contains(t, h.rec.names(), "web_cache.domains")
	assert.Equal(t, url.BlankPage, w.Tabs.ActiveTab().URL)
}

func TestBurnVisits_ChatHistoryWithoutSiteData(t *testing.T) {
	h := newHarness(t)
	f := h.build(t)

	f.BurnVisits(h.ctx, []*entity.Visit{entity.NewVisit("https://a.com/x", "")}, fire.BurnVisitsOptions{ClearChatHistory: true})

	assert.Equal(t, []string{"history.visits", "chat_history"}, h.rec.names())
}

func TestCallbacks_InvokeDoneOnMainThread(t *testing.T) {
	h := newHarness(t)
	f := h.build(t)
	cb := fire.NewCallbacks(f)

	done := make(chan struct{}, 4)
	signal := func() { done <- struct{}{} }
	cb.BurnEntityAsync(h.ctx, entity.NoneEntity{SelectedDomains: scope.NewSet("a.com")}, allOptions(), signal)
	cb.BurnChatHistoryAsync(h.ctx, signal)

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("completion not delivered")
		}
	}
}
