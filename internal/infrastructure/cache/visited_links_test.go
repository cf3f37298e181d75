package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bnema/ember/internal/application/port"
	"github.com/bnema/ember/internal/domain/entity"
	"github.com/bnema/ember/internal/domain/scope"
	mock_cache "github.com/bnema/ember/internal/infrastructure/cache/mocks"
)

var (
	_ port.VisitedLinkCache = (*VisitedLinks)(nil)
	_ port.AutoconsentCache = (*Autoconsent)(nil)
)

func recentVisits() []*entity.Visit {
	now := time.Now()
	return []*entity.Visit{
		{ID: 3, URL: "https://github.com/", VisitedAt: now.Add(-time.Minute)},
		{ID: 2, URL: "https://go.dev/", VisitedAt: now.Add(-time.Hour)},
		{ID: 1, URL: "https://example.com/", VisitedAt: now.Add(-2 * time.Hour)},
	}
}

func TestVisitedLinks_Warm(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mock_cache.NewMockVisitSource(ctrl)
	source.EXPECT().GetRecent(gomock.Any(), 2).Return(recentVisits()[:2], nil)

	links := NewVisitedLinks(2)
	require.NoError(t, links.Warm(context.Background(), source, 2))

	assert.True(t, links.Contains("https://github.com/"))
	assert.True(t, links.Contains("https://go.dev/"))
	// The newest visit must be the last one evicted.
	assert.Equal(t, []string{"https://github.com/", "https://go.dev/"}, links.links.Keys())
}

func TestVisitedLinks_WarmError(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mock_cache.NewMockVisitSource(ctrl)
	source.EXPECT().GetRecent(gomock.Any(), gomock.Any()).Return(nil, errors.New("db locked"))

	links := NewVisitedLinks(10)
	err := links.Warm(context.Background(), source, 100)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "db locked")
	assert.Zero(t, links.Len())
}

func TestVisitedLinks_Remove(t *testing.T) {
	ctx := context.Background()
	links := NewVisitedLinks(10)
	links.Add("https://a.com/")
	links.Add("https://b.com/")

	require.NoError(t, links.RemoveVisitedLink(ctx, "https://a.com/"))
	assert.False(t, links.Contains("https://a.com/"))
	assert.True(t, links.Contains("https://b.com/"))

	require.NoError(t, links.RemoveAll(ctx))
	assert.Zero(t, links.Len())
}

func TestAutoconsent_ClearCache(t *testing.T) {
	ctx := context.Background()
	consent := NewAutoconsent(10)
	require.NoError(t, consent.Record("www.a.com", ConsentOptedOut))
	require.NoError(t, consent.Record("b.com", ConsentNoPopup))
	require.NoError(t, consent.Record("shop.c.co.uk", ConsentOptedOut))
	assert.Error(t, consent.Record("co.uk", ConsentOptedOut))

	outcome, ok := consent.Outcome("a.com")
	require.True(t, ok)
	assert.Equal(t, ConsentOptedOut, outcome)

	require.NoError(t, consent.ClearCache(ctx, scope.NewSet("a.com", "c.co.uk")))
	_, ok = consent.Outcome("a.com")
	assert.False(t, ok)
	_, ok = consent.Outcome("b.com")
	assert.True(t, ok)

	require.NoError(t, consent.ClearCache(ctx, scope.NewSet()))
	_, ok = consent.Outcome("b.com")
	assert.True(t, ok, "an empty set clears nothing")

	require.NoError(t, consent.ClearCache(ctx, nil))
	_, ok = consent.Outcome("b.com")
	assert.False(t, ok)
}

func TestAutoconsent_Stats(t *testing.T) {
	consent := NewAutoconsent(10)
	require.NoError(t, consent.Record("a.com", ConsentOptedOut))
	require.NoError(t, consent.Record("b.com", ConsentNoPopup))

	assert.Equal(t, AutoconsentStats{PopupsHandled: 1, SitesVisited: 2}, consent.Stats())

	require.NoError(t, consent.ClearStats(context.Background()))
	assert.Equal(t, AutoconsentStats{}, consent.Stats())
	_, ok := consent.Outcome("a.com")
	assert.True(t, ok, "stats reset keeps the site cache")
}
