package favicon

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/ember/internal/application/port"
	"github.com/bnema/ember/internal/domain/scope"
)

var _ port.FaviconStore = (*Cache)(nil)

const testDir = "/cache/favicons"

func seeded(t *testing.T, hosts ...string) (*Cache, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	c := NewCache(fs, testDir)
	for _, h := range hosts {
		require.NoError(t, c.Set(h, []byte("icon:"+h)))
	}
	return c, fs
}

func TestCache_SetGetFromDisk(t *testing.T) {
	c, fs := seeded(t, "GitHub.com")

	exists, err := afero.Exists(fs, testDir+"/github.com.ico")
	require.NoError(t, err)
	assert.True(t, exists)

	fresh := NewCache(fs, testDir)
	data, ok := fresh.Get("github.com")
	require.True(t, ok)
	assert.Equal(t, []byte("icon:GitHub.com"), data)

	_, ok = c.Get("../etc")
	assert.False(t, ok)
}

func TestCache_MemoryOnly(t *testing.T) {
	c := NewCache(afero.NewMemMapFs(), "")
	require.NoError(t, c.Set("a.com", []byte{1}))

	hosts, err := c.Hosts()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.com"}, hosts)
}

func TestCache_BurnHonorsExceptions(t *testing.T) {
	c, _ := seeded(t, "keep.com", "www.bookmarked.org", "login.net", "history.io", "gone.com", "cdn.gone.com")

	err := c.Burn(context.Background(), port.FaviconExceptions{
		Fireproof:       scope.NewSet("keep.com"),
		Bookmarked:      scope.NewSet("bookmarked.org"),
		SavedLogins:     scope.NewSet("login.net"),
		ExistingHistory: scope.NewSet("history.io"),
	})
	require.NoError(t, err)

	fresh := NewCache(c.fs, testDir)
	hosts, err := fresh.Hosts()
	require.NoError(t, err)
	assert.Equal(t, []string{"history.io", "keep.com", "login.net", "www.bookmarked.org"}, hosts)
}

func TestCache_BurnDomains(t *testing.T) {
	c, _ := seeded(t, "a.com", "mail.a.com", "b.com", "c.com")

	err := c.BurnDomains(context.Background(), scope.NewSet("a.com", "c.com"), port.FaviconExceptions{
		Bookmarked: scope.NewSet("c.com"),
	})
	require.NoError(t, err)

	hosts, err := c.Hosts()
	require.NoError(t, err)
	assert.Equal(t, []string{"b.com", "c.com"}, hosts)

	require.NoError(t, c.BurnDomains(context.Background(), scope.NewSet(), port.FaviconExceptions{}))
	hosts, err = c.Hosts()
	require.NoError(t, err)
	assert.Len(t, hosts, 2)
}
