// Package favicon stores site icons in memory and on disk and burns them
// per site.
package favicon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"github.com/bnema/ember/internal/application/port"
	"github.com/bnema/ember/internal/domain/scope"
	"github.com/bnema/ember/internal/logging"
)

const (
	diskCacheDirPerm  = 0o750
	diskCacheFilePerm = 0o600
	iconExt           = ".ico"
)

// Cache keeps favicon bytes per host in memory, backed by one file per
// host under diskDir. Writes are synchronous so a burn never races a
// pending write.
type Cache struct {
	fs      afero.Fs
	diskDir string

	mu       sync.RWMutex
	memCache map[string][]byte
}

// NewCache creates a favicon cache on fs. An empty diskDir keeps icons in
// memory only.
func NewCache(fs afero.Fs, diskDir string) *Cache {
	return &Cache{
		fs:       fs,
		diskDir:  diskDir,
		memCache: make(map[string][]byte),
	}
}

// Get returns the icon for host from memory, falling back to disk.
func (c *Cache) Get(host string) ([]byte, bool) {
	host = normalizeHost(host)
	if host == "" {
		return nil, false
	}

	c.mu.RLock()
	data, ok := c.memCache[host]
	c.mu.RUnlock()
	if ok {
		return data, true
	}

	path := c.diskPath(host)
	if path == "" {
		return nil, false
	}
	data, err := afero.ReadFile(c.fs, path)
	if err != nil || len(data) == 0 {
		return nil, false
	}

	c.mu.Lock()
	c.memCache[host] = data
	c.mu.Unlock()
	return data, true
}

// Set stores the icon for host.
func (c *Cache) Set(host string, data []byte) error {
	host = normalizeHost(host)
	if host == "" || len(data) == 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.memCache[host] = data

	path := c.diskPath(host)
	if path == "" {
		return nil
	}
	if err := c.fs.MkdirAll(c.diskDir, diskCacheDirPerm); err != nil {
		return fmt.Errorf("create favicon dir: %w", err)
	}
	tempPath := path + ".tmp"
	if err := afero.WriteFile(c.fs, tempPath, data, diskCacheFilePerm); err != nil {
		return fmt.Errorf("write favicon: %w", err)
	}
	if err := c.fs.Rename(tempPath, path); err != nil {
		_ = c.fs.Remove(tempPath)
		return fmt.Errorf("rename favicon: %w", err)
	}
	return nil
}

// Hosts returns every host with a cached icon, in memory or on disk.
func (c *Cache) Hosts() ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	set, err := c.hostsLocked()
	if err != nil {
		return nil, err
	}
	return set.Sorted(), nil
}

// Burn removes every icon not covered by except.
func (c *Cache) Burn(ctx context.Context, except port.FaviconExceptions) error {
	return c.burn(ctx, func(host string) bool { return !except.Contains(host) })
}

// BurnDomains removes icons of the domains and their sub-domains unless
// except covers them.
func (c *Cache) BurnDomains(ctx context.Context, domains scope.Set, except port.FaviconExceptions) error {
	if domains.IsEmpty() {
		return nil
	}
	return c.burn(ctx, func(host string) bool {
		return scope.MatchesAny(host, domains) && !except.Contains(host)
	})
}

func (c *Cache) burn(ctx context.Context, match func(host string) bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	hosts, err := c.hostsLocked()
	if err != nil {
		return err
	}

	var errs []error
	removed := 0
	for host := range hosts {
		if !match(host) {
			continue
		}
		delete(c.memCache, host)
		if path := c.diskPath(host); path != "" {
			if err := c.fs.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
				errs = append(errs, fmt.Errorf("remove favicon %s: %w", host, err))
				continue
			}
		}
		removed++
	}

	logging.FromContext(ctx).Debug().Int("removed", removed).Int("kept", len(hosts)-removed).Msg("favicons burned")
	return errors.Join(errs...)
}

func (c *Cache) hostsLocked() (scope.Set, error) {
	hosts := scope.NewSet()
	for host := range c.memCache {
		hosts.Add(host)
	}
	if c.diskDir == "" {
		return hosts, nil
	}

	entries, err := afero.ReadDir(c.fs, c.diskDir)
	if errors.Is(err, os.ErrNotExist) {
		return hosts, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list favicon dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), iconExt) {
			continue
		}
		hosts.Add(strings.TrimSuffix(e.Name(), iconExt))
	}
	return hosts, nil
}

func (c *Cache) diskPath(host string) string {
	if c.diskDir == "" {
		return ""
	}
	return filepath.Join(c.diskDir, host+iconExt)
}

// normalizeHost lower-cases host and rejects anything that could escape
// the cache directory.
func normalizeHost(host string) string {
	host = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(host)), ".")
	if host == "" || strings.ContainsAny(host, `/\`) || strings.Contains(host, "..") {
		return ""
	}
	return host
}
