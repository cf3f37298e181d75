// Package webcache keeps website data (cookies, local storage, HTTP cache)
// in one directory per site so a burn can drop a site in a single remove.
package webcache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/bnema/ember/internal/domain/scope"
	"github.com/bnema/ember/internal/logging"
)

// Kind is a category of website data.
type Kind string

const (
	KindCookies      Kind = "cookies"
	KindLocalStorage Kind = "local_storage"
	KindHTTPCache    Kind = "http_cache"
)

const (
	dirPerm  = 0o750
	filePerm = 0o600
)

// Store is a website data store rooted at root on fs.
type Store struct {
	fs   afero.Fs
	root string
}

// NewStore creates a website data store.
func NewStore(fs afero.Fs, root string) *Store {
	return &Store{fs: fs, root: root}
}

// Put writes one record of website data for the site of host.
func (s *Store) Put(host string, kind Kind, name string, data []byte) error {
	site, err := scope.ETLDPlusOne(host)
	if err != nil {
		return err
	}
	if name == "" || filepath.Base(name) != name {
		return fmt.Errorf("invalid record name %q", name)
	}
	dir := filepath.Join(s.root, site, string(kind))
	if err := s.fs.MkdirAll(dir, dirPerm); err != nil {
		return err
	}
	return afero.WriteFile(s.fs, filepath.Join(dir, name), data, filePerm)
}

// Sites returns every site holding data.
func (s *Store) Sites() (scope.Set, error) {
	entries, err := afero.ReadDir(s.fs, s.root)
	if errors.Is(err, os.ErrNotExist) {
		return scope.NewSet(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("list website data: %w", err)
	}
	sites := scope.NewSet()
	for _, e := range entries {
		if e.IsDir() {
			sites.Add(e.Name())
		}
	}
	return sites, nil
}

// ClearAll removes the data of every site except the given ones.
func (s *Store) ClearAll(ctx context.Context, except scope.Set) error {
	return s.remove(ctx, func(site string) bool { return !scope.MatchesAny(site, except) })
}

// Clear removes the data of the given sites and their sub-domains.
func (s *Store) Clear(ctx context.Context, baseDomains scope.Set) error {
	if baseDomains.IsEmpty() {
		return nil
	}
	return s.remove(ctx, func(site string) bool { return scope.MatchesAny(site, baseDomains) })
}

// Residue counts sites outside except that still hold data.
func (s *Store) Residue(_ context.Context, except scope.Set) (int64, error) {
	sites, err := s.Sites()
	if err != nil {
		return 0, err
	}
	var n int64
	for site := range sites {
		if !scope.MatchesAny(site, except) {
			n++
		}
	}
	return n, nil
}

func (s *Store) remove(ctx context.Context, match func(site string) bool) error {
	sites, err := s.Sites()
	if err != nil {
		return err
	}

	var errs []error
	var removed []string
	for _, site := range sites.Sorted() {
		if !match(site) {
			continue
		}
		if err := s.fs.RemoveAll(filepath.Join(s.root, site)); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", site, err))
			continue
		}
		removed = append(removed, site)
	}

	logging.FromContext(ctx).Debug().Strs("sites", removed).Msg("website data removed")
	return errors.Join(errs...)
}
