package repository

import (
	"context"

	"github.com/bnema/ember/internal/domain/entity"
	"github.com/bnema/ember/internal/domain/scope"
)

// RecentlyClosedRepository stores closed tabs and windows for reopening.
type RecentlyClosedRepository interface {
	Add(ctx context.Context, item *entity.RecentlyClosedItem) error
	// List returns items newest first.
	List(ctx context.Context, limit int) ([]*entity.RecentlyClosedItem, error)
	// BurnCache removes URLs of domains (nil means every domain) outside
	// except. Items left without URLs are dropped.
	BurnCache(ctx context.Context, domains, except scope.Set) error
	Residue(ctx context.Context, except scope.Set) (int64, error)
}
