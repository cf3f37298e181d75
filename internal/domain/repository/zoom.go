package repository

import (
	"context"

	"github.com/bnema/ember/internal/domain/entity"
	"github.com/bnema/ember/internal/domain/scope"
)

// ZoomRepository persists per-site zoom factors. Get returns nil, nil for
// a site at the default zoom.
type ZoomRepository interface {
	Get(ctx context.Context, domain string) (*entity.ZoomLevel, error)
	Set(ctx context.Context, level *entity.ZoomLevel) error
	GetAll(ctx context.Context) ([]*entity.ZoomLevel, error)

	BurnExcept(ctx context.Context, fireproof scope.Set) error
	BurnOf(ctx context.Context, domains scope.Set) error
	Residue(ctx context.Context, except scope.Set) (int64, error)
}
