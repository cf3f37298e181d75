package cache

import (
	"context"

	"github.com/bnema/ember/internal/domain/entity"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_visit_source.go

// VisitSource provides the recent history the visited-link cache is warmed from.
type VisitSource interface {
	GetRecent(ctx context.Context, limit int) ([]*entity.Visit, error)
}
