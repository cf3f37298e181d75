package repository

import (
	"context"

	"github.com/bnema/ember/internal/domain/entity"
	"github.com/bnema/ember/internal/domain/scope"
)

// DownloadRepository stores the downloads list.
type DownloadRepository interface {
	Add(ctx context.Context, d *entity.Download) error
	SetState(ctx context.Context, id int64, state entity.DownloadState) error
	List(ctx context.Context) ([]*entity.Download, error)
	// CleanupInactive removes downloads that are no longer running.
	CleanupInactive(ctx context.Context, domains, except scope.Set) error
}
