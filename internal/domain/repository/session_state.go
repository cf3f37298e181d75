package repository

import (
	"context"

	"github.com/bnema/ember/internal/domain/entity"
)

// SessionStateRepository persists the snapshot restored on next launch.
type SessionStateRepository interface {
	// SaveSnapshot replaces the stored snapshot.
	SaveSnapshot(ctx context.Context, state *entity.SessionState) error

	// GetSnapshot returns the stored snapshot, or nil.
	GetSnapshot(ctx context.Context) (*entity.SessionState, error)

	// ClearLastSessionState drops the stored snapshot.
	ClearLastSessionState(ctx context.Context) error
}
