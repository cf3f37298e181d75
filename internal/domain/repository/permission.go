package repository

import (
	"context"

	"github.com/bnema/ember/internal/domain/entity"
	"github.com/bnema/ember/internal/domain/scope"
)

// PermissionRepository defines operations for permission persistence.
type PermissionRepository interface {
	// Get retrieves the permission record for a domain and permission type.
	// Returns nil if no record exists (treat as "prompt" state).
	Get(ctx context.Context, domain string, permType entity.PermissionType) (*entity.PermissionRecord, error)

	// Set saves or updates a permission record.
	Set(ctx context.Context, record *entity.PermissionRecord) error

	// GetAll retrieves every stored decision.
	GetAll(ctx context.Context) ([]*entity.PermissionRecord, error)

	BurnPermissionsExcept(ctx context.Context, fireproof scope.Set) error
	BurnPermissionsOf(ctx context.Context, domains scope.Set) error
	Residue(ctx context.Context, except scope.Set) (int64, error)
}
