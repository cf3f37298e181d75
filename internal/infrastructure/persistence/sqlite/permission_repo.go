package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/bnema/ember/internal/domain/entity"
	"github.com/bnema/ember/internal/domain/repository"
	"github.com/bnema/ember/internal/domain/scope"
	"github.com/bnema/ember/internal/logging"
)

type permissionRepo struct {
	db *sql.DB
}

// NewPermissionRepository creates a new SQLite-backed permission repository.
func NewPermissionRepository(db *sql.DB) repository.PermissionRepository {
	return &permissionRepo{db: db}
}

func (r *permissionRepo) Get(ctx context.Context, domain string, permType entity.PermissionType) (*entity.PermissionRecord, error) {
	var rec entity.PermissionRecord
	err := r.db.QueryRowContext(ctx,
		`SELECT domain, permission_type, decision, updated_at FROM permissions WHERE domain = ? AND permission_type = ?`,
		domain, string(permType)).Scan(&rec.Domain, &rec.Type, &rec.Decision, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *permissionRepo) Set(ctx context.Context, record *entity.PermissionRecord) error {
	log := logging.FromContext(ctx)
	log.Debug().
		Str("domain", record.Domain).
		Str("type", string(record.Type)).
		Str("decision", string(record.Decision)).
		Msg("setting permission")

	record.Domain = domainOf(record.Domain)
	if record.UpdatedAt == 0 {
		record.UpdatedAt = time.Now().Unix()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO permissions (domain, permission_type, decision, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(domain, permission_type) DO UPDATE SET decision = excluded.decision, updated_at = excluded.updated_at`,
		record.Domain, string(record.Type), string(record.Decision), record.UpdatedAt)
	return err
}

func (r *permissionRepo) GetAll(ctx context.Context) ([]*entity.PermissionRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT domain, permission_type, decision, updated_at FROM permissions ORDER BY domain, permission_type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.PermissionRecord
	for rows.Next() {
		var rec entity.PermissionRecord
		if err := rows.Scan(&rec.Domain, &rec.Type, &rec.Decision, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

func (r *permissionRepo) BurnPermissionsExcept(ctx context.Context, fireproof scope.Set) error {
	n, err := deleteWhere(ctx, r.db, "permissions", "domain", nil, fireproof)
	logging.FromContext(ctx).Debug().Int64("removed", n).Msg("permissions burned")
	return err
}

func (r *permissionRepo) BurnPermissionsOf(ctx context.Context, domains scope.Set) error {
	n, err := deleteWhere(ctx, r.db, "permissions", "domain", domains, nil)
	logging.FromContext(ctx).Debug().Int64("removed", n).Strs("domains", domains.Sorted()).Msg("permissions burned for domains")
	return err
}

func (r *permissionRepo) Residue(ctx context.Context, except scope.Set) (int64, error) {
	return countOutside(ctx, r.db, "permissions", "domain", except)
}
