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

type zoomRepo struct {
	db *sql.DB
}

// NewZoomRepository creates a new SQLite-backed zoom repository.
func NewZoomRepository(db *sql.DB) repository.ZoomRepository {
	return &zoomRepo{db: db}
}

func (r *zoomRepo) Get(ctx context.Context, domain string) (*entity.ZoomLevel, error) {
	log := logging.FromContext(ctx)
	log.Debug().Str("domain", domain).Msg("getting zoom level")

	var z entity.ZoomLevel
	var updated int64
	err := r.db.QueryRowContext(ctx,
		`SELECT domain, zoom_factor, updated_at FROM zoom_levels WHERE domain = ?`, domainOf(domain)).
		Scan(&z.Domain, &z.ZoomFactor, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	z.UpdatedAt = time.Unix(updated, 0)
	return &z, nil
}

func (r *zoomRepo) Set(ctx context.Context, level *entity.ZoomLevel) error {
	log := logging.FromContext(ctx)
	log.Debug().Str("domain", level.Domain).Float64("factor", level.ZoomFactor).Msg("setting zoom level")

	level.Domain = domainOf(level.Domain)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO zoom_levels (domain, zoom_factor, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(domain) DO UPDATE SET zoom_factor = excluded.zoom_factor, updated_at = excluded.updated_at`,
		level.Domain, level.ZoomFactor, time.Now().Unix())
	return err
}

func (r *zoomRepo) GetAll(ctx context.Context) ([]*entity.ZoomLevel, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT domain, zoom_factor, updated_at FROM zoom_levels ORDER BY domain`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var levels []*entity.ZoomLevel
	for rows.Next() {
		var z entity.ZoomLevel
		var updated int64
		if err := rows.Scan(&z.Domain, &z.ZoomFactor, &updated); err != nil {
			return nil, err
		}
		z.UpdatedAt = time.Unix(updated, 0)
		levels = append(levels, &z)
	}
	return levels, rows.Err()
}

func (r *zoomRepo) BurnExcept(ctx context.Context, fireproof scope.Set) error {
	_, err := deleteWhere(ctx, r.db, "zoom_levels", "domain", nil, fireproof)
	return err
}

func (r *zoomRepo) BurnOf(ctx context.Context, domains scope.Set) error {
	_, err := deleteWhere(ctx, r.db, "zoom_levels", "domain", domains, nil)
	return err
}

func (r *zoomRepo) Residue(ctx context.Context, except scope.Set) (int64, error) {
	return countOutside(ctx, r.db, "zoom_levels", "domain", except)
}
