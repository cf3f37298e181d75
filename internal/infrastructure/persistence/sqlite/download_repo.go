package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/bnema/ember/internal/domain/entity"
	"github.com/bnema/ember/internal/domain/repository"
	"github.com/bnema/ember/internal/domain/scope"
	"github.com/bnema/ember/internal/logging"
)

type downloadRepo struct {
	db *sql.DB
}

// NewDownloadRepository creates a new SQLite-backed downloads list.
func NewDownloadRepository(db *sql.DB) repository.DownloadRepository {
	return &downloadRepo{db: db}
}

func (r *downloadRepo) Add(ctx context.Context, d *entity.Download) error {
	if d.StartedAt.IsZero() {
		d.StartedAt = time.Now()
	}
	if d.State == "" {
		d.State = entity.DownloadInProgress
	}
	d.Domain = domainOf(d.URL)
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO downloads (url, domain, filename, destination, state, started_at) VALUES (?, ?, ?, ?, ?, ?)`,
		d.URL, d.Domain, d.Filename, d.Destination, string(d.State), d.StartedAt.Unix())
	if err != nil {
		return err
	}
	d.ID, err = res.LastInsertId()
	return err
}

func (r *downloadRepo) SetState(ctx context.Context, id int64, state entity.DownloadState) error {
	_, err := r.db.ExecContext(ctx, `UPDATE downloads SET state = ? WHERE id = ?`, string(state), id)
	return err
}

func (r *downloadRepo) List(ctx context.Context) ([]*entity.Download, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, url, domain, filename, destination, state, started_at FROM downloads ORDER BY started_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Download
	for rows.Next() {
		var d entity.Download
		var started int64
		if err := rows.Scan(&d.ID, &d.URL, &d.Domain, &d.Filename, &d.Destination, &d.State, &started); err != nil {
			return nil, err
		}
		d.StartedAt = time.Unix(started, 0)
		out = append(out, &d)
	}
	return out, rows.Err()
}

// CleanupInactive never touches a running download.
func (r *downloadRepo) CleanupInactive(ctx context.Context, domains, except scope.Set) error {
	clause, args, ok := domainFilter("domain", domains, except)
	if !ok {
		return nil
	}
	args = append([]any{string(entity.DownloadInProgress)}, args...)
	res, err := r.db.ExecContext(ctx, `DELETE FROM downloads WHERE state != ? AND `+clause, args...)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	logging.FromContext(ctx).Debug().Int64("removed", n).Msg("inactive downloads cleaned up")
	return nil
}
