package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bnema/ember/internal/domain/entity"
	"github.com/bnema/ember/internal/domain/repository"
	"github.com/bnema/ember/internal/domain/scope"
	"github.com/bnema/ember/internal/logging"
)

type recentlyClosedRepo struct {
	db *sql.DB
}

// NewRecentlyClosedRepository creates a new SQLite-backed recently closed cache.
func NewRecentlyClosedRepository(db *sql.DB) repository.RecentlyClosedRepository {
	return &recentlyClosedRepo{db: db}
}

func (r *recentlyClosedRepo) Add(ctx context.Context, item *entity.RecentlyClosedItem) error {
	if item.ClosedAt.IsZero() {
		item.ClosedAt = time.Now()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO recently_closed (kind, title, closed_at) VALUES (?, ?, ?)`,
		string(item.Kind), item.Title, item.ClosedAt.Unix())
	if err != nil {
		return fmt.Errorf("insert recently closed item: %w", err)
	}
	if item.ID, err = res.LastInsertId(); err != nil {
		return err
	}
	for i, u := range item.URLs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO recently_closed_urls (item_id, position, url, domain) VALUES (?, ?, ?, ?)`,
			item.ID, i, u, domainOf(u)); err != nil {
			return fmt.Errorf("insert recently closed url: %w", err)
		}
	}
	return tx.Commit()
}

func (r *recentlyClosedRepo) List(ctx context.Context, limit int) ([]*entity.RecentlyClosedItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, kind, title, closed_at FROM recently_closed ORDER BY closed_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	var items []*entity.RecentlyClosedItem
	byID := make(map[int64]*entity.RecentlyClosedItem)
	for rows.Next() {
		var it entity.RecentlyClosedItem
		var closed int64
		if err := rows.Scan(&it.ID, &it.Kind, &it.Title, &closed); err != nil {
			rows.Close()
			return nil, err
		}
		it.ClosedAt = time.Unix(closed, 0)
		items = append(items, &it)
		byID[it.ID] = &it
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	urlRows, err := r.db.QueryContext(ctx, `SELECT item_id, url FROM recently_closed_urls ORDER BY item_id, position`)
	if err != nil {
		return nil, err
	}
	defer urlRows.Close()
	for urlRows.Next() {
		var id int64
		var u string
		if err := urlRows.Scan(&id, &u); err != nil {
			return nil, err
		}
		if it, ok := byID[id]; ok {
			it.URLs = append(it.URLs, u)
		}
	}
	return items, urlRows.Err()
}

// BurnCache removes the matching URLs first so a window entry keeps the
// tabs of other sites; entries left empty are dropped afterwards.
func (r *recentlyClosedRepo) BurnCache(ctx context.Context, domains, except scope.Set) error {
	clause, args, ok := domainFilter("domain", domains, except)
	if !ok {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `DELETE FROM recently_closed_urls WHERE `+clause, args...)
	if err != nil {
		return fmt.Errorf("delete recently closed urls: %w", err)
	}
	urls, _ := res.RowsAffected()

	res, err = tx.ExecContext(ctx,
		`DELETE FROM recently_closed WHERE id NOT IN (SELECT DISTINCT item_id FROM recently_closed_urls)`)
	if err != nil {
		return fmt.Errorf("delete empty recently closed items: %w", err)
	}
	items, _ := res.RowsAffected()

	if err := tx.Commit(); err != nil {
		return err
	}
	logging.FromContext(ctx).Debug().Int64("urls", urls).Int64("items", items).Msg("recently closed cache burned")
	return nil
}

func (r *recentlyClosedRepo) Residue(ctx context.Context, except scope.Set) (int64, error) {
	return countOutside(ctx, r.db, "recently_closed_urls", "domain", except)
}
