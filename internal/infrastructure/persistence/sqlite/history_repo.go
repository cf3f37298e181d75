package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/ember/internal/domain/entity"
	"github.com/bnema/ember/internal/domain/repository"
	"github.com/bnema/ember/internal/domain/scope"
	"github.com/bnema/ember/internal/logging"
)

const logURLMaxLen = 60

type historyRepo struct {
	db *sql.DB
}

// NewHistoryRepository creates a new SQLite-backed history repository.
func NewHistoryRepository(db *sql.DB) repository.HistoryRepository {
	return &historyRepo{db: db}
}

func (r *historyRepo) Record(ctx context.Context, visit *entity.Visit) error {
	log := logging.FromContext(ctx)
	log.Debug().Str("url", logging.TruncateURL(visit.URL, logURLMaxLen)).Msg("recording visit")

	if visit.VisitedAt.IsZero() {
		visit.VisitedAt = time.Now()
	}
	visit.Domain = domainOf(visit.URL)

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO visits (url, title, domain, visited_at) VALUES (?, ?, ?, ?)`,
		visit.URL, visit.Title, visit.Domain, visit.VisitedAt.Unix())
	if err != nil {
		return fmt.Errorf("insert visit: %w", err)
	}
	visit.ID, err = res.LastInsertId()
	return err
}

func (r *historyRepo) GetRecent(ctx context.Context, limit int) ([]*entity.Visit, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}
	return r.query(ctx,
		`SELECT id, url, title, domain, visited_at FROM visits ORDER BY visited_at DESC, id DESC LIMIT ?`, limit)
}

func (r *historyRepo) FindByDomain(ctx context.Context, domain string) ([]*entity.Visit, error) {
	return r.query(ctx,
		`SELECT id, url, title, domain, visited_at FROM visits WHERE domain = ? ORDER BY visited_at DESC, id DESC`,
		strings.ToLower(domain))
}

func (r *historyRepo) query(ctx context.Context, q string, args ...any) ([]*entity.Visit, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visits []*entity.Visit
	for rows.Next() {
		var v entity.Visit
		var visitedAt int64
		if err := rows.Scan(&v.ID, &v.URL, &v.Title, &v.Domain, &visitedAt); err != nil {
			return nil, err
		}
		v.VisitedAt = time.Unix(visitedAt, 0)
		visits = append(visits, &v)
	}
	return visits, rows.Err()
}

func (r *historyRepo) GetDomainStats(ctx context.Context, limit int) ([]*entity.DomainStat, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT domain, COUNT(*), MAX(visited_at) FROM visits
		GROUP BY domain ORDER BY COUNT(*) DESC, domain ASC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []*entity.DomainStat
	for rows.Next() {
		var s entity.DomainStat
		var last int64
		if err := rows.Scan(&s.Domain, &s.Visits, &last); err != nil {
			return nil, err
		}
		s.LastVisit = time.Unix(last, 0)
		stats = append(stats, &s)
	}
	return stats, rows.Err()
}

// BurnVisits deletes visits by ID. Visits that were never stored (ID 0)
// are matched on URL and timestamp.
func (r *historyRepo) BurnVisits(ctx context.Context, visits []*entity.Visit) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var removed int64
	for _, v := range visits {
		if v == nil {
			continue
		}
		var res sql.Result
		if v.ID != 0 {
			res, err = tx.ExecContext(ctx, `DELETE FROM visits WHERE id = ?`, v.ID)
		} else {
			res, err = tx.ExecContext(ctx, `DELETE FROM visits WHERE url = ? AND visited_at = ?`, v.URL, v.VisitedAt.Unix())
		}
		if err != nil {
			return fmt.Errorf("delete visit: %w", err)
		}
		n, _ := res.RowsAffected()
		removed += n
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	logging.FromContext(ctx).Debug().Int64("removed", removed).Msg("visits burned")
	return nil
}

func (r *historyRepo) BurnDomains(ctx context.Context, domains scope.Set) ([]string, error) {
	clause, args, ok := domainFilter("domain", domains, nil)
	if !ok {
		return nil, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx, `SELECT DISTINCT url FROM visits WHERE `+clause+` ORDER BY url`, args...)
	if err != nil {
		return nil, err
	}
	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			rows.Close()
			return nil, err
		}
		urls = append(urls, u)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM visits WHERE `+clause, args...); err != nil {
		return nil, fmt.Errorf("delete visits: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Debug().Int("urls", len(urls)).Strs("domains", domains.Sorted()).Msg("history burned for domains")
	return urls, nil
}

func (r *historyRepo) BurnAll(ctx context.Context, except scope.Set) error {
	clause, args, _ := domainFilter("domain", nil, except)
	res, err := r.db.ExecContext(ctx, `DELETE FROM visits WHERE `+clause, args...)
	if err != nil {
		return fmt.Errorf("delete visits: %w", err)
	}
	n, _ := res.RowsAffected()
	logging.FromContext(ctx).Debug().Int64("removed", n).Msg("history burned")
	return nil
}

func (r *historyRepo) Domains(ctx context.Context) (scope.Set, error) {
	return selectDomains(ctx, r.db, `SELECT DISTINCT domain FROM visits`)
}

func (r *historyRepo) Residue(ctx context.Context, except scope.Set) (int64, error) {
	return countOutside(ctx, r.db, "visits", "domain", except)
}

func selectDomains(ctx context.Context, db *sql.DB, q string, args ...any) (scope.Set, error) {
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	domains := scope.NewSet()
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		domains.Add(d)
	}
	return domains, rows.Err()
}

func countOutside(ctx context.Context, db *sql.DB, table, column string, except scope.Set) (int64, error) {
	clause, args, _ := domainFilter(column, nil, except)
	var n int64
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table+` WHERE `+clause, args...).Scan(&n)
	return n, err
}

func deleteWhere(ctx context.Context, db *sql.DB, table, column string, domains, except scope.Set) (int64, error) {
	clause, args, ok := domainFilter(column, domains, except)
	if !ok {
		return 0, nil
	}
	res, err := db.ExecContext(ctx, `DELETE FROM `+table+` WHERE `+clause, args...)
	if err != nil {
		return 0, fmt.Errorf("delete from %s: %w", table, err)
	}
	return res.RowsAffected()
}
