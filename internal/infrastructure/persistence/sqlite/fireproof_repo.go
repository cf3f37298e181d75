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

type fireproofRepo struct {
	db *sql.DB
}

// NewFireproofRepository creates a new SQLite-backed fireproof list.
func NewFireproofRepository(db *sql.DB) repository.FireproofRepository {
	return &fireproofRepo{db: db}
}

func (r *fireproofRepo) Add(ctx context.Context, domain string) (string, error) {
	etld1, err := scope.ETLDPlusOne(domain)
	if err != nil {
		return "", err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO fireproof_domains (domain, added_at) VALUES (?, ?) ON CONFLICT(domain) DO NOTHING`,
		etld1, time.Now().Unix())
	if err != nil {
		return "", fmt.Errorf("insert fireproof domain: %w", err)
	}
	logging.FromContext(ctx).Info().Str("domain", etld1).Msg("domain fireproofed")
	return etld1, nil
}

func (r *fireproofRepo) Remove(ctx context.Context, domain string) error {
	etld1, err := scope.ETLDPlusOne(domain)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM fireproof_domains WHERE domain = ?`, etld1)
	return err
}

func (r *fireproofRepo) List(ctx context.Context) ([]*entity.FireproofDomain, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT domain, added_at FROM fireproof_domains ORDER BY domain`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.FireproofDomain
	for rows.Next() {
		var d entity.FireproofDomain
		var added int64
		if err := rows.Scan(&d.Domain, &added); err != nil {
			return nil, err
		}
		d.AddedAt = time.Unix(added, 0)
		out = append(out, &d)
	}
	return out, rows.Err()
}

// IsFireproof matches sub-domains of fireproofed sites too. Lookup errors
// are logged and answered with false.
func (r *fireproofRepo) IsFireproof(ctx context.Context, domain string) bool {
	domains, err := r.FireproofDomains(ctx)
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("failed to load fireproof domains")
		return false
	}
	return scope.MatchesAny(domain, domains)
}

func (r *fireproofRepo) FireproofDomains(ctx context.Context) (scope.Set, error) {
	return selectDomains(ctx, r.db, `SELECT domain FROM fireproof_domains`)
}
