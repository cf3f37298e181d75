// Package repository declares persistence contracts of the domain. Burn
// methods mirror the orchestrator's store ports so a repository can be
// handed to the orchestrator directly.
package repository

import (
	"context"

	"github.com/bnema/ember/internal/domain/entity"
	"github.com/bnema/ember/internal/domain/scope"
)

// HistoryRepository defines operations for browsing history persistence.
type HistoryRepository interface {
	// Record stores a visit and fills its ID and Domain.
	Record(ctx context.Context, visit *entity.Visit) error

	// GetRecent retrieves the latest visits, newest first.
	GetRecent(ctx context.Context, limit int) ([]*entity.Visit, error)

	// FindByDomain retrieves visits of an eTLD+1, newest first.
	FindByDomain(ctx context.Context, domain string) ([]*entity.Visit, error)

	// GetDomainStats retrieves per-domain statistics.
	GetDomainStats(ctx context.Context, limit int) ([]*entity.DomainStat, error)

	// BurnVisits removes exactly the given visits.
	BurnVisits(ctx context.Context, visits []*entity.Visit) error

	// BurnDomains removes every visit to the domains and returns the URLs removed.
	BurnDomains(ctx context.Context, domains scope.Set) ([]string, error)

	// BurnAll removes every visit outside except.
	BurnAll(ctx context.Context, except scope.Set) error

	// Domains lists the eTLD+1 of every remaining visit.
	Domains(ctx context.Context) (scope.Set, error)

	// Residue counts visits outside except.
	Residue(ctx context.Context, except scope.Set) (int64, error)
}
