package repository

import (
	"context"

	"github.com/bnema/ember/internal/domain/entity"
	"github.com/bnema/ember/internal/domain/scope"
)

// FireproofRepository stores the sites exempted from burning.
type FireproofRepository interface {
	// Add fireproofs the eTLD+1 of domain and returns it.
	Add(ctx context.Context, domain string) (string, error)
	Remove(ctx context.Context, domain string) error
	List(ctx context.Context) ([]*entity.FireproofDomain, error)
	IsFireproof(ctx context.Context, domain string) bool
	FireproofDomains(ctx context.Context) (scope.Set, error)
}
