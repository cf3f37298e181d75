package sqlite

import (
	"strings"

	"github.com/bnema/ember/internal/domain/scope"
	domainurl "github.com/bnema/ember/internal/domain/url"
)

// domainFilter builds the WHERE fragment selecting rows of domains (nil
// means every domain) outside except. ok is false when the filter can
// match nothing, so the caller can skip the statement.
func domainFilter(column string, domains, except scope.Set) (clause string, args []any, ok bool) {
	if domains != nil && domains.IsEmpty() {
		return "", nil, false
	}

	var parts []string
	if domains != nil {
		in, inArgs := inList(domains)
		parts = append(parts, column+" IN ("+in+")")
		args = append(args, inArgs...)
	}
	if !except.IsEmpty() {
		in, inArgs := inList(except)
		parts = append(parts, column+" NOT IN ("+in+")")
		args = append(args, inArgs...)
	}
	if len(parts) == 0 {
		return "1 = 1", nil, true
	}
	return strings.Join(parts, " AND "), args, true
}

func inList(s scope.Set) (string, []any) {
	sorted := s.Sorted()
	args := make([]any, len(sorted))
	for i, d := range sorted {
		args[i] = d
	}
	return strings.TrimSuffix(strings.Repeat("?,", len(sorted)), ","), args
}

// domainOf returns the eTLD+1 stored alongside a URL. Hosts without one
// are stored as-is so they stay burnable by exact match.
func domainOf(rawURL string) string {
	host := domainurl.ExtractHost(rawURL)
	if etld1, err := scope.ETLDPlusOne(host); err == nil {
		return etld1
	}
	return host
}
