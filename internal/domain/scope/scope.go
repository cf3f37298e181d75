// Package scope converts raw hostnames into the eTLD+1 granularity every
// domain-scoped burn operates on.
//
// A burn for "mail.example.com" must clear "example.com" and all of its
// sub-domains; burning only the sub-domain would leave sibling data behind.
package scope

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"golang.org/x/net/publicsuffix"

	domainurl "github.com/bnema/ember/internal/domain/url"
)

// Localhost has no public suffix and is always a valid burn target.
const Localhost = "localhost"

// ErrNoRegistrableDomain is returned for hosts that are themselves a public
// suffix (e.g. "co.uk") or are empty.
var ErrNoRegistrableDomain = errors.New("no registrable domain")

// InvariantError lists the domains of a burn request that are not eTLD+1.
type InvariantError struct {
	Domains []string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("domains are not eTLD+1: %s", strings.Join(e.Domains, ", "))
}

// ETLDPlusOne returns the registrable domain for host.
// localhost and IP literals are returned unchanged.
func ETLDPlusOne(host string) (string, error) {
	host = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(host)), ".")
	if host == "" {
		return "", ErrNoRegistrableDomain
	}
	if host == Localhost || net.ParseIP(strings.Trim(host, "[]")) != nil {
		return host, nil
	}
	etld1, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNoRegistrableDomain, host)
	}
	return etld1, nil
}

// ToETLDPlusOne converts every hostname to its registrable domain.
// Hosts without one are dropped. Applying it twice yields the same set.
func ToETLDPlusOne(domains Set) Set {
	out := make(Set, len(domains))
	for d := range domains {
		etld1, err := ETLDPlusOne(d)
		if err != nil {
			continue
		}
		out.Add(etld1)
	}
	return out
}

// AllMatchETLDPlusOne reports whether every domain already is its own eTLD+1.
func AllMatchETLDPlusOne(domains Set) bool {
	return len(Violations(domains)) == 0
}

// Violations returns the sorted domains that are not their own eTLD+1.
func Violations(domains Set) []string {
	var bad []string
	for d := range domains {
		if d == Localhost {
			continue
		}
		etld1, err := ETLDPlusOne(d)
		if err != nil || etld1 != d {
			bad = append(bad, d)
		}
	}
	if len(bad) > 0 {
		return NewSet(bad...).Sorted()
	}
	return nil
}

// Validate returns an *InvariantError when domains violate the eTLD+1 invariant.
func Validate(domains Set) error {
	if bad := Violations(domains); len(bad) > 0 {
		return &InvariantError{Domains: bad}
	}
	return nil
}

// FromURLs collects the hosts of the given URLs, normalized to eTLD+1.
func FromURLs(urls ...string) Set {
	hosts := make(Set, len(urls))
	for _, u := range urls {
		hosts.Add(domainurl.ExtractHost(u))
	}
	return ToETLDPlusOne(hosts)
}

// MatchesAny reports whether host is one of the domains or a sub-domain of one.
func MatchesAny(host string, domains Set) bool {
	host = strings.ToLower(host)
	if domains.Contains(host) {
		return true
	}
	etld1, err := ETLDPlusOne(host)
	if err != nil {
		return false
	}
	return domains.Contains(etld1)
}
