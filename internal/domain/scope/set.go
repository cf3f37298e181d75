package scope

import "sort"

// Set is an unordered collection of hostnames.
// The zero value is not usable for writes; use NewSet.
type Set map[string]struct{}

// NewSet builds a set from the given hostnames, skipping empty strings.
func NewSet(domains ...string) Set {
	s := make(Set, len(domains))
	for _, d := range domains {
		s.Add(d)
	}
	return s
}

// Add inserts a hostname. Empty strings are ignored.
func (s Set) Add(domain string) {
	if domain == "" {
		return
	}
	s[domain] = struct{}{}
}

// Contains reports whether domain is in the set. Safe on a nil set.
func (s Set) Contains(domain string) bool {
	_, ok := s[domain]
	return ok
}

// Len returns the number of hostnames.
func (s Set) Len() int {
	return len(s)
}

// IsEmpty reports whether the set has no members.
func (s Set) IsEmpty() bool {
	return len(s) == 0
}

// Clone returns an independent copy.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for d := range s {
		out[d] = struct{}{}
	}
	return out
}

// Minus returns the members of s that are not in other.
func (s Set) Minus(other Set) Set {
	out := make(Set, len(s))
	for d := range s {
		if !other.Contains(d) {
			out[d] = struct{}{}
		}
	}
	return out
}

// Union returns the members of both sets.
func (s Set) Union(other Set) Set {
	out := s.Clone()
	for d := range other {
		out[d] = struct{}{}
	}
	return out
}

// Equal reports whether both sets hold the same members.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for d := range s {
		if !other.Contains(d) {
			return false
		}
	}
	return true
}

// Sorted returns the members in lexical order, for stable logs and SQL args.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
