package core

import (
	"sort"

	pep440 "github.com/aquasecurity/go-pep440-version"
	debversion "github.com/knqyf263/go-deb-version"
)

// versionCache memoizes parsed version objects so repeated comparisons
// during sorting do not re-parse the same strings.
type versionCache struct {
	pep map[string]pep440.Version
	deb map[string]debversion.Version
}

func newVersionCache() *versionCache {
	return &versionCache{
		pep: map[string]pep440.Version{},
		deb: map[string]debversion.Version{},
	}
}

func (c *versionCache) pepVersion(value string) (pep440.Version, bool) {
	if parsed, ok := c.pep[value]; ok {
		return parsed, true
	}
	parsed, err := pep440.Parse(value)
	if err != nil {
		return pep440.Version{}, false
	}
	c.pep[value] = parsed
	return parsed, true
}

func (c *versionCache) debVersion(value string) (debversion.Version, bool) {
	if parsed, ok := c.deb[value]; ok {
		return parsed, true
	}
	parsed, err := debversion.NewVersion(value)
	if err != nil {
		return debversion.Version{}, false
	}
	c.deb[value] = parsed
	return parsed, true
}

// compare returns -1, 0, or 1 comparing two content version strings.
// PEP 440 semantics are tried first, then the more permissive Debian
// comparison, then plain lexicographic order.
func (c *versionCache) compare(a string, b string) int {
	if va, ok := c.pepVersion(a); ok {
		if vb, ok := c.pepVersion(b); ok {
			return va.Compare(vb)
		}
	}
	if va, ok := c.debVersion(a); ok {
		if vb, ok := c.debVersion(b); ok {
			return va.Compare(vb)
		}
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// SortContentVersions returns the versions in ascending semantic order,
// oldest first. Used for listings whose source declares no canonical
// order; author-declared lists are left untouched by the resolver.
func SortContentVersions(values []string) []string {
	ordered := append([]string(nil), values...)
	cache := newVersionCache()
	sort.SliceStable(ordered, func(i, j int) bool {
		return cache.compare(ordered[i], ordered[j]) < 0
	})
	return ordered
}

// intersect keeps the elements of a that also appear in b, preserving
// a's order.
func intersect(a []string, b []string) []string {
	set := make(map[string]struct{}, len(b))
	for _, v := range b {
		set[v] = struct{}{}
	}
	var out []string
	for _, v := range a {
		if _, ok := set[v]; ok {
			out = append(out, v)
		}
	}
	return out
}
