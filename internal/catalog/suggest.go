package catalog

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Suggest returns up to limit catalog names that look like query, closest
// first. Exact case-insensitive matches come back alone.
func (s *MemorySource) Suggest(query string, limit int) []string {
	q := normalise(query)
	if q == "" || limit <= 0 {
		return nil
	}

	type candidate struct {
		name string
		dist int
	}

	var found []candidate
	for _, name := range s.Names() {
		n := normalise(name)
		if n == q {
			return []string{name}
		}
		dist := levenshtein.ComputeDistance(q, n)
		if strings.HasPrefix(n, q) {
			dist = 0
		}
		if dist > distanceLimit(len(n)) {
			continue
		}
		found = append(found, candidate{name: name, dist: dist})
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].dist < found[j].dist })
	if len(found) > limit {
		found = found[:limit]
	}
	out := make([]string, len(found))
	for i, c := range found {
		out[i] = c.name
	}
	return out
}

// Lookup resolves a loosely typed name to a catalog name. It succeeds only
// when Suggest has a single answer.
func (s *MemorySource) Lookup(query string) (string, bool) {
	got := s.Suggest(query, 2)
	if len(got) != 1 {
		return "", false
	}
	return got[0], true
}

func normalise(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
