package services

import (
	"strings"

	"github.com/kerbaras/pokedex/pkg/data"
)

// Filter returns the entries matching every set field of criteria, in their
// original order.
func Filter(entries []data.Entry, criteria data.Criteria) []data.Entry {
	if criteria.IsZero() {
		return entries
	}
	search := strings.ToLower(strings.TrimSpace(criteria.Search))

	out := make([]data.Entry, 0, len(entries))
	for _, entry := range entries {
		if criteria.Type != "" && !entry.HasType(criteria.Type) {
			continue
		}
		if criteria.Generation != "" && entry.Generation != criteria.Generation {
			continue
		}
		if search != "" && !matchesSearch(&entry, search) {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// matchesSearch matches by name or by the name of any evolution relative.
func matchesSearch(entry *data.Entry, term string) bool {
	if strings.Contains(strings.ToLower(entry.Name), term) {
		return true
	}
	for _, name := range entry.EvolutionGroup {
		if strings.Contains(strings.ToLower(name), term) {
			return true
		}
	}
	return false
}
