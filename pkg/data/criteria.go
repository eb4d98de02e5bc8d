package data

import "strings"

// Criteria selects catalog entries. An empty field is unset.
type Criteria struct {
	Search     string
	Type       string
	Generation string
}

// CriteriaUpdate is a partial change to Criteria. Nil fields are left as they
// are; a pointer to "" clears the field.
type CriteriaUpdate struct {
	Search     *string
	Type       *string
	Generation *string
}

func (c Criteria) Merge(update CriteriaUpdate) Criteria {
	if update.Search != nil {
		c.Search = strings.TrimSpace(*update.Search)
	}
	if update.Type != nil {
		c.Type = *update.Type
	}
	if update.Generation != nil {
		c.Generation = *update.Generation
	}
	return c
}

func (c Criteria) IsZero() bool {
	return c == Criteria{}
}

func SetSearch(s string) CriteriaUpdate {
	return CriteriaUpdate{Search: &s}
}

func SetType(t string) CriteriaUpdate {
	return CriteriaUpdate{Type: &t}
}

func SetGeneration(g string) CriteriaUpdate {
	return CriteriaUpdate{Generation: &g}
}
