package services

import (
	"fmt"
	"testing"

	"github.com/kerbaras/pokedex/pkg/data"
	"github.com/stretchr/testify/assert"
)

func manyEntries(n int) []data.Entry {
	out := make([]data.Entry, n)
	for i := range out {
		gen := "generation-i"
		if i%2 == 1 {
			gen = "generation-ii"
		}
		out[i] = entry(i+1, fmt.Sprintf("mon-%d", i+1), gen, []string{"normal"})
	}
	return out
}

func TestCatalogWindowing(t *testing.T) {
	catalog := NewCatalog(nil)
	catalog.SetEntries(manyEntries(45))

	assert.Len(t, catalog.Filtered(), 45)
	assert.Len(t, catalog.Visible(), 20)
	assert.Equal(t, "Showing 20 of 45 Pokémon", catalog.Summary())

	assert.True(t, catalog.OnScroll(0))
	assert.Len(t, catalog.Visible(), 40)
	assert.True(t, catalog.OnScroll(0))
	assert.Len(t, catalog.Visible(), 45)
	assert.False(t, catalog.OnScroll(0))
}

func TestCatalogUpdateResetsWindow(t *testing.T) {
	catalog := NewCatalog(nil)
	catalog.SetEntries(manyEntries(80))
	catalog.OnScroll(0)
	catalog.OnScroll(0)
	assert.Len(t, catalog.Visible(), 60)

	catalog.Update(data.SetGeneration("generation-ii"))
	assert.Equal(t, data.Criteria{Generation: "generation-ii"}, catalog.Criteria())
	assert.Len(t, catalog.Filtered(), 40)
	assert.Len(t, catalog.Visible(), 20)
	assert.Equal(t, "Showing 20 of 40 Pokémon", catalog.Summary())

	catalog.OnScroll(0)
	catalog.Update(data.SetSearch("mon-1"))
	assert.Equal(t, data.Criteria{Search: "mon-1", Generation: "generation-ii"}, catalog.Criteria())
	assert.Equal(t, 20, catalog.Window().Visible)
}

func TestCatalogClear(t *testing.T) {
	catalog := NewCatalog(nil)
	catalog.SetEntries(manyEntries(30))
	catalog.Update(data.CriteriaUpdate{})
	catalog.Update(data.SetType("fire"))
	assert.Empty(t, catalog.Visible())
	assert.Equal(t, "Showing 0 of 0 Pokémon", catalog.Summary())

	catalog.Clear()
	assert.True(t, catalog.Criteria().IsZero())
	assert.Len(t, catalog.Filtered(), 30)
	assert.Len(t, catalog.Entries(), 30)
}

func TestCatalogCustomWindow(t *testing.T) {
	catalog := NewCatalog(&Window{Visible: 5, PageSize: 5, Step: 5, Threshold: 3})
	catalog.SetEntries(manyEntries(12))
	assert.Len(t, catalog.Visible(), 5)
	assert.False(t, catalog.OnScroll(4))
	assert.True(t, catalog.OnScroll(3))
	assert.Len(t, catalog.Visible(), 10)
}
