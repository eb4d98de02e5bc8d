package services

import (
	"fmt"

	"github.com/kerbaras/pokedex/pkg/data"
)

// Catalog is the list screen state: the loaded working set, the active
// criteria and the render window over the filtered entries.
type Catalog struct {
	entries  []data.Entry
	criteria data.Criteria
	window   *Window
	filtered []data.Entry
}

func NewCatalog(window *Window) *Catalog {
	if window == nil {
		window = NewWindow()
	}
	return &Catalog{window: window}
}

func (c *Catalog) SetEntries(entries []data.Entry) {
	c.entries = entries
	c.refresh()
}

// Update merges a partial criteria change. Any change resets the window.
func (c *Catalog) Update(update data.CriteriaUpdate) {
	c.criteria = c.criteria.Merge(update)
	c.refresh()
}

// Clear unsets every criterion.
func (c *Catalog) Clear() {
	c.criteria = data.Criteria{}
	c.refresh()
}

func (c *Catalog) refresh() {
	c.filtered = Filter(c.entries, c.criteria)
	c.window.Reset()
}

// OnScroll forwards a scroll position to the window.
func (c *Catalog) OnScroll(distanceToBottom int) bool {
	return c.window.OnScroll(distanceToBottom, len(c.filtered))
}

func (c *Catalog) Criteria() data.Criteria { return c.criteria }
func (c *Catalog) Entries() []data.Entry   { return c.entries }
func (c *Catalog) Filtered() []data.Entry  { return c.filtered }
func (c *Catalog) Visible() []data.Entry   { return c.window.Slice(c.filtered) }
func (c *Catalog) Window() *Window         { return c.window }

func (c *Catalog) Summary() string {
	return fmt.Sprintf("Showing %d of %d Pokémon", len(c.Visible()), len(c.filtered))
}
