package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/pokedex/pkg/app/styles"
	"github.com/kerbaras/pokedex/pkg/data"
)

// PokemonList is a scrolling cursor list over catalog entries. Items holds
// only the rendered window; the catalog decides how many that is.
type PokemonList struct {
	Items         []data.Entry
	SelectedIndex int
	Width         int
	Height        int
	offset        int
}

func NewPokemonList() *PokemonList {
	return &PokemonList{
		Items:         []data.Entry{},
		SelectedIndex: 0,
		Width:         80,
		Height:        20,
	}
}

// SetItems replaces the items, keeping the cursor in range.
func (m *PokemonList) SetItems(items []data.Entry) {
	m.Items = items
	if m.SelectedIndex >= len(items) && len(items) > 0 {
		m.SelectedIndex = len(items) - 1
	}
	if len(items) == 0 {
		m.SelectedIndex = 0
	}
	m.clampOffset()
}

// Reset moves the cursor back to the top.
func (m *PokemonList) Reset() {
	m.SelectedIndex = 0
	m.offset = 0
}

func (m *PokemonList) Next() {
	if m.SelectedIndex < len(m.Items)-1 {
		m.SelectedIndex++
	}
	m.clampOffset()
}

func (m *PokemonList) Prev() {
	if m.SelectedIndex > 0 {
		m.SelectedIndex--
	}
	m.clampOffset()
}

func (m *PokemonList) PageDown() {
	m.SelectedIndex = min(m.SelectedIndex+m.rows(), max(len(m.Items)-1, 0))
	m.clampOffset()
}

func (m *PokemonList) PageUp() {
	m.SelectedIndex = max(m.SelectedIndex-m.rows(), 0)
	m.clampOffset()
}

func (m *PokemonList) Selected() *data.Entry {
	if len(m.Items) == 0 || m.SelectedIndex >= len(m.Items) {
		return nil
	}
	return &m.Items[m.SelectedIndex]
}

// DistanceToBottom is the number of rows between the cursor and the last
// rendered item.
func (m *PokemonList) DistanceToBottom() int {
	return max(len(m.Items)-1-m.SelectedIndex, 0)
}

func (m *PokemonList) rows() int {
	return max(m.Height, 1)
}

func (m *PokemonList) clampOffset() {
	rows := m.rows()
	if m.SelectedIndex < m.offset {
		m.offset = m.SelectedIndex
	}
	if m.SelectedIndex >= m.offset+rows {
		m.offset = m.SelectedIndex - rows + 1
	}
	m.offset = max(min(m.offset, len(m.Items)-rows), 0)
}

func (m *PokemonList) View() string {
	if len(m.Items) == 0 {
		emptyMsg := styles.MutedStyle.Render("No Pokémon match the current filters")
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, emptyMsg)
	}

	end := min(m.offset+m.rows(), len(m.Items))
	var b strings.Builder
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderRow(i))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m *PokemonList) renderRow(i int) string {
	entry := m.Items[i]

	badges := make([]string, len(entry.Types))
	for j, t := range entry.Types {
		badges[j] = styles.TypeBadge(t.Name, data.FormatName(t.Name))
	}

	cursor := "  "
	nameStyle := styles.TextStyle
	if i == m.SelectedIndex {
		cursor = "▸ "
		nameStyle = styles.SelectedStyle
	}

	name := nameStyle.Render(fmt.Sprintf("%-14s", data.FormatName(entry.Name)))
	return lipgloss.JoinHorizontal(lipgloss.Top,
		cursor,
		styles.MutedStyle.Render(fmt.Sprintf("%-6s", data.PaddedID(entry.ID))),
		name,
		" ",
		styles.MutedStyle.Render(fmt.Sprintf("%-16s", data.GenerationLabel(entry.Generation))),
		strings.Join(badges, " "),
	)
}
