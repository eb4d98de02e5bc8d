package pokeapi

import (
	"sort"

	"github.com/kerbaras/pokedex/pkg/data"
)

func (p *Pokemon) ToPokemon() data.Pokemon {
	types := make([]data.TypeSlot, len(p.Types))
	for i, t := range p.Types {
		types[i] = data.TypeSlot{Slot: t.Slot, Name: t.Type.Name}
	}
	sort.SliceStable(types, func(i, j int) bool { return types[i].Slot < types[j].Slot })

	stats := make([]data.Stat, len(p.Stats))
	for i, s := range p.Stats {
		stats[i] = data.Stat{Name: s.Stat.Name, Base: s.BaseStat, Effort: s.Effort}
	}

	return data.Pokemon{
		ID:      p.ID,
		Name:    p.Name,
		Height:  p.Height,
		Weight:  p.Weight,
		Types:   types,
		Stats:   stats,
		Sprite:  p.Sprites.FrontDefault,
		Artwork: p.Sprites.Other.OfficialArtwork.FrontDefault,
		Species: p.Species.Name,
	}
}

// Description returns the first English flavor text, cleaned up for display.
func (s *Species) Description() string {
	for _, entry := range s.FlavorTextEntries {
		if entry.Language.Name == "en" {
			return data.CleanFlavorText(entry.FlavorText)
		}
	}
	return ""
}

// ChainIDFromURL extracts the chain id from a species' evolution chain URL.
func ChainIDFromURL(chainURL string) (int, error) {
	return IDFromURL(chainURL)
}
