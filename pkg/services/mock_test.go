package services

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/kerbaras/pokedex/pkg/pokeapi"
)

// mockSource implements Source with function fields for testing
type mockSource struct {
	listPokemonFunc       func(ctx context.Context, limit, offset int) (*pokeapi.ListResponse, error)
	getPokemonFunc        func(ctx context.Context, idOrName string) (*pokeapi.Pokemon, error)
	getSpeciesFunc        func(ctx context.Context, idOrName string) (*pokeapi.Species, error)
	getEvolutionChainFunc func(ctx context.Context, id int) (*pokeapi.EvolutionChain, error)
	getCompleteInfoFunc   func(ctx context.Context, idOrName string) (*pokeapi.CompleteInfo, error)
	getTypesFunc          func(ctx context.Context) ([]pokeapi.Type, error)
	getGenerationsFunc    func(ctx context.Context) ([]pokeapi.Generation, error)
	getSpriteFunc         func(ctx context.Context, url string) ([]byte, error)
}

func (m *mockSource) ListPokemon(ctx context.Context, limit, offset int) (*pokeapi.ListResponse, error) {
	if m.listPokemonFunc != nil {
		return m.listPokemonFunc(ctx, limit, offset)
	}
	return &pokeapi.ListResponse{}, nil
}

func (m *mockSource) GetPokemon(ctx context.Context, idOrName string) (*pokeapi.Pokemon, error) {
	if m.getPokemonFunc != nil {
		return m.getPokemonFunc(ctx, idOrName)
	}
	return nil, notFound("pokemon/" + idOrName)
}

func (m *mockSource) GetSpecies(ctx context.Context, idOrName string) (*pokeapi.Species, error) {
	if m.getSpeciesFunc != nil {
		return m.getSpeciesFunc(ctx, idOrName)
	}
	return nil, notFound("pokemon-species/" + idOrName)
}

func (m *mockSource) GetEvolutionChain(ctx context.Context, id int) (*pokeapi.EvolutionChain, error) {
	if m.getEvolutionChainFunc != nil {
		return m.getEvolutionChainFunc(ctx, id)
	}
	return nil, notFound(fmt.Sprintf("evolution-chain/%d", id))
}

func (m *mockSource) GetCompleteInfo(ctx context.Context, idOrName string) (*pokeapi.CompleteInfo, error) {
	if m.getCompleteInfoFunc != nil {
		return m.getCompleteInfoFunc(ctx, idOrName)
	}
	return nil, notFound("pokemon/" + idOrName)
}

func (m *mockSource) GetTypes(ctx context.Context) ([]pokeapi.Type, error) {
	if m.getTypesFunc != nil {
		return m.getTypesFunc(ctx)
	}
	return nil, nil
}

func (m *mockSource) GetGenerations(ctx context.Context) ([]pokeapi.Generation, error) {
	if m.getGenerationsFunc != nil {
		return m.getGenerationsFunc(ctx)
	}
	return nil, nil
}

func (m *mockSource) GetSprite(ctx context.Context, url string) ([]byte, error) {
	if m.getSpriteFunc != nil {
		return m.getSpriteFunc(ctx, url)
	}
	return nil, notFound(url)
}

func notFound(path string) error {
	return &pokeapi.FetchError{URL: "https://pokeapi.test/" + path, StatusCode: http.StatusNotFound}
}

type fixture struct {
	id      int
	name    string
	types   []string
	chainID int
}

// fixtures is a small catalog: three chains plus a pokemon without one.
var fixtures = []fixture{
	{1, "bulbasaur", []string{"grass", "poison"}, 1},
	{4, "charmander", []string{"fire"}, 2},
	{25, "pikachu", []string{"electric"}, 10},
	{26, "raichu", []string{"electric"}, 10},
	{128, "tauros", []string{"normal"}, 0},
	{172, "pichu", []string{"electric"}, 10},
}

var fixtureChains = map[int]pokeapi.ChainLink{
	1: chainOf("bulbasaur", chainOf("ivysaur", chainOf("venusaur"))),
	2: chainOf("charmander", chainOf("charmeleon", chainOf("charizard"))),
	10: func() pokeapi.ChainLink {
		root := chainOf("pichu", chainOf("pikachu", chainOf("raichu")))
		root.IsBaby = true
		root.EvolvesTo[0].EvolutionDetails = []pokeapi.EvolutionDetail{{Trigger: pokeapi.NamedResource{Name: "level-up"}}}
		return root
	}(),
}

func chainOf(name string, children ...pokeapi.ChainLink) pokeapi.ChainLink {
	return pokeapi.ChainLink{Species: pokeapi.NamedResource{Name: name}, EvolvesTo: children}
}

func (f fixture) pokemon() *pokeapi.Pokemon {
	p := &pokeapi.Pokemon{ID: f.id, Name: f.name, Species: pokeapi.NamedResource{Name: f.name}}
	for i, t := range f.types {
		p.Types = append(p.Types, pokeapi.TypeSlot{Slot: i + 1, Type: pokeapi.NamedResource{Name: t}})
	}
	p.Sprites.FrontDefault = fmt.Sprintf("https://sprites.test/%d.png", f.id)
	p.Stats = []pokeapi.Stat{{BaseStat: 50, Stat: pokeapi.NamedResource{Name: "hp"}}}
	return p
}

func (f fixture) species() *pokeapi.Species {
	s := &pokeapi.Species{
		ID:         f.id,
		Name:       f.name,
		Generation: pokeapi.NamedResource{Name: pokeapi.GenerationFromID(f.id)},
		FlavorTextEntries: []pokeapi.FlavorText{
			{FlavorText: "Ein Pokémon.", Language: pokeapi.NamedResource{Name: "de"}},
			{FlavorText: "A\nfixture\fpokemon.", Language: pokeapi.NamedResource{Name: "en"}},
		},
	}
	if f.chainID != 0 {
		s.EvolutionChain = &pokeapi.APIResource{URL: fmt.Sprintf("https://pokeapi.test/evolution-chain/%d/", f.chainID)}
	}
	return s
}

func lookupFixture(idOrName string) (fixture, bool) {
	for _, f := range fixtures {
		if f.name == idOrName || strconv.Itoa(f.id) == idOrName {
			return f, true
		}
	}
	return fixture{}, false
}

// newFixtureSource serves the fixtures. Callers override fields to inject
// failures.
func newFixtureSource() *mockSource {
	m := &mockSource{}
	m.listPokemonFunc = func(ctx context.Context, limit, offset int) (*pokeapi.ListResponse, error) {
		list := &pokeapi.ListResponse{Count: len(fixtures)}
		for _, f := range fixtures {
			list.Results = append(list.Results, pokeapi.NamedResource{Name: f.name})
		}
		return list, nil
	}
	m.getPokemonFunc = func(ctx context.Context, idOrName string) (*pokeapi.Pokemon, error) {
		if f, ok := lookupFixture(idOrName); ok {
			return f.pokemon(), nil
		}
		return nil, notFound("pokemon/" + idOrName)
	}
	m.getSpeciesFunc = func(ctx context.Context, idOrName string) (*pokeapi.Species, error) {
		if f, ok := lookupFixture(idOrName); ok {
			return f.species(), nil
		}
		return nil, notFound("pokemon-species/" + idOrName)
	}
	m.getEvolutionChainFunc = func(ctx context.Context, id int) (*pokeapi.EvolutionChain, error) {
		if chain, ok := fixtureChains[id]; ok {
			return &pokeapi.EvolutionChain{ID: id, Chain: chain}, nil
		}
		return nil, notFound(fmt.Sprintf("evolution-chain/%d", id))
	}
	m.getCompleteInfoFunc = func(ctx context.Context, idOrName string) (*pokeapi.CompleteInfo, error) {
		f, ok := lookupFixture(idOrName)
		if !ok {
			return nil, notFound("pokemon/" + idOrName)
		}
		info := &pokeapi.CompleteInfo{Pokemon: f.pokemon(), Species: f.species()}
		if chain, ok := fixtureChains[f.chainID]; ok {
			info.EvolutionChain = &pokeapi.EvolutionChain{ID: f.chainID, Chain: chain}
		}
		return info, nil
	}
	return m
}
