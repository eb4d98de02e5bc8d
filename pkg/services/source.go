package services

import (
	"context"

	"github.com/kerbaras/pokedex/pkg/pokeapi"
)

// Source is the subset of the API client the services depend on.
// *pokeapi.Client implements it.
type Source interface {
	ListPokemon(ctx context.Context, limit, offset int) (*pokeapi.ListResponse, error)
	GetPokemon(ctx context.Context, idOrName string) (*pokeapi.Pokemon, error)
	GetSpecies(ctx context.Context, idOrName string) (*pokeapi.Species, error)
	GetEvolutionChain(ctx context.Context, id int) (*pokeapi.EvolutionChain, error)
	GetCompleteInfo(ctx context.Context, idOrName string) (*pokeapi.CompleteInfo, error)
	GetTypes(ctx context.Context) ([]pokeapi.Type, error)
	GetGenerations(ctx context.Context) ([]pokeapi.Generation, error)
	GetSprite(ctx context.Context, url string) ([]byte, error)
}

var _ Source = (*pokeapi.Client)(nil)
