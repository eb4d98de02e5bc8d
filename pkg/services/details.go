package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/kerbaras/pokedex/pkg/data"
	"github.com/kerbaras/pokedex/pkg/pokeapi"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrNotFound = errors.New("pokemon not found")

// DetailLoader builds the detail view of a single pokemon.
type DetailLoader struct {
	source Source
	logger *zap.Logger
}

func NewDetailLoader(source Source, logger *zap.Logger) *DetailLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DetailLoader{source: source, logger: logger}
}

// Load returns ErrNotFound when the upstream has no such pokemon. Members of
// the evolution chain that fail to load are left out.
func (l *DetailLoader) Load(ctx context.Context, idOrName string) (*data.Details, error) {
	info, err := l.source.GetCompleteInfo(ctx, idOrName)
	if err != nil {
		if pokeapi.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, idOrName)
		}
		return nil, fmt.Errorf("failed to load %s: %w", idOrName, err)
	}

	pokemon := info.Pokemon.ToPokemon()
	details := &data.Details{
		Pokemon:     pokemon,
		Generation:  info.Species.Generation.Name,
		Description: info.Species.Description(),
		ImageURL:    pokemon.ImageURL(),
	}

	if info.EvolutionChain != nil {
		evolutions, err := l.evolutions(ctx, info.EvolutionChain)
		if err != nil {
			return nil, err
		}
		details.Evolutions = evolutions
	}
	return details, nil
}

func (l *DetailLoader) evolutions(ctx context.Context, chain *pokeapi.EvolutionChain) ([]data.Evolution, error) {
	stages, err := pokeapi.EvolutionStages(chain.Chain)
	if err != nil {
		return nil, err
	}

	members := make([]*data.Pokemon, len(stages))
	var g errgroup.Group
	for i, stage := range stages {
		g.Go(func() error {
			raw, err := l.source.GetPokemon(ctx, stage.Name)
			if err != nil {
				l.logger.Debug("skipping evolution member",
					zap.String("name", stage.Name),
					zap.Error(err))
				return nil
			}
			pokemon := raw.ToPokemon()
			members[i] = &pokemon
			return nil
		})
	}
	g.Wait()

	out := make([]data.Evolution, 0, len(stages))
	for i, stage := range stages {
		if members[i] == nil {
			continue
		}
		out = append(out, data.Evolution{
			Pokemon: *members[i],
			Depth:   stage.Depth,
			Trigger: stage.Trigger,
			Level:   stage.Level,
		})
	}
	return out, nil
}
