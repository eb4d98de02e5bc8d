package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/kerbaras/pokedex/pkg/data"
	"github.com/kerbaras/pokedex/pkg/integrations"
	"github.com/kerbaras/pokedex/pkg/metrics"
	"github.com/kerbaras/pokedex/pkg/pokeapi"
	"go.uber.org/zap"
)

// hiddenTypes exist upstream but no catalog pokemon carries them.
var hiddenTypes = map[string]bool{
	"unknown": true,
	"shadow":  true,
}

type ControllerConfig struct {
	Source      Source
	ExportDir   string
	Logger      *zap.Logger
	Metrics     *metrics.Collector
	BatchSize   int
	MaxPokemon  int
	Concurrency int
}

// PokedexController is the entry point the CLI and the TUI share.
type PokedexController struct {
	source     Source
	aggregator *Aggregator
	details    *DetailLoader
	exporter   integrations.Exporter
	sprites    *integrations.SpriteProcessor
	logger     *zap.Logger
}

func NewPokedexController() *PokedexController {
	return NewPokedexControllerWithConfig(ControllerConfig{})
}

func NewPokedexControllerWithConfig(config ControllerConfig) *PokedexController {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	source := config.Source
	if source == nil {
		source = pokeapi.NewPokeAPI(
			pokeapi.WithLogger(logger),
			pokeapi.WithMetrics(config.Metrics))
	}

	aggregator := NewAggregator(source,
		WithBatchSize(config.BatchSize),
		WithMaxPokemon(config.MaxPokemon),
		WithConcurrency(config.Concurrency),
		WithAggregatorLogger(logger.Named("aggregator")),
		WithAggregatorMetrics(config.Metrics))

	return &PokedexController{
		source:     source,
		aggregator: aggregator,
		details:    NewDetailLoader(source, logger.Named("details")),
		exporter:   integrations.NewEPubBuilder(config.ExportDir, source, logger.Named("export")),
		sprites:    integrations.NewSpriteProcessor(integrations.DefaultSpriteSettings),
		logger:     logger,
	}
}

// LoadCatalog builds the full working set.
func (c *PokedexController) LoadCatalog(ctx context.Context) ([]data.Entry, error) {
	return c.aggregator.Load(ctx)
}

func (c *PokedexController) GetProgressChannel() <-chan Progress {
	return c.aggregator.GetProgressChannel()
}

func (c *PokedexController) GetDetails(ctx context.Context, idOrName string) (*data.Details, error) {
	return c.details.Load(ctx, idOrName)
}

// TypeOptions lists the types a catalog item can have.
func (c *PokedexController) TypeOptions(ctx context.Context) ([]data.TypeOption, error) {
	types, err := c.source.GetTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load types: %w", err)
	}

	out := make([]data.TypeOption, 0, len(types))
	for _, t := range types {
		if hiddenTypes[t.Name] {
			continue
		}
		out = append(out, data.TypeOption{Name: t.Name, Count: len(t.Pokemon)})
	}
	return out, nil
}

// GenerationOptions lists generations ordered by id.
func (c *PokedexController) GenerationOptions(ctx context.Context) ([]data.GenerationOption, error) {
	generations, err := c.source.GetGenerations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load generations: %w", err)
	}

	out := make([]data.GenerationOption, len(generations))
	for i, g := range generations {
		out[i] = data.GenerationOption{ID: g.ID, Name: g.Name, Count: len(g.PokemonSpecies)}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// RenderSprite draws the sprite at spriteURL as terminal art.
func (c *PokedexController) RenderSprite(ctx context.Context, spriteURL string, width int) (string, error) {
	raw, err := c.source.GetSprite(ctx, spriteURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch sprite: %w", err)
	}
	img, err := c.sprites.Decode(raw)
	if err != nil {
		return "", err
	}
	return integrations.RenderArt(img, width), nil
}

// Export loads the catalog and exports the entries matching criteria.
func (c *PokedexController) Export(ctx context.Context, title string, criteria data.Criteria) (string, error) {
	entries, err := c.LoadCatalog(ctx)
	if err != nil {
		return "", err
	}
	matched := Filter(entries, criteria)
	c.logger.Info("exporting", zap.Int("matched", len(matched)), zap.Int("total", len(entries)))
	return c.exporter.Export(ctx, title, matched)
}
