package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kerbaras/pokedex/pkg/data"
	"github.com/kerbaras/pokedex/pkg/metrics"
	"github.com/kerbaras/pokedex/pkg/pokeapi"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultMaxPokemon  = 1000
	DefaultBatchSize   = 50
	DefaultConcurrency = 50
)

// Progress is reported after every completed batch.
type Progress struct {
	Completed int
	Total     int
	Loaded    int
}

func (p Progress) Ratio() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Completed) / float64(p.Total)
}

// Aggregator builds the catalog working set: it lists the catalog and then
// augments every item with its generation and evolution group.
type Aggregator struct {
	source       Source
	logger       *zap.Logger
	metrics      *metrics.Collector
	maxPokemon   int
	batchSize    int
	concurrency  int
	progressChan chan Progress
}

type AggregatorOption func(*Aggregator)

func WithBatchSize(n int) AggregatorOption {
	return func(a *Aggregator) {
		if n > 0 {
			a.batchSize = n
		}
	}
}

func WithMaxPokemon(n int) AggregatorOption {
	return func(a *Aggregator) {
		if n > 0 {
			a.maxPokemon = n
		}
	}
}

// WithConcurrency caps in-flight items within a batch.
func WithConcurrency(n int) AggregatorOption {
	return func(a *Aggregator) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

func WithAggregatorLogger(logger *zap.Logger) AggregatorOption {
	return func(a *Aggregator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

func WithAggregatorMetrics(collector *metrics.Collector) AggregatorOption {
	return func(a *Aggregator) { a.metrics = collector }
}

func NewAggregator(source Source, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		source:       source,
		logger:       zap.NewNop(),
		maxPokemon:   DefaultMaxPokemon,
		batchSize:    DefaultBatchSize,
		concurrency:  DefaultConcurrency,
		progressChan: make(chan Progress, 100),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// GetProgressChannel returns the channel progress updates are sent on.
// Sends never block; updates are dropped when nobody is reading.
func (a *Aggregator) GetProgressChannel() <-chan Progress {
	return a.progressChan
}

// Load lists up to maxPokemon items and augments them batch by batch.
// Batches run one after another; items inside a batch run concurrently.
// An item that fails is logged and left out. Only a failure to list the
// catalog, or ctx being done, fails the load.
func (a *Aggregator) Load(ctx context.Context) ([]data.Entry, error) {
	list, err := a.source.ListPokemon(ctx, a.maxPokemon, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list pokemon: %w", err)
	}

	items := list.Results
	if len(items) > a.maxPokemon {
		items = items[:a.maxPokemon]
	}

	batches := (len(items) + a.batchSize - 1) / a.batchSize
	entries := make([]data.Entry, 0, len(items))

	for b := 0; b < batches; b++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := b * a.batchSize
		end := min(start+a.batchSize, len(items))
		entries = append(entries, a.loadBatch(ctx, items[start:end])...)

		a.reportProgress(Progress{Completed: b + 1, Total: batches, Loaded: len(entries)})
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.metrics.SetWorkingSet(len(entries))
	a.logger.Info("catalog loaded",
		zap.Int("listed", len(items)),
		zap.Int("loaded", len(entries)))
	return entries, nil
}

func (a *Aggregator) loadBatch(ctx context.Context, batch []pokeapi.NamedResource) []data.Entry {
	results := make([]*data.Entry, len(batch))

	var g errgroup.Group
	g.SetLimit(a.concurrency)
	for i, item := range batch {
		g.Go(func() error {
			entry, err := a.augment(ctx, item.Name)
			if err != nil {
				a.metrics.ItemDropped()
				a.logger.Warn("dropping pokemon",
					zap.String("name", item.Name),
					zap.Error(err))
				return nil
			}
			results[i] = entry
			return nil
		})
	}
	g.Wait()

	out := make([]data.Entry, 0, len(batch))
	for _, entry := range results {
		if entry != nil {
			out = append(out, *entry)
		}
	}
	return out
}

func (a *Aggregator) augment(ctx context.Context, name string) (*data.Entry, error) {
	pokemon, err := a.source.GetPokemon(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("pokemon: %w", err)
	}

	species, err := a.source.GetSpecies(ctx, strconv.Itoa(pokemon.ID))
	if err != nil {
		return nil, fmt.Errorf("species: %w", err)
	}

	group := []string{}
	if ref := species.EvolutionChain; ref != nil && ref.URL != "" {
		id, err := pokeapi.ChainIDFromURL(ref.URL)
		if err != nil {
			return nil, err
		}
		chain, err := a.source.GetEvolutionChain(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("evolution chain: %w", err)
		}
		group, err = pokeapi.EvolutionNames(chain.Chain)
		if err != nil {
			return nil, err
		}
	}

	return &data.Entry{
		Pokemon:        pokemon.ToPokemon(),
		Generation:     pokeapi.GenerationFromID(pokemon.ID),
		EvolutionGroup: group,
	}, nil
}

func (a *Aggregator) reportProgress(p Progress) {
	a.metrics.SetProgress(p.Ratio())
	a.logger.Info("aggregation progress",
		zap.Int("batch", p.Completed),
		zap.Int("batches", p.Total),
		zap.Float64("ratio", p.Ratio()))

	select {
	case a.progressChan <- p:
	default:
	}
}
