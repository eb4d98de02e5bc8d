package pokeapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kerbaras/pokedex/pkg/metrics"
	"github.com/kerbaras/pokedex/pkg/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultBaseURL = "https://pokeapi.co/api/v2"

	// DefaultListLimit covers every catalog entry in one page.
	DefaultListLimit = 1300

	// indexLimit is large enough for the type and generation indexes, which
	// the API pages at 20 by default.
	indexLimit = 100
)

// Client is a typed accessor over PokéAPI. Every request goes through the
// client's own Cache, so repeated calls for the same resource are free.
type Client struct {
	api     *utils.API
	cache   *Cache
	logger  *zap.Logger
	metrics *metrics.Collector
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) { c.api.WithClient(client) }
}

func WithUserAgent(userAgent string) Option {
	return func(c *Client) { c.api.WithUserAgent(userAgent) }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithMetrics(collector *metrics.Collector) Option {
	return func(c *Client) { c.metrics = collector }
}

func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		api:    utils.NewAPI(baseURL),
		cache:  NewCache(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewPokeAPI returns a client for the public API.
func NewPokeAPI(opts ...Option) *Client {
	return NewClient(DefaultBaseURL, opts...)
}

func (c *Client) Cache() *Cache {
	return c.cache
}

func (c *Client) get(ctx context.Context, rawURL string, v any) error {
	start := time.Now()
	status, err := c.api.Get(ctx, rawURL, v)
	took := time.Since(start)

	c.metrics.ObserveRequest(endpointOf(rawURL), status, took)
	c.logger.Debug("upstream request",
		zap.String("url", rawURL),
		zap.Int("status", status),
		zap.Duration("took", took),
		zap.Error(err))
	return err
}

func (c *Client) ListPokemon(ctx context.Context, limit, offset int) (*ListResponse, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))
	return fetchJSON[ListResponse](ctx, c, c.api.URL("/pokemon", params))
}

func (c *Client) GetPokemon(ctx context.Context, idOrName string) (*Pokemon, error) {
	return fetchJSON[Pokemon](ctx, c, c.api.URL("/pokemon/"+normalize(idOrName), nil))
}

func (c *Client) GetSpecies(ctx context.Context, idOrName string) (*Species, error) {
	return fetchJSON[Species](ctx, c, c.api.URL("/pokemon-species/"+normalize(idOrName), nil))
}

func (c *Client) GetEvolutionChain(ctx context.Context, id int) (*EvolutionChain, error) {
	return fetchJSON[EvolutionChain](ctx, c, c.api.URL("/evolution-chain/"+strconv.Itoa(id), nil))
}

// GetEvolutionChainByURL follows the chain reference of a species as-is.
func (c *Client) GetEvolutionChainByURL(ctx context.Context, chainURL string) (*EvolutionChain, error) {
	return fetchJSON[EvolutionChain](ctx, c, chainURL)
}

// GetTypes fetches the type index and then every listed type.
func (c *Client) GetTypes(ctx context.Context) ([]Type, error) {
	return fetchAll[Type](ctx, c, "/type")
}

// GetGenerations fetches the generation index and then every listed generation.
func (c *Client) GetGenerations(ctx context.Context) ([]Generation, error) {
	return fetchAll[Generation](ctx, c, "/generation")
}

// GetCompleteInfo loads a pokemon and its species concurrently, then the
// evolution chain when the species references one.
func (c *Client) GetCompleteInfo(ctx context.Context, idOrName string) (*CompleteInfo, error) {
	info := &CompleteInfo{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pokemon, err := c.GetPokemon(gctx, idOrName)
		info.Pokemon = pokemon
		return err
	})
	g.Go(func() error {
		species, err := c.GetSpecies(gctx, idOrName)
		info.Species = species
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if ref := info.Species.EvolutionChain; ref != nil && ref.URL != "" {
		chain, err := c.GetEvolutionChainByURL(ctx, ref.URL)
		if err != nil {
			return nil, err
		}
		info.EvolutionChain = chain
	}
	return info, nil
}

// GetSprite downloads image bytes. Sprites share the response cache, keyed
// by their URL like every other resource.
func (c *Client) GetSprite(ctx context.Context, spriteURL string) ([]byte, error) {
	if spriteURL == "" {
		return nil, fmt.Errorf("no sprite url")
	}
	v, hit, err := c.cache.Load(ctx, spriteURL, func(ctx context.Context) (any, error) {
		start := time.Now()
		body, err := c.api.GetBytes(ctx, spriteURL)
		c.metrics.ObserveRequest("sprite", statusOf(err), time.Since(start))
		return body, err
	})
	if hit {
		c.metrics.CacheHit()
	} else {
		c.metrics.CacheMiss()
	}
	if err != nil {
		return nil, err
	}
	body, ok := v.([]byte)
	if !ok {
		return nil, fmt.Errorf("cache entry for %s has type %T", spriteURL, v)
	}
	return body, nil
}

func statusOf(err error) int {
	var fetchErr *FetchError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &fetchErr):
		return fetchErr.StatusCode
	default:
		return 0
	}
}

func fetchAll[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(indexLimit))
	index, err := fetchJSON[ListResponse](ctx, c, c.api.URL(path, params))
	if err != nil {
		return nil, err
	}

	out := make([]T, len(index.Results))
	g, gctx := errgroup.WithContext(ctx)
	for i, member := range index.Results {
		g.Go(func() error {
			v, err := fetchJSON[T](gctx, c, member.URL)
			if err != nil {
				return err
			}
			out[i] = *v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// IDFromURL extracts the trailing numeric id of a resource URL such as
// https://pokeapi.co/api/v2/evolution-chain/10/.
func IDFromURL(resourceURL string) (int, error) {
	trimmed := strings.TrimRight(resourceURL, "/")
	idx := strings.LastIndex(trimmed, "/")
	id, err := strconv.Atoi(trimmed[idx+1:])
	if err != nil {
		return 0, fmt.Errorf("no id in resource url %q", resourceURL)
	}
	return id, nil
}

func normalize(idOrName string) string {
	return url.PathEscape(strings.ToLower(strings.TrimSpace(idOrName)))
}

var endpoints = map[string]bool{
	"pokemon":         true,
	"pokemon-species": true,
	"evolution-chain": true,
	"type":            true,
	"generation":      true,
}

// endpointOf maps a request URL to a low-cardinality metrics label.
func endpointOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "other"
	}
	for _, segment := range strings.Split(strings.Trim(u.Path, "/"), "/") {
		if endpoints[segment] {
			return segment
		}
	}
	return "other"
}
