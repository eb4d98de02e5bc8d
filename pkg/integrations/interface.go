package integrations

import (
	"context"

	"github.com/kerbaras/pokedex/pkg/data"
)

// SpriteFetcher downloads image bytes. *pokeapi.Client implements it.
type SpriteFetcher interface {
	GetSprite(ctx context.Context, url string) ([]byte, error)
}

// Exporter writes a set of catalog entries somewhere and returns where.
type Exporter interface {
	Export(ctx context.Context, title string, entries []data.Entry) (string, error)
}
