package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kerbaras/pokedex/pkg/data"
	"github.com/kerbaras/pokedex/pkg/pokeapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPokedexController(t *testing.T) {
	controller := NewPokedexController()

	if controller == nil {
		t.Fatal("NewPokedexController() returned nil")
	}
	if controller.source == nil {
		t.Error("Controller source not initialized")
	}
	if controller.aggregator == nil {
		t.Error("Controller aggregator not initialized")
	}
	if controller.details == nil {
		t.Error("Controller details loader not initialized")
	}
	if _, ok := controller.source.(*pokeapi.Client); !ok {
		t.Errorf("Expected default source to be *pokeapi.Client, got %T", controller.source)
	}
}

func TestNewPokedexControllerWithConfig(t *testing.T) {
	source := newFixtureSource()
	controller := NewPokedexControllerWithConfig(ControllerConfig{
		Source:      source,
		BatchSize:   10,
		MaxPokemon:  100,
		Concurrency: 4,
	})

	assert.Same(t, source, controller.source)
	assert.Equal(t, 10, controller.aggregator.batchSize)
	assert.Equal(t, 100, controller.aggregator.maxPokemon)
	assert.Equal(t, 4, controller.aggregator.concurrency)
}

func TestControllerLoadCatalog(t *testing.T) {
	controller := NewPokedexControllerWithConfig(ControllerConfig{Source: newFixtureSource(), BatchSize: 3})

	entries, err := controller.LoadCatalog(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, len(fixtures))
	assert.Len(t, controller.GetProgressChannel(), 2)
}

func TestControllerGetDetails(t *testing.T) {
	controller := NewPokedexControllerWithConfig(ControllerConfig{Source: newFixtureSource()})

	details, err := controller.GetDetails(context.Background(), "charmander")
	require.NoError(t, err)
	assert.Equal(t, "charmander", details.Pokemon.Name)

	_, err = controller.GetDetails(context.Background(), "agumon")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestControllerTypeOptions(t *testing.T) {
	source := newFixtureSource()
	source.getTypesFunc = func(ctx context.Context) ([]pokeapi.Type, error) {
		return []pokeapi.Type{
			{ID: 1, Name: "normal", Pokemon: make([]pokeapi.TypeMember, 3)},
			{ID: 10, Name: "fire", Pokemon: make([]pokeapi.TypeMember, 2)},
			{ID: 10001, Name: "unknown"},
			{ID: 10002, Name: "shadow"},
		}, nil
	}
	controller := NewPokedexControllerWithConfig(ControllerConfig{Source: source})

	options, err := controller.TypeOptions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []data.TypeOption{{Name: "normal", Count: 3}, {Name: "fire", Count: 2}}, options)
}

func TestControllerGenerationOptionsSortedByID(t *testing.T) {
	source := newFixtureSource()
	source.getGenerationsFunc = func(ctx context.Context) ([]pokeapi.Generation, error) {
		return []pokeapi.Generation{
			{ID: 3, Name: "generation-iii"},
			{ID: 1, Name: "generation-i", PokemonSpecies: make([]pokeapi.NamedResource, 151)},
			{ID: 2, Name: "generation-ii"},
		}, nil
	}
	controller := NewPokedexControllerWithConfig(ControllerConfig{Source: source})

	options, err := controller.GenerationOptions(context.Background())
	require.NoError(t, err)
	require.Len(t, options, 3)
	assert.Equal(t, "generation-i", options[0].Name)
	assert.Equal(t, 151, options[0].Count)
	assert.Equal(t, "generation-iii", options[2].Name)
}

func TestControllerOptionErrors(t *testing.T) {
	boom := errors.New("boom")
	source := newFixtureSource()
	source.getTypesFunc = func(ctx context.Context) ([]pokeapi.Type, error) { return nil, boom }
	source.getGenerationsFunc = func(ctx context.Context) ([]pokeapi.Generation, error) { return nil, boom }
	controller := NewPokedexControllerWithConfig(ControllerConfig{Source: source})

	_, err := controller.TypeOptions(context.Background())
	assert.ErrorIs(t, err, boom)
	_, err = controller.GenerationOptions(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestControllerRenderSprite(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	source := newFixtureSource()
	source.getSpriteFunc = func(ctx context.Context, url string) ([]byte, error) {
		if url != "https://sprites.test/25.png" {
			return nil, notFound(url)
		}
		return buf.Bytes(), nil
	}
	controller := NewPokedexControllerWithConfig(ControllerConfig{Source: source})

	art, err := controller.RenderSprite(context.Background(), "https://sprites.test/25.png", 4)
	require.NoError(t, err)
	assert.Len(t, strings.Split(art, "\n"), 2)

	_, err = controller.RenderSprite(context.Background(), "https://sprites.test/0.png", 4)
	assert.True(t, pokeapi.IsNotFound(err))
}

func TestControllerExport(t *testing.T) {
	dir := t.TempDir()
	controller := NewPokedexControllerWithConfig(ControllerConfig{Source: newFixtureSource(), ExportDir: dir})

	path, err := controller.Export(context.Background(), "electric", data.Criteria{Type: "electric"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "electric.epub"), path)

	_, err = os.Stat(path)
	assert.NoError(t, err)

	_, err = controller.Export(context.Background(), "none", data.Criteria{Type: "dragon"})
	assert.Error(t, err)
}
