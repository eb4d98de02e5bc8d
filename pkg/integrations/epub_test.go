package integrations

import (
	"archive/zip"
	"context"
	"errors"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/kerbaras/pokedex/pkg/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockFetcher implements SpriteFetcher for testing
type mockFetcher struct {
	mu            sync.Mutex
	calls         []string
	getSpriteFunc func(ctx context.Context, url string) ([]byte, error)
}

func (m *mockFetcher) GetSprite(ctx context.Context, url string) ([]byte, error) {
	m.mu.Lock()
	m.calls = append(m.calls, url)
	m.mu.Unlock()
	if m.getSpriteFunc != nil {
		return m.getSpriteFunc(ctx, url)
	}
	return nil, errors.New("no sprite")
}

func testEntries() []data.Entry {
	return []data.Entry{
		{
			Pokemon:        data.Pokemon{ID: 1, Name: "bulbasaur", Sprite: "https://sprites.test/1.png", Types: []data.TypeSlot{{Slot: 1, Name: "grass"}, {Slot: 2, Name: "poison"}}},
			Generation:     "generation-i",
			EvolutionGroup: []string{"bulbasaur", "ivysaur", "venusaur"},
		},
		{
			Pokemon:    data.Pokemon{ID: 152, Name: "chikorita", Sprite: "https://sprites.test/152.png", Types: []data.TypeSlot{{Slot: 1, Name: "grass"}}},
			Generation: "generation-ii",
		},
		{
			Pokemon:    data.Pokemon{ID: 122, Name: "mr-mime", Types: []data.TypeSlot{{Slot: 1, Name: "psychic"}}},
			Generation: "generation-i",
		},
	}
}

func readEPub(t *testing.T, path string) map[string]string {
	t.Helper()
	reader, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer reader.Close()

	files := map[string]string{}
	for _, f := range reader.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		files[f.Name] = string(content)
	}
	return files
}

func TestNewEPubBuilder(t *testing.T) {
	builder := NewEPubBuilder("", nil, nil)
	if builder == nil {
		t.Fatal("Expected builder to be created")
	}
	if builder.outputDir != "." {
		t.Errorf("Expected default output dir '.', got '%s'", builder.outputDir)
	}
	if builder.logger == nil {
		t.Error("Expected logger to default to a no-op logger")
	}
}

func TestEPubBuilder_CreateEPub(t *testing.T) {
	outputDir := t.TempDir()
	fetcher := &mockFetcher{
		getSpriteFunc: func(ctx context.Context, url string) ([]byte, error) {
			if url == "" {
				return nil, errors.New("no sprite url")
			}
			return testSprite(t, 96, 24, color.RGBA{B: 255, A: 255}), nil
		},
	}
	builder := NewEPubBuilder(outputDir, fetcher, nil)

	path, err := builder.CreateEPub(context.Background(), "My Pokédex", testEntries())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outputDir, "My Pokédex.epub"), path)

	_, err = os.Stat(path)
	require.NoError(t, err)

	files := readEPub(t, path)
	assert.Equal(t, "application/epub+zip", files["mimetype"])

	var sections, images []string
	for name, content := range files {
		switch {
		case strings.HasSuffix(name, ".png"):
			images = append(images, name)
		case strings.Contains(content, "<h2>"):
			sections = append(sections, content)
		}
	}
	assert.Len(t, images, 2)
	require.Len(t, sections, 2)

	all := strings.Join(sections, "\n")
	assert.Contains(t, all, "Generation I")
	assert.Contains(t, all, "#001 Bulbasaur")
	assert.Contains(t, all, "#122 Mr mime")
	assert.Contains(t, all, "Grass / Poison")
	assert.Contains(t, all, "Bulbasaur → Ivysaur → Venusaur")
}

func TestEPubBuilder_SkipsFailedSprites(t *testing.T) {
	fetcher := &mockFetcher{}
	builder := NewEPubBuilder(t.TempDir(), fetcher, nil)

	path, err := builder.CreateEPub(context.Background(), "pokedex", testEntries())
	require.NoError(t, err)
	assert.Len(t, fetcher.calls, 3)

	for name := range readEPub(t, path) {
		assert.False(t, strings.HasSuffix(name, ".png"), "unexpected image %s", name)
	}
}

func TestEPubBuilder_NoEntries(t *testing.T) {
	builder := NewEPubBuilder(t.TempDir(), nil, nil)
	_, err := builder.CreateEPub(context.Background(), "empty", nil)
	if err == nil {
		t.Error("Expected error for empty entries")
	}
}

func TestEPubBuilder_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	builder := NewEPubBuilder(t.TempDir(), &mockFetcher{}, nil)
	_, err := builder.Export(ctx, "pokedex", testEntries())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGroupByGeneration(t *testing.T) {
	groups := groupByGeneration(testEntries())
	require.Len(t, groups, 2)
	assert.Equal(t, "generation-i", groups[0].name)
	assert.Len(t, groups[0].entries, 2)
	assert.Equal(t, "mr-mime", groups[0].entries[1].Name)
	assert.Equal(t, "generation-ii", groups[1].name)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Normal Name", "Normal Name"},
		{"Name/With/Slashes", "Name_With_Slashes"},
		{"Name:With:Colons", "Name_With_Colons"},
		{"  .Dots.  ", "Dots"},
		{"", "pokedex"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := sanitizeFilename(tt.input)
			if result != tt.expected {
				t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}
