package integrations

import (
	"context"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-shiori/go-epub"
	"github.com/kerbaras/pokedex/pkg/data"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const spriteFetchLimit = 8

// EPubBuilder compiles catalog entries into a Pokédex e-book, one section
// per generation.
type EPubBuilder struct {
	outputDir string
	fetcher   SpriteFetcher
	processor *SpriteProcessor
	logger    *zap.Logger
}

func NewEPubBuilder(outputDir string, fetcher SpriteFetcher, logger *zap.Logger) *EPubBuilder {
	if outputDir == "" {
		outputDir = "."
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EPubBuilder{
		outputDir: outputDir,
		fetcher:   fetcher,
		processor: NewSpriteProcessor(DefaultSpriteSettings),
		logger:    logger,
	}
}

func (p *EPubBuilder) Export(ctx context.Context, title string, entries []data.Entry) (string, error) {
	return p.CreateEPub(ctx, title, entries)
}

// CreateEPub writes entries to <outputDir>/<title>.epub. Entries whose
// sprite cannot be fetched are written without an image.
func (p *EPubBuilder) CreateEPub(ctx context.Context, title string, entries []data.Entry) (string, error) {
	if len(entries) == 0 {
		return "", fmt.Errorf("no pokemon to export")
	}

	if err := os.MkdirAll(p.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	spriteDir, err := os.MkdirTemp("", "pokedex-epub-*")
	if err != nil {
		return "", fmt.Errorf("failed to create sprite directory: %w", err)
	}
	defer os.RemoveAll(spriteDir)

	sprites, err := p.fetchSprites(ctx, spriteDir, entries)
	if err != nil {
		return "", err
	}

	e, err := epub.NewEpub(title)
	if err != nil {
		return "", fmt.Errorf("failed to create EPub: %w", err)
	}
	e.SetAuthor("PokéAPI")
	e.SetDescription(fmt.Sprintf("%d Pokémon", len(entries)))
	e.SetLang("en")

	for _, group := range groupByGeneration(entries) {
		if err := p.addGeneration(e, group, sprites); err != nil {
			return "", err
		}
	}

	outputPath := filepath.Join(p.outputDir, sanitizeFilename(title)+".epub")
	if err := e.Write(outputPath); err != nil {
		return "", fmt.Errorf("failed to write EPub: %w", err)
	}
	p.logger.Info("epub written", zap.String("path", outputPath), zap.Int("pokemon", len(entries)))
	return outputPath, nil
}

// fetchSprites downloads and processes sprites concurrently. The result maps
// a pokemon id to a local PNG path.
func (p *EPubBuilder) fetchSprites(ctx context.Context, dir string, entries []data.Entry) (map[int]string, error) {
	if p.fetcher == nil {
		return map[int]string{}, nil
	}
	paths := make([]string, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(spriteFetchLimit)
	for i, entry := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			path, err := p.writeSprite(gctx, dir, &entry)
			if err != nil {
				p.logger.Warn("sprite skipped", zap.String("name", entry.Name), zap.Error(err))
				return nil
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[int]string, len(entries))
	for i, path := range paths {
		if path != "" {
			out[entries[i].ID] = path
		}
	}
	return out, nil
}

func (p *EPubBuilder) writeSprite(ctx context.Context, dir string, entry *data.Entry) (string, error) {
	raw, err := p.fetcher.GetSprite(ctx, entry.Sprite)
	if err != nil {
		return "", err
	}
	processed, err := p.processor.Process(raw)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("%04d.png", entry.ID))
	if err := os.WriteFile(path, processed, 0644); err != nil {
		return "", fmt.Errorf("failed to write sprite: %w", err)
	}
	return path, nil
}

func (p *EPubBuilder) addGeneration(e *epub.Epub, group generationGroup, sprites map[int]string) error {
	title := data.GenerationLabel(group.name)

	var body strings.Builder
	fmt.Fprintf(&body, "<h1>%s</h1>\n", html.EscapeString(title))

	for _, entry := range group.entries {
		fmt.Fprintf(&body, "<div class=\"pokemon\">\n<h2>%s %s</h2>\n",
			data.PaddedID(entry.ID), html.EscapeString(data.FormatName(entry.Name)))

		if path, ok := sprites[entry.ID]; ok {
			internal, err := e.AddImage(path, filepath.Base(path))
			if err != nil {
				return fmt.Errorf("failed to add sprite for %s: %w", entry.Name, err)
			}
			fmt.Fprintf(&body, "<img src=\"%s\" alt=\"%s\"/>\n", internal, html.EscapeString(entry.Name))
		}

		types := make([]string, len(entry.Types))
		for i, t := range entry.Types {
			types[i] = data.FormatName(t.Name)
		}
		fmt.Fprintf(&body, "<p>Type: %s</p>\n", html.EscapeString(strings.Join(types, " / ")))
		fmt.Fprintf(&body, "<p>Height: %s, Weight: %s</p>\n", data.FormatHeight(entry.Height), data.FormatWeight(entry.Weight))

		if len(entry.EvolutionGroup) > 1 {
			names := make([]string, len(entry.EvolutionGroup))
			for i, name := range entry.EvolutionGroup {
				names[i] = data.FormatName(name)
			}
			fmt.Fprintf(&body, "<p>Evolution line: %s</p>\n", html.EscapeString(strings.Join(names, " → ")))
		}
		body.WriteString("</div>\n")
	}

	if _, err := e.AddSection(body.String(), title, "", ""); err != nil {
		return fmt.Errorf("failed to add section: %w", err)
	}
	return nil
}

type generationGroup struct {
	name    string
	entries []data.Entry
}

// groupByGeneration keeps first-seen order of generations and entries.
func groupByGeneration(entries []data.Entry) []generationGroup {
	var groups []generationGroup
	index := map[string]int{}
	for _, entry := range entries {
		i, ok := index[entry.Generation]
		if !ok {
			i = len(groups)
			index[entry.Generation] = i
			groups = append(groups, generationGroup{name: entry.Generation})
		}
		groups[i].entries = append(groups[i].entries, entry)
	}
	return groups
}

// sanitizeFilename removes characters that are invalid in filenames
func sanitizeFilename(name string) string {
	invalid := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"}
	result := name
	for _, char := range invalid {
		result = strings.ReplaceAll(result, char, "_")
	}
	result = strings.TrimSpace(result)
	result = strings.Trim(result, ".")
	if result == "" {
		return "pokedex"
	}
	return result
}
