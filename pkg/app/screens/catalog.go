package screens

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/pokedex/pkg/app/components"
	"github.com/kerbaras/pokedex/pkg/app/styles"
	"github.com/kerbaras/pokedex/pkg/data"
	"github.com/kerbaras/pokedex/pkg/services"
)

// scrollThreshold is how many rows from the bottom of the rendered window
// the cursor has to be before more entries are rendered.
const scrollThreshold = 5

// Controller is what the screens need from the services layer.
type Controller interface {
	LoadCatalog(ctx context.Context) ([]data.Entry, error)
	GetProgressChannel() <-chan services.Progress
	GetDetails(ctx context.Context, idOrName string) (*data.Details, error)
	TypeOptions(ctx context.Context) ([]data.TypeOption, error)
	GenerationOptions(ctx context.Context) ([]data.GenerationOption, error)
	RenderSprite(ctx context.Context, spriteURL string, width int) (string, error)
}

type CatalogScreen struct {
	ctx        context.Context
	controller Controller
	catalog    *services.Catalog
	list       *components.PokemonList
	progress   *components.ProgressTracker
	input      textinput.Model

	types       []string
	generations []string
	typeIdx     int
	genIdx      int

	loading   bool
	listening bool
	width     int
	height    int
	err       error
}

func NewCatalogScreen(ctx context.Context, controller Controller) *CatalogScreen {
	ti := textinput.New()
	ti.Placeholder = "Search by name or evolution..."
	ti.CharLimit = 50
	ti.Width = 40

	window := services.NewWindow()
	window.Threshold = scrollThreshold

	return &CatalogScreen{
		ctx:        ctx,
		controller: controller,
		catalog:    services.NewCatalog(window),
		list:       components.NewPokemonList(),
		progress:   components.NewProgressTracker(60),
		input:      ti,
		loading:    true,
	}
}

func (s *CatalogScreen) Init() tea.Cmd {
	s.listening = true
	return tea.Batch(s.loadCatalog, s.listenForProgress, s.loadOptions)
}

// Typing reports whether key presses go to the search input.
func (s *CatalogScreen) Typing() bool {
	return s.input.Focused()
}

func (s *CatalogScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.list.Width = msg.Width - 4
		s.list.Height = max(msg.Height-12, 3)
		s.progress.SetWidth(min(msg.Width-4, 60))

	case tea.KeyMsg:
		if s.input.Focused() {
			switch msg.String() {
			case "enter", "esc":
				s.input.Blur()
				return s, nil
			}
			before := s.input.Value()
			s.input, cmd = s.input.Update(msg)
			if s.input.Value() != before {
				s.apply(data.SetSearch(s.input.Value()))
			}
			return s, cmd
		}

		switch msg.String() {
		case "up", "k":
			s.list.Prev()
		case "down", "j":
			s.list.Next()
			s.onScroll()
		case "pgdown":
			s.list.PageDown()
			s.onScroll()
		case "pgup":
			s.list.PageUp()
		case "/":
			s.input.Focus()
			return s, textinput.Blink
		case "t":
			s.typeIdx = (s.typeIdx + 1) % (len(s.types) + 1)
			s.apply(data.SetType(optionAt(s.types, s.typeIdx)))
		case "g":
			s.genIdx = (s.genIdx + 1) % (len(s.generations) + 1)
			s.apply(data.SetGeneration(optionAt(s.generations, s.genIdx)))
		case "c":
			s.typeIdx, s.genIdx = 0, 0
			s.input.SetValue("")
			s.catalog.Clear()
			s.refreshList()
		case "r":
			if s.err != nil && !s.loading {
				return s, s.retry()
			}
		case "enter":
			if selected := s.list.Selected(); selected != nil {
				name := selected.Name
				return s, func() tea.Msg {
					return SwitchScreenMsg{Screen: "details", Data: name}
				}
			}
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			break
		}
		switch msg.Button {
		case tea.MouseButtonWheelDown:
			s.list.Next()
			s.onScroll()
		case tea.MouseButtonWheelUp:
			s.list.Prev()
		}

	case services.Progress:
		s.progress.Update(msg)
		if s.loading && msg.Completed < msg.Total {
			return s, s.listenForProgress
		}
		s.listening = false

	case catalogLoadedMsg:
		s.loading = false
		s.err = msg.err
		if msg.err == nil {
			s.catalog.SetEntries(msg.entries)
			s.list.Reset()
			s.refreshList()
		}

	case optionsLoadedMsg:
		if msg.err != nil {
			s.err = msg.err
			break
		}
		s.types = s.types[:0]
		for _, t := range msg.types {
			s.types = append(s.types, t.Name)
		}
		s.generations = s.generations[:0]
		for _, g := range msg.generations {
			s.generations = append(s.generations, g.Name)
		}
	}

	return s, cmd
}

// apply merges a criteria change. The catalog resets its window and the
// cursor goes back to the top.
func (s *CatalogScreen) apply(update data.CriteriaUpdate) {
	s.catalog.Update(update)
	s.list.Reset()
	s.refreshList()
}

func (s *CatalogScreen) onScroll() {
	if s.catalog.OnScroll(s.list.DistanceToBottom()) {
		s.refreshList()
	}
}

func (s *CatalogScreen) refreshList() {
	s.list.SetItems(s.catalog.Visible())
}

func (s *CatalogScreen) retry() tea.Cmd {
	s.err = nil
	s.loading = true
	s.progress.Clear()
	s.drainProgress()
	cmds := []tea.Cmd{s.loadCatalog, s.loadOptions}
	if !s.listening {
		s.listening = true
		cmds = append(cmds, s.listenForProgress)
	}
	return tea.Batch(cmds...)
}

// drainProgress drops updates left over from an earlier load.
func (s *CatalogScreen) drainProgress() {
	progress := s.controller.GetProgressChannel()
	for {
		select {
		case <-progress:
		default:
			return
		}
	}
}

func optionAt(options []string, idx int) string {
	if idx == 0 || idx > len(options) {
		return ""
	}
	return options[idx-1]
}

func (s *CatalogScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}

	header := styles.TitleStyle.Render("Pokédex")

	if s.loading {
		return fmt.Sprintf("%s\n\n%s", header, s.progress.View())
	}

	if s.err != nil && len(s.catalog.Entries()) == 0 {
		errorMsg := styles.StatusError.Render(fmt.Sprintf("Error loading Pokémon: %s", s.err))
		help := styles.HelpStyle.Render("r: retry • q: quit")
		return fmt.Sprintf("%s\n\n%s\n%s", header, errorMsg, help)
	}

	inputStyle := styles.InputStyle
	if s.input.Focused() {
		inputStyle = styles.FocusedInputStyle
	}
	search := inputStyle.Render(s.input.View())

	filters := lipgloss.JoinHorizontal(lipgloss.Center,
		s.renderFilter("Type", s.catalog.Criteria().Type, data.FormatName),
		" ",
		s.renderFilter("Generation", s.catalog.Criteria().Generation, data.GenerationLabel),
	)

	summary := styles.SubtitleStyle.Render(s.catalog.Summary())

	var errorMsg string
	if s.err != nil {
		errorMsg = styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err)) + "\n"
	}

	help := styles.HelpStyle.Render(
		"↑/k ↓/j: navigate • enter: details • /: search • t: type • g: generation • c: clear filters • q: quit",
	)

	return strings.Join([]string{
		header,
		lipgloss.JoinHorizontal(lipgloss.Center, search, "  ", filters),
		errorMsg + summary,
		s.list.View(),
		help,
	}, "\n")
}

func (s *CatalogScreen) renderFilter(label, value string, format func(string) string) string {
	if value == "" {
		return styles.InactiveFilterStyle.Render(label + ": all")
	}
	return styles.ActiveFilterStyle.Render(label + ": " + format(value))
}

// Commands
func (s *CatalogScreen) loadCatalog() tea.Msg {
	entries, err := s.controller.LoadCatalog(s.ctx)
	return catalogLoadedMsg{entries: entries, err: err}
}

func (s *CatalogScreen) listenForProgress() tea.Msg {
	select {
	case p := <-s.controller.GetProgressChannel():
		return p
	case <-s.ctx.Done():
		return nil
	}
}

func (s *CatalogScreen) loadOptions() tea.Msg {
	types, err := s.controller.TypeOptions(s.ctx)
	if err != nil {
		return optionsLoadedMsg{err: err}
	}
	generations, err := s.controller.GenerationOptions(s.ctx)
	if err != nil {
		return optionsLoadedMsg{err: err}
	}
	return optionsLoadedMsg{types: types, generations: generations}
}
