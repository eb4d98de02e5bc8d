package screens

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/pokedex/pkg/app/components"
	"github.com/kerbaras/pokedex/pkg/app/styles"
	"github.com/kerbaras/pokedex/pkg/data"
	"github.com/kerbaras/pokedex/pkg/services"
)

const (
	artWidth  = 32
	statWidth = 24
	maxStat   = 255
)

type DetailsScreen struct {
	ctx        context.Context
	controller Controller
	name       string

	details           *data.Details
	art               string
	selectedEvolution int
	spinner           spinner.Model
	loading           bool
	width             int
	height            int
	err               error
}

func NewDetailsScreen(ctx context.Context, controller Controller, name string) *DetailsScreen {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.StatusLoading

	return &DetailsScreen{
		ctx:        ctx,
		controller: controller,
		name:       name,
		spinner:    sp,
		loading:    true,
	}
}

func (s *DetailsScreen) Init() tea.Cmd {
	return tea.Batch(s.spinner.Tick, s.loadDetails)
}

func (s *DetailsScreen) NotFound() bool {
	return errors.Is(s.err, services.ErrNotFound)
}

func (s *DetailsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selectedEvolution > 0 {
				s.selectedEvolution--
			}
		case "down", "j":
			if s.details != nil && s.selectedEvolution < len(s.details.Evolutions)-1 {
				s.selectedEvolution++
			}
		case "enter":
			if s.details == nil || len(s.details.Evolutions) == 0 {
				break
			}
			name := s.details.Evolutions[s.selectedEvolution].Pokemon.Name
			if name == s.details.Pokemon.Name {
				break
			}
			return s, func() tea.Msg {
				return SwitchScreenMsg{Screen: "details", Data: name}
			}
		case "r":
			if s.err != nil && !s.NotFound() {
				s.err = nil
				s.loading = true
				return s, tea.Batch(s.spinner.Tick, s.loadDetails)
			}
		case "esc", "backspace":
			return s, func() tea.Msg {
				return SwitchScreenMsg{Screen: "catalog"}
			}
		}

	case spinner.TickMsg:
		if !s.loading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case detailsLoadedMsg:
		if msg.name != s.name {
			return s, nil
		}
		s.loading = false
		s.details = msg.details
		s.err = msg.err
		if msg.details != nil {
			s.selectedEvolution = 0
			for i, evo := range msg.details.Evolutions {
				if evo.Pokemon.Name == msg.details.Pokemon.Name {
					s.selectedEvolution = i
				}
			}
			return s, s.loadSprite(msg.details.Pokemon.Sprite)
		}

	case spriteLoadedMsg:
		if msg.name != s.name {
			return s, nil
		}
		// A missing sprite only leaves the art panel empty.
		s.art = msg.art
	}

	return s, nil
}

func (s *DetailsScreen) View() string {
	if s.loading {
		return fmt.Sprintf("%s Loading %s...", s.spinner.View(), data.FormatName(s.name))
	}

	if s.NotFound() {
		header := styles.TitleStyle.Render("Pokémon not found")
		body := styles.MutedStyle.Render(fmt.Sprintf("There is no Pokémon called %q.", s.name))
		help := styles.HelpStyle.Render("esc: back • q: quit")
		return fmt.Sprintf("%s\n\n%s\n%s", header, body, help)
	}

	if s.err != nil {
		errorMsg := styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err))
		help := styles.HelpStyle.Render("r: retry • esc: back • q: quit")
		return fmt.Sprintf("%s\n%s", errorMsg, help)
	}

	d := s.details
	header := styles.TitleStyle.Render(fmt.Sprintf("%s %s", data.PaddedID(d.Pokemon.ID), data.FormatName(d.Pokemon.Name)))

	info := lipgloss.JoinVertical(lipgloss.Left,
		s.renderTypes(),
		"",
		styles.TextStyle.Render(data.GenerationLabel(d.Generation)),
		styles.MutedStyle.Render(fmt.Sprintf("Height %s • Weight %s",
			data.FormatHeight(d.Pokemon.Height), data.FormatWeight(d.Pokemon.Weight))),
		"",
		s.renderStats(),
	)

	top := info
	if s.art != "" {
		top = lipgloss.JoinHorizontal(lipgloss.Top, s.art, "   ", info)
	}

	sections := []string{header, top}
	if d.Description != "" {
		width := max(s.width-8, 20)
		sections = append(sections, styles.CardStyle.Width(width).Render(styles.TextStyle.Render(d.Description)))
	}
	sections = append(sections, s.renderEvolutions())
	sections = append(sections, styles.HelpStyle.Render(
		"↑/k ↓/j: select evolution • enter: open evolution • esc: back • q: quit",
	))

	return strings.Join(sections, "\n")
}

func (s *DetailsScreen) renderTypes() string {
	badges := make([]string, len(s.details.Pokemon.Types))
	for i, t := range s.details.Pokemon.Types {
		badges[i] = styles.TypeBadge(t.Name, data.FormatName(t.Name))
	}
	return strings.Join(badges, " ")
}

func (s *DetailsScreen) renderStats() string {
	lines := make([]string, len(s.details.Pokemon.Stats))
	for i, stat := range s.details.Pokemon.Stats {
		lines[i] = components.StatBar(data.StatLabel(stat.Name), stat.Base, maxStat, statWidth)
	}
	return strings.Join(lines, "\n")
}

func (s *DetailsScreen) renderEvolutions() string {
	if len(s.details.Evolutions) == 0 {
		return styles.MutedStyle.Render("This Pokémon does not evolve.")
	}

	var b strings.Builder
	b.WriteString(styles.SubtitleStyle.Render("Evolution chain"))
	b.WriteString("\n")

	for i, evo := range s.details.Evolutions {
		line := fmt.Sprintf("%s%s %s", strings.Repeat("  ", evo.Depth), data.PaddedID(evo.Pokemon.ID), data.FormatName(evo.Pokemon.Name))
		if how := describeTrigger(evo); how != "" {
			line += styles.MutedStyle.Render(" (" + how + ")")
		}

		switch {
		case i == s.selectedEvolution:
			line = styles.SelectedStyle.Render("▸ " + line)
		case evo.Pokemon.Name == s.details.Pokemon.Name:
			line = styles.TextStyle.Bold(true).Render("  " + line)
		default:
			line = styles.TextStyle.Render("  " + line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func describeTrigger(evo data.Evolution) string {
	switch {
	case evo.Depth == 0:
		return ""
	case evo.Level > 0:
		return fmt.Sprintf("level %d", evo.Level)
	case evo.Trigger != "":
		return data.FormatName(evo.Trigger)
	default:
		return ""
	}
}

// Commands
func (s *DetailsScreen) loadDetails() tea.Msg {
	details, err := s.controller.GetDetails(s.ctx, s.name)
	return detailsLoadedMsg{name: s.name, details: details, err: err}
}

func (s *DetailsScreen) loadSprite(url string) tea.Cmd {
	if url == "" {
		return nil
	}
	name := s.name
	return func() tea.Msg {
		art, err := s.controller.RenderSprite(s.ctx, url, artWidth)
		return spriteLoadedMsg{name: name, art: art, err: err}
	}
}
