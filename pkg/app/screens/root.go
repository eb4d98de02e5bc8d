package screens

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/pokedex/pkg/services"
)

type screenType int

const (
	catalogView screenType = iota
	detailsView
)

type RootScreen struct {
	ctx        context.Context
	controller Controller

	currentView screenType
	catalog     *CatalogScreen
	details     *DetailsScreen

	width  int
	height int
}

func NewRootScreen(ctx context.Context, controller Controller) *RootScreen {
	return &RootScreen{
		ctx:         ctx,
		controller:  controller,
		currentView: catalogView,
		catalog:     NewCatalogScreen(ctx, controller),
	}
}

func (r *RootScreen) Init() tea.Cmd {
	return r.catalog.Init()
}

func (r *RootScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height
		// Both screens keep their size so switching back renders at once.
		r.catalog.Update(msg)
		if r.details != nil {
			r.details.Update(msg)
		}
		return r, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return r, tea.Quit
		case "q":
			if !(r.currentView == catalogView && r.catalog.Typing()) {
				return r, tea.Quit
			}
		}

	case SwitchScreenMsg:
		switch msg.Screen {
		case "catalog":
			r.currentView = catalogView
			r.details = nil
		case "details":
			if name, ok := msg.Data.(string); ok {
				r.details = NewDetailsScreen(r.ctx, r.controller, name)
				r.details.Update(tea.WindowSizeMsg{Width: r.width, Height: r.height})
				r.currentView = detailsView
				cmd = r.details.Init()
			}
		}
		return r, cmd

	// Catalog loading keeps going while details are shown.
	case catalogLoadedMsg, optionsLoadedMsg, services.Progress:
		_, cmd = r.catalog.Update(msg)
		return r, cmd
	}

	switch r.currentView {
	case catalogView:
		newModel, newCmd := r.catalog.Update(msg)
		r.catalog = newModel.(*CatalogScreen)
		return r, newCmd
	case detailsView:
		if r.details != nil {
			newModel, newCmd := r.details.Update(msg)
			r.details = newModel.(*DetailsScreen)
			return r, newCmd
		}
	}

	return r, cmd
}

func (r *RootScreen) View() string {
	switch r.currentView {
	case detailsView:
		if r.details != nil {
			return r.details.View()
		}
	}
	return r.catalog.View()
}
