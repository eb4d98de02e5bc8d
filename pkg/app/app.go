package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/pokedex/pkg/app/screens"
)

type App struct {
	controller screens.Controller
}

func NewApp(controller screens.Controller) *App {
	return &App{controller: controller}
}

// Run blocks until the user quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	model := screens.NewRootScreen(ctx, a.controller)
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
