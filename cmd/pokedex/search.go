package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/kerbaras/pokedex/pkg/data"
	"github.com/kerbaras/pokedex/pkg/services"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the Pokédex",
	Long:  "Search Pokémon by name or by the name of an evolution relative",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		query := strings.Join(args, " ")

		env, err := setup(cmd, false)
		cobra.CheckErr(err)
		defer env.close()

		entries, err := loadCatalog(cmd.Context(), env.controller)
		if err != nil {
			cobra.CheckErr(fmt.Errorf("search failed: %w", err))
		}

		results := services.Filter(entries, data.Criteria{Search: strings.TrimSpace(query)})
		if len(results) == 0 {
			fmt.Println("No results found.")
			return
		}

		t := newTable("#", "Name", "Types", "Evolution")
		for _, entry := range results {
			t.Row(
				data.PaddedID(entry.ID),
				data.FormatName(entry.Name),
				strings.Join(entry.TypeNames(), "/"),
				truncateString(strings.Join(entry.EvolutionGroup, " → "), 58),
			)
		}

		fmt.Println(t)
	},
}

func newTable(headers ...string) *table.Table {
	var (
		red = lipgloss.Color("#EE1515")

		headerStyle = lipgloss.NewStyle().Foreground(red).Bold(true).Align(lipgloss.Center)
		cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	)

	return table.New().
		Border(lipgloss.HiddenBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(red)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			default:
				return cellStyle
			}
		}).
		Headers(headers...)
}
