package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/pokedex/pkg/data"
	"github.com/kerbaras/pokedex/pkg/services"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the Pokédex",
	Long:  "Aggregate the catalog and display the entries matching the filters in a table",
	Run: func(cmd *cobra.Command, args []string) {
		env, err := setup(cmd, false)
		cobra.CheckErr(err)
		defer env.close()

		limit, _ := cmd.Flags().GetInt("limit")
		criteria := criteriaFromFlags(cmd)

		entries, err := loadCatalog(cmd.Context(), env.controller)
		if err != nil {
			cobra.CheckErr(fmt.Errorf("failed to load the catalog: %w", err))
		}

		matched := services.Filter(entries, criteria)
		if len(matched) == 0 {
			fmt.Println("❌ No Pokémon match those filters.")
			return
		}

		shown := matched
		if limit > 0 && len(shown) > limit {
			shown = shown[:limit]
		}

		fmt.Printf("\n📚 Showing %d of %d Pokémon\n\n", len(shown), len(matched))
		fmt.Println(entryTable(shown).View())
	},
}

func init() {
	addFilterFlags(listCmd)
	listCmd.Flags().IntP("limit", "n", 0, "Show at most this many entries (0 for all)")
}

func entryTable(entries []data.Entry) table.Model {
	columns := []table.Column{
		{Title: "#", Width: 6},
		{Title: "Name", Width: 24},
		{Title: "Types", Width: 20},
		{Title: "Generation", Width: 16},
		{Title: "Evolution", Width: 40},
	}

	rows := make([]table.Row, len(entries))
	for i, entry := range entries {
		rows[i] = table.Row{
			data.PaddedID(entry.ID),
			truncateString(data.FormatName(entry.Name), 22),
			strings.Join(entry.TypeNames(), "/"),
			data.GenerationLabel(entry.Generation),
			truncateString(strings.Join(entry.EvolutionGroup, " → "), 38),
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Cell
	t.SetStyles(s)
	return t
}
