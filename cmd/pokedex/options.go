package cmd

import (
	"fmt"

	"github.com/kerbaras/pokedex/pkg/data"
	"github.com/spf13/cobra"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the type filters",
	Run: func(cmd *cobra.Command, args []string) {
		env, err := setup(cmd, false)
		cobra.CheckErr(err)
		defer env.close()

		types, err := env.controller.TypeOptions(cmd.Context())
		cobra.CheckErr(err)

		t := newTable("Type", "Pokémon")
		for _, option := range types {
			t.Row(data.FormatName(option.Name), fmt.Sprintf("%d", option.Count))
		}
		fmt.Println(t)
	},
}

var generationsCmd = &cobra.Command{
	Use:   "generations",
	Short: "List the generation filters",
	Run: func(cmd *cobra.Command, args []string) {
		env, err := setup(cmd, false)
		cobra.CheckErr(err)
		defer env.close()

		generations, err := env.controller.GenerationOptions(cmd.Context())
		cobra.CheckErr(err)

		t := newTable("Generation", "Filter", "Species")
		for _, option := range generations {
			t.Row(data.GenerationLabel(option.Name), option.Name, fmt.Sprintf("%d", option.Count))
		}
		fmt.Println(t)
	},
}
