package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kerbaras/pokedex/pkg/app/components"
	"github.com/kerbaras/pokedex/pkg/app/styles"
	"github.com/kerbaras/pokedex/pkg/data"
	"github.com/kerbaras/pokedex/pkg/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var showCmd = &cobra.Command{
	Use:   "show [id or name]",
	Short: "Show a Pokémon",
	Long:  "Show a Pokémon's types, stats, description and evolution chain",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sprite, _ := cmd.Flags().GetBool("sprite")

		env, err := setup(cmd, false)
		cobra.CheckErr(err)
		defer env.close()

		details, err := env.controller.GetDetails(cmd.Context(), args[0])
		if errors.Is(err, services.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "❌ There is no Pokémon called %q.\n", args[0])
			env.close()
			os.Exit(1)
		}
		cobra.CheckErr(err)

		if sprite {
			art, err := env.controller.RenderSprite(cmd.Context(), details.ImageURL, 40)
			if err != nil {
				env.logger.Warn("sprite unavailable", zap.Error(err))
			} else {
				fmt.Println(art)
			}
		}

		fmt.Println(renderDetails(details))
	},
}

func init() {
	showCmd.Flags().Bool("sprite", false, "Draw the Pokémon's artwork in the terminal")
}

func renderDetails(d *data.Details) string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(fmt.Sprintf("%s %s", data.PaddedID(d.Pokemon.ID), data.FormatName(d.Pokemon.Name))))
	b.WriteString("\n")

	badges := make([]string, len(d.Pokemon.Types))
	for i, t := range d.Pokemon.Types {
		badges[i] = styles.TypeBadge(t.Name, data.FormatName(t.Name))
	}
	b.WriteString(strings.Join(badges, " "))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s • Height %s • Weight %s\n\n",
		data.GenerationLabel(d.Generation),
		data.FormatHeight(d.Pokemon.Height),
		data.FormatWeight(d.Pokemon.Weight))

	for _, stat := range d.Pokemon.Stats {
		b.WriteString(components.StatBar(data.StatLabel(stat.Name), stat.Base, 255, 30))
		b.WriteString("\n")
	}

	if d.Description != "" {
		b.WriteString("\n")
		b.WriteString(styles.CardStyle.Width(70).Render(d.Description))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if len(d.Evolutions) == 0 {
		b.WriteString(styles.MutedStyle.Render("This Pokémon does not evolve."))
		return b.String()
	}
	b.WriteString(styles.SubtitleStyle.Render("Evolution chain"))
	for _, evo := range d.Evolutions {
		marker := "  "
		if evo.Pokemon.Name == d.Pokemon.Name {
			marker = "▸ "
		}
		fmt.Fprintf(&b, "\n%s%s%s %s", strings.Repeat("  ", evo.Depth), marker,
			data.PaddedID(evo.Pokemon.ID), data.FormatName(evo.Pokemon.Name))
	}
	return b.String()
}
