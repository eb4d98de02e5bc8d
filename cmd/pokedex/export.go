package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the Pokédex as an EPUB",
	Long: `Aggregate the catalog and write the entries matching the filters to an EPUB,
one chapter per generation with each Pokémon's artwork.

Examples:
  pokedex export --type fire
  pokedex export --generation generation-i --output kanto.epub`,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")
		title, _ := cmd.Flags().GetString("title")

		env, err := setup(cmd, false)
		cobra.CheckErr(err)
		defer env.close()

		stop := trackProgress(env.controller)
		path, err := env.controller.Export(cmd.Context(), title, criteriaFromFlags(cmd))
		stop()
		if err != nil {
			cobra.CheckErr(fmt.Errorf("export failed: %w", err))
		}

		if output != "" && output != path {
			if dir := filepath.Dir(output); dir != "." {
				cobra.CheckErr(os.MkdirAll(dir, 0755))
			}
			cobra.CheckErr(os.Rename(path, output))
			path = output
		}

		fmt.Printf("📖 EPUB created: %s\n", path)
	},
}

func init() {
	addFilterFlags(exportCmd)
	exportCmd.Flags().StringP("output", "o", "", "Where to write the EPUB (default <title>.epub)")
	exportCmd.Flags().String("title", "Pokédex", "Book title")
}
