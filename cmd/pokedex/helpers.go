package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/kerbaras/pokedex/pkg/data"
	"github.com/kerbaras/pokedex/pkg/services"
	"github.com/spf13/cobra"
)

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("search", "s", "", "Match names and evolution relatives")
	cmd.Flags().StringP("type", "t", "", "Only Pokémon of this type (e.g. fire)")
	cmd.Flags().StringP("generation", "g", "", "Only Pokémon of this generation (e.g. generation-i)")
}

func criteriaFromFlags(cmd *cobra.Command) data.Criteria {
	search, _ := cmd.Flags().GetString("search")
	typ, _ := cmd.Flags().GetString("type")
	generation, _ := cmd.Flags().GetString("generation")

	return data.Criteria{}.Merge(data.CriteriaUpdate{
		Search:     &search,
		Type:       &typ,
		Generation: &generation,
	})
}

// loadCatalog aggregates the working set, printing batch progress to stderr.
func loadCatalog(ctx context.Context, controller *services.PokedexController) ([]data.Entry, error) {
	stop := trackProgress(controller)
	defer stop()
	return controller.LoadCatalog(ctx)
}

// trackProgress prints aggregation progress until the returned func is
// called.
func trackProgress(controller *services.PokedexController) func() {
	done := make(chan struct{})
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)
		for {
			select {
			case progress := <-controller.GetProgressChannel():
				fmt.Fprintf(os.Stderr, "\r⏳ Loading batch %d/%d (%d Pokémon)",
					progress.Completed, progress.Total, progress.Loaded)
			case <-done:
				fmt.Fprint(os.Stderr, "\r\033[K")
				return
			}
		}
	}()

	return func() {
		close(done)
		<-stopped
	}
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
