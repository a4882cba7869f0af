package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"tagforge/internal/dataset"
	"tagforge/internal/suggest"
)

func newSuggestCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <image>",
		Short: "Suggest near-duplicate tags for an image",
		Long: `Suggest dataset tags within the configured edit distance of the image's
current tags. Tags the image already carries are never suggested.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *dataset.Store) error {
				image, err := resolveImage(store, args[0])
				if err != nil {
					return err
				}
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}

				engine := suggest.NewEngine(store.Index(), cfg.Suggestions.SimilarityThreshold)
				suggestions := engine.Suggest(store.GetTags(image))
				out := cmd.OutOrStdout()
				if len(suggestions) == 0 {
					printNotice(out, "No suggestions for %s", filepath.Base(image))
					return nil
				}

				rows := make([][]string, 0, len(suggestions))
				for _, tc := range suggestions {
					rows = append(rows, []string{tc.Tag, strconv.Itoa(tc.Count)})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Suggestion", "Count"},
					rows,
					[]columnAlignment{alignLeft, alignRight},
				))
				return nil
			})
		},
	}
}
