package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tagforge/internal/category"
	"tagforge/internal/dataset"
)

func newCategorizeCommand(ctx *commandContext) *cobra.Command {
	categorizeCmd := &cobra.Command{
		Use:   "categorize",
		Short: "Assign tags to categories",
	}

	categorizeCmd.AddCommand(newCategorizeAutoCommand(ctx))
	categorizeCmd.AddCommand(newCategorizeShowCommand(ctx))
	categorizeCmd.AddCommand(newCategorizeCommitCommand(ctx))

	return categorizeCmd
}

func (c *commandContext) withClassifier(fn func(*dataset.Store, *category.Classifier) error) error {
	return c.withStore(func(store *dataset.Store) error {
		cfg, err := c.ensureConfig()
		if err != nil {
			return err
		}
		classifier, err := category.NewClassifier(store, cfg.Categories.Path, c.ensureLogger())
		if err != nil {
			return err
		}
		return fn(store, classifier)
	})
}

func newCategorizeAutoCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "auto",
		Short: "Auto-assign uncategorized tags and rewrite sidecars",
		Long: `Match every uncategorized tag against the catalog's keyword patterns,
assign it to the first matching category, and commit the result: sidecars are
rewritten in category order and the grouping record is updated. With
--dry-run the assignment is shown without touching any file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClassifier(func(store *dataset.Store, classifier *category.Classifier) error {
				out := cmd.OutOrStdout()
				placed := classifier.AutoCategorize()
				printResult(out, "Categorized %d tag(s)", placed)

				if dryRun {
					printCategories(cmd, classifier)
					printNotice(out, "Dry run; nothing was written")
					return nil
				}
				changed, err := classifier.Commit()
				if err != nil {
					return err
				}
				printResult(out, "Rewrote %d image(s)", changed)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show assignments without writing files")
	return cmd
}

func newCategorizeShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show category membership and uncategorized tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClassifier(func(store *dataset.Store, classifier *category.Classifier) error {
				printCategories(cmd, classifier)
				return nil
			})
		},
	}
}

func newCategorizeCommitCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "commit",
		Short: "Rewrite sidecars from the recorded category assignments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClassifier(func(store *dataset.Store, classifier *category.Classifier) error {
				changed, err := classifier.Commit()
				if err != nil {
					return err
				}
				printResult(cmd.OutOrStdout(), "Rewrote %d image(s)", changed)
				return nil
			})
		},
	}
}

func printCategories(cmd *cobra.Command, classifier *category.Classifier) {
	out := cmd.OutOrStdout()
	rows := make([][]string, 0)
	for _, view := range classifier.Categories() {
		rows = append(rows, []string{view.Name, strings.Join(view.Tags, ", "), strconv.Itoa(len(view.Tags))})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Category", "Tags", "Count"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight},
	))

	uncategorized := classifier.Uncategorized()
	if len(uncategorized) == 0 {
		return
	}
	fmt.Fprintf(out, "Uncategorized (%d):\n", len(uncategorized))
	for _, tc := range uncategorized {
		fmt.Fprintf(out, "  %s (%d)\n", tc.Tag, tc.Count)
	}
}
