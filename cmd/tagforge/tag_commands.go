package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tagforge/internal/dataset"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Load the dataset and summarize its tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *dataset.Store) error {
				out := cmd.OutOrStdout()
				tagged := 0
				for _, image := range store.Images() {
					if len(store.GetTags(image)) > 0 {
						tagged++
					}
				}
				fmt.Fprintf(out, "Folder:        %s\n", store.Folder())
				fmt.Fprintf(out, "Images:        %d\n", len(store.Images()))
				fmt.Fprintf(out, "Tagged images: %d\n", tagged)
				fmt.Fprintf(out, "Distinct tags: %d\n", store.Index().Distinct())
				return nil
			})
		},
	}
}

func newTagsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List tags by frequency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *dataset.Store) error {
				counts := store.Index().AllByFrequency()
				if len(counts) == 0 {
					printNotice(cmd.OutOrStdout(), "No tags in %s", store.Folder())
					return nil
				}
				if limit > 0 && len(counts) > limit {
					counts = counts[:limit]
				}

				rows := make([][]string, 0, len(counts))
				for _, tc := range counts {
					rows = append(rows, []string{tc.Tag, strconv.Itoa(tc.Count)})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Tag", "Count"},
					rows,
					[]columnAlignment{alignLeft, alignRight},
				))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show only the most frequent N tags")
	return cmd
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <image>",
		Short: "Show one image's tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *dataset.Store) error {
				image, err := resolveImage(store, args[0])
				if err != nil {
					return err
				}
				tags := store.GetTags(image)
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s\n", filepath.Base(image))
				if len(tags) == 0 {
					printNotice(out, "  (no tags)")
					return nil
				}
				for _, tag := range tags {
					fmt.Fprintf(out, "  %s\n", tag)
				}
				return nil
			})
		},
	}
}

func newFindCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "find <term>",
		Short: "List images whose tags contain a term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *dataset.Store) error {
				matches := store.FilterByTag(args[0])
				out := cmd.OutOrStdout()
				if len(matches) == 0 {
					printNotice(out, "No images match %q", args[0])
					return nil
				}
				for _, image := range matches {
					fmt.Fprintln(out, filepath.Base(image))
				}
				printResult(out, "%d image(s)", len(matches))
				return nil
			})
		},
	}
}

// resolveImage accepts an absolute path, a path relative to the dataset
// folder, or a bare file name unique within the dataset.
func resolveImage(store *dataset.Store, arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", fmt.Errorf("image name is required")
	}
	if store.Contains(arg) {
		return arg, nil
	}
	joined := filepath.Join(store.Folder(), arg)
	if store.Contains(joined) {
		return joined, nil
	}

	var match string
	for _, image := range store.Images() {
		if filepath.Base(image) == arg {
			if match != "" {
				return "", fmt.Errorf("image name %q is ambiguous; use a path relative to the folder", arg)
			}
			match = image
		}
	}
	if match == "" {
		return "", fmt.Errorf("image %q not found in %s", arg, store.Folder())
	}
	return match, nil
}
