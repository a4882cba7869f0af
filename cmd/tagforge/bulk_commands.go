package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"tagforge/internal/bulk"
	"tagforge/internal/dataset"
	"tagforge/internal/journal"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <tag> [image...]",
		Short: "Add a tag to every image (or the named images)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *dataset.Store) error {
				targets, err := resolveTargets(store, args[1:])
				if err != nil {
					return err
				}
				return ctx.withJournal(store, func(j *journal.Journal) error {
					count, err := bulk.NewMutator(store, ctx.ensureLogger()).AddGlobally(args[0], targets)
					if err != nil {
						return err
					}
					j.Record(context.Background(), "add", args[0], "", count)
					printResult(cmd.OutOrStdout(), "Added %q to %d image(s)", args[0], count)
					return nil
				})
			})
		},
	}
}

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <tag> [image...]",
		Short: "Remove a tag from every image (or the named images)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *dataset.Store) error {
				targets, err := resolveTargets(store, args[1:])
				if err != nil {
					return err
				}
				return ctx.withJournal(store, func(j *journal.Journal) error {
					count, err := bulk.NewMutator(store, ctx.ensureLogger()).RemoveGlobally(args[0], targets)
					if err != nil {
						return err
					}
					j.Record(context.Background(), "remove", args[0], "", count)
					printResult(cmd.OutOrStdout(), "Removed %q from %d image(s)", args[0], count)
					return nil
				})
			})
		},
	}
}

func newRenameCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <old> <new> [image...]",
		Short: "Rename a tag across every image (or the named images)",
		Long: `Rename a tag across the dataset. Matching is exact and case-sensitive;
the replacement keeps the tag's position within each image's list.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *dataset.Store) error {
				targets, err := resolveTargets(store, args[2:])
				if err != nil {
					return err
				}
				return ctx.withJournal(store, func(j *journal.Journal) error {
					count, err := bulk.NewMutator(store, ctx.ensureLogger()).RenameGlobally(args[0], args[1], targets)
					if err != nil {
						return err
					}
					j.Record(context.Background(), "rename", args[0], args[1], count)
					printResult(cmd.OutOrStdout(), "Renamed %q to %q on %d image(s)", args[0], args[1], count)
					return nil
				})
			})
		},
	}
}

func newEditCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <operation>...",
		Short: "Run several tag operations in one session",
		Long: `Run a sequence of operations against a single loaded session. Each
argument is one operation:

  "add <tag>"           add a tag to every image
  "remove <tag>"        remove a tag from every image
  "rename <old> <new>"  rename a tag everywhere
  "undo"                revert the most recent save in this session

Undo history lives with the session, so undo here reverts the per-image
saves made by earlier operations in the same invocation.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *dataset.Store) error {
				return ctx.withJournal(store, func(j *journal.Journal) error {
					mutator := bulk.NewMutator(store, ctx.ensureLogger())
					out := cmd.OutOrStdout()
					for _, op := range args {
						if err := runEditOp(out, store, mutator, j, op); err != nil {
							return err
						}
					}
					return nil
				})
			})
		},
	}
}

func runEditOp(out io.Writer, store *dataset.Store, mutator *bulk.Mutator, j *journal.Journal, op string) error {
	fields := strings.Fields(op)
	if len(fields) == 0 {
		return fmt.Errorf("empty operation")
	}
	switch fields[0] {
	case "add", "remove":
		if len(fields) != 2 {
			return fmt.Errorf("usage: %q <tag>", fields[0])
		}
		var count int
		var err error
		if fields[0] == "add" {
			count, err = mutator.AddGlobally(fields[1], nil)
		} else {
			count, err = mutator.RemoveGlobally(fields[1], nil)
		}
		if err != nil {
			return err
		}
		j.Record(context.Background(), fields[0], fields[1], "", count)
		printResult(out, "%s %q: %d image(s)", fields[0], fields[1], count)
		return nil
	case "rename":
		if len(fields) != 3 {
			return fmt.Errorf(`usage: "rename <old> <new>"`)
		}
		count, err := mutator.RenameGlobally(fields[1], fields[2], nil)
		if err != nil {
			return err
		}
		j.Record(context.Background(), "rename", fields[1], fields[2], count)
		printResult(out, "rename %q to %q: %d image(s)", fields[1], fields[2], count)
		return nil
	case "undo":
		image, err := store.Undo()
		if err != nil {
			if errors.Is(err, dataset.ErrNothingToUndo) {
				printNotice(out, "Nothing to undo")
				return nil
			}
			return err
		}
		j.Record(context.Background(), "undo", "", "", 1)
		printResult(out, "Restored %s", filepath.Base(image))
		return nil
	default:
		return fmt.Errorf("unknown operation %q", fields[0])
	}
}

func resolveTargets(store *dataset.Store, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	targets := make([]string, 0, len(names))
	for _, name := range names {
		image, err := resolveImage(store, name)
		if err != nil {
			return nil, fmt.Errorf("resolve target: %w", err)
		}
		targets = append(targets, image)
	}
	return targets, nil
}
