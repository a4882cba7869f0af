package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tagforge/internal/dataset"
	"tagforge/internal/journal"
)

func newLogCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent journaled mutations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *dataset.Store) error {
				j, err := journal.Open(store.Folder(), ctx.ensureLogger())
				if err != nil {
					return err
				}
				defer j.Close()

				entries, err := j.Recent(context.Background(), limit)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					printNotice(out, "Journal is empty")
					return nil
				}

				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					tag := entry.Tag
					if entry.NewTag != "" {
						tag = fmt.Sprintf("%s -> %s", entry.Tag, entry.NewTag)
					}
					rows = append(rows, []string{
						entry.OccurredAt.Local().Format("2006-01-02 15:04:05"),
						entry.Op,
						tag,
						strconv.Itoa(entry.ImagesAffected),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"When", "Op", "Tag", "Images"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
				))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries to show")
	return cmd
}
