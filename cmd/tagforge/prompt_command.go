package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tagforge/internal/config"
	"tagforge/internal/pngmeta"
)

func newPromptCommand(ctx *commandContext) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "prompt <image.png>",
		Short: "Print the generation prompt embedded in a PNG",
		Long: `Extract the "parameters" text chunk a generation tool embedded in the
PNG. By default the positive prompt is isolated and configured blacklist
phrases are stripped; --raw prints the chunk untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			parameters, err := pngmeta.Parameters(path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if raw {
				fmt.Fprintln(out, parameters)
				return nil
			}
			fmt.Fprintln(out, pngmeta.PositivePrompt(parameters, cfg.Prompt.Blacklist))
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print the parameters chunk without cleanup")
	return cmd
}
