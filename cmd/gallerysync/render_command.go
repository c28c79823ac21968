package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Regenerate the static site from the stored mapping",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			events, err := store.Load()
			if err != nil {
				return err
			}
			renderer, err := ctx.newRenderer()
			if err != nil {
				return err
			}

			summary, err := renderer.RenderAll(events)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Rendered %d event cards into %s\n", summary.Cards, cfg.Paths.SiteDir)
			fmt.Fprintf(out, "Previous listing backed up: %s\n", yesNo(summary.BackupCreated))
			switch {
			case summary.ScriptCreated:
				fmt.Fprintln(out, "gallery.js created from the bundled template")
			case summary.ScriptPatched:
				fmt.Fprintln(out, "gallery.js mapping constant refreshed")
			case summary.PatchTargetMiss:
				fmt.Fprintln(out, "Warning: gallery.js had no recognizable mapping constant and was left untouched")
			}
			return nil
		},
	}
}
