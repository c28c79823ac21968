package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gallerysync/internal/mapping"
)

func newEventsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List the events in the mapping store",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			events, err := store.Load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := mapping.EncodeIndented(events)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			if len(events) == 0 {
				fmt.Fprintln(out, "No events recorded yet.")
				return nil
			}

			fmt.Fprintln(out, renderEventsTable(events))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the mapping as indented JSON")
	return cmd
}
