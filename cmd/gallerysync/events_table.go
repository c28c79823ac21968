package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"gallerysync/internal/mapping"
)

// renderEventsTable lays out the mapping as a terminal table, newest first as
// stored. Count columns are right-aligned.
func renderEventsTable(events []mapping.Event) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"ID", "Name", "Date", "Folder", "Photos", "Videos"})
	for _, ev := range events {
		tw.AppendRow(table.Row{
			shortID(ev.ID),
			ev.Name,
			ev.Date,
			ev.Folder,
			ev.PhotoCount,
			len(ev.VideoLinks),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	return tw.Render()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
