package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/render"
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func newTable(w io.Writer) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	if isTerminal(w) {
		tw.SetStyle(table.StyleRounded)
		tw.Style().Color.Header = text.Colors{text.Bold}
	} else {
		tw.SetStyle(table.StyleLight)
	}
	return tw
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderBoard prints one section per column, in display order.
func renderBoard(w io.Writer, v render.View) {
	tw := newTable(w)
	tw.AppendHeader(table.Row{"Column", "ID", "Title", "Author", "Published"})
	for _, col := range v.Columns {
		if len(col.Books) == 0 {
			tw.AppendRow(table.Row{col.Title, "", "(empty)", "", ""})
		}
		for _, b := range col.Books {
			tw.AppendRow(table.Row{col.Title, b.ID, b.Title, b.Author, b.Published})
		}
		tw.AppendSeparator()
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true},
		{Number: 3, WidthMax: 48},
	})
	tw.Render()
}

func renderBooks(w io.Writer, books []domain.Book) {
	tw := newTable(w)
	tw.AppendHeader(table.Row{"ID", "Title", "Author", "Published", "Pages"})
	for _, b := range books {
		var pages any = ""
		if b.Pages > 0 {
			pages = b.Pages
		}
		tw.AppendRow(table.Row{b.ID, b.Title, b.Author, b.Published, pages})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 48},
		{Number: 5, Align: text.AlignRight},
	})
	tw.Render()
}
