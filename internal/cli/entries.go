package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/sakif/diary/internal/links"
	"github.com/sakif/diary/internal/model"
	"github.com/sakif/diary/internal/tagtree"
)

// listTitleLength bounds the TITLE column.
const listTitleLength = 40

func newEntriesCmd(a *app) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "entries",
		Short: "List entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := a.store.ListEntries()
			if date != "" {
				var err error
				if entries, err = a.store.EntriesByDate(date); err != nil {
					return err
				}
			}
			renderEntries(cmd.OutOrStdout(), entries, a.store.TagTree())
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "only entries written on this day (YYYY-MM-DD)")
	return cmd
}

func renderEntries(w io.Writer, entries []model.Entry, tree *tagtree.Tree) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries.")
		return
	}
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Date", "Title", "Tags", "Pinned"})
	for _, e := range entries {
		pinned := ""
		if e.IsPinned {
			pinned = "*"
		}
		t.AppendRow(table.Row{e.ID, e.Date, links.Title(e, listTitleLength), tagNames(e.Tags, tree), pinned})
	}
	t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d entries", len(entries))})
	t.Render()
}

// tagNames shows each tag as #name, or its raw id when the tag is gone.
func tagNames(ids []string, tree *tagtree.Tree) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if tag, ok := tree.Get(id); ok {
			names = append(names, "#"+tag.Name)
			continue
		}
		names = append(names, id)
	}
	return strings.Join(names, " ")
}
