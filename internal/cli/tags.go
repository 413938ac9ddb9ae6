package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/sakif/diary/internal/tagtree"
)

func newTagsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "Show the tag hierarchy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderTags(cmd.OutOrStdout(), a.store.TagTree())
			return nil
		},
	}
}

func renderTags(w io.Writer, tree *tagtree.Tree) {
	if tree.Len() == 0 {
		fmt.Fprintln(w, "No tags.")
		return
	}
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Tag", "Path", "Color"})
	var walk func(nodes []tagtree.Node, depth int)
	walk = func(nodes []tagtree.Node, depth int) {
		for _, n := range nodes {
			t.AppendRow(table.Row{n.ID, strings.Repeat("  ", depth) + n.Name, tree.Path(n.ID), n.Color})
			walk(n.Children, depth+1)
		}
	}
	walk(tree.Nodes(), 0)
	t.Render()
}
