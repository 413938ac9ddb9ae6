package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/sakif/diary/internal/apperror"
	"github.com/sakif/diary/internal/search"
	"github.com/sakif/diary/internal/tagtree"
)

func newSearchCmd(a *app) *cobra.Command {
	var (
		tags   []string
		from   string
		to     string
		pinned bool
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Fuzzy-search entries, optionally filtered by tag, date and pin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree := a.store.TagTree()
			f := search.Filter{OnlyPinned: pinned}
			if len(args) == 1 {
				f.Query = args[0]
			}
			for _, ref := range tags {
				id, err := resolveTag(tree, ref)
				if err != nil {
					return err
				}
				f.TagIDs = append(f.TagIDs, id)
			}
			if from != "" {
				f.StartDate = &from
			}
			if to != "" {
				f.EndDate = &to
			}

			entries, err := a.store.SearchEntries(f)
			if err != nil {
				return err
			}
			renderEntries(cmd.OutOrStdout(), entries, tree)
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "tag id or name; repeat to require several")
	cmd.Flags().StringVar(&from, "from", "", "earliest date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&to, "to", "", "latest date (YYYY-MM-DD, inclusive)")
	cmd.Flags().BoolVar(&pinned, "pinned", false, "only pinned entries")
	return cmd
}

// resolveTag accepts a tag id, a name or a "Parent/Child" path. Names are
// matched case-insensitively and must be unambiguous.
func resolveTag(tree *tagtree.Tree, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if _, ok := tree.Get(ref); ok {
		return ref, nil
	}
	var matches []string
	for _, tag := range tree.All() {
		if strings.EqualFold(tag.Name, ref) || strings.EqualFold(tree.Path(tag.ID), ref) {
			matches = append(matches, tag.ID)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", apperror.NotFound("tag", ref)
	default:
		return "", apperror.ValidationFailed("tag", "tag name "+ref+" is ambiguous; use its path or id")
	}
}
