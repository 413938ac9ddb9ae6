// Package tagtree builds an in-memory forest over the tag collection.
//
// Tags point at their parent (parentId). The tree inverts that into a
// parent → children adjacency map once, so descendant and children queries
// never rescan the whole collection.
//
// ORPHANS:
// Deleting a tag does not touch its children, so a child may point at a
// parent that no longer exists. The tree treats such tags as roots.
package tagtree

import (
	"strings"

	"github.com/sakif/diary/internal/apperror"
	"github.com/sakif/diary/internal/model"
)

// Tree is an immutable snapshot of the tag forest. Build a new one after
// the tag collection changes.
type Tree struct {
	order    []string
	byID     map[string]model.Tag
	children map[string][]string // "" holds the roots
}

// New builds a tree from tags. The order of the slice is the display order
// for Roots and Children.
func New(tags []model.Tag) *Tree {
	t := &Tree{
		order:    make([]string, 0, len(tags)),
		byID:     make(map[string]model.Tag, len(tags)),
		children: make(map[string][]string),
	}
	for _, tag := range tags {
		if _, dup := t.byID[tag.ID]; dup {
			continue
		}
		t.order = append(t.order, tag.ID)
		t.byID[tag.ID] = tag.Clone()
	}
	for _, id := range t.order {
		parent := t.parentOf(id)
		t.children[parent] = append(t.children[parent], id)
	}
	return t
}

// parentOf returns the effective parent id: "" for roots and orphans.
func (t *Tree) parentOf(id string) string {
	tag := t.byID[id]
	p := tag.Parent()
	if p == "" || p == id {
		return ""
	}
	if _, ok := t.byID[p]; !ok {
		return ""
	}
	return p
}

// Len returns the number of tags in the tree.
func (t *Tree) Len() int { return len(t.order) }

// Get returns the tag with the given id.
func (t *Tree) Get(id string) (model.Tag, bool) {
	tag, ok := t.byID[id]
	if !ok {
		return model.Tag{}, false
	}
	return tag.Clone(), true
}

// All returns every tag in display order.
func (t *Tree) All() []model.Tag {
	return t.collect(t.order)
}

// Roots returns the root-level tags, orphans included.
func (t *Tree) Roots() []model.Tag {
	return t.collect(t.children[""])
}

// Children returns the direct children of id.
func (t *Tree) Children(id string) []model.Tag {
	if id == "" {
		return []model.Tag{}
	}
	return t.collect(t.children[id])
}

// Descendants returns id followed by every transitive descendant, breadth first.
// An unknown id yields just [id].
//
// The walk uses an explicit worklist and a visited set, so deep trees cannot
// exhaust the stack and a corrupted cycle still terminates.
func (t *Tree) Descendants(id string) []string {
	out := []string{id}
	visited := map[string]bool{id: true}
	queue := []string{id}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, child := range t.children[current] {
			if visited[child] {
				continue
			}
			visited[child] = true
			out = append(out, child)
			queue = append(queue, child)
		}
	}
	return out
}

// DescendantSet is Descendants as a set.
func (t *Tree) DescendantSet(id string) map[string]struct{} {
	ids := t.Descendants(id)
	set := make(map[string]struct{}, len(ids))
	for _, d := range ids {
		set[d] = struct{}{}
	}
	return set
}

// Ancestors returns the chain of tags from the root down to id's parent.
// A root tag has no ancestors.
func (t *Tree) Ancestors(id string) []model.Tag {
	var chain []string
	seen := map[string]bool{id: true}
	for p := t.parentOf(id); p != "" && !seen[p]; p = t.parentOf(p) {
		seen[p] = true
		chain = append(chain, p)
	}
	// reverse: root first
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return t.collect(chain)
}

// Path returns the slash-joined names from the root to id, e.g. "Work/Meetings".
func (t *Tree) Path(id string) string {
	tag, ok := t.byID[id]
	if !ok {
		return ""
	}
	var names []string
	for _, a := range t.Ancestors(id) {
		names = append(names, a.Name)
	}
	return strings.Join(append(names, tag.Name), "/")
}

// ParentCandidates lists the tags that editingID may be moved under:
// everything except the tag itself and its own subtree.
// An empty editingID (a new tag) may go under any tag.
func (t *Tree) ParentCandidates(editingID string) []model.Tag {
	excluded := map[string]struct{}{}
	if editingID != "" {
		excluded = t.DescendantSet(editingID)
	}
	out := make([]model.Tag, 0, len(t.order))
	for _, id := range t.order {
		if _, skip := excluded[id]; skip {
			continue
		}
		out = append(out, t.byID[id].Clone())
	}
	return out
}

// ValidateName rejects an empty name, or a name that a sibling under the
// same parent already uses (trimmed, case-insensitive). editingID is the tag
// being renamed and does not collide with itself. Orphans count as roots,
// both as the tag being checked and as siblings.
func (t *Tree) ValidateName(name string, parentID *string, editingID string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperror.ValidationFailed("name", "tag name cannot be empty")
	}
	parent := ""
	if p := model.NormalizeParentID(parentID); p != nil {
		if _, ok := t.byID[*p]; ok {
			parent = *p
		}
	}
	for _, id := range t.order {
		if id == editingID {
			continue
		}
		if t.parentOf(id) != parent {
			continue
		}
		tag := t.byID[id]
		if strings.EqualFold(strings.TrimSpace(tag.Name), name) {
			return apperror.ValidationFailed("name",
				`a tag named "`+name+`" already exists at this level`)
		}
	}
	return nil
}

// ValidateParent rejects self-parenting, unknown parents, and moving a tag
// under its own descendant. A nil or empty parentID is always valid, and so
// is an orphan keeping its missing parent.
func (t *Tree) ValidateParent(id string, parentID *string) error {
	p := model.NormalizeParentID(parentID)
	if p == nil {
		return nil
	}
	if id != "" && *p == id {
		return apperror.ValidationFailed("parentId", "a tag cannot be its own parent")
	}
	if _, ok := t.byID[*p]; !ok {
		// An orphan may be saved again with the parent it already points at.
		if current, exists := t.byID[id]; exists && current.Parent() == *p {
			return nil
		}
		return apperror.ValidationFailed("parentId", "parent tag "+*p+" does not exist")
	}
	if id != "" {
		if _, inSubtree := t.DescendantSet(id)[*p]; inSubtree {
			return apperror.ValidationFailed("parentId", "a tag cannot be moved under its own descendant")
		}
	}
	return nil
}

func (t *Tree) collect(ids []string) []model.Tag {
	out := make([]model.Tag, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.byID[id].Clone())
	}
	return out
}
