package tagtree

import "github.com/sakif/diary/internal/model"

// Node is a tag with its nested children, the shape the API returns for ?tree=1.
type Node struct {
	model.Tag
	Children []Node `json:"children"`
}

// Nodes returns the forest as nested nodes, roots first in display order.
func (t *Tree) Nodes() []Node {
	visited := map[string]bool{}
	return t.nodes("", visited)
}

func (t *Tree) nodes(parent string, visited map[string]bool) []Node {
	ids := t.children[parent]
	out := make([]Node, 0, len(ids))
	for _, id := range ids {
		if visited[id] {
			continue
		}
		visited[id] = true
		out = append(out, Node{
			Tag:      t.byID[id].Clone(),
			Children: t.nodes(id, visited),
		})
	}
	return out
}
