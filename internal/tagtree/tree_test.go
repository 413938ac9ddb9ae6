package tagtree

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/diary/internal/apperror"
	"github.com/sakif/diary/internal/model"
)

func tag(id, name, parent string) model.Tag {
	t := model.Tag{ID: id, Name: name}
	if parent != "" {
		t.ParentID = &parent
	}
	return t
}

func ids(tags []model.Tag) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, t.ID)
	}
	return out
}

// R ─┬─ C1 ── G1
//    └─ C2
// S
func sampleTree() *Tree {
	return New([]model.Tag{
		tag("R", "Root", ""),
		tag("C1", "Child one", "R"),
		tag("S", "Solo", ""),
		tag("C2", "Child two", "R"),
		tag("G1", "Grandchild", "C1"),
	})
}

func TestDescendants(t *testing.T) {
	tree := sampleTree()

	tests := []struct {
		name string
		id   string
		want []string
	}{
		{"root with grandchild", "R", []string{"R", "C1", "C2", "G1"}},
		{"leaf", "C2", []string{"C2"}},
		{"middle", "C1", []string{"C1", "G1"}},
		{"unknown id", "nope", []string{"nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, tree.Descendants(tt.id))
			assert.Equal(t, tt.id, tree.Descendants(tt.id)[0])
		})
	}
}

func TestDescendants_CycleTerminates(t *testing.T) {
	// A ↔ B is corrupt data; the walk must still stop.
	tree := New([]model.Tag{tag("A", "a", "B"), tag("B", "b", "A")})

	assert.Len(t, tree.Descendants("A"), 1)
	assert.NotPanics(t, func() { tree.Nodes() })
	assert.Empty(t, tree.Ancestors("A"))
}

func TestDescendants_DeepChain(t *testing.T) {
	tags := []model.Tag{tag("n0", "n0", "")}
	for i := 1; i < 5000; i++ {
		tags = append(tags, tag(nodeID(i), nodeID(i), nodeID(i-1)))
	}
	tree := New(tags)

	assert.Len(t, tree.Descendants("n0"), 5000)
}

func nodeID(i int) string {
	return "n" + strconv.Itoa(i)
}

func TestRootsAndChildren_InsertionOrder(t *testing.T) {
	tree := sampleTree()

	assert.Equal(t, []string{"R", "S"}, ids(tree.Roots()))
	assert.Equal(t, []string{"C1", "C2"}, ids(tree.Children("R")))
	assert.Empty(t, tree.Children("C2"))
}

func TestRoots_OrphansArePromoted(t *testing.T) {
	tree := New([]model.Tag{
		tag("A", "a", ""),
		tag("B", "b", "deleted-parent"),
	})

	assert.Equal(t, []string{"A", "B"}, ids(tree.Roots()))
}

func TestAncestorsAndPath(t *testing.T) {
	tree := sampleTree()

	assert.Equal(t, []string{"R", "C1"}, ids(tree.Ancestors("G1")))
	assert.Empty(t, tree.Ancestors("R"))
	assert.Equal(t, "Root/Child one/Grandchild", tree.Path("G1"))
	assert.Equal(t, "", tree.Path("missing"))
}

func TestParentCandidates(t *testing.T) {
	tree := sampleTree()

	t.Run("editing excludes self and subtree", func(t *testing.T) {
		got := ids(tree.ParentCandidates("C1"))
		assert.ElementsMatch(t, []string{"R", "S", "C2"}, got)
	})
	t.Run("new tag may go anywhere", func(t *testing.T) {
		assert.Len(t, tree.ParentCandidates(""), 5)
	})
}

func TestValidateName(t *testing.T) {
	p := "P"
	q := "Q"
	tree := New([]model.Tag{
		tag("P", "Parent P", ""),
		tag("Q", "Parent Q", ""),
		tag("W", "Work", "P"),
	})

	tests := []struct {
		name      string
		tagName   string
		parentID  *string
		editingID string
		wantErr   bool
	}{
		{"different case under same parent", "work", &p, "", true},
		{"padded name under same parent", "  WORK ", &p, "", true},
		{"same name under other parent", "Work", &q, "", false},
		{"same name at root", "Work", nil, "", false},
		{"renaming itself", "Work", &p, "W", false},
		{"empty name", "   ", nil, "", true},
		{"root collision", "parent q", nil, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tree.ValidateName(tt.tagName, tt.parentID, tt.editingID)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperror.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateName_EmptyParentMeansRoot(t *testing.T) {
	empty := ""
	tree := New([]model.Tag{tag("A", "Home", "")})

	assert.ErrorIs(t, tree.ValidateName("home", &empty, ""), apperror.ErrValidation)
}

func TestValidateParent(t *testing.T) {
	tree := sampleTree()
	self := "C1"
	child := "G1"
	missing := "missing"
	other := "S"

	assert.NoError(t, tree.ValidateParent("C1", nil))
	assert.NoError(t, tree.ValidateParent("C1", &other))
	assert.ErrorIs(t, tree.ValidateParent("C1", &self), apperror.ErrValidation)
	assert.ErrorIs(t, tree.ValidateParent("C1", &child), apperror.ErrValidation)
	assert.ErrorIs(t, tree.ValidateParent("", &missing), apperror.ErrValidation)
}

func TestValidate_OrphanActsAsRoot(t *testing.T) {
	gone := "gone"
	tree := New([]model.Tag{
		tag("O", "Work", "gone"),
		tag("H", "Home", ""),
	})

	t.Run("orphan keeps its missing parent", func(t *testing.T) {
		assert.NoError(t, tree.ValidateParent("O", &gone))
		assert.NoError(t, tree.ValidateName("Office", &gone, "O"))
	})
	t.Run("other tags cannot use the missing parent", func(t *testing.T) {
		assert.ErrorIs(t, tree.ValidateParent("H", &gone), apperror.ErrValidation)
		assert.ErrorIs(t, tree.ValidateParent("", &gone), apperror.ErrValidation)
	})
	t.Run("new root collides with orphan", func(t *testing.T) {
		assert.ErrorIs(t, tree.ValidateName("work", nil, ""), apperror.ErrValidation)
	})
	t.Run("orphan collides with root", func(t *testing.T) {
		assert.ErrorIs(t, tree.ValidateName("home", &gone, "O"), apperror.ErrValidation)
	})
}

func TestNodes(t *testing.T) {
	nodes := sampleTree().Nodes()

	require.Len(t, nodes, 2)
	assert.Equal(t, "R", nodes[0].ID)
	require.Len(t, nodes[0].Children, 2)
	assert.Equal(t, "G1", nodes[0].Children[0].Children[0].ID)
	assert.Empty(t, nodes[1].Children)
}

func TestGetReturnsCopy(t *testing.T) {
	tree := sampleTree()

	got, ok := tree.Get("C1")
	require.True(t, ok)
	*got.ParentID = "S"

	again, _ := tree.Get("C1")
	assert.Equal(t, "R", *again.ParentID)
}
