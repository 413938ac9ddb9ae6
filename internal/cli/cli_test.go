package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sakif/diary/internal/model"
)

// diary runs one command against dbPath and returns its stdout.
func diary(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), append([]string{"--db", dbPath}, args...), &stdout, &stderr)
	return stdout.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const legacyDoc = `{
  "entries": {
    "e1": {"id": "e1", "date": "2024-01-02", "title": "Cofee with Ana", "content": "", "tags": ["t2"], "isPinned": true},
    "e2": {"id": "e2", "date": "2024-01-03", "title": "", "content": "# Gym\nlegs", "tags": []}
  },
  "tags": {
    "t1": {"id": "t1", "name": "Social", "parentId": null, "color": "#3B82F6"},
    "t2": {"id": "t2", "name": "Friends", "parentId": "t1", "color": "#60A5FA"}
  }
}`

func TestImportLegacyThenList(t *testing.T) {
	db := filepath.Join(t.TempDir(), "diary.db")

	out, err := diary(t, db, "import", writeFile(t, "diary_app_data.json", legacyDoc))
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 tags, 0 templates and 2 entries.")

	out, err = diary(t, db, "entries")
	require.NoError(t, err)
	assert.Contains(t, out, "Cofee with Ana")
	assert.Contains(t, out, "#Friends")
	assert.Contains(t, out, "Gym")

	out, err = diary(t, db, "entries", "--date", "2024-01-03")
	require.NoError(t, err)
	assert.Contains(t, out, "Gym")
	assert.NotContains(t, out, "Cofee")

	out, err = diary(t, db, "tags")
	require.NoError(t, err)
	assert.Contains(t, out, "Social/Friends")
}

func TestSearch(t *testing.T) {
	db := filepath.Join(t.TempDir(), "diary.db")
	_, err := diary(t, db, "import", writeFile(t, "old.json", legacyDoc))
	require.NoError(t, err)

	tests := []struct {
		name    string
		args    []string
		want    string
		notWant string
	}{
		{"fuzzy query", []string{"search", "coffee"}, "Cofee with Ana", "Gym"},
		{"tag by name", []string{"search", "--tag", "friends"}, "Cofee with Ana", "Gym"},
		{"tag by path", []string{"search", "--tag", "Social/Friends"}, "e1", "e2"},
		{"pinned", []string{"search", "--pinned"}, "e1", "e2"},
		{"date range", []string{"search", "--from", "2024-01-03", "--to", "2024-01-03"}, "e2", "e1"},
		{"nothing", []string{"search", "zzzzzz"}, "No entries.", "e1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := diary(t, db, tt.args...)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
			assert.NotContains(t, out, tt.notWant)
		})
	}

	_, err = diary(t, db, "search", "--tag", "nope")
	assert.Error(t, err)
	_, err = diary(t, db, "search", "--from", "yesterday")
	assert.Error(t, err)
}

func TestExportImportRoundTrip(t *testing.T) {
	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			src := filepath.Join(t.TempDir(), "src.db")
			_, err := diary(t, src, "import", writeFile(t, "old.json", legacyDoc))
			require.NoError(t, err)

			exported := filepath.Join(t.TempDir(), "export."+format)
			_, err = diary(t, src, "export", "--format", format, "--output", exported)
			require.NoError(t, err)

			dst := filepath.Join(t.TempDir(), "dst.db")
			out, err := diary(t, dst, "import", exported)
			require.NoError(t, err)
			assert.Contains(t, out, "Imported 2 tags, 0 templates and 2 entries.")

			out, err = diary(t, dst, "tags")
			require.NoError(t, err)
			assert.Contains(t, out, "Social/Friends")
		})
	}
}

func TestExportToStdout(t *testing.T) {
	db := filepath.Join(t.TempDir(), "diary.db")
	_, err := diary(t, db, "import", writeFile(t, "old.json", legacyDoc))
	require.NoError(t, err)

	out, err := diary(t, db, "export")
	require.NoError(t, err)
	var snap model.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.Equal(t, model.SnapshotVersion, snap.Version)
	assert.Len(t, snap.Entries, 2)

	out, err = diary(t, db, "export", "-f", "yaml")
	require.NoError(t, err)
	snap = model.Snapshot{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &snap))
	assert.Len(t, snap.Tags, 2)

	_, err = diary(t, db, "export", "--format", "xml")
	assert.Error(t, err)
}

func TestReadSnapshot_RejectsUnknownVersion(t *testing.T) {
	_, err := readSnapshot([]byte(`{"version": 99, "entries": []}`), ".json")
	assert.ErrorContains(t, err, "unsupported export version 99")

	_, err = readSnapshot([]byte("version: 2\n"), ".yml")
	assert.Error(t, err)
}

func TestHelpDoesNotOpenDatabase(t *testing.T) {
	db := filepath.Join(t.TempDir(), "missing", "dir", "diary.db")

	out, err := diary(t, db, "help")

	require.NoError(t, err)
	assert.Contains(t, out, "search")
}
