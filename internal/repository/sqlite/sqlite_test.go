package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/diary/internal/model"
)

// newTestDB returns a fresh in-memory database that is closed when the test ends.
// t.Helper() makes failures point at the caller's line.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test db")
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNew_AppliesAllMigrations(t *testing.T) {
	db := newTestDB(t)

	version, err := db.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(migrations), version)
}

func TestNew_ReopenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diary.db")

	first, err := New(path)
	require.NoError(t, err)
	entry := &model.Entry{Date: "2024-01-05", Content: "kept", Tags: []string{"t1"}}
	require.NoError(t, first.PutEntry(context.Background(), entry))
	require.NoError(t, first.Close())

	second, err := New(path)
	require.NoError(t, err)
	defer second.Close()

	version, err := second.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(migrations), version)

	got, err := second.GetEntry(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "kept", got.Content)
}

func TestMigrate_BackfillsEntryTagIndex(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "old.db")

	// Build a database that stopped at schema version 2.
	conn, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	old := &DB{conn: conn, now: time.Now}
	_, err = conn.Exec(`CREATE TABLE schema_migrations (
		version INTEGER PRIMARY KEY, description TEXT NOT NULL, applied_at DATETIME NOT NULL)`)
	require.NoError(t, err)
	for _, m := range migrations[:2] {
		require.NoError(t, old.withTx(ctx, func(tx *sql.Tx) error {
			if err := m.up(ctx, tx); err != nil {
				return err
			}
			_, err := tx.Exec(`INSERT INTO schema_migrations VALUES (?, ?, ?)`, m.version, m.description, time.Now())
			return err
		}))
	}
	_, err = conn.Exec(`INSERT INTO entries (id, date, content, tags, is_pinned, updated_at)
		VALUES ('legacy', '2023-12-31', 'old entry', '["work","home"]', 0, ?)`, time.Now())
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	db, err := New(path)
	require.NoError(t, err)
	defer db.Close()

	byTag, err := db.ListEntriesByTag(ctx, "home")
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	assert.Equal(t, "legacy", byTag[0].ID)
	assert.Equal(t, []string{"work", "home"}, byTag[0].Tags)
}

func TestAddColumnIfNotExists_Twice(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, addColumnIfNotExists(ctx, db.conn, "templates", "icon", "TEXT"))
	require.NoError(t, addColumnIfNotExists(ctx, db.conn, "templates", "icon", "TEXT"))
}
