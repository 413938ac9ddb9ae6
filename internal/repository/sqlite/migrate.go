package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// migration is one versioned schema step. Steps run in order, each inside
// its own transaction, and are recorded in schema_migrations once applied.
type migration struct {
	version     int
	description string
	up          func(ctx context.Context, tx *sql.Tx) error
}

var migrations = []migration{
	{
		version:     1,
		description: "entries, tags and templates",
		up: func(ctx context.Context, tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS entries (
					id         TEXT PRIMARY KEY,
					date       TEXT NOT NULL,
					title      TEXT NOT NULL DEFAULT '',
					content    TEXT NOT NULL DEFAULT '',
					tags       TEXT NOT NULL DEFAULT '[]',
					is_pinned  INTEGER NOT NULL DEFAULT 0,
					updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
				);
				CREATE INDEX IF NOT EXISTS idx_entries_date ON entries(date);
				CREATE INDEX IF NOT EXISTS idx_entries_title ON entries(title);
				CREATE INDEX IF NOT EXISTS idx_entries_is_pinned ON entries(is_pinned);

				CREATE TABLE IF NOT EXISTS tags (
					id         TEXT PRIMARY KEY,
					name       TEXT NOT NULL,
					parent_id  TEXT,
					color      TEXT NOT NULL DEFAULT '#6B7280',
					updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
				);
				CREATE INDEX IF NOT EXISTS idx_tags_name ON tags(name);
				CREATE INDEX IF NOT EXISTS idx_tags_parent_id ON tags(parent_id);

				CREATE TABLE IF NOT EXISTS templates (
					id         TEXT PRIMARY KEY,
					title      TEXT NOT NULL,
					content    TEXT NOT NULL DEFAULT '',
					tags       TEXT NOT NULL DEFAULT '[]',
					updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
				);
				CREATE INDEX IF NOT EXISTS idx_templates_title ON templates(title);
			`)
			return err
		},
	},
	{
		version:     2,
		description: "images and tag shades",
		up: func(ctx context.Context, tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS images (
					id         TEXT PRIMARY KEY,
					entry_id   TEXT NOT NULL REFERENCES entries(id),
					blob       BLOB NOT NULL,
					mime_type  TEXT NOT NULL,
					created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
				);
				CREATE INDEX IF NOT EXISTS idx_images_entry_id ON images(entry_id);
			`)
			if err != nil {
				return err
			}
			if err := addColumnIfNotExists(ctx, tx, "tags", "base_color", "TEXT NOT NULL DEFAULT ''"); err != nil {
				return err
			}
			return addColumnIfNotExists(ctx, tx, "tags", "shade_level", "INTEGER NOT NULL DEFAULT 0")
		},
	},
	{
		version:     3,
		description: "multi-valued entry tag index",
		up: func(ctx context.Context, tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS entry_tags (
					entry_id TEXT NOT NULL REFERENCES entries(id),
					tag_id   TEXT NOT NULL,
					PRIMARY KEY (entry_id, tag_id)
				);
				CREATE INDEX IF NOT EXISTS idx_entry_tags_tag_id ON entry_tags(tag_id);
			`)
			if err != nil {
				return err
			}
			// Backfill from the JSON column for databases created before this step.
			_, err = tx.ExecContext(ctx, `
				INSERT OR IGNORE INTO entry_tags (entry_id, tag_id)
				SELECT entries.id, json_each.value
				FROM entries, json_each(entries.tags)
			`)
			return err
		},
	},
}

// migrate applies every migration newer than the recorded schema version.
// Running it against an up-to-date database is a no-op.
func (db *DB) migrate(ctx context.Context) error {
	_, err := db.conn.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version     INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at  DATETIME NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations: %w", err)
	}

	current, err := db.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		err := db.withTx(ctx, func(tx *sql.Tx) error {
			if err := m.up(ctx, tx); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx,
				`INSERT INTO schema_migrations (version, description, applied_at) VALUES (?, ?, ?)`,
				m.version, m.description, db.now(),
			)
			return err
		})
		if err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.version, m.description, err)
		}
	}

	return nil
}

// SchemaVersion returns the highest applied migration, or 0 for a fresh database.
func (db *DB) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`,
	).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return version, nil
}

// addColumnIfNotExists adds a column to a table only if it doesn't already exist.
// ALTER TABLE errors on an existing column, so pragma_table_info is checked first.
func addColumnIfNotExists(ctx context.Context, q querier, table, column, definition string) error {
	var count int
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`,
		table, column,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("checking column %s.%s: %w", table, column, err)
	}
	if count > 0 {
		return nil
	}
	_, err = q.ExecContext(ctx, fmt.Sprintf(
		`ALTER TABLE %s ADD COLUMN %s %s`, table, column, definition,
	))
	return err
}
