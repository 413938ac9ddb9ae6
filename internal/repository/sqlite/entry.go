package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/xid"

	"github.com/sakif/diary/internal/apperror"
	"github.com/sakif/diary/internal/model"
)

const entryColumns = `id, date, title, content, tags, is_pinned, updated_at`

// PutEntry inserts or updates an entry.
//
// 1. ID GENERATION WITH xid:
//    An entry without an ID gets one here: 20 chars, URL-safe, time-sortable.
//    An entry that already has an ID keeps it, so saving twice never duplicates.
//
// 2. ONE TRANSACTION:
//    The entry row and its entry_tags index rows are written together; a reader
//    never sees the row with a stale tag index.
func (db *DB) PutEntry(ctx context.Context, entry *model.Entry) error {
	id := entry.ID
	if id == "" {
		id = xid.New().String()
	}
	if entry.Tags == nil {
		entry.Tags = []string{}
	}
	tags, err := json.Marshal(entry.Tags)
	if err != nil {
		return fmt.Errorf("sqlite: encoding entry tags: %w", err)
	}
	updatedAt := db.now()

	err = db.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO entries (id, date, title, content, tags, is_pinned, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
			   date = excluded.date,
			   title = excluded.title,
			   content = excluded.content,
			   tags = excluded.tags,
			   is_pinned = excluded.is_pinned,
			   updated_at = excluded.updated_at`,
			id, entry.Date, entry.Title, entry.Content, string(tags), entry.IsPinned, updatedAt,
		)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM entry_tags WHERE entry_id = ?`, id); err != nil {
			return err
		}
		for _, tagID := range entry.Tags {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO entry_tags (entry_id, tag_id) VALUES (?, ?)`,
				id, tagID,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("sqlite: saving entry %s: %w", id, err)
	}

	// Only touch the caller's struct once the write is committed.
	entry.ID = id
	entry.UpdatedAt = updatedAt
	return nil
}

// GetEntry retrieves a single entry by its ID.
func (db *DB) GetEntry(ctx context.Context, id string) (*model.Entry, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE id = ?`, id,
	)
	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("entry", id)
		}
		return nil, fmt.Errorf("sqlite: getting entry %s: %w", id, err)
	}
	return entry, nil
}

// ListEntries returns every entry, oldest date first.
func (db *DB) ListEntries(ctx context.Context) ([]model.Entry, error) {
	return db.queryEntries(ctx, "listing entries",
		`SELECT `+entryColumns+` FROM entries ORDER BY date, id`)
}

// ListEntriesByDate returns the entries written on date (YYYY-MM-DD).
func (db *DB) ListEntriesByDate(ctx context.Context, date string) ([]model.Entry, error) {
	return db.queryEntries(ctx, "listing entries by date",
		`SELECT `+entryColumns+` FROM entries WHERE date = ? ORDER BY id`, date)
}

// ListEntriesByTag returns the entries that reference tagID, via the entry_tags index.
func (db *DB) ListEntriesByTag(ctx context.Context, tagID string) ([]model.Entry, error) {
	return db.queryEntries(ctx, "listing entries by tag",
		`SELECT e.id, e.date, e.title, e.content, e.tags, e.is_pinned, e.updated_at
		 FROM entries e
		 JOIN entry_tags et ON et.entry_id = e.id
		 WHERE et.tag_id = ?
		 ORDER BY e.date, e.id`, tagID)
}

// DeleteEntryCascade removes an entry together with its images and tag index rows.
//
// All three deletes share one transaction: if any of them fails, the rollback
// leaves the entry AND its images readable. There is never a moment where the
// entry is gone but its images remain, or the reverse.
func (db *DB) DeleteEntryCascade(ctx context.Context, id string) error {
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM images WHERE entry_id = ?`, id); err != nil {
			return fmt.Errorf("deleting images: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM entry_tags WHERE entry_id = ?`, id); err != nil {
			return fmt.Errorf("deleting tag index: %w", err)
		}
		result, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("deleting entry: %w", err)
		}
		return checkAffected(result, apperror.NotFound("entry", id))
	})
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return err
		}
		return fmt.Errorf("sqlite: deleting entry %s: %w", id, err)
	}
	return nil
}

func (db *DB) queryEntries(ctx context.Context, op, query string, args ...any) ([]model.Entry, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: %s: %w", op, err)
	}
	defer rows.Close()

	entries := []model.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning entry row: %w", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating entries: %w", err)
	}
	return entries, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*model.Entry, error) {
	var (
		e    model.Entry
		tags string
	)
	if err := s.Scan(&e.ID, &e.Date, &e.Title, &e.Content, &tags, &e.IsPinned, &e.UpdatedAt); err != nil {
		return nil, err
	}
	if err := decodeIDs(tags, &e.Tags); err != nil {
		return nil, fmt.Errorf("decoding tags of entry %s: %w", e.ID, err)
	}
	return &e, nil
}

// decodeIDs reads a JSON id array column. An empty column decodes to an empty slice.
func decodeIDs(raw string, dst *[]string) error {
	*dst = []string{}
	if raw == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), dst)
}
