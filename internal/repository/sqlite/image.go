package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/xid"

	"github.com/sakif/diary/internal/apperror"
	"github.com/sakif/diary/internal/model"
)

// PutImage inserts or replaces an image. The owning entry must already exist:
// images are written after their entry's id has been resolved.
func (db *DB) PutImage(ctx context.Context, img *model.Image) error {
	id := img.ID
	if id == "" {
		id = xid.New().String()
	}
	createdAt := img.CreatedAt
	if createdAt.IsZero() {
		createdAt = db.now()
	}

	err := db.withTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM entries WHERE id = ?`, img.EntryID,
		).Scan(&exists)
		if err != nil {
			return err
		}
		if exists == 0 {
			return apperror.NotFound("entry", img.EntryID)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO images (id, entry_id, blob, mime_type, created_at)
			 VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
			   entry_id = excluded.entry_id,
			   blob = excluded.blob,
			   mime_type = excluded.mime_type`,
			id, img.EntryID, img.Blob, img.MimeType, createdAt,
		)
		return err
	})
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return err
		}
		return fmt.Errorf("sqlite: saving image %s: %w", id, err)
	}

	img.ID = id
	img.CreatedAt = createdAt
	img.Size = len(img.Blob)
	return nil
}

// GetImage returns an image including its blob.
func (db *DB) GetImage(ctx context.Context, id string) (*model.Image, error) {
	var img model.Image
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, entry_id, blob, mime_type, created_at FROM images WHERE id = ?`, id,
	).Scan(&img.ID, &img.EntryID, &img.Blob, &img.MimeType, &img.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("image", id)
		}
		return nil, fmt.Errorf("sqlite: getting image %s: %w", id, err)
	}
	img.Size = len(img.Blob)
	return &img, nil
}

// ListImagesForEntry returns image metadata (no blobs) for one entry, oldest first.
func (db *DB) ListImagesForEntry(ctx context.Context, entryID string) ([]model.Image, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, entry_id, mime_type, length(blob), created_at
		 FROM images WHERE entry_id = ?
		 ORDER BY created_at, rowid`, entryID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing images for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	images := []model.Image{}
	for rows.Next() {
		var img model.Image
		if err := rows.Scan(&img.ID, &img.EntryID, &img.MimeType, &img.Size, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning image row: %w", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating images: %w", err)
	}
	return images, nil
}

func (db *DB) DeleteImage(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM images WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting image %s: %w", id, err)
	}
	return checkAffected(result, apperror.NotFound("image", id))
}
