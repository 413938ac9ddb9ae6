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

const tagColumns = `id, name, parent_id, color, base_color, shade_level, updated_at`

// PutTag inserts or updates a tag. An empty Color becomes model.DefaultTagColor.
// parent_id is stored as NULL for root tags.
func (db *DB) PutTag(ctx context.Context, tag *model.Tag) error {
	id := tag.ID
	if id == "" {
		id = xid.New().String()
	}
	color := tag.Color
	if color == "" {
		color = model.DefaultTagColor
	}
	parentID := model.NormalizeParentID(tag.ParentID)
	updatedAt := db.now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO tags (id, name, parent_id, color, base_color, shade_level, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   parent_id = excluded.parent_id,
		   color = excluded.color,
		   base_color = excluded.base_color,
		   shade_level = excluded.shade_level,
		   updated_at = excluded.updated_at`,
		id, tag.Name, parentID, color, tag.BaseColor, tag.ShadeLevel, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: saving tag %s: %w", id, err)
	}

	tag.ID = id
	tag.Color = color
	tag.ParentID = parentID
	tag.UpdatedAt = updatedAt
	return nil
}

// GetTag retrieves a single tag by its ID.
func (db *DB) GetTag(ctx context.Context, id string) (*model.Tag, error) {
	tag, err := scanTag(db.conn.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE id = ?`, id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("tag", id)
		}
		return nil, fmt.Errorf("sqlite: getting tag %s: %w", id, err)
	}
	return tag, nil
}

// ListTags returns every tag in creation order. rowid follows insertion,
// which is the display order the tag tree uses.
func (db *DB) ListTags(ctx context.Context) ([]model.Tag, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+tagColumns+` FROM tags ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing tags: %w", err)
	}
	defer rows.Close()

	tags := []model.Tag{}
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning tag row: %w", err)
		}
		tags = append(tags, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating tags: %w", err)
	}
	return tags, nil
}

// DeleteTag removes a tag. Children and entry references are left alone;
// cleaning entry references is the service layer's job.
func (db *DB) DeleteTag(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting tag %s: %w", id, err)
	}
	if err := checkAffected(result, apperror.NotFound("tag", id)); err != nil {
		return err
	}
	return nil
}

func scanTag(s scanner) (*model.Tag, error) {
	var (
		t        model.Tag
		parentID sql.NullString
	)
	if err := s.Scan(&t.ID, &t.Name, &parentID, &t.Color, &t.BaseColor, &t.ShadeLevel, &t.UpdatedAt); err != nil {
		return nil, err
	}
	if parentID.Valid && parentID.String != "" {
		p := parentID.String
		t.ParentID = &p
	}
	return &t, nil
}
