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

const templateColumns = `id, title, content, tags, updated_at`

// PutTemplate inserts or updates a template.
func (db *DB) PutTemplate(ctx context.Context, tmpl *model.Template) error {
	id := tmpl.ID
	if id == "" {
		id = xid.New().String()
	}
	if tmpl.Tags == nil {
		tmpl.Tags = []string{}
	}
	tags, err := json.Marshal(tmpl.Tags)
	if err != nil {
		return fmt.Errorf("sqlite: encoding template tags: %w", err)
	}
	updatedAt := db.now()

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO templates (id, title, content, tags, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   title = excluded.title,
		   content = excluded.content,
		   tags = excluded.tags,
		   updated_at = excluded.updated_at`,
		id, tmpl.Title, tmpl.Content, string(tags), updatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: saving template %s: %w", id, err)
	}

	tmpl.ID = id
	tmpl.UpdatedAt = updatedAt
	return nil
}

func (db *DB) GetTemplate(ctx context.Context, id string) (*model.Template, error) {
	tmpl, err := scanTemplate(db.conn.QueryRowContext(ctx,
		`SELECT `+templateColumns+` FROM templates WHERE id = ?`, id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("template", id)
		}
		return nil, fmt.Errorf("sqlite: getting template %s: %w", id, err)
	}
	return tmpl, nil
}

func (db *DB) ListTemplates(ctx context.Context) ([]model.Template, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+templateColumns+` FROM templates ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing templates: %w", err)
	}
	defer rows.Close()

	templates := []model.Template{}
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning template row: %w", err)
		}
		templates = append(templates, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating templates: %w", err)
	}
	return templates, nil
}

func (db *DB) DeleteTemplate(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting template %s: %w", id, err)
	}
	return checkAffected(result, apperror.NotFound("template", id))
}

func scanTemplate(s scanner) (*model.Template, error) {
	var (
		t    model.Template
		tags string
	)
	if err := s.Scan(&t.ID, &t.Title, &t.Content, &tags, &t.UpdatedAt); err != nil {
		return nil, err
	}
	if err := decodeIDs(tags, &t.Tags); err != nil {
		return nil, fmt.Errorf("decoding tags of template %s: %w", t.ID, err)
	}
	return &t, nil
}
