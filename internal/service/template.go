package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/sakif/diary/internal/apperror"
	"github.com/sakif/diary/internal/model"
)

const MaxTemplateTitleLength = 100

// ListTemplates returns every template ordered by title.
func (s *Store) ListTemplates() []model.Template {
	s.mu.RLock()
	out := make([]model.Template, 0, len(s.templates))
	for _, t := range s.templates {
		out = append(out, t.Clone())
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].Title), strings.ToLower(out[j].Title)
		if a != b {
			return a < b
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *Store) GetTemplate(id string) (*model.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.templates[strings.TrimSpace(id)]
	if !ok {
		return nil, apperror.NotFound("template", id)
	}
	c := t.Clone()
	return &c, nil
}

// SaveTemplate creates or updates a template. Title is required.
func (s *Store) SaveTemplate(ctx context.Context, in model.Template) (*model.Template, error) {
	tmpl := in.Clone()
	tmpl.ID = strings.TrimSpace(tmpl.ID)
	tmpl.Title = strings.TrimSpace(tmpl.Title)
	if tmpl.Title == "" {
		return nil, apperror.ValidationFailed("title", "template title is required")
	}
	if len(tmpl.Title) > MaxTemplateTitleLength {
		return nil, apperror.ValidationFailed("title",
			fmt.Sprintf("template title must be %d characters or less", MaxTemplateTitleLength))
	}
	if len(tmpl.Content) > MaxContentLength {
		return nil, apperror.ValidationFailed("content",
			fmt.Sprintf("content must be %d bytes or less", MaxContentLength))
	}
	tmpl.Tags = dedupe(tmpl.Tags)

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if tmpl.ID != "" {
		if _, err := s.GetTemplate(tmpl.ID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.PutTemplate(ctx, &tmpl); err != nil {
		s.logger.Error("failed to save template",
			slog.String("id", tmpl.ID),
			slog.String("error", err.Error()),
		)
		return nil, apperror.Storage("saving template", err)
	}

	s.mu.Lock()
	s.templates[tmpl.ID] = tmpl.Clone()
	s.mu.Unlock()

	s.logger.Info("template saved", slog.String("id", tmpl.ID), slog.String("title", tmpl.Title))
	return &tmpl, nil
}

func (s *Store) DeleteTemplate(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if _, err := s.GetTemplate(id); err != nil {
		return err
	}
	if err := s.repo.DeleteTemplate(ctx, id); err != nil {
		s.logger.Error("failed to delete template",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return apperror.Storage("deleting template", err)
	}

	s.mu.Lock()
	delete(s.templates, id)
	s.mu.Unlock()

	s.logger.Info("template deleted", slog.String("id", id))
	return nil
}

// ApplyTemplate loads a template into an entry draft: the template content
// replaces the draft content and the template tags are appended to the
// draft tags. Tag ids that no longer exist are skipped. Nothing is saved.
func (s *Store) ApplyTemplate(templateID string, draft model.Entry) (model.Entry, error) {
	tmpl, err := s.GetTemplate(templateID)
	if err != nil {
		return model.Entry{}, err
	}
	tree := s.TagTree()

	out := draft.Clone()
	out.Content = tmpl.Content
	merged := append([]string(nil), draft.Tags...)
	for _, id := range tmpl.Tags {
		if _, ok := tree.Get(id); ok {
			merged = append(merged, id)
		}
	}
	out.Tags = dedupe(merged)
	return out, nil
}
