package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/diary/internal/apperror"
	"github.com/sakif/diary/internal/model"
)

// Import writes every record of snap with its own id, tags first so
// entries never point at tags that have not landed yet. Records are
// written one at a time and mirrored as they commit; the first failure
// stops the import and is returned with the number of records written.
func (s *Store) Import(ctx context.Context, snap model.Snapshot) (int, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	written := 0
	for _, t := range snap.Tags {
		t := t.Clone()
		t.ParentID = model.NormalizeParentID(t.ParentID)
		if err := s.repo.PutTag(ctx, &t); err != nil {
			return written, apperror.Storage(fmt.Sprintf("importing tag %s", t.ID), err)
		}
		s.mu.Lock()
		s.putTagLocked(t)
		s.mu.Unlock()
		written++
	}
	for _, tmpl := range snap.Templates {
		tmpl := tmpl.Clone()
		if err := s.repo.PutTemplate(ctx, &tmpl); err != nil {
			return written, apperror.Storage(fmt.Sprintf("importing template %s", tmpl.ID), err)
		}
		s.mu.Lock()
		s.templates[tmpl.ID] = tmpl.Clone()
		s.mu.Unlock()
		written++
	}
	for _, e := range snap.Entries {
		e, err := normalizeEntry(e)
		if err != nil {
			return written, err
		}
		if _, err := s.putEntryLocked(ctx, e); err != nil {
			return written, err
		}
		written++
	}

	s.logger.Info("import finished",
		slog.Int("tags", len(snap.Tags)),
		slog.Int("templates", len(snap.Templates)),
		slog.Int("entries", len(snap.Entries)),
	)
	return written, nil
}
