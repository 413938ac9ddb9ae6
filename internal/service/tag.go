package service

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/sakif/diary/internal/apperror"
	"github.com/sakif/diary/internal/model"
	"github.com/sakif/diary/internal/search"
	"github.com/sakif/diary/internal/tagtree"
)

// ListTags returns every tag in creation order.
func (s *Store) ListTags() []model.Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.All()
}

// TagTree returns the current tag forest. The tree is an immutable
// snapshot; later tag changes produce a new one.
func (s *Store) TagTree() *tagtree.Tree {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree
}

// GetTag returns a copy of the tag with the given id.
func (s *Store) GetTag(id string) (*model.Tag, error) {
	t, ok := s.TagTree().Get(strings.TrimSpace(id))
	if !ok {
		return nil, apperror.NotFound("tag", id)
	}
	return &t, nil
}

// DescendantTagIDs returns id plus every tag beneath it.
func (s *Store) DescendantTagIDs(id string) []string {
	return s.TagTree().Descendants(strings.TrimSpace(id))
}

// EntriesForTag returns the entries tagged with id or any of its
// descendants, most recent first.
func (s *Store) EntriesForTag(id string) ([]model.Entry, error) {
	tree := s.TagTree()
	id = strings.TrimSpace(id)
	if _, ok := tree.Get(id); !ok {
		return nil, apperror.NotFound("tag", id)
	}
	return search.ByAnyTag(s.snapshotEntries(), tree.Descendants(id)), nil
}

// SaveTag creates or updates a tag.
//
// RULES:
//   - Name is trimmed and must be unique among its siblings, ignoring case.
//   - ParentID "" means root; a tag cannot sit under itself or its subtree.
//   - Color: explicit Color wins. Otherwise BaseColor + ShadeLevel derive it.
//     A new child with neither inherits its parent's base color one shade
//     lighter. The repository fills in the default gray last.
func (s *Store) SaveTag(ctx context.Context, in model.Tag) (*model.Tag, error) {
	tag := in.Clone()
	tag.ID = strings.TrimSpace(tag.ID)
	tag.Name = strings.TrimSpace(tag.Name)
	tag.ParentID = model.NormalizeParentID(tag.ParentID)
	tag.Color = strings.TrimSpace(tag.Color)
	tag.BaseColor = strings.TrimSpace(tag.BaseColor)

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tree := s.TagTree()
	isNew := tag.ID == ""
	if !isNew {
		if _, ok := tree.Get(tag.ID); !ok {
			return nil, apperror.NotFound("tag", tag.ID)
		}
	}
	if err := tree.ValidateName(tag.Name, tag.ParentID, tag.ID); err != nil {
		return nil, err
	}
	if err := tree.ValidateParent(tag.ID, tag.ParentID); err != nil {
		return nil, err
	}
	if err := deriveColor(&tag, tree, isNew); err != nil {
		return nil, err
	}

	if err := s.repo.PutTag(ctx, &tag); err != nil {
		s.logger.Error("failed to save tag",
			slog.String("id", tag.ID),
			slog.String("name", tag.Name),
			slog.String("error", err.Error()),
		)
		return nil, apperror.Storage("saving tag", err)
	}

	s.mu.Lock()
	s.putTagLocked(tag)
	s.mu.Unlock()

	s.logger.Info("tag saved", slog.String("id", tag.ID), slog.String("name", tag.Name))
	return &tag, nil
}

func deriveColor(tag *model.Tag, tree *tagtree.Tree, isNew bool) error {
	if tag.BaseColor == "" && tag.Color == "" && isNew && tag.ParentID != nil {
		if parent, ok := tree.Get(*tag.ParentID); ok {
			if base, level, ok := tagtree.ChildShade(parent); ok {
				tag.BaseColor, tag.ShadeLevel = base, level
			}
		}
	}
	if tag.BaseColor == "" {
		tag.ShadeLevel = 0
		return nil
	}
	if tag.ShadeLevel == 0 {
		tag.ShadeLevel = model.MinShadeLevel
	}
	shade, err := tagtree.ShadeColor(tag.BaseColor, tag.ShadeLevel)
	if err != nil {
		return err
	}
	if tag.Color == "" {
		tag.Color = shade
	}
	return nil
}

// DeleteTag removes a tag and strips it from every entry that references it.
//
// FAN-OUT:
// The tag delete is one write; each affected entry is then re-saved with
// its own write. The tag leaves the mirror as soon as its delete commits.
// Entry re-saves that fail are collected into an
// *apperror.PartialFanoutError; the ones that succeed are mirrored.
// Children of the deleted tag are left in place and show up as roots.
func (s *Store) DeleteTag(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "tag ID is required")
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	_, exists := s.tags[id]
	s.mu.RUnlock()
	if !exists {
		return apperror.NotFound("tag", id)
	}

	if err := s.repo.DeleteTag(ctx, id); err != nil {
		s.logger.Error("failed to delete tag",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return apperror.Storage("deleting tag", err)
	}

	s.mu.Lock()
	s.removeTagLocked(id)
	var affected []model.Entry
	for _, e := range s.entries {
		if e.HasTag(id) {
			affected = append(affected, e.Clone())
		}
	}
	s.mu.Unlock()
	sort.Slice(affected, func(i, j int) bool { return affected[i].ID < affected[j].ID })

	var failed *apperror.PartialFanoutError
	for _, e := range affected {
		e.Tags = without(e.Tags, id)
		if _, err := s.putEntryLocked(ctx, e); err != nil {
			if failed == nil {
				failed = &apperror.PartialFanoutError{TagID: id}
			}
			failed.FailedEntryIDs = append(failed.FailedEntryIDs, e.ID)
			failed.Errs = append(failed.Errs, err)
		}
	}

	if failed != nil {
		s.logger.Error("tag deleted but some entries still reference it",
			slog.String("id", id),
			slog.Any("failed_entry_ids", failed.FailedEntryIDs),
		)
		return failed
	}

	s.logger.Info("tag deleted",
		slog.String("id", id),
		slog.Int("entries_updated", len(affected)),
	)
	return nil
}
