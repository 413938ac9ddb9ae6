package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/diary/internal/apperror"
	"github.com/sakif/diary/internal/model"
	"github.com/sakif/diary/internal/search"
)

// MaxContentLength bounds a single entry's markdown (~1MB).
const MaxContentLength = 1 << 20

// ListEntries returns every entry, most recent date first.
func (s *Store) ListEntries() []model.Entry {
	entries := s.snapshotEntries()
	search.SortByDateDesc(entries)
	return entries
}

// GetEntry returns a copy of the entry with the given id.
func (s *Store) GetEntry(id string) (*model.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[strings.TrimSpace(id)]
	if !ok {
		return nil, apperror.NotFound("entry", id)
	}
	c := e.Clone()
	return &c, nil
}

// EntriesByDate returns the entries written on date (YYYY-MM-DD).
func (s *Store) EntriesByDate(date string) ([]model.Entry, error) {
	date = strings.TrimSpace(date)
	if _, err := model.ParseDate(date); err != nil {
		return nil, apperror.ValidationFailed("date", "date must be in YYYY-MM-DD format")
	}
	return search.ByDate(s.snapshotEntries(), date), nil
}

// SaveEntry creates the entry when ID is empty, or replaces the existing
// entry with that ID. The returned entry carries the stored ID and UpdatedAt.
//
// Tags are deduplicated keeping the first occurrence. They are weak
// references and are not checked against the tag collection.
func (s *Store) SaveEntry(ctx context.Context, in model.Entry) (*model.Entry, error) {
	entry, err := normalizeEntry(in)
	if err != nil {
		return nil, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if entry.ID != "" {
		s.mu.RLock()
		_, exists := s.entries[entry.ID]
		s.mu.RUnlock()
		if !exists {
			return nil, apperror.NotFound("entry", entry.ID)
		}
	}

	return s.putEntryLocked(ctx, entry)
}

// putEntryLocked writes entry and mirrors it on success. The caller holds writeMu.
func (s *Store) putEntryLocked(ctx context.Context, entry model.Entry) (*model.Entry, error) {
	if err := s.repo.PutEntry(ctx, &entry); err != nil {
		s.logger.Error("failed to save entry",
			slog.String("id", entry.ID),
			slog.String("date", entry.Date),
			slog.String("error", err.Error()),
		)
		return nil, apperror.Storage("saving entry", err)
	}

	s.mu.Lock()
	s.entries[entry.ID] = entry.Clone()
	s.mu.Unlock()

	s.logger.Debug("entry saved", slog.String("id", entry.ID), slog.String("date", entry.Date))
	return &entry, nil
}

// DeleteEntry removes an entry together with all of its images.
func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "entry ID is required")
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	_, exists := s.entries[id]
	s.mu.RUnlock()
	if !exists {
		return apperror.NotFound("entry", id)
	}

	if err := s.repo.DeleteEntryCascade(ctx, id); err != nil {
		s.logger.Error("failed to delete entry",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return apperror.Storage("deleting entry", err)
	}

	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()

	s.logger.Info("entry deleted", slog.String("id", id))
	return nil
}

// TogglePin flips IsPinned. It is a full re-save of the entry, so
// UpdatedAt moves as well.
func (s *Store) TogglePin(ctx context.Context, id string) (*model.Entry, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	current, ok := s.entries[strings.TrimSpace(id)]
	s.mu.RUnlock()
	if !ok {
		return nil, apperror.NotFound("entry", id)
	}

	updated := current.Clone()
	updated.IsPinned = !updated.IsPinned
	return s.putEntryLocked(ctx, updated)
}

// SearchEntries runs the search pipeline over the mirror.
func (s *Store) SearchEntries(f search.Filter) ([]model.Entry, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return search.Search(s.snapshotEntries(), f), nil
}

func normalizeEntry(e model.Entry) (model.Entry, error) {
	e = e.Clone()
	e.ID = strings.TrimSpace(e.ID)
	e.Date = strings.TrimSpace(e.Date)
	if e.Date == "" {
		return e, apperror.ValidationFailed("date", "date is required")
	}
	if _, err := model.ParseDate(e.Date); err != nil {
		return e, apperror.ValidationFailed("date", "date must be in YYYY-MM-DD format")
	}
	e.Title = strings.TrimSpace(e.Title)
	if len(e.Content) > MaxContentLength {
		return e, apperror.ValidationFailed("content",
			fmt.Sprintf("content must be %d bytes or less", MaxContentLength))
	}
	e.Tags = dedupe(e.Tags)
	return e, nil
}

// dedupe drops blank and repeated ids, keeping first occurrences in order.
func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func without(ids []string, drop string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != drop {
			out = append(out, id)
		}
	}
	return out
}

// ValidateEntry reports whether SaveEntry would accept in, without writing.
func (s *Store) ValidateEntry(in model.Entry) error {
	_, err := normalizeEntry(in)
	return err
}
