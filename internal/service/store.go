// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, enforces rules, orchestrates
//	Repository (Data layer)  → reads/writes to the database
//
// The service layer here is the Store: an in-memory mirror of entries, tags
// and templates kept consistent with the database. Handlers and the CLI read
// from the mirror; every mutation goes through the database first.
//
// OBSERVE AFTER COMMIT:
// Every mutating method runs in the same order:
//
//  1. validate the input against the mirror
//  2. write it through the repository and wait for the result
//  3. on success, apply the committed record to the mirror
//  4. on failure, leave the mirror alone and return the error
//
// So the mirror never shows a write the database did not accept.
//
// LOCKING:
// mu guards the mirror maps (readers take RLock). writeMu serializes the
// mutations themselves, so validate → write → apply cannot interleave with
// another mutation. The database call happens while holding writeMu only,
// never mu, so readers are not blocked on disk I/O.
package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sakif/diary/internal/apperror"
	"github.com/sakif/diary/internal/model"
	"github.com/sakif/diary/internal/repository"
	"github.com/sakif/diary/internal/search"
	"github.com/sakif/diary/internal/tagtree"
)

// Store is the diary's consistency layer.
type Store struct {
	repo   repository.Gateway
	logger *slog.Logger

	writeMu sync.Mutex

	mu        sync.RWMutex
	entries   map[string]model.Entry
	tags      map[string]model.Tag
	tagOrder  []string
	tree      *tagtree.Tree
	templates map[string]model.Template
}

// NewStore creates an empty Store. Call Load before serving reads.
func NewStore(repo repository.Gateway, logger *slog.Logger) *Store {
	return &Store{
		repo:      repo,
		logger:    logger,
		entries:   map[string]model.Entry{},
		tags:      map[string]model.Tag{},
		tree:      tagtree.New(nil),
		templates: map[string]model.Template{},
	}
}

// Load replaces the mirror with the current database contents.
// On error the previous mirror is kept.
func (s *Store) Load(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	entries, err := s.repo.ListEntries(ctx)
	if err != nil {
		return apperror.Storage("loading entries", err)
	}
	tags, err := s.repo.ListTags(ctx)
	if err != nil {
		return apperror.Storage("loading tags", err)
	}
	templates, err := s.repo.ListTemplates(ctx)
	if err != nil {
		return apperror.Storage("loading templates", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]model.Entry, len(entries))
	for _, e := range entries {
		s.entries[e.ID] = e.Clone()
	}
	s.tags = make(map[string]model.Tag, len(tags))
	s.tagOrder = s.tagOrder[:0]
	for _, t := range tags {
		s.tags[t.ID] = t.Clone()
		s.tagOrder = append(s.tagOrder, t.ID)
	}
	s.rebuildTreeLocked()
	s.templates = make(map[string]model.Template, len(templates))
	for _, t := range templates {
		s.templates[t.ID] = t.Clone()
	}

	s.logger.Info("store loaded",
		slog.Int("entries", len(s.entries)),
		slog.Int("tags", len(s.tags)),
		slog.Int("templates", len(s.templates)),
	)
	return nil
}

// snapshotEntries returns copies of every mirrored entry in no particular order.
func (s *Store) snapshotEntries() []model.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.Clone())
	}
	return out
}

// Snapshot returns the whole mirror as one export document.
func (s *Store) Snapshot() model.Snapshot {
	entries := s.snapshotEntries()
	search.SortByDateDesc(entries)
	return model.Snapshot{
		Version:    model.SnapshotVersion,
		ExportedAt: time.Now().UTC(),
		Tags:       s.ListTags(),
		Templates:  s.ListTemplates(),
		Entries:    entries,
	}
}

func (s *Store) putTagLocked(t model.Tag) {
	if _, ok := s.tags[t.ID]; !ok {
		s.tagOrder = append(s.tagOrder, t.ID)
	}
	s.tags[t.ID] = t.Clone()
	s.rebuildTreeLocked()
}

func (s *Store) removeTagLocked(id string) {
	delete(s.tags, id)
	for i, tid := range s.tagOrder {
		if tid == id {
			s.tagOrder = append(s.tagOrder[:i], s.tagOrder[i+1:]...)
			break
		}
	}
	s.rebuildTreeLocked()
}

func (s *Store) rebuildTreeLocked() {
	ordered := make([]model.Tag, 0, len(s.tagOrder))
	for _, id := range s.tagOrder {
		ordered = append(ordered, s.tags[id])
	}
	s.tree = tagtree.New(ordered)
}
