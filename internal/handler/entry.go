package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/diary/internal/model"
	"github.com/sakif/diary/internal/service"
)

// EntryHandler serves the diary entries.
//
// The handler never touches the database: it reads and writes through the
// Store, which keeps its in-memory mirror in step with SQLite.
type EntryHandler struct {
	store     *service.Store
	autosaver *service.AutoSaver
	logger    *slog.Logger
}

func NewEntryHandler(store *service.Store, autosaver *service.AutoSaver, logger *slog.Logger) *EntryHandler {
	return &EntryHandler{store: store, autosaver: autosaver, logger: logger}
}

// HandleList returns all entries, newest first.
//
// HTTP: GET /api/entries[?date=YYYY-MM-DD]
func (h *EntryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if date := r.URL.Query().Get("date"); date != "" {
		entries, err := h.store.EntriesByDate(date)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, entries)
		return
	}
	writeJSON(w, http.StatusOK, h.store.ListEntries())
}

// HandleGet returns a single entry.
//
// HTTP: GET /api/entries/{id}
func (h *EntryHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	entry, err := h.store.GetEntry(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// HandleCreate saves a new entry. Any id in the body is ignored.
//
// HTTP: POST /api/entries
// REQUEST BODY: {"date": "2024-01-31", "title": "", "content": "# Hi", "tags": ["..."], "isPinned": false}
func (h *EntryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in model.Entry
	if !decodeJSON(w, r, &in) {
		return
	}
	in.ID = ""

	entry, err := h.store.SaveEntry(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// HandleUpdate replaces an existing entry.
//
// HTTP: PUT /api/entries/{id}
func (h *EntryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in model.Entry
	if !decodeJSON(w, r, &in) {
		return
	}
	in.ID = chi.URLParam(r, "id")

	// An explicit save supersedes any autosave of the same entry. Cancel also
	// waits out one that is already writing, so this save lands last.
	h.autosaver.Cancel(in.ID)

	entry, err := h.store.SaveEntry(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// HandleAutosave queues a debounced save of an existing entry and returns
// immediately. Repeated calls within the delay collapse into one write of
// the last body received.
//
// HTTP: PUT /api/entries/{id}/autosave → 202 Accepted
func (h *EntryHandler) HandleAutosave(w http.ResponseWriter, r *http.Request) {
	var in model.Entry
	if !decodeJSON(w, r, &in) {
		return
	}
	in.ID = chi.URLParam(r, "id")

	if _, err := h.store.GetEntry(in.ID); err != nil {
		writeError(w, err)
		return
	}
	if err := h.store.ValidateEntry(in); err != nil {
		writeError(w, err)
		return
	}

	err := h.autosaver.Schedule(in.ID, func(ctx context.Context) error {
		_, err := h.store.SaveEntry(ctx, in)
		return err
	})
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{
			Error:     "shutting_down",
			Message:   err.Error(),
			Retryable: true,
		})
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "scheduled", "id": in.ID})
}

// HandleTogglePin flips the pinned flag.
//
// HTTP: POST /api/entries/{id}/pin
func (h *EntryHandler) HandleTogglePin(w http.ResponseWriter, r *http.Request) {
	entry, err := h.store.TogglePin(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// HandleDelete removes an entry and its images.
//
// HTTP: DELETE /api/entries/{id} → 204 No Content
func (h *EntryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.autosaver.Cancel(id)

	if err := h.store.DeleteEntry(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
