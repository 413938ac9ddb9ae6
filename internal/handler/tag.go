package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/diary/internal/model"
	"github.com/sakif/diary/internal/service"
)

type TagHandler struct {
	store  *service.Store
	logger *slog.Logger
}

func NewTagHandler(store *service.Store, logger *slog.Logger) *TagHandler {
	return &TagHandler{store: store, logger: logger}
}

// HandleList returns all tags as a flat list in creation order, or as a
// nested forest with ?tree=1.
//
// HTTP: GET /api/tags[?tree=1]
func (h *TagHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if tree := r.URL.Query().Get("tree"); tree == "1" || tree == "true" {
		writeJSON(w, http.StatusOK, h.store.TagTree().Nodes())
		return
	}
	writeJSON(w, http.StatusOK, h.store.ListTags())
}

// HandleCreate saves a new tag.
//
// HTTP: POST /api/tags
// REQUEST BODY: {"name": "Work", "parentId": null, "color": "#3B82F6"}
func (h *TagHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in model.Tag
	if !decodeJSON(w, r, &in) {
		return
	}
	in.ID = ""

	tag, err := h.store.SaveTag(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tag)
}

// HTTP: PUT /api/tags/{id}
func (h *TagHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in model.Tag
	if !decodeJSON(w, r, &in) {
		return
	}
	in.ID = chi.URLParam(r, "id")

	tag, err := h.store.SaveTag(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tag)
}

// HandleDelete removes a tag and strips it from entries.
//
// HTTP: DELETE /api/tags/{id} → 204, or 200 with failedEntryIds when some
// entries could not be updated.
func (h *TagHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteTag(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HTTP: GET /api/tags/{id}/descendants
func (h *TagHandler) HandleDescendants(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.DescendantTagIDs(chi.URLParam(r, "id")))
}

// HandleEntries returns the entries under a tag's whole subtree.
//
// HTTP: GET /api/tags/{id}/entries
func (h *TagHandler) HandleEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.EntriesForTag(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
