package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/diary/internal/model"
	"github.com/sakif/diary/internal/service"
)

type TemplateHandler struct {
	store  *service.Store
	logger *slog.Logger
}

func NewTemplateHandler(store *service.Store, logger *slog.Logger) *TemplateHandler {
	return &TemplateHandler{store: store, logger: logger}
}

// HTTP: GET /api/templates
func (h *TemplateHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.ListTemplates())
}

// HTTP: GET /api/templates/{id}
func (h *TemplateHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	tmpl, err := h.store.GetTemplate(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tmpl)
}

// HTTP: POST /api/templates
func (h *TemplateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in model.Template
	if !decodeJSON(w, r, &in) {
		return
	}
	in.ID = ""

	tmpl, err := h.store.SaveTemplate(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tmpl)
}

// HTTP: PUT /api/templates/{id}
func (h *TemplateHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in model.Template
	if !decodeJSON(w, r, &in) {
		return
	}
	in.ID = chi.URLParam(r, "id")

	tmpl, err := h.store.SaveTemplate(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tmpl)
}

// HTTP: DELETE /api/templates/{id}
func (h *TemplateHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteTemplate(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleApply merges a template into the entry draft in the body and
// returns the result. Nothing is saved; the client saves the draft itself.
//
// HTTP: POST /api/templates/{id}/apply
// REQUEST BODY: an entry draft, may be {}
func (h *TemplateHandler) HandleApply(w http.ResponseWriter, r *http.Request) {
	var draft model.Entry
	if !decodeJSON(w, r, &draft) {
		return
	}
	entry, err := h.store.ApplyTemplate(chi.URLParam(r, "id"), draft)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
