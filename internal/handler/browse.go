package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/diary/internal/apperror"
	"github.com/sakif/diary/internal/search"
	"github.com/sakif/diary/internal/service"
)

// BrowseHandler serves the read-only views over the diary: search, the
// calendar and markdown link snippets.
type BrowseHandler struct {
	store  *service.Store
	logger *slog.Logger
}

func NewBrowseHandler(store *service.Store, logger *slog.Logger) *BrowseHandler {
	return &BrowseHandler{store: store, logger: logger}
}

// LinkResponse carries a markdown snippet ready to insert into an entry.
type LinkResponse struct {
	Markdown string `json:"markdown"`
}

// HandleSearch runs a filtered, optionally fuzzy search.
//
// HTTP: POST /api/search
// REQUEST BODY: {"query": "cofee", "tagIds": [], "startDate": null, "endDate": null, "onlyPinned": false}
func (h *BrowseHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	var f search.Filter
	if !decodeJSON(w, r, &f) {
		return
	}
	entries, err := h.store.SearchEntries(f)
	if err != nil {
		writeError(w, err)
		return
	}
	h.logger.Debug("search",
		slog.String("query", f.Query),
		slog.Int("tags", len(f.TagIDs)),
		slog.Int("results", len(entries)),
	)
	writeJSON(w, http.StatusOK, entries)
}

// HandleCalendar lists the days of a month that have entries.
//
// HTTP: GET /api/calendar/{year}/{month}
func (h *BrowseHandler) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, apperror.ValidationFailed("year", "year must be a number"))
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		writeError(w, apperror.ValidationFailed("month", "month must be a number"))
		return
	}
	days, err := h.store.CalendarMonth(year, month)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, days)
}

// HTTP: GET /api/links/date/{date}
func (h *BrowseHandler) HandleDateLink(w http.ResponseWriter, r *http.Request) {
	h.writeLink(w, func() (string, error) { return h.store.LinkForDate(chi.URLParam(r, "date")) })
}

// HTTP: GET /api/links/entry/{id}
func (h *BrowseHandler) HandleEntryLink(w http.ResponseWriter, r *http.Request) {
	h.writeLink(w, func() (string, error) { return h.store.LinkForEntry(chi.URLParam(r, "id")) })
}

// HTTP: GET /api/links/tag/{id}
func (h *BrowseHandler) HandleTagLink(w http.ResponseWriter, r *http.Request) {
	h.writeLink(w, func() (string, error) { return h.store.LinkForTag(chi.URLParam(r, "id")) })
}

func (h *BrowseHandler) writeLink(w http.ResponseWriter, build func() (string, error)) {
	md, err := build()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, LinkResponse{Markdown: md})
}
