package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/sakif/diary/internal/handler"
	"github.com/sakif/diary/internal/repository"
	"github.com/sakif/diary/internal/repository/sqlite"
	"github.com/sakif/diary/internal/service"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError + 1}))

// testAPI is a router over a loaded Store, wired like the real server.
type testAPI struct {
	router    chi.Router
	store     *service.Store
	autosaver *service.AutoSaver
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	return newTestAPIWithDelay(t, 10*time.Millisecond)
}

// newTestAPIWithDelay uses a fresh in-memory database and the given autosave delay.
func newTestAPIWithDelay(t *testing.T, delay time.Duration) *testAPI {
	t.Helper()
	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return buildTestAPI(t, db, delay)
}

func newTestAPIWithRepo(t *testing.T, repo repository.Gateway) *testAPI {
	t.Helper()
	return buildTestAPI(t, repo, 10*time.Millisecond)
}

func buildTestAPI(t *testing.T, repo repository.Gateway, delay time.Duration) *testAPI {
	t.Helper()
	store := service.NewStore(repo, testLogger)
	require.NoError(t, store.Load(context.Background()))
	autosaver := service.NewAutoSaver(delay, testLogger)
	t.Cleanup(autosaver.Close)

	entries := handler.NewEntryHandler(store, autosaver, testLogger)
	images := handler.NewImageHandler(store, testLogger)
	tags := handler.NewTagHandler(store, testLogger)
	templates := handler.NewTemplateHandler(store, testLogger)
	browse := handler.NewBrowseHandler(store, testLogger)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/entries", entries.HandleList)
		r.Post("/entries", entries.HandleCreate)
		r.Get("/entries/{id}", entries.HandleGet)
		r.Put("/entries/{id}", entries.HandleUpdate)
		r.Delete("/entries/{id}", entries.HandleDelete)
		r.Put("/entries/{id}/autosave", entries.HandleAutosave)
		r.Post("/entries/{id}/pin", entries.HandleTogglePin)
		r.Get("/entries/{id}/images", images.HandleListForEntry)
		r.Post("/entries/{id}/images", images.HandleUpload)
		r.Get("/images/{id}", images.HandleGet)
		r.Delete("/images/{id}", images.HandleDelete)

		r.Get("/tags", tags.HandleList)
		r.Post("/tags", tags.HandleCreate)
		r.Put("/tags/{id}", tags.HandleUpdate)
		r.Delete("/tags/{id}", tags.HandleDelete)
		r.Get("/tags/{id}/descendants", tags.HandleDescendants)
		r.Get("/tags/{id}/entries", tags.HandleEntries)

		r.Get("/templates", templates.HandleList)
		r.Post("/templates", templates.HandleCreate)
		r.Get("/templates/{id}", templates.HandleGet)
		r.Put("/templates/{id}", templates.HandleUpdate)
		r.Delete("/templates/{id}", templates.HandleDelete)
		r.Post("/templates/{id}/apply", templates.HandleApply)

		r.Post("/search", browse.HandleSearch)
		r.Get("/calendar/{year}/{month}", browse.HandleCalendar)
		r.Get("/links/date/{date}", browse.HandleDateLink)
		r.Get("/links/entry/{id}", browse.HandleEntryLink)
		r.Get("/links/tag/{id}", browse.HandleTagLink)
	})
	return &testAPI{router: r, store: store, autosaver: autosaver}
}

// do sends a request with an optional JSON body and returns the recorder.
func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	raw := rr.Body.Bytes()
	require.NoError(t, json.Unmarshal(raw, &v), "body: %s", raw)
	return v
}
