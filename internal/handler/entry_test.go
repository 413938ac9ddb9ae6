package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sakif/diary/internal/handler"
	"github.com/sakif/diary/internal/model"
	"github.com/sakif/diary/internal/repository/mocks"
)

func TestEntryHandler_CRUD(t *testing.T) {
	api := newTestAPI(t)

	t.Run("create", func(t *testing.T) {
		rr := api.do(t, http.MethodPost, "/api/entries", map[string]any{
			"id": "ignored", "date": "2024-01-31", "content": "# Hello", "tags": []string{"a", "a"},
		})
		require.Equal(t, http.StatusCreated, rr.Code)
		e := decode[model.Entry](t, rr)
		assert.NotEqual(t, "ignored", e.ID)
		assert.Equal(t, []string{"a"}, e.Tags)

		rr = api.do(t, http.MethodGet, "/api/entries/"+e.ID, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "# Hello", decode[model.Entry](t, rr).Content)

		rr = api.do(t, http.MethodPut, "/api/entries/"+e.ID, map[string]any{"date": "2024-01-31", "content": "edited"})
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, e.ID, decode[model.Entry](t, rr).ID)

		rr = api.do(t, http.MethodPost, "/api/entries/"+e.ID+"/pin", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, decode[model.Entry](t, rr).IsPinned)

		rr = api.do(t, http.MethodGet, "/api/entries?date=2024-01-31", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Len(t, decode[[]model.Entry](t, rr), 1)

		rr = api.do(t, http.MethodDelete, "/api/entries/"+e.ID, nil)
		assert.Equal(t, http.StatusNoContent, rr.Code)

		rr = api.do(t, http.MethodGet, "/api/entries/"+e.ID, nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("list empty is an array", func(t *testing.T) {
		rr := api.do(t, http.MethodGet, "/api/entries", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, "[]", rr.Body.String())
	})
}

func TestEntryHandler_Errors(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		name      string
		method    string
		path      string
		body      any
		wantCode  int
		wantError string
	}{
		{"invalid json", http.MethodPost, "/api/entries", `{"date":`, http.StatusBadRequest, "invalid_json"},
		{"missing date", http.MethodPost, "/api/entries", map[string]any{"content": "x"}, http.StatusBadRequest, "validation_error"},
		{"bad date filter", http.MethodGet, "/api/entries?date=today", nil, http.StatusBadRequest, "validation_error"},
		{"update unknown", http.MethodPut, "/api/entries/nope", map[string]any{"date": "2024-01-01"}, http.StatusNotFound, "not_found"},
		{"pin unknown", http.MethodPost, "/api/entries/nope/pin", nil, http.StatusNotFound, "not_found"},
		{"delete unknown", http.MethodDelete, "/api/entries/nope", nil, http.StatusNotFound, "not_found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := api.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantCode, rr.Code)
			assert.Equal(t, tt.wantError, decode[handler.ErrorResponse](t, rr).Error)
		})
	}
}

func TestEntryHandler_ValidationNamesField(t *testing.T) {
	api := newTestAPI(t)

	rr := api.do(t, http.MethodPost, "/api/entries", map[string]any{"date": "31/01/2024"})

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "date", decode[handler.ErrorResponse](t, rr).Field)
}

func TestEntryHandler_StorageFailureIsRetryable(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockGateway(ctrl)
	repo.EXPECT().ListEntries(gomock.Any()).Return(nil, nil)
	repo.EXPECT().ListTags(gomock.Any()).Return(nil, nil)
	repo.EXPECT().ListTemplates(gomock.Any()).Return(nil, nil)
	repo.EXPECT().PutEntry(gomock.Any(), gomock.Any()).Return(assert.AnError)
	api := newTestAPIWithRepo(t, repo)

	rr := api.do(t, http.MethodPost, "/api/entries", map[string]any{"date": "2024-01-01"})

	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	resp := decode[handler.ErrorResponse](t, rr)
	assert.Equal(t, "storage_error", resp.Error)
	assert.True(t, resp.Retryable)
	assert.NotContains(t, resp.Message, assert.AnError.Error())
	assert.Empty(t, api.store.ListEntries())
}

func TestEntryHandler_Autosave(t *testing.T) {
	api := newTestAPI(t)
	e, err := api.store.SaveEntry(context.Background(), model.Entry{Date: "2024-01-01", Content: "start"})
	require.NoError(t, err)

	for _, content := range []string{"s", "st", "final"} {
		rr := api.do(t, http.MethodPut, "/api/entries/"+e.ID+"/autosave", map[string]any{"date": "2024-01-01", "content": content})
		require.Equal(t, http.StatusAccepted, rr.Code)
	}

	assert.Eventually(t, func() bool {
		got, err := api.store.GetEntry(e.ID)
		return err == nil && got.Content == "final"
	}, time.Second, 5*time.Millisecond)
}

func TestEntryHandler_AutosaveRejectsUpfront(t *testing.T) {
	api := newTestAPI(t)
	e, err := api.store.SaveEntry(context.Background(), model.Entry{Date: "2024-01-01"})
	require.NoError(t, err)

	rr := api.do(t, http.MethodPut, "/api/entries/missing/autosave", map[string]any{"date": "2024-01-01"})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = api.do(t, http.MethodPut, "/api/entries/"+e.ID+"/autosave", map[string]any{"date": "nope"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.False(t, api.autosaver.Pending(e.ID))
}

func TestEntryHandler_ExplicitSaveCancelsAutosave(t *testing.T) {
	api := newTestAPIWithDelay(t, time.Hour)
	e, err := api.store.SaveEntry(context.Background(), model.Entry{Date: "2024-01-01"})
	require.NoError(t, err)

	rr := api.do(t, http.MethodPut, "/api/entries/"+e.ID+"/autosave", map[string]any{"date": "2024-01-01", "content": "stale"})
	require.Equal(t, http.StatusAccepted, rr.Code)
	require.True(t, api.autosaver.Pending(e.ID))

	rr = api.do(t, http.MethodPut, "/api/entries/"+e.ID, map[string]any{"date": "2024-01-01", "content": "explicit"})
	require.Equal(t, http.StatusOK, rr.Code)

	assert.False(t, api.autosaver.Pending(e.ID))
	require.NoError(t, api.autosaver.Flush())
	got, err := api.store.GetEntry(e.ID)
	require.NoError(t, err)
	assert.Equal(t, "explicit", got.Content)
}

func TestEntryHandler_AutosaveAfterClose(t *testing.T) {
	api := newTestAPI(t)
	e, err := api.store.SaveEntry(context.Background(), model.Entry{Date: "2024-01-01"})
	require.NoError(t, err)
	api.autosaver.Close()

	rr := api.do(t, http.MethodPut, "/api/entries/"+e.ID+"/autosave", map[string]any{"date": "2024-01-01"})

	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "shutting_down", decode[handler.ErrorResponse](t, rr).Error)
}
