package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/diary/internal/apperror"
	"github.com/sakif/diary/internal/service"
)

type ImageHandler struct {
	store  *service.Store
	logger *slog.Logger
}

func NewImageHandler(store *service.Store, logger *slog.Logger) *ImageHandler {
	return &ImageHandler{store: store, logger: logger}
}

// HandleListForEntry returns image metadata for an entry (no blobs).
//
// HTTP: GET /api/entries/{id}/images
func (h *ImageHandler) HandleListForEntry(w http.ResponseWriter, r *http.Request) {
	images, err := h.store.ListImagesForEntry(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, images)
}

// HandleUpload attaches the raw request body to an entry.
//
// HTTP: POST /api/entries/{id}/images
// BODY: the image bytes. Content-Type is used when it names an image type;
// otherwise the type is sniffed from the bytes.
func (h *ImageHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, service.MaxImageSize+1)
	blob, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, apperror.ValidationFailed("blob", "image is too large"))
			return
		}
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid_body", Message: "could not read request body"})
		return
	}

	mimeType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = ""
	}

	img, err := h.store.SaveImage(r.Context(), chi.URLParam(r, "id"), blob, mimeType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, img)
}

// HandleGet serves the image bytes with their stored content type.
//
// HTTP: GET /api/images/{id}
func (h *ImageHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	img, err := h.store.GetImage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", img.MimeType)
	w.Header().Set("Content-Length", strconv.Itoa(len(img.Blob)))
	w.Header().Set("Cache-Control", "private, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(img.Blob); err != nil {
		h.logger.Warn("failed to write image", slog.String("id", img.ID), slog.String("error", err.Error()))
	}
}

// HandleDelete removes one image.
//
// HTTP: DELETE /api/images/{id} → 204 No Content
func (h *ImageHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteImage(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
