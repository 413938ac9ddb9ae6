package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/sakif/diary/internal/apperror"
	"github.com/sakif/diary/internal/model"
)

// MaxImageSize is the largest accepted attachment (10MB).
const MaxImageSize = 10 << 20

// Images are not mirrored: blobs stay in the database and are read on demand.

// ListImagesForEntry returns image metadata for an entry, without blobs.
func (s *Store) ListImagesForEntry(ctx context.Context, entryID string) ([]model.Image, error) {
	if _, err := s.GetEntry(entryID); err != nil {
		return nil, err
	}
	images, err := s.repo.ListImagesForEntry(ctx, strings.TrimSpace(entryID))
	if err != nil {
		return nil, apperror.Storage("listing images", err)
	}
	return images, nil
}

// GetImage returns an image including its blob.
func (s *Store) GetImage(ctx context.Context, id string) (*model.Image, error) {
	img, err := s.repo.GetImage(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, apperror.Storage("loading image", err)
	}
	return img, nil
}

// SaveImage attaches blob to an existing entry.
//
// The MIME type is sniffed from the bytes when mimeType is empty. Either way
// it must be an image/* type.
func (s *Store) SaveImage(ctx context.Context, entryID string, blob []byte, mimeType string) (*model.Image, error) {
	if _, err := s.GetEntry(entryID); err != nil {
		return nil, err
	}
	if len(blob) == 0 {
		return nil, apperror.ValidationFailed("blob", "image is empty")
	}
	if len(blob) > MaxImageSize {
		return nil, apperror.ValidationFailed("blob",
			fmt.Sprintf("image must be %d bytes or less", MaxImageSize))
	}

	mimeType = strings.TrimSpace(mimeType)
	if mimeType == "" {
		mimeType = mimetype.Detect(blob).String()
	}
	// Detect may append parameters ("; charset=...").
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, apperror.ValidationFailed("mimeType",
			fmt.Sprintf("%s is not an image type", mimeType))
	}

	img := &model.Image{
		EntryID:  strings.TrimSpace(entryID),
		Blob:     blob,
		MimeType: mimeType,
	}
	if err := s.repo.PutImage(ctx, img); err != nil {
		s.logger.Error("failed to save image",
			slog.String("entry_id", entryID),
			slog.String("error", err.Error()),
		)
		return nil, apperror.Storage("saving image", err)
	}

	s.logger.Info("image saved",
		slog.String("id", img.ID),
		slog.String("entry_id", img.EntryID),
		slog.String("mime_type", img.MimeType),
		slog.Int("size", img.Size),
	)
	return img, nil
}

func (s *Store) DeleteImage(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "image ID is required")
	}
	if err := s.repo.DeleteImage(ctx, id); err != nil {
		return apperror.Storage("deleting image", err)
	}
	s.logger.Info("image deleted", slog.String("id", id))
	return nil
}
