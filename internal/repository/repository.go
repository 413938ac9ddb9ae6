// Package repository declares the persistence gateway the service layer
// depends on. The sqlite subpackage is the only production implementation;
// tests use the gomock double in repository/mocks.
package repository

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -destination=mocks/mock_repository.go -package=mocks github.com/sakif/diary/internal/repository Gateway

import (
	"context"

	"github.com/sakif/diary/internal/model"
)

// EntryRepository stores diary entries.
//
// PutEntry is an upsert: an empty ID gets a fresh one, UpdatedAt is always
// stamped, and the caller's struct is updated in place.
type EntryRepository interface {
	ListEntries(ctx context.Context) ([]model.Entry, error)
	GetEntry(ctx context.Context, id string) (*model.Entry, error)
	ListEntriesByDate(ctx context.Context, date string) ([]model.Entry, error)
	ListEntriesByTag(ctx context.Context, tagID string) ([]model.Entry, error)
	PutEntry(ctx context.Context, entry *model.Entry) error
	// DeleteEntryCascade removes the entry and every image it owns atomically.
	DeleteEntryCascade(ctx context.Context, id string) error
}

// TagRepository stores tags. PutTag defaults an empty Color to model.DefaultTagColor.
type TagRepository interface {
	ListTags(ctx context.Context) ([]model.Tag, error)
	GetTag(ctx context.Context, id string) (*model.Tag, error)
	PutTag(ctx context.Context, tag *model.Tag) error
	DeleteTag(ctx context.Context, id string) error
}

type TemplateRepository interface {
	ListTemplates(ctx context.Context) ([]model.Template, error)
	GetTemplate(ctx context.Context, id string) (*model.Template, error)
	PutTemplate(ctx context.Context, tmpl *model.Template) error
	DeleteTemplate(ctx context.Context, id string) error
}

// ImageRepository stores entry attachments.
// ListImagesForEntry returns metadata only; GetImage includes the blob.
type ImageRepository interface {
	ListImagesForEntry(ctx context.Context, entryID string) ([]model.Image, error)
	GetImage(ctx context.Context, id string) (*model.Image, error)
	PutImage(ctx context.Context, img *model.Image) error
	DeleteImage(ctx context.Context, id string) error
}

// Gateway is the full persistence surface over the four collections.
type Gateway interface {
	EntryRepository
	TagRepository
	TemplateRepository
	ImageRepository
}
