package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/diary/internal/apperror"
	"github.com/sakif/diary/internal/model"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n0000")

func createTestImage(t *testing.T, db *DB, entryID string) *model.Image {
	t.Helper()
	img := &model.Image{EntryID: entryID, Blob: pngHeader, MimeType: "image/png"}
	require.NoError(t, db.PutImage(context.Background(), img))
	return img
}

func TestPutImage_AssignsIDAndCreatedAt(t *testing.T) {
	db := newTestDB(t)
	entry := createTestEntry(t, db, "2024-01-05", "")

	img := createTestImage(t, db, entry.ID)

	assert.NotEmpty(t, img.ID)
	assert.False(t, img.CreatedAt.IsZero())
	assert.Equal(t, len(pngHeader), img.Size)
}

func TestPutImage_UnknownEntry(t *testing.T) {
	db := newTestDB(t)
	img := &model.Image{EntryID: "ghost", Blob: pngHeader, MimeType: "image/png"}

	err := db.PutImage(context.Background(), img)

	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Empty(t, img.ID)
}

func TestListImagesForEntry_OnlyOwnImages(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	e1 := createTestEntry(t, db, "2024-01-05", "")
	e2 := createTestEntry(t, db, "2024-01-06", "")
	a := createTestImage(t, db, e1.ID)
	b := createTestImage(t, db, e1.ID)
	createTestImage(t, db, e2.ID)

	got, err := db.ListImagesForEntry(ctx, e1.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)

	ids := []string{got[0].ID, got[1].ID}
	assert.ElementsMatch(t, []string{a.ID, b.ID}, ids)
	assert.Nil(t, got[0].Blob, "listing does not load blobs")
	assert.Equal(t, len(pngHeader), got[0].Size)
}

func TestDeleteImage(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	entry := createTestEntry(t, db, "2024-01-05", "")
	img := createTestImage(t, db, entry.ID)

	require.NoError(t, db.DeleteImage(ctx, img.ID))

	_, err := db.GetImage(ctx, img.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = db.GetEntry(ctx, entry.ID)
	assert.NoError(t, err, "deleting an image leaves its entry alone")
}
