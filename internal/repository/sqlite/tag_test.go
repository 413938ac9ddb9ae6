package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/diary/internal/apperror"
	"github.com/sakif/diary/internal/model"
)

func strPtr(s string) *string { return &s }

func TestPutTag_DefaultsColor(t *testing.T) {
	db := newTestDB(t)
	tag := &model.Tag{Name: "Work"}

	require.NoError(t, db.PutTag(context.Background(), tag))

	assert.NotEmpty(t, tag.ID)
	assert.Equal(t, model.DefaultTagColor, tag.Color)
	assert.Nil(t, tag.ParentID)
}

func TestPutTag_KeepsChosenColorAndParent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	parent := &model.Tag{Name: "Work", Color: "#3B82F6"}
	require.NoError(t, db.PutTag(ctx, parent))

	child := &model.Tag{Name: "Meetings", ParentID: strPtr(parent.ID), BaseColor: "#3B82F6", ShadeLevel: 2}
	require.NoError(t, db.PutTag(ctx, child))

	got, err := db.GetTag(ctx, child.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, parent.ID, *got.ParentID)
	assert.Equal(t, "#3B82F6", got.BaseColor)
	assert.Equal(t, 2, got.ShadeLevel)
}

func TestPutTag_EmptyParentStoredAsNull(t *testing.T) {
	db := newTestDB(t)
	tag := &model.Tag{Name: "Root", ParentID: strPtr("")}

	require.NoError(t, db.PutTag(context.Background(), tag))

	got, err := db.GetTag(context.Background(), tag.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ParentID)
}

func TestPutTag_UpdateDoesNotDuplicate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	tag := &model.Tag{Name: "Work"}
	require.NoError(t, db.PutTag(ctx, tag))

	tag.Name = "Job"
	require.NoError(t, db.PutTag(ctx, tag))

	all, err := db.ListTags(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Job", all[0].Name)
}

func TestListTags_InsertionOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, db.PutTag(ctx, &model.Tag{Name: name}))
	}

	all, err := db.ListTags(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "zeta", all[0].Name)
	assert.Equal(t, "alpha", all[1].Name)
	assert.Equal(t, "mid", all[2].Name)
}

func TestDeleteTag(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	tag := &model.Tag{Name: "Work"}
	require.NoError(t, db.PutTag(ctx, tag))

	require.NoError(t, db.DeleteTag(ctx, tag.ID))

	_, err := db.GetTag(ctx, tag.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.ErrorIs(t, db.DeleteTag(ctx, tag.ID), apperror.ErrNotFound)
}
