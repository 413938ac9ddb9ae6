package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/diary/internal/apperror"
	"github.com/sakif/diary/internal/model"
)

func TestTemplateLifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	tmpl := &model.Template{Title: "Weekly review", Content: "## Wins\n", Tags: []string{"t1"}}
	require.NoError(t, db.PutTemplate(ctx, tmpl))
	require.NotEmpty(t, tmpl.ID)

	tmpl.Content = "## Wins\n## Losses\n"
	require.NoError(t, db.PutTemplate(ctx, tmpl))

	all, err := db.ListTemplates(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "## Wins\n## Losses\n", all[0].Content)
	assert.Equal(t, []string{"t1"}, all[0].Tags)

	require.NoError(t, db.DeleteTemplate(ctx, tmpl.ID))
	_, err = db.GetTemplate(ctx, tmpl.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.ErrorIs(t, db.DeleteTemplate(ctx, tmpl.ID), apperror.ErrNotFound)
}
