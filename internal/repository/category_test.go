package repository

import (
	"context"
	"testing"

	"readable/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "react", list[0].Path)
	assert.Equal(t, "redux", list[1].Path)
	assert.Equal(t, "udacity", list[2].Path)

	got, err := repo.GetByPath(ctx, "redux")
	require.NoError(t, err)
	assert.Equal(t, "redux", got.Name)

	_, err = repo.GetByPath(ctx, "golang")
	assert.True(t, models.HasCode(err, models.CodeNotFound))
}
