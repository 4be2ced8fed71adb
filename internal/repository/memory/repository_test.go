package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jchamizo/productos/internal/domain/models"
	"github.com/jchamizo/productos/internal/repository/memory"
)

func TestCRUDLifecycle(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, models.Product{ID: 1, Name: "Uno GARCIA", Stock: 5}))
	require.NoError(t, repo.Insert(ctx, models.Product{ID: 2, Name: "Dos GARCIA", Stock: 6}))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	got, err := repo.GetByID(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Dos GARCIA", got.Name)

	missing, err := repo.GetByID(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)

	matched, err := repo.Replace(ctx, models.Product{ID: 2, Name: "Dos GARCIA", Stock: 60})
	require.NoError(t, err)
	assert.True(t, matched)

	matched, err = repo.Replace(ctx, models.Product{ID: 99, Name: "Ghost RECORD"})
	require.NoError(t, err)
	assert.False(t, matched)

	deleted, err := repo.Delete(ctx, 1)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, 1)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestSequencesAreIndependentPerKey(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	first, err := repo.Next(ctx, "product")
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	second, err := repo.Next(ctx, "product")
	require.NoError(t, err)
	assert.Equal(t, 2, second)

	other, err := repo.Next(ctx, "invoice")
	require.NoError(t, err)
	assert.Equal(t, 1, other)
}

func TestGetAllReturnsCopy(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, models.Product{ID: 1, Name: "Uno GARCIA"}))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	all[0].Name = "mutated"

	fresh, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Uno GARCIA", fresh[0].Name)
}
