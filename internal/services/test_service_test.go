package services_test

import (
	"context"
	"testing"

	"shopadmin/internal/repositories"
	"shopadmin/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestService(t *testing.T) {
	ctx := context.Background()
	service := services.NewTestService(repositories.NewMemoryTestRepository())

	created, err := service.Create(ctx, map[string]interface{}{"title": "scratch", "_id": "ignored"})
	require.NoError(t, err)
	assert.NotEqual(t, "ignored", created.ID)
	assert.NotContains(t, created.Fields, "_id")

	updated, err := service.Update(ctx, created.ID, map[string]interface{}{"title": "renamed", "done": true})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Fields["title"])
	assert.Equal(t, true, updated.Fields["done"])

	list, err := service.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = service.Delete(ctx, created.ID)
	require.NoError(t, err)

	_, err = service.Get(ctx, created.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
