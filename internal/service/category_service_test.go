package service

import (
	"context"
	"errors"
	"testing"

	"bookstore-service/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategoryRejectsEmptyName(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryStore())

	_, err := svc.CreateCategory(context.Background(), "")
	var verr *apperr.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestCreateCategoryRejectsDuplicateActiveName(t *testing.T) {
	ctx := context.Background()
	svc := NewCategoryService(newFakeCategoryStore())

	_, err := svc.CreateCategory(ctx, "Sci-Fi")
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, "Sci-Fi")
	var cerr *apperr.ConflictError
	assert.True(t, errors.As(err, &cerr))
}

func TestCreateCategoryAllowsReusingDeletedName(t *testing.T) {
	ctx := context.Background()
	svc := NewCategoryService(newFakeCategoryStore())

	first, err := svc.CreateCategory(ctx, "Sci-Fi")
	require.NoError(t, err)
	require.NoError(t, svc.SoftDeleteCategory(ctx, first.ID))

	// uniqueness only applies among active categories
	second, err := svc.CreateCategory(ctx, "Sci-Fi")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	deleted, err := svc.ListDeletedCategories(ctx)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, first.ID, deleted[0].ID)
}

func TestRestoreCategoryRejectsReusedName(t *testing.T) {
	ctx := context.Background()
	svc := NewCategoryService(newFakeCategoryStore())

	first, err := svc.CreateCategory(ctx, "Sci-Fi")
	require.NoError(t, err)
	require.NoError(t, svc.SoftDeleteCategory(ctx, first.ID))

	_, err = svc.CreateCategory(ctx, "Sci-Fi")
	require.NoError(t, err)

	// the name now belongs to an active category; the old row stays deleted
	err = svc.RestoreCategory(ctx, first.ID)
	var cerr *apperr.ConflictError
	require.True(t, errors.As(err, &cerr))

	deleted, err := svc.ListDeletedCategories(ctx)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, first.ID, deleted[0].ID)
}

func TestCategorySoftDeleteLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewCategoryService(newFakeCategoryStore())

	category, err := svc.CreateCategory(ctx, "Fantasy")
	require.NoError(t, err)

	require.NoError(t, svc.SoftDeleteCategory(ctx, category.ID))
	require.NoError(t, svc.SoftDeleteCategory(ctx, category.ID)) // idempotent

	active, err := svc.ListActiveCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	require.NoError(t, svc.RestoreCategory(ctx, category.ID))

	active, err = svc.ListActiveCategories(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Fantasy", active[0].Name)
}

func TestCategoryLifecycleUnknownID(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryStore())

	var nerr *apperr.NotFoundError
	assert.True(t, errors.As(svc.SoftDeleteCategory(context.Background(), 42), &nerr))
	assert.True(t, errors.As(svc.RestoreCategory(context.Background(), 42), &nerr))
}
